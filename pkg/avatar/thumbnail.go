// Package avatar turns uploaded profile pictures into the stored thumbnail.
package avatar

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	"image/png"
	"path/filepath"
	"strings"

	"golang.org/x/image/draw"
)

const (
	// MaxSize is the largest accepted upload in bytes.
	MaxSize = 1_000_000
	// Dimension is the edge length of the stored square thumbnail.
	Dimension = 250
	// ContentType of every normalized avatar.
	ContentType = "image/png"
)

var (
	ErrTooLarge        = errors.New("file too large")
	ErrUnsupportedType = errors.New("please upload an image")
)

var allowedExtensions = []string{".jpg", ".jpeg", ".png"}

// Allowed reports whether filename carries an accepted image extension.
func Allowed(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, allowed := range allowedExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

// Normalize validates an uploaded image and returns it as a Dimension x
// Dimension PNG, center-cropped to a square before scaling.
func Normalize(filename string, data []byte) ([]byte, error) {
	if len(data) > MaxSize {
		return nil, ErrTooLarge
	}
	if !Allowed(filename) {
		return nil, ErrUnsupportedType
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedType, err)
	}

	dst := image.NewRGBA(image.Rect(0, 0, Dimension, Dimension))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, squareCrop(src.Bounds()), draw.Over, nil)

	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return nil, fmt.Errorf("encode avatar: %w", err)
	}
	return buf.Bytes(), nil
}

func squareCrop(b image.Rectangle) image.Rectangle {
	w, h := b.Dx(), b.Dy()
	if w > h {
		x0 := b.Min.X + (w-h)/2
		return image.Rect(x0, b.Min.Y, x0+h, b.Max.Y)
	}
	y0 := b.Min.Y + (h-w)/2
	return image.Rect(b.Min.X, y0, b.Max.X, y0+w)
}
