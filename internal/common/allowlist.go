package common

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
)

// DecodeAllowed decodes a JSON object into dst after checking that every key
// belongs to allowed. Nothing is decoded when a key falls outside the list.
func DecodeAllowed(body []byte, allowed []string, dst any) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}

	for key, value := range raw {
		if !slices.Contains(allowed, key) {
			return fmt.Errorf("%w: invalid updates!", ErrValidation)
		}
		if bytes.Equal(bytes.TrimSpace(value), []byte("null")) {
			return fmt.Errorf("%w: %s must not be null", ErrValidation, key)
		}
	}

	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return nil
}
