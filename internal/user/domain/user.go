package domain

import (
	"errors"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

// MinPasswordLength applies to the plaintext before hashing.
const MinPasswordLength = 7

// UpdatableFields lists the keys accepted by a profile update.
var UpdatableFields = []string{"name", "email", "password", "age"}

// Token is one issued session token. A user holds one per login.
type Token struct {
	Token string `json:"token"`
}

type User struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"not null"`
	Email     string    `json:"email" gorm:"uniqueIndex;not null"`
	Password  string    `json:"-" gorm:"not null"` // bcrypt hash, never the plaintext
	Age       int       `json:"age"`
	Avatar    []byte    `json:"-"`
	Tokens    []Token   `json:"-" gorm:"serializer:json"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Normalize trims name and email and lowercases the email.
func (u *User) Normalize() {
	u.Name = strings.TrimSpace(u.Name)
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
}

// Validate checks the stored fields. The password is checked separately with
// ValidatePassword because only its hash lives on the struct.
func (u *User) Validate() error {
	return validation.ValidateStruct(u,
		validation.Field(&u.Name, validation.Required),
		validation.Field(&u.Email, validation.Required, is.Email),
		validation.Field(&u.Age, validation.Min(0)),
	)
}

// HasToken reports whether token is one of the user's active tokens.
func (u *User) HasToken(token string) bool {
	for _, t := range u.Tokens {
		if t.Token == token {
			return true
		}
	}
	return false
}

// RemoveToken drops token from the active set, keeping the order of the rest.
func (u *User) RemoveToken(token string) {
	kept := u.Tokens[:0]
	for _, t := range u.Tokens {
		if t.Token != token {
			kept = append(kept, t)
		}
	}
	u.Tokens = kept
}

// ValidatePassword checks a plaintext password before it is hashed.
func ValidatePassword(password string) error {
	return validation.Validate(password,
		validation.Required,
		validation.Length(MinPasswordLength, 0),
		validation.By(notContainsPassword),
	)
}

func notContainsPassword(value interface{}) error {
	s, _ := value.(string)
	if strings.Contains(strings.ToLower(s), "password") {
		return errors.New("must not contain \"password\"")
	}
	return nil
}

// ProfileUpdate holds the profile columns one request changes. Nil fields
// leave the stored value alone. Password is the bcrypt hash.
type ProfileUpdate struct {
	Name     *string
	Email    *string
	Password *string
	Age      *int
}

// Apply copies the set fields onto u.
func (p ProfileUpdate) Apply(u *User) {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.Password != nil {
		u.Password = *p.Password
	}
	if p.Age != nil {
		u.Age = *p.Age
	}
}

// Columns lists the database columns of the set fields.
func (p ProfileUpdate) Columns() []string {
	var cols []string
	if p.Name != nil {
		cols = append(cols, "name")
	}
	if p.Email != nil {
		cols = append(cols, "email")
	}
	if p.Password != nil {
		cols = append(cols, "password")
	}
	if p.Age != nil {
		cols = append(cols, "age")
	}
	return cols
}
