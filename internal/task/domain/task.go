package domain

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
)

// UpdatableFields lists the keys accepted by a task update.
var UpdatableFields = []string{"description", "completed"}

// SortableFields maps the sortBy names accepted by the list endpoint to
// their columns. Names outside this map are ignored.
var SortableFields = map[string]string{
	"description": "description",
	"completed":   "completed",
	"createdAt":   "created_at",
	"updatedAt":   "updated_at",
}

// Task is a to-do item owned by exactly one user.
type Task struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	Description string    `json:"description" gorm:"not null"`
	Completed   bool      `json:"completed" gorm:"not null"`
	Owner       string    `json:"-" gorm:"index;not null"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (t *Task) Normalize() {
	t.Description = strings.TrimSpace(t.Description)
}

func (t *Task) Validate() error {
	return validation.ValidateStruct(t,
		validation.Field(&t.Description, validation.Required),
		validation.Field(&t.Owner, validation.Required),
	)
}

// ListOptions narrows and orders an owner's task list.
type ListOptions struct {
	Completed  *bool
	SortColumn string // one of the SortableFields values, empty for insertion order
	SortDesc   bool
	Limit      int // 0 means no limit
	Skip       int
}
