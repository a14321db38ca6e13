package usecase

import (
	"context"

	"taskmanager-backend/internal/task/domain"
)

// TaskUsecase defines the interface for task business logic. Every method is
// scoped to the requesting owner; tasks of other owners behave as missing.
type TaskUsecase interface {
	// CreateTask creates a task owned by owner
	CreateTask(ctx context.Context, owner string, req CreateTaskRequest) (*domain.Task, error)

	// GetTaskByID retrieves a task by ID (with ownership check)
	GetTaskByID(ctx context.Context, owner, taskID string) (*domain.Task, error)

	// GetUserTasks retrieves the owner's tasks filtered, sorted and paged
	GetUserTasks(ctx context.Context, owner string, query ListQuery) ([]*domain.Task, error)

	// UpdateTask applies an allow-listed update
	UpdateTask(ctx context.Context, owner, taskID string, updates TaskUpdateRequest) (*domain.Task, error)

	// DeleteTask deletes a task and returns it
	DeleteTask(ctx context.Context, owner, taskID string) (*domain.Task, error)
}

// CreateTaskRequest represents the request body for creating a task
type CreateTaskRequest struct {
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
}

// TaskUpdateRequest represents the fields that can be updated
type TaskUpdateRequest struct {
	Description *string `json:"description,omitempty"`
	Completed   *bool   `json:"completed,omitempty"`
}

// ListQuery carries the raw query string values of the list endpoint.
type ListQuery struct {
	Completed string
	SortBy    string
	Limit     string
	Skip      string
}
