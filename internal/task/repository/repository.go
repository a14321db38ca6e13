package repository

import (
	"context"

	"taskmanager-backend/internal/task/domain"
)

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create stores a new task, assigning its ID and timestamps
	Create(ctx context.Context, task *domain.Task) error

	// FindByID returns nil, nil when no task has the given ID
	FindByID(ctx context.Context, id string) (*domain.Task, error)

	// FindByOwner lists the owner's tasks filtered, sorted and paged by opts
	FindByOwner(ctx context.Context, owner string, opts domain.ListOptions) ([]*domain.Task, error)

	// Update saves description and completed of an existing task.
	// A missing task yields common.ErrNotFound.
	Update(ctx context.Context, task *domain.Task) error

	// Delete removes a task by ID
	Delete(ctx context.Context, id string) error
}
