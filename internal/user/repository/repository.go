package repository

import (
	"context"

	"taskmanager-backend/internal/user/domain"
)

// UserRepository defines the interface for user data access.
//
// Writes to an existing user touch only the columns they name, so
// concurrent requests for the same user never overwrite each other's
// changes. Every write on a missing user yields common.ErrNotFound.
type UserRepository interface {
	// Create stores a new user. A taken email yields common.ErrAlreadyExists.
	Create(ctx context.Context, user *domain.User) error

	// FindByEmail returns nil, nil when no user has the email
	FindByEmail(ctx context.Context, email string) (*domain.User, error)

	// FindByID returns nil, nil when no user has the ID
	FindByID(ctx context.Context, id string) (*domain.User, error)

	// UpdateProfile writes the set fields of update. A taken email yields
	// common.ErrAlreadyExists.
	UpdateProfile(ctx context.Context, id string, update domain.ProfileUpdate) error

	AppendToken(ctx context.Context, id, token string) error
	RemoveToken(ctx context.Context, id, token string) error
	ClearTokens(ctx context.Context, id string) error

	// SetAvatar replaces the stored avatar; nil removes it
	SetAvatar(ctx context.Context, id string, avatar []byte) error

	// Delete removes the user together with all tasks it owns, atomically
	Delete(ctx context.Context, id string) error
}
