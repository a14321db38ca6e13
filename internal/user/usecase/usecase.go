package usecase

import (
	"context"

	"taskmanager-backend/internal/user/domain"
	"taskmanager-backend/internal/user/dto"
)

// UserUsecase defines the interface for account and profile logic
type UserUsecase interface {
	Signup(ctx context.Context, req *dto.SignupRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)

	// Logout revokes only the given token; LogoutAll revokes every token
	Logout(ctx context.Context, user *domain.User, token string) error
	LogoutAll(ctx context.Context, user *domain.User) error

	UpdateProfile(ctx context.Context, user *domain.User, req *dto.UpdateUserRequest) (*domain.User, error)
	DeleteProfile(ctx context.Context, user *domain.User) (*domain.User, error)

	SetAvatar(ctx context.Context, user *domain.User, filename string, data []byte) error
	RemoveAvatar(ctx context.Context, user *domain.User) error
	GetAvatar(ctx context.Context, userID string) ([]byte, error)

	// Authenticate resolves a bearer token to a user still holding it
	Authenticate(ctx context.Context, token string) (*domain.User, error)
}
