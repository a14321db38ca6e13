package usecase

import (
	"context"
	"errors"
	"fmt"

	"taskmanager-backend/internal/auth"
	"taskmanager-backend/internal/common"
	"taskmanager-backend/internal/user/domain"
	"taskmanager-backend/internal/user/dto"
	"taskmanager-backend/internal/user/repository"
	"taskmanager-backend/pkg/avatar"

	"github.com/google/uuid"
)

var (
	errLoginFailed  = fmt.Errorf("%w: unable to login", common.ErrUnauthorized)
	errEmailTaken   = fmt.Errorf("%w: email already registered", common.ErrValidation)
	errAvatarAbsent = fmt.Errorf("%w: avatar", common.ErrNotFound)
	errSessionEnded = fmt.Errorf("%w: account no longer exists", common.ErrUnauthorized)
)

// userUsecase implements UserUsecase interface
type userUsecase struct {
	userRepo repository.UserRepository
	tokens   *auth.TokenService
	hasher   *auth.PasswordHasher
}

// NewUserUsecase creates a new instance of userUsecase
func NewUserUsecase(userRepo repository.UserRepository, tokens *auth.TokenService, hasher *auth.PasswordHasher) UserUsecase {
	return &userUsecase{
		userRepo: userRepo,
		tokens:   tokens,
		hasher:   hasher,
	}
}

func (u *userUsecase) Signup(ctx context.Context, req *dto.SignupRequest) (*dto.AuthResponse, error) {
	user := &domain.User{
		Name:  req.Name,
		Email: req.Email,
		Age:   req.Age,
	}

	if err := u.prepare(user, &req.Password); err != nil {
		return nil, err
	}

	existing, err := u.userRepo.FindByEmail(ctx, user.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errEmailTaken
	}

	// the ID is needed to sign the first token before the single insert
	user.ID = uuid.New().String()
	token, err := u.tokens.Issue(user.ID)
	if err != nil {
		return nil, err
	}
	user.Tokens = []domain.Token{{Token: token}}

	if err := u.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, common.ErrAlreadyExists) {
			return nil, errEmailTaken
		}
		return nil, err
	}

	return &dto.AuthResponse{User: user, Token: token}, nil
}

func (u *userUsecase) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	lookup := &domain.User{Email: req.Email}
	lookup.Normalize()

	user, err := u.userRepo.FindByEmail(ctx, lookup.Email)
	if err != nil {
		return nil, err
	}
	if user == nil || !u.hasher.Compare(req.Password, user.Password) {
		return nil, errLoginFailed
	}

	token, err := u.tokens.Issue(user.ID)
	if err != nil {
		return nil, err
	}

	if err := u.userRepo.AppendToken(ctx, user.ID, token); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, errLoginFailed
		}
		return nil, err
	}
	user.Tokens = append(user.Tokens, domain.Token{Token: token})

	return &dto.AuthResponse{User: user, Token: token}, nil
}

func (u *userUsecase) Logout(ctx context.Context, user *domain.User, token string) error {
	if err := u.userRepo.RemoveToken(ctx, user.ID, token); err != nil {
		return sessionError(err)
	}
	user.RemoveToken(token)
	return nil
}

func (u *userUsecase) LogoutAll(ctx context.Context, user *domain.User) error {
	if err := u.userRepo.ClearTokens(ctx, user.ID); err != nil {
		return sessionError(err)
	}
	user.Tokens = []domain.Token{}
	return nil
}

func (u *userUsecase) UpdateProfile(ctx context.Context, user *domain.User, req *dto.UpdateUserRequest) (*domain.User, error) {
	// validation runs on the merged profile, the write carries only the
	// fields the request named
	merged := *user
	if req.Name != nil {
		merged.Name = *req.Name
	}
	if req.Email != nil {
		merged.Email = *req.Email
	}
	if req.Age != nil {
		merged.Age = *req.Age
	}

	if err := u.prepare(&merged, req.Password); err != nil {
		return nil, err
	}

	var update domain.ProfileUpdate
	if req.Name != nil {
		update.Name = &merged.Name
	}
	if req.Email != nil {
		update.Email = &merged.Email
	}
	if req.Password != nil {
		update.Password = &merged.Password
	}
	if req.Age != nil {
		update.Age = &merged.Age
	}

	if update.Email != nil && *update.Email != user.Email {
		existing, err := u.userRepo.FindByEmail(ctx, *update.Email)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != user.ID {
			return nil, errEmailTaken
		}
	}

	if err := u.userRepo.UpdateProfile(ctx, user.ID, update); err != nil {
		if errors.Is(err, common.ErrAlreadyExists) {
			return nil, errEmailTaken
		}
		return nil, sessionError(err)
	}

	fresh, err := u.userRepo.FindByID(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if fresh == nil {
		return nil, errSessionEnded
	}
	return fresh, nil
}

func (u *userUsecase) DeleteProfile(ctx context.Context, user *domain.User) (*domain.User, error) {
	if err := u.userRepo.Delete(ctx, user.ID); err != nil {
		return nil, err
	}
	return user, nil
}

func (u *userUsecase) SetAvatar(ctx context.Context, user *domain.User, filename string, data []byte) error {
	thumbnail, err := avatar.Normalize(filename, data)
	if err != nil {
		if errors.Is(err, avatar.ErrTooLarge) || errors.Is(err, avatar.ErrUnsupportedType) {
			return fmt.Errorf("%w: %v", common.ErrValidation, err)
		}
		return err
	}

	if err := u.userRepo.SetAvatar(ctx, user.ID, thumbnail); err != nil {
		return sessionError(err)
	}
	user.Avatar = thumbnail
	return nil
}

func (u *userUsecase) RemoveAvatar(ctx context.Context, user *domain.User) error {
	if err := u.userRepo.SetAvatar(ctx, user.ID, nil); err != nil {
		return sessionError(err)
	}
	user.Avatar = nil
	return nil
}

func (u *userUsecase) GetAvatar(ctx context.Context, userID string) ([]byte, error) {
	user, err := u.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil || len(user.Avatar) == 0 {
		return nil, errAvatarAbsent
	}
	return user.Avatar, nil
}

func (u *userUsecase) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	userID, err := u.tokens.Verify(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrUnauthorized, err)
	}

	user, err := u.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.HasToken(token) {
		return nil, common.ErrUnauthorized
	}
	return user, nil
}

// sessionError reports a write on an account deleted since the request
// was authenticated as an ended session.
func sessionError(err error) error {
	if errors.Is(err, common.ErrNotFound) {
		return errSessionEnded
	}
	return err
}

// prepare runs the validate-then-hash step shared by signup and profile
// updates. A nil password leaves the stored hash untouched.
func (u *userUsecase) prepare(user *domain.User, password *string) error {
	user.Normalize()
	if err := user.Validate(); err != nil {
		return fmt.Errorf("%w: %v", common.ErrValidation, err)
	}

	if password == nil {
		return nil
	}
	if err := domain.ValidatePassword(*password); err != nil {
		return fmt.Errorf("%w: password: %v", common.ErrValidation, err)
	}

	hash, err := u.hasher.Hash(*password)
	if err != nil {
		return err
	}
	user.Password = hash
	return nil
}
