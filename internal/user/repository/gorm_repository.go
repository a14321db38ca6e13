package repository

import (
	"context"
	"errors"
	"time"

	"taskmanager-backend/internal/common"
	taskdomain "taskmanager-backend/internal/task/domain"
	"taskmanager-backend/internal/user/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// userRepository implements UserRepository interface
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new instance of userRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{
		db: db,
	}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	return translate(r.db.WithContext(ctx).Create(user).Error)
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) UpdateProfile(ctx context.Context, id string, update domain.ProfileUpdate) error {
	values := &domain.User{UpdatedAt: time.Now()}
	update.Apply(values)

	result := r.db.WithContext(ctx).Model(&domain.User{}).Where("id = ?", id).
		Select(append(update.Columns(), "updated_at")).
		Updates(values)
	return affected(result)
}

func (r *userRepository) AppendToken(ctx context.Context, id, token string) error {
	return r.updateTokens(ctx, id, func(tokens []domain.Token) []domain.Token {
		return append(tokens, domain.Token{Token: token})
	})
}

func (r *userRepository) RemoveToken(ctx context.Context, id, token string) error {
	return r.updateTokens(ctx, id, func(tokens []domain.Token) []domain.Token {
		user := domain.User{Tokens: tokens}
		user.RemoveToken(token)
		return user.Tokens
	})
}

func (r *userRepository) ClearTokens(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Model(&domain.User{}).Where("id = ?", id).
		Select("tokens", "updated_at").
		Updates(&domain.User{Tokens: []domain.Token{}, UpdatedAt: time.Now()})
	return affected(result)
}

func (r *userRepository) SetAvatar(ctx context.Context, id string, avatar []byte) error {
	result := r.db.WithContext(ctx).Model(&domain.User{}).Where("id = ?", id).
		Select("avatar", "updated_at").
		Updates(&domain.User{Avatar: avatar, UpdatedAt: time.Now()})
	return affected(result)
}

// updateTokens rewrites the token list under a row lock so concurrent
// logins and logouts of the same user are applied one after the other.
func (r *userRepository) updateTokens(ctx context.Context, id string, change func([]domain.Token) []domain.Token) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user domain.User
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id", "tokens").
			Where("id = ?", id).
			Take(&user).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return common.ErrNotFound
		}
		if err != nil {
			return err
		}

		return tx.Model(&domain.User{}).Where("id = ?", id).
			Select("tokens", "updated_at").
			Updates(&domain.User{Tokens: change(user.Tokens), UpdatedAt: time.Now()}).Error
	})
}

// Delete removes the user's tasks first, then the user, in one transaction.
func (r *userRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("owner = ?", id).Delete(&taskdomain.Task{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&domain.User{}).Error
	})
}

func affected(result *gorm.DB) error {
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return common.ErrNotFound
	}
	return nil
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return common.ErrAlreadyExists
	}
	return err
}
