package repository

import (
	"context"
	"sync"
	"time"

	"taskmanager-backend/internal/common"
	"taskmanager-backend/internal/user/domain"

	"github.com/google/uuid"
)

// TaskPurger removes every task of an owner. The in-memory task store
// implements it.
type TaskPurger interface {
	DeleteByOwner(ctx context.Context, owner string) error
}

// MemoryUserRepository keeps users in process memory.
type MemoryUserRepository struct {
	mu      sync.RWMutex
	users   map[string]*domain.User
	byEmail map[string]string
	tasks   TaskPurger
}

func NewMemoryUserRepository(tasks TaskPurger) *MemoryUserRepository {
	return &MemoryUserRepository{
		users:   make(map[string]*domain.User),
		byEmail: make(map[string]string),
		tasks:   tasks,
	}
}

func (r *MemoryUserRepository) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.byEmail[user.Email]; taken {
		return common.ErrAlreadyExists
	}
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	r.users[user.ID] = clone(user)
	r.byEmail[user.Email] = user.ID
	return nil
}

func (r *MemoryUserRepository) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return nil, nil
	}
	return clone(r.users[id]), nil
}

func (r *MemoryUserRepository) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	return clone(user), nil
}

func (r *MemoryUserRepository) UpdateProfile(_ context.Context, id string, update domain.ProfileUpdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.users[id]
	if !ok {
		return common.ErrNotFound
	}
	if update.Email != nil {
		if owner, taken := r.byEmail[*update.Email]; taken && owner != id {
			return common.ErrAlreadyExists
		}
		delete(r.byEmail, stored.Email)
		r.byEmail[*update.Email] = id
	}

	update.Apply(stored)
	stored.UpdatedAt = time.Now()
	return nil
}

func (r *MemoryUserRepository) AppendToken(_ context.Context, id, token string) error {
	return r.modify(id, func(user *domain.User) {
		user.Tokens = append(user.Tokens, domain.Token{Token: token})
	})
}

func (r *MemoryUserRepository) RemoveToken(_ context.Context, id, token string) error {
	return r.modify(id, func(user *domain.User) {
		user.RemoveToken(token)
	})
}

func (r *MemoryUserRepository) ClearTokens(_ context.Context, id string) error {
	return r.modify(id, func(user *domain.User) {
		user.Tokens = []domain.Token{}
	})
}

func (r *MemoryUserRepository) SetAvatar(_ context.Context, id string, avatar []byte) error {
	return r.modify(id, func(user *domain.User) {
		user.Avatar = append([]byte(nil), avatar...)
	})
}

// modify applies change to the stored user while holding the write lock.
func (r *MemoryUserRepository) modify(id string, change func(*domain.User)) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.users[id]
	if !ok {
		return common.ErrNotFound
	}
	change(stored)
	stored.UpdatedAt = time.Now()
	return nil
}

func (r *MemoryUserRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.users[id]
	if !ok {
		return nil
	}
	if r.tasks != nil {
		if err := r.tasks.DeleteByOwner(ctx, id); err != nil {
			return err
		}
	}
	delete(r.byEmail, stored.Email)
	delete(r.users, id)
	return nil
}

func clone(user *domain.User) *domain.User {
	c := *user
	c.Avatar = append([]byte(nil), user.Avatar...)
	c.Tokens = append([]domain.Token(nil), user.Tokens...)
	return &c
}
