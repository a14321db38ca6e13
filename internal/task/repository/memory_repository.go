package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"taskmanager-backend/internal/common"
	"taskmanager-backend/internal/task/domain"

	"github.com/google/uuid"
)

// MemoryTaskRepository keeps tasks in process memory. It serves development
// runs without a database and the package tests.
type MemoryTaskRepository struct {
	mu    sync.RWMutex
	tasks map[string]*domain.Task
	order []string // insertion order of IDs
}

func NewMemoryTaskRepository() *MemoryTaskRepository {
	return &MemoryTaskRepository{tasks: make(map[string]*domain.Task)}
}

func (r *MemoryTaskRepository) Create(_ context.Context, task *domain.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if task.ID == "" {
		task.ID = uuid.New().String()
	}
	now := time.Now()
	task.CreatedAt = now
	task.UpdatedAt = now

	stored := *task
	r.tasks[task.ID] = &stored
	r.order = append(r.order, task.ID)
	return nil
}

func (r *MemoryTaskRepository) FindByID(_ context.Context, id string) (*domain.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	task, ok := r.tasks[id]
	if !ok {
		return nil, nil
	}
	found := *task
	return &found, nil
}

func (r *MemoryTaskRepository) FindByOwner(_ context.Context, owner string, opts domain.ListOptions) ([]*domain.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tasks := []*domain.Task{}
	for _, id := range r.order {
		task := r.tasks[id]
		if task.Owner != owner {
			continue
		}
		if opts.Completed != nil && task.Completed != *opts.Completed {
			continue
		}
		found := *task
		tasks = append(tasks, &found)
	}

	if less := lessFor(opts.SortColumn); less != nil {
		sort.SliceStable(tasks, func(i, j int) bool {
			if opts.SortDesc {
				return less(tasks[j], tasks[i])
			}
			return less(tasks[i], tasks[j])
		})
	}

	if opts.Skip > 0 {
		if opts.Skip >= len(tasks) {
			return []*domain.Task{}, nil
		}
		tasks = tasks[opts.Skip:]
	}
	if opts.Limit > 0 && opts.Limit < len(tasks) {
		tasks = tasks[:opts.Limit]
	}
	return tasks, nil
}

func lessFor(column string) func(a, b *domain.Task) bool {
	switch column {
	case "description":
		return func(a, b *domain.Task) bool { return a.Description < b.Description }
	case "completed":
		return func(a, b *domain.Task) bool { return !a.Completed && b.Completed }
	case "created_at":
		return func(a, b *domain.Task) bool { return a.CreatedAt.Before(b.CreatedAt) }
	case "updated_at":
		return func(a, b *domain.Task) bool { return a.UpdatedAt.Before(b.UpdatedAt) }
	default:
		return nil
	}
}

func (r *MemoryTaskRepository) Update(_ context.Context, task *domain.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.tasks[task.ID]
	if !ok {
		return common.ErrNotFound
	}
	task.UpdatedAt = time.Now()
	stored.Description = task.Description
	stored.Completed = task.Completed
	stored.UpdatedAt = task.UpdatedAt
	return nil
}

func (r *MemoryTaskRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.deleteLocked(id)
	return nil
}

// DeleteByOwner removes every task owned by owner.
func (r *MemoryTaskRepository) DeleteByOwner(_ context.Context, owner string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, id := range append([]string(nil), r.order...) {
		if r.tasks[id].Owner == owner {
			r.deleteLocked(id)
		}
	}
	return nil
}

func (r *MemoryTaskRepository) deleteLocked(id string) {
	if _, ok := r.tasks[id]; !ok {
		return
	}
	delete(r.tasks, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}
