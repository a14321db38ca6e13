package repository

import (
	"context"
	"errors"
	"time"

	"taskmanager-backend/internal/common"
	"taskmanager-backend/internal/task/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// gormTaskRepository implements TaskRepository using GORM
type gormTaskRepository struct {
	db *gorm.DB
}

// NewGormTaskRepository creates a new GORM-based TaskRepository
func NewGormTaskRepository(db *gorm.DB) TaskRepository {
	return &gormTaskRepository{db: db}
}

func (r *gormTaskRepository) Create(ctx context.Context, task *domain.Task) error {
	if task.ID == "" {
		task.ID = uuid.New().String()
	}
	now := time.Now()
	task.CreatedAt = now
	task.UpdatedAt = now
	return r.db.WithContext(ctx).Create(task).Error
}

func (r *gormTaskRepository) FindByID(ctx context.Context, id string) (*domain.Task, error) {
	var task domain.Task
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&task).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &task, nil
}

func (r *gormTaskRepository) FindByOwner(ctx context.Context, owner string, opts domain.ListOptions) ([]*domain.Task, error) {
	query := r.db.WithContext(ctx).Model(&domain.Task{}).Where("owner = ?", owner)

	if opts.Completed != nil {
		query = query.Where("completed = ?", *opts.Completed)
	}

	if opts.SortColumn != "" {
		query = query.Order(clause.OrderByColumn{
			Column: clause.Column{Name: opts.SortColumn},
			Desc:   opts.SortDesc,
		})
	}
	query = query.Order("created_at ASC")

	if opts.Limit > 0 {
		query = query.Limit(opts.Limit)
	}
	if opts.Skip > 0 {
		query = query.Offset(opts.Skip)
	}

	tasks := []*domain.Task{}
	if err := query.Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *gormTaskRepository) Update(ctx context.Context, task *domain.Task) error {
	task.UpdatedAt = time.Now()
	result := r.db.WithContext(ctx).Model(task).
		Select("description", "completed", "updated_at").
		Updates(task)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *gormTaskRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&domain.Task{}, "id = ?", id).Error
}
