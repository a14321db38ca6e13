package usecase

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"taskmanager-backend/internal/common"
	"taskmanager-backend/internal/task/domain"
	"taskmanager-backend/internal/task/repository"
)

// taskUsecase implements TaskUsecase interface
type taskUsecase struct {
	taskRepo repository.TaskRepository
}

// NewTaskUsecase creates a new instance of taskUsecase
func NewTaskUsecase(taskRepo repository.TaskRepository) TaskUsecase {
	return &taskUsecase{
		taskRepo: taskRepo,
	}
}

func (u *taskUsecase) CreateTask(ctx context.Context, owner string, req CreateTaskRequest) (*domain.Task, error) {
	task := &domain.Task{
		Description: req.Description,
		Completed:   req.Completed,
		Owner:       owner,
	}

	task.Normalize()
	if err := task.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrValidation, err)
	}

	if err := u.taskRepo.Create(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (u *taskUsecase) GetTaskByID(ctx context.Context, owner, taskID string) (*domain.Task, error) {
	task, err := u.taskRepo.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	// a foreign task is reported exactly like a missing one
	if task == nil || task.Owner != owner {
		return nil, fmt.Errorf("%w: task", common.ErrNotFound)
	}
	return task, nil
}

func (u *taskUsecase) GetUserTasks(ctx context.Context, owner string, query ListQuery) ([]*domain.Task, error) {
	return u.taskRepo.FindByOwner(ctx, owner, ParseListQuery(query))
}

func (u *taskUsecase) UpdateTask(ctx context.Context, owner, taskID string, updates TaskUpdateRequest) (*domain.Task, error) {
	task, err := u.GetTaskByID(ctx, owner, taskID)
	if err != nil {
		return nil, err
	}

	if updates.Description != nil {
		task.Description = *updates.Description
	}
	if updates.Completed != nil {
		task.Completed = *updates.Completed
	}

	task.Normalize()
	if err := task.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrValidation, err)
	}

	if err := u.taskRepo.Update(ctx, task); err != nil {
		// deleted between the lookup and the write
		if errors.Is(err, common.ErrNotFound) {
			return nil, fmt.Errorf("%w: task", common.ErrNotFound)
		}
		return nil, err
	}
	return task, nil
}

func (u *taskUsecase) DeleteTask(ctx context.Context, owner, taskID string) (*domain.Task, error) {
	task, err := u.GetTaskByID(ctx, owner, taskID)
	if err != nil {
		return nil, err
	}
	if err := u.taskRepo.Delete(ctx, task.ID); err != nil {
		return nil, err
	}
	return task, nil
}

// ParseListQuery turns list query values into store options. Malformed
// values are dropped rather than rejected.
func ParseListQuery(q ListQuery) domain.ListOptions {
	var opts domain.ListOptions

	if q.Completed != "" {
		completed := q.Completed == "true"
		opts.Completed = &completed
	}

	if q.SortBy != "" {
		field, direction, _ := strings.Cut(q.SortBy, ":")
		if column, ok := domain.SortableFields[field]; ok {
			opts.SortColumn = column
			opts.SortDesc = direction == "desc"
		}
	}

	if limit, err := strconv.Atoi(q.Limit); err == nil && limit > 0 {
		opts.Limit = limit
	}
	if skip, err := strconv.Atoi(q.Skip); err == nil && skip > 0 {
		opts.Skip = skip
	}

	return opts
}
