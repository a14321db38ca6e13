package repository

import (
	"context"
	"testing"
	"time"

	"taskmanager-backend/internal/common"
	"taskmanager-backend/internal/task/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seed(t *testing.T, r *MemoryTaskRepository, owner string, tasks ...domain.Task) []*domain.Task {
	t.Helper()
	var out []*domain.Task
	for _, task := range tasks {
		task := task
		task.Owner = owner
		require.NoError(t, r.Create(context.Background(), &task))
		out = append(out, &task)
		time.Sleep(time.Millisecond)
	}
	return out
}

func descriptions(tasks []*domain.Task) []string {
	out := make([]string, 0, len(tasks))
	for _, task := range tasks {
		out = append(out, task.Description)
	}
	return out
}

func TestMemoryTaskRepository_CreateAndFind(t *testing.T) {
	r := NewMemoryTaskRepository()
	ctx := context.Background()

	task := &domain.Task{Description: "First task", Owner: "u1"}
	require.NoError(t, r.Create(ctx, task))
	assert.NotEmpty(t, task.ID)
	assert.False(t, task.CreatedAt.IsZero())

	found, err := r.FindByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, task, found)

	missing, err := r.FindByID(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestMemoryTaskRepository_FindByOwner(t *testing.T) {
	r := NewMemoryTaskRepository()
	ctx := context.Background()

	seed(t, r, "u1",
		domain.Task{Description: "b task"},
		domain.Task{Description: "a task", Completed: true},
		domain.Task{Description: "c task"},
	)
	seed(t, r, "u2", domain.Task{Description: "foreign"})

	yes, no := true, false

	tests := []struct {
		name string
		opts domain.ListOptions
		want []string
	}{
		{"insertion order", domain.ListOptions{}, []string{"b task", "a task", "c task"}},
		{"completed only", domain.ListOptions{Completed: &yes}, []string{"a task"}},
		{"incomplete only", domain.ListOptions{Completed: &no}, []string{"b task", "c task"}},
		{"description asc", domain.ListOptions{SortColumn: "description"}, []string{"a task", "b task", "c task"}},
		{"description desc", domain.ListOptions{SortColumn: "description", SortDesc: true}, []string{"c task", "b task", "a task"}},
		{"completed asc", domain.ListOptions{SortColumn: "completed"}, []string{"b task", "c task", "a task"}},
		{"completed desc", domain.ListOptions{SortColumn: "completed", SortDesc: true}, []string{"a task", "b task", "c task"}},
		{"created desc", domain.ListOptions{SortColumn: "created_at", SortDesc: true}, []string{"c task", "a task", "b task"}},
		{"unknown column", domain.ListOptions{SortColumn: "owner"}, []string{"b task", "a task", "c task"}},
		{"limit", domain.ListOptions{SortColumn: "description", Limit: 1}, []string{"a task"}},
		{"skip", domain.ListOptions{SortColumn: "description", Skip: 1}, []string{"b task", "c task"}},
		{"skip past end", domain.ListOptions{Skip: 5}, []string{}},
		{"limit and skip", domain.ListOptions{SortColumn: "description", Limit: 1, Skip: 1}, []string{"b task"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tasks, err := r.FindByOwner(ctx, "u1", tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, descriptions(tasks))
		})
	}
}

func TestMemoryTaskRepository_UpdateKeepsOwner(t *testing.T) {
	r := NewMemoryTaskRepository()
	ctx := context.Background()
	task := seed(t, r, "u1", domain.Task{Description: "old"})[0]

	changed := *task
	changed.Description = "new"
	changed.Completed = true
	changed.Owner = "u2"
	require.NoError(t, r.Update(ctx, &changed))

	found, err := r.FindByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "new", found.Description)
	assert.True(t, found.Completed)
	assert.Equal(t, "u1", found.Owner)
	assert.True(t, found.UpdatedAt.After(task.UpdatedAt))
}

func TestMemoryTaskRepository_UpdateMissingTask(t *testing.T) {
	r := NewMemoryTaskRepository()

	err := r.Update(context.Background(), &domain.Task{ID: "gone", Description: "x", Owner: "u1"})
	assert.ErrorIs(t, err, common.ErrNotFound)

	found, err := r.FindByID(context.Background(), "gone")
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestMemoryTaskRepository_DeleteByOwner(t *testing.T) {
	r := NewMemoryTaskRepository()
	ctx := context.Background()
	seed(t, r, "u1", domain.Task{Description: "one"}, domain.Task{Description: "two"})
	kept := seed(t, r, "u2", domain.Task{Description: "three"})[0]

	require.NoError(t, r.DeleteByOwner(ctx, "u1"))

	mine, err := r.FindByOwner(ctx, "u1", domain.ListOptions{})
	require.NoError(t, err)
	assert.Empty(t, mine)

	found, err := r.FindByID(ctx, kept.ID)
	require.NoError(t, err)
	assert.NotNil(t, found)
}

func TestMemoryTaskRepository_Delete(t *testing.T) {
	r := NewMemoryTaskRepository()
	ctx := context.Background()
	task := seed(t, r, "u1", domain.Task{Description: "gone"})[0]

	require.NoError(t, r.Delete(ctx, task.ID))
	require.NoError(t, r.Delete(ctx, task.ID))

	found, err := r.FindByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Nil(t, found)
}
