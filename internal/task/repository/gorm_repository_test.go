package repository

import (
	"context"
	"testing"
	"time"

	"taskmanager-backend/internal/common"
	"taskmanager-backend/internal/task/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newGormMock(t *testing.T) (TaskRepository, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return NewGormTaskRepository(db), mock
}

var taskColumns = []string{"id", "description", "completed", "owner", "created_at", "updated_at"}

func TestGormTaskRepository_FindByID_NotFound(t *testing.T) {
	repo, mock := newGormMock(t)

	mock.ExpectQuery(`SELECT \* FROM "tasks" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows(taskColumns))

	task, err := repo.FindByID(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, task)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormTaskRepository_FindByID(t *testing.T) {
	repo, mock := newGormMock(t)
	now := time.Now()

	mock.ExpectQuery(`SELECT \* FROM "tasks" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows(taskColumns).AddRow("t1", "First task", false, "u1", now, now))

	task, err := repo.FindByID(context.Background(), "t1")
	require.NoError(t, err)
	require.NotNil(t, task)
	assert.Equal(t, "First task", task.Description)
	assert.Equal(t, "u1", task.Owner)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormTaskRepository_FindByOwner_BuildsQuery(t *testing.T) {
	repo, mock := newGormMock(t)
	now := time.Now()
	completed := true

	mock.ExpectQuery(`SELECT \* FROM "tasks" WHERE owner = \$1 AND completed = \$2 ORDER BY "description" DESC,created_at ASC LIMIT .* OFFSET`).
		WillReturnRows(sqlmock.NewRows(taskColumns).AddRow("t2", "Second task", true, "u1", now, now))

	tasks, err := repo.FindByOwner(context.Background(), "u1", domain.ListOptions{
		Completed:  &completed,
		SortColumn: "description",
		SortDesc:   true,
		Limit:      1,
		Skip:       1,
	})
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "t2", tasks[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormTaskRepository_FindByOwner_Empty(t *testing.T) {
	repo, mock := newGormMock(t)

	mock.ExpectQuery(`SELECT \* FROM "tasks" WHERE owner = \$1 ORDER BY created_at ASC`).
		WillReturnRows(sqlmock.NewRows(taskColumns))

	tasks, err := repo.FindByOwner(context.Background(), "u1", domain.ListOptions{})
	require.NoError(t, err)
	assert.NotNil(t, tasks)
	assert.Empty(t, tasks)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormTaskRepository_Create(t *testing.T) {
	repo, mock := newGormMock(t)

	mock.ExpectExec(`INSERT INTO "tasks"`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	task := &domain.Task{Description: "Testing", Owner: "u1"}
	require.NoError(t, repo.Create(context.Background(), task))
	assert.NotEmpty(t, task.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormTaskRepository_UpdateTouchesMutableColumnsOnly(t *testing.T) {
	repo, mock := newGormMock(t)

	mock.ExpectExec(`UPDATE "tasks" SET "description"=\$1,"completed"=\$2,"updated_at"=\$3 WHERE "id" = \$4`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	task := &domain.Task{ID: "t1", Description: "done", Completed: true, Owner: "u1"}
	require.NoError(t, repo.Update(context.Background(), task))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormTaskRepository_UpdateMissingTask(t *testing.T) {
	repo, mock := newGormMock(t)

	mock.ExpectExec(`UPDATE "tasks" SET "description"=\$1,"completed"=\$2,"updated_at"=\$3 WHERE "id" = \$4`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	task := &domain.Task{ID: "gone", Description: "done", Owner: "u1"}
	assert.ErrorIs(t, repo.Update(context.Background(), task), common.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormTaskRepository_Delete(t *testing.T) {
	repo, mock := newGormMock(t)

	mock.ExpectExec(`DELETE FROM "tasks" WHERE id = \$1`).
		WithArgs("t1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Delete(context.Background(), "t1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
