package postgres_test

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskman/taskman-api/internal/domain"
	"github.com/taskman/taskman-api/internal/platform/postgres"
	"github.com/taskman/taskman-api/internal/store"
)

func newTaskStore(t *testing.T) (store.TaskStore, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return postgres.NewPostgresTaskStore(db, nil), mock
}

func TestNewPostgresTaskStoreRequiresDB(t *testing.T) {
	assert.Panics(t, func() {
		postgres.NewPostgresTaskStore(nil, nil)
	})
}

func TestTaskStoreListAll(t *testing.T) {
	s, mock := newTaskStore(t)

	rows := sqlmock.NewRows([]string{"id", "title", "content", "priority", "completed", "user_id", "slug"}).
		AddRow(1, "Buy milk", "2 liters", 0, false, 7, "buy-milk").
		AddRow(2, "Walk dog", "evening", 1, true, 7, "walk-dog")
	mock.ExpectQuery("SELECT id, title, content, priority, completed, user_id, slug").
		WillReturnRows(rows)

	tasks, err := s.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, int64(1), tasks[0].ID)
	assert.True(t, tasks[1].Completed)
}

func TestTaskStoreGetByID(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		s, mock := newTaskStore(t)

		rows := sqlmock.NewRows([]string{"id", "title", "content", "priority", "completed", "user_id", "slug"}).
			AddRow(3, "Buy milk", "2 liters", 0, false, 7, "buy-milk")
		mock.ExpectQuery("SELECT id, title, content, priority, completed, user_id, slug").
			WithArgs(int64(3)).
			WillReturnRows(rows)

		task, err := s.GetByID(context.Background(), 3)
		require.NoError(t, err)
		assert.Equal(t, "Buy milk", task.Title)
		assert.Equal(t, int64(7), task.UserID)
	})

	t.Run("absent", func(t *testing.T) {
		s, mock := newTaskStore(t)

		mock.ExpectQuery("SELECT id, title, content, priority, completed, user_id, slug").
			WithArgs(int64(99)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "title", "content", "priority", "completed", "user_id", "slug"}))

		task, err := s.GetByID(context.Background(), 99)
		assert.ErrorIs(t, err, store.ErrTaskNotFound)
		assert.Nil(t, task)
	})
}

func TestTaskStoreCreate(t *testing.T) {
	t.Run("checks the owner and inserts in one transaction", func(t *testing.T) {
		s, mock := newTaskStore(t)

		task, err := domain.NewTask("Buy milk", "2 liters", 0, 7)
		require.NoError(t, err)

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT EXISTS").
			WithArgs(int64(7)).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
		mock.ExpectQuery("INSERT INTO tasks").
			WithArgs("Buy milk", "2 liters", 0, int64(7), "buy-milk").
			WillReturnRows(sqlmock.NewRows([]string{"id", "completed"}).AddRow(int64(5), false))
		mock.ExpectCommit()

		require.NoError(t, s.Create(context.Background(), task))
		assert.Equal(t, int64(5), task.ID)
		assert.False(t, task.Completed)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("absent owner leaves the tasks table unchanged", func(t *testing.T) {
		s, mock := newTaskStore(t)

		task, err := domain.NewTask("Buy milk", "2 liters", 0, 99)
		require.NoError(t, err)

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT EXISTS").
			WithArgs(int64(99)).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
		mock.ExpectRollback()

		err = s.Create(context.Background(), task)
		assert.ErrorIs(t, err, store.ErrUserNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("slug collision maps to conflict and rolls back", func(t *testing.T) {
		s, mock := newTaskStore(t)

		task, err := domain.NewTask("Buy milk", "2 liters", 0, 7)
		require.NoError(t, err)

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT EXISTS").
			WithArgs(int64(7)).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
		mock.ExpectQuery("INSERT INTO tasks").
			WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "tasks_slug_idx"})
		mock.ExpectRollback()

		err = s.Create(context.Background(), task)
		assert.ErrorIs(t, err, store.ErrSlugExists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestTaskStoreUpdate(t *testing.T) {
	t.Run("updates mutable fields only", func(t *testing.T) {
		s, mock := newTaskStore(t)

		mock.ExpectExec("UPDATE tasks").
			WithArgs("Buy oat milk", "1 liter", 2, int64(3)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, s.Update(context.Background(), 3, "Buy oat milk", "1 liter", 2))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("absent task", func(t *testing.T) {
		s, mock := newTaskStore(t)

		mock.ExpectExec("UPDATE tasks").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := s.Update(context.Background(), 99, "Title", "Content", 0)
		assert.ErrorIs(t, err, store.ErrTaskNotFound)
	})
}

func TestTaskStoreDelete(t *testing.T) {
	t.Run("deletes the row", func(t *testing.T) {
		s, mock := newTaskStore(t)

		mock.ExpectExec("DELETE FROM tasks").
			WithArgs(int64(3)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, s.Delete(context.Background(), 3))
	})

	t.Run("absent task", func(t *testing.T) {
		s, mock := newTaskStore(t)

		mock.ExpectExec("DELETE FROM tasks").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := s.Delete(context.Background(), 99)
		assert.ErrorIs(t, err, store.ErrTaskNotFound)
	})
}
