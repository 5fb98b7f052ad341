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

func newUserStore(t *testing.T) (store.UserStore, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return postgres.NewPostgresUserStore(db, nil), mock
}

func TestNewPostgresUserStoreRequiresDB(t *testing.T) {
	assert.Panics(t, func() {
		postgres.NewPostgresUserStore(nil, nil)
	})
}

func TestUserStoreListAll(t *testing.T) {
	t.Run("returns users in insertion order", func(t *testing.T) {
		s, mock := newUserStore(t)

		rows := sqlmock.NewRows([]string{"id", "username", "firstname", "lastname", "age", "slug"}).
			AddRow(1, "Jane Doe", "Jane", "Doe", 30, "jane-doe").
			AddRow(2, "John Doe", "John", "Doe", 35, "john-doe")
		mock.ExpectQuery("SELECT id, username, firstname, lastname, age, slug").
			WillReturnRows(rows)

		users, err := s.ListAll(context.Background())
		require.NoError(t, err)
		require.Len(t, users, 2)
		assert.Equal(t, int64(1), users[0].ID)
		assert.Equal(t, "jane-doe", users[0].Slug)
		assert.Equal(t, int64(2), users[1].ID)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty store yields empty slice", func(t *testing.T) {
		s, mock := newUserStore(t)

		mock.ExpectQuery("SELECT id, username, firstname, lastname, age, slug").
			WillReturnRows(sqlmock.NewRows([]string{"id", "username", "firstname", "lastname", "age", "slug"}))

		users, err := s.ListAll(context.Background())
		require.NoError(t, err)
		assert.NotNil(t, users)
		assert.Empty(t, users)
	})
}

func TestUserStoreGetByID(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		s, mock := newUserStore(t)

		rows := sqlmock.NewRows([]string{"id", "username", "firstname", "lastname", "age", "slug"}).
			AddRow(7, "Jane Doe", "Jane", "Doe", 30, "jane-doe")
		mock.ExpectQuery("SELECT id, username, firstname, lastname, age, slug").
			WithArgs(int64(7)).
			WillReturnRows(rows)

		user, err := s.GetByID(context.Background(), 7)
		require.NoError(t, err)
		assert.Equal(t, int64(7), user.ID)
		assert.Equal(t, "Jane Doe", user.Username)
	})

	t.Run("absent", func(t *testing.T) {
		s, mock := newUserStore(t)

		mock.ExpectQuery("SELECT id, username, firstname, lastname, age, slug").
			WithArgs(int64(99)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "username", "firstname", "lastname", "age", "slug"}))

		user, err := s.GetByID(context.Background(), 99)
		assert.ErrorIs(t, err, store.ErrUserNotFound)
		assert.Nil(t, user)
	})
}

func TestUserStoreCreate(t *testing.T) {
	t.Run("assigns the generated id", func(t *testing.T) {
		s, mock := newUserStore(t)

		user, err := domain.NewUser("Jane Doe", "Jane", "Doe", 30)
		require.NoError(t, err)

		mock.ExpectQuery("INSERT INTO users").
			WithArgs("Jane Doe", "Jane", "Doe", 30, "jane-doe").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(11)))

		require.NoError(t, s.Create(context.Background(), user))
		assert.Equal(t, int64(11), user.ID)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("slug collision maps to conflict", func(t *testing.T) {
		s, mock := newUserStore(t)

		user, err := domain.NewUser("Jane Doe", "Jane", "Doe", 30)
		require.NoError(t, err)

		mock.ExpectQuery("INSERT INTO users").
			WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_slug_idx"})

		err = s.Create(context.Background(), user)
		assert.ErrorIs(t, err, store.ErrSlugExists)
	})
}

func TestUserStoreUpdate(t *testing.T) {
	t.Run("updates mutable fields only", func(t *testing.T) {
		s, mock := newUserStore(t)

		mock.ExpectExec("UPDATE users").
			WithArgs("Janet", "Doe", 31, int64(7)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, s.Update(context.Background(), 7, "Janet", "Doe", 31))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("absent user", func(t *testing.T) {
		s, mock := newUserStore(t)

		mock.ExpectExec("UPDATE users").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := s.Update(context.Background(), 99, "Janet", "Doe", 31)
		assert.ErrorIs(t, err, store.ErrUserNotFound)
	})
}

func TestUserStoreDelete(t *testing.T) {
	t.Run("cascades to owned tasks in one transaction", func(t *testing.T) {
		s, mock := newUserStore(t)

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT EXISTS").
			WithArgs(int64(7)).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
		mock.ExpectExec("DELETE FROM tasks").
			WithArgs(int64(7)).
			WillReturnResult(sqlmock.NewResult(0, 3))
		mock.ExpectExec("DELETE FROM users").
			WithArgs(int64(7)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		require.NoError(t, s.Delete(context.Background(), 7))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("absent user rolls back without deleting anything", func(t *testing.T) {
		s, mock := newUserStore(t)

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT EXISTS").
			WithArgs(int64(99)).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
		mock.ExpectRollback()

		err := s.Delete(context.Background(), 99)
		assert.ErrorIs(t, err, store.ErrUserNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("failed task delete aborts the whole cascade", func(t *testing.T) {
		s, mock := newUserStore(t)

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT EXISTS").
			WithArgs(int64(7)).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
		mock.ExpectExec("DELETE FROM tasks").
			WillReturnError(assert.AnError)
		mock.ExpectRollback()

		err := s.Delete(context.Background(), 7)
		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserStoreListTasks(t *testing.T) {
	t.Run("returns the user's tasks", func(t *testing.T) {
		s, mock := newUserStore(t)

		mock.ExpectQuery("SELECT EXISTS").
			WithArgs(int64(7)).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
		rows := sqlmock.NewRows([]string{"id", "title", "content", "priority", "completed", "user_id", "slug"}).
			AddRow(1, "Buy milk", "2 liters", 0, false, 7, "buy-milk").
			AddRow(2, "Walk dog", "evening", 1, true, 7, "walk-dog")
		mock.ExpectQuery("SELECT id, title, content, priority, completed, user_id, slug").
			WithArgs(int64(7)).
			WillReturnRows(rows)

		tasks, err := s.ListTasks(context.Background(), 7)
		require.NoError(t, err)
		require.Len(t, tasks, 2)
		assert.Equal(t, "buy-milk", tasks[0].Slug)
		assert.Equal(t, int64(7), tasks[1].UserID)
	})

	t.Run("absent user", func(t *testing.T) {
		s, mock := newUserStore(t)

		mock.ExpectQuery("SELECT EXISTS").
			WithArgs(int64(99)).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

		tasks, err := s.ListTasks(context.Background(), 99)
		assert.ErrorIs(t, err, store.ErrUserNotFound)
		assert.Nil(t, tasks)
	})
}
