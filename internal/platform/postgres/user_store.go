package postgres

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/taskman/taskman-api/internal/domain"
	"github.com/taskman/taskman-api/internal/platform/logger"
	"github.com/taskman/taskman-api/internal/store"
)

// PostgresUserStore implements the store.UserStore interface
// using a PostgreSQL database as the storage backend.
type PostgresUserStore struct {
	db     store.DBTX
	pool   *sql.DB // nil when the store is bound to a transaction
	logger *slog.Logger
}

// NewPostgresUserStore creates a new PostgreSQL implementation of the UserStore interface.
// It accepts a database connection that should be initialized and managed by the caller.
// If logger is nil, the default logger is used.
func NewPostgresUserStore(db *sql.DB, log *slog.Logger) *PostgresUserStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &PostgresUserStore{
		db:     db,
		pool:   db,
		logger: log.With(slog.String("component", "user_store")),
	}
}

// Ensure PostgresUserStore implements store.UserStore interface
var _ store.UserStore = (*PostgresUserStore)(nil)

// WithTx implements store.UserStore.WithTx
func (s *PostgresUserStore) WithTx(tx *sql.Tx) store.UserStore {
	return &PostgresUserStore{
		db:     tx,
		logger: s.logger,
	}
}

// ListAll implements store.UserStore.ListAll
func (s *PostgresUserStore) ListAll(ctx context.Context) ([]domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, username, firstname, lastname, age, slug
		FROM users
		ORDER BY id
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("failed to query users", "error", err)
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	users := []domain.User{}
	for rows.Next() {
		var user domain.User
		if err := rows.Scan(
			&user.ID,
			&user.Username,
			&user.Firstname,
			&user.Lastname,
			&user.Age,
			&user.Slug,
		); err != nil {
			log.Error("failed to scan user row", "error", err)
			return nil, MapError(err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		log.Error("error iterating user rows", "error", err)
		return nil, MapError(err)
	}

	return users, nil
}

// GetByID implements store.UserStore.GetByID
func (s *PostgresUserStore) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	query := `
		SELECT id, username, firstname, lastname, age, slug
		FROM users
		WHERE id = $1
	`

	var user domain.User
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&user.ID,
		&user.Username,
		&user.Firstname,
		&user.Lastname,
		&user.Age,
		&user.Slug,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, store.ErrUserNotFound
		}
		return nil, MapError(err)
	}

	return &user, nil
}

// Create implements store.UserStore.Create
// The unique index on slug makes the insert the collision check: of two
// creates racing on the same slug, exactly one commits and the other maps to
// store.ErrSlugExists.
func (s *PostgresUserStore) Create(ctx context.Context, user *domain.User) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		INSERT INTO users (username, firstname, lastname, age, slug)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err := s.db.QueryRowContext(ctx, query,
		user.Username,
		user.Firstname,
		user.Lastname,
		user.Age,
		user.Slug,
	).Scan(&user.ID)
	if err != nil {
		mapped := MapError(err)
		if !store.IsDuplicateError(mapped) {
			log.Error("failed to insert user", "slug", user.Slug, "error", err)
		}
		return mapped
	}

	log.Debug("user created", "user_id", user.ID, "slug", user.Slug)
	return nil
}

// Update implements store.UserStore.Update
// Only firstname, lastname and age are written; username, slug and id stay
// untouched.
func (s *PostgresUserStore) Update(ctx context.Context, id int64, firstname, lastname string, age int) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE users
		SET firstname = $1, lastname = $2, age = $3
		WHERE id = $4
	`

	result, err := s.db.ExecContext(ctx, query, firstname, lastname, age, id)
	if err != nil {
		log.Error("failed to update user", "user_id", id, "error", err)
		return MapError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected", "user_id", id, "error", err)
		return MapError(err)
	}
	if rowsAffected == 0 {
		return store.ErrUserNotFound
	}

	return nil
}

// Delete implements store.UserStore.Delete
// The user's tasks and the user itself are deleted inside one transaction so
// the cascade never partially applies. When the store is already bound to a
// caller-managed transaction the statements run directly on it.
func (s *PostgresUserStore) Delete(ctx context.Context, id int64) error {
	if s.pool == nil {
		return s.deleteCascade(ctx, s.db, id)
	}

	return store.RunInTransaction(ctx, s.pool, func(ctx context.Context, tx *sql.Tx) error {
		return s.deleteCascade(ctx, tx, id)
	})
}

func (s *PostgresUserStore) deleteCascade(ctx context.Context, db store.DBTX, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var exists bool
	err := db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		log.Error("failed to check user existence", "user_id", id, "error", err)
		return MapError(err)
	}
	if !exists {
		return store.ErrUserNotFound
	}

	// Owned tasks go first; the storage engine does not cascade on its own.
	if _, err := db.ExecContext(ctx, `DELETE FROM tasks WHERE user_id = $1`, id); err != nil {
		log.Error("failed to delete tasks for user", "user_id", id, "error", err)
		return MapError(err)
	}

	if _, err := db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id); err != nil {
		log.Error("failed to delete user", "user_id", id, "error", err)
		return MapError(err)
	}

	log.Debug("user and owned tasks deleted", "user_id", id)
	return nil
}

// ListTasks implements store.UserStore.ListTasks
func (s *PostgresUserStore) ListTasks(ctx context.Context, id int64) ([]domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var exists bool
	err := s.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		log.Error("failed to check user existence", "user_id", id, "error", err)
		return nil, MapError(err)
	}
	if !exists {
		return nil, store.ErrUserNotFound
	}

	query := `
		SELECT id, title, content, priority, completed, user_id, slug
		FROM tasks
		WHERE user_id = $1
		ORDER BY id
	`

	rows, err := s.db.QueryContext(ctx, query, id)
	if err != nil {
		log.Error("failed to query tasks for user", "user_id", id, "error", err)
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	tasks := []domain.Task{}
	for rows.Next() {
		var task domain.Task
		if err := rows.Scan(
			&task.ID,
			&task.Title,
			&task.Content,
			&task.Priority,
			&task.Completed,
			&task.UserID,
			&task.Slug,
		); err != nil {
			log.Error("failed to scan task row", "user_id", id, "error", err)
			return nil, MapError(err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		log.Error("error iterating task rows", "user_id", id, "error", err)
		return nil, MapError(err)
	}

	return tasks, nil
}
