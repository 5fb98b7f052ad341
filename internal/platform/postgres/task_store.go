package postgres

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/taskman/taskman-api/internal/domain"
	"github.com/taskman/taskman-api/internal/platform/logger"
	"github.com/taskman/taskman-api/internal/store"
)

// PostgresTaskStore implements the store.TaskStore interface
// using a PostgreSQL database as the storage backend.
type PostgresTaskStore struct {
	db     store.DBTX
	pool   *sql.DB // nil when the store is bound to a transaction
	logger *slog.Logger
}

// NewPostgresTaskStore creates a new PostgreSQL implementation of the TaskStore interface.
// It accepts a database connection that should be initialized and managed by the caller.
// If logger is nil, the default logger is used.
func NewPostgresTaskStore(db *sql.DB, log *slog.Logger) *PostgresTaskStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &PostgresTaskStore{
		db:     db,
		pool:   db,
		logger: log.With(slog.String("component", "task_store")),
	}
}

// Ensure PostgresTaskStore implements store.TaskStore interface
var _ store.TaskStore = (*PostgresTaskStore)(nil)

// WithTx implements store.TaskStore.WithTx
func (s *PostgresTaskStore) WithTx(tx *sql.Tx) store.TaskStore {
	return &PostgresTaskStore{
		db:     tx,
		logger: s.logger,
	}
}

// ListAll implements store.TaskStore.ListAll
func (s *PostgresTaskStore) ListAll(ctx context.Context) ([]domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, title, content, priority, completed, user_id, slug
		FROM tasks
		ORDER BY id
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("failed to query tasks", "error", err)
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
			log.Error("failed to scan task row", "error", err)
			return nil, MapError(err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		log.Error("error iterating task rows", "error", err)
		return nil, MapError(err)
	}

	return tasks, nil
}

// GetByID implements store.TaskStore.GetByID
func (s *PostgresTaskStore) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	query := `
		SELECT id, title, content, priority, completed, user_id, slug
		FROM tasks
		WHERE id = $1
	`

	var task domain.Task
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&task.ID,
		&task.Title,
		&task.Content,
		&task.Priority,
		&task.Completed,
		&task.UserID,
		&task.Slug,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, store.ErrTaskNotFound
		}
		return nil, MapError(err)
	}

	return &task, nil
}

// Create implements store.TaskStore.Create
// The owner existence check and the insert run inside one transaction, so the
// referenced user cannot disappear between the check and the write. The
// unique index on slug turns racing creates into exactly one success and one
// store.ErrSlugExists.
func (s *PostgresTaskStore) Create(ctx context.Context, task *domain.Task) error {
	if s.pool == nil {
		return s.create(ctx, s.db, task)
	}

	return store.RunInTransaction(ctx, s.pool, func(ctx context.Context, tx *sql.Tx) error {
		return s.create(ctx, tx, task)
	})
}

func (s *PostgresTaskStore) create(ctx context.Context, db store.DBTX, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var ownerExists bool
	err := db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)`, task.UserID).
		Scan(&ownerExists)
	if err != nil {
		log.Error("failed to check owner existence", "user_id", task.UserID, "error", err)
		return MapError(err)
	}
	if !ownerExists {
		return store.ErrUserNotFound
	}

	// completed is left to its column default (false)
	query := `
		INSERT INTO tasks (title, content, priority, user_id, slug)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, completed
	`

	err = db.QueryRowContext(ctx, query,
		task.Title,
		task.Content,
		task.Priority,
		task.UserID,
		task.Slug,
	).Scan(&task.ID, &task.Completed)
	if err != nil {
		mapped := MapError(err)
		if !store.IsDuplicateError(mapped) {
			log.Error("failed to insert task", "slug", task.Slug, "error", err)
		}
		return mapped
	}

	log.Debug("task created", "task_id", task.ID, "user_id", task.UserID, "slug", task.Slug)
	return nil
}

// Update implements store.TaskStore.Update
// Only title, content and priority are written; completed, slug, user_id and
// id stay untouched.
func (s *PostgresTaskStore) Update(ctx context.Context, id int64, title, content string, priority int) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE tasks
		SET title = $1, content = $2, priority = $3
		WHERE id = $4
	`

	result, err := s.db.ExecContext(ctx, query, title, content, priority, id)
	if err != nil {
		log.Error("failed to update task", "task_id", id, "error", err)
		return MapError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected", "task_id", id, "error", err)
		return MapError(err)
	}
	if rowsAffected == 0 {
		return store.ErrTaskNotFound
	}

	return nil
}

// Delete implements store.TaskStore.Delete
func (s *PostgresTaskStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete task", "task_id", id, "error", err)
		return MapError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected", "task_id", id, "error", err)
		return MapError(err)
	}
	if rowsAffected == 0 {
		return store.ErrTaskNotFound
	}

	return nil
}
