package store

import (
	"context"
	"database/sql"

	"github.com/taskman/taskman-api/internal/domain"
)

// TaskStore defines the interface for task data persistence.
type TaskStore interface {
	// ListAll retrieves every task in insertion order.
	// An empty store yields an empty slice, not an error.
	ListAll(ctx context.Context) ([]domain.Task, error)

	// GetByID retrieves a task by its unique ID.
	// Returns ErrTaskNotFound if the task does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Task, error)

	// Create saves a new task to the store. The owner existence check and the
	// insert execute within a single transaction, so a task is never created
	// for a user that vanished mid-request. The store assigns the ID on
	// success and the task starts not completed.
	// Returns ErrUserNotFound if the owning user does not exist.
	// Returns ErrSlugExists if the slug derived from the title is taken.
	Create(ctx context.Context, task *domain.Task) error

	// Update modifies only the title, content and priority of an existing
	// task. The completed flag, slug, owner and ID are never changed.
	// Returns ErrTaskNotFound if the task does not exist.
	Update(ctx context.Context, id int64, title, content string, priority int) error

	// Delete removes a single task from the store by its ID.
	// Returns ErrTaskNotFound if the task does not exist.
	Delete(ctx context.Context, id int64) error

	// WithTx returns a new TaskStore instance that uses the provided transaction.
	// This allows for multiple operations to be executed within a single transaction.
	WithTx(tx *sql.Tx) TaskStore
}
