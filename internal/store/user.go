package store

import (
	"context"
	"database/sql"

	"github.com/taskman/taskman-api/internal/domain"
)

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// ListAll retrieves every user in insertion order.
	// An empty store yields an empty slice, not an error.
	ListAll(ctx context.Context) ([]domain.User, error)

	// GetByID retrieves a user by its unique ID.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id int64) (*domain.User, error)

	// Create saves a new user to the store. The user's slug must already be
	// derived from the username; the store assigns the ID on success.
	// Returns ErrSlugExists if the slug is already taken.
	Create(ctx context.Context, user *domain.User) error

	// Update modifies only the firstname, lastname and age of an existing
	// user. The username, slug and ID are never changed.
	// Returns ErrUserNotFound if the user does not exist.
	Update(ctx context.Context, id int64, firstname, lastname string, age int) error

	// Delete removes a user and every task owned by it within a single
	// transaction; the cascade never partially applies.
	// Returns ErrUserNotFound if the user does not exist.
	Delete(ctx context.Context, id int64) error

	// ListTasks retrieves the tasks owned by the given user in insertion order.
	// Returns ErrUserNotFound if the user does not exist.
	ListTasks(ctx context.Context, id int64) ([]domain.Task, error)

	// WithTx returns a new UserStore instance that uses the provided transaction.
	// This allows for multiple operations to be executed within a single transaction.
	WithTx(tx *sql.Tx) UserStore
}
