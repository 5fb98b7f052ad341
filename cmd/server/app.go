package main

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/taskman/taskman-api/internal/config"
	"github.com/taskman/taskman-api/internal/platform/postgres"
	"github.com/taskman/taskman-api/internal/store"
)

// application holds the shared dependencies of the server: configuration,
// logger, database handle and the entity stores. It is assembled once at
// startup and owns the cleanup of its resources.
type application struct {
	config    *config.Config
	logger    *slog.Logger
	db        *sql.DB
	userStore store.UserStore
	taskStore store.TaskStore
}

// newApplication wires the application together: opens the database, ensures
// the schema exists and constructs the stores.
func newApplication(cfg *config.Config, logger *slog.Logger) (*application, error) {
	db, err := setupAppDatabase(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to set up database: %w", err)
	}

	if err := bootstrapSchema(db, logger); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to bootstrap schema: %w", err)
	}

	return &application{
		config:    cfg,
		logger:    logger,
		db:        db,
		userStore: postgres.NewPostgresUserStore(db, logger),
		taskStore: postgres.NewPostgresTaskStore(db, logger),
	}, nil
}

// cleanup releases resources held by the application.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Failed to close database connection", "error", err)
		}
	}
}
