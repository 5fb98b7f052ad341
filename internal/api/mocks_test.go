package api

import (
	"context"
	"database/sql"

	"github.com/taskman/taskman-api/internal/domain"
	"github.com/taskman/taskman-api/internal/store"
)

// mockUserStore is a mock implementation of the store.UserStore interface
type mockUserStore struct {
	listAllFn   func(ctx context.Context) ([]domain.User, error)
	getByIDFn   func(ctx context.Context, id int64) (*domain.User, error)
	createFn    func(ctx context.Context, user *domain.User) error
	updateFn    func(ctx context.Context, id int64, firstname, lastname string, age int) error
	deleteFn    func(ctx context.Context, id int64) error
	listTasksFn func(ctx context.Context, id int64) ([]domain.Task, error)
}

func (m *mockUserStore) ListAll(ctx context.Context) ([]domain.User, error) {
	return m.listAllFn(ctx)
}

func (m *mockUserStore) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return m.getByIDFn(ctx, id)
}

func (m *mockUserStore) Create(ctx context.Context, user *domain.User) error {
	return m.createFn(ctx, user)
}

func (m *mockUserStore) Update(ctx context.Context, id int64, firstname, lastname string, age int) error {
	return m.updateFn(ctx, id, firstname, lastname, age)
}

func (m *mockUserStore) Delete(ctx context.Context, id int64) error {
	return m.deleteFn(ctx, id)
}

func (m *mockUserStore) ListTasks(ctx context.Context, id int64) ([]domain.Task, error) {
	return m.listTasksFn(ctx, id)
}

func (m *mockUserStore) WithTx(tx *sql.Tx) store.UserStore {
	return m
}

// mockTaskStore is a mock implementation of the store.TaskStore interface
type mockTaskStore struct {
	listAllFn func(ctx context.Context) ([]domain.Task, error)
	getByIDFn func(ctx context.Context, id int64) (*domain.Task, error)
	createFn  func(ctx context.Context, task *domain.Task) error
	updateFn  func(ctx context.Context, id int64, title, content string, priority int) error
	deleteFn  func(ctx context.Context, id int64) error
}

func (m *mockTaskStore) ListAll(ctx context.Context) ([]domain.Task, error) {
	return m.listAllFn(ctx)
}

func (m *mockTaskStore) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	return m.getByIDFn(ctx, id)
}

func (m *mockTaskStore) Create(ctx context.Context, task *domain.Task) error {
	return m.createFn(ctx, task)
}

func (m *mockTaskStore) Update(ctx context.Context, id int64, title, content string, priority int) error {
	return m.updateFn(ctx, id, title, content, priority)
}

func (m *mockTaskStore) Delete(ctx context.Context, id int64) error {
	return m.deleteFn(ctx, id)
}

func (m *mockTaskStore) WithTx(tx *sql.Tx) store.TaskStore {
	return m
}
