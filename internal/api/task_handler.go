package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/taskman/taskman-api/internal/api/shared"
	"github.com/taskman/taskman-api/internal/domain"
	"github.com/taskman/taskman-api/internal/platform/logger"
	"github.com/taskman/taskman-api/internal/store"
)

// CreateTaskRequest represents the request body for creating a new task.
// The owning user comes from the user_id query parameter, not the body.
type CreateTaskRequest struct {
	Title    string `json:"title"    validate:"required"`
	Content  string `json:"content"  validate:"required"`
	Priority int    `json:"priority" validate:"gte=0"`
}

// UpdateTaskRequest represents the request body for updating an existing task.
// The completed flag, slug and owner are immutable through this endpoint.
type UpdateTaskRequest struct {
	Title    string `json:"title"    validate:"required"`
	Content  string `json:"content"  validate:"required"`
	Priority int    `json:"priority" validate:"gte=0"`
}

// TaskHandler handles task-related HTTP requests
type TaskHandler struct {
	taskStore store.TaskStore
	logger    *slog.Logger
}

// NewTaskHandler creates a new TaskHandler
func NewTaskHandler(taskStore store.TaskStore, log *slog.Logger) *TaskHandler {
	if log == nil {
		log = slog.Default()
	}

	return &TaskHandler{
		taskStore: taskStore,
		logger:    log.With(slog.String("component", "task_handler")),
	}
}

// ListTasks handles GET /task/ requests
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	tasks, err := h.taskStore.ListAll(r.Context())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), "Failed to list tasks", err)
		return
	}

	log.Debug("listed tasks", slog.Int("count", len(tasks)))
	shared.RespondWithJSON(w, r, http.StatusOK, tasks)
}

// GetTask handles GET /task/task_id requests
func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	id, err := queryID(r, "task_id")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusUnprocessableEntity, err.Error())
		return
	}

	task, err := h.taskStore.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			shared.RespondWithError(w, r, http.StatusNotFound, taskNotFoundMessage(id))
			return
		}
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, task)
}

// CreateTask handles POST /task/create requests
// The task is created for the user named by the user_id query parameter;
// a missing user yields 404, a slug collision 409.
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, err := queryID(r, "user_id")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusUnprocessableEntity, err.Error())
		return
	}

	var req CreateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusUnprocessableEntity, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusUnprocessableEntity, "Validation error: "+err.Error())
		return
	}

	task, err := domain.NewTask(req.Title, req.Content, req.Priority, userID)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusUnprocessableEntity, err.Error())
		return
	}

	if err := h.taskStore.Create(r.Context(), task); err != nil {
		switch {
		case errors.Is(err, store.ErrUserNotFound):
			shared.RespondWithError(w, r, http.StatusNotFound, userNotFoundMessage(userID))
		case errors.Is(err, store.ErrSlugExists):
			shared.RespondWithError(w, r, http.StatusConflict,
				fmt.Sprintf("Task with slug %q already exists", task.Slug))
		default:
			shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), "Failed to create task", err)
		}
		return
	}

	log.Debug("task created",
		slog.Int64("task_id", task.ID),
		slog.Int64("user_id", userID),
		slog.String("slug", task.Slug))
	shared.RespondWithJSON(w, r, http.StatusCreated, TransactionResponse{
		StatusCode:  http.StatusCreated,
		Transaction: "Successful",
	})
}

// UpdateTask handles PUT /task/update requests
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	id, err := queryID(r, "task_id")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusUnprocessableEntity, err.Error())
		return
	}

	var req UpdateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusUnprocessableEntity, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusUnprocessableEntity, "Validation error: "+err.Error())
		return
	}

	if err := h.taskStore.Update(r.Context(), id, req.Title, req.Content, req.Priority); err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			shared.RespondWithError(w, r, http.StatusNotFound, taskNotFoundMessage(id))
			return
		}
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), "Failed to update task", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, TransactionResponse{
		StatusCode:  http.StatusOK,
		Transaction: fmt.Sprintf("Task(id=%d) has been successfully updated", id),
	})
}

// DeleteTask handles DELETE /task/delete requests
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	id, err := queryID(r, "task_id")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusUnprocessableEntity, err.Error())
		return
	}

	if err := h.taskStore.Delete(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			shared.RespondWithError(w, r, http.StatusNotFound, taskNotFoundMessage(id))
			return
		}
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), "Failed to delete task", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, TransactionResponse{
		StatusCode:  http.StatusOK,
		Transaction: fmt.Sprintf("Task(id=%d) has been successfully deleted!", id),
	})
}

func taskNotFoundMessage(id int64) string {
	return fmt.Sprintf("Task(id=%d) is not found", id)
}
