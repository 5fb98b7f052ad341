// Package api provides HTTP handlers for the API.
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

// CreateUserRequest represents the request body for creating a new user
type CreateUserRequest struct {
	Username  string `json:"username"  validate:"required"`
	Firstname string `json:"firstname" validate:"required"`
	Lastname  string `json:"lastname"  validate:"required"`
	Age       int    `json:"age"       validate:"gte=0"`
}

// UpdateUserRequest represents the request body for updating an existing user.
// Username and slug are immutable and deliberately absent.
type UpdateUserRequest struct {
	Firstname string `json:"firstname" validate:"required"`
	Lastname  string `json:"lastname"  validate:"required"`
	Age       int    `json:"age"       validate:"gte=0"`
}

// UserHandler handles user-related HTTP requests
type UserHandler struct {
	userStore store.UserStore
	logger    *slog.Logger
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userStore store.UserStore, log *slog.Logger) *UserHandler {
	if log == nil {
		log = slog.Default()
	}

	return &UserHandler{
		userStore: userStore,
		logger:    log.With(slog.String("component", "user_handler")),
	}
}

// ListUsers handles GET /user/ requests
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	users, err := h.userStore.ListAll(r.Context())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), "Failed to list users", err)
		return
	}

	log.Debug("listed users", slog.Int("count", len(users)))
	shared.RespondWithJSON(w, r, http.StatusOK, users)
}

// GetUser handles GET /user/user_id requests
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := queryID(r, "user_id")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusUnprocessableEntity, err.Error())
		return
	}

	user, err := h.userStore.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			shared.RespondWithError(w, r, http.StatusNotFound, userNotFoundMessage(id))
			return
		}
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, user)
}

// ListUserTasks handles GET /user/user_id/tasks requests
func (h *UserHandler) ListUserTasks(w http.ResponseWriter, r *http.Request) {
	id, err := queryID(r, "user_id")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusUnprocessableEntity, err.Error())
		return
	}

	tasks, err := h.userStore.ListTasks(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			shared.RespondWithError(w, r, http.StatusNotFound, userNotFoundMessage(id))
			return
		}
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, tasks)
}

// CreateUser handles POST /user/create requests
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req CreateUserRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusUnprocessableEntity, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusUnprocessableEntity, "Validation error: "+err.Error())
		return
	}

	user, err := domain.NewUser(req.Username, req.Firstname, req.Lastname, req.Age)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusUnprocessableEntity, err.Error())
		return
	}

	if err := h.userStore.Create(r.Context(), user); err != nil {
		if errors.Is(err, store.ErrSlugExists) {
			shared.RespondWithError(w, r, http.StatusConflict,
				fmt.Sprintf("User with slug %q already exists", user.Slug))
			return
		}
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), "Failed to create user", err)
		return
	}

	log.Debug("user created",
		slog.Int64("user_id", user.ID),
		slog.String("slug", user.Slug))
	shared.RespondWithJSON(w, r, http.StatusCreated, TransactionResponse{
		StatusCode:  http.StatusCreated,
		Transaction: "Successful",
	})
}

// UpdateUser handles PUT /user/update requests
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := queryID(r, "user_id")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusUnprocessableEntity, err.Error())
		return
	}

	var req UpdateUserRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusUnprocessableEntity, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusUnprocessableEntity, "Validation error: "+err.Error())
		return
	}

	if err := h.userStore.Update(r.Context(), id, req.Firstname, req.Lastname, req.Age); err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			shared.RespondWithError(w, r, http.StatusNotFound, userNotFoundMessage(id))
			return
		}
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), "Failed to update user", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, TransactionResponse{
		StatusCode:  http.StatusOK,
		Transaction: fmt.Sprintf("User(id=%d) has been successfully updated", id),
	})
}

// DeleteUser handles DELETE /user/delete requests
// Deleting a user also deletes every task it owns, atomically.
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := queryID(r, "user_id")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusUnprocessableEntity, err.Error())
		return
	}

	if err := h.userStore.Delete(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			shared.RespondWithError(w, r, http.StatusNotFound, userNotFoundMessage(id))
			return
		}
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), "Failed to delete user", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, TransactionResponse{
		StatusCode:  http.StatusOK,
		Transaction: fmt.Sprintf("User(id=%d) and all related tasks have been successfully deleted", id),
	})
}

func userNotFoundMessage(id int64) string {
	return fmt.Sprintf("User(id=%d) is not found", id)
}
