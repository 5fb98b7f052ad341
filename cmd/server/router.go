package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/taskman/taskman-api/internal/api"
	apiMiddleware "github.com/taskman/taskman-api/internal/api/middleware"
	"github.com/taskman/taskman-api/internal/api/shared"
)

// setupRouter creates and configures the application router with all routes and middleware.
// Returns the configured router.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	// Apply standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.Trace)

	userHandler := api.NewUserHandler(app.userStore, app.logger)
	taskHandler := api.NewTaskHandler(app.taskStore, app.logger)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithJSON(w, r, http.StatusOK, api.WelcomeResponse{
			Message: "Welcome to Taskmanager",
		})
	})

	// The entity ids travel as query parameters (user_id, task_id); the
	// path segments /user_id and /tasks are literals.
	r.Route("/user", func(r chi.Router) {
		r.Get("/", userHandler.ListUsers)
		r.Get("/user_id", userHandler.GetUser)
		r.Get("/user_id/tasks", userHandler.ListUserTasks)
		r.Post("/create", userHandler.CreateUser)
		r.Put("/update", userHandler.UpdateUser)
		r.Delete("/delete", userHandler.DeleteUser)
	})

	r.Route("/task", func(r chi.Router) {
		r.Get("/", taskHandler.ListTasks)
		r.Get("/task_id", taskHandler.GetTask)
		r.Post("/create", taskHandler.CreateTask)
		r.Put("/update", taskHandler.UpdateTask)
		r.Delete("/delete", taskHandler.DeleteTask)
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, err := w.Write([]byte("OK"))
		if err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
