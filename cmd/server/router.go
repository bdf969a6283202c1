package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/todo-api/internal/api"
	apiMiddleware "github.com/phrazzld/todo-api/internal/api/middleware"
)

// setupRouter builds the chi router with every route and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware(app.logger))

	accountHandler := api.NewAccountHandler(app.accountService, app.credentialService, app.jwtService, app.logger)
	apiKeyHandler := api.NewAPIKeyHandler(app.credentialService, app.logger)
	taskHandler := api.NewTaskHandler(app.taskService, app.logger)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.identityResolver)

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/signup", accountHandler.SignUp)
		r.Post("/auth/token", accountHandler.Token)

		// Key routes authenticate with username and password, not an identity.
		r.Post("/keys", apiKeyHandler.IssueKey)
		r.Get("/keys", apiKeyHandler.ListKeys)
		r.Put("/keys/{id}/state", apiKeyHandler.SetKeyState)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Get("/todos", taskHandler.List)
			r.Post("/todos", taskHandler.Create)
			r.Get("/todos/{id}", taskHandler.Get)
			r.Put("/todos/{id}", taskHandler.Update)
			r.Delete("/todos/{id}", taskHandler.Delete)
			r.Patch("/todos/{id}/status", taskHandler.ToggleStatus)
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
