package api

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/todo-api/internal/api/shared"
	"github.com/stretchr/testify/require"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// withAccount stands in for AuthMiddleware. uuid.Nil leaves the request
// without an identity.
func withAccount(accountID uuid.UUID) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if accountID != uuid.Nil {
				r = r.WithContext(shared.WithAccountID(r.Context(), accountID))
			}
			next.ServeHTTP(w, r)
		})
	}
}

func newTaskRouter(h *TaskHandler, accountID uuid.UUID) http.Handler {
	r := chi.NewRouter()
	r.Group(func(r chi.Router) {
		r.Use(withAccount(accountID))
		r.Get("/api/todos", h.List)
		r.Post("/api/todos", h.Create)
		r.Get("/api/todos/{id}", h.Get)
		r.Put("/api/todos/{id}", h.Update)
		r.Delete("/api/todos/{id}", h.Delete)
		r.Patch("/api/todos/{id}/status", h.ToggleStatus)
	})
	return r
}

func newKeyRouter(h *APIKeyHandler) http.Handler {
	r := chi.NewRouter()
	r.Post("/api/keys", h.IssueKey)
	r.Get("/api/keys", h.ListKeys)
	r.Put("/api/keys/{id}/state", h.SetKeyState)
	return r
}

func newAccountRouter(h *AccountHandler) http.Handler {
	r := chi.NewRouter()
	r.Post("/api/auth/signup", h.SignUp)
	r.Post("/api/auth/token", h.Token)
	return r
}

func doJSON(t *testing.T, handler http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		switch b := body.(type) {
		case string:
			reader = bytes.NewBufferString(b)
		default:
			payload, err := json.Marshal(b)
			require.NoError(t, err)
			reader = bytes.NewReader(payload)
		}
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) shared.ErrorResponse {
	t.Helper()
	var resp shared.ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp
}
