package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/todo-api/internal/api/shared"
	"github.com/phrazzld/todo-api/internal/domain"
	"github.com/phrazzld/todo-api/internal/platform/logger"
	"github.com/phrazzld/todo-api/internal/service"
)

// Headers carrying credentials on the key listing endpoint.
const (
	UsernameHeader = "X-Username"
	PasswordHeader = "X-Password"
)

// APIKeyHandler serves API key issuance and management.
type APIKeyHandler struct {
	credentials service.CredentialService
	logger      *slog.Logger
}

// NewAPIKeyHandler creates a new APIKeyHandler.
func NewAPIKeyHandler(credentials service.CredentialService, logger *slog.Logger) *APIKeyHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &APIKeyHandler{
		credentials: credentials,
		logger:      logger.With(slog.String("component", "apikey_handler")),
	}
}

// IssueKey handles POST /api/keys.
func (h *APIKeyHandler) IssueKey(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req CredentialsRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	key, err := h.credentials.IssueKey(r.Context(), req.Username, req.Password)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	log.Debug("api key issued", slog.String("key_id", key.ID.String()))
	shared.RespondWithJSON(w, r, http.StatusCreated, apiKeyToResponse(key))
}

// ListKeys handles GET /api/keys. Credentials come from the X-Username and
// X-Password headers.
func (h *APIKeyHandler) ListKeys(w http.ResponseWriter, r *http.Request) {
	username := r.Header.Get(UsernameHeader)
	password := r.Header.Get(PasswordHeader)
	if username == "" || password == "" {
		HandleAPIError(w, r,
			domain.NewValidationError("credentials", "are required", domain.ErrValidation),
			"Username and password headers are required")
		return
	}

	keys, err := h.credentials.ListKeys(r.Context(), username, password)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, apiKeysToResponse(keys))
}

// SetKeyState handles PUT /api/keys/{id}/state.
func (h *APIKeyHandler) SetKeyState(w http.ResponseWriter, r *http.Request) {
	keyID, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var req SetKeyStateRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	key, err := h.credentials.SetKeyActive(r.Context(), keyID, *req.IsActive)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, apiKeyToResponse(key))
}
