package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/phrazzld/todo-api/internal/api/shared"
	"github.com/phrazzld/todo-api/internal/platform/logger"
	"github.com/phrazzld/todo-api/internal/redact"
	"github.com/phrazzld/todo-api/internal/service"
	"github.com/phrazzld/todo-api/internal/service/auth"
)

// AccountHandler serves sign-up and bearer token login.
type AccountHandler struct {
	accounts    service.AccountService
	credentials service.CredentialService
	jwtService  auth.JWTService
	logger      *slog.Logger
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(
	accounts service.AccountService,
	credentials service.CredentialService,
	jwtService auth.JWTService,
	logger *slog.Logger,
) *AccountHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AccountHandler{
		accounts:    accounts,
		credentials: credentials,
		jwtService:  jwtService,
		logger:      logger.With(slog.String("component", "account_handler")),
	}
}

// SignUp handles POST /api/auth/signup.
func (h *AccountHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req SignUpRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	account, err := h.accounts.SignUp(r.Context(), req.Username, req.Password)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, accountToResponse(account))
}

// Token handles POST /api/auth/token, exchanging credentials for an access token.
func (h *AccountHandler) Token(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req CredentialsRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	account, err := h.credentials.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	token, expiresAt, err := h.jwtService.GenerateToken(r.Context(), account.ID)
	if err != nil {
		log.Error("failed to generate token",
			slog.String("account_id", account.ID.String()),
			slog.String("error", redact.Error(err)))
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to generate authentication token", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, TokenResponse{
		AccountID:   account.ID,
		AccessToken: token,
		ExpiresAt:   expiresAt.Format(time.RFC3339),
	})
}
