package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/phrazzld/todo-api/internal/api/shared"
	"github.com/phrazzld/todo-api/internal/platform/logger"
	"github.com/phrazzld/todo-api/internal/redact"
	"github.com/phrazzld/todo-api/internal/service"
)

// APIKeyHeader carries an issued API key.
const APIKeyHeader = "X-Api-Key"

// AuthMiddleware resolves the calling account before a handler runs.
type AuthMiddleware struct {
	resolver service.IdentityResolver
}

// NewAuthMiddleware creates a new AuthMiddleware with the given resolver.
func NewAuthMiddleware(resolver service.IdentityResolver) *AuthMiddleware {
	return &AuthMiddleware{
		resolver: resolver,
	}
}

// Authenticate accepts either an X-Api-Key header or an
// "Authorization: Bearer <token>" header, with the API key taking precedence,
// and stores the resolved account ID in the request context.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContextOrDefault(r.Context(), slog.Default())

		var (
			accountID uuid.UUID
			err       error
		)

		if key := r.Header.Get(APIKeyHeader); key != "" {
			accountID, err = m.resolver.ResolveAPIKey(r.Context(), key)
		} else if authHeader := r.Header.Get("Authorization"); authHeader != "" {
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
				shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid authorization format")
				return
			}
			accountID, err = m.resolver.ResolveToken(r.Context(), parts[1])
		} else {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
			return
		}

		if err != nil {
			if errors.Is(err, service.ErrUnidentified) {
				shared.RespondWithErrorAndLog(w, r, http.StatusUnauthorized, "Invalid credentials", err)
				return
			}
			log.Error("failed to resolve caller identity", slog.String("error", redact.Error(err)))
			shared.RespondWithError(w, r, http.StatusInternalServerError, "Authentication error")
			return
		}

		ctx := shared.WithAccountID(r.Context(), accountID)
		ctx = logger.WithLogger(ctx, log.With(slog.String("account_id", accountID.String())))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserID extracts the resolved account ID from the request context.
func GetUserID(r *http.Request) (uuid.UUID, bool) {
	return shared.AccountIDFromContext(r.Context())
}
