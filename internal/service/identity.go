package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/todo-api/internal/domain"
	"github.com/phrazzld/todo-api/internal/platform/logger"
	"github.com/phrazzld/todo-api/internal/redact"
	"github.com/phrazzld/todo-api/internal/service/auth"
	"github.com/phrazzld/todo-api/internal/store"
)

const identityResolverName = "identity resolver"

// IdentityResolver turns request credentials into the ID of the calling account.
type IdentityResolver interface {
	// ResolveAPIKey returns the owner of an active API key.
	ResolveAPIKey(ctx context.Context, value string) (uuid.UUID, error)

	// ResolveToken returns the account a valid bearer token was issued for.
	ResolveToken(ctx context.Context, token string) (uuid.UUID, error)
}

type identityResolverImpl struct {
	keys     store.APIKeyStore
	accounts store.AccountStore
	tokens   auth.JWTService
	cache    KeyCache
	logger   *slog.Logger
}

// NewIdentityResolver creates a new IdentityResolver. cache may be nil.
func NewIdentityResolver(
	keys store.APIKeyStore,
	accounts store.AccountStore,
	tokens auth.JWTService,
	cache KeyCache,
	logger *slog.Logger,
) (IdentityResolver, error) {
	if keys == nil {
		return nil, domain.NewValidationError("keys", "cannot be nil", domain.ErrValidation)
	}
	if accounts == nil {
		return nil, domain.NewValidationError("accounts", "cannot be nil", domain.ErrValidation)
	}
	if tokens == nil {
		return nil, domain.NewValidationError("tokens", "cannot be nil", domain.ErrValidation)
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &identityResolverImpl{
		keys:     keys,
		accounts: accounts,
		tokens:   tokens,
		cache:    cache,
		logger:   logger.With(slog.String("component", "identity_resolver")),
	}, nil
}

// ResolveAPIKey implements IdentityResolver.ResolveAPIKey.
// Cache failures are logged and fall through to the store.
func (r *identityResolverImpl) ResolveAPIKey(ctx context.Context, value string) (uuid.UUID, error) {
	log := logger.FromContextOrDefault(ctx, r.logger)

	if value == "" {
		return uuid.Nil, NewServiceError(identityResolverName, "resolve_api_key", "empty key", ErrUnidentified)
	}

	if r.cache != nil {
		accountID, ok, err := r.cache.Get(ctx, value)
		if err != nil {
			log.Warn("api key cache lookup failed", slog.String("error", redact.Error(err)))
		} else if ok {
			if accountID == uuid.Nil {
				return uuid.Nil, NewServiceError(identityResolverName, "resolve_api_key", "revoked key", ErrUnidentified)
			}
			return accountID, nil
		}
	}

	key, err := r.keys.GetByValue(ctx, value)
	if err != nil {
		if errors.Is(err, store.ErrAPIKeyNotFound) {
			return uuid.Nil, NewServiceError(identityResolverName, "resolve_api_key", "unknown key", ErrUnidentified)
		}
		log.Error("failed to look up api key", slog.String("error", redact.Error(err)))
		return uuid.Nil, NewServiceError(identityResolverName, "resolve_api_key", "failed to look up key", err)
	}

	if !key.IsActive {
		log.Debug("inactive api key presented", slog.String("key_id", key.ID.String()))
		return uuid.Nil, NewServiceError(identityResolverName, "resolve_api_key", "inactive key", ErrUnidentified)
	}

	if r.cache != nil {
		if err := r.cache.Set(ctx, value, key.AccountID); err != nil {
			log.Warn("failed to cache api key", slog.String("error", redact.Error(err)))
		}
	}

	return key.AccountID, nil
}

// ResolveToken implements IdentityResolver.ResolveToken.
// The account named by the token must still exist.
func (r *identityResolverImpl) ResolveToken(ctx context.Context, token string) (uuid.UUID, error) {
	log := logger.FromContextOrDefault(ctx, r.logger)

	claims, err := r.tokens.ValidateToken(ctx, token)
	if err != nil {
		log.Debug("bearer token rejected", slog.String("error", err.Error()))
		return uuid.Nil, NewServiceError(identityResolverName, "resolve_token", err.Error(), ErrUnidentified)
	}

	account, err := r.accounts.GetByID(ctx, claims.AccountID)
	if err != nil {
		if errors.Is(err, store.ErrAccountNotFound) {
			return uuid.Nil, NewServiceError(identityResolverName, "resolve_token", "unknown account", ErrUnidentified)
		}
		log.Error("failed to load token account",
			slog.String("account_id", claims.AccountID.String()),
			slog.String("error", redact.Error(err)))
		return uuid.Nil, NewServiceError(identityResolverName, "resolve_token", "failed to load account", err)
	}

	return account.ID, nil
}
