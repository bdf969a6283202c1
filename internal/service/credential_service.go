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

const credentialServiceName = "credential service"

// LimitSource supplies the per-account API key issuance limit.
// It is consulted on every issuance, so changes take effect without a restart.
type LimitSource interface {
	APIKeyLimit() int
}

// KeyCache caches the account owning an active API key value.
type KeyCache interface {
	// Get returns the cached account ID and whether the value was present.
	// A revoked value is reported present with uuid.Nil.
	Get(ctx context.Context, value string) (uuid.UUID, bool, error)

	// Set caches the owner of an active key value. It must not replace an
	// existing entry, in particular a revocation.
	Set(ctx context.Context, value string, accountID uuid.UUID) error

	// Revoke records that the key value is inactive, replacing any entry.
	Revoke(ctx context.Context, value string) error

	// Delete drops any cached entry for the key value.
	Delete(ctx context.Context, value string) error
}

// CredentialService manages API keys for username/password accounts.
type CredentialService interface {
	// IssueKey verifies the credentials and issues a new active key, unless
	// the account already holds as many keys as the current limit allows.
	IssueKey(ctx context.Context, username, password string) (*domain.APIKey, error)

	// ListKeys verifies the credentials and returns every key of the account.
	ListKeys(ctx context.Context, username, password string) ([]*domain.APIKey, error)

	// SetKeyActive overwrites the active flag of a key.
	SetKeyActive(ctx context.Context, keyID uuid.UUID, active bool) (*domain.APIKey, error)

	// Authenticate verifies the credentials and returns the account.
	Authenticate(ctx context.Context, username, password string) (*domain.Account, error)
}

type credentialServiceImpl struct {
	accounts  store.AccountStore
	keys      store.APIKeyStore
	verifier  auth.PasswordVerifier
	generator auth.KeyGenerator
	limits    LimitSource
	cache     KeyCache
	logger    *slog.Logger
}

// NewCredentialService creates a new CredentialService.
// cache may be nil, in which case no invalidation is performed.
func NewCredentialService(
	accounts store.AccountStore,
	keys store.APIKeyStore,
	verifier auth.PasswordVerifier,
	generator auth.KeyGenerator,
	limits LimitSource,
	cache KeyCache,
	logger *slog.Logger,
) (CredentialService, error) {
	if accounts == nil {
		return nil, domain.NewValidationError("accounts", "cannot be nil", domain.ErrValidation)
	}
	if keys == nil {
		return nil, domain.NewValidationError("keys", "cannot be nil", domain.ErrValidation)
	}
	if verifier == nil {
		return nil, domain.NewValidationError("verifier", "cannot be nil", domain.ErrValidation)
	}
	if generator == nil {
		return nil, domain.NewValidationError("generator", "cannot be nil", domain.ErrValidation)
	}
	if limits == nil {
		return nil, domain.NewValidationError("limits", "cannot be nil", domain.ErrValidation)
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &credentialServiceImpl{
		accounts:  accounts,
		keys:      keys,
		verifier:  verifier,
		generator: generator,
		limits:    limits,
		cache:     cache,
		logger:    logger.With(slog.String("component", "credential_service")),
	}, nil
}

// Authenticate implements CredentialService.Authenticate.
// Existence is checked before the password, so an unknown username is
// reported as ErrAccountNotFound even if the password is also wrong.
func (s *credentialServiceImpl) Authenticate(
	ctx context.Context,
	username, password string,
) (*domain.Account, error) {
	account, err := s.authenticate(ctx, "authenticate", username, password)
	if err != nil {
		return nil, err
	}
	return account, nil
}

func (s *credentialServiceImpl) authenticate(
	ctx context.Context,
	operation, username, password string,
) (*domain.Account, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	account, err := s.accounts.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrAccountNotFound) {
			log.Debug("account not found", slog.String("username", username))
			return nil, NewServiceError(credentialServiceName, operation, "unknown username", ErrAccountNotFound)
		}
		log.Error("failed to load account",
			slog.String("username", username),
			slog.String("error", redact.Error(err)))
		return nil, NewServiceError(credentialServiceName, operation, "failed to load account", err)
	}

	if err := s.verifier.Compare(account.Password, password); err != nil {
		log.Debug("password mismatch", slog.String("account_id", account.ID.String()))
		return nil, NewServiceError(credentialServiceName, operation, "password mismatch", ErrInvalidCredential)
	}

	return account, nil
}

// IssueKey implements CredentialService.IssueKey.
func (s *credentialServiceImpl) IssueKey(
	ctx context.Context,
	username, password string,
) (*domain.APIKey, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	account, err := s.authenticate(ctx, "issue_key", username, password)
	if err != nil {
		return nil, err
	}

	limit := s.limits.APIKeyLimit()

	existing, err := s.keys.ListByAccount(ctx, account.ID)
	if err != nil {
		log.Error("failed to list api keys",
			slog.String("account_id", account.ID.String()),
			slog.String("error", redact.Error(err)))
		return nil, NewServiceError(credentialServiceName, "issue_key", "failed to list keys", err)
	}

	if len(existing) >= limit {
		log.Info("api key issuance limit reached",
			slog.String("account_id", account.ID.String()),
			slog.Int("key_count", len(existing)),
			slog.Int("limit", limit))
		return nil, NewServiceError(credentialServiceName, "issue_key", "limit reached", ErrIssuanceLimitReached)
	}

	value, err := s.generator.Generate()
	if err != nil {
		log.Error("failed to generate api key", slog.String("error", redact.Error(err)))
		return nil, NewServiceError(credentialServiceName, "issue_key", "failed to generate key", err)
	}

	key, err := domain.NewAPIKey(account.ID, value)
	if err != nil {
		return nil, NewServiceError(credentialServiceName, "issue_key", "invalid key", err)
	}

	// The store recounts under a lock; a concurrent issuance may have taken the
	// last slot since the check above.
	if err := s.keys.CreateWithinLimit(ctx, key, limit); err != nil {
		if errors.Is(err, store.ErrKeyLimitReached) {
			log.Info("api key issuance limit reached during insert",
				slog.String("account_id", account.ID.String()),
				slog.Int("limit", limit))
			return nil, NewServiceError(credentialServiceName, "issue_key", "limit reached", ErrIssuanceLimitReached)
		}
		log.Error("failed to save api key",
			slog.String("account_id", account.ID.String()),
			slog.String("error", redact.Error(err)))
		return nil, NewServiceError(credentialServiceName, "issue_key", "failed to save key", err)
	}

	log.Info("api key issued",
		slog.String("account_id", account.ID.String()),
		slog.String("key_id", key.ID.String()))

	return key, nil
}

// ListKeys implements CredentialService.ListKeys.
func (s *credentialServiceImpl) ListKeys(
	ctx context.Context,
	username, password string,
) ([]*domain.APIKey, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	account, err := s.authenticate(ctx, "list_keys", username, password)
	if err != nil {
		return nil, err
	}

	keys, err := s.keys.ListByAccount(ctx, account.ID)
	if err != nil {
		log.Error("failed to list api keys",
			slog.String("account_id", account.ID.String()),
			slog.String("error", redact.Error(err)))
		return nil, NewServiceError(credentialServiceName, "list_keys", "failed to list keys", err)
	}

	return keys, nil
}

// SetKeyActive implements CredentialService.SetKeyActive.
// The flag is overwritten even when it already has the requested value.
func (s *credentialServiceImpl) SetKeyActive(
	ctx context.Context,
	keyID uuid.UUID,
	active bool,
) (*domain.APIKey, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	key, err := s.keys.GetByID(ctx, keyID)
	if err != nil {
		if errors.Is(err, store.ErrAPIKeyNotFound) {
			return nil, NewServiceError(credentialServiceName, "set_key_active", "unknown key", ErrKeyNotFound)
		}
		log.Error("failed to load api key",
			slog.String("key_id", keyID.String()),
			slog.String("error", redact.Error(err)))
		return nil, NewServiceError(credentialServiceName, "set_key_active", "failed to load key", err)
	}

	key.SetActive(active)

	if err := s.keys.SetActive(ctx, key.ID, active); err != nil {
		if errors.Is(err, store.ErrAPIKeyNotFound) {
			return nil, NewServiceError(credentialServiceName, "set_key_active", "unknown key", ErrKeyNotFound)
		}
		log.Error("failed to update api key",
			slog.String("key_id", keyID.String()),
			slog.String("error", redact.Error(err)))
		return nil, NewServiceError(credentialServiceName, "set_key_active", "failed to update key", err)
	}

	if s.cache != nil {
		// Deactivation leaves a marker so a resolver that read the key before
		// this update cannot cache it as active again.
		var err error
		if active {
			err = s.cache.Delete(ctx, key.Key)
		} else {
			err = s.cache.Revoke(ctx, key.Key)
		}
		if err != nil {
			log.Warn("failed to invalidate cached api key",
				slog.String("key_id", key.ID.String()),
				slog.String("error", redact.Error(err)))
		}
	}

	log.Info("api key state updated",
		slog.String("key_id", key.ID.String()),
		slog.Bool("active", active))

	return key, nil
}
