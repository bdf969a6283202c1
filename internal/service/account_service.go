package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/phrazzld/todo-api/internal/domain"
	"github.com/phrazzld/todo-api/internal/platform/logger"
	"github.com/phrazzld/todo-api/internal/redact"
	"github.com/phrazzld/todo-api/internal/service/auth"
	"github.com/phrazzld/todo-api/internal/store"
)

const accountServiceName = "account service"

// AccountService handles account registration.
type AccountService interface {
	// SignUp creates a new account. Returns ErrUsernameTaken if the username
	// is already registered.
	SignUp(ctx context.Context, username, password string) (*domain.Account, error)
}

type accountServiceImpl struct {
	accounts store.AccountStore
	verifier auth.PasswordVerifier
	logger   *slog.Logger
}

// NewAccountService creates a new AccountService. The verifier decides the
// stored form of the password.
func NewAccountService(
	accounts store.AccountStore,
	verifier auth.PasswordVerifier,
	logger *slog.Logger,
) (AccountService, error) {
	if accounts == nil {
		return nil, domain.NewValidationError("accounts", "cannot be nil", domain.ErrValidation)
	}
	if verifier == nil {
		return nil, domain.NewValidationError("verifier", "cannot be nil", domain.ErrValidation)
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &accountServiceImpl{
		accounts: accounts,
		verifier: verifier,
		logger:   logger.With(slog.String("component", "account_service")),
	}, nil
}

// SignUp implements AccountService.SignUp.
func (s *accountServiceImpl) SignUp(ctx context.Context, username, password string) (*domain.Account, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	account, err := domain.NewAccount(username, password)
	if err != nil {
		return nil, NewServiceError(accountServiceName, "sign_up", "invalid account", err)
	}

	stored, err := s.verifier.Hash(password)
	if err != nil {
		log.Error("failed to prepare password", slog.String("error", err.Error()))
		return nil, NewServiceError(accountServiceName, "sign_up", "failed to prepare password", err)
	}
	account.Password = stored

	if err := s.accounts.Create(ctx, account); err != nil {
		if errors.Is(err, store.ErrUsernameExists) {
			log.Debug("username already taken", slog.String("username", username))
			return nil, NewServiceError(accountServiceName, "sign_up", "username taken", ErrUsernameTaken)
		}
		log.Error("failed to create account",
			slog.String("username", username),
			slog.String("error", redact.Error(err)))
		return nil, NewServiceError(accountServiceName, "sign_up", "failed to create account", err)
	}

	log.Info("account created",
		slog.String("account_id", account.ID.String()),
		slog.String("username", account.Username))

	return account, nil
}
