package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/todo-api/internal/config"
	"github.com/phrazzld/todo-api/internal/platform/cache"
	"github.com/phrazzld/todo-api/internal/platform/postgres"
	"github.com/phrazzld/todo-api/internal/service"
	"github.com/phrazzld/todo-api/internal/service/auth"
	"github.com/phrazzld/todo-api/internal/store"
	"github.com/redis/go-redis/v9"
)

// application holds the shared dependencies of the server so they can be
// wired once and released together on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB
	redis  *redis.Client

	accountStore store.AccountStore
	apiKeyStore  store.APIKeyStore
	taskStore    store.TaskStore

	jwtService        auth.JWTService
	accountService    service.AccountService
	credentialService service.CredentialService
	taskService       service.TaskService
	identityResolver  service.IdentityResolver
}

// newApplication wires stores, services and the optional key cache.
// limits is consulted on every key issuance.
func newApplication(
	ctx context.Context,
	cfg *config.Config,
	limits service.LimitSource,
	logger *slog.Logger,
	db *sql.DB,
) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}

	verifier, err := auth.NewPasswordVerifier(cfg.Auth.PasswordScheme)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize password verifier: %w", err)
	}

	app.accountStore = postgres.NewPostgresAccountStore(db, logger)
	app.apiKeyStore = postgres.NewPostgresAPIKeyStore(db, logger)
	app.taskStore = postgres.NewPostgresTaskStore(db, logger)

	keyCache, err := app.setupKeyCache(ctx)
	if err != nil {
		return nil, err
	}

	app.accountService, err = service.NewAccountService(app.accountStore, verifier, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create account service: %w", err)
	}

	app.credentialService, err = service.NewCredentialService(
		app.accountStore,
		app.apiKeyStore,
		verifier,
		auth.NewRandomKeyGenerator(),
		limits,
		keyCache,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create credential service: %w", err)
	}

	app.taskService, err = service.NewTaskService(app.taskStore, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create task service: %w", err)
	}

	app.identityResolver, err = service.NewIdentityResolver(
		app.apiKeyStore,
		app.accountStore,
		app.jwtService,
		keyCache,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create identity resolver: %w", err)
	}

	return app, nil
}

// setupKeyCache connects to Redis when cache.redis_url is set. Without it the
// identity resolver reads every API key from Postgres.
func (app *application) setupKeyCache(ctx context.Context) (service.KeyCache, error) {
	if app.config.Cache.RedisURL == "" {
		return nil, nil
	}

	rdb, err := cache.Connect(ctx, app.config.Cache.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	app.redis = rdb

	ttl := time.Duration(app.config.Cache.KeyTTLSeconds) * time.Second
	app.logger.Info("api key cache enabled", slog.Duration("ttl", ttl))
	return cache.NewRedisKeyCache(rdb, ttl), nil
}

// cleanup releases external connections.
func (app *application) cleanup() {
	if app.redis != nil {
		if err := app.redis.Close(); err != nil {
			app.logger.Error("error closing redis connection", slog.String("error", err.Error()))
		}
	}

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database connection", slog.String("error", err.Error()))
		}
	}

	app.logger.Info("application shutdown completed")
}
