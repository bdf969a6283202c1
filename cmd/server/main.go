// Package main implements the entry point for the todo API server, which
// issues API keys to registered accounts and serves their task lists.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/phrazzld/todo-api/internal/config"
	"github.com/phrazzld/todo-api/internal/platform/postgres"
)

func main() {
	migrateCmd := flag.String("migrate", "", "run a migration command (up, down, reset, status, version) and exit")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := run(ctx, *migrateCmd)
	stop()

	if err != nil {
		log.Printf("todo-api: %v", err)
		os.Exit(1)
	}
}

// run loads configuration, then either applies migrations or serves HTTP
// until ctx is canceled.
func run(ctx context.Context, migrateCmd string) error {
	loader := config.NewLoader()
	cfg, err := loader.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := setupAppLogger(cfg)
	if err != nil {
		return err
	}

	logger.Info("server configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel),
		slog.String("password_scheme", cfg.Auth.PasswordScheme),
		slog.Int("api_key_limit", loader.APIKeyLimit()),
		slog.Bool("redis_cache", cfg.Cache.RedisURL != ""))

	db, err := setupAppDatabase(ctx, cfg, logger)
	if err != nil {
		return err
	}

	if migrateCmd != "" {
		defer func() { _ = db.Close() }()
		return postgres.Migrate(ctx, db, migrateCmd, logger)
	}

	app, err := newApplication(ctx, cfg, loader, logger, db)
	if err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	loader.WatchConfig(logger)

	return app.startHTTPServer(ctx, app.setupRouter())
}
