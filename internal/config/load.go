package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix for all environment variables read by the service.
const EnvPrefix = "TODO"

// Loader reads configuration from a config file and environment variables.
// Environment variables take precedence over values from config files.
// The Loader stays alive after Load so that selected settings can be read
// live instead of from the startup snapshot.
type Loader struct {
	v *viper.Viper

	// keyLimit is written on load and on every config file reload. viper is
	// only touched by the goroutine that loads, so readers never reach it.
	keyLimit atomic.Int64
}

// NewLoader creates a Loader with defaults, config file search paths and
// environment binding configured.
func NewLoader() *Loader {
	v := viper.New()

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("database.url", "")
	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.token_lifetime_minutes", 60)
	v.SetDefault("auth.password_scheme", "plain")
	v.SetDefault("api_key.limit", 3)
	v.SetDefault("cache.redis_url", "")
	v.SetDefault("cache.key_ttl_seconds", 60)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return &Loader{v: v}
}

// Load reads, unmarshals and validates the configuration.
// A missing config file is not an error.
func (l *Loader) Load() (*Config, error) {
	if err := l.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	l.publishLimit()

	return &cfg, nil
}

// APIKeyLimit returns the current maximum number of API keys per account.
// It reflects the last load or config file reload, so an edited config file
// applies to the next issuance. Negative values are treated as 0.
// Safe for concurrent use.
func (l *Loader) APIKeyLimit() int {
	return int(l.keyLimit.Load())
}

func (l *Loader) publishLimit() {
	limit := l.v.GetInt("api_key.limit")
	if limit < 0 {
		limit = 0
	}
	l.keyLimit.Store(int64(limit))
}

// WatchConfig reloads the config file when it changes on disk.
// It is a no-op when no config file was found.
func (l *Loader) WatchConfig(logger *slog.Logger) {
	if l.v.ConfigFileUsed() == "" {
		return
	}
	l.v.OnConfigChange(func(e fsnotify.Event) {
		l.publishLimit()
		logger.Info("configuration file changed",
			slog.String("file", e.Name),
			slog.Int("api_key_limit", l.APIKeyLimit()))
	})
	l.v.WatchConfig()
}

// Load is a convenience wrapper around NewLoader().Load().
func Load() (*Config, error) {
	return NewLoader().Load()
}
