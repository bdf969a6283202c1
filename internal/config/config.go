package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth"     validate:"required"`
	APIKey   APIKeyConfig   `mapstructure:"api_key"  validate:"required"`
	Cache    CacheConfig    `mapstructure:"cache"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required,url"`
}

// AuthConfig contains authentication settings for the bearer-token path and
// the password comparison scheme.
type AuthConfig struct {
	JWTSecret            string `mapstructure:"jwt_secret"             validate:"required,min=32"`
	TokenLifetimeMinutes int    `mapstructure:"token_lifetime_minutes" validate:"required,gt=0"`
	// PasswordScheme selects how stored passwords are compared: "plain" keeps the
	// exact-equality contract, "bcrypt" expects stored bcrypt hashes.
	PasswordScheme string `mapstructure:"password_scheme" validate:"required,oneof=plain bcrypt"`
}

// APIKeyConfig contains API key issuance settings.
// Limit is read here only for validation at startup; the live value is
// served by Loader.APIKeyLimit on every issuance.
type APIKeyConfig struct {
	Limit int `mapstructure:"limit" validate:"gte=0"`
}

// CacheConfig configures the optional Redis cache for API key lookups.
// An empty RedisURL disables caching.
type CacheConfig struct {
	RedisURL      string `mapstructure:"redis_url"       validate:"omitempty,url"`
	KeyTTLSeconds int    `mapstructure:"key_ttl_seconds" validate:"gte=0"`
}
