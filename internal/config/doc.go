// Package config handles configuration loading, parsing, and validation
// from environment variables (TODO_ prefix) and an optional config.yaml.
// It also serves settings that must be read live, such as the API key
// issuance limit.
package config
