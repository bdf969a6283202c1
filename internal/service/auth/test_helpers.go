package auth

import (
	"time"
)

// NewTestJWTService creates a JWT service with a custom time source, for tests
// that need deterministic expiry.
func NewTestJWTService(secret string, lifetime time.Duration, timeFunc func() time.Time) JWTService {
	return &hmacJWTService{
		signingKey:    []byte(secret),
		tokenLifetime: lifetime,
		timeFunc:      timeFunc,
		clockSkew:     0,
	}
}
