package auth

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
)

// KeyPrefix marks every generated API key value, so keys are recognizable in
// logs and redaction rules.
const KeyPrefix = "tk_"

// keyEntropyBytes is the number of random bytes in a generated key.
const keyEntropyBytes = 32

// KeyGenerator produces opaque API key values.
type KeyGenerator interface {
	Generate() (string, error)
}

// RandomKeyGenerator builds keys from a cryptographically secure random source.
type RandomKeyGenerator struct {
	source io.Reader
}

// NewRandomKeyGenerator creates a generator reading from crypto/rand.
func NewRandomKeyGenerator() *RandomKeyGenerator {
	return &RandomKeyGenerator{source: rand.Reader}
}

// Generate returns KeyPrefix followed by 32 random bytes in unpadded base64url.
func (g *RandomKeyGenerator) Generate() (string, error) {
	b := make([]byte, keyEntropyBytes)
	if _, err := io.ReadFull(g.source, b); err != nil {
		return "", fmt.Errorf("%w: %v", ErrKeyGeneration, err)
	}
	return KeyPrefix + base64.RawURLEncoding.EncodeToString(b), nil
}
