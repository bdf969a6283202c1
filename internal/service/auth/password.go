package auth

import (
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// PasswordVerifier defines the interface for comparing passwords.
// It is the single place where stored and supplied passwords meet, so the
// comparison scheme can be swapped without touching issuance logic.
type PasswordVerifier interface {
	// Compare compares a stored password with its possible plaintext equivalent.
	// Returns nil on success, or ErrPasswordMismatch on mismatch.
	Compare(stored, supplied string) error

	// Hash returns the form of password to persist for new accounts.
	Hash(password string) (string, error)
}

// PlainVerifier compares passwords by exact equality.
// Stored passwords are plaintext; this is a known weakness kept for
// compatibility with existing account data.
type PlainVerifier struct{}

// NewPlainVerifier creates a new PlainVerifier.
func NewPlainVerifier() *PlainVerifier {
	return &PlainVerifier{}
}

// Compare implements PasswordVerifier using exact equality.
func (v *PlainVerifier) Compare(stored, supplied string) error {
	if subtle.ConstantTimeCompare([]byte(stored), []byte(supplied)) != 1 {
		return ErrPasswordMismatch
	}
	return nil
}

// Hash returns the password unchanged.
func (v *PlainVerifier) Hash(password string) (string, error) {
	return password, nil
}

// BcryptVerifier implements PasswordVerifier for bcrypt-hashed stored passwords.
type BcryptVerifier struct {
	cost int
}

// NewBcryptVerifier creates a new BcryptVerifier using bcrypt.DefaultCost.
func NewBcryptVerifier() *BcryptVerifier {
	return &BcryptVerifier{cost: bcrypt.DefaultCost}
}

// Compare implements the PasswordVerifier interface using bcrypt.
func (v *BcryptVerifier) Compare(stored, supplied string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(stored), []byte(supplied)); err != nil {
		return fmt.Errorf("%w: %v", ErrPasswordMismatch, err)
	}
	return nil
}

// Hash generates a bcrypt hash of the password.
func (v *BcryptVerifier) Hash(password string) (string, error) {
	cost := v.cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// NewPasswordVerifier returns the verifier for the configured scheme name.
func NewPasswordVerifier(scheme string) (PasswordVerifier, error) {
	switch scheme {
	case "", "plain":
		return NewPlainVerifier(), nil
	case "bcrypt":
		return NewBcryptVerifier(), nil
	default:
		return nil, fmt.Errorf("unknown password scheme %q", scheme)
	}
}
