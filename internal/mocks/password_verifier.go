package mocks

import "github.com/phrazzld/todo-api/internal/service/auth"

// MockPasswordVerifier implements auth.PasswordVerifier for testing
type MockPasswordVerifier struct {
	// ShouldSucceed determines whether the password comparison should succeed
	ShouldSucceed bool

	// CompareFn allows for custom comparison logic in tests
	CompareFn func(stored, supplied string) error

	// HashFn allows for custom hashing logic in tests; the default returns the input
	HashFn func(password string) (string, error)

	// CompareCalledWith stores the arguments passed to Compare for verification
	CompareCalledWith struct {
		Stored   string
		Supplied string
	}

	// CompareCallCount tracks how many times Compare was called
	CompareCallCount int
}

// Compare implements the auth.PasswordVerifier interface
func (m *MockPasswordVerifier) Compare(stored, supplied string) error {
	m.CompareCalledWith.Stored = stored
	m.CompareCalledWith.Supplied = supplied
	m.CompareCallCount++

	if m.CompareFn != nil {
		return m.CompareFn(stored, supplied)
	}

	if m.ShouldSucceed {
		return nil
	}
	return auth.ErrPasswordMismatch
}

// Hash implements the auth.PasswordVerifier interface
func (m *MockPasswordVerifier) Hash(password string) (string, error) {
	if m.HashFn != nil {
		return m.HashFn(password)
	}
	return password, nil
}
