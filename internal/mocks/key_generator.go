package mocks

import (
	"fmt"
	"sync"
)

// MockKeyGenerator implements auth.KeyGenerator with predictable values
type MockKeyGenerator struct {
	// GenerateFn overrides the default sequential behavior
	GenerateFn func() (string, error)

	mu    sync.Mutex
	count int
}

// Generate implements the auth.KeyGenerator interface.
// By default it returns tk_test_key_1, tk_test_key_2, ...
func (m *MockKeyGenerator) Generate() (string, error) {
	if m.GenerateFn != nil {
		return m.GenerateFn()
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.count++
	return fmt.Sprintf("tk_test_key_%d", m.count), nil
}
