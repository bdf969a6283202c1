package mocks

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// MockKeyCache is an in-memory service.KeyCache that can be told to fail
type MockKeyCache struct {
	Err error

	mu      sync.Mutex
	entries map[string]uuid.UUID
	Deleted []string
	Revoked []string
}

// Get implements the service.KeyCache interface
func (m *MockKeyCache) Get(_ context.Context, value string) (uuid.UUID, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return uuid.Nil, false, m.Err
	}
	id, ok := m.entries[value]
	return id, ok, nil
}

// Set implements the service.KeyCache interface
func (m *MockKeyCache) Set(_ context.Context, value string, accountID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return m.Err
	}
	if m.entries == nil {
		m.entries = make(map[string]uuid.UUID)
	}
	if _, exists := m.entries[value]; !exists {
		m.entries[value] = accountID
	}
	return nil
}

// Revoke implements the service.KeyCache interface
func (m *MockKeyCache) Revoke(_ context.Context, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Revoked = append(m.Revoked, value)
	if m.Err != nil {
		return m.Err
	}
	if m.entries == nil {
		m.entries = make(map[string]uuid.UUID)
	}
	m.entries[value] = uuid.Nil
	return nil
}

// Delete implements the service.KeyCache interface
func (m *MockKeyCache) Delete(_ context.Context, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Deleted = append(m.Deleted, value)
	if m.Err != nil {
		return m.Err
	}
	delete(m.entries, value)
	return nil
}
