package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/todo-api/internal/domain"
	"github.com/phrazzld/todo-api/internal/store"
	"github.com/stretchr/testify/mock"
)

// AccountStore is a mock of store.AccountStore for use with testify/mock
type AccountStore struct {
	mock.Mock
}

var _ store.AccountStore = (*AccountStore)(nil)

// Create is a mock implementation of store.AccountStore.Create
func (m *AccountStore) Create(ctx context.Context, account *domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

// GetByID is a mock implementation of store.AccountStore.GetByID
func (m *AccountStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	args := m.Called(ctx, id)
	if account, ok := args.Get(0).(*domain.Account); ok {
		return account, args.Error(1)
	}
	return nil, args.Error(1)
}

// GetByUsername is a mock implementation of store.AccountStore.GetByUsername
func (m *AccountStore) GetByUsername(ctx context.Context, username string) (*domain.Account, error) {
	args := m.Called(ctx, username)
	if account, ok := args.Get(0).(*domain.Account); ok {
		return account, args.Error(1)
	}
	return nil, args.Error(1)
}

// APIKeyStore is a mock of store.APIKeyStore for use with testify/mock
type APIKeyStore struct {
	mock.Mock
}

var _ store.APIKeyStore = (*APIKeyStore)(nil)

// Create is a mock implementation of store.APIKeyStore.Create
func (m *APIKeyStore) Create(ctx context.Context, key *domain.APIKey) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

// CreateWithinLimit is a mock implementation of store.APIKeyStore.CreateWithinLimit
func (m *APIKeyStore) CreateWithinLimit(ctx context.Context, key *domain.APIKey, limit int) error {
	args := m.Called(ctx, key, limit)
	return args.Error(0)
}

// GetByID is a mock implementation of store.APIKeyStore.GetByID
func (m *APIKeyStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.APIKey, error) {
	args := m.Called(ctx, id)
	if key, ok := args.Get(0).(*domain.APIKey); ok {
		return key, args.Error(1)
	}
	return nil, args.Error(1)
}

// GetByValue is a mock implementation of store.APIKeyStore.GetByValue
func (m *APIKeyStore) GetByValue(ctx context.Context, value string) (*domain.APIKey, error) {
	args := m.Called(ctx, value)
	if key, ok := args.Get(0).(*domain.APIKey); ok {
		return key, args.Error(1)
	}
	return nil, args.Error(1)
}

// ListByAccount is a mock implementation of store.APIKeyStore.ListByAccount
func (m *APIKeyStore) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]*domain.APIKey, error) {
	args := m.Called(ctx, accountID)
	if keys, ok := args.Get(0).([]*domain.APIKey); ok {
		return keys, args.Error(1)
	}
	return nil, args.Error(1)
}

// SetActive is a mock implementation of store.APIKeyStore.SetActive
func (m *APIKeyStore) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	args := m.Called(ctx, id, active)
	return args.Error(0)
}

// TaskStore is a mock of store.TaskStore for use with testify/mock
type TaskStore struct {
	mock.Mock
}

var _ store.TaskStore = (*TaskStore)(nil)

// Get is a mock implementation of store.TaskStore.Get
func (m *TaskStore) Get(ctx context.Context, taskID, ownerID uuid.UUID) (*domain.Task, error) {
	args := m.Called(ctx, taskID, ownerID)
	if task, ok := args.Get(0).(*domain.Task); ok {
		return task, args.Error(1)
	}
	return nil, args.Error(1)
}

// ListByOwner is a mock implementation of store.TaskStore.ListByOwner
func (m *TaskStore) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Task, error) {
	args := m.Called(ctx, ownerID)
	if tasks, ok := args.Get(0).([]*domain.Task); ok {
		return tasks, args.Error(1)
	}
	return nil, args.Error(1)
}

// Upsert is a mock implementation of store.TaskStore.Upsert
func (m *TaskStore) Upsert(ctx context.Context, task *domain.Task) (int64, error) {
	args := m.Called(ctx, task)
	return args.Get(0).(int64), args.Error(1)
}

// Update is a mock implementation of store.TaskStore.Update
func (m *TaskStore) Update(ctx context.Context, task *domain.Task) (int64, error) {
	args := m.Called(ctx, task)
	return args.Get(0).(int64), args.Error(1)
}

// Delete is a mock implementation of store.TaskStore.Delete
func (m *TaskStore) Delete(ctx context.Context, taskID uuid.UUID) error {
	args := m.Called(ctx, taskID)
	return args.Error(0)
}
