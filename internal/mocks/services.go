package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/todo-api/internal/domain"
	"github.com/phrazzld/todo-api/internal/service"
	"github.com/stretchr/testify/mock"
)

// CredentialService is a mock of service.CredentialService for use with testify/mock
type CredentialService struct {
	mock.Mock
}

var _ service.CredentialService = (*CredentialService)(nil)

// IssueKey is a mock implementation of service.CredentialService.IssueKey
func (m *CredentialService) IssueKey(ctx context.Context, username, password string) (*domain.APIKey, error) {
	args := m.Called(ctx, username, password)
	if key, ok := args.Get(0).(*domain.APIKey); ok {
		return key, args.Error(1)
	}
	return nil, args.Error(1)
}

// ListKeys is a mock implementation of service.CredentialService.ListKeys
func (m *CredentialService) ListKeys(ctx context.Context, username, password string) ([]*domain.APIKey, error) {
	args := m.Called(ctx, username, password)
	if keys, ok := args.Get(0).([]*domain.APIKey); ok {
		return keys, args.Error(1)
	}
	return nil, args.Error(1)
}

// SetKeyActive is a mock implementation of service.CredentialService.SetKeyActive
func (m *CredentialService) SetKeyActive(ctx context.Context, keyID uuid.UUID, active bool) (*domain.APIKey, error) {
	args := m.Called(ctx, keyID, active)
	if key, ok := args.Get(0).(*domain.APIKey); ok {
		return key, args.Error(1)
	}
	return nil, args.Error(1)
}

// Authenticate is a mock implementation of service.CredentialService.Authenticate
func (m *CredentialService) Authenticate(ctx context.Context, username, password string) (*domain.Account, error) {
	args := m.Called(ctx, username, password)
	if account, ok := args.Get(0).(*domain.Account); ok {
		return account, args.Error(1)
	}
	return nil, args.Error(1)
}

// TaskService is a mock of service.TaskService for use with testify/mock
type TaskService struct {
	mock.Mock
}

var _ service.TaskService = (*TaskService)(nil)

// ListOwned is a mock implementation of service.TaskService.ListOwned
func (m *TaskService) ListOwned(ctx context.Context, ownerID uuid.UUID) ([]*domain.Task, error) {
	args := m.Called(ctx, ownerID)
	if tasks, ok := args.Get(0).([]*domain.Task); ok {
		return tasks, args.Error(1)
	}
	return nil, args.Error(1)
}

// GetOwned is a mock implementation of service.TaskService.GetOwned
func (m *TaskService) GetOwned(ctx context.Context, taskID, ownerID uuid.UUID) (*domain.Task, error) {
	args := m.Called(ctx, taskID, ownerID)
	if task, ok := args.Get(0).(*domain.Task); ok {
		return task, args.Error(1)
	}
	return nil, args.Error(1)
}

// Create is a mock implementation of service.TaskService.Create
func (m *TaskService) Create(
	ctx context.Context,
	ownerID uuid.UUID,
	title, description string,
	difficulty domain.Difficulty,
) (*domain.Task, error) {
	args := m.Called(ctx, ownerID, title, description, difficulty)
	if task, ok := args.Get(0).(*domain.Task); ok {
		return task, args.Error(1)
	}
	return nil, args.Error(1)
}

// Update is a mock implementation of service.TaskService.Update
func (m *TaskService) Update(
	ctx context.Context,
	taskID, ownerID uuid.UUID,
	title, description string,
	difficulty domain.Difficulty,
) (*domain.Task, error) {
	args := m.Called(ctx, taskID, ownerID, title, description, difficulty)
	if task, ok := args.Get(0).(*domain.Task); ok {
		return task, args.Error(1)
	}
	return nil, args.Error(1)
}

// ToggleDone is a mock implementation of service.TaskService.ToggleDone
func (m *TaskService) ToggleDone(ctx context.Context, taskID, ownerID uuid.UUID) (*domain.Task, error) {
	args := m.Called(ctx, taskID, ownerID)
	if task, ok := args.Get(0).(*domain.Task); ok {
		return task, args.Error(1)
	}
	return nil, args.Error(1)
}

// Delete is a mock implementation of service.TaskService.Delete
func (m *TaskService) Delete(ctx context.Context, taskID, ownerID uuid.UUID) error {
	args := m.Called(ctx, taskID, ownerID)
	return args.Error(0)
}

// AccountService is a mock of service.AccountService for use with testify/mock
type AccountService struct {
	mock.Mock
}

var _ service.AccountService = (*AccountService)(nil)

// SignUp is a mock implementation of service.AccountService.SignUp
func (m *AccountService) SignUp(ctx context.Context, username, password string) (*domain.Account, error) {
	args := m.Called(ctx, username, password)
	if account, ok := args.Get(0).(*domain.Account); ok {
		return account, args.Error(1)
	}
	return nil, args.Error(1)
}

// IdentityResolver is a mock of service.IdentityResolver for use with testify/mock
type IdentityResolver struct {
	mock.Mock
}

var _ service.IdentityResolver = (*IdentityResolver)(nil)

// ResolveAPIKey is a mock implementation of service.IdentityResolver.ResolveAPIKey
func (m *IdentityResolver) ResolveAPIKey(ctx context.Context, value string) (uuid.UUID, error) {
	args := m.Called(ctx, value)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

// ResolveToken is a mock implementation of service.IdentityResolver.ResolveToken
func (m *IdentityResolver) ResolveToken(ctx context.Context, token string) (uuid.UUID, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(uuid.UUID), args.Error(1)
}
