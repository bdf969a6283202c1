package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/todo-api/internal/domain"
)

// SignUpRequest is the payload of the sign-up endpoint.
type SignUpRequest struct {
	Username string `json:"username" validate:"required,max=255"`
	Password string `json:"password" validate:"required,max=72"`
}

// AccountResponse describes a registered account. The password is never echoed.
type AccountResponse struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

// CredentialsRequest carries a username and password, used by the token and
// API key issuance endpoints.
type CredentialsRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// TokenResponse is returned by the token endpoint.
type TokenResponse struct {
	AccountID   uuid.UUID `json:"account_id"`
	AccessToken string    `json:"token"`
	// ExpiresAt is an RFC 3339 timestamp.
	ExpiresAt string `json:"expires_at"`
}

// APIKeyResponse describes an issued API key, including its secret value.
type APIKeyResponse struct {
	ID        uuid.UUID `json:"id"`
	APIKey    string    `json:"api_key"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// SetKeyStateRequest is the payload of the key state endpoint.
// IsActive is a pointer so that an omitted field fails validation instead of
// silently deactivating the key.
type SetKeyStateRequest struct {
	IsActive *bool `json:"is_active" validate:"required"`
}

// TaskRequest is the payload for creating or updating a task.
type TaskRequest struct {
	Title       string `json:"title"       validate:"required,max=500"`
	Description string `json:"description" validate:"max=5000"`
	Difficulty  string `json:"difficulty"  validate:"required,oneof=easy normal hard"`
}

// TaskResponse describes a task.
type TaskResponse struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Difficulty  string    `json:"difficulty"`
	IsDone      bool      `json:"is_done"`
	CreatedAt   time.Time `json:"created_at"`
}

func accountToResponse(account *domain.Account) AccountResponse {
	return AccountResponse{
		ID:        account.ID,
		Username:  account.Username,
		CreatedAt: account.CreatedAt,
	}
}

func apiKeyToResponse(key *domain.APIKey) APIKeyResponse {
	return APIKeyResponse{
		ID:        key.ID,
		APIKey:    key.Key,
		IsActive:  key.IsActive,
		CreatedAt: key.CreatedAt,
	}
}

func apiKeysToResponse(keys []*domain.APIKey) []APIKeyResponse {
	out := make([]APIKeyResponse, 0, len(keys))
	for _, key := range keys {
		out = append(out, apiKeyToResponse(key))
	}
	return out
}

func taskToResponse(task *domain.Task) TaskResponse {
	return TaskResponse{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Difficulty:  string(task.Difficulty),
		IsDone:      task.IsDone,
		CreatedAt:   task.CreatedAt,
	}
}

func tasksToResponse(tasks []*domain.Task) []TaskResponse {
	out := make([]TaskResponse, 0, len(tasks))
	for _, task := range tasks {
		out = append(out, taskToResponse(task))
	}
	return out
}
