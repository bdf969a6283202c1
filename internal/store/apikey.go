package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/todo-api/internal/domain"
)

// APIKeyStore defines the interface for API key persistence.
// Keys are never deleted; only the active flag is mutable.
type APIKeyStore interface {
	// Create saves a new API key unconditionally.
	Create(ctx context.Context, key *domain.APIKey) error

	// CreateWithinLimit saves a new API key only if the owning account holds
	// fewer than limit keys. Counting and inserting happen atomically with
	// respect to other CreateWithinLimit calls for the same account.
	// Returns ErrKeyLimitReached when the account is already at the limit.
	CreateWithinLimit(ctx context.Context, key *domain.APIKey, limit int) error

	// GetByID retrieves an API key by its unique ID.
	// Returns ErrAPIKeyNotFound if the key does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.APIKey, error)

	// GetByValue retrieves an API key by its secret value.
	// Returns ErrAPIKeyNotFound if no key has that value.
	GetByValue(ctx context.Context, value string) (*domain.APIKey, error)

	// ListByAccount returns all keys owned by the account, in no particular order.
	// Returns an empty slice if the account has none.
	ListByAccount(ctx context.Context, accountID uuid.UUID) ([]*domain.APIKey, error)

	// SetActive overwrites the active flag of a key.
	// Returns ErrAPIKeyNotFound if the key does not exist.
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
}
