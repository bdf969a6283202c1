package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// API key validation errors
var (
	ErrEmptyAPIKeyID        = errors.New("api key ID cannot be empty")
	ErrEmptyAPIKeyAccountID = errors.New("api key account ID cannot be empty")
	ErrEmptyAPIKeyValue     = errors.New("api key value cannot be empty")
)

// APIKey is a long-lived access token bound to exactly one account.
// The Key value is generated once at issuance and never regenerated;
// only IsActive changes over the lifetime of the record.
type APIKey struct {
	ID        uuid.UUID `json:"id"`
	AccountID uuid.UUID `json:"account_id"`
	Key       string    `json:"-"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// NewAPIKey creates an active APIKey for the given account with the given key value.
func NewAPIKey(accountID uuid.UUID, key string) (*APIKey, error) {
	apiKey := &APIKey{
		ID:        uuid.New(),
		AccountID: accountID,
		Key:       key,
		IsActive:  true,
		CreatedAt: time.Now().UTC(),
	}

	if err := apiKey.Validate(); err != nil {
		return nil, err
	}

	return apiKey, nil
}

// Validate checks if the APIKey has valid data.
func (k *APIKey) Validate() error {
	if k.ID == uuid.Nil {
		return ErrEmptyAPIKeyID
	}
	if k.AccountID == uuid.Nil {
		return ErrEmptyAPIKeyAccountID
	}
	if k.Key == "" {
		return ErrEmptyAPIKeyValue
	}
	return nil
}

// SetActive overwrites the active flag. Setting the current value is a no-op.
func (k *APIKey) SetActive(active bool) {
	k.IsActive = active
}
