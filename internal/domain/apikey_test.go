package domain

import (
	"testing"

	"github.com/google/uuid"
)

func TestNewAPIKey(t *testing.T) {
	t.Parallel()
	accountID := uuid.New()

	key, err := NewAPIKey(accountID, "tk_secret")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if key.AccountID != accountID {
		t.Errorf("Expected account ID %s, got %s", accountID, key.AccountID)
	}
	if !key.IsActive {
		t.Error("Expected new key to be active")
	}
	if key.Key != "tk_secret" {
		t.Errorf("Expected key value to be kept, got %q", key.Key)
	}

	if _, err := NewAPIKey(uuid.Nil, "tk_secret"); err != ErrEmptyAPIKeyAccountID {
		t.Errorf("Expected error %v, got %v", ErrEmptyAPIKeyAccountID, err)
	}
	if _, err := NewAPIKey(accountID, ""); err != ErrEmptyAPIKeyValue {
		t.Errorf("Expected error %v, got %v", ErrEmptyAPIKeyValue, err)
	}
}

func TestAPIKeySetActiveIsIdempotent(t *testing.T) {
	t.Parallel()
	key, err := NewAPIKey(uuid.New(), "tk_secret")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	key.SetActive(true)
	if !key.IsActive {
		t.Error("Expected key to stay active")
	}

	key.SetActive(false)
	key.SetActive(false)
	if key.IsActive {
		t.Error("Expected key to be inactive")
	}
}
