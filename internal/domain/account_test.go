package domain

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestNewAccount(t *testing.T) {
	t.Parallel()

	account, err := NewAccount("alice", "wonderland")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if account.ID == uuid.Nil {
		t.Error("Expected non-nil UUID, got nil UUID")
	}
	if account.Username != "alice" {
		t.Errorf("Expected username alice, got %s", account.Username)
	}

	if _, err := NewAccount("", "wonderland"); err != ErrEmptyUsername {
		t.Errorf("Expected error %v, got %v", ErrEmptyUsername, err)
	}
	if _, err := NewAccount("alice", ""); err != ErrEmptyPassword {
		t.Errorf("Expected error %v, got %v", ErrEmptyPassword, err)
	}
}

func TestValidationError(t *testing.T) {
	t.Parallel()

	err := NewValidationError("id", "has invalid format", ErrInvalidID)
	if !errors.Is(err, ErrInvalidID) {
		t.Error("Expected validation error to wrap ErrInvalidID")
	}
	if err.Error() != "id has invalid format: invalid ID" {
		t.Errorf("Unexpected message %q", err.Error())
	}

	if !errors.Is(NewValidationError("title", "is required", nil), ErrValidation) {
		t.Error("Expected nil cause to default to ErrValidation")
	}
}
