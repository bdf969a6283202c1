package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Account validation errors
var (
	ErrEmptyAccountID = errors.New("account ID cannot be empty")
	ErrEmptyUsername  = errors.New("username cannot be empty")
	ErrEmptyPassword  = errors.New("password cannot be empty")
)

// Account is a registered user of the service.
// Username is unique and compared case-sensitively.
// Password is stored as supplied; comparison goes through auth.PasswordVerifier.
type Account struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Password  string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

// NewAccount creates a new Account with a fresh ID and creation timestamp.
// Returns an error if validation fails.
func NewAccount(username, password string) (*Account, error) {
	account := &Account{
		ID:        uuid.New(),
		Username:  username,
		Password:  password,
		CreatedAt: time.Now().UTC(),
	}

	if err := account.Validate(); err != nil {
		return nil, err
	}

	return account, nil
}

// Validate checks if the Account has valid data.
func (a *Account) Validate() error {
	if a.ID == uuid.Nil {
		return ErrEmptyAccountID
	}
	if a.Username == "" {
		return ErrEmptyUsername
	}
	if a.Password == "" {
		return ErrEmptyPassword
	}
	return nil
}
