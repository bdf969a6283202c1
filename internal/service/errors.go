package service

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the services. Callers check them with errors.Is;
// the API layer maps each to an HTTP status.
var (
	// ErrAccountNotFound indicates no account exists with the supplied username.
	ErrAccountNotFound = errors.New("account not found")

	// ErrInvalidCredential indicates the supplied password does not match.
	ErrInvalidCredential = errors.New("invalid credential")

	// ErrIssuanceLimitReached indicates the account already holds the maximum
	// number of API keys.
	ErrIssuanceLimitReached = errors.New("api key issuance limit reached")

	// ErrKeyNotFound indicates no API key exists with the supplied ID.
	ErrKeyNotFound = errors.New("api key not found")

	// ErrTaskNotFound indicates the task does not exist or is owned by someone else.
	ErrTaskNotFound = errors.New("task not found")

	// ErrIntegrityFault indicates the store reported an unexpected number of
	// affected rows for a write.
	ErrIntegrityFault = errors.New("something went wrong")

	// ErrUsernameTaken indicates sign-up was attempted with an existing username.
	ErrUsernameTaken = errors.New("username already taken")

	// ErrUnidentified indicates the caller's identity could not be resolved
	// from the supplied API key or token.
	ErrUnidentified = errors.New("caller identity could not be resolved")
)

// ServiceError carries the failing service operation alongside the cause.
type ServiceError struct {
	Service   string
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %s failed: %s: %v", e.Service, e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s %s failed: %s", e.Service, e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError creates a new ServiceError.
func NewServiceError(service, operation, message string, err error) *ServiceError {
	return &ServiceError{
		Service:   service,
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
