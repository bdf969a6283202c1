package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/todo-api/internal/api/shared"
	"github.com/phrazzld/todo-api/internal/domain"
	"github.com/phrazzld/todo-api/internal/service"
	"github.com/phrazzld/todo-api/internal/service/auth"
	"github.com/phrazzld/todo-api/internal/store"
)

// isValidationError reports whether err came from input validation, either
// struct tags or a domain constructor.
func isValidationError(err error) bool {
	var validationErrs validator.ValidationErrors
	switch {
	case errors.As(err, &validationErrs),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, shared.ErrEmptyBody),
		errors.Is(err, domain.ErrEmptyUsername),
		errors.Is(err, domain.ErrEmptyPassword),
		errors.Is(err, domain.ErrEmptyTaskTitle),
		errors.Is(err, domain.ErrInvalidDifficulty):
		return true
	default:
		return false
	}
}

// MapErrorToStatusCode maps internal errors to HTTP status codes without
// exposing internal error types to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, service.ErrUnidentified),
		errors.Is(err, domain.ErrUnauthorized),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrWrongTokenType):
		return http.StatusUnauthorized

	case errors.Is(err, service.ErrAccountNotFound),
		errors.Is(err, service.ErrKeyNotFound),
		errors.Is(err, service.ErrTaskNotFound):
		return http.StatusNotFound

	case errors.Is(err, service.ErrUsernameTaken):
		return http.StatusConflict

	case errors.Is(err, service.ErrInvalidCredential),
		errors.Is(err, service.ErrIssuanceLimitReached),
		isValidationError(err):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a client-facing message for err. Anything not
// explicitly recognized, including integrity faults, gets a generic message.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "Something went wrong"
	}

	switch {
	case errors.Is(err, service.ErrUnidentified),
		errors.Is(err, domain.ErrUnauthorized):
		return "Invalid credentials"
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrWrongTokenType):
		return "Invalid token"

	case errors.Is(err, service.ErrAccountNotFound):
		return "Account not found"
	case errors.Is(err, service.ErrKeyNotFound):
		return "API key not found"
	case errors.Is(err, service.ErrTaskNotFound):
		return "Task not found"

	case errors.Is(err, service.ErrUsernameTaken):
		return "Username already taken"

	case errors.Is(err, service.ErrInvalidCredential):
		return "Wrong password"
	case errors.Is(err, service.ErrIssuanceLimitReached):
		return "API key limit reached"

	case errors.Is(err, domain.ErrEmptyUsername):
		return "Invalid username: required field"
	case errors.Is(err, domain.ErrEmptyPassword):
		return "Invalid password: required field"
	case errors.Is(err, domain.ErrEmptyTaskTitle):
		return "Invalid title: required field"
	case errors.Is(err, domain.ErrInvalidDifficulty):
		return "Invalid difficulty: invalid value"
	case errors.Is(err, domain.ErrInvalidID):
		return "Invalid ID"
	case errors.Is(err, shared.ErrEmptyBody):
		return "Request body is required"
	case isValidationError(err):
		return SanitizeValidationError(err)

	default:
		return "Something went wrong"
	}
}

// HandleAPIError writes the status and message for err. A non-empty
// customMsg replaces the derived message for client errors only; 5xx
// responses always carry the generic message.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, customMsg string) {
	status := MapErrorToStatusCode(err)
	message := GetSafeErrorMessage(err)
	if customMsg != "" && status < http.StatusInternalServerError {
		message = customMsg
	}

	var opts []shared.ResponseOption
	if status == http.StatusUnauthorized {
		opts = append(opts, shared.WithElevatedLogLevel())
	}

	shared.RespondWithErrorAndLog(w, r, status, message, err, opts...)
}

// SanitizeValidationError turns a validator error into a short message
// naming the first failing field.
func SanitizeValidationError(err error) string {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) && len(validationErrs) > 0 {
		fe := validationErrs[0]
		return fmt.Sprintf("Invalid %s: %s", fe.Field(), getValidationTagMessage(fe.Tag()))
	}

	var domainErr *domain.ValidationError
	if errors.As(err, &domainErr) {
		return fmt.Sprintf("Invalid %s", domainErr.Field)
	}

	return "Validation error"
}

func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "oneof":
		return "invalid value"
	case "uuid":
		return "invalid format"
	default:
		return "validation failed"
	}
}
