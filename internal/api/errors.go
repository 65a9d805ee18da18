package api

import (
	"errors"
	"net/http"

	"github.com/phrazzld/contacts-api/internal/api/shared"
	"github.com/phrazzld/contacts-api/internal/domain"
	"github.com/phrazzld/contacts-api/internal/store"
)

// Request-level errors raised by the handlers before any use case runs.
var (
	// ErrInvalidID is returned when the {id} path parameter is not a positive integer.
	ErrInvalidID = errors.New("invalid contact id")

	// ErrInvalidDDD is returned when the ddd query parameter is not two digits.
	ErrInvalidDDD = errors.New("invalid ddd")
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Bad request errors
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, ErrInvalidID),
		errors.Is(err, ErrInvalidDDD),
		errors.Is(err, shared.ErrInvalidRequestBody),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	// Not found errors
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
//
// Validation errors are the exception: their message is the public
// contract of the API and is returned as is.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	var validationErr *domain.ValidationError
	switch {
	case errors.As(err, &validationErr):
		return validationErr.Error()

	case errors.Is(err, ErrInvalidID):
		return "Invalid contact ID"

	case errors.Is(err, ErrInvalidDDD):
		return "Invalid DDD"

	case errors.Is(err, shared.ErrInvalidRequestBody):
		return "Invalid request format"

	case errors.Is(err, store.ErrNotFound):
		return "Contact not found"

	case errors.Is(err, store.ErrDuplicate):
		return "Contact already exists"

	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid contact data"

	default:
		return "An unexpected error occurred"
	}
}

// HandleAPIError writes the error response for err. The status code and body
// come from MapErrorToStatusCode and GetSafeErrorMessage unless message is
// non-empty, in which case it replaces the safe message. The full error is
// only ever logged, after redaction.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, message string) {
	status := MapErrorToStatusCode(err)
	if message == "" {
		message = GetSafeErrorMessage(err)
	}
	shared.RespondWithErrorAndLog(w, r, status, message, err)
}
