// Package domain defines the core business entities and errors.
package domain

import "errors"

// ErrValidation is the root of every validation failure. All *ValidationError
// values unwrap to it, so callers can test for any validation problem with
// errors.Is(err, domain.ErrValidation).
var ErrValidation = errors.New("validation failed")

// ValidationKind identifies which contact rule was violated.
type ValidationKind string

// Validation kinds known to the contacts directory.
const (
	KindNameRequired ValidationKind = "name_required"
	KindInvalidEmail ValidationKind = "invalid_email"
	KindInvalidPhone ValidationKind = "invalid_phone"
)

// validationMessages holds the user-facing message for each kind. The strings
// are part of the public contract of the API and must not change.
var validationMessages = map[ValidationKind]string{
	KindNameRequired: "O nome é obrigatório.",
	KindInvalidEmail: "Formato de e-mail inválido.",
	KindInvalidPhone: "Número de telefone informado incorretamente, Modelo esperado: (dd) 99999-9999.",
}

// Message returns the user-facing message registered for kind.
func Message(kind ValidationKind) string {
	if msg, ok := validationMessages[kind]; ok {
		return msg
	}
	return ErrValidation.Error()
}

// ValidationError reports a violated contact rule. Its Error method returns
// exactly the user-facing message for Kind.
type ValidationError struct {
	Kind  ValidationKind
	Field string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return Message(e.Kind)
}

// Unwrap returns ErrValidation to support errors.Is.
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// NewValidationError creates a ValidationError for the given field.
func NewValidationError(kind ValidationKind, field string) *ValidationError {
	return &ValidationError{Kind: kind, Field: field}
}

// Sentinel validation errors. They are *ValidationError values, so both
// errors.Is(err, ErrNameRequired) and errors.As(err, &*ValidationError) work.
var (
	ErrNameRequired       = NewValidationError(KindNameRequired, "name")
	ErrInvalidEmail       = NewValidationError(KindInvalidEmail, "email")
	ErrInvalidPhoneNumber = NewValidationError(KindInvalidPhone, "phone_number")
)
