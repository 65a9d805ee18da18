package service

import "errors"

// Common service errors - sentinel errors used across service implementations.
// Validation failures come from the domain package and not-found conditions
// from the store package; the API layer maps both to HTTP status codes.
var (
	// ErrMissingDependency is returned by use case constructors when a
	// required collaborator is nil.
	ErrMissingDependency = errors.New("missing required dependency")
)
