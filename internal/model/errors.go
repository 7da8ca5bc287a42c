package model

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates a referenced user or meal does not exist.
	ErrNotFound = errors.New("not found")
	// ErrUnauthenticated indicates the request carries no session token.
	ErrUnauthenticated = errors.New("missing session token")
	// ErrDuplicateEmail indicates a registration with an already-used email.
	ErrDuplicateEmail = errors.New("email already registered")
)

// ValidationError reports a malformed or missing input field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid field %q: %s", e.Field, e.Reason)
}

// NewValidationError creates a ValidationError for the given field.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}
