package sar

import (
	"errors"
	"fmt"
)

// Error taxonomy shared by the core and its callers
var (
	// ErrValidation is wrapped by every *ValidationError
	ErrValidation = errors.New("validation failed")
	// ErrNotFound is returned when a record does not resolve under the given owner.
	// A row owned by someone else is reported the same way.
	ErrNotFound = errors.New("not found")
	// ErrConfiguration means a deadline-dependent decision had no resolvable deadline
	ErrConfiguration = errors.New("no resolvable deadline")
)

// ValidationError reports malformed or out-of-range input on a single field
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}
