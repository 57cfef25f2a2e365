package domain

import (
	"errors"
	"fmt"
)

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	ErrMsgItemNotFound   = "item not found"
	ErrMsgRecipeNotFound = "recipe not found"
	ErrMsgNotFound       = "not found"
	ErrMsgStorage        = "storage error"
	ErrMsgInvalidInput   = "invalid input"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// ErrItemNotFound means the provider confirmed the item does not exist.
	ErrItemNotFound = errors.New(ErrMsgItemNotFound)

	// ErrRecipeNotFound means the provider confirmed the item has no recipe.
	// This is the one absence worth caching as a negative fact.
	ErrRecipeNotFound = errors.New(ErrMsgRecipeNotFound)

	// ErrNotFound is the generic confirmed-absence error for other lookups
	// (gathering source, vendor source, icon). Never cached.
	ErrNotFound = errors.New(ErrMsgNotFound)

	// ErrStorage wraps every local persistence failure. It indicates a
	// systemic problem and aborts whole operations rather than branches.
	ErrStorage = errors.New(ErrMsgStorage)

	// ErrInvalidInput covers malformed caller arguments.
	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
)

// TransientError marks a provider failure (network error, timeout, malformed
// response) that must never be cached as a negative fact. It is the
// type-level distinction between "provider unreachable" and "confirmed: not
// found".
type TransientError struct {
	Op  string
	Err error
}

func (e *TransientError) Error() string {
	return fmt.Sprintf("transient provider error in %s: %v", e.Op, e.Err)
}

func (e *TransientError) Unwrap() error {
	return e.Err
}

// NewTransientError wraps err as a transient provider failure for op.
func NewTransientError(op string, err error) error {
	return &TransientError{Op: op, Err: err}
}

// IsTransient reports whether err is (or wraps) a TransientError.
func IsTransient(err error) bool {
	var te *TransientError
	return errors.As(err, &te)
}

// IsStorage reports whether err is (or wraps) ErrStorage.
func IsStorage(err error) bool {
	return errors.Is(err, ErrStorage)
}
