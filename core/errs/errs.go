// Package errs defines the error taxonomy shared by the ledger, the
// orchestrators, and the API layer. Callers branch with errors.Is/errors.As;
// nothing here is ever surfaced as an unstructured panic.
package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound: a referenced variant/order/purchase order/location does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInsufficientStock: a decrement would drive available quantity negative.
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrConflict: a conditional update affected zero rows for a reason other
	// than insufficient stock (e.g. record deleted mid-flight). Retryable.
	ErrConflict = errors.New("conflict, retry")

	// ErrAlreadyReceived: receiving a purchase order that is already received.
	ErrAlreadyReceived = errors.New("purchase order already received")

	// ErrInvalidTransition: status change not permitted by the state machine.
	ErrInvalidTransition = errors.New("invalid status transition")
)

// ValidationError reports malformed or missing input. It never follows a
// state change.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return e.Field + ": " + e.Reason
}

// Validation builds a *ValidationError.
func Validation(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// IsValidation reports whether err is a validation error.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// PersistenceError wraps a store failure. Retryable; the caller must not
// assume partial writes succeeded.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence: %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// Persistence wraps err as a PersistenceError. Returns nil for nil err.
func Persistence(op string, err error) error {
	if err == nil {
		return nil
	}
	return &PersistenceError{Op: op, Err: err}
}

// IsPersistence reports whether err is a persistence failure.
func IsPersistence(err error) bool {
	var pe *PersistenceError
	return errors.As(err, &pe)
}
