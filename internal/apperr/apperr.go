// Package apperr defines the error kinds the ledger engine reports.
//
// The engine never encodes transport concerns: callers (the HTTP layer)
// match on these kinds with errors.Is and decide status codes themselves.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks malformed input, local to a single field or value.
	ErrValidation = errors.New("validation error")

	// ErrForbidden marks an authorization failure (wrong actor).
	ErrForbidden = errors.New("forbidden")

	// ErrNotFound marks a referenced entity that does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict marks an entity that already exists or a self-referencing
	// relation (duplicate email, adding yourself as a contact).
	ErrConflict = errors.New("conflict")

	// ErrTransaction marks a storage-layer failure during a multi-step
	// write. The failed operation is rolled back in full.
	ErrTransaction = errors.New("transaction error")
)

// Validationf wraps ErrValidation with a formatted message.
func Validationf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, prepend(ErrValidation, args)...)
}

// Forbiddenf wraps ErrForbidden with a formatted message.
func Forbiddenf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, prepend(ErrForbidden, args)...)
}

// NotFoundf wraps ErrNotFound with a formatted message.
func NotFoundf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, prepend(ErrNotFound, args)...)
}

// Conflictf wraps ErrConflict with a formatted message.
func Conflictf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, prepend(ErrConflict, args)...)
}

// Transactionf wraps ErrTransaction with a formatted message.
func Transactionf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, prepend(ErrTransaction, args)...)
}

func prepend(err error, args []any) []any {
	return append([]any{err}, args...)
}

// UnbalancedError reports a custom split whose shares do not sum to the
// expense amount. Delta is sum(shares) - amount, positive when the shares
// overshoot.
type UnbalancedError struct {
	Amount float64
	Sum    float64
	Delta  float64
}

func (e *UnbalancedError) Error() string {
	return fmt.Sprintf("splits sum to %.2f, expense amount is %.2f (delta %+.2f)", e.Sum, e.Amount, e.Delta)
}

// IsUnbalanced reports whether err is an UnbalancedError.
func IsUnbalanced(err error) bool {
	var ue *UnbalancedError
	return errors.As(err, &ue)
}
