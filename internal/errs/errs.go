package errs

import (
	"errors"
	"fmt"
)

// ValidationError reports bad input caught before any store is touched.
// The caller can always recover by correcting the named field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewValidation creates a field-level validation error.
func NewValidation(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// ConflictError reports a uniqueness violation, currently only duplicate
// company names.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

// ErrUnauthorized is returned when the authorization gate rejects an actor.
// It is deliberately opaque: callers learn nothing beyond "not authorized".
var ErrUnauthorized = errors.New("not authorized")

// ErrWritesDisabled is returned when a ledger write is attempted in a
// deployment with no signer key configured. It marks a deployment
// configuration state, not an internal fault.
var ErrWritesDisabled = errors.New("ledger writes are disabled: no signer key configured")

// LedgerError wraps a failure from the distributed ledger: a reverted
// transaction, a rejected signing step, or a transport fault. The underlying
// message is carried verbatim and never interpreted.
type LedgerError struct {
	Message string
	Err     error
}

func (e *LedgerError) Error() string {
	if e.Message != "" {
		return "ledger: " + e.Message
	}
	return "ledger: " + e.Err.Error()
}

func (e *LedgerError) Unwrap() error { return e.Err }

// NewLedger wraps err as a LedgerError, passing its message through.
func NewLedger(err error) *LedgerError {
	return &LedgerError{Message: err.Error(), Err: err}
}

// RegistryError wraps a failure from the document store. These are treated
// as transient; re-running the same call is safe.
type RegistryError struct {
	Op  string
	Err error
}

func (e *RegistryError) Error() string {
	return fmt.Sprintf("registry %s: %v", e.Op, e.Err)
}

func (e *RegistryError) Unwrap() error { return e.Err }

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsConflict reports whether err is (or wraps) a ConflictError.
func IsConflict(err error) bool {
	var ce *ConflictError
	return errors.As(err, &ce)
}

// IsLedger reports whether err is (or wraps) a LedgerError.
func IsLedger(err error) bool {
	var le *LedgerError
	return errors.As(err, &le)
}

// IsRegistry reports whether err is (or wraps) a RegistryError.
func IsRegistry(err error) bool {
	var re *RegistryError
	return errors.As(err, &re)
}
