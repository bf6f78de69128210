// Package errs defines the domain error taxonomy. Errors are raised at the
// point of detection and propagate unmodified to the HTTP layer, which owns
// the mapping to status codes.
package errs

import "fmt"

// ValidationError marks malformed or out-of-policy input: blank client
// names, non-positive amounts, withdrawals at or above the balance, absent
// required arguments. Maps to 400.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Validationf builds a ValidationError with a printf-style message.
func Validationf(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// NotFoundError marks a client or account ID with no backing record.
// Maps to 404.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

// NotFoundf builds a NotFoundError with a printf-style message.
func NotFoundf(format string, args ...any) error {
	return &NotFoundError{Message: fmt.Sprintf(format, args...)}
}

// OwnershipError marks an account that exists but is not associated with the
// supplied client ID. Maps to 403.
type OwnershipError struct {
	Message string
}

func (e *OwnershipError) Error() string { return e.Message }

// Ownershipf builds an OwnershipError with a printf-style message.
func Ownershipf(format string, args ...any) error {
	return &OwnershipError{Message: fmt.Sprintf(format, args...)}
}

// UnexpectedError wraps store failures and other internal faults. Maps to 500.
type UnexpectedError struct {
	Message string
	Err     error
}

func (e *UnexpectedError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *UnexpectedError) Unwrap() error { return e.Err }

// Unexpected wraps err with a short context message.
func Unexpected(message string, err error) error {
	return &UnexpectedError{Message: message, Err: err}
}
