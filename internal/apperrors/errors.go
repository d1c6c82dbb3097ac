package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates that an operation is not allowed in the resource's
// current lifecycle state (e.g. posting an already-posted entry or posting
// into a closed financial year).
var ErrConflict = errors.New("operation conflicts with resource state")

// ErrIntegrity indicates that stored data diverged from a recomputed
// reference, e.g. incremental balances disagreeing with a full replay.
var ErrIntegrity = errors.New("data integrity violation")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")

// AppError wraps a lower-level error with a status code and message.
// Repositories use it to report driver failures without leaking SQL details.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError wrapping the given cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}
