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

// ErrState indicates that the operation is not permitted in the entity's current lifecycle state.
var ErrState = errors.New("operation not permitted in current state")

// ErrForbidden indicates that the acting user lacks the capability required for the operation.
var ErrForbidden = errors.New("permission denied")

// ErrPersistence indicates an underlying store failure.
var ErrPersistence = errors.New("persistence error")

// AppError carries an HTTP-ish status code and a message alongside the wrapped cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

// NewAppError creates an AppError. Errors with a 5xx code unwrap to ErrPersistence
// in addition to their cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap exposes both the cause and, for server-side failures, ErrPersistence.
func (e *AppError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	if e.Code >= 500 {
		errs = append(errs, ErrPersistence)
	}
	return errs
}

// StateError names the current and requested state of an entity whose lifecycle refused an operation.
type StateError struct {
	Entity    string
	Current   string
	Requested string
}

func (e *StateError) Error() string {
	return fmt.Sprintf("%s: cannot %s %s in state %s", ErrState.Error(), e.Requested, e.Entity, e.Current)
}

// Unwrap lets errors.Is(err, ErrState) match.
func (e *StateError) Unwrap() error {
	return ErrState
}

// NewStateError builds a StateError.
func NewStateError(entity, current, requested string) *StateError {
	return &StateError{Entity: entity, Current: current, Requested: requested}
}
