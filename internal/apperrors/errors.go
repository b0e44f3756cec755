package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrUnknownRuleSet indicates that a compliance scheme name has no configured rule set.
var ErrUnknownRuleSet = errors.New("unknown compliance rule set")

// ErrForbidden indicates that the caller may not access the requested resource.
var ErrForbidden = errors.New("forbidden")

// ErrUnavailable indicates that a backing system the request needs is not configured or reachable.
var ErrUnavailable = errors.New("service unavailable")

// InputError is returned for malformed or missing parameters. It is raised
// before any computation starts. InputError matches ErrValidation with errors.Is.
type InputError struct {
	Field  string
	Reason string
	Err    error // Optional more specific cause, e.g. ErrUnknownRuleSet
}

// NewInputError creates an InputError for the given field.
func NewInputError(field, reason string) *InputError {
	return &InputError{Field: field, Reason: reason}
}

func (e *InputError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("invalid input: %s", e.Reason)
	}
	return fmt.Sprintf("invalid input for %s: %s", e.Field, e.Reason)
}

// Is makes every InputError match ErrValidation, plus its wrapped cause.
func (e *InputError) Is(target error) bool {
	if target == ErrValidation {
		return true
	}
	return e.Err != nil && errors.Is(e.Err, target)
}

// Unwrap returns the specific cause, if any.
func (e *InputError) Unwrap() error {
	return e.Err
}

// AppError carries an HTTP-ish status code alongside an internal cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

// NewAppError creates an AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

// Unwrap returns the underlying error.
func (e *AppError) Unwrap() error {
	return e.Err
}
