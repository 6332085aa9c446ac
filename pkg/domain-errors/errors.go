// Package domainerrors provides coded errors shared by services and domain models.
//
// A coded error carries a stable Code for callers that translate errors into
// responses, a human-readable Message, and an optional cause. Error() returns the
// message only, so message text stays stable regardless of the wrapped cause.
//
// Usage:
//
//	return dErrors.New(dErrors.CodeNotFound, "review cycle not found")
//	return dErrors.Wrap(models.ErrFinalScoreLocked, dErrors.CodeInvariantViolation, "final score is locked")
//	if dErrors.HasCode(err, dErrors.CodeForbidden) { ... }
package domainerrors

import "errors"

// Code classifies an error for translation at the edges of the system.
type Code string

const (
	CodeNotFound           Code = "not_found"
	CodeValidation         Code = "validation_error"
	CodeBadRequest         Code = "bad_request"
	CodeInvalidInput       Code = "invalid_input"
	CodeUnauthorized       Code = "unauthorized"
	CodeForbidden          Code = "forbidden"
	CodeConflict           Code = "conflict"
	CodeInvariantViolation Code = "invariant_violation"
	CodeTimeout            Code = "timeout"
	CodeInternal           Code = "internal_error"
)

// Error is a coded domain error.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Message == "" && e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

// Unwrap exposes the cause so errors.Is/As keep working through the wrapper.
func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a coded error without a cause.
func New(code Code, message string) error {
	return &Error{Code: code, Message: message}
}

// Wrap attaches a code and message to an existing error.
// Returns nil when err is nil.
func Wrap(err error, code Code, message string) error {
	if err == nil {
		return nil
	}
	return &Error{Code: code, Message: message, Err: err}
}

// HasCode reports whether the outermost coded error in the chain has the given code.
func HasCode(err error, code Code) bool {
	return CodeOf(err) == code
}

// CodeOf returns the code of the outermost coded error in the chain, or an
// empty Code when the chain carries none.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}

// Is is a convenience alias for errors.Is.
func Is(err, target error) bool {
	return errors.Is(err, target)
}
