// Package errors provides structured error types for weekgrid.
//
// Errors carry a machine-readable [Code] so the CLI, the HTTP API and the
// terminal browser can react to a failure class without string matching:
//   - INVALID_*: input validation failures (bad week, day, period, format)
//   - *NOT_FOUND: the requested semester, week or file does not exist
//   - NETWORK_ERROR, TIMEOUT: the session source could not be reached
//   - INTERNAL_ERROR, UNSUPPORTED: everything else
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidPeriod, "start period %d out of range", p)
//	if errors.Is(err, errors.ErrCodeInvalidPeriod) {
//	    // skip the session
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeNetwork, origErr, "fetch week %s", sel)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput     Code = "INVALID_INPUT"
	ErrCodeInvalidWeek      Code = "INVALID_WEEK"
	ErrCodeInvalidDay       Code = "INVALID_DAY"
	ErrCodeInvalidPeriod    Code = "INVALID_PERIOD"
	ErrCodeInvalidDate      Code = "INVALID_DATE"
	ErrCodeInvalidClock     Code = "INVALID_CLOCK"
	ErrCodeInvalidFormat    Code = "INVALID_FORMAT"
	ErrCodeInvalidView      Code = "INVALID_VIEW"
	ErrCodeInvalidConfig    Code = "INVALID_CONFIG"
	ErrCodeInconsistentTime Code = "INCONSISTENT_TIME"

	// Resource not found errors
	ErrCodeNotFound         Code = "NOT_FOUND"
	ErrCodeSemesterNotFound Code = "SEMESTER_NOT_FOUND"
	ErrCodeWeekNotFound     Code = "WEEK_NOT_FOUND"
	ErrCodeFileNotFound     Code = "FILE_NOT_FOUND"

	// Network errors
	ErrCodeNetwork Code = "NETWORK_ERROR"
	ErrCodeTimeout Code = "TIMEOUT"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// Only the outermost *Error in the chain is consulted.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// IsNotFound reports whether err carries any of the not-found codes.
func IsNotFound(err error) bool {
	switch GetCode(err) {
	case ErrCodeNotFound, ErrCodeSemesterNotFound, ErrCodeWeekNotFound, ErrCodeFileNotFound:
		return true
	}
	return false
}

// IsInvalid reports whether err is an input validation failure.
func IsInvalid(err error) bool {
	switch GetCode(err) {
	case ErrCodeInvalidInput, ErrCodeInvalidWeek, ErrCodeInvalidDay, ErrCodeInvalidPeriod,
		ErrCodeInvalidDate, ErrCodeInvalidClock, ErrCodeInvalidFormat, ErrCodeInvalidView,
		ErrCodeInvalidConfig, ErrCodeInconsistentTime:
		return true
	}
	return false
}
