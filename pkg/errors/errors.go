// Package errors provides structured error types for the stagewalk
// boundaries (config loading, HTTP API, CLI exit paths).
//
// The core level package uses plain sentinel errors; this package adds
// machine-readable codes where callers need to map failures onto user
// messages or HTTP statuses.
//
// # Error Codes
//
// Error codes follow the failure taxonomy:
//   - format errors, raised at parse time before graph construction
//   - structural errors, raised at graph-construction time
//   - resource and internal errors for the API surface
//
// # Usage
//
//	err := errors.New(errors.ErrCodeBadFieldType, "skill entry %d is not a string", i)
//	if errors.Is(err, errors.ErrCodeBadFieldType) {
//	    // Handle the malformed document
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidConfig, origErr, "decode %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different failure categories.
const (
	// Format errors (parse time, before graph construction)
	ErrCodeInvalidConfig      Code = "INVALID_CONFIG"
	ErrCodeUnsupportedVersion Code = "UNSUPPORTED_FORMAT_VERSION"
	ErrCodeMissingSection     Code = "MISSING_REQUIRED_SECTION"
	ErrCodeBadFieldType       Code = "BAD_FIELD_TYPE"

	// Structural errors (graph-construction time)
	ErrCodeNoStages         Code = "NO_STAGES_DEFINED"
	ErrCodeMissingStageID   Code = "MISSING_STAGE_ID"
	ErrCodeDuplicateStageID Code = "DUPLICATE_STAGE_ID"
	ErrCodeBadStage         Code = "BAD_STAGE_DEFINITION"

	// Resource errors
	ErrCodeNotFound Code = "NOT_FOUND"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
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
// It unwraps the error chain looking for an *Error with a matching code.
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
