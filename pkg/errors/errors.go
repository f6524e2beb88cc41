// Package errors provides structured error types for ontomat.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across CLI and API
//   - Machine-readable error codes for programmatic handling
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Input validation failures
//   - NOT_FOUND / UNKNOWN_CLASS: Lookup failures answered as "no result"
//   - SOURCE_LOAD_FAILED: Edge-provider failures (fatal for construction)
//   - RESOURCE_EXHAUSTED: A search exceeded its caller-configured budget
//
// # Usage
//
//	err := errors.New(errors.ErrCodeUnknownClass, "class not in hierarchy: %s", name)
//	if errors.Is(err, errors.ErrCodeUnknownClass) {
//	    // Answer with a not-found result
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeSourceLoad, origErr, "load %s", path)
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
	ErrCodeInvalidInput Code = "INVALID_INPUT"
	ErrCodeInvalidMode  Code = "INVALID_MODE"
	ErrCodeInvalidScope Code = "INVALID_SCOPE"

	// Lookup failures
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeUnknownClass Code = "UNKNOWN_CLASS"

	// Edge-provider failures
	ErrCodeSourceLoad Code = "SOURCE_LOAD_FAILED"

	// Search budget exceeded
	ErrCodeResourceExhausted Code = "RESOURCE_EXHAUSTED"

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

// IsNotFound reports whether err is a not-found-class result: either a plain
// NOT_FOUND or an UNKNOWN_CLASS lookup failure. Both are answered by queries
// as "no result", never as a crash.
func IsNotFound(err error) bool {
	return Is(err, ErrCodeNotFound) || Is(err, ErrCodeUnknownClass)
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
