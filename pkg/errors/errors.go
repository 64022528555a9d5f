// Package errors provides structured error types for stemloop.
//
// Errors carry a machine-readable [Code] so that the CLI and the HTTP API can
// map failures to exit codes and status codes without string matching.
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Input validation failures
//   - UNBALANCED_BRACKET, MALFORMED_STRUCTURE: dot-bracket problems
//   - GEOMETRY: a loop or helix that cannot be placed
//   - NOT_FOUND_*: Resource not found
//   - INTERNAL_*: Unexpected internal errors
//
// Domain packages define their own typed errors (for example
// structure.UnbalancedBracketError). Any error with a Code() method
// participates in [Is] and [GetCode].
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidInput, "sequence is empty")
//	if errors.Is(err, errors.ErrCodeInvalidInput) {
//	    // Handle validation error
//	}
//
//	err := errors.Wrap(errors.ErrCodeInvalidInput, origErr, "reading %s", path)
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
	ErrCodeInvalidSequence  Code = "INVALID_SEQUENCE"
	ErrCodeInvalidStructure Code = "INVALID_STRUCTURE"
	ErrCodeInvalidFormat    Code = "INVALID_FORMAT"
	ErrCodeInvalidVizType   Code = "INVALID_VIZ_TYPE"
	ErrCodeInvalidPath      Code = "INVALID_PATH"
	ErrCodeInvalidConfig    Code = "INVALID_CONFIG"

	// Structure and layout errors
	ErrCodeUnbalancedBracket  Code = "UNBALANCED_BRACKET"
	ErrCodeMalformedStructure Code = "MALFORMED_STRUCTURE"
	ErrCodeGeometry           Code = "GEOMETRY"

	// Resource not found errors
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

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

// coder is implemented by typed domain errors that report their own code.
type coder interface {
	Code() Code
}

// Is reports whether err has the given error code.
// It checks the outermost coded error in the chain, so a wrapping *Error
// takes precedence over the codes of the errors it wraps.
func Is(err error, code Code) bool {
	if err == nil {
		return false
	}
	return GetCode(err) == code
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if no error in the chain carries a code.
func GetCode(err error) Code {
	for err != nil {
		switch e := err.(type) {
		case *Error:
			return e.Code
		case coder:
			return e.Code()
		}
		err = errors.Unwrap(err)
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

// ExitCode maps an error to a process exit status for the CLI.
// Input problems exit with 2, geometry failures with 3, everything else with 1.
func ExitCode(err error) int {
	switch GetCode(err) {
	case "":
		if err == nil {
			return 0
		}
		return 1
	case ErrCodeInvalidInput, ErrCodeInvalidSequence, ErrCodeInvalidStructure,
		ErrCodeUnbalancedBracket, ErrCodeMalformedStructure, ErrCodeInvalidFormat,
		ErrCodeInvalidVizType, ErrCodeInvalidPath, ErrCodeInvalidConfig:
		return 2
	case ErrCodeGeometry:
		return 3
	default:
		return 1
	}
}
