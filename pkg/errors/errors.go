// Package errors provides structured error types for the caraspace libraries.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the export and decorator subsystems
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// The export engine and decorator subsystem share one small taxonomy:
//   - UNSUPPORTED_SHAPE: a value offers no shape descriptor
//   - RELATION_SIGNATURE_CONFLICT: a relation name is reused with a
//     different participant-type signature
//   - UNRESOLVED_SELECTOR: an instance annotation's selector does not
//     resolve against the instance's shape at merge time
//   - INVALID_ANNOTATION: annotation parameters do not match the schema
//     for their annotation type
//   - INVALID_SELECTOR: a selector string is syntactically malformed
//   - INTERNAL_ERROR: unexpected internal failure
//
// # Usage
//
//	err := errors.New(errors.ErrCodeUnsupportedShape, "no shape descriptor for %T", v)
//	if errors.Is(err, errors.ErrCodeUnsupportedShape) {
//	    // Handle unsupported value
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInternal, origErr, "finalize session %s", id)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for the export and decorator subsystems.
const (
	// ErrCodeUnsupportedShape indicates a value with no shape descriptor.
	// The export session that encountered it is aborted.
	ErrCodeUnsupportedShape Code = "UNSUPPORTED_SHAPE"

	// ErrCodeRelationConflict indicates two emissions disagreed on a
	// relation's participant-type signature. This is a schema error in the
	// shape descriptors, surfaced immediately.
	ErrCodeRelationConflict Code = "RELATION_SIGNATURE_CONFLICT"

	// ErrCodeUnresolvedSelector indicates an instance annotation's selector
	// path does not resolve against the instance's shape. Surfaced at merge
	// time, never at attach time.
	ErrCodeUnresolvedSelector Code = "UNRESOLVED_SELECTOR"

	// ErrCodeInvalidAnnotation indicates annotation parameters that do not
	// match the schema for the annotation type.
	ErrCodeInvalidAnnotation Code = "INVALID_ANNOTATION"

	// ErrCodeInvalidSelector indicates a syntactically malformed selector.
	ErrCodeInvalidSelector Code = "INVALID_SELECTOR"

	// ErrCodeInternal indicates an unexpected internal error.
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
