// Package errors provides structured error types for scenedoc.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the CLI, the HTTP server and the library
//   - Machine-readable error codes for programmatic handling
//   - Errors that name the offending scene object (reference id and class)
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Serialization codes describe why a pass stopped:
//   - UNREGISTERED_KIND: no serializer is registered for a class name
//   - MISSING_GEOMETRY: a dataset has no point coordinates
//   - UNSUPPORTED_COMPOSITE: a composite class is not an aggregate
//   - NOT_SUPPORTED: a kind is defined but not implemented by the backend
//   - CYCLIC_GRAPH: traversal or flattening met a cycle
//
// # Usage
//
//	err := errors.New(errors.ErrCodeMissingGeometry, "dataset has no points").
//	    WithObject(id, class)
//	if errors.Is(err, errors.ErrCodeMissingGeometry) {
//	    // Handle the broken branch
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidScene, origErr, "decode %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Serialization errors
	ErrCodeUnregisteredKind     Code = "UNREGISTERED_KIND"
	ErrCodeMissingGeometry      Code = "MISSING_GEOMETRY"
	ErrCodeUnsupportedComposite Code = "UNSUPPORTED_COMPOSITE"
	ErrCodeNotSupported         Code = "NOT_SUPPORTED"
	ErrCodeCyclicGraph          Code = "CYCLIC_GRAPH"
	ErrCodeKindMismatch         Code = "KIND_MISMATCH"
	ErrCodeUnsupportedArray     Code = "UNSUPPORTED_ARRAY"
	ErrCodeEmptyDocument        Code = "EMPTY_DOCUMENT"

	// Input validation errors
	ErrCodeInvalidInput Code = "INVALID_INPUT"
	ErrCodeInvalidScene Code = "INVALID_SCENE"
	ErrCodeInvalidKey   Code = "INVALID_KEY"

	// Resource errors
	ErrCodeNotFound Code = "NOT_FOUND"
	ErrCodeNetwork  Code = "NETWORK_ERROR"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Error is a structured error with a code and optional cause.
// Ref and Class identify the scene object the error is about, when known.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
	Ref     string // Reference id of the offending object (optional)
	Class   string // Class name of the offending object (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Message
	if e.Class != "" || e.Ref != "" {
		msg = fmt.Sprintf("%s (%s #%s)", msg, e.Class, e.Ref)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, msg, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, msg)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// WithObject records the reference id and class of the offending object.
// It returns e for chaining.
func (e *Error) WithObject(ref, class string) *Error {
	e.Ref = ref
	e.Class = class
	return e
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
		if e.Class != "" {
			return fmt.Sprintf("%s (%s)", e.Message, e.Class)
		}
		return e.Message
	}
	return err.Error()
}
