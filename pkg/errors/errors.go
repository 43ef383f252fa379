// Package errors provides structured error types for shaderxfer.
//
// Every failure that reaches the CLI carries a machine-readable [Code] so
// callers can tell a missing material from a registry mismatch or an I/O
// failure without parsing messages.
//
// # Error Codes
//
//   - INVALID_*: bad user input or a malformed container
//   - MATERIAL_NOT_FOUND: the named material is absent from its container
//   - UNKNOWN_NODE_TYPE, SOCKET_NAME_MISMATCH, DANGLING_ENDPOINT: the source
//     graph does not fit the registry of the target environment
//   - PERSIST_ERROR: writing the target container failed
//
// # Usage
//
//	err := errors.New(errors.ErrCodeMaterialNotFound, "material %q not found", name)
//	if errors.Is(err, errors.ErrCodeMaterialNotFound) {
//	    // Handle missing material
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodePersist, origErr, "write %s", path)
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
	ErrCodeInvalidPath      Code = "INVALID_PATH"
	ErrCodeInvalidName      Code = "INVALID_NAME"
	ErrCodeInvalidContainer Code = "INVALID_CONTAINER"
	ErrCodeNameCollision    Code = "NAME_COLLISION"

	// Resource not found errors
	ErrCodeMaterialNotFound Code = "MATERIAL_NOT_FOUND"
	ErrCodeFileNotFound     Code = "FILE_NOT_FOUND"
	ErrCodeSnapshotNotFound Code = "SNAPSHOT_NOT_FOUND"

	// Graph transfer errors
	ErrCodeUnknownNodeType    Code = "UNKNOWN_NODE_TYPE"
	ErrCodeSocketNameMismatch Code = "SOCKET_NAME_MISMATCH"
	ErrCodeDanglingEndpoint   Code = "DANGLING_ENDPOINT"

	// Storage errors
	ErrCodePersist Code = "PERSIST_ERROR"

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

// GetCodeOr returns the error code of err, or fallback when err carries none.
func GetCodeOr(err error, fallback Code) Code {
	if code := GetCode(err); code != "" {
		return code
	}
	return fallback
}
