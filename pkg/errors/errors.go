package errors

import (
	"errors"
	"fmt"
)

// Standard error codes shared across the system. Adapters and services
// define additional codes in their own packages (see pkg/messaging/errors.go)
// but should reuse these where the failure is one of these generic shapes.
const (
	CodeInvalidArgument = "INVALID_ARGUMENT"
	CodeNotFound        = "NOT_FOUND"
	CodeAlreadyExists   = "ALREADY_EXISTS"
	CodeUnavailable     = "UNAVAILABLE"
	CodeTimeout         = "TIMEOUT"
	CodeInternal        = "INTERNAL"
	CodeUnauthenticated = "UNAUTHENTICATED"
	CodePermissionDenied = "PERMISSION_DENIED"
	CodeConflict        = "CONFLICT"
)

// AppError is the structured error type used throughout the system. It
// carries a stable Code that callers can switch on, a human-readable
// Message, and an optional wrapped Err for root-cause chaining.
type AppError struct {
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates an AppError with the given code, message, and optional cause.
func New(code string, message string, cause error) *AppError {
	return &AppError{Code: code, Message: message, Err: cause}
}

// Wrap annotates an existing error with a message, preserving its code if
// it is already an AppError, otherwise tagging it CodeInternal.
func Wrap(err error, message string) *AppError {
	if err == nil {
		return nil
	}
	var ae *AppError
	if errors.As(err, &ae) {
		return &AppError{Code: ae.Code, Message: message, Err: err}
	}
	return &AppError{Code: CodeInternal, Message: message, Err: err}
}

// Internal creates a CodeInternal error.
func Internal(message string, cause error) *AppError {
	return New(CodeInternal, message, cause)
}

// NotFound creates a CodeNotFound error.
func NotFound(message string, cause error) *AppError {
	return New(CodeNotFound, message, cause)
}

// InvalidArgument creates a CodeInvalidArgument error.
func InvalidArgument(message string, cause error) *AppError {
	return New(CodeInvalidArgument, message, cause)
}

// Unavailable creates a CodeUnavailable error, used for transient
// dependency failures (broker down, database unreachable).
func Unavailable(message string, cause error) *AppError {
	return New(CodeUnavailable, message, cause)
}

// Conflict creates a CodeConflict error, used when an operation clashes
// with the current state (already exists, wrong lifecycle state).
func Conflict(message string, cause error) *AppError {
	return New(CodeConflict, message, cause)
}

// Forbidden creates a CodePermissionDenied error.
func Forbidden(message string, cause error) *AppError {
	return New(CodePermissionDenied, message, cause)
}

// Is reports whether err is an AppError with the given code.
func Is(err error, code string) bool {
	var ae *AppError
	if !errors.As(err, &ae) {
		return false
	}
	return ae.Code == code
}

// Code extracts the AppError code from err, or "" if err is not an AppError.
func Code(err error) string {
	var ae *AppError
	if !errors.As(err, &ae) {
		return ""
	}
	return ae.Code
}
