// Package errors provides structured error types for asciigraph.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the library, CLI and HTTP server
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// The chart engine reports a closed set of codes (NO_DATA, WIDTH_TOO_SMALL,
// HEIGHT_TOO_SMALL, INVERTED_CUSTOM_RANGE, COLUMN_TOO_WIDE,
// UNSUPPORTED_GRAPH_TYPE). The remaining codes belong to dataset import and
// the outer surfaces.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeNoData, "dataset is empty")
//	if errors.Is(err, errors.ErrCodeNoData) {
//	    // Handle empty input
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidInput, origErr, "read %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Chart engine error codes.
const (
	ErrCodeNoData               Code = "NO_DATA"
	ErrCodeWidthTooSmall        Code = "WIDTH_TOO_SMALL"
	ErrCodeHeightTooSmall       Code = "HEIGHT_TOO_SMALL"
	ErrCodeInvertedCustomRange  Code = "INVERTED_CUSTOM_RANGE"
	ErrCodeColumnTooWide        Code = "COLUMN_TOO_WIDE"
	ErrCodeUnsupportedGraphType Code = "UNSUPPORTED_GRAPH_TYPE"
)

// Input and infrastructure error codes.
const (
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidLabel  Code = "INVALID_LABEL"
	ErrCodeInvalidValue  Code = "INVALID_VALUE"
	ErrCodeFileNotFound  Code = "FILE_NOT_FOUND"
	ErrCodeInternal      Code = "INTERNAL_ERROR"
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

// IsChartError reports whether err carries one of the chart engine codes.
func IsChartError(err error) bool {
	switch GetCode(err) {
	case ErrCodeNoData, ErrCodeWidthTooSmall, ErrCodeHeightTooSmall,
		ErrCodeInvertedCustomRange, ErrCodeColumnTooWide, ErrCodeUnsupportedGraphType:
		return true
	}
	return false
}
