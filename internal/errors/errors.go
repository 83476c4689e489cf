package errors

import (
	"fmt"

	"cartsight/domain/core"
)

// AppError represents a structured application error carried across the
// HTTP boundary.
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// New creates a new AppError
func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	if appErr, ok := err.(*AppError); ok {
		return &AppError{
			Code:    appErr.Code,
			Message: message,
			Cause:   appErr,
		}
	}
	return &AppError{
		Code:    CodeInternalError,
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an error with formatted additional context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// GetCode returns the error code if it's an AppError, otherwise "UNKNOWN"
func GetCode(err error) string {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code
	}
	return "UNKNOWN"
}

// Predefined error codes
const (
	CodeConfigInvalid   = "CONFIG_INVALID"
	CodeDataUnavailable = "DATA_UNAVAILABLE"
	CodeSchemaError     = "SCHEMA_ERROR"
	CodeComputation     = "COMPUTATION_ERROR"
	CodeNotFound        = "NOT_FOUND"
	CodeInvalidInput    = "INVALID_INPUT"
	CodeInternalError   = "INTERNAL_ERROR"
)

// Common error constructors
func ConfigInvalid(message string) *AppError {
	return New(CodeConfigInvalid, message)
}

func NotFound(resource string) *AppError {
	return New(CodeNotFound, fmt.Sprintf("%s not found", resource))
}

func InvalidInput(message string) *AppError {
	return New(CodeInvalidInput, message)
}

// FromDomain maps a domain error onto the boundary taxonomy so handlers can
// pick a status code without inspecting sentinel chains themselves.
func FromDomain(err error) *AppError {
	if err == nil {
		return nil
	}
	switch {
	case core.IsDataUnavailable(err):
		return &AppError{Code: CodeDataUnavailable, Message: "no analysis dataset available", Cause: err}
	case core.IsSchemaError(err):
		return &AppError{Code: CodeSchemaError, Message: "dataset schema mismatch", Cause: err}
	case core.IsComputationError(err):
		return &AppError{Code: CodeComputation, Message: "metric computation failed", Cause: err}
	default:
		return &AppError{Code: CodeInternalError, Message: "internal error", Cause: err}
	}
}
