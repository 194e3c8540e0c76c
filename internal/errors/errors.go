package errors

import (
	"errors"
	"fmt"
)

// ErrorType classifies application errors for logging and HTTP mapping.
type ErrorType string

const (
	ErrTypeLoader     ErrorType = "LOADER"
	ErrTypeValidation ErrorType = "VALIDATION"
	ErrTypeExport     ErrorType = "EXPORT"
	ErrTypeConfig     ErrorType = "CONFIG"
)

// AppError is an application error with a classification and optional cause.
type AppError struct {
	Type    ErrorType
	Message string
	Cause   error
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap allows errors.Is and errors.As to work with AppError
func (e *AppError) Unwrap() error {
	return e.Cause
}

// NewAppError creates a new application error
func NewAppError(errType ErrorType, message string, cause error) *AppError {
	return &AppError{Type: errType, Message: message, Cause: cause}
}

// NewLoaderError wraps a file loading failure. The core never sees these;
// they surface to the caller before cleaning starts.
func NewLoaderError(message string, cause error) *AppError {
	return NewAppError(ErrTypeLoader, message, cause)
}

// NewValidationError creates a request validation error
func NewValidationError(message string, cause error) *AppError {
	return NewAppError(ErrTypeValidation, message, cause)
}

// NewExportError creates a CSV export error
func NewExportError(message string, cause error) *AppError {
	return NewAppError(ErrTypeExport, message, cause)
}

// NewConfigError creates a configuration error
func NewConfigError(message string, cause error) *AppError {
	return NewAppError(ErrTypeConfig, message, cause)
}

// IsType reports whether err is an AppError of the given type.
func IsType(err error, t ErrorType) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type == t
	}
	return false
}
