package errors

import (
	stderrors "errors"
	"fmt"
	"runtime"
)

// AppError represents an application-specific error
type AppError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Cause     error  `json:"-"`
	File      string `json:"file,omitempty"`
	Line      int    `json:"line,omitempty"`
	Operation string `json:"operation,omitempty"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// newAppError records the location of the caller of the exported constructor
func newAppError(code, message string, cause error) *AppError {
	_, file, line, _ := runtime.Caller(2)
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
		File:    file,
		Line:    line,
	}
}

// WithOperation adds operation context to the error
func (e *AppError) WithOperation(operation string) *AppError {
	e.Operation = operation
	return e
}

// Common error codes
const (
	ErrCodeNotFound      = "NOT_FOUND"
	ErrCodeInvalidInput  = "INVALID_INPUT"
	ErrCodeUpstreamError = "UPSTREAM_ERROR"
	ErrCodeInternalError = "INTERNAL_ERROR"
)

// Common error constructors
func NotFound(message string, cause error) *AppError {
	return newAppError(ErrCodeNotFound, message, cause)
}

func InvalidInput(message string, cause error) *AppError {
	return newAppError(ErrCodeInvalidInput, message, cause)
}

func UpstreamError(message string, cause error) *AppError {
	return newAppError(ErrCodeUpstreamError, message, cause)
}

func InternalError(message string, cause error) *AppError {
	return newAppError(ErrCodeInternalError, message, cause)
}

// CodeOf returns the code of the first AppError in err's chain, or INTERNAL_ERROR
func CodeOf(err error) string {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code
	}
	return ErrCodeInternalError
}

// Is reports whether err carries an AppError with the given code
func Is(err error, code string) bool {
	var appErr *AppError
	return stderrors.As(err, &appErr) && appErr.Code == code
}
