package errors

import "fmt"

// Error codes
const (
	ErrCodeValidation      = "VALIDATION_ERROR"
	ErrCodeInternal        = "INTERNAL_ERROR"
	ErrCodeBadRequest      = "BAD_REQUEST"
	ErrCodeInvalidFormat   = "INVALID_FORMAT"
	ErrCodePayloadTooLarge = "PAYLOAD_TOO_LARGE"
)

// AppError represents an application error with HTTP status code and error code
type AppError struct {
	Code    string // Error code (e.g., "INVALID_FORMAT", "VALIDATION_ERROR")
	Message string // Human-readable error message
	Status  int    // HTTP status code
	Err     error  // Wrapped underlying error (optional)
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for error wrapping support
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewValidationError creates a new VALIDATION_ERROR
func NewValidationError(field string, reason string) *AppError {
	return &AppError{
		Code:    ErrCodeValidation,
		Message: fmt.Sprintf("validation failed for %s: %s", field, reason),
		Status:  400,
	}
}

// NewInternalError creates a new INTERNAL_ERROR
func NewInternalError(err error) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: "internal server error",
		Status:  500,
		Err:     err,
	}
}

// NewBadRequestError creates a new BAD_REQUEST error
func NewBadRequestError(message string) *AppError {
	return &AppError{
		Code:    ErrCodeBadRequest,
		Message: message,
		Status:  400,
	}
}

// NewInvalidFormatError creates a new INVALID_FORMAT error. Input that fails a
// format check is rejected outright and must not be retried.
func NewInvalidFormatError(message string, err error) *AppError {
	return &AppError{
		Code:    ErrCodeInvalidFormat,
		Message: message,
		Status:  400,
		Err:     err,
	}
}

// NewPayloadTooLargeError creates a new PAYLOAD_TOO_LARGE error
func NewPayloadTooLargeError(limit int64) *AppError {
	return &AppError{
		Code:    ErrCodePayloadTooLarge,
		Message: fmt.Sprintf("request body exceeds %d bytes", limit),
		Status:  413,
	}
}

// As returns err as an *AppError if it is one, wrapping anything else as an
// internal error.
func As(err error) *AppError {
	if appErr, ok := err.(*AppError); ok {
		return appErr
	}
	return NewInternalError(err)
}
