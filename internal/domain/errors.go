package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a request fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidTargetDay is returned when a target day is not a positive integer.
	ErrInvalidTargetDay = errors.New("target day must be at least 1")

	// ErrInvalidWordsPerDay is returned when a words-per-day value is not one of
	// the supported options.
	ErrInvalidWordsPerDay = errors.New("unsupported words per day")

	// ErrInvalidMode is returned when an extraction mode is unknown.
	ErrInvalidMode = errors.New("invalid extraction mode")

	// ErrMessageTooLong is returned when the free-text message exceeds the
	// configured character limit.
	ErrMessageTooLong = errors.New("message too long")
)

// ValidationError provides detailed information about a validation failure.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return e.Field + " " + e.Message
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NewValidationError creates a ValidationError for the given field.
func NewValidationError(field, message string, err error) *ValidationError {
	return &ValidationError{Field: field, Message: message, Err: err}
}
