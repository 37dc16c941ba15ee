package service

import (
	"errors"
	"fmt"
)

// Common service errors - sentinel errors used across service implementations.
// Callers check for them with errors.Is().
var (
	// ErrRenderFailed indicates a preview or PDF document could not be produced.
	// API layer should map this to HTTP 500 Internal Server Error.
	ErrRenderFailed = errors.New("document rendering failed")
)

// Warnings attached to an exam view.
const (
	// WarningDatasetUnavailable is set when the dataset could not be loaded and
	// the exam was generated from an empty dataset.
	WarningDatasetUnavailable = "dataset unavailable"

	// WarningNoWords is set when no resolved day contributed any word.
	WarningNoWords = "no words found"
)

// ExamServiceError is a custom error type for exam service errors.
type ExamServiceError struct {
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for ExamServiceError.
func (e *ExamServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("exam service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("exam service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ExamServiceError) Unwrap() error {
	return e.Err
}

// NewExamServiceError creates a new ExamServiceError.
func NewExamServiceError(operation, message string, err error) *ExamServiceError {
	return &ExamServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
