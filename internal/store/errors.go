package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all dataset source implementations.
var (
	// ErrSourceUnavailable is returned when a dataset source cannot be reached
	// or read (missing file, failed authentication, unreachable database).
	ErrSourceUnavailable = errors.New("dataset source unavailable")

	// ErrInvalidDataset is returned when a source responds but its content
	// cannot be interpreted as a word table, e.g. it has no header row.
	ErrInvalidDataset = errors.New("invalid dataset")

	// ErrNotImplemented is returned when a source does not support an operation.
	ErrNotImplemented = errors.New("method not implemented")

	// ErrTransactionFailed is returned when a database transaction fails
	// to commit or when an operation within a transaction fails.
	ErrTransactionFailed = errors.New("transaction failed")
)

// StoreError is a custom error type for store-specific errors with additional context.
type StoreError struct {
	Source    string // The source kind (e.g., "csv", "sheets", "sql")
	Operation string // The operation that failed (e.g., "load", "replace")
	Message   string // Error message
	Err       error  // Original error
}

// Error implements the error interface for StoreError.
func (e *StoreError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %s failed: %s: %v", e.Source, e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s %s failed: %s", e.Source, e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError creates a new StoreError with the given source, operation, message, and wrapped error.
func NewStoreError(source, operation, message string, err error) *StoreError {
	return &StoreError{
		Source:    source,
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

// Unavailable wraps err as an ErrSourceUnavailable StoreError.
func Unavailable(source, operation string, err error) error {
	return NewStoreError(source, operation, ErrSourceUnavailable.Error(), errors.Join(ErrSourceUnavailable, err))
}
