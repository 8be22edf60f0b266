package repositories

import (
	"context"
	"errors"
	"fmt"
)

// Common repository errors
var (
	// ErrNotFound is returned when an entity is not found
	ErrNotFound = errors.New("entity not found")

	// ErrInvalidKey is returned when a key component is missing or malformed
	ErrInvalidKey = errors.New("invalid key")

	// ErrValidation is returned when entity validation fails
	ErrValidation = errors.New("validation error")

	// ErrConnection is returned when the store cannot be reached
	ErrConnection = errors.New("store connection error")

	// ErrThrottled is returned when the store rejects a request for capacity reasons
	ErrThrottled = errors.New("request throttled")

	// ErrTimeout is returned when an operation times out
	ErrTimeout = errors.New("operation timeout")

	// ErrPartialBatch is returned when only some items of a batch were written
	ErrPartialBatch = errors.New("partial batch write")

	// ErrUnsupported is returned when an unsupported operation is attempted
	ErrUnsupported = errors.New("unsupported operation")
)

// RepositoryError represents a repository-specific error with additional context
type RepositoryError struct {
	Op      string // Operation that failed
	Entity  string // Entity type or table
	Key     string // Entity key (if applicable)
	Err     error  // Underlying error
	Message string // Human-readable message
}

// Error implements the error interface
func (e *RepositoryError) Error() string {
	if e.Message != "" {
		return e.Message
	}

	if e.Key != "" {
		return fmt.Sprintf("%s %s operation failed for key %s: %v", e.Entity, e.Op, e.Key, e.Err)
	}

	return fmt.Sprintf("%s %s operation failed: %v", e.Entity, e.Op, e.Err)
}

// Unwrap returns the underlying error
func (e *RepositoryError) Unwrap() error {
	return e.Err
}

// NewRepositoryError creates a new repository error. Context cancellation and
// deadline errors are tagged with ErrTimeout.
func NewRepositoryError(op, entity, key string, err error) *RepositoryError {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		err = fmt.Errorf("%w: %w", ErrTimeout, err)
	}
	return &RepositoryError{
		Op:     op,
		Entity: entity,
		Key:    key,
		Err:    err,
	}
}

// NotFoundError creates a "not found" repository error
func NotFoundError(entity, key string) *RepositoryError {
	return &RepositoryError{
		Op:      "get",
		Entity:  entity,
		Key:     key,
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s with key %s not found", entity, key),
	}
}

// ValidationError creates a "validation" repository error
func ValidationError(entity, key string, err error) *RepositoryError {
	return &RepositoryError{
		Op:      "validate",
		Entity:  entity,
		Key:     key,
		Err:     fmt.Errorf("%w: %w", ErrValidation, err),
		Message: fmt.Sprintf("validation failed for %s: %v", entity, err),
	}
}

// ConnectionError creates a "connection" repository error
func ConnectionError(err error) *RepositoryError {
	return &RepositoryError{
		Op:      "connect",
		Entity:  "store",
		Err:     fmt.Errorf("%w: %w", ErrConnection, err),
		Message: fmt.Sprintf("store connection failed: %v", err),
	}
}

// BatchError reports a batch write that was only partly applied. Items
// written before the failure are not rolled back.
type BatchError struct {
	Entity      string
	Total       int
	Unprocessed int
	Err         error
}

func (e *BatchError) Error() string {
	msg := fmt.Sprintf("%s batch write incomplete: %d of %d items not written", e.Entity, e.Unprocessed, e.Total)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap exposes ErrPartialBatch and the underlying cause
func (e *BatchError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrPartialBatch}
	}
	return []error{ErrPartialBatch, e.Err}
}

// IsNotFound checks if an error is a "not found" error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidation checks if an error is a "validation" error
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsConnection checks if an error is a "connection" error
func IsConnection(err error) bool {
	return errors.Is(err, ErrConnection)
}

// IsPartialBatch checks if an error reports a partially applied batch
func IsPartialBatch(err error) bool {
	return errors.Is(err, ErrPartialBatch)
}

// IsTimeout checks if an error was caused by an expired deadline
func IsTimeout(err error) bool {
	return errors.Is(err, ErrTimeout)
}
