package service

import (
	"errors"
	"fmt"
)

var (
	ErrUnauthenticated = errors.New("authentication required")
)

// ValidationError reports a missing or malformed input field. No writes
// happen once one is returned.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NotFoundError reports a referenced goal, task or user that does not exist.
type NotFoundError struct {
	Resource string
	ID       any
	Err      error
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %v not found", e.Resource, e.ID)
}

func (e *NotFoundError) Unwrap() error { return e.Err }

// StorageError wraps a persistence failure. Any transaction in flight has
// been rolled back.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("failed to %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

func invalid(field string, err error) error {
	return &ValidationError{Field: field, Message: err.Error()}
}

// storageErr wraps err as a StorageError unless it already belongs to the
// service error taxonomy.
func storageErr(op string, err error) error {
	if err == nil {
		return nil
	}

	var (
		validationErr *ValidationError
		notFoundErr   *NotFoundError
		storeErr      *StorageError
	)
	if errors.As(err, &validationErr) || errors.As(err, &notFoundErr) || errors.As(err, &storeErr) || errors.Is(err, ErrUnauthenticated) {
		return err
	}

	return &StorageError{Op: op, Err: err}
}
