package model

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when no record matches the requested id.
	ErrNotFound = errors.New("record not found")
	// ErrAlreadyExists is returned when a record with the same id is already stored.
	ErrAlreadyExists = errors.New("record already exists")
	// ErrInvalidSortKey is returned for sort keys outside the supported set.
	ErrInvalidSortKey = errors.New("invalid sort key")

	ErrInvalidNonce     = errors.New("invalid nonce provided")
	ErrInvalidCipher    = errors.New("invalid cipher provided")
	ErrPageSizeExceeded = errors.New("max pagination size exceeded")
)

// ValidationError reports client supplied input that was rejected before
// reaching storage.
type ValidationError struct {
	Field string
	Err   error
}

func NewValidationError(field string, err error) *ValidationError {
	return &ValidationError{Field: field, Err: err}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %s: %v", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// StorageError wraps connectivity and constraint faults of the backing store.
type StorageError struct {
	Op  string
	Err error
}

func NewStorageError(op string, err error) *StorageError {
	return &StorageError{Op: op, Err: err}
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: failed to %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
