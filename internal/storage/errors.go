package storage

import "errors"

// Common storage errors
var (
	// ErrEntityNotFound indicates that the entity does not exist in the local store
	ErrEntityNotFound = errors.New("entity not found")

	// ErrCredentialNotFound indicates that no cached credential exists
	ErrCredentialNotFound = errors.New("credential not found")

	// ErrConflictNotFound indicates that the conflict record does not exist
	ErrConflictNotFound = errors.New("conflict not found")

	// ErrStorageClosed indicates that storage is closed
	ErrStorageClosed = errors.New("storage is closed")
)
