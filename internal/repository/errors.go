package repository

import "errors"

var (
	// ErrNotFound indicates the referenced entity does not exist or is
	// outside the caller's tenant scope.
	ErrNotFound = errors.New("not found")

	// ErrConcurrentModification indicates an optimistic-concurrency
	// conditional write lost to a concurrent writer. Retryable: re-read and
	// recompute.
	ErrConcurrentModification = errors.New("concurrent modification")
)
