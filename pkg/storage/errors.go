package storage

import "errors"

// Predefined errors for the storage package.
var (
	// ErrInvalidConfig is returned when a backend is constructed with
	// missing or contradictory settings.
	ErrInvalidConfig = errors.New("invalid storage configuration")

	// ErrInvalidPath is returned when a document path is empty or escapes
	// the configured base directory.
	ErrInvalidPath = errors.New("invalid document path")

	// ErrNotFound is returned when a requested document does not exist.
	ErrNotFound = errors.New("document not found")

	// ErrReadFailed is returned when a document cannot be read.
	ErrReadFailed = errors.New("failed to read document")

	// ErrWriteFailed is returned when a document cannot be written.
	ErrWriteFailed = errors.New("failed to write document")

	// ErrListFailed is returned when documents cannot be listed.
	ErrListFailed = errors.New("failed to list documents")
)
