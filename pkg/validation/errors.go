package validation

import "errors"

// Predefined errors for the validation package.
var (
	// ErrValidationFailed is returned by Result.Err when a statement at or
	// above the exception level failed.
	ErrValidationFailed = errors.New("validation failed")

	// ErrEmptyDocument is returned when a document has no items.
	ErrEmptyDocument = errors.New("validation document has no items")

	// ErrInvalidSeverity is returned when a statement declares a
	// non-integer or negative severity.
	ErrInvalidSeverity = errors.New("invalid statement severity")
)
