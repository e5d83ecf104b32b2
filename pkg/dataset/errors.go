package dataset

import "errors"

// Predefined errors for the dataset package.
var (
	// ErrNoColumns is returned when constructing a dataset without columns.
	ErrNoColumns = errors.New("dataset must have at least one column")

	// ErrDuplicateColumn is returned when two columns share a name.
	ErrDuplicateColumn = errors.New("duplicate column name")

	// ErrRaggedColumns is returned when column lengths disagree.
	ErrRaggedColumns = errors.New("columns must have equal length")

	// ErrColumnNotFound is returned when a named column does not exist.
	ErrColumnNotFound = errors.New("column not found")
)
