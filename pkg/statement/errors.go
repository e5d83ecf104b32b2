package statement

import "errors"

// Predefined errors for the statement package.
var (
	// ErrUnexpectedOption is returned at construction when an option key is
	// not declared by the statement.
	ErrUnexpectedOption = errors.New("unexpected statement option")

	// ErrMissingOption is returned at construction when a required option
	// is absent.
	ErrMissingOption = errors.New("missing statement option")

	// ErrInvalidOption is returned at construction when an option value is
	// outside its allowed set or of the wrong type.
	ErrInvalidOption = errors.New("invalid statement option")

	// ErrNegativeBoundary is returned when an occurrence boundary is
	// negative.
	ErrNegativeBoundary = errors.New("occurrence boundaries must not be negative")

	// ErrUnknownStatement is returned when no statement is registered under
	// the requested type name.
	ErrUnknownStatement = errors.New("unknown statement type")

	// ErrAlreadyRegistered is returned when registering a duplicate
	// statement type name.
	ErrAlreadyRegistered = errors.New("statement type already registered")

	// ErrProfileUnsupported is returned when a statement kind cannot infer
	// a configuration from sample data.
	ErrProfileUnsupported = errors.New("statement does not support profiling")

	// ErrUselessProfile is returned when a profile would be vacuously
	// useless for the given sample.
	ErrUselessProfile = errors.New("statement is useless for this sample")

	// ErrMalformedReport is returned by Result when the report lacks the
	// metrics the statement expects.
	ErrMalformedReport = errors.New("malformed statement report")

	// ErrEmptyScope is returned by Report when a statement that measures
	// row or value shares is evaluated against a zero-row scope.
	ErrEmptyScope = errors.New("statement scope has no rows")
)
