package history

import "errors"

// Predefined errors for the history package.
var (
	// ErrNoReader is returned when a series reference is rendered without
	// a configured log reader.
	ErrNoReader = errors.New("series reference requires a history reader")

	// ErrEmptySeries is returned when a series reference with an aggregate
	// filter resolves to no recorded values.
	ErrEmptySeries = errors.New("series has no recorded values")

	// ErrUnknownFilter is returned for an unsupported series filter.
	ErrUnknownFilter = errors.New("unknown series filter")

	// ErrDecodeRecord is returned when a stored log document cannot be
	// decoded.
	ErrDecodeRecord = errors.New("failed to decode history record")
)
