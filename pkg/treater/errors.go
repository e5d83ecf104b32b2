package treater

import "errors"

// Predefined errors for the treater package.
var (
	// ErrUnknownDType is returned when no treater exists for a dtype name.
	ErrUnknownDType = errors.New("unknown dtype")

	// ErrMissingDType is returned when a treater option set lacks a dtype.
	ErrMissingDType = errors.New("treater options must declare a dtype")

	// ErrUnparseable is returned when a raw scalar cannot be converted to
	// the treater's native type.
	ErrUnparseable = errors.New("value cannot be parsed")

	// ErrMixedTypes is returned by Infer when sample values do not share a
	// single inferable scalar type.
	ErrMixedTypes = errors.New("can't handle mixed types")

	// ErrNoValues is returned by Infer when the sample holds no non-null
	// values to infer from.
	ErrNoValues = errors.New("no values to infer a dtype from")
)
