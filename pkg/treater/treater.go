package treater

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// DType names the supported data types. The names double as the `dtype`
// value accepted by FromOptions.
type DType string

const (
	Integer  DType = "integer"
	Float    DType = "float"
	String   DType = "string"
	Boolean  DType = "boolean"
	Decimal  DType = "decimal"
	DateTime DType = "datetime"
	Date     DType = "date"
	Time     DType = "time"
)

// Treater converts raw configuration scalars into a native value type and
// serializes native values back into a canonical, JSON-safe representation.
type Treater interface {
	// DType returns the treater's type name.
	DType() DType

	// ParseValue converts one raw scalar into the native type.
	// A nil input stays nil.
	ParseValue(raw any) (any, error)

	// Serialize converts one native value into its canonical, sortable,
	// JSON-safe form. A nil input stays nil.
	Serialize(v any) any

	// Key returns the canonical map key for a native value, used for
	// frequency counting and boundary lookup. Values that compare equal
	// under the treater's semantics share a key.
	Key(v any) string
}

// Parse converts a slice of raw scalars with the given treater, preserving
// order and nulls.
func Parse(t Treater, raw []any) ([]any, error) {
	out := make([]any, len(raw))
	for i, r := range raw {
		v, err := t.ParseValue(r)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// SerializeAll serializes a slice of native values with the given treater.
func SerializeAll(t Treater, values []any) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = t.Serialize(v)
	}
	return out
}

// FromDType returns a default-configured treater for the given dtype name.
func FromDType(dtype DType) (Treater, error) {
	switch dtype {
	case Integer:
		return IntegerTreater{}, nil
	case Float:
		return FloatTreater{}, nil
	case String:
		return StringTreater{}, nil
	case Boolean:
		return BooleanTreater{}, nil
	case Decimal:
		return DecimalTreater{}, nil
	case DateTime:
		return TimestampTreater{Kind: DateTime, Layout: "2006-01-02 15:04:05"}, nil
	case Date:
		return TimestampTreater{Kind: Date, Layout: "2006-01-02"}, nil
	case Time:
		return TimestampTreater{Kind: Time, Layout: "15:04:05"}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDType, dtype)
	}
}

// FromOptions builds a treater from an option map of the form
// {"dtype": "...", ...}. Extra options refine the treater: "format" for the
// timestamp treaters, "decimal_places" for the decimal treater.
func FromOptions(options map[string]any) (Treater, error) {
	raw, ok := options["dtype"]
	if !ok {
		return nil, ErrMissingDType
	}
	name, ok := raw.(string)
	if !ok {
		return nil, fmt.Errorf("%w: dtype must be a string, got %T", ErrUnknownDType, raw)
	}

	t, err := FromDType(DType(name))
	if err != nil {
		return nil, err
	}

	switch tt := t.(type) {
	case TimestampTreater:
		if layout, ok := options["format"].(string); ok && layout != "" {
			tt.Layout = layout
		}
		return tt, nil
	case DecimalTreater:
		if places, ok := asInt(options["decimal_places"]); ok {
			p := int32(places)
			tt.Places = &p
		}
		return tt, nil
	default:
		return t, nil
	}
}

// Infer returns the treater matching the shared native type of the sample
// values. Nulls are ignored; a sample whose non-null values span more than
// one dtype fails with ErrMixedTypes.
func Infer(values []any) (Treater, error) {
	var inferred Treater
	for _, v := range values {
		if v == nil {
			continue
		}
		t, err := forValue(v)
		if err != nil {
			return nil, err
		}
		if inferred == nil {
			inferred = t
			continue
		}
		if inferred.DType() != t.DType() {
			return nil, fmt.Errorf("%w: %s and %s", ErrMixedTypes, inferred.DType(), t.DType())
		}
	}
	if inferred == nil {
		return nil, ErrNoValues
	}
	return inferred, nil
}

func forValue(v any) (Treater, error) {
	switch v.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return IntegerTreater{}, nil
	case float32, float64:
		return FloatTreater{}, nil
	case string:
		return StringTreater{}, nil
	case bool:
		return BooleanTreater{}, nil
	case decimal.Decimal:
		return DecimalTreater{}, nil
	case time.Time:
		return TimestampTreater{Kind: DateTime, Layout: "2006-01-02 15:04:05"}, nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrMixedTypes, v)
	}
}
