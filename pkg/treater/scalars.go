package treater

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// IntegerTreater treats values as int64.
type IntegerTreater struct{}

func (IntegerTreater) DType() DType { return Integer }

func (IntegerTreater) ParseValue(raw any) (any, error) {
	if raw == nil {
		return nil, nil
	}
	switch v := raw.(type) {
	case int:
		return int64(v), nil
	case int8:
		return int64(v), nil
	case int16:
		return int64(v), nil
	case int32:
		return int64(v), nil
	case int64:
		return v, nil
	case uint:
		return int64(v), nil
	case uint8:
		return int64(v), nil
	case uint16:
		return int64(v), nil
	case uint32:
		return int64(v), nil
	case uint64:
		return int64(v), nil
	case float64:
		if v != math.Trunc(v) {
			return nil, fmt.Errorf("%w: %v is not an integer", ErrUnparseable, v)
		}
		return int64(v), nil
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q as integer", ErrUnparseable, v)
		}
		return n, nil
	default:
		return nil, fmt.Errorf("%w: %T as integer", ErrUnparseable, raw)
	}
}

func (IntegerTreater) Serialize(v any) any {
	if v == nil {
		return nil
	}
	return v
}

func (IntegerTreater) Key(v any) string {
	if v == nil {
		return "null"
	}
	return fmt.Sprintf("%d", v)
}

// FloatTreater treats values as float64.
type FloatTreater struct{}

func (FloatTreater) DType() DType { return Float }

func (FloatTreater) ParseValue(raw any) (any, error) {
	if raw == nil {
		return nil, nil
	}
	switch v := raw.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q as float", ErrUnparseable, v)
		}
		return f, nil
	default:
		return nil, fmt.Errorf("%w: %T as float", ErrUnparseable, raw)
	}
}

func (FloatTreater) Serialize(v any) any {
	if v == nil {
		return nil
	}
	return v
}

func (FloatTreater) Key(v any) string {
	if v == nil {
		return "null"
	}
	return strconv.FormatFloat(v.(float64), 'g', -1, 64)
}

// StringTreater treats values as strings.
type StringTreater struct{}

func (StringTreater) DType() DType { return String }

func (StringTreater) ParseValue(raw any) (any, error) {
	if raw == nil {
		return nil, nil
	}
	switch v := raw.(type) {
	case string:
		return v, nil
	default:
		return fmt.Sprint(v), nil
	}
}

func (StringTreater) Serialize(v any) any {
	if v == nil {
		return nil
	}
	return v
}

func (StringTreater) Key(v any) string {
	if v == nil {
		return "null"
	}
	return v.(string)
}

// BooleanTreater treats values as booleans. String forms accepted on parse:
// true/false, t/f, yes/no, 1/0 (case-insensitive).
type BooleanTreater struct{}

func (BooleanTreater) DType() DType { return Boolean }

func (BooleanTreater) ParseValue(raw any) (any, error) {
	if raw == nil {
		return nil, nil
	}
	switch v := raw.(type) {
	case bool:
		return v, nil
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true", "t", "yes", "1":
			return true, nil
		case "false", "f", "no", "0":
			return false, nil
		}
		return nil, fmt.Errorf("%w: %q as boolean", ErrUnparseable, v)
	case int:
		return v != 0, nil
	case int64:
		return v != 0, nil
	default:
		return nil, fmt.Errorf("%w: %T as boolean", ErrUnparseable, raw)
	}
}

func (BooleanTreater) Serialize(v any) any {
	if v == nil {
		return nil
	}
	return v
}

func (BooleanTreater) Key(v any) string {
	if v == nil {
		return "null"
	}
	return strconv.FormatBool(v.(bool))
}

// DecimalTreater treats values as arbitrary-precision decimals. Places, when
// set, rounds parsed values to that many decimal places so that declared and
// observed values compare equal at the declared precision.
type DecimalTreater struct {
	Places *int32
}

func (DecimalTreater) DType() DType { return Decimal }

func (t DecimalTreater) ParseValue(raw any) (any, error) {
	if raw == nil {
		return nil, nil
	}
	var d decimal.Decimal
	switch v := raw.(type) {
	case decimal.Decimal:
		d = v
	case string:
		parsed, err := decimal.NewFromString(strings.TrimSpace(v))
		if err != nil {
			return nil, fmt.Errorf("%w: %q as decimal", ErrUnparseable, v)
		}
		d = parsed
	case float64:
		d = decimal.NewFromFloat(v)
	case int:
		d = decimal.NewFromInt(int64(v))
	case int64:
		d = decimal.NewFromInt(v)
	default:
		return nil, fmt.Errorf("%w: %T as decimal", ErrUnparseable, raw)
	}
	if t.Places != nil {
		d = d.Round(*t.Places)
	}
	return d, nil
}

func (t DecimalTreater) Serialize(v any) any {
	if v == nil {
		return nil
	}
	return canonicalDecimal(v.(decimal.Decimal))
}

func (t DecimalTreater) Key(v any) string {
	if v == nil {
		return "null"
	}
	return canonicalDecimal(v.(decimal.Decimal))
}

// canonicalDecimal strips insignificant trailing zeros so that 10.5 and
// 10.50 share one representation regardless of declared scale.
func canonicalDecimal(d decimal.Decimal) string {
	s := d.String()
	if !strings.Contains(s, ".") {
		return s
	}
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}

// TimestampTreater treats values as time.Time, rendered and parsed with a
// configurable layout. The same implementation backs the datetime, date and
// time dtypes, differing only in default layout.
type TimestampTreater struct {
	Kind   DType
	Layout string
}

func (t TimestampTreater) dtype() DType {
	if t.Kind == "" {
		return DateTime
	}
	return t.Kind
}

func (t TimestampTreater) DType() DType { return t.dtype() }

func (t TimestampTreater) ParseValue(raw any) (any, error) {
	if raw == nil {
		return nil, nil
	}
	switch v := raw.(type) {
	case time.Time:
		return v, nil
	case string:
		ts, err := time.Parse(t.Layout, strings.TrimSpace(v))
		if err != nil {
			return nil, fmt.Errorf("%w: %q as %s (layout %q)", ErrUnparseable, v, t.dtype(), t.Layout)
		}
		return ts, nil
	default:
		return nil, fmt.Errorf("%w: %T as %s", ErrUnparseable, raw, t.dtype())
	}
}

func (t TimestampTreater) Serialize(v any) any {
	if v == nil {
		return nil
	}
	return v.(time.Time).Format(t.Layout)
}

func (t TimestampTreater) Key(v any) string {
	if v == nil {
		return "null"
	}
	return v.(time.Time).Format(time.RFC3339Nano)
}

func asInt(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case float64:
		if n == math.Trunc(n) {
			return int64(n), true
		}
	}
	return 0, false
}
