package treater

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// Sort orders native values in place using the treater's natural ordering.
// Nulls sort first. Used when serializing inferred value sets so profiles
// are stable across runs.
func Sort(t Treater, values []any) {
	sort.SliceStable(values, func(i, j int) bool {
		return less(t, values[i], values[j])
	})
}

func less(t Treater, a, b any) bool {
	if a == nil {
		return b != nil
	}
	if b == nil {
		return false
	}
	switch t.DType() {
	case Integer:
		return a.(int64) < b.(int64)
	case Float:
		return a.(float64) < b.(float64)
	case Boolean:
		return !a.(bool) && b.(bool)
	case Decimal:
		return a.(decimal.Decimal).Cmp(b.(decimal.Decimal)) < 0
	case DateTime, Date, Time:
		return a.(time.Time).Before(b.(time.Time))
	default:
		return t.Key(a) < t.Key(b)
	}
}
