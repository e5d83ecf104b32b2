package statement

import (
	"fmt"

	"github.com/datacop/datacop/pkg/dataset"
)

// Multi-column combination logic for not_null. The naming is deliberately
// preserved from the original engine: "any" counts a row as not-null when at
// least one column is non-null (a row is null only if every column is null),
// while "all" requires every column to be non-null.
const (
	logicAny = "any"
	logicAll = "all"
)

// NotNull checks the share of not-null rows in a scope against percentage
// bounds.
type NotNull struct {
	base
	atLeastPct float64
	atMostPct  float64
	logic      string
}

func newNotNull(opts Options) (Statement, error) {
	atLeast, err := opts.floatOption("at_least_%", 100.0)
	if err != nil {
		return nil, err
	}
	atMost, err := opts.floatOption("at_most_%", 100.0)
	if err != nil {
		return nil, err
	}
	logic, err := opts.stringOption("multicolumn_logic", logicAny)
	if err != nil {
		return nil, err
	}
	if logic != logicAny && logic != logicAll {
		return nil, fmt.Errorf("%w: multicolumn_logic must be %q or %q, got %q",
			ErrInvalidOption, logicAny, logicAll, logic)
	}

	return NotNull{
		base:       base{name: "not_null", options: opts},
		atLeastPct: atLeast,
		atMostPct:  atMost,
		logic:      logic,
	}, nil
}

func (s NotNull) Report(ds *dataset.Dataset) (Report, error) {
	total := ds.Len()
	if total == 0 {
		return nil, ErrEmptyScope
	}
	notNull := countNotNullRows(ds, s.logic)

	return Report{
		"null_rows":       total - notNull,
		"null_rows_%":     percentage(total-notNull, total),
		"not_null_rows":   notNull,
		"not_null_rows_%": percentage(notNull, total),
	}, nil
}

func (s NotNull) Result(rep Report) (bool, error) {
	pct, err := reportFloat(rep, "not_null_rows_%")
	if err != nil {
		return false, err
	}
	if pct < s.atLeastPct {
		return false, nil
	}
	if pct > s.atMostPct {
		return false, nil
	}
	return true, nil
}

// profileNotNull infers bounds from the sample using the default "any"
// logic. A fully null sample is refused: the statement it would generate is
// vacuously useless. When the sample is fully not-null the threshold is
// omitted because the default of 100.0 already states it.
func profileNotNull(ds *dataset.Dataset) (Options, error) {
	if ds.Len() == 0 {
		return nil, fmt.Errorf("%w: no rows to profile", ErrUselessProfile)
	}
	atLeast := percentage(countNotNullRows(ds, logicAny), ds.Len())

	if atLeast == 0.0 {
		return nil, fmt.Errorf("%w: all rows are null", ErrUselessProfile)
	}

	opts := Options{"type": "not_null"}
	if atLeast != 100.0 {
		opts["at_least_%"] = atLeast
	}
	return opts, nil
}

func countNotNullRows(ds *dataset.Dataset, logic string) int {
	notNull := 0
	for i := 0; i < ds.Len(); i++ {
		row := ds.Row(i)
		if logic == logicAll {
			if !rowHasNull(row) {
				notNull++
			}
		} else {
			if !rowAllNull(row) {
				notNull++
			}
		}
	}
	return notNull
}

func rowHasNull(row []any) bool {
	for _, v := range row {
		if v == nil {
			return true
		}
	}
	return false
}

func rowAllNull(row []any) bool {
	for _, v := range row {
		if v != nil {
			return false
		}
	}
	return true
}
