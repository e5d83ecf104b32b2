package statement

import (
	"github.com/datacop/datacop/pkg/dataset"
)

// RowCount checks that the number of rows lies within an optional [min, max]
// range. It is a table-only statement: column scoping does not change the
// row count, so it always applies to the whole table.
type RowCount struct {
	base
	min *float64
	max *float64
}

func newRowCount(opts Options) (Statement, error) {
	min, err := opts.optionalFloat("min")
	if err != nil {
		return nil, err
	}
	max, err := opts.optionalFloat("max")
	if err != nil {
		return nil, err
	}

	return RowCount{
		base: base{name: "row_count", tableOnly: true, options: opts},
		min:  min,
		max:  max,
	}, nil
}

func (s RowCount) Report(ds *dataset.Dataset) (Report, error) {
	return Report{"rows": ds.Len()}, nil
}

func (s RowCount) Result(rep Report) (bool, error) {
	rows, err := reportFloat(rep, "rows")
	if err != nil {
		return false, err
	}
	if s.min != nil && rows < *s.min {
		return false, nil
	}
	if s.max != nil && rows > *s.max {
		return false, nil
	}
	return true, nil
}

// profileRowCount pins the observed row count exactly: min = max = rows.
func profileRowCount(ds *dataset.Dataset) (Options, error) {
	return Options{
		"type": "row_count",
		"min":  ds.Len(),
		"max":  ds.Len(),
	}, nil
}
