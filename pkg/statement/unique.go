package statement

import (
	"fmt"
	"strings"

	"github.com/datacop/datacop/pkg/dataset"
)

// Unique checks that the rows of a scope are duplicate-free. A row that is
// identical to any other row in the scope counts as non-unique, so a
// duplicate group contributes zero unique rows for all of its members.
type Unique struct {
	base
	atLeastPct float64
}

func newUnique(opts Options) (Statement, error) {
	atLeast, err := opts.floatOption("at_least_%", 100.0)
	if err != nil {
		return nil, err
	}
	return Unique{
		base:       base{name: "unique", options: opts},
		atLeastPct: atLeast,
	}, nil
}

func (s Unique) Report(ds *dataset.Dataset) (Report, error) {
	total := ds.Len()
	if total == 0 {
		return nil, ErrEmptyScope
	}
	unique := countUniqueRows(ds)

	return Report{
		"unique_rows":   unique,
		"unique_rows_%": percentage(unique, total),
	}, nil
}

func (s Unique) Result(rep Report) (bool, error) {
	pct, err := reportFloat(rep, "unique_rows_%")
	if err != nil {
		return false, err
	}
	return pct >= s.atLeastPct, nil
}

func profileUnique(ds *dataset.Dataset) (Options, error) {
	if ds.Len() == 0 {
		return nil, fmt.Errorf("%w: no rows to profile", ErrUselessProfile)
	}
	return Options{
		"type":       "unique",
		"at_least_%": percentage(countUniqueRows(ds), ds.Len()),
	}, nil
}

// countUniqueRows counts rows with no duplicate anywhere in the scope.
// Row identity covers value and dynamic type, so 1 and "1" never collide.
func countUniqueRows(ds *dataset.Dataset) int {
	counts := make(map[string]int, ds.Len())
	keys := make([]string, ds.Len())
	for i := 0; i < ds.Len(); i++ {
		key := rowKey(ds.Row(i))
		keys[i] = key
		counts[key]++
	}

	unique := 0
	for _, key := range keys {
		if counts[key] == 1 {
			unique++
		}
	}
	return unique
}

func rowKey(row []any) string {
	var b strings.Builder
	for i, v := range row {
		if i > 0 {
			b.WriteByte(0x1f)
		}
		if v == nil {
			b.WriteString("\x00null")
			continue
		}
		fmt.Fprintf(&b, "%T:%v", v, v)
	}
	return b.String()
}

func percentage(part, total int) float64 {
	return 100.0 * float64(part) / float64(total)
}
