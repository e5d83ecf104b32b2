package statement

import (
	"fmt"
	"regexp"

	"github.com/datacop/datacop/pkg/dataset"
)

// MatchRegex checks the share of values in a scope matching a regular
// expression. Nulls never match. All scoped columns are pooled, so the
// percentage is over values rather than rows when the scope is multi-column.
type MatchRegex struct {
	base
	pattern    *regexp.Regexp
	atLeastPct float64
}

func newMatchRegex(opts Options) (Statement, error) {
	pattern, err := opts.stringOption("pattern", "")
	if err != nil {
		return nil, err
	}
	if pattern == "" {
		return nil, fmt.Errorf("%w: %q", ErrMissingOption, "pattern")
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: pattern: %v", ErrInvalidOption, err)
	}

	atLeast, err := opts.floatOption("at_least_%", 100.0)
	if err != nil {
		return nil, err
	}

	return MatchRegex{
		base:       base{name: "match_regex", options: opts},
		pattern:    re,
		atLeastPct: atLeast,
	}, nil
}

func (s MatchRegex) Report(ds *dataset.Dataset) (Report, error) {
	if ds.Len() == 0 {
		return nil, ErrEmptyScope
	}
	matching, total := 0, 0
	for _, v := range ds.Pool() {
		total++
		if v == nil {
			continue
		}
		if s.pattern.MatchString(fmt.Sprint(v)) {
			matching++
		}
	}

	return Report{
		"matching_values":   matching,
		"matching_values_%": percentage(matching, total),
	}, nil
}

func (s MatchRegex) Result(rep Report) (bool, error) {
	pct, err := reportFloat(rep, "matching_values_%")
	if err != nil {
		return false, err
	}
	return pct >= s.atLeastPct, nil
}
