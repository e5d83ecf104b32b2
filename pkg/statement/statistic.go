package statement

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/montanaflynn/stats"

	"github.com/datacop/datacop/pkg/dataset"
)

// Combination logic for multiple comparators.
const (
	combinationAnd = "and"
	combinationOr  = "or"
)

var allowedStatistics = []string{
	"min", "max", "mean", "std", "var", "count", "nunique", "sum", "median", "mode",
}

// StatisticInInterval computes one statistic per scoped column and checks it
// against up to six comparators combined with and/or logic. Equality checks
// use a tolerance pair (atol, rtol).
type StatisticInInterval struct {
	base
	statistic string
	andLogic  bool

	lessThan         *float64
	lessOrEqualTo    *float64
	equalTo          *float64
	notEqualTo       *float64
	greaterOrEqualTo *float64
	greaterThan      *float64

	atol float64
	rtol float64
}

func newStatisticInInterval(opts Options) (Statement, error) {
	statistic, err := opts.stringOption("statistic", "")
	if err != nil {
		return nil, err
	}
	if statistic == "" {
		return nil, fmt.Errorf("%w: %q", ErrMissingOption, "statistic")
	}
	if !contains(allowedStatistics, statistic) {
		return nil, fmt.Errorf("%w: invalid statistic %q, allowed values are %v",
			ErrInvalidOption, statistic, allowedStatistics)
	}

	logic, err := opts.stringOption("combination_logic", combinationAnd)
	if err != nil {
		return nil, err
	}
	logic = strings.ToLower(logic)
	if logic != combinationAnd && logic != combinationOr {
		return nil, fmt.Errorf("%w: invalid combination logic %q, allowed values are %q, %q",
			ErrInvalidOption, logic, combinationAnd, combinationOr)
	}

	st := StatisticInInterval{
		base:      base{name: "statistic_in_interval", options: opts},
		statistic: statistic,
		andLogic:  logic == combinationAnd,
	}

	for key, target := range map[string]**float64{
		"<":  &st.lessThan,
		"<=": &st.lessOrEqualTo,
		"==": &st.equalTo,
		"!=": &st.notEqualTo,
		">=": &st.greaterOrEqualTo,
		">":  &st.greaterThan,
	} {
		v, err := opts.optionalFloat(key)
		if err != nil {
			return nil, err
		}
		*target = v
	}

	// The != comparator has always been evaluated against the == operand;
	// without one it cannot run at all, so fail at construction instead of
	// at evaluation time.
	if st.notEqualTo != nil && st.equalTo == nil {
		return nil, fmt.Errorf("%w: %q requires %q to be set", ErrInvalidOption, "!=", "==")
	}

	if st.atol, err = opts.floatOption("atol", 0.0); err != nil {
		return nil, err
	}
	if st.rtol, err = opts.floatOption("rtol", 1e-09); err != nil {
		return nil, err
	}

	return st, nil
}

func (s StatisticInInterval) Report(ds *dataset.Dataset) (Report, error) {
	var actual []float64
	for _, col := range ds.Columns() {
		values, err := s.columnStatistic(col)
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", col.Name, err)
		}
		actual = append(actual, values...)
	}

	if len(actual) == 1 {
		return Report{"actual_value": actual[0]}, nil
	}
	return Report{"actual_value": actual}, nil
}

// columnStatistic computes the configured statistic over the column's
// non-null values. Every statistic yields one value except mode, which may
// yield several.
func (s StatisticInInterval) columnStatistic(col dataset.Column) ([]float64, error) {
	switch s.statistic {
	case "count":
		n := 0
		for _, v := range col.Values {
			if v != nil {
				n++
			}
		}
		return []float64{float64(n)}, nil
	case "nunique":
		distinct := make(map[string]struct{})
		for _, v := range col.Values {
			if v != nil {
				distinct[fmt.Sprintf("%T:%v", v, v)] = struct{}{}
			}
		}
		return []float64{float64(len(distinct))}, nil
	}

	numbers, err := numericValues(col.Values)
	if err != nil {
		return nil, err
	}

	switch s.statistic {
	case "min":
		return single(stats.Min(numbers))
	case "max":
		return single(stats.Max(numbers))
	case "mean":
		return single(stats.Mean(numbers))
	case "std":
		return single(stats.StandardDeviationSample(numbers))
	case "var":
		return single(stats.SampleVariance(numbers))
	case "sum":
		return single(stats.Sum(numbers))
	case "median":
		return single(stats.Median(numbers))
	case "mode":
		modes, err := stats.Mode(numbers)
		if err != nil {
			return nil, err
		}
		// When no value repeats, every value is a mode. stats.Mode returns
		// none in that case; the report needs them all so each gets compared.
		if len(modes) == 0 && len(numbers) > 0 {
			modes = distinctSorted(numbers)
		}
		return modes, nil
	default:
		return nil, fmt.Errorf("%w: statistic %q", ErrInvalidOption, s.statistic)
	}
}

func single(v float64, err error) ([]float64, error) {
	if err != nil {
		return nil, err
	}
	return []float64{v}, nil
}

func distinctSorted(numbers []float64) []float64 {
	seen := make(map[float64]struct{}, len(numbers))
	out := make([]float64, 0, len(numbers))
	for _, n := range numbers {
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	sort.Float64s(out)
	return out
}

func numericValues(values []any) ([]float64, error) {
	numbers := make([]float64, 0, len(values))
	for _, v := range values {
		if v == nil {
			continue
		}
		f, ok := toFloat(v)
		if !ok {
			return nil, fmt.Errorf("%w: non-numeric value %v (%T)", ErrMalformedReport, v, v)
		}
		numbers = append(numbers, f)
	}
	return numbers, nil
}

// Result evaluates every configured comparator against every measured
// value. Under "and" logic any failing comparison fails the statement
// immediately; under "or" logic any passing comparison passes it. With no
// early exit, "and" passes vacuously and "or" fails.
func (s StatisticInInterval) Result(rep Report) (bool, error) {
	actual, err := flattenActual(rep)
	if err != nil {
		return false, err
	}

	for _, value := range actual {
		if s.lessThan != nil {
			if done, verdict := s.decide(value < *s.lessThan); done {
				return verdict, nil
			}
		}
		if s.lessOrEqualTo != nil {
			if done, verdict := s.decide(value <= *s.lessOrEqualTo); done {
				return verdict, nil
			}
		}
		if s.equalTo != nil {
			if done, verdict := s.decide(s.isClose(value, *s.equalTo)); done {
				return verdict, nil
			}
		}
		if s.notEqualTo != nil {
			// Longstanding engine behavior: != is evaluated against the
			// == operand, not its own.
			if done, verdict := s.decide(!s.isClose(value, *s.equalTo)); done {
				return verdict, nil
			}
		}
		if s.greaterOrEqualTo != nil {
			if done, verdict := s.decide(value >= *s.greaterOrEqualTo); done {
				return verdict, nil
			}
		}
		if s.greaterThan != nil {
			if done, verdict := s.decide(value > *s.greaterThan); done {
				return verdict, nil
			}
		}
	}

	return s.andLogic, nil
}

// decide maps one comparison outcome to an early exit: failing a comparator
// settles "and" logic, passing one settles "or" logic.
func (s StatisticInInterval) decide(pass bool) (done, verdict bool) {
	if s.andLogic {
		if !pass {
			return true, false
		}
		return false, false
	}
	if pass {
		return true, true
	}
	return false, false
}

func (s StatisticInInterval) isClose(a, b float64) bool {
	return math.Abs(a-b) <= math.Max(s.rtol*math.Max(math.Abs(a), math.Abs(b)), s.atol)
}

func flattenActual(rep Report) ([]float64, error) {
	raw, ok := rep["actual_value"]
	if !ok {
		return nil, errMissingMetric("actual_value")
	}
	switch v := raw.(type) {
	case []float64:
		return v, nil
	case []any:
		out := make([]float64, 0, len(v))
		for _, item := range v {
			switch inner := item.(type) {
			case []any:
				for _, x := range inner {
					f, ok := toFloat(x)
					if !ok {
						return nil, errMissingMetric("actual_value")
					}
					out = append(out, f)
				}
			default:
				f, ok := toFloat(item)
				if !ok {
					return nil, errMissingMetric("actual_value")
				}
				out = append(out, f)
			}
		}
		return out, nil
	default:
		f, ok := toFloat(raw)
		if !ok {
			return nil, errMissingMetric("actual_value")
		}
		return []float64{f}, nil
	}
}

func contains(set []string, s string) bool {
	for _, item := range set {
		if item == s {
			return true
		}
	}
	return false
}
