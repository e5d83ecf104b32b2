package statement

import (
	"fmt"
	"math"

	"github.com/datacop/datacop/pkg/dataset"
	"github.com/datacop/datacop/pkg/treater"
)

// Membership rules for contain.
const (
	ruleAll        = "all"         // every expected value must appear; extras tolerated
	ruleOnly       = "only"        // every observed value must be expected; absences tolerated
	ruleAllAndOnly = "all_and_only" // observed and expected sets must coincide
)

// boundary is the resolved (min, max) occurrence pair for one expected
// value.
type boundary struct {
	min float64
	max float64
}

// Contain verifies that a scope's pooled values satisfy a presence/absence
// rule, with optional per-value occurrence boundaries. All columns in the
// scope are concatenated into a single bag of values before counting.
type Contain struct {
	base
	rule    string
	tr      treater.Treater
	values  []any
	verbose bool

	// boundaries maps each expected value's canonical key to its resolved
	// occurrence interval; scopeFilter holds the keys that participate in
	// the rule check (a value whose max is exactly 0 is forbidden, not
	// required, so it is excluded from the presence requirement).
	boundaries  map[string]boundary
	scopeFilter map[string]struct{}
}

func newContain(opts Options) (Statement, error) {
	rule, err := opts.stringOption("rule", "")
	if err != nil {
		return nil, err
	}
	switch rule {
	case ruleAll, ruleOnly, ruleAllAndOnly:
	case "":
		return nil, fmt.Errorf("%w: %q", ErrMissingOption, "rule")
	default:
		return nil, fmt.Errorf("%w: rule must be %q, %q or %q, got %q",
			ErrInvalidOption, ruleAll, ruleOnly, ruleAllAndOnly, rule)
	}

	parserOpts, ok, err := opts.mapOption("parser")
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrMissingOption, "parser")
	}
	tr, err := treater.FromOptions(parserOpts)
	if err != nil {
		return nil, fmt.Errorf("%w: parser: %v", ErrInvalidOption, err)
	}

	rawValues, ok := opts.listOption("values")
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrMissingOption, "values")
	}
	values, err := treater.Parse(tr, rawValues)
	if err != nil {
		return nil, fmt.Errorf("%w: values: %v", ErrInvalidOption, err)
	}

	minOcc, err := opts.floatOption("min_occurrences", defaultMinOccurrences(rule))
	if err != nil {
		return nil, err
	}
	maxOcc, err := opts.floatOption("max_occurrences", math.Inf(1))
	if err != nil {
		return nil, err
	}
	if minOcc < 0 || maxOcc < 0 {
		return nil, fmt.Errorf("%w: min %v, max %v", ErrNegativeBoundary, minOcc, maxOcc)
	}

	verbose, err := opts.boolOption("verbose", true)
	if err != nil {
		return nil, err
	}

	st := Contain{
		base:    base{name: "contain", options: opts},
		rule:    rule,
		tr:      tr,
		values:  values,
		verbose: verbose,
	}
	if err := st.resolveBoundaries(opts, minOcc, maxOcc); err != nil {
		return nil, err
	}
	st.setScopeFilter()
	return st, nil
}

func defaultMinOccurrences(rule string) float64 {
	if rule == ruleOnly {
		return 0
	}
	return 1
}

// resolveBoundaries assigns every expected value the global (min, max)
// pair, then applies the per-value override groups in order. Each override
// side falls back to the global default independently, and a later group
// overrides an earlier one for the same value.
func (s *Contain) resolveBoundaries(opts Options, minOcc, maxOcc float64) error {
	boundaries := make(map[string]boundary, len(s.values))
	for _, v := range s.values {
		boundaries[s.tr.Key(v)] = boundary{min: minOcc, max: maxOcc}
	}

	groups, ok := opts.listOption("occurrences_per_value")
	if ok {
		for _, raw := range groups {
			group, ok := raw.(map[string]any)
			if !ok {
				return fmt.Errorf("%w: occurrences_per_value entries must be mappings, got %T",
					ErrInvalidOption, raw)
			}
			g := Options(group)

			rawValues, ok := g.listOption("values")
			if !ok {
				return fmt.Errorf("%w: occurrences_per_value entry lacks %q",
					ErrMissingOption, "values")
			}
			values, err := treater.Parse(s.tr, rawValues)
			if err != nil {
				return fmt.Errorf("%w: occurrences_per_value values: %v", ErrInvalidOption, err)
			}

			groupMin, err := g.floatOption("min_occurrences", minOcc)
			if err != nil {
				return err
			}
			groupMax, err := g.floatOption("max_occurrences", maxOcc)
			if err != nil {
				return err
			}
			if groupMin < 0 || groupMax < 0 {
				return fmt.Errorf("%w: min %v, max %v", ErrNegativeBoundary, groupMin, groupMax)
			}

			for _, v := range values {
				key := s.tr.Key(v)
				if _, declared := boundaries[key]; !declared {
					return fmt.Errorf("%w: occurrences_per_value names %v, which is not in values",
						ErrInvalidOption, s.tr.Serialize(v))
				}
				boundaries[key] = boundary{min: groupMin, max: groupMax}
			}
		}
	}

	s.boundaries = boundaries
	return nil
}

// setScopeFilter excludes values whose resolved max is exactly 0 from the
// rule check: a value explicitly forbidden is not part of the presence
// requirement, it just must never occur (which the interval check enforces).
func (s *Contain) setScopeFilter() {
	filter := make(map[string]struct{}, len(s.boundaries))
	for key, b := range s.boundaries {
		if b.max != 0 {
			filter[key] = struct{}{}
		}
	}
	s.scopeFilter = filter
}

func (s Contain) Report(ds *dataset.Dataset) (Report, error) {
	counts := s.countValues(ds)

	total := 0
	for _, n := range counts {
		total += n
	}

	rep := Report{"value_frequency": counts}
	if s.verbose {
		rel := make(map[string]float64, len(counts))
		for key, n := range counts {
			rel[key] = float64(n) * 100 / float64(total)
		}
		rep["value_rel_frequency_%"] = rel
	}
	return rep, nil
}

// countValues pools all scoped columns and counts occurrences of each
// distinct non-null value under the treater's equality.
func (s Contain) countValues(ds *dataset.Dataset) map[string]int {
	counts := make(map[string]int)
	for _, v := range ds.Pool() {
		if v == nil {
			continue
		}
		counts[s.observedKey(v)]++
	}
	return counts
}

// observedKey normalizes an observed native value through the treater when
// possible so that, for example, an integer column checked with a float
// parser still counts correctly. Values the treater cannot parse keep a
// type-qualified fallback key and can only violate an "only" rule.
func (s Contain) observedKey(v any) string {
	parsed, err := s.tr.ParseValue(v)
	if err != nil {
		return fmt.Sprintf("%T:%v", v, v)
	}
	return s.tr.Key(parsed)
}

func (s Contain) Result(rep Report) (bool, error) {
	counts, err := reportFrequency(rep)
	if err != nil {
		return false, err
	}
	if !s.checkInterval(counts) {
		return false, nil
	}
	if !s.checkRule(counts) {
		return false, nil
	}
	return true, nil
}

// checkInterval verifies every expected value's occurrence count against
// its resolved boundary. An expected value that never occurs violates the
// interval only when it was actually required to appear: under the "only"
// rule absences are tolerated wholesale, and a boundary with a zero side
// marks the value as optional or forbidden rather than required.
func (s Contain) checkInterval(counts map[string]int) bool {
	for _, v := range s.values {
		key := s.tr.Key(v)
		b := s.boundaries[key]
		if n, observed := counts[key]; observed {
			if float64(n) < b.min || float64(n) > b.max {
				return false
			}
		} else {
			if s.rule != ruleOnly && b.max != 0 && b.min != 0 {
				return false
			}
		}
	}
	return true
}

func (s Contain) checkRule(counts map[string]int) bool {
	switch s.rule {
	case ruleAll:
		return s.checkAll(counts)
	case ruleOnly:
		return s.checkOnly(counts)
	default:
		return s.checkAll(counts) && s.checkOnly(counts)
	}
}

// checkAll verifies that every expected in-scope value was observed.
func (s Contain) checkAll(counts map[string]int) bool {
	for key := range s.scopeFilter {
		if _, observed := counts[key]; !observed {
			return false
		}
	}
	return true
}

// checkOnly verifies that every observed value is expected and in scope.
func (s Contain) checkOnly(counts map[string]int) bool {
	for key := range counts {
		if _, expected := s.scopeFilter[key]; !expected {
			return false
		}
	}
	return true
}

// profileContain pools the sample's columns and pins their exact value set:
// rule all_and_only over the distinct observed values, with the observed
// frequency extremes as global boundaries. The min boundary is omitted when
// it equals 1, the all_and_only default. Samples mixing value types cannot
// be described by one parser and are refused.
func profileContain(ds *dataset.Dataset) (Options, error) {
	var pooled []any
	for _, v := range ds.Pool() {
		if v != nil {
			pooled = append(pooled, v)
		}
	}

	tr, err := treater.Infer(pooled)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int, len(pooled))
	distinct := make([]any, 0, len(pooled))
	for _, raw := range pooled {
		v, err := tr.ParseValue(raw)
		if err != nil {
			return nil, err
		}
		key := tr.Key(v)
		if _, seen := counts[key]; !seen {
			distinct = append(distinct, v)
		}
		counts[key]++
	}

	minOcc, maxOcc := math.MaxInt, 0
	for _, n := range counts {
		if n < minOcc {
			minOcc = n
		}
		if n > maxOcc {
			maxOcc = n
		}
	}

	treater.Sort(tr, distinct)
	values := treater.SerializeAll(tr, distinct)

	opts := Options{
		"type":            "contain",
		"rule":            ruleAllAndOnly,
		"parser":          map[string]any{"dtype": string(tr.DType())},
		"values":          values,
		"max_occurrences": maxOcc,
	}
	if minOcc != 1 {
		opts["min_occurrences"] = minOcc
	}
	return opts, nil
}

// reportFrequency reads the value_frequency metric back out of a report,
// tolerating the loosely typed map a serialization round trip leaves.
func reportFrequency(rep Report) (map[string]int, error) {
	raw, ok := rep["value_frequency"]
	if !ok {
		return nil, errMissingMetric("value_frequency")
	}
	switch m := raw.(type) {
	case map[string]int:
		return m, nil
	case map[string]any:
		counts := make(map[string]int, len(m))
		for k, v := range m {
			n, ok := toInt(v)
			if !ok {
				return nil, errMissingMetric("value_frequency")
			}
			counts[k] = int(n)
		}
		return counts, nil
	default:
		return nil, errMissingMetric("value_frequency")
	}
}
