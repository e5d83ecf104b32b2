package statement

import (
	"fmt"

	"github.com/datacop/datacop/pkg/dataset"
)

// Report is the mapping of metric name to measured value a statement
// computes before judging pass/fail. Produced fresh on every Report call.
type Report map[string]any

// Statement is a named, configurable rule that turns a scoped dataset into
// a report and a verdict. Implementations hold only parsed configuration;
// independent instances may be evaluated in parallel without coordination.
type Statement interface {
	// Name returns the statement's canonical registry name.
	Name() string

	// TableOnly reports whether the statement applies only to whole-table
	// scopes rather than arbitrary column scopes.
	TableOnly() bool

	// Report computes diagnostic metrics for the scoped dataset. Pure:
	// same scope, same report.
	Report(ds *dataset.Dataset) (Report, error)

	// Result reduces a report to a verdict. Pure: same report, same
	// verdict.
	Result(rep Report) (bool, error)
}

// Outcome is the externally observable product of one statement run.
type Outcome struct {
	Detail Report `json:"detail" yaml:"detail"`
	Result bool   `json:"result" yaml:"result"`
}

// Run composes Report and Result into a single evaluation.
func Run(st Statement, ds *dataset.Dataset) (Outcome, error) {
	detail, err := st.Report(ds)
	if err != nil {
		return Outcome{}, err
	}
	verdict, err := st.Result(detail)
	if err != nil {
		return Outcome{}, err
	}
	return Outcome{Detail: detail, Result: verdict}, nil
}

// base carries the identity every concrete statement shares and supplies
// the no-op defaults: an empty report and a passing verdict.
type base struct {
	name      string
	tableOnly bool
	options   Options
}

func (b base) Name() string    { return b.name }
func (b base) TableOnly() bool { return b.tableOnly }

func (b base) Report(*dataset.Dataset) (Report, error) { return Report{}, nil }
func (b base) Result(Report) (bool, error)             { return true, nil }

// Base is the no-op statement: it accepts only the universal options,
// reports nothing and always passes. Registered as "base_statement".
type Base struct {
	base
}

func newBase(opts Options) (Statement, error) {
	return Base{base{name: "base_statement", options: opts}}, nil
}

// reportFloat extracts a float metric from a report, tolerating integer
// representations left behind by serialization round trips.
func reportFloat(rep Report, key string) (float64, error) {
	raw, ok := rep[key]
	if !ok {
		return 0, errMissingMetric(key)
	}
	f, ok := toFloat(raw)
	if !ok {
		return 0, errMissingMetric(key)
	}
	return f, nil
}

func errMissingMetric(key string) error {
	return fmt.Errorf("%w: missing metric %q", ErrMalformedReport, key)
}
