// Package statement implements the data-quality statement engine: the
// contract every statement obeys and the built-in rules (unique, not_null,
// row_count, contain, statistic_in_interval, match_regex).
//
// A statement is a named, configurable rule evaluated against a scoped
// dataset. Its lifecycle is fixed: construct from an option map (option
// keys are validated against a whitelist and string options are passed
// through the history renderer), compute a Report of measured facts, reduce
// the report to a boolean verdict. Run composes the last two steps into the
// {detail, result} outcome callers consume.
//
// For any statement, Result(Report(ds)) is a pure function of the dataset
// and the parsed options: no side effects, no caching, no shared state
// between instances. Instances serve exactly one validation cycle.
//
// # Usage
//
//	st, err := statement.New(ctx, statement.Options{
//		"type":       "not_null",
//		"at_least_%": 99.0,
//	}, nil)
//	if err != nil {
//		// handle error
//	}
//	outcome, err := statement.Run(st, scope)
//
// # Profiling
//
// unique, not_null, row_count and contain can also run in reverse: Profile
// infers an option map that the given sample dataset would satisfy, which
// is how validation documents are generated from example data.
//
// New statement kinds are added by explicit registration, not subclassing:
// Register accepts a Definition carrying the kind's name, expected option
// keys, constructor and optional profiler.
package statement
