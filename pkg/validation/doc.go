// Package validation runs a validation document against a dataset and
// aggregates the per-statement outcomes into a run result.
//
// A Document is a list of items; each item scopes the dataset to a set of
// columns and lists the statements to evaluate there. Validate walks the
// items, constructs each statement through the registry, runs it, and
// collects {detail, result} outcomes together with pass/fail counts and the
// highest failed severity.
//
// Severity is caller-defined: each statement option map may carry a
// "severity" (default 5). Result.Err reports a validation failure only when
// a statement at or above the configured exception level failed, so
// lower-severity statements can warn without breaking a pipeline.
//
// # Usage
//
//	res, err := validation.Validate(ctx, ds, doc,
//		validation.WithHistory(store),
//	)
//	if err != nil {
//		// the run itself broke: bad configuration, unknown column, ...
//	}
//	if err := res.Err(); err != nil {
//		// data quality failure at or above the exception level
//	}
//
// When a history store is attached, each run is appended to the log so
// future runs can resolve series references against it, and Profile can
// generate a document from a sample dataset to bootstrap validation.
package validation
