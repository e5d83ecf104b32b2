// Package history records validation runs and resolves statement options
// that reference past results, which is what makes thresholds adaptive
// ("flag if below the historical average").
//
// A Record captures one validation run: run id, document name, timestamp and
// the per-item statement reports. Records are stored as YAML documents
// through the storage package and read back in chronological order.
//
// # Option templates
//
// String statement options may carry a single series reference:
//
//	{{ series("amount", "mean") }}           -> JSON array of past values
//	{{ series("amount", "mean") | mean }}    -> one number
//
// Supported filters: mean, min, max, sum, last. Renderer recognizes exactly
// this syntax; any other string passes through unchanged. There is no
// general expression language on purpose: the reference is parsed with a
// fixed grammar and resolved against the Reader interface.
package history
