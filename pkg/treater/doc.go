// Package treater converts raw statement option scalars into the native
// value types found in a dataset, and serializes native values back into a
// canonical, sortable, JSON-safe form for reports.
//
// Each supported data type has a Treater implementation keyed by its dtype
// name: integer, float, string, boolean, decimal, datetime, date and time.
// Statements that accept user-declared expected values (contain, most
// notably) run those values through a treater so that `"10"` declared in a
// configuration matches the integer 10 observed in a column, and so that
// report keys are stable across runs.
//
// # Usage
//
//	tr, err := treater.FromOptions(map[string]any{"dtype": "integer"})
//	if err != nil {
//		// handle error
//	}
//	native, err := treater.Parse(tr, []any{"1", "2", 3})
//
// Infer picks a treater from observed native values; it refuses mixed-type
// samples, which is how contain's profiling rejects columns it cannot
// describe.
package treater
