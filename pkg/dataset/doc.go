// Package dataset provides the in-memory columnar table model that data
// quality statements are evaluated against.
//
// A Dataset is an ordered collection of named columns. Each column is an
// ordered sequence of nullable scalar values (nil marks a null); rows align
// by position across columns. Datasets are treated as immutable by every
// consumer in this module: statements only ever read from them, and Select
// shares the backing slices of its parent rather than copying.
//
// # Usage
//
//	ds, err := dataset.New(
//		dataset.Col("id", 1, 2, 3),
//		dataset.Col("name", "a", "b", nil),
//	)
//	if err != nil {
//		// handle error
//	}
//
//	scope, err := ds.Select("name")
//
// Select is how callers scope a dataset down to the columns a single
// validation item targets; statements never see unscoped columns.
package dataset
