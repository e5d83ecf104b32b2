package validation

import (
	"errors"

	"github.com/datacop/datacop/pkg/dataset"
	"github.com/datacop/datacop/pkg/statement"
	"github.com/datacop/datacop/pkg/treater"
)

// columnProfilers are the statement kinds profiled per column, in emission
// order. Table-only kinds are profiled once at document level instead.
var columnProfilers = []string{"unique", "not_null", "contain"}

// Profile generates a validation document from a sample dataset: one
// whole-table item pinning the row count, then one item per column with
// every applicable per-column profile. Profilers that refuse the sample
// (a fully null column, mixed value types) are skipped rather than failing
// the whole document, since a partial profile is still a usable start.
func Profile(ds *dataset.Dataset, name string) (Document, error) {
	doc := Document{Name: name}

	rowCount, err := statement.Profile("row_count", ds)
	if err != nil {
		return Document{}, err
	}
	doc.Items = append(doc.Items, Item{
		Statements: []statement.Options{rowCount},
	})

	for _, column := range ds.ColumnNames() {
		scope, err := ds.Select(column)
		if err != nil {
			return Document{}, err
		}

		item := Item{Scope: []string{column}}
		for _, kind := range columnProfilers {
			opts, err := statement.Profile(kind, scope)
			if err != nil {
				if errors.Is(err, statement.ErrUselessProfile) ||
					errors.Is(err, treater.ErrMixedTypes) ||
					errors.Is(err, treater.ErrNoValues) {
					continue
				}
				return Document{}, err
			}
			item.Statements = append(item.Statements, opts)
		}
		if len(item.Statements) > 0 {
			doc.Items = append(doc.Items, item)
		}
	}

	return doc, nil
}
