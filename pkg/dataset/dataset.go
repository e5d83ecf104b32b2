package dataset

import (
	"fmt"
)

// Column is a named, ordered sequence of nullable scalar values.
// A nil element marks a null.
type Column struct {
	Name   string
	Values []any
}

// Col is a convenience constructor for a Column.
func Col(name string, values ...any) Column {
	return Column{Name: name, Values: values}
}

// Dataset is an ordered collection of named columns whose rows align by
// position. It is safe for concurrent reads; nothing in this module writes
// to a dataset after construction.
type Dataset struct {
	columns []Column
	index   map[string]int
}

// New builds a dataset from the given columns. All columns must have the
// same length and distinct names.
func New(columns ...Column) (*Dataset, error) {
	if len(columns) == 0 {
		return nil, ErrNoColumns
	}

	index := make(map[string]int, len(columns))
	length := len(columns[0].Values)
	for i, col := range columns {
		if _, exists := index[col.Name]; exists {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateColumn, col.Name)
		}
		if len(col.Values) != length {
			return nil, fmt.Errorf("%w: column %q has %d values, expected %d",
				ErrRaggedColumns, col.Name, len(col.Values), length)
		}
		index[col.Name] = i
	}

	return &Dataset{columns: columns, index: index}, nil
}

// MustNew is like New but panics on error. Intended for tests and fixtures.
func MustNew(columns ...Column) *Dataset {
	ds, err := New(columns...)
	if err != nil {
		panic(err)
	}
	return ds
}

// Len returns the number of rows.
func (d *Dataset) Len() int {
	return len(d.columns[0].Values)
}

// ColumnNames returns the column names in declaration order.
func (d *Dataset) ColumnNames() []string {
	names := make([]string, len(d.columns))
	for i, col := range d.columns {
		names[i] = col.Name
	}
	return names
}

// Column returns the values of the named column.
func (d *Dataset) Column(name string) ([]any, error) {
	i, ok := d.index[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrColumnNotFound, name)
	}
	return d.columns[i].Values, nil
}

// Columns returns all columns in declaration order.
func (d *Dataset) Columns() []Column {
	return d.columns
}

// Row returns the values of row i across all columns, in column order.
func (d *Dataset) Row(i int) []any {
	row := make([]any, len(d.columns))
	for c, col := range d.columns {
		row[c] = col.Values[i]
	}
	return row
}

// Select returns a scoped view containing only the named columns, in the
// requested order. The view shares the parent's backing slices.
func (d *Dataset) Select(names ...string) (*Dataset, error) {
	if len(names) == 0 {
		return nil, ErrNoColumns
	}

	columns := make([]Column, 0, len(names))
	index := make(map[string]int, len(names))
	for _, name := range names {
		i, ok := d.index[name]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrColumnNotFound, name)
		}
		if _, dup := index[name]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateColumn, name)
		}
		index[name] = len(columns)
		columns = append(columns, d.columns[i])
	}

	return &Dataset{columns: columns, index: index}, nil
}

// Pool concatenates all column values into one sequence, column by column.
// Statements that treat a multi-column scope as a single bag of values
// (contain, for example) operate on the pooled sequence.
func (d *Dataset) Pool() []any {
	pooled := make([]any, 0, len(d.columns)*d.Len())
	for _, col := range d.columns {
		pooled = append(pooled, col.Values...)
	}
	return pooled
}
