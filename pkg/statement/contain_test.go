package statement_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datacop/datacop/pkg/dataset"
	"github.com/datacop/datacop/pkg/statement"
)

func stringParser() map[string]any { return map[string]any{"dtype": "string"} }

func TestContainOptions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		opts statement.Options
		want error
	}{
		{
			"missing rule",
			statement.Options{"type": "contain", "values": []any{"a"}, "parser": stringParser()},
			statement.ErrMissingOption,
		},
		{
			"unknown rule",
			statement.Options{"type": "contain", "rule": "some", "values": []any{"a"}, "parser": stringParser()},
			statement.ErrInvalidOption,
		},
		{
			"missing parser",
			statement.Options{"type": "contain", "rule": "all", "values": []any{"a"}},
			statement.ErrMissingOption,
		},
		{
			"missing values",
			statement.Options{"type": "contain", "rule": "all", "parser": stringParser()},
			statement.ErrMissingOption,
		},
		{
			"negative boundary",
			statement.Options{
				"type": "contain", "rule": "all", "parser": stringParser(),
				"values": []any{"a"}, "min_occurrences": -1,
			},
			statement.ErrNegativeBoundary,
		},
		{
			"override for an undeclared value",
			statement.Options{
				"type": "contain", "rule": "all", "parser": stringParser(),
				"values": []any{"a", "b"},
				"occurrences_per_value": []any{
					map[string]any{"values": []any{"c"}, "max_occurrences": 2},
				},
			},
			statement.ErrInvalidOption,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := statement.New(context.Background(), tt.opts, nil)
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestContainReport(t *testing.T) {
	t.Parallel()

	t.Run("counts pooled values across all scoped columns", func(t *testing.T) {
		t.Parallel()
		ds := dataset.MustNew(
			dataset.Col("a", "x", "y", nil),
			dataset.Col("b", "x", "x", "z"),
		)
		st := mustStatement(t, statement.Options{
			"type": "contain", "rule": "all",
			"values": []any{"x", "y", "z"},
			"parser": stringParser(),
		})

		rep, err := st.Report(ds)
		require.NoError(t, err)
		assert.Equal(t, map[string]int{"x": 3, "y": 1, "z": 1}, rep["value_frequency"])

		rel, ok := rep["value_rel_frequency_%"].(map[string]float64)
		require.True(t, ok)
		assert.InDelta(t, 60.0, rel["x"], 1e-9)
	})

	t.Run("verbose false drops relative frequencies", func(t *testing.T) {
		t.Parallel()
		ds := dataset.MustNew(dataset.Col("a", "x"))
		st := mustStatement(t, statement.Options{
			"type": "contain", "rule": "all",
			"values":  []any{"x"},
			"parser":  stringParser(),
			"verbose": false,
		})

		rep, err := st.Report(ds)
		require.NoError(t, err)
		_, present := rep["value_rel_frequency_%"]
		assert.False(t, present)
	})

	t.Run("numeric parser matches int columns against string declarations", func(t *testing.T) {
		t.Parallel()
		ds := dataset.MustNew(dataset.Col("a", 1, 2, 2))
		st := mustStatement(t, statement.Options{
			"type": "contain", "rule": "all",
			"values": []any{"1", "2"},
			"parser": map[string]any{"dtype": "integer"},
		})

		outcome, err := statement.Run(st, ds)
		require.NoError(t, err)
		assert.True(t, outcome.Result)
	})
}

func TestContainRules(t *testing.T) {
	t.Parallel()

	newContain := func(t *testing.T, rule string, values []any, extra statement.Options) statement.Statement {
		t.Helper()
		opts := statement.Options{
			"type":   "contain",
			"rule":   rule,
			"values": values,
			"parser": stringParser(),
		}
		for k, v := range extra {
			opts[k] = v
		}
		return mustStatement(t, opts)
	}

	t.Run("all tolerates extras but not absences", func(t *testing.T) {
		t.Parallel()
		ds := dataset.MustNew(dataset.Col("a", "a", "a", "b", "extra"))

		st := newContain(t, "all", []any{"a", "b"}, nil)
		outcome, err := statement.Run(st, ds)
		require.NoError(t, err)
		assert.True(t, outcome.Result)

		st = newContain(t, "all", []any{"a", "b", "c"}, nil)
		outcome, err = statement.Run(st, ds)
		require.NoError(t, err)
		assert.False(t, outcome.Result)
	})

	t.Run("only tolerates absences but not extras", func(t *testing.T) {
		t.Parallel()
		ds := dataset.MustNew(dataset.Col("a", "a", "b"))

		st := newContain(t, "only", []any{"a", "b", "c"}, nil)
		outcome, err := statement.Run(st, ds)
		require.NoError(t, err)
		assert.True(t, outcome.Result)

		st = newContain(t, "only", []any{"a"}, nil)
		outcome, err = statement.Run(st, ds)
		require.NoError(t, err)
		assert.False(t, outcome.Result)
	})

	t.Run("all_and_only demands the exact set", func(t *testing.T) {
		t.Parallel()
		st := newContain(t, "all_and_only", []any{"1", "2", "3"}, statement.Options{
			"parser": map[string]any{"dtype": "integer"},
		})

		exact := dataset.MustNew(dataset.Col("a", 1, 2, 3, 2))
		outcome, err := statement.Run(st, exact)
		require.NoError(t, err)
		assert.True(t, outcome.Result)

		missing := dataset.MustNew(dataset.Col("a", 1, 2))
		outcome, err = statement.Run(st, missing)
		require.NoError(t, err)
		assert.False(t, outcome.Result)

		extra := dataset.MustNew(dataset.Col("a", 1, 2, 3, 4))
		outcome, err = statement.Run(st, extra)
		require.NoError(t, err)
		assert.False(t, outcome.Result)
	})

	t.Run("max_occurrences zero forbids a value outright", func(t *testing.T) {
		t.Parallel()
		st := newContain(t, "only", []any{"a"}, statement.Options{
			"occurrences_per_value": []any{
				map[string]any{"values": []any{"a"}, "max_occurrences": 0},
			},
		})

		present := dataset.MustNew(dataset.Col("col", "a", nil))
		outcome, err := statement.Run(st, present)
		require.NoError(t, err)
		assert.False(t, outcome.Result)

		absent := dataset.MustNew(dataset.Col("col", nil, nil))
		outcome, err = statement.Run(st, absent)
		require.NoError(t, err)
		assert.True(t, outcome.Result)
	})

	t.Run("per-value overrides beat global boundaries", func(t *testing.T) {
		t.Parallel()
		// Globally at most 2 occurrences, but "b" may appear up to 4 times.
		st := newContain(t, "all", []any{"a", "b"}, statement.Options{
			"max_occurrences": 2,
			"occurrences_per_value": []any{
				map[string]any{"values": []any{"b"}, "max_occurrences": 4},
			},
		})

		ok := dataset.MustNew(dataset.Col("col", "a", "b", "b", "b"))
		outcome, err := statement.Run(st, ok)
		require.NoError(t, err)
		assert.True(t, outcome.Result)

		tooMany := dataset.MustNew(dataset.Col("col", "a", "a", "a", "b"))
		outcome, err = statement.Run(st, tooMany)
		require.NoError(t, err)
		assert.False(t, outcome.Result)
	})

	t.Run("only rule tolerates an expected value below its minimum when absent", func(t *testing.T) {
		t.Parallel()
		// "b" never occurs; under "only" absence is not an interval
		// violation even with a positive minimum.
		st := newContain(t, "only", []any{"a", "b"}, statement.Options{
			"min_occurrences": 2,
		})

		ds := dataset.MustNew(dataset.Col("col", "a", "a"))
		outcome, err := statement.Run(st, ds)
		require.NoError(t, err)
		assert.True(t, outcome.Result)
	})
}

func TestContainProfile(t *testing.T) {
	t.Parallel()

	t.Run("pins the distinct value set with observed extremes", func(t *testing.T) {
		t.Parallel()
		ds := dataset.MustNew(dataset.Col("a", "b", "a", "a", nil))

		opts, err := statement.Profile("contain", ds)
		require.NoError(t, err)
		assert.Equal(t, "all_and_only", opts["rule"])
		assert.Equal(t, map[string]any{"dtype": "string"}, opts["parser"])
		assert.Equal(t, []any{"a", "b"}, opts["values"])
		assert.Equal(t, 2, opts["max_occurrences"])
		_, present := opts["min_occurrences"]
		assert.False(t, present)

		st := mustStatement(t, opts)
		outcome, err := statement.Run(st, ds)
		require.NoError(t, err)
		assert.True(t, outcome.Result)
	})

	t.Run("refuses mixed-type samples", func(t *testing.T) {
		t.Parallel()
		ds := dataset.MustNew(dataset.Col("a", 1, "x"))
		_, err := statement.Profile("contain", ds)
		require.Error(t, err)
	})
}
