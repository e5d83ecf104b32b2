package statement_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datacop/datacop/pkg/dataset"
	"github.com/datacop/datacop/pkg/statement"
)

func TestMatchRegex(t *testing.T) {
	t.Parallel()

	t.Run("requires a pattern", func(t *testing.T) {
		t.Parallel()
		_, err := statement.New(context.Background(), statement.Options{
			"type": "match_regex",
		}, nil)
		require.ErrorIs(t, err, statement.ErrMissingOption)
	})

	t.Run("rejects a malformed pattern", func(t *testing.T) {
		t.Parallel()
		_, err := statement.New(context.Background(), statement.Options{
			"type":    "match_regex",
			"pattern": "([",
		}, nil)
		require.ErrorIs(t, err, statement.ErrInvalidOption)
	})

	t.Run("reports the matching share, nulls never match", func(t *testing.T) {
		t.Parallel()
		ds := dataset.MustNew(dataset.Col("code", "AB-1", "CD-2", "bad", nil))
		st := mustStatement(t, statement.Options{
			"type":    "match_regex",
			"pattern": `^[A-Z]{2}-\d$`,
		})

		rep, err := st.Report(ds)
		require.NoError(t, err)
		assert.Equal(t, 2, rep["matching_values"])
		assert.InDelta(t, 50.0, rep["matching_values_%"], 1e-9)
	})

	t.Run("refuses a zero-row scope", func(t *testing.T) {
		t.Parallel()
		ds := dataset.MustNew(dataset.Col("code"))
		st := mustStatement(t, statement.Options{
			"type":    "match_regex",
			"pattern": `^x$`,
		})

		_, err := st.Report(ds)
		require.ErrorIs(t, err, statement.ErrEmptyScope)
	})

	t.Run("threshold decides the verdict", func(t *testing.T) {
		t.Parallel()
		ds := dataset.MustNew(dataset.Col("code", "a1", "b2", "c3", "??"))

		st := mustStatement(t, statement.Options{
			"type":       "match_regex",
			"pattern":    `^[a-z]\d$`,
			"at_least_%": 75.0,
		})
		outcome, err := statement.Run(st, ds)
		require.NoError(t, err)
		assert.True(t, outcome.Result)

		st = mustStatement(t, statement.Options{
			"type":    "match_regex",
			"pattern": `^[a-z]\d$`,
		})
		outcome, err = statement.Run(st, ds)
		require.NoError(t, err)
		assert.False(t, outcome.Result)
	})
}
