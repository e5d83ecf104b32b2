package history_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datacop/datacop/pkg/history"
)

type stubReader struct {
	records []history.Record
	err     error
}

func (r stubReader) Records(context.Context) ([]history.Record, error) {
	return r.records, r.err
}

func notNullRecord(column string, pct float64) history.Record {
	return history.Record{
		Items: []history.Item{{
			Scope: []string{column},
			Statements: []history.Statement{{
				Type:   "not_null",
				Detail: map[string]any{"not_null_rows_%": pct},
			}},
		}},
	}
}

func TestSeries(t *testing.T) {
	t.Parallel()

	reader := stubReader{records: []history.Record{
		notNullRecord("x", 80),
		notNullRecord("y", 10),
		notNullRecord("x", 60),
		{Items: []history.Item{{
			// Multi-column scopes never contribute to a column series.
			Scope: []string{"x", "y"},
			Statements: []history.Statement{{
				Type:   "not_null",
				Detail: map[string]any{"not_null_rows_%": 99.0},
			}},
		}}},
	}}

	series, err := history.Series(context.Background(), reader, "x", "not_null_rows_%")
	require.NoError(t, err)
	assert.Equal(t, []float64{80, 60}, series)
}

func TestRendererRender(t *testing.T) {
	t.Parallel()

	reader := stubReader{records: []history.Record{
		notNullRecord("x", 80),
		notNullRecord("x", 60),
		notNullRecord("x", 70),
	}}
	renderer := history.NewRenderer(reader)

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no filter renders a JSON array", `{{ series("x", "not_null_rows_%") }}`, "[80,60,70]"},
		{"min filter", `{{ series("x", "not_null_rows_%") | min }}`, "60"},
		{"max filter", `{{ series("x", "not_null_rows_%") | max }}`, "80"},
		{"mean filter", `{{ series("x", "not_null_rows_%") | mean }}`, "70"},
		{"sum filter", `{{ series("x", "not_null_rows_%") | sum }}`, "210"},
		{"last filter", `{{ series("x", "not_null_rows_%") | last }}`, "70"},
		{"single quotes accepted", `{{ series('x', 'not_null_rows_%') | last }}`, "70"},
		{"plain string passes through", "80.5", "80.5"},
		{"partial match passes through", `threshold is {{ series("x", "s") }}`, `threshold is {{ series("x", "s") }}`},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := renderer.Render(context.Background(), tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("unknown filter fails", func(t *testing.T) {
		t.Parallel()
		_, err := renderer.Render(context.Background(), `{{ series("x", "s") | median }}`)
		require.ErrorIs(t, err, history.ErrUnknownFilter)
	})

	t.Run("empty series cannot be filtered", func(t *testing.T) {
		t.Parallel()
		empty := history.NewRenderer(stubReader{})
		_, err := empty.Render(context.Background(), `{{ series("x", "s") | mean }}`)
		require.ErrorIs(t, err, history.ErrEmptySeries)
	})

	t.Run("nil reader fails only on actual references", func(t *testing.T) {
		t.Parallel()
		bare := history.NewRenderer(nil)

		got, err := bare.Render(context.Background(), "plain value")
		require.NoError(t, err)
		assert.Equal(t, "plain value", got)

		_, err = bare.Render(context.Background(), `{{ series("x", "s") }}`)
		require.ErrorIs(t, err, history.ErrNoReader)
	})
}
