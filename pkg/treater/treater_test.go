package treater_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datacop/datacop/pkg/treater"
)

func TestFromOptions(t *testing.T) {
	t.Parallel()

	t.Run("builds a treater by dtype", func(t *testing.T) {
		t.Parallel()
		tr, err := treater.FromOptions(map[string]any{"dtype": "integer"})
		require.NoError(t, err)
		assert.Equal(t, treater.Integer, tr.DType())
	})

	t.Run("fails without dtype", func(t *testing.T) {
		t.Parallel()
		_, err := treater.FromOptions(map[string]any{})
		require.ErrorIs(t, err, treater.ErrMissingDType)
	})

	t.Run("fails on unknown dtype", func(t *testing.T) {
		t.Parallel()
		_, err := treater.FromOptions(map[string]any{"dtype": "complex"})
		require.ErrorIs(t, err, treater.ErrUnknownDType)
	})

	t.Run("honors a custom datetime format", func(t *testing.T) {
		t.Parallel()
		tr, err := treater.FromOptions(map[string]any{
			"dtype":  "datetime",
			"format": "02/01/2006",
		})
		require.NoError(t, err)

		v, err := tr.ParseValue("25/12/2025")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2025, 12, 25, 0, 0, 0, 0, time.UTC), v)
	})

	t.Run("rounds decimals to the declared places", func(t *testing.T) {
		t.Parallel()
		tr, err := treater.FromOptions(map[string]any{
			"dtype":          "decimal",
			"decimal_places": 2,
		})
		require.NoError(t, err)

		v, err := tr.ParseValue("10.239")
		require.NoError(t, err)
		assert.Equal(t, "10.24", tr.Key(v))
	})
}

func TestIntegerTreater(t *testing.T) {
	t.Parallel()
	tr := treater.IntegerTreater{}

	t.Run("parses numeric strings and ints", func(t *testing.T) {
		t.Parallel()
		parsed, err := treater.Parse(tr, []any{"10", 11, int64(12), nil})
		require.NoError(t, err)
		assert.Equal(t, []any{int64(10), int64(11), int64(12), nil}, parsed)
	})

	t.Run("rejects fractional floats", func(t *testing.T) {
		t.Parallel()
		_, err := tr.ParseValue(1.5)
		require.ErrorIs(t, err, treater.ErrUnparseable)
	})

	t.Run("keys equal values identically", func(t *testing.T) {
		t.Parallel()
		a, err := tr.ParseValue("7")
		require.NoError(t, err)
		b, err := tr.ParseValue(7)
		require.NoError(t, err)
		assert.Equal(t, tr.Key(a), tr.Key(b))
	})
}

func TestFloatTreater(t *testing.T) {
	t.Parallel()
	tr := treater.FloatTreater{}

	parsed, err := tr.ParseValue("2.5")
	require.NoError(t, err)
	assert.Equal(t, 2.5, parsed)

	_, err = tr.ParseValue("abc")
	require.ErrorIs(t, err, treater.ErrUnparseable)
}

func TestBooleanTreater(t *testing.T) {
	t.Parallel()
	tr := treater.BooleanTreater{}

	for _, raw := range []any{"true", "T", "yes", "1", true, 1} {
		v, err := tr.ParseValue(raw)
		require.NoError(t, err, "raw %v", raw)
		assert.Equal(t, true, v, "raw %v", raw)
	}
	for _, raw := range []any{"false", "no", "0", false, 0} {
		v, err := tr.ParseValue(raw)
		require.NoError(t, err, "raw %v", raw)
		assert.Equal(t, false, v, "raw %v", raw)
	}

	_, err := tr.ParseValue("maybe")
	require.ErrorIs(t, err, treater.ErrUnparseable)
}

func TestDecimalTreater(t *testing.T) {
	t.Parallel()
	tr := treater.DecimalTreater{}

	v, err := tr.ParseValue("10.50")
	require.NoError(t, err)
	d, ok := v.(decimal.Decimal)
	require.True(t, ok)
	assert.True(t, d.Equal(decimal.RequireFromString("10.5")))

	assert.Equal(t, "10.5", tr.Serialize(v))
}

func TestTimestampTreater(t *testing.T) {
	t.Parallel()

	t.Run("date round trip", func(t *testing.T) {
		t.Parallel()
		tr, err := treater.FromDType(treater.Date)
		require.NoError(t, err)

		v, err := tr.ParseValue("2026-08-25")
		require.NoError(t, err)
		assert.Equal(t, "2026-08-25", tr.Serialize(v))
	})

	t.Run("rejects malformed input", func(t *testing.T) {
		t.Parallel()
		tr, err := treater.FromDType(treater.Time)
		require.NoError(t, err)
		_, err = tr.ParseValue("not-a-time")
		require.ErrorIs(t, err, treater.ErrUnparseable)
	})
}

func TestInfer(t *testing.T) {
	t.Parallel()

	t.Run("infers a shared dtype ignoring nulls", func(t *testing.T) {
		t.Parallel()
		tr, err := treater.Infer([]any{int64(1), nil, 3, int32(9)})
		require.NoError(t, err)
		assert.Equal(t, treater.Integer, tr.DType())
	})

	t.Run("fails on mixed types", func(t *testing.T) {
		t.Parallel()
		_, err := treater.Infer([]any{1, "a"})
		require.ErrorIs(t, err, treater.ErrMixedTypes)
	})

	t.Run("fails on an all-null sample", func(t *testing.T) {
		t.Parallel()
		_, err := treater.Infer([]any{nil, nil})
		require.ErrorIs(t, err, treater.ErrNoValues)
	})
}

func TestSort(t *testing.T) {
	t.Parallel()

	t.Run("orders integers numerically", func(t *testing.T) {
		t.Parallel()
		values := []any{int64(12), int64(2), int64(100)}
		treater.Sort(treater.IntegerTreater{}, values)
		assert.Equal(t, []any{int64(2), int64(12), int64(100)}, values)
	})

	t.Run("orders strings lexicographically with nulls first", func(t *testing.T) {
		t.Parallel()
		values := []any{"b", nil, "a"}
		treater.Sort(treater.StringTreater{}, values)
		assert.Equal(t, []any{nil, "a", "b"}, values)
	})
}
