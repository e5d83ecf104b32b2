package history_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datacop/datacop/pkg/history"
	"github.com/datacop/datacop/pkg/storage"
)

func newStore(t *testing.T, document string) *history.Store {
	t.Helper()
	st, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	return history.NewStore(st, document)
}

func TestStoreRoundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := newStore(t, "orders")

	rec := history.NewRecord("orders")
	rec.Items = []history.Item{{
		Scope: []string{"amount"},
		Statements: []history.Statement{{
			Type:   "not_null",
			Detail: map[string]any{"not_null_rows_%": 97.5},
			Result: true,
		}},
	}}

	require.NoError(t, store.Append(ctx, rec))

	records, err := store.Records(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)

	got := records[0]
	assert.Equal(t, rec.RunID, got.RunID)
	assert.Equal(t, "orders", got.Document)
	require.Len(t, got.Items, 1)
	assert.Equal(t, []string{"amount"}, got.Items[0].Scope)
	require.Len(t, got.Items[0].Statements, 1)
	assert.Equal(t, "not_null", got.Items[0].Statements[0].Type)
	assert.True(t, got.Items[0].Statements[0].Result)
	assert.InDelta(t, 97.5, got.Items[0].Statements[0].Detail["not_null_rows_%"], 1e-9)
}

func TestStoreRecordsOrder(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := newStore(t, "orders")

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		rec := history.NewRecord("orders")
		rec.Timestamp = base.Add(time.Duration(i) * time.Hour)
		rec.Items = []history.Item{{
			Scope: []string{"x"},
			Statements: []history.Statement{{
				Type:   "row_count",
				Detail: map[string]any{"rows": i},
			}},
		}}
		require.NoError(t, store.Append(ctx, rec))
	}

	// Timestamped file names keep listing order chronological.
	series, err := history.Series(ctx, store, "x", "rows")
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 1, 2}, series)
}

func TestStoreIsolatesDocuments(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	st, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	orders := history.NewStore(st, "orders")
	users := history.NewStore(st, "users")

	require.NoError(t, orders.Append(ctx, history.NewRecord("orders")))

	records, err := users.Records(ctx)
	require.NoError(t, err)
	assert.Empty(t, records)

	records, err = orders.Records(ctx)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}
