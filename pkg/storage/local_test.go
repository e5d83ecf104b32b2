package storage_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datacop/datacop/pkg/storage"
)

func TestNewLocalStorage(t *testing.T) {
	t.Parallel()

	t.Run("rejects an empty base directory", func(t *testing.T) {
		t.Parallel()
		_, err := storage.NewLocalStorage("")
		require.ErrorIs(t, err, storage.ErrInvalidConfig)
	})

	t.Run("creates the base directory", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir() + "/nested/logs"
		st, err := storage.NewLocalStorage(dir)
		require.NoError(t, err)
		require.NotNil(t, st)
	})
}

func TestLocalStorageReadWrite(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	st, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	t.Run("round trips a document", func(t *testing.T) {
		t.Parallel()
		require.NoError(t, st.Write(ctx, "orders/run1.yaml", []byte("result: true")))

		data, err := st.Read(ctx, "orders/run1.yaml")
		require.NoError(t, err)
		assert.Equal(t, []byte("result: true"), data)

		ok, err := st.Exists(ctx, "orders/run1.yaml")
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("missing documents yield ErrNotFound", func(t *testing.T) {
		t.Parallel()
		_, err := st.Read(ctx, "orders/absent.yaml")
		require.ErrorIs(t, err, storage.ErrNotFound)

		ok, err := st.Exists(ctx, "orders/absent.yaml")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("rejects paths escaping the base directory", func(t *testing.T) {
		t.Parallel()
		_, err := st.Read(ctx, "../outside.yaml")
		require.ErrorIs(t, err, storage.ErrInvalidPath)

		err = st.Write(ctx, "../../etc/escape", []byte("x"))
		require.ErrorIs(t, err, storage.ErrInvalidPath)
	})

	t.Run("honors context cancellation", func(t *testing.T) {
		t.Parallel()
		cancelled, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := st.Read(cancelled, "orders/run1.yaml")
		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestLocalStorageList(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	st, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, st.Write(ctx, "orders/b.yaml", []byte("b")))
	require.NoError(t, st.Write(ctx, "orders/a.yaml", []byte("a")))
	require.NoError(t, st.Write(ctx, "users/c.yaml", []byte("c")))

	t.Run("filters by prefix and sorts", func(t *testing.T) {
		t.Parallel()
		paths, err := st.List(ctx, "orders/")
		require.NoError(t, err)
		assert.Equal(t, []string{"orders/a.yaml", "orders/b.yaml"}, paths)
	})

	t.Run("empty prefix lists everything", func(t *testing.T) {
		t.Parallel()
		paths, err := st.List(ctx, "")
		require.NoError(t, err)
		assert.Equal(t, []string{"orders/a.yaml", "orders/b.yaml", "users/c.yaml"}, paths)
	})
}

func TestNewRootSelection(t *testing.T) {
	t.Parallel()

	t.Run("filesystem roots yield local storage", func(t *testing.T) {
		t.Parallel()
		st, err := storage.New(context.Background(), t.TempDir())
		require.NoError(t, err)
		_, ok := st.(*storage.LocalStorage)
		assert.True(t, ok)
	})

	t.Run("s3 roots need a bucket", func(t *testing.T) {
		t.Parallel()
		_, err := storage.New(context.Background(), "s3://")
		require.ErrorIs(t, err, storage.ErrInvalidConfig)
	})
}
