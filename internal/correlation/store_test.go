package correlation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMemoryStorePutGet(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	got, err := store.Get(ctx, "000001")
	require.NoError(t, err)
	require.Empty(t, got)

	require.NoError(t, store.Put(ctx, "000001", "corr-1"))
	got, err = store.Get(ctx, "000001")
	require.NoError(t, err)
	require.Equal(t, "corr-1", got)
}

func TestMemoryStoreLastWriteWins(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "000001", "corr-1"))
	require.NoError(t, store.Put(ctx, "000001", "corr-2"))

	got, err := store.Get(ctx, "000001")
	require.NoError(t, err)
	require.Equal(t, "corr-2", got)
}

func TestMemoryStoreClear(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "000001", "corr-1"))
	require.NoError(t, store.Clear(ctx))

	got, err := store.Get(ctx, "000001")
	require.NoError(t, err)
	require.Empty(t, got)
}
