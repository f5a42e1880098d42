package kvstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	_, ok, err := store.Get(ctx, "appointments")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Set(ctx, "appointments", `[]`))

	val, ok, err := store.Get(ctx, "appointments")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[]`, val)
}

func TestMemoryStoreLastWriteWins(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	require.NoError(t, store.Set(ctx, "doctors", "first"))
	require.NoError(t, store.Set(ctx, "doctors", "second"))

	val, ok, err := store.Get(ctx, "doctors")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "second", val)
}

func TestMemoryStoreRemoveMany(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	require.NoError(t, store.Set(ctx, "a", "1"))
	require.NoError(t, store.Set(ctx, "b", "2"))

	// Missing keys are not an error.
	require.NoError(t, store.RemoveMany(ctx, []string{"a", "b", "missing"}))

	_, ok, err := store.Get(ctx, "a")
	require.NoError(t, err)
	assert.False(t, ok)
	_, ok, err = store.Get(ctx, "b")
	require.NoError(t, err)
	assert.False(t, ok)
}
