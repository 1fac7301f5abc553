package storage_test

import (
	"context"
	"testing"

	"canteen/canteen-svc/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func exerciseStore(t *testing.T, store storage.KeyValueStore) {
	t.Helper()
	ctx := context.Background()

	var got sample
	found, err := store.Get(ctx, "sample", &got)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, store.Set(ctx, "sample", sample{Name: "dosa", Count: 2}))
	found, err = store.Get(ctx, "sample", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, sample{Name: "dosa", Count: 2}, got)

	require.NoError(t, store.Set(ctx, "sample", sample{Name: "idli", Count: 3}))
	found, err = store.Get(ctx, "sample", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "idli", got.Name)

	require.NoError(t, store.Remove(ctx, "sample"))
	found, err = store.Get(ctx, "sample", &got)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, store.Remove(ctx, "never-set"))
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, storage.NewMemoryStore())
}

func TestMemoryStore_ValuesAreCopied(t *testing.T) {
	store := storage.NewMemoryStore()
	ctx := context.Background()
	values := []sample{{Name: "a"}}

	require.NoError(t, store.Set(ctx, "list", values))
	values[0].Name = "changed"

	var got []sample
	_, err := store.Get(ctx, "list", &got)
	require.NoError(t, err)
	assert.Equal(t, "a", got[0].Name)
}
