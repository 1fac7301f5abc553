package storage_test

import (
	"context"
	"testing"

	"canteen/canteen-svc/internal/storage"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestRedisStore(t *testing.T) {
	_, client := setupRedis(t)
	exerciseStore(t, storage.NewRedisStore(client, storage.DefaultRedisPrefix))
}

func TestRedisStore_PrefixesKeys(t *testing.T) {
	mr, client := setupRedis(t)
	store := storage.NewRedisStore(client, storage.DefaultRedisPrefix)

	require.NoError(t, store.Set(context.Background(), storage.KeyOrders, []sample{{Name: "x", Count: 1}}))

	assert.True(t, mr.Exists("canteen:orders"))
	raw, err := mr.Get("canteen:orders")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"name":"x","count":1}]`, raw)
}

func TestRedisStore_Unavailable(t *testing.T) {
	mr, client := setupRedis(t)
	store := storage.NewRedisStore(client, "")
	mr.Close()

	var got sample
	_, err := store.Get(context.Background(), "sample", &got)
	assert.Error(t, err)
	assert.Error(t, store.Set(context.Background(), "sample", got))
}
