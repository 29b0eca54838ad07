package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// setupTestRedis creates a miniredis server and returns a RedisStore backed by it
func setupTestRedis(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisStore(client), mr
}

func TestRedisStore_SetGet(t *testing.T) {
	store, mr := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "cart:abc", sample{Name: "dress", Count: 2}, time.Minute))
	assert.True(t, mr.Exists("cart:abc"))
	assert.Equal(t, time.Minute, mr.TTL("cart:abc"))

	var got sample
	require.NoError(t, store.Get(ctx, "cart:abc", &got))
	assert.Equal(t, sample{Name: "dress", Count: 2}, got)
}

func TestRedisStore_Miss(t *testing.T) {
	store, _ := setupTestRedis(t)

	var got sample
	err := store.Get(context.Background(), "missing", &got)
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestRedisStore_InvalidJSON(t *testing.T) {
	store, mr := setupTestRedis(t)
	require.NoError(t, mr.Set("broken", "{not json"))

	var got sample
	err := store.Get(context.Background(), "broken", &got)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrCacheMiss)
}

func TestRedisStore_Expiry(t *testing.T) {
	store, mr := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "settings:all", sample{Name: "x"}, time.Second))
	mr.FastForward(2 * time.Second)

	var got sample
	assert.ErrorIs(t, store.Get(ctx, "settings:all", &got), ErrCacheMiss)
}

func TestRedisStore_Delete(t *testing.T) {
	store, mr := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "k", sample{}, 0))
	require.NoError(t, store.Delete(ctx, "k"))
	assert.False(t, mr.Exists("k"))
}

func TestRedisStore_ServerDown(t *testing.T) {
	store, mr := setupTestRedis(t)
	mr.Close()

	var got sample
	err := store.Get(context.Background(), "k", &got)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrCacheMiss)
}
