package cart

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lixing-Zhang/boutique-store/backend/internal/cache"
)

func TestStore_RoundTripMemory(t *testing.T) {
	store := NewStore(cache.NewMemoryStore(), time.Hour)
	ctx := context.Background()

	c, err := store.Load(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, "abc", c.ID)
	assert.True(t, c.Empty())

	_, err = c.Add(Key{ProductID: "p1", Size: "M"}, 2, nil)
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, c))

	loaded, err := store.Load(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, 2, loaded.Quantity(Key{ProductID: "p1", Size: "M"}))
	assert.False(t, loaded.UpdatedAt.IsZero())

	require.NoError(t, store.Delete(ctx, "abc"))
	loaded, err = store.Load(ctx, "abc")
	require.NoError(t, err)
	assert.True(t, loaded.Empty())
}

func TestStore_UpdateConcurrent(t *testing.T) {
	store := NewStore(cache.NewMemoryStore(), time.Hour)
	ctx := context.Background()
	key := Key{ProductID: "p1"}

	const writers = 50
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.Update(ctx, "shared", func(c *Cart) error {
				_, err := c.Add(key, 1, nil)
				return err
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	c, err := store.Load(ctx, "shared")
	require.NoError(t, err)
	assert.Equal(t, writers, c.Quantity(key))
	assert.Equal(t, writers, c.TotalItems())
}

func TestStore_UpdateErrorSavesNothing(t *testing.T) {
	store := NewStore(cache.NewMemoryStore(), time.Hour)
	ctx := context.Background()
	boom := errors.New("boom")

	_, err := store.Update(ctx, "abc", func(c *Cart) error {
		_, _ = c.Add(Key{ProductID: "p1"}, 1, nil)
		return boom
	})
	assert.ErrorIs(t, err, boom)

	c, err := store.Load(ctx, "abc")
	require.NoError(t, err)
	assert.True(t, c.Empty())
}

func TestStore_Redis(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	store := NewStore(cache.NewRedisStore(client), 7*24*time.Hour)
	ctx := context.Background()

	c := New("xyz")
	_, err := c.Add(Key{ProductID: "p9", Color: "Beige"}, 1, nil)
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, c))

	assert.True(t, mr.Exists("cart:xyz"))
	assert.Equal(t, 7*24*time.Hour, mr.TTL("cart:xyz"))

	loaded, err := store.Load(ctx, "xyz")
	require.NoError(t, err)
	assert.Equal(t, 1, loaded.Quantity(Key{ProductID: "p9", Color: "Beige"}))
}
