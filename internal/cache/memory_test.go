package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_SetGetDelete(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "k", sample{Name: "shirt", Count: 1}, 0))

	var got sample
	require.NoError(t, store.Get(ctx, "k", &got))
	assert.Equal(t, "shirt", got.Name)

	require.NoError(t, store.Delete(ctx, "k"))
	assert.ErrorIs(t, store.Get(ctx, "k", &got), ErrCacheMiss)
}

func TestMemoryStore_Expiry(t *testing.T) {
	store := NewMemoryStore()
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "k", sample{Name: "a"}, time.Minute))

	var got sample
	require.NoError(t, store.Get(ctx, "k", &got))

	now = now.Add(time.Minute)
	assert.ErrorIs(t, store.Get(ctx, "k", &got), ErrCacheMiss)
}

func TestMemoryStore_ValuesAreCopied(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	in := []string{"S", "M"}
	require.NoError(t, store.Set(ctx, "k", in, 0))
	in[0] = "XL"

	var out []string
	require.NoError(t, store.Get(ctx, "k", &out))
	assert.Equal(t, []string{"S", "M"}, out)
}
