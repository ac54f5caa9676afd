package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_SetAndGet(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	store.Set(ctx, "k", []byte("v"))

	data, ok := store.Get(ctx, "k")
	require.True(t, ok)
	assert.Equal(t, []byte("v"), data)
}

func TestMemoryStore_MissingKey(t *testing.T) {
	store := NewMemoryStore()

	_, ok := store.Get(context.Background(), "missing")
	assert.False(t, ok)
}

func TestMemoryStore_EntryExpires(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	store := NewMemoryStore(
		WithTTL(5*time.Minute),
		WithClock(func() time.Time { return now }),
	)
	ctx := context.Background()

	store.Set(ctx, "k", []byte("v"))

	now = now.Add(4 * time.Minute)
	_, ok := store.Get(ctx, "k")
	assert.True(t, ok)

	now = now.Add(2 * time.Minute)
	_, ok = store.Get(ctx, "k")
	assert.False(t, ok)
	assert.Zero(t, store.Len(), "expired entry should be evicted on read")
}

func TestMemoryStore_SetOverwrites(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	store.Set(ctx, "k", []byte("old"))
	store.Set(ctx, "k", []byte("new"))

	data, ok := store.Get(ctx, "k")
	require.True(t, ok)
	assert.Equal(t, []byte("new"), data)
}

func TestMemoryStore_Delete(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	store.Set(ctx, "k", []byte("v"))
	store.Delete(ctx, "k")

	_, ok := store.Get(ctx, "k")
	assert.False(t, ok)
}

func TestMemoryStore_Stats(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	store.Set(ctx, "k", []byte("v"))
	store.Get(ctx, "k")
	store.Get(ctx, "k")
	store.Get(ctx, "other")

	hits, misses := store.Stats()
	assert.Equal(t, int64(2), hits)
	assert.Equal(t, int64(1), misses)
}

func TestKey_Deterministic(t *testing.T) {
	a := Key("fakestore", map[string]string{"category": "electronics", "limit": "8"})
	b := Key("fakestore", map[string]string{"limit": "8", "category": "electronics"})

	assert.Equal(t, a, b)
	assert.Equal(t, "fakestore_category=electronics_limit=8", a)
}

func TestKey_NoParams(t *testing.T) {
	assert.Equal(t, "dummyjson", Key("dummyjson", nil))
}
