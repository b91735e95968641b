package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func newRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisStore(client, "test:"), mr
}

func TestRedisStore(t *testing.T) {
	store, mr := newRedisStore(t)
	ctx := context.Background()

	t.Run("SetAndGet", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, "a", payload{Name: "x", Count: 2}, time.Hour))
		assert.True(t, mr.Exists("test:a"))

		var got payload
		ok, err := store.Get(ctx, "a", &got)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, payload{Name: "x", Count: 2}, got)
	})

	t.Run("Missing", func(t *testing.T) {
		var got payload
		ok, err := store.Get(ctx, "nope", &got)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("Expiry", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, "short", payload{Name: "y"}, time.Minute))
		mr.FastForward(2 * time.Minute)

		var got payload
		ok, err := store.Get(ctx, "short", &got)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, "gone", payload{}, time.Hour))
		require.NoError(t, store.Delete(ctx, "gone"))
		assert.False(t, mr.Exists("test:gone"))
	})

	t.Run("CorruptValue", func(t *testing.T) {
		require.NoError(t, mr.Set("test:bad", "{not json"))
		var got payload
		_, err := store.Get(ctx, "bad", &got)
		assert.Error(t, err)
	})
}

func TestRedisStoreUnavailable(t *testing.T) {
	store, mr := newRedisStore(t)
	mr.Close()

	err := store.Set(context.Background(), "a", payload{}, time.Minute)
	assert.Error(t, err)
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()
	now := time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "a", payload{Name: "x"}, time.Minute))
	require.NoError(t, store.Set(ctx, "forever", payload{Name: "z"}, 0))

	var got payload
	ok, err := store.Get(ctx, "a", &got)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "x", got.Name)

	got.Name = "mutated"
	var again payload
	_, _ = store.Get(ctx, "a", &again)
	assert.Equal(t, "x", again.Name)

	now = now.Add(2 * time.Minute)
	ok, err = store.Get(ctx, "a", &got)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, _ = store.Get(ctx, "forever", &got)
	assert.True(t, ok)

	require.NoError(t, store.Delete(ctx, "forever"))
	ok, _ = store.Get(ctx, "forever", &got)
	assert.False(t, ok)
}

func TestMemoryStoreSweepsAbandonedKeys(t *testing.T) {
	store := NewMemoryStore()
	now := time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "wizard:1", payload{Name: "a"}, time.Minute))
	require.NoError(t, store.Set(ctx, "wizard:2", payload{Name: "b"}, time.Hour))
	require.NoError(t, store.Set(ctx, "forever", payload{Name: "c"}, 0))

	now = now.Add(30 * time.Second)
	require.NoError(t, store.Set(ctx, "wizard:3", payload{Name: "d"}, time.Second))
	assert.Len(t, store.entries, 4)

	now = now.Add(2 * time.Minute)
	require.NoError(t, store.Set(ctx, "wizard:4", payload{Name: "e"}, time.Hour))

	assert.Len(t, store.entries, 3)
	assert.NotContains(t, store.entries, "wizard:1")
	assert.NotContains(t, store.entries, "wizard:3")
	assert.Contains(t, store.entries, "forever")
}
