package inventory

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) *Cache {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewCache(client, time.Minute)
}

func TestCacheFetchLevelsPopulatesAndServes(t *testing.T) {
	cache := newTestCache(t)
	calls := 0
	loader := func(context.Context) ([]StockLevel, error) {
		calls++
		return []StockLevel{{ProductID: 1, Quantity: 5}}, nil
	}

	first, err := cache.FetchLevels(context.Background(), loader)
	require.NoError(t, err)
	second, err := cache.FetchLevels(context.Background(), loader)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, calls, "second fetch should be served from cache")
}

func TestCacheInvalidateForcesReload(t *testing.T) {
	cache := newTestCache(t)
	calls := 0
	loader := func(context.Context) ([]StockLevel, error) {
		calls++
		return []StockLevel{{ProductID: 1, Quantity: int64(calls)}}, nil
	}

	_, err := cache.FetchLevels(context.Background(), loader)
	require.NoError(t, err)
	require.NoError(t, cache.Invalidate(context.Background()))

	levels, err := cache.FetchLevels(context.Background(), loader)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.Equal(t, int64(2), levels[0].Quantity)
}

func TestNilCachePassesThrough(t *testing.T) {
	var cache *Cache
	levels, err := cache.FetchLevels(context.Background(), func(context.Context) ([]StockLevel, error) {
		return []StockLevel{{ProductID: 9, Quantity: 1}}, nil
	})
	require.NoError(t, err)
	assert.Len(t, levels, 1)
	assert.NoError(t, cache.Invalidate(context.Background()))
}
