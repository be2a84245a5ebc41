package inventory

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const levelsKey = "inventory:levels"

// Cache keeps the full stock-level snapshot in Redis so dashboard lookups do
// not hit Postgres on every poll. A nil cache degrades to loader passthrough.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCache instantiates the cache helper.
func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

// FetchLevels loads the cached snapshot or populates it using the loader.
func (c *Cache) FetchLevels(ctx context.Context, loader func(context.Context) ([]StockLevel, error)) ([]StockLevel, error) {
	if loader == nil {
		return nil, errors.New("inventory: cache loader required")
	}
	if c == nil || c.client == nil {
		return loader(ctx)
	}

	payload, err := c.client.Get(ctx, levelsKey).Bytes()
	if err == nil {
		var levels []StockLevel
		if err := json.Unmarshal(payload, &levels); err == nil {
			return levels, nil
		}
		// Corrupt payload falls through to the loader.
	} else if !errors.Is(err, redis.Nil) {
		return nil, err
	}

	levels, err := loader(ctx)
	if err != nil {
		return nil, err
	}
	raw, err := json.Marshal(levels)
	if err != nil {
		return nil, err
	}
	if err := c.client.Set(ctx, levelsKey, raw, c.ttl).Err(); err != nil {
		return nil, err
	}
	return levels, nil
}

// Invalidate drops the snapshot after a stock adjustment.
func (c *Cache) Invalidate(ctx context.Context) error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Del(ctx, levelsKey).Err()
}
