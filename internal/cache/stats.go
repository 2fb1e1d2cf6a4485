package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
)

const statsTTL = 30 * time.Second

// StatsCache is a read-through cache for the statistics aggregate.
// A nil *StatsCache is valid and disables caching, so callers never
// branch on configuration.
type StatsCache struct {
	rdb *redis.Client
}

func NewStatsCache(addr string) *StatsCache {
	if addr == "" {
		return nil
	}
	return &StatsCache{
		rdb: redis.NewClient(&redis.Options{Addr: addr}),
	}
}

func (c *StatsCache) Get(ctx context.Context, key string, dest any) bool {
	if c == nil {
		return false
	}
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(raw, dest) == nil
}

func (c *StatsCache) Set(ctx context.Context, key string, v any) {
	if c == nil {
		return
	}
	if raw, err := json.Marshal(v); err == nil {
		// cache is best-effort, errors are ignored
		c.rdb.Set(ctx, key, raw, statsTTL)
	}
}
