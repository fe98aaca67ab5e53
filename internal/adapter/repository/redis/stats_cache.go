package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// StatsCache implements usecase.Cache using Redis. Lookups are
// best-effort: a miss and an error look the same to callers, which fall
// through to recomputation.
type StatsCache struct {
	client *redis.Client
	prefix string
}

// NewStatsCache creates a new StatsCache.
func NewStatsCache(client *redis.Client) *StatsCache {
	return &StatsCache{
		client: client,
		prefix: "wallet:",
	}
}

// Get retrieves a value by key. A missing key returns an empty string and
// no error.
func (c *StatsCache) Get(ctx context.Context, key string) (string, error) {
	val, err := c.client.Get(ctx, c.prefix+key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}

		return "", err
	}

	return val, nil
}

// Set stores a value with TTL.
func (c *StatsCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return c.client.Set(ctx, c.prefix+key, value, ttl).Err()
}

// Delete removes a key.
func (c *StatsCache) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, c.prefix+key).Err()
}
