// Package cache implements the analytics result cache on top of Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/finance-tracker/insights/internal/application/adapter"
)

// versionKey holds the transaction-set version embedded in every result key.
const versionKey = "analytics:version"

// redisCache implements the adapter.AnalyticsCache interface.
type redisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache creates a new Redis-backed analytics cache.
// A non-positive ttl keeps entries until the version changes.
func NewRedisCache(client *redis.Client, ttl time.Duration) adapter.AnalyticsCache {
	return &redisCache{
		client: client,
		ttl:    ttl,
	}
}

// Get decodes the cached value for key into dest.
func (c *redisCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read cache key %s: %w", key, err)
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		return false, fmt.Errorf("failed to decode cache key %s: %w", key, err)
	}
	return true, nil
}

// Set stores value under key as JSON.
func (c *redisCache) Set(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode cache value: %w", err)
	}

	ttl := c.ttl
	if ttl < 0 {
		ttl = 0
	}
	if err := c.client.Set(ctx, key, raw, ttl).Err(); err != nil {
		return fmt.Errorf("failed to write cache key %s: %w", key, err)
	}
	return nil
}

// Version returns the current transaction-set version, 0 when never bumped.
func (c *redisCache) Version(ctx context.Context) (int64, error) {
	version, err := c.client.Get(ctx, versionKey).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read cache version: %w", err)
	}
	return version, nil
}

// BumpVersion advances the version so previously cached results are no longer addressed.
func (c *redisCache) BumpVersion(ctx context.Context) (int64, error) {
	version, err := c.client.Incr(ctx, versionKey).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to bump cache version: %w", err)
	}
	return version, nil
}
