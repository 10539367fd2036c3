package cache

import (
	"context"
	"log/slog"
	"sync"

	"github.com/finance-tracker/insights/internal/application/adapter"
)

// guardedCache stops serving results after a failed invalidation.
// While stale, reads miss and writes are dropped; every read retries the
// version bump and the cache recovers once one succeeds.
type guardedCache struct {
	next adapter.AnalyticsCache

	mu    sync.Mutex
	stale bool
}

// NewGuardedCache wraps next so a failed BumpVersion never leaves old results addressable.
func NewGuardedCache(next adapter.AnalyticsCache) adapter.AnalyticsCache {
	return &guardedCache{next: next}
}

func (c *guardedCache) isStale() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stale
}

func (c *guardedCache) setStale(stale bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stale = stale
}

// Get misses while stale. The key was built from the old version, so a
// successful retry still reports a miss.
func (c *guardedCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	if c.isStale() {
		c.retryBump(ctx)
		return false, nil
	}
	return c.next.Get(ctx, key, dest)
}

func (c *guardedCache) Set(ctx context.Context, key string, value any) error {
	if c.isStale() {
		return nil
	}
	return c.next.Set(ctx, key, value)
}

func (c *guardedCache) Version(ctx context.Context) (int64, error) {
	return c.next.Version(ctx)
}

// BumpVersion marks the cache stale when the bump fails. The failure is
// absorbed because reads are bypassed until a later bump succeeds.
func (c *guardedCache) BumpVersion(ctx context.Context) (int64, error) {
	version, err := c.next.BumpVersion(ctx)
	if err != nil {
		c.setStale(true)
		slog.Warn("Analytics cache invalidation failed, bypassing cache until it recovers", "error", err)
		return 0, nil
	}
	c.setStale(false)
	return version, nil
}

func (c *guardedCache) retryBump(ctx context.Context) {
	if _, err := c.next.BumpVersion(ctx); err != nil {
		slog.Debug("Analytics cache still stale", "error", err)
		return
	}
	c.setStale(false)
	slog.Info("Analytics cache invalidation recovered")
}
