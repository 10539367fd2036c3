package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

type cachedResult struct {
	Name  string  `json:"name"`
	Total float64 `json:"total"`
}

func newTestCache(t *testing.T, ttl time.Duration) (*miniredis.Miniredis, *redisCache) {
	t.Helper()

	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return server, NewRedisCache(client, ttl).(*redisCache)
}

func TestRedisCache_GetSet(t *testing.T) {
	ctx := context.Background()
	_, c := newTestCache(t, time.Minute)

	var miss cachedResult
	found, err := c.Get(ctx, "analytics:trends:v0:x", &miss)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if found {
		t.Error("Get() on empty cache should miss")
	}

	if err := c.Set(ctx, "analytics:trends:v0:x", cachedResult{Name: "Food", Total: 12.5}); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	var got cachedResult
	found, err = c.Get(ctx, "analytics:trends:v0:x", &got)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !found {
		t.Fatal("Get() should hit after Set()")
	}
	if got.Name != "Food" || got.Total != 12.5 {
		t.Errorf("Get() = %+v, want {Food 12.5}", got)
	}
}

func TestRedisCache_TTL(t *testing.T) {
	ctx := context.Background()
	server, c := newTestCache(t, time.Minute)

	if err := c.Set(ctx, "k", cachedResult{Name: "a"}); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if ttl := server.TTL("k"); ttl != time.Minute {
		t.Errorf("TTL = %v, want 1m", ttl)
	}

	server.FastForward(2 * time.Minute)

	var got cachedResult
	found, err := c.Get(ctx, "k", &got)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if found {
		t.Error("Get() should miss after the entry expired")
	}
}

func TestRedisCache_Version(t *testing.T) {
	ctx := context.Background()
	_, c := newTestCache(t, 0)

	version, err := c.Version(ctx)
	if err != nil {
		t.Fatalf("Version() error = %v", err)
	}
	if version != 0 {
		t.Errorf("Version() = %d, want 0", version)
	}

	for want := int64(1); want <= 2; want++ {
		got, err := c.BumpVersion(ctx)
		if err != nil {
			t.Fatalf("BumpVersion() error = %v", err)
		}
		if got != want {
			t.Errorf("BumpVersion() = %d, want %d", got, want)
		}
	}

	version, err = c.Version(ctx)
	if err != nil {
		t.Fatalf("Version() error = %v", err)
	}
	if version != 2 {
		t.Errorf("Version() = %d, want 2", version)
	}
}
