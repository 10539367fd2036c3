package db

import (
	"testing"

	"github.com/alicebob/miniredis/v2"

	"github.com/finance-tracker/insights/config"
)

func TestNewRedisClient(t *testing.T) {
	server := miniredis.RunT(t)

	client, err := NewRedisClient(&config.RedisConfig{URL: "redis://" + server.Addr() + "/0", DB: 2})
	if err != nil {
		t.Fatalf("NewRedisClient() error = %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })

	if client.Options().DB != 2 {
		t.Errorf("DB = %d, want 2", client.Options().DB)
	}
	if !RedisHealthChecker(client)() {
		t.Error("health checker reported redis as down")
	}

	server.Close()
	if RedisHealthChecker(client)() {
		t.Error("health checker reported a closed server as up")
	}
}

func TestNewRedisClient_InvalidURL(t *testing.T) {
	if _, err := NewRedisClient(&config.RedisConfig{URL: "http://localhost"}); err == nil {
		t.Error("expected error for a non-redis url")
	}
}
