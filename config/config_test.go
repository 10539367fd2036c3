package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Analytics.DefaultRangeDays != 30 {
		t.Errorf("Analytics.DefaultRangeDays = %d, want 30", cfg.Analytics.DefaultRangeDays)
	}
	if cfg.Email.Enabled {
		t.Error("Email.Enabled should default to false")
	}
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DATABASE_URL", "sqlite://file::memory:")
	t.Setenv("REDIS_ENABLED", "false")
	t.Setenv("ANALYTICS_CACHE_TTL", "90s")
	t.Setenv("ANALYTICS_TIMEZONE", "America/Sao_Paulo")
	t.Setenv("RATE_LIMIT_MAX_REQUESTS", "not-a-number")

	cfg := Load()

	tests := []struct {
		name string
		got  any
		want any
	}{
		{name: "port", got: cfg.Server.Port, want: 9090},
		{name: "database url", got: cfg.Database.URL, want: "sqlite://file::memory:"},
		{name: "redis enabled", got: cfg.Redis.Enabled, want: false},
		{name: "cache ttl", got: cfg.Analytics.CacheTTL, want: 90 * time.Second},
		{name: "invalid int falls back", got: cfg.RateLimit.MaxRequests, want: 120},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}
}

func TestAnalyticsConfig_Location(t *testing.T) {
	tests := []struct {
		name     string
		timezone string
		want     string
	}{
		{name: "utc", timezone: "UTC", want: "UTC"},
		{name: "named zone", timezone: "Europe/Lisbon", want: "Europe/Lisbon"},
		{name: "unknown zone falls back", timezone: "Mars/Olympus", want: "UTC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AnalyticsConfig{Timezone: tt.timezone}.Location().String()
			if got != tt.want {
				t.Errorf("Location() = %s, want %s", got, tt.want)
			}
		})
	}
}
