// Package main is the entry point for the Finance Insights API server.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/finance-tracker/insights/config"
	"github.com/finance-tracker/insights/internal/application/adapter"
	"github.com/finance-tracker/insights/internal/infra/db"
	"github.com/finance-tracker/insights/internal/infra/dependency"
	"github.com/finance-tracker/insights/internal/integration/email"
)

func main() {
	// Load .env file if it exists (development only)
	_ = godotenv.Load()

	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg := config.Load()

	slog.Info("Starting Finance Insights API",
		"environment", cfg.Server.Environment,
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"timezone", cfg.Analytics.Location().String(),
	)

	// Initialize database connection
	database, err := db.NewConnection(&cfg.Database)
	if err != nil {
		slog.Error("Database connection failed", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := database.Close(); err != nil {
			slog.Error("Failed to close database connection", "error", err)
		}
	}()

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(); err != nil {
			slog.Error("Failed to run database migrations", "error", err)
			os.Exit(1)
		}
		slog.Info("Database migrations completed successfully")
	}

	opts := dependency.Options{}

	// Redis is optional: analytics are computed on every request without it
	if cfg.Redis.Enabled {
		client, err := db.NewRedisClient(&cfg.Redis)
		if err != nil {
			slog.Warn("Redis connection failed, running without cache", "error", err)
		} else {
			opts.Redis = client
			defer closeRedis(client)
		}
	}

	if cfg.Email.Enabled {
		sender, err := newEmailSender(&cfg.Email)
		if err != nil {
			slog.Error("Failed to create email sender", "error", err)
			os.Exit(1)
		}
		opts.EmailSender = sender
	}

	injector, err := dependency.NewInjector(cfg, database.DB(), opts)
	if err != nil {
		slog.Error("Failed to wire dependencies", "error", err)
		os.Exit(1)
	}

	engine := injector.Router.Setup(cfg.Server.Environment)

	// Periodically evict expired rate limit windows
	done := make(chan struct{})
	if injector.RateLimiter != nil {
		injector.RateLimiter.StartCleanup(done, cfg.RateLimit.Window)
	}

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in a goroutine
	go func() {
		slog.Info("Server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down server...")
	close(done)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Server exited properly")
}

func newEmailSender(cfg *config.EmailConfig) (adapter.EmailSender, error) {
	if cfg.ResendAPIKey == "" {
		slog.Warn("RESEND_API_KEY not set, budget alert emails are logged only")
		return email.NewMockEmailSender(), nil
	}
	if cfg.ResendBaseURL != "" {
		return email.NewResendClientWithBaseURL(cfg.ResendAPIKey, cfg.FromName, cfg.FromEmail, cfg.ResendBaseURL)
	}
	return email.NewResendClient(cfg.ResendAPIKey, cfg.FromName, cfg.FromEmail), nil
}

func closeRedis(client *redis.Client) {
	if err := client.Close(); err != nil {
		slog.Error("Failed to close redis connection", "error", err)
	}
}
