// Package dependency provides dependency injection for the application.
package dependency

import (
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/finance-tracker/insights/config"
	"github.com/finance-tracker/insights/internal/application/adapter"
	"github.com/finance-tracker/insights/internal/application/usecase/analytics"
	"github.com/finance-tracker/insights/internal/application/usecase/budget"
	"github.com/finance-tracker/insights/internal/application/usecase/transaction"
	infradb "github.com/finance-tracker/insights/internal/infra/db"
	"github.com/finance-tracker/insights/internal/infra/server/router"
	"github.com/finance-tracker/insights/internal/integration/cache"
	"github.com/finance-tracker/insights/internal/integration/email"
	"github.com/finance-tracker/insights/internal/integration/email/templates"
	"github.com/finance-tracker/insights/internal/integration/entrypoint/controller"
	"github.com/finance-tracker/insights/internal/integration/entrypoint/middleware"
	"github.com/finance-tracker/insights/internal/integration/persistence"
)

// Options carries the optional collaborators of the injector.
type Options struct {
	// Redis enables result caching when non-nil.
	Redis *redis.Client

	// EmailSender enables budget alert digests when non-nil.
	EmailSender adapter.EmailSender

	// Clock overrides the system clock, mainly for tests.
	Clock analytics.Clock
}

// Injector holds all application dependencies.
type Injector struct {
	Config      *config.Config
	DB          *gorm.DB
	Router      *router.Router
	RateLimiter *middleware.RateLimiter
}

// NewInjector creates a new dependency injector with all dependencies wired.
func NewInjector(cfg *config.Config, db *gorm.DB, opts Options) (*Injector, error) {
	clock := opts.Clock
	if clock == nil {
		clock = analytics.SystemClock(cfg.Analytics.Location())
	}

	// Create repositories
	transactionRepo := persistence.NewTransactionRepository(db)
	budgetRepo := persistence.NewBudgetRepository(db)

	// A nil interface value disables caching; a typed nil would not.
	var analyticsCache adapter.AnalyticsCache
	var cacheHealthChecker func() bool
	if opts.Redis != nil {
		analyticsCache = cache.NewGuardedCache(cache.NewRedisCache(opts.Redis, cfg.Analytics.CacheTTL))
		cacheHealthChecker = infradb.RedisHealthChecker(opts.Redis)
	}

	var notifier adapter.AlertNotifier
	if opts.EmailSender != nil {
		renderer, err := templates.NewRenderer()
		if err != nil {
			return nil, err
		}
		notifier = email.NewNotifier(opts.EmailSender, renderer, email.NotifierConfig{
			Recipient:     cfg.Email.AlertRecipient,
			RecipientName: cfg.Email.RecipientName,
			MaxAttempts:   cfg.Email.MaxAttempts,
			RetryBackoff:  cfg.Email.RetryBackoff,
		})
	} else {
		slog.Info("Budget alert emails disabled")
	}

	// Create analytics use cases
	getTrendsUseCase := analytics.NewGetTrendsUseCase(transactionRepo, analyticsCache, clock)
	getCategoriesUseCase := analytics.NewGetCategoriesUseCase(transactionRepo, analyticsCache, clock)
	getSummaryUseCase := analytics.NewGetSummaryUseCase(transactionRepo, analyticsCache, clock)
	getAlertsUseCase := analytics.NewGetAlertsUseCase(transactionRepo, budgetRepo, analyticsCache, clock)
	getInsightsUseCase := analytics.NewGetInsightsUseCase(transactionRepo, budgetRepo, analyticsCache, clock)
	notifyBudgetAlertsUseCase := analytics.NewNotifyBudgetAlertsUseCase(getAlertsUseCase, notifier)
	getDataRangeUseCase := analytics.NewGetDataRangeUseCase(transactionRepo)

	// Create transaction use cases
	importTransactionsUseCase := transaction.NewImportTransactionsUseCase(transactionRepo, analyticsCache)
	listTransactionsUseCase := transaction.NewListTransactionsUseCase(transactionRepo, clock)
	getTransactionUseCase := transaction.NewGetTransactionUseCase(transactionRepo)

	// Create budget use cases
	listBudgetsUseCase := budget.NewListBudgetsUseCase(budgetRepo)
	upsertBudgetUseCase := budget.NewUpsertBudgetUseCase(budgetRepo, analyticsCache)
	deleteBudgetUseCase := budget.NewDeleteBudgetUseCase(budgetRepo, analyticsCache)

	// Create controllers
	healthController := controller.NewHealthController(func() bool {
		sqlDB, err := db.DB()
		if err != nil {
			return false
		}
		return sqlDB.Ping() == nil
	}, cacheHealthChecker)

	analyticsController := controller.NewAnalyticsController(
		getTrendsUseCase,
		getCategoriesUseCase,
		getSummaryUseCase,
		getAlertsUseCase,
		getInsightsUseCase,
		notifyBudgetAlertsUseCase,
		getDataRangeUseCase,
	)

	transactionController := controller.NewTransactionController(
		importTransactionsUseCase,
		listTransactionsUseCase,
		getTransactionUseCase,
	)

	budgetController := controller.NewBudgetController(
		listBudgetsUseCase,
		upsertBudgetUseCase,
		deleteBudgetUseCase,
	)

	// Create middleware
	// Use higher rate limits for E2E/test environments to prevent flaky tests
	var rateLimiter *middleware.RateLimiter
	switch {
	case !cfg.RateLimit.Enabled:
	case cfg.Server.Environment == "e2e" || cfg.Server.Environment == "test":
		rateLimiter = middleware.NewRateLimiterWithConfig(10000, 1*time.Minute)
	default:
		rateLimiter = middleware.NewRateLimiterWithConfig(cfg.RateLimit.MaxRequests, cfg.RateLimit.Window)
	}

	// Create router
	r := router.NewRouter(healthController, analyticsController, transactionController, budgetController, rateLimiter)

	return &Injector{
		Config:      cfg,
		DB:          db,
		Router:      r,
		RateLimiter: rateLimiter,
	}, nil
}
