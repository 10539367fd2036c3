// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/insights/internal/integration/entrypoint/controller"
	"github.com/finance-tracker/insights/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine                *gin.Engine
	healthController      *controller.HealthController
	analyticsController   *controller.AnalyticsController
	transactionController *controller.TransactionController
	budgetController      *controller.BudgetController
	rateLimiter           *middleware.RateLimiter
}

// NewRouter creates a new router instance with all dependencies.
// A nil rate limiter leaves the API unthrottled.
func NewRouter(
	healthController *controller.HealthController,
	analyticsController *controller.AnalyticsController,
	transactionController *controller.TransactionController,
	budgetController *controller.BudgetController,
	rateLimiter *middleware.RateLimiter,
) *Router {
	return &Router{
		healthController:      healthController,
		analyticsController:   analyticsController,
		transactionController: transactionController,
		budgetController:      budgetController,
		rateLimiter:           rateLimiter,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	// Set Gin mode based on environment
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	// Create router with default middleware (logger and recovery)
	r.engine = gin.Default()

	// Setup routes
	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupHealthRoutes configures health check endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
}

// setupAPIRoutes configures the main API routes.
func (r *Router) setupAPIRoutes() {
	// API v1 group
	v1 := r.engine.Group("/api/v1")
	if r.rateLimiter != nil {
		v1.Use(r.rateLimiter.Middleware())
	}

	// Analytics routes
	if r.analyticsController != nil {
		analytics := v1.Group("/analytics")
		{
			analytics.GET("/trends", r.analyticsController.GetTrends)
			analytics.GET("/categories", r.analyticsController.GetCategories)
			analytics.GET("/summary", r.analyticsController.GetSummary)
			analytics.GET("/alerts", r.analyticsController.GetAlerts)
			analytics.POST("/alerts/notify", r.analyticsController.NotifyAlerts)
			analytics.GET("/insights", r.analyticsController.GetInsights)
			analytics.GET("/data-range", r.analyticsController.GetDataRange)
		}
	}

	// Transaction routes
	if r.transactionController != nil {
		transactions := v1.Group("/transactions")
		{
			transactions.GET("", r.transactionController.List)
			transactions.POST("/import", r.transactionController.Import)
			transactions.GET("/:id", r.transactionController.Get)
		}
	}

	// Budget routes
	if r.budgetController != nil {
		budgets := v1.Group("/budgets")
		{
			budgets.GET("", r.budgetController.List)
			budgets.PUT("", r.budgetController.Upsert)
			budgets.DELETE("/:category", r.budgetController.Delete)
		}
	}
}
