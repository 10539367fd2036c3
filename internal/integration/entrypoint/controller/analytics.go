package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/insights/internal/application/usecase/analytics"
	"github.com/finance-tracker/insights/internal/integration/entrypoint/dto"
)

// AnalyticsController handles analytics endpoints.
type AnalyticsController struct {
	getTrendsUseCase          *analytics.GetTrendsUseCase
	getCategoriesUseCase      *analytics.GetCategoriesUseCase
	getSummaryUseCase         *analytics.GetSummaryUseCase
	getAlertsUseCase          *analytics.GetAlertsUseCase
	getInsightsUseCase        *analytics.GetInsightsUseCase
	notifyBudgetAlertsUseCase *analytics.NotifyBudgetAlertsUseCase
	getDataRangeUseCase       *analytics.GetDataRangeUseCase
}

// NewAnalyticsController creates a new analytics controller instance.
func NewAnalyticsController(
	getTrendsUseCase *analytics.GetTrendsUseCase,
	getCategoriesUseCase *analytics.GetCategoriesUseCase,
	getSummaryUseCase *analytics.GetSummaryUseCase,
	getAlertsUseCase *analytics.GetAlertsUseCase,
	getInsightsUseCase *analytics.GetInsightsUseCase,
	notifyBudgetAlertsUseCase *analytics.NotifyBudgetAlertsUseCase,
	getDataRangeUseCase *analytics.GetDataRangeUseCase,
) *AnalyticsController {
	return &AnalyticsController{
		getTrendsUseCase:          getTrendsUseCase,
		getCategoriesUseCase:      getCategoriesUseCase,
		getSummaryUseCase:         getSummaryUseCase,
		getAlertsUseCase:          getAlertsUseCase,
		getInsightsUseCase:        getInsightsUseCase,
		notifyBudgetAlertsUseCase: notifyBudgetAlertsUseCase,
		getDataRangeUseCase:       getDataRangeUseCase,
	}
}

// GetTrends handles GET /analytics/trends requests.
func (c *AnalyticsController) GetTrends(ctx *gin.Context) {
	filter, err := parseFilterSpec(ctx)
	if err != nil {
		handleError(ctx, err)
		return
	}

	input := analytics.GetTrendsInput{
		Filter:      filter,
		Granularity: analytics.Granularity(ctx.Query("granularity")),
	}

	output, err := c.getTrendsUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTrendsResponse(output))
}

// GetCategories handles GET /analytics/categories requests.
// The optional "category" parameter restricts the breakdown to one category.
func (c *AnalyticsController) GetCategories(ctx *gin.Context) {
	filter, err := parseFilterSpec(ctx)
	if err != nil {
		handleError(ctx, err)
		return
	}

	input := analytics.GetCategoriesInput{
		Filter:           filter,
		SelectedCategory: ctx.Query("category"),
	}

	output, err := c.getCategoriesUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCategoriesResponse(output))
}

// GetSummary handles GET /analytics/summary requests.
func (c *AnalyticsController) GetSummary(ctx *gin.Context) {
	filter, err := parseFilterSpec(ctx)
	if err != nil {
		handleError(ctx, err)
		return
	}

	compare, err := boolQuery(ctx, "compareWithPrevious", "compare_with_previous")
	if err != nil {
		handleError(ctx, err)
		return
	}

	output, err := c.getSummaryUseCase.Execute(ctx.Request.Context(), analytics.GetSummaryInput{
		Filter:              filter,
		CompareWithPrevious: compare,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSummaryResponse(output))
}

// GetAlerts handles GET /analytics/alerts requests.
func (c *AnalyticsController) GetAlerts(ctx *gin.Context) {
	filter, err := parseFilterSpec(ctx)
	if err != nil {
		handleError(ctx, err)
		return
	}

	output, err := c.getAlertsUseCase.Execute(ctx.Request.Context(), analytics.GetAlertsInput{Filter: filter})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToAlertsResponse(output))
}

// GetInsights handles GET /analytics/insights requests.
func (c *AnalyticsController) GetInsights(ctx *gin.Context) {
	filter, err := parseFilterSpec(ctx)
	if err != nil {
		handleError(ctx, err)
		return
	}

	output, err := c.getInsightsUseCase.Execute(ctx.Request.Context(), analytics.GetInsightsInput{Filter: filter})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToInsightsResponse(output))
}

// NotifyAlerts handles POST /analytics/alerts/notify requests.
func (c *AnalyticsController) NotifyAlerts(ctx *gin.Context) {
	filter, err := parseFilterSpec(ctx)
	if err != nil {
		handleError(ctx, err)
		return
	}

	output, err := c.notifyBudgetAlertsUseCase.Execute(ctx.Request.Context(), analytics.NotifyBudgetAlertsInput{Filter: filter})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToNotifyAlertsResponse(output))
}

// GetDataRange handles GET /analytics/data-range requests.
func (c *AnalyticsController) GetDataRange(ctx *gin.Context) {
	output, err := c.getDataRangeUseCase.Execute(ctx.Request.Context())
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToDataRangeResponse(output))
}
