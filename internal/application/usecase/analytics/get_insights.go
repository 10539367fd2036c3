package analytics

import (
	"context"
	"fmt"

	"github.com/finance-tracker/insights/internal/application/adapter"
	"github.com/finance-tracker/insights/internal/domain/valueobject"
)

// insightLookbackDays covers both month-over-month windows ending at the range end.
const insightLookbackDays = 2 * trendWindowDays

// GetInsightsInput represents the input for generating insights.
type GetInsightsInput struct {
	Filter valueobject.FilterSpec
}

// GetInsightsOutput represents the generated insights.
type GetInsightsOutput struct {
	Period PeriodRange `json:"period"`
	AsOf   PeriodRange `json:"as_of"`
	Insights
}

// GetInsightsUseCase derives savings opportunities and recurring payments.
type GetInsightsUseCase struct {
	transactionRepo adapter.TransactionRepository
	budgetRepo      adapter.BudgetRepository
	cache           adapter.AnalyticsCache
	clock           Clock
}

// NewGetInsightsUseCase creates a new GetInsightsUseCase instance.
func NewGetInsightsUseCase(
	transactionRepo adapter.TransactionRepository,
	budgetRepo adapter.BudgetRepository,
	cache adapter.AnalyticsCache,
	clock Clock,
) *GetInsightsUseCase {
	return &GetInsightsUseCase{
		transactionRepo: transactionRepo,
		budgetRepo:      budgetRepo,
		cache:           cache,
		clock:           clock,
	}
}

// Execute generates insights anchored at the end of the resolved range.
// Transactions are loaded from the range extended back to cover the month-over-month windows.
func (uc *GetInsightsUseCase) Execute(ctx context.Context, input GetInsightsInput) (*GetInsightsOutput, error) {
	r, filter, err := resolveInput(input.Filter, uc.clock)
	if err != nil {
		return nil, err
	}

	params := fmt.Sprintf("%s|%s", r, filter.Key())
	return cached(ctx, uc.cache, "insights", params, func() (*GetInsightsOutput, error) {
		lookback, _ := valueobject.LastNDays(r.End, insightLookbackDays)
		loaded := r.Union(lookback)

		txs, budgets, err := loadWithBudgets(ctx, uc.transactionRepo, uc.budgetRepo, loaded, filter)
		if err != nil {
			return nil, fmt.Errorf("failed to get insights: %w", err)
		}

		lines := EvaluateBudgets(BudgetInputs(budgets), SpendByCategory(inRange(txs, r)))

		return &GetInsightsOutput{
			Period:   NewPeriodRange(r),
			AsOf:     NewPeriodRange(loaded),
			Insights: GenerateInsights(txs, lines, r.End),
		}, nil
	})
}
