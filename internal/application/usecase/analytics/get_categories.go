package analytics

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/insights/internal/application/adapter"
	"github.com/finance-tracker/insights/internal/domain/valueobject"
)

// GetCategoriesInput represents the input for getting the category breakdown.
type GetCategoriesInput struct {
	Filter           valueobject.FilterSpec
	SelectedCategory string
}

// GetCategoriesOutput represents the output of getting the category breakdown.
type GetCategoriesOutput struct {
	Period        PeriodRange     `json:"period"`
	TotalExpenses decimal.Decimal `json:"total_expenses"`
	Categories    []CategorySlice `json:"categories"`
}

// GetCategoriesUseCase handles getting spending breakdown by category.
type GetCategoriesUseCase struct {
	transactionRepo adapter.TransactionRepository
	cache           adapter.AnalyticsCache
	clock           Clock
}

// NewGetCategoriesUseCase creates a new GetCategoriesUseCase instance.
func NewGetCategoriesUseCase(
	transactionRepo adapter.TransactionRepository,
	cache adapter.AnalyticsCache,
	clock Clock,
) *GetCategoriesUseCase {
	return &GetCategoriesUseCase{
		transactionRepo: transactionRepo,
		cache:           cache,
		clock:           clock,
	}
}

// Execute retrieves the top spending categories for the resolved range.
func (uc *GetCategoriesUseCase) Execute(ctx context.Context, input GetCategoriesInput) (*GetCategoriesOutput, error) {
	r, filter, err := resolveInput(input.Filter, uc.clock)
	if err != nil {
		return nil, err
	}

	selected := input.SelectedCategory
	if selected == "" {
		selected = valueobject.AllCategories
	}

	params := fmt.Sprintf("%s|%q|%s", r, selected, filter.Key())
	return cached(ctx, uc.cache, "categories", params, func() (*GetCategoriesOutput, error) {
		txs, err := loadFiltered(ctx, uc.transactionRepo, r, filter)
		if err != nil {
			return nil, fmt.Errorf("failed to get category breakdown: %w", err)
		}

		if selected != valueobject.AllCategories {
			txs = Apply(txs, valueobject.FilterSpec{Categories: []string{selected}}.Filter(), nil)
		}

		return &GetCategoriesOutput{
			Period:        NewPeriodRange(r),
			TotalExpenses: TotalExpenses(txs),
			Categories:    AggregateCategories(txs, selected),
		}, nil
	})
}
