// Package budget contains budget ceiling use cases.
package budget

import (
	"context"
	"strings"

	"github.com/finance-tracker/insights/internal/application/adapter"
	domainerror "github.com/finance-tracker/insights/internal/domain/error"
)

// DeleteBudgetUseCase handles removing a budget ceiling.
type DeleteBudgetUseCase struct {
	budgetRepo adapter.BudgetRepository
	cache      adapter.AnalyticsCache
}

// NewDeleteBudgetUseCase creates a new DeleteBudgetUseCase instance.
func NewDeleteBudgetUseCase(budgetRepo adapter.BudgetRepository, cache adapter.AnalyticsCache) *DeleteBudgetUseCase {
	return &DeleteBudgetUseCase{
		budgetRepo: budgetRepo,
		cache:      cache,
	}
}

// Execute deletes the budget of a category.
func (uc *DeleteBudgetUseCase) Execute(ctx context.Context, category string) error {
	category = strings.TrimSpace(category)
	if category == "" {
		return domainerror.NewBudgetError(
			domainerror.ErrCodeMissingBudgetCategory,
			"category is required",
			domainerror.ErrMissingBudgetCategory,
		)
	}

	if _, err := uc.budgetRepo.FindByCategory(ctx, category); err != nil {
		return err
	}

	if err := uc.budgetRepo.DeleteByCategory(ctx, category); err != nil {
		return err
	}

	return invalidate(ctx, uc.cache)
}
