// Package budget contains budget ceiling use cases.
package budget

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/insights/internal/application/adapter"
	"github.com/finance-tracker/insights/internal/domain/entity"
	domainerror "github.com/finance-tracker/insights/internal/domain/error"
)

// UpsertBudgetInput represents the input for setting a budget ceiling.
type UpsertBudgetInput struct {
	Category string
	Amount   decimal.Decimal
	Period   *entity.BudgetPeriod // Optional, defaults to monthly
}

// UpsertBudgetOutput represents the output of setting a budget ceiling.
type UpsertBudgetOutput struct {
	Budget  *entity.Budget
	Created bool
}

// UpsertBudgetUseCase creates or replaces the budget of a category.
type UpsertBudgetUseCase struct {
	budgetRepo adapter.BudgetRepository
	cache      adapter.AnalyticsCache
}

// NewUpsertBudgetUseCase creates a new UpsertBudgetUseCase instance.
func NewUpsertBudgetUseCase(budgetRepo adapter.BudgetRepository, cache adapter.AnalyticsCache) *UpsertBudgetUseCase {
	return &UpsertBudgetUseCase{
		budgetRepo: budgetRepo,
		cache:      cache,
	}
}

// Execute validates and stores the budget. A zero amount is allowed and always evaluates as over budget.
func (uc *UpsertBudgetUseCase) Execute(ctx context.Context, input UpsertBudgetInput) (*UpsertBudgetOutput, error) {
	category := strings.TrimSpace(input.Category)
	if category == "" {
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodeMissingBudgetCategory,
			"category is required",
			domainerror.ErrMissingBudgetCategory,
		)
	}

	if input.Amount.IsNegative() {
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodeInvalidBudgetAmount,
			"amount must not be negative",
			domainerror.ErrInvalidBudgetAmount,
		)
	}

	period := entity.BudgetPeriodMonthly
	if input.Period != nil {
		if !input.Period.IsValid() {
			return nil, domainerror.NewBudgetError(
				domainerror.ErrCodeInvalidBudgetPeriod,
				"period must be 'monthly', 'weekly', or 'yearly'",
				domainerror.ErrInvalidBudgetPeriod,
			)
		}
		period = *input.Period
	}

	existing, err := uc.budgetRepo.FindByCategory(ctx, category)
	if err != nil && !errors.Is(err, domainerror.ErrBudgetNotFound) {
		return nil, fmt.Errorf("failed to check budget existence: %w", err)
	}

	budget := entity.NewBudget(category, input.Amount, period)
	created := existing == nil
	if !created {
		budget.ID = existing.ID
		budget.CreatedAt = existing.CreatedAt
		budget.UpdatedAt = time.Now().UTC()
	}

	if err := uc.budgetRepo.Upsert(ctx, budget); err != nil {
		return nil, fmt.Errorf("failed to save budget: %w", err)
	}

	if err := invalidate(ctx, uc.cache); err != nil {
		return nil, err
	}

	return &UpsertBudgetOutput{
		Budget:  budget,
		Created: created,
	}, nil
}

// invalidate bumps the analytics cache version so budget alerts are recomputed.
func invalidate(ctx context.Context, cache adapter.AnalyticsCache) error {
	if cache == nil {
		return nil
	}
	if _, err := cache.BumpVersion(ctx); err != nil {
		return fmt.Errorf("budget saved but analytics cache was not invalidated: %w", err)
	}
	return nil
}
