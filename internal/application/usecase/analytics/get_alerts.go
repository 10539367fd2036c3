package analytics

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/finance-tracker/insights/internal/application/adapter"
	"github.com/finance-tracker/insights/internal/domain/entity"
	"github.com/finance-tracker/insights/internal/domain/valueobject"
)

// GetAlertsInput represents the input for evaluating budgets.
type GetAlertsInput struct {
	Filter valueobject.FilterSpec
}

// GetAlertsOutput represents the evaluated budgets and their alerts.
type GetAlertsOutput struct {
	Period  PeriodRange   `json:"period"`
	Budgets []BudgetLine  `json:"budgets"`
	Alerts  []BudgetAlert `json:"alerts"`
}

// GetAlertsUseCase evaluates spend against the configured budget ceilings.
type GetAlertsUseCase struct {
	transactionRepo adapter.TransactionRepository
	budgetRepo      adapter.BudgetRepository
	cache           adapter.AnalyticsCache
	clock           Clock
}

// NewGetAlertsUseCase creates a new GetAlertsUseCase instance.
func NewGetAlertsUseCase(
	transactionRepo adapter.TransactionRepository,
	budgetRepo adapter.BudgetRepository,
	cache adapter.AnalyticsCache,
	clock Clock,
) *GetAlertsUseCase {
	return &GetAlertsUseCase{
		transactionRepo: transactionRepo,
		budgetRepo:      budgetRepo,
		cache:           cache,
		clock:           clock,
	}
}

// Execute evaluates every budget over the resolved range.
func (uc *GetAlertsUseCase) Execute(ctx context.Context, input GetAlertsInput) (*GetAlertsOutput, error) {
	r, filter, err := resolveInput(input.Filter, uc.clock)
	if err != nil {
		return nil, err
	}

	params := fmt.Sprintf("%s|%s", r, filter.Key())
	return cached(ctx, uc.cache, "alerts", params, func() (*GetAlertsOutput, error) {
		txs, budgets, err := loadWithBudgets(ctx, uc.transactionRepo, uc.budgetRepo, r, filter)
		if err != nil {
			return nil, fmt.Errorf("failed to get budget alerts: %w", err)
		}

		lines := EvaluateBudgets(BudgetInputs(budgets), SpendByCategory(txs))

		return &GetAlertsOutput{
			Period:  NewPeriodRange(r),
			Budgets: lines,
			Alerts:  Alerts(lines),
		}, nil
	})
}

// loadWithBudgets loads the filtered transactions of r and every budget concurrently.
func loadWithBudgets(
	ctx context.Context,
	transactionRepo adapter.TransactionRepository,
	budgetRepo adapter.BudgetRepository,
	r valueobject.DateRange,
	filter valueobject.TransactionFilter,
) ([]*entity.Transaction, []*entity.Budget, error) {
	var (
		txs     []*entity.Transaction
		budgets []*entity.Budget
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		txs, err = loadFiltered(gctx, transactionRepo, r, filter)
		return err
	})
	g.Go(func() error {
		var err error
		budgets, err = budgetRepo.FindAll(gctx)
		if err != nil {
			return fmt.Errorf("failed to load budgets: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	return txs, budgets, nil
}
