// Package budget contains budget ceiling use cases.
package budget

import (
	"context"
	"fmt"

	"github.com/finance-tracker/insights/internal/application/adapter"
	"github.com/finance-tracker/insights/internal/domain/entity"
)

// ListBudgetsOutput represents the output of listing budgets.
type ListBudgetsOutput struct {
	Budgets []*entity.Budget
}

// ListBudgetsUseCase handles listing budget ceilings.
type ListBudgetsUseCase struct {
	budgetRepo adapter.BudgetRepository
}

// NewListBudgetsUseCase creates a new ListBudgetsUseCase instance.
func NewListBudgetsUseCase(budgetRepo adapter.BudgetRepository) *ListBudgetsUseCase {
	return &ListBudgetsUseCase{budgetRepo: budgetRepo}
}

// Execute returns every budget ordered by category.
func (uc *ListBudgetsUseCase) Execute(ctx context.Context) (*ListBudgetsOutput, error) {
	budgets, err := uc.budgetRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list budgets: %w", err)
	}

	return &ListBudgetsOutput{Budgets: budgets}, nil
}
