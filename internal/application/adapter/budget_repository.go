// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/finance-tracker/insights/internal/domain/entity"
)

// BudgetRepository defines the interface for budget ceiling persistence operations.
type BudgetRepository interface {
	// Upsert creates the budget or replaces the one with the same category.
	Upsert(ctx context.Context, budget *entity.Budget) error

	// FindAll retrieves every budget ordered by category.
	FindAll(ctx context.Context) ([]*entity.Budget, error)

	// FindByCategory retrieves the budget of a category.
	FindByCategory(ctx context.Context, category string) (*entity.Budget, error)

	// DeleteByCategory removes the budget of a category.
	DeleteByCategory(ctx context.Context, category string) error
}
