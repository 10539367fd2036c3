// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/finance-tracker/insights/internal/application/adapter"
	"github.com/finance-tracker/insights/internal/domain/entity"
	domainerror "github.com/finance-tracker/insights/internal/domain/error"
	"github.com/finance-tracker/insights/internal/integration/persistence/model"
)

// budgetRepository implements the adapter.BudgetRepository interface.
type budgetRepository struct {
	db *gorm.DB
}

// NewBudgetRepository creates a new budget repository instance.
func NewBudgetRepository(db *gorm.DB) adapter.BudgetRepository {
	return &budgetRepository{
		db: db,
	}
}

// Upsert creates the budget or replaces the amount and period of the existing category row.
func (r *budgetRepository) Upsert(ctx context.Context, budget *entity.Budget) error {
	budgetModel := model.BudgetFromEntity(budget)
	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "category"}},
		DoUpdates: clause.AssignmentColumns([]string{"amount", "period", "updated_at"}),
	}).Create(budgetModel)
	return result.Error
}

// FindAll retrieves every budget ordered by category.
func (r *budgetRepository) FindAll(ctx context.Context) ([]*entity.Budget, error) {
	var budgetModels []model.BudgetModel
	result := r.db.WithContext(ctx).Order("category ASC").Find(&budgetModels)
	if result.Error != nil {
		return nil, result.Error
	}

	budgets := make([]*entity.Budget, len(budgetModels))
	for i := range budgetModels {
		budgets[i] = budgetModels[i].ToEntity()
	}
	return budgets, nil
}

// FindByCategory retrieves the budget of a category.
func (r *budgetRepository) FindByCategory(ctx context.Context, category string) (*entity.Budget, error) {
	var budgetModel model.BudgetModel
	result := r.db.WithContext(ctx).Where("category = ?", category).First(&budgetModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.NewBudgetError(
				domainerror.ErrCodeBudgetNotFound,
				"budget not found",
				domainerror.ErrBudgetNotFound,
			)
		}
		return nil, result.Error
	}
	return budgetModel.ToEntity(), nil
}

// DeleteByCategory removes the budget of a category.
func (r *budgetRepository) DeleteByCategory(ctx context.Context, category string) error {
	result := r.db.WithContext(ctx).Where("category = ?", category).Delete(&model.BudgetModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.NewBudgetError(
			domainerror.ErrCodeBudgetNotFound,
			"budget not found",
			domainerror.ErrBudgetNotFound,
		)
	}
	return nil
}
