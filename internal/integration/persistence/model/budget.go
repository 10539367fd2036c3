// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/insights/internal/domain/entity"
)

// BudgetModel represents the budgets table in the database.
type BudgetModel struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Category  string          `gorm:"type:varchar(255);not null;uniqueIndex"`
	Amount    decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Period    string          `gorm:"type:varchar(20);not null;default:'monthly'"`
	CreatedAt time.Time       `gorm:"not null"`
	UpdatedAt time.Time       `gorm:"not null"`
}

// TableName returns the table name for the BudgetModel.
func (BudgetModel) TableName() string {
	return "budgets"
}

// ToEntity converts a BudgetModel to a domain Budget entity.
func (m *BudgetModel) ToEntity() *entity.Budget {
	return &entity.Budget{
		ID:        m.ID,
		Category:  m.Category,
		Amount:    m.Amount,
		Period:    entity.BudgetPeriod(m.Period),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// BudgetFromEntity creates a BudgetModel from a domain Budget entity.
func BudgetFromEntity(budget *entity.Budget) *BudgetModel {
	return &BudgetModel{
		ID:        budget.ID,
		Category:  budget.Category,
		Amount:    budget.Amount,
		Period:    string(budget.Period),
		CreatedAt: budget.CreatedAt,
		UpdatedAt: budget.UpdatedAt,
	}
}
