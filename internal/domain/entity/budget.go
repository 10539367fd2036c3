// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BudgetPeriod represents the period a budget ceiling applies to.
type BudgetPeriod string

const (
	BudgetPeriodMonthly BudgetPeriod = "monthly"
	BudgetPeriodWeekly  BudgetPeriod = "weekly"
	BudgetPeriodYearly  BudgetPeriod = "yearly"
)

// IsValid reports whether the period is one of the supported values.
func (p BudgetPeriod) IsValid() bool {
	switch p {
	case BudgetPeriodMonthly, BudgetPeriodWeekly, BudgetPeriodYearly:
		return true
	default:
		return false
	}
}

// Budget represents a spending ceiling configured for a category.
type Budget struct {
	ID        uuid.UUID
	Category  string
	Amount    decimal.Decimal
	Period    BudgetPeriod
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewBudget creates a new Budget entity.
func NewBudget(category string, amount decimal.Decimal, period BudgetPeriod) *Budget {
	now := time.Now().UTC()

	return &Budget{
		ID:        uuid.New(),
		Category:  category,
		Amount:    amount,
		Period:    period,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
