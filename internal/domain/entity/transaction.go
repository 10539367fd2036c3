// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// UncategorizedCategory is the label assigned when the feed carries no category.
const UncategorizedCategory = "Uncategorized"

// Transaction represents a normalized bank-linked transaction.
// Amount is signed: positive for outflows (expenses), negative for inflows (income).
type Transaction struct {
	ID           string
	Date         time.Time // Calendar day at UTC midnight
	Amount       decimal.Decimal
	Category     string
	CategoryPath []string // Raw category hierarchy as delivered by the aggregator
	AccountID    string
	MerchantName string
	Description  string
	Pending      bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsExpense reports whether the transaction is an outflow.
func (t *Transaction) IsExpense() bool {
	return t.Amount.IsPositive()
}

// IsIncome reports whether the transaction is an inflow.
func (t *Transaction) IsIncome() bool {
	return t.Amount.IsNegative()
}

// Day returns the transaction date truncated to its calendar day.
func (t *Transaction) Day() time.Time {
	return TruncateDay(t.Date)
}

// TruncateDay drops the clock component of a timestamp, keeping its calendar day in UTC.
func TruncateDay(ts time.Time) time.Time {
	y, m, d := ts.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
