// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/finance-tracker/insights/internal/domain/entity"
	"github.com/finance-tracker/insights/internal/domain/valueobject"
)

// TransactionQuery narrows the transactions loaded from storage.
// Only exact-match dimensions are pushed down; the analytics engine applies the full filter.
type TransactionQuery struct {
	Range      *valueobject.DateRange
	Categories []string
	Accounts   []string
}

// TransactionBounds describes the extent of the stored transaction set.
type TransactionBounds struct {
	OldestDate        *time.Time
	NewestDate        *time.Time
	TotalTransactions int64
}

// TransactionRepository defines the interface for transaction persistence operations.
type TransactionRepository interface {
	// UpsertMany inserts or replaces transactions by ID.
	// Returns the number of records written.
	UpsertMany(ctx context.Context, transactions []*entity.Transaction) (int64, error)

	// FindByID retrieves a transaction by its ID.
	FindByID(ctx context.Context, id string) (*entity.Transaction, error)

	// Find retrieves every transaction matching the query, ordered by date then ID.
	Find(ctx context.Context, query TransactionQuery) ([]*entity.Transaction, error)

	// Bounds returns the oldest and newest transaction dates and the record count.
	// Dates are nil when no transaction is stored.
	Bounds(ctx context.Context) (*TransactionBounds, error)
}
