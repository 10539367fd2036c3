// Package transaction contains transaction-related use cases.
package transaction

import (
	"context"
	"fmt"
	"sort"

	"github.com/finance-tracker/insights/internal/application/adapter"
	"github.com/finance-tracker/insights/internal/application/usecase/analytics"
	"github.com/finance-tracker/insights/internal/domain/entity"
	"github.com/finance-tracker/insights/internal/domain/valueobject"
)

// ListTransactionsInput represents the input for listing transactions.
type ListTransactionsInput struct {
	Filter valueobject.FilterSpec
	Page   int
	Limit  int
}

// PaginationOutput represents pagination information in the output.
type PaginationOutput struct {
	Page       int
	Limit      int
	Total      int64
	TotalPages int
}

// ListTransactionsOutput represents the output of listing transactions.
type ListTransactionsOutput struct {
	Period       valueobject.DateRange
	Transactions []*entity.Transaction
	Pagination   PaginationOutput
	Totals       analytics.PeriodTotals
}

// ListTransactionsUseCase handles listing transactions logic.
type ListTransactionsUseCase struct {
	transactionRepo adapter.TransactionRepository
	clock           analytics.Clock
}

// NewListTransactionsUseCase creates a new ListTransactionsUseCase instance.
func NewListTransactionsUseCase(transactionRepo adapter.TransactionRepository, clock analytics.Clock) *ListTransactionsUseCase {
	return &ListTransactionsUseCase{
		transactionRepo: transactionRepo,
		clock:           clock,
	}
}

// Execute returns the filtered transactions of the resolved range, newest first.
// Totals cover every matching transaction, not just the page.
func (uc *ListTransactionsUseCase) Execute(ctx context.Context, input ListTransactionsInput) (*ListTransactionsOutput, error) {
	// Set default pagination values
	page := input.Page
	if page < 1 {
		page = 1
	}
	limit := input.Limit
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	if err := input.Filter.Validate(); err != nil {
		return nil, err
	}

	r, err := analytics.Resolve(input.Filter, uc.clock.Today())
	if err != nil {
		return nil, err
	}
	filter := input.Filter.Filter()

	txs, err := uc.transactionRepo.Find(ctx, adapter.TransactionQuery{
		Range:      &r,
		Categories: filter.Categories,
		Accounts:   filter.Accounts,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	matched := analytics.Apply(txs, filter, nil)
	sort.SliceStable(matched, func(i, j int) bool {
		if !matched[i].Date.Equal(matched[j].Date) {
			return matched[i].Date.After(matched[j].Date)
		}
		return matched[i].ID < matched[j].ID
	})

	total := int64(len(matched))
	totalPages := int((total + int64(limit) - 1) / int64(limit))

	from := min((page-1)*limit, len(matched))
	to := min(from+limit, len(matched))

	totals := analytics.Summarize(matched)
	totals.Period = r

	return &ListTransactionsOutput{
		Period:       r,
		Transactions: matched[from:to],
		Pagination: PaginationOutput{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: totalPages,
		},
		Totals: totals,
	}, nil
}
