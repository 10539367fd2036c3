package transaction

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/insights/internal/domain/entity"
	"github.com/finance-tracker/insights/internal/domain/valueobject"
)

func TestListTransactionsUseCase(t *testing.T) {
	today := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
	clock := func() time.Time { return today }

	var stored []*entity.Transaction
	for i := 0; i < 25; i++ {
		stored = append(stored, &entity.Transaction{
			ID:          string(rune('a' + i)),
			Date:        entity.TruncateDay(today.AddDate(0, 0, -i)),
			Amount:      decimal.NewFromInt(10),
			Category:    "Food",
			AccountID:   "acc",
			Description: "Coffee",
		})
	}
	stored = append(stored, &entity.Transaction{
		ID: "salary", Date: entity.TruncateDay(today), Amount: decimal.NewFromInt(-500),
		Category: "Salary", AccountID: "acc", Description: "Payroll",
	})
	uc := NewListTransactionsUseCase(&stubRepo{stored: stored}, clock)

	t.Run("paginates newest first", func(t *testing.T) {
		out, err := uc.Execute(context.Background(), ListTransactionsInput{
			Filter: valueobject.FilterSpec{DateRange: "30"},
			Page:   2,
			Limit:  10,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Pagination.Total != 26 || out.Pagination.TotalPages != 3 {
			t.Errorf("pagination = %+v", out.Pagination)
		}
		if len(out.Transactions) != 10 {
			t.Fatalf("expected 10 transactions, got %d", len(out.Transactions))
		}
		if !out.Transactions[0].Date.After(out.Transactions[9].Date) {
			t.Error("expected newest first")
		}
		if !out.Totals.TotalExpenses.Equal(decimal.NewFromInt(250)) {
			t.Errorf("totals must cover all matches, expenses = %s", out.Totals.TotalExpenses)
		}
	})

	t.Run("search term", func(t *testing.T) {
		out, err := uc.Execute(context.Background(), ListTransactionsInput{
			Filter: valueobject.FilterSpec{DateRange: "30", SearchTerm: "PAYROLL"},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(out.Transactions) != 1 || out.Transactions[0].ID != "salary" {
			t.Errorf("unexpected search result: %+v", out.Transactions)
		}
	})

	t.Run("page past the end", func(t *testing.T) {
		out, err := uc.Execute(context.Background(), ListTransactionsInput{
			Filter: valueobject.FilterSpec{DateRange: "30"},
			Page:   9,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(out.Transactions) != 0 {
			t.Errorf("expected empty page, got %d", len(out.Transactions))
		}
	})
}
