package analytics

import (
	"fmt"
	"math"
	"testing"

	"github.com/finance-tracker/insights/internal/domain/entity"
)

func TestAggregateCategories(t *testing.T) {
	tests := []struct {
		name     string
		txs      []*entity.Transaction
		selected string
		want     []CategorySlice
	}{
		{
			name: "expenses only",
			txs: []*entity.Transaction{
				newTx(t, "2024-01-01", "50", "Food"),
				newTx(t, "2024-01-01", "-2000", "Deposit"),
			},
			selected: "all",
			want:     []CategorySlice{{Category: "Food", Amount: dec("50"), Percentage: 100, TransactionCount: 1}},
		},
		{
			name: "two categories split thirty seventy",
			txs: []*entity.Transaction{
				newTx(t, "2024-01-01", "100", "Food"),
				newTx(t, "2024-01-02", "200", "Food"),
				newTx(t, "2024-01-02", "700", "Transport"),
			},
			want: []CategorySlice{
				{Category: "Transport", Amount: dec("700"), Percentage: 70, TransactionCount: 1},
				{Category: "Food", Amount: dec("300"), Percentage: 30, TransactionCount: 2},
			},
		},
		{
			name: "selected category reports one hundred percent",
			txs: []*entity.Transaction{
				newTx(t, "2024-01-01", "300", "Food"),
				newTx(t, "2024-01-02", "700", "Transport"),
			},
			selected: "Food",
			want:     []CategorySlice{{Category: "Food", Amount: dec("300"), Percentage: 100, TransactionCount: 1}},
		},
		{
			name: "labels are case-sensitive",
			txs: []*entity.Transaction{
				newTx(t, "2024-01-01", "25", "food"),
				newTx(t, "2024-01-01", "75", "Food"),
			},
			want: []CategorySlice{
				{Category: "Food", Amount: dec("75"), Percentage: 75, TransactionCount: 1},
				{Category: "food", Amount: dec("25"), Percentage: 25, TransactionCount: 1},
			},
		},
		{
			name: "ties ordered by name",
			txs: []*entity.Transaction{
				newTx(t, "2024-01-01", "10", "Zoo"),
				newTx(t, "2024-01-01", "10", "Art"),
			},
			want: []CategorySlice{
				{Category: "Art", Amount: dec("10"), Percentage: 50, TransactionCount: 1},
				{Category: "Zoo", Amount: dec("10"), Percentage: 50, TransactionCount: 1},
			},
		},
		{
			name: "no expenses",
			txs: []*entity.Transaction{
				newTx(t, "2024-01-01", "-10", "Salary"),
			},
			want: []CategorySlice{},
		},
		{
			name: "empty input",
			want: []CategorySlice{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AggregateCategories(tt.txs, tt.selected)

			if got == nil {
				t.Fatal("expected non-nil slice")
			}
			if len(got) != len(tt.want) {
				t.Fatalf("expected %d slices, got %d: %+v", len(tt.want), len(got), got)
			}
			for i := range tt.want {
				if got[i].Category != tt.want[i].Category ||
					!got[i].Amount.Equal(tt.want[i].Amount) ||
					got[i].Percentage != tt.want[i].Percentage ||
					got[i].TransactionCount != tt.want[i].TransactionCount {
					t.Errorf("slice %d = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestAggregateCategories_TopEight(t *testing.T) {
	var txs []*entity.Transaction
	for i := 1; i <= 10; i++ {
		txs = append(txs, newTx(t, "2024-01-01", fmt.Sprintf("%d", i*10), fmt.Sprintf("Cat%02d", i)))
	}

	got := AggregateCategories(txs, "")

	if len(got) != MaxCategorySlices {
		t.Fatalf("expected %d slices, got %d", MaxCategorySlices, len(got))
	}
	if got[0].Category != "Cat10" || got[len(got)-1].Category != "Cat03" {
		t.Errorf("unexpected ranking: first %s, last %s", got[0].Category, got[len(got)-1].Category)
	}
}

func TestAggregateCategories_PercentageClosure(t *testing.T) {
	amounts := []string{"33.33", "33.33", "33.34", "0.01", "19.99", "7"}
	var txs []*entity.Transaction
	for i, amount := range amounts {
		txs = append(txs, newTx(t, "2024-01-01", amount, fmt.Sprintf("C%d", i)))
	}

	var sum float64
	for _, slice := range AggregateCategories(txs, "all") {
		sum += slice.Percentage
	}

	if math.Abs(sum-100) > 0.1 {
		t.Errorf("percentages sum to %v, want 100 +/- 0.1", sum)
	}
}
