package analytics

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/insights/internal/domain/entity"
	"github.com/finance-tracker/insights/internal/domain/valueobject"
)

// MaxCategorySlices is the number of categories kept in a breakdown.
const MaxCategorySlices = 8

var hundred = decimal.NewFromInt(100)

// CategorySlice represents one category in the spending breakdown.
type CategorySlice struct {
	Category         string          `json:"category"`
	Amount           decimal.Decimal `json:"amount"`
	Percentage       float64         `json:"percentage"`
	TransactionCount int             `json:"transaction_count"`
}

// AggregateCategories sums expenses per category and returns the top slices by amount.
// Percentages are relative to the total expense of the (possibly restricted) input,
// so a single selected category always reports 100.
func AggregateCategories(txs []*entity.Transaction, selectedCategory string) []CategorySlice {
	restrict := selectedCategory != "" && selectedCategory != valueobject.AllCategories

	totals := make(map[string]*CategorySlice)
	total := decimal.Zero
	for _, tx := range txs {
		if !tx.IsExpense() {
			continue
		}
		if restrict && tx.Category != selectedCategory {
			continue
		}
		slice, ok := totals[tx.Category]
		if !ok {
			slice = &CategorySlice{Category: tx.Category, Amount: decimal.Zero}
			totals[tx.Category] = slice
		}
		slice.Amount = slice.Amount.Add(tx.Amount)
		slice.TransactionCount++
		total = total.Add(tx.Amount)
	}

	slices := make([]CategorySlice, 0, len(totals))
	for _, slice := range totals {
		slices = append(slices, *slice)
	}

	sort.Slice(slices, func(i, j int) bool {
		if !slices[i].Amount.Equal(slices[j].Amount) {
			return slices[i].Amount.GreaterThan(slices[j].Amount)
		}
		return slices[i].Category < slices[j].Category
	})

	if len(slices) > MaxCategorySlices {
		slices = slices[:MaxCategorySlices]
	}

	for i := range slices {
		slices[i].Percentage = percentOf(slices[i].Amount, total)
	}

	return slices
}

// TotalExpenses sums the positive amounts of txs.
func TotalExpenses(txs []*entity.Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, tx := range txs {
		if tx.IsExpense() {
			total = total.Add(tx.Amount)
		}
	}
	return total
}

// percentOf returns part/total*100 rounded to 2 places, or 0 when total is zero.
func percentOf(part, total decimal.Decimal) float64 {
	if total.IsZero() {
		return 0
	}
	pct, _ := part.Mul(hundred).Div(total).Round(2).Float64()
	return pct
}
