package analytics

import (
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/insights/internal/domain/entity"
	"github.com/finance-tracker/insights/internal/domain/valueobject"
)

// Metric names reported by the period comparator.
const (
	MetricTotalIncome      = "totalIncome"
	MetricTotalExpenses    = "totalExpenses"
	MetricNetCashFlow      = "netCashFlow"
	MetricSavingsRate      = "savingsRate"
	MetricTransactionCount = "transactionCount"
)

// PeriodTotals holds the headline figures of one period.
type PeriodTotals struct {
	Period           valueobject.DateRange `json:"-"`
	TotalIncome      decimal.Decimal       `json:"total_income"`
	TotalExpenses    decimal.Decimal       `json:"total_expenses"`
	NetCashFlow      decimal.Decimal       `json:"net_cash_flow"`
	SavingsRate      decimal.Decimal       `json:"savings_rate"`
	TransactionCount int                   `json:"transaction_count"`
	PendingCount     int                   `json:"pending_count"`
}

// MetricChange describes how one metric moved between periods.
// Percentage is nil when the previous value is zero and the current is not.
type MetricChange struct {
	Current     decimal.Decimal `json:"current"`
	Previous    decimal.Decimal `json:"previous"`
	Absolute    decimal.Decimal `json:"absolute"`
	Percentage  *float64        `json:"percentage"`
	HasBaseline bool            `json:"has_baseline"`
}

// ComparisonResult holds both periods and the per-metric changes.
type ComparisonResult struct {
	Current  PeriodTotals            `json:"current"`
	Previous PeriodTotals            `json:"previous"`
	Changes  map[string]MetricChange `json:"changes"`
}

// Summarize computes the totals of txs. Callers restrict txs to the period first.
func Summarize(txs []*entity.Transaction) PeriodTotals {
	totals := PeriodTotals{
		TotalIncome:   decimal.Zero,
		TotalExpenses: decimal.Zero,
	}

	for _, tx := range txs {
		switch {
		case tx.IsIncome():
			totals.TotalIncome = totals.TotalIncome.Add(tx.Amount.Neg())
		case tx.IsExpense():
			totals.TotalExpenses = totals.TotalExpenses.Add(tx.Amount)
		}
		totals.TransactionCount++
		if tx.Pending {
			totals.PendingCount++
		}
	}

	totals.NetCashFlow = totals.TotalIncome.Sub(totals.TotalExpenses)
	totals.SavingsRate = savingsRate(totals.TotalIncome, totals.TotalExpenses)

	return totals
}

// Compare computes totals for current and the equal-length period before it,
// applying f to both, and derives the change of every metric.
func Compare(txs []*entity.Transaction, current valueobject.DateRange, f valueobject.TransactionFilter) ComparisonResult {
	previous := current.Previous()

	cur := Summarize(Apply(txs, f, &current))
	cur.Period = current
	prev := Summarize(Apply(txs, f, &previous))
	prev.Period = previous

	return ComparisonResult{
		Current:  cur,
		Previous: prev,
		Changes:  Changes(cur, prev),
	}
}

// Changes derives the per-metric changes between two sets of totals.
func Changes(cur, prev PeriodTotals) map[string]MetricChange {
	return map[string]MetricChange{
		MetricTotalIncome:   change(cur.TotalIncome, prev.TotalIncome),
		MetricTotalExpenses: change(cur.TotalExpenses, prev.TotalExpenses),
		MetricNetCashFlow:   change(cur.NetCashFlow, prev.NetCashFlow),
		MetricSavingsRate:   change(cur.SavingsRate, prev.SavingsRate),
		MetricTransactionCount: change(
			decimal.NewFromInt(int64(cur.TransactionCount)),
			decimal.NewFromInt(int64(prev.TransactionCount)),
		),
	}
}

func change(cur, prev decimal.Decimal) MetricChange {
	pct, ok := percentageChange(cur, prev)
	return MetricChange{
		Current:     cur,
		Previous:    prev,
		Absolute:    cur.Sub(prev),
		Percentage:  pct,
		HasBaseline: ok,
	}
}

// percentageChange returns (cur-prev)/|prev|*100 rounded to 2 places.
// With a zero baseline it returns 0 when nothing changed and nil otherwise.
func percentageChange(cur, prev decimal.Decimal) (*float64, bool) {
	if prev.IsZero() {
		if cur.IsZero() {
			zero := 0.0
			return &zero, true
		}
		return nil, false
	}
	pct, _ := cur.Sub(prev).Mul(hundred).Div(prev.Abs()).Round(2).Float64()
	return &pct, true
}

// savingsRate returns (income-expenses)/income*100, or 0 without income.
func savingsRate(income, expenses decimal.Decimal) decimal.Decimal {
	if !income.IsPositive() {
		return decimal.Zero
	}
	return income.Sub(expenses).Mul(hundred).Div(income).Round(2)
}
