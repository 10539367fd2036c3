package analytics

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/insights/internal/domain/entity"
	"github.com/finance-tracker/insights/internal/domain/valueobject"
)

// TrendPoint represents a single trend bucket.
type TrendPoint struct {
	Date             time.Time       `json:"date"`
	PeriodLabel      string          `json:"period_label,omitempty"`
	Income           decimal.Decimal `json:"income"`
	Spending         decimal.Decimal `json:"spending"`
	Net              decimal.Decimal `json:"net"`
	TransactionCount int             `json:"transaction_count"`
}

// AggregateTrends buckets transactions into bucketCount consecutive calendar days ending at r.End.
// Every bucket is present, zero-filled when no transaction falls on it.
// A non-empty categories set restricts the input before bucketing.
func AggregateTrends(
	txs []*entity.Transaction,
	r valueobject.DateRange,
	bucketCount int,
	categories []string,
) []TrendPoint {
	if bucketCount <= 0 {
		return []TrendPoint{}
	}

	filter := valueobject.FilterSpec{Categories: categories}.Filter()

	start := r.End.AddDate(0, 0, -(bucketCount - 1))
	index := make(map[time.Time]int, bucketCount)
	points := make([]TrendPoint, bucketCount)
	for i := range points {
		day := start.AddDate(0, 0, i)
		index[day] = i
		points[i] = TrendPoint{
			Date:     day,
			Income:   decimal.Zero,
			Spending: decimal.Zero,
			Net:      decimal.Zero,
		}
	}

	for _, tx := range txs {
		i, ok := index[tx.Day()]
		if !ok || !filter.Matches(tx) {
			continue
		}
		accumulate(&points[i], tx)
	}

	for i := range points {
		points[i].Net = points[i].Income.Sub(points[i].Spending)
	}

	return points
}

// AggregatePeriodTrends buckets the transactions in r into calendar weeks, months or quarters.
// Periods without transactions are included with zero values.
func AggregatePeriodTrends(
	txs []*entity.Transaction,
	r valueobject.DateRange,
	granularity Granularity,
) []TrendPoint {
	periods := GeneratePeriodSeries(r.Start, r.End, granularity)

	index := make(map[string]int, len(periods))
	points := make([]TrendPoint, len(periods))
	for i, period := range periods {
		index[period.Date.Format(valueobject.DateLayout)] = i
		points[i] = TrendPoint{
			Date:        period.Date,
			PeriodLabel: period.PeriodLabel,
			Income:      decimal.Zero,
			Spending:    decimal.Zero,
			Net:         decimal.Zero,
		}
	}

	for _, tx := range txs {
		if !r.Contains(tx.Date) {
			continue
		}
		i, ok := index[GetPeriodKeyForDate(tx.Day(), granularity)]
		if !ok {
			continue
		}
		accumulate(&points[i], tx)
	}

	for i := range points {
		points[i].Net = points[i].Income.Sub(points[i].Spending)
	}

	return points
}

func accumulate(p *TrendPoint, tx *entity.Transaction) {
	switch {
	case tx.IsIncome():
		p.Income = p.Income.Add(tx.Amount.Neg())
	case tx.IsExpense():
		p.Spending = p.Spending.Add(tx.Amount)
	}
	p.TransactionCount++
}
