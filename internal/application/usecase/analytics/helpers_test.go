package analytics

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/insights/internal/domain/entity"
	"github.com/finance-tracker/insights/internal/domain/valueobject"
)

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse(valueobject.DateLayout, s)
	if err != nil {
		t.Fatalf("bad date %q: %v", s, err)
	}
	return d
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

type txOpt func(*entity.Transaction)

func withMerchant(name string) txOpt {
	return func(tx *entity.Transaction) { tx.MerchantName = name }
}

func withAccount(id string) txOpt {
	return func(tx *entity.Transaction) { tx.AccountID = id }
}

func withDescription(d string) txOpt {
	return func(tx *entity.Transaction) { tx.Description = d }
}

func pending() txOpt {
	return func(tx *entity.Transaction) { tx.Pending = true }
}

func newTx(t *testing.T, date, amount, category string, opts ...txOpt) *entity.Transaction {
	t.Helper()
	tx := &entity.Transaction{
		ID:        date + "-" + amount + "-" + category,
		Date:      day(t, date),
		Amount:    dec(amount),
		Category:  category,
		AccountID: "acc-1",
	}
	for _, opt := range opts {
		opt(tx)
	}
	return tx
}

func mustRange(t *testing.T, start, end string) valueobject.DateRange {
	t.Helper()
	r, err := valueobject.ParseDateRange(start, end)
	if err != nil {
		t.Fatalf("bad range %s..%s: %v", start, end, err)
	}
	return r
}

func fixedClock(t *testing.T, today string) Clock {
	d := day(t, today)
	return func() time.Time { return d.Add(15 * time.Hour) }
}

func floatPtr(v float64) *float64 {
	return &v
}
