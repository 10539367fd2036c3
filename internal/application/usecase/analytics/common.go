package analytics

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/finance-tracker/insights/internal/application/adapter"
	"github.com/finance-tracker/insights/internal/domain/entity"
	"github.com/finance-tracker/insights/internal/domain/valueobject"
)

// PeriodRange is the JSON shape of a resolved range.
type PeriodRange struct {
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	Days      int       `json:"days"`
}

// NewPeriodRange converts a DateRange into its output shape.
func NewPeriodRange(r valueobject.DateRange) PeriodRange {
	return PeriodRange{StartDate: r.Start, EndDate: r.End, Days: r.Days()}
}

// resolveInput validates the spec and resolves its date range against the clock.
func resolveInput(spec valueobject.FilterSpec, clock Clock) (valueobject.DateRange, valueobject.TransactionFilter, error) {
	if err := spec.Validate(); err != nil {
		return valueobject.DateRange{}, valueobject.TransactionFilter{}, err
	}

	r, err := Resolve(spec, clock.Today())
	if err != nil {
		return valueobject.DateRange{}, valueobject.TransactionFilter{}, err
	}

	return r, spec.Filter(), nil
}

// loadFiltered loads the transactions of r and applies f.
func loadFiltered(
	ctx context.Context,
	repo adapter.TransactionRepository,
	r valueobject.DateRange,
	f valueobject.TransactionFilter,
) ([]*entity.Transaction, error) {
	txs, err := repo.Find(ctx, adapter.TransactionQuery{
		Range:      &r,
		Categories: f.Categories,
		Accounts:   f.Accounts,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}
	return Apply(txs, f, nil), nil
}

// cached returns the memoized value for (name, params, current version) or computes and stores it.
// Cache failures are logged and never fail the request.
func cached[T any](
	ctx context.Context,
	cache adapter.AnalyticsCache,
	name, params string,
	compute func() (*T, error),
) (*T, error) {
	if cache == nil {
		return compute()
	}

	version, err := cache.Version(ctx)
	if err != nil {
		slog.Warn("Failed to read analytics cache version", "error", err, "useCase", name)
		return compute()
	}

	key := CacheKey(name, version, params)

	var hit T
	found, err := cache.Get(ctx, key, &hit)
	if err != nil {
		slog.Warn("Failed to read analytics cache", "error", err, "key", key)
	} else if found {
		slog.Debug("Analytics cache hit", "key", key)
		return &hit, nil
	}

	out, err := compute()
	if err != nil {
		return nil, err
	}

	if err := cache.Set(ctx, key, out); err != nil {
		slog.Warn("Failed to write analytics cache", "error", err, "key", key)
	}

	return out, nil
}

// CacheKey builds the memoization key of a use case result.
func CacheKey(name string, version int64, params string) string {
	return fmt.Sprintf("analytics:%s:v%d:%s", name, version, params)
}
