package analytics

import (
	"context"
	"fmt"

	"github.com/finance-tracker/insights/internal/application/adapter"
	"github.com/finance-tracker/insights/internal/domain/valueobject"
)

// GetTrendsInput represents the input for getting trends.
type GetTrendsInput struct {
	Filter      valueobject.FilterSpec
	Granularity Granularity
}

// GetTrendsOutput represents the output of getting trends.
type GetTrendsOutput struct {
	Period      PeriodRange  `json:"period"`
	TrendWindow PeriodRange  `json:"trend_window"`
	Granularity Granularity  `json:"granularity"`
	Trends      []TrendPoint `json:"trends"`
}

// GetTrendsUseCase handles getting income/spending trends.
type GetTrendsUseCase struct {
	transactionRepo adapter.TransactionRepository
	cache           adapter.AnalyticsCache
	clock           Clock
}

// NewGetTrendsUseCase creates a new GetTrendsUseCase instance.
func NewGetTrendsUseCase(
	transactionRepo adapter.TransactionRepository,
	cache adapter.AnalyticsCache,
	clock Clock,
) *GetTrendsUseCase {
	return &GetTrendsUseCase{
		transactionRepo: transactionRepo,
		cache:           cache,
		clock:           clock,
	}
}

// Execute returns the trend series for the resolved range.
// Daily series cover the most recent BucketCount days of the range; coarser
// granularities cover the full range.
func (uc *GetTrendsUseCase) Execute(ctx context.Context, input GetTrendsInput) (*GetTrendsOutput, error) {
	granularity, err := ParseGranularity(string(input.Granularity))
	if err != nil {
		return nil, err
	}

	r, filter, err := resolveInput(input.Filter, uc.clock)
	if err != nil {
		return nil, err
	}

	params := fmt.Sprintf("%s|%s|%s", r, granularity, filter.Key())
	return cached(ctx, uc.cache, "trends", params, func() (*GetTrendsOutput, error) {
		window := r
		if granularity == GranularityDaily {
			window = TrendWindow(r)
		}

		txs, err := loadFiltered(ctx, uc.transactionRepo, window, filter)
		if err != nil {
			return nil, fmt.Errorf("failed to get trends: %w", err)
		}

		var trends []TrendPoint
		if granularity == GranularityDaily {
			trends = AggregateTrends(txs, r, BucketCount(r), filter.Categories)
		} else {
			trends = AggregatePeriodTrends(txs, r, granularity)
		}

		return &GetTrendsOutput{
			Period:      NewPeriodRange(r),
			TrendWindow: NewPeriodRange(window),
			Granularity: granularity,
			Trends:      trends,
		}, nil
	})
}
