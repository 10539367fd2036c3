package analytics

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/finance-tracker/insights/internal/application/adapter"
	"github.com/finance-tracker/insights/internal/domain/entity"
	"github.com/finance-tracker/insights/internal/domain/valueobject"
)

// GetSummaryInput represents the input for getting the period summary.
type GetSummaryInput struct {
	Filter              valueobject.FilterSpec
	CompareWithPrevious bool
}

// GetSummaryOutput represents the output of getting the period summary.
type GetSummaryOutput struct {
	Period         PeriodRange             `json:"period"`
	Current        PeriodTotals            `json:"current"`
	PreviousPeriod *PeriodRange            `json:"previous_period,omitempty"`
	Previous       *PeriodTotals           `json:"previous,omitempty"`
	Changes        map[string]MetricChange `json:"changes,omitempty"`
}

// GetSummaryUseCase handles getting period totals, optionally against the previous period.
type GetSummaryUseCase struct {
	transactionRepo adapter.TransactionRepository
	cache           adapter.AnalyticsCache
	clock           Clock
}

// NewGetSummaryUseCase creates a new GetSummaryUseCase instance.
func NewGetSummaryUseCase(
	transactionRepo adapter.TransactionRepository,
	cache adapter.AnalyticsCache,
	clock Clock,
) *GetSummaryUseCase {
	return &GetSummaryUseCase{
		transactionRepo: transactionRepo,
		cache:           cache,
		clock:           clock,
	}
}

// Execute computes the summary of the resolved range.
func (uc *GetSummaryUseCase) Execute(ctx context.Context, input GetSummaryInput) (*GetSummaryOutput, error) {
	r, filter, err := resolveInput(input.Filter, uc.clock)
	if err != nil {
		return nil, err
	}

	params := fmt.Sprintf("%s|%t|%s", r, input.CompareWithPrevious, filter.Key())
	return cached(ctx, uc.cache, "summary", params, func() (*GetSummaryOutput, error) {
		if !input.CompareWithPrevious {
			txs, err := loadFiltered(ctx, uc.transactionRepo, r, filter)
			if err != nil {
				return nil, fmt.Errorf("failed to get summary: %w", err)
			}
			totals := Summarize(txs)
			totals.Period = r
			return &GetSummaryOutput{
				Period:  NewPeriodRange(r),
				Current: totals,
			}, nil
		}

		previous := r.Previous()

		var currentTxs, previousTxs []*entity.Transaction
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			currentTxs, err = loadFiltered(gctx, uc.transactionRepo, r, filter)
			return err
		})
		g.Go(func() error {
			var err error
			previousTxs, err = loadFiltered(gctx, uc.transactionRepo, previous, filter)
			return err
		})
		if err := g.Wait(); err != nil {
			return nil, fmt.Errorf("failed to get summary: %w", err)
		}

		all := make([]*entity.Transaction, 0, len(currentTxs)+len(previousTxs))
		all = append(all, previousTxs...)
		all = append(all, currentTxs...)

		result := Compare(all, r, filter)
		previousRange := NewPeriodRange(previous)

		return &GetSummaryOutput{
			Period:         NewPeriodRange(r),
			Current:        result.Current,
			PreviousPeriod: &previousRange,
			Previous:       &result.Previous,
			Changes:        result.Changes,
		}, nil
	})
}
