package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/finance-tracker/insights/internal/application/adapter"
)

// GetDataRangeOutput represents the extent of the stored transaction history.
type GetDataRangeOutput struct {
	OldestDate        *time.Time `json:"oldest_date"`
	NewestDate        *time.Time `json:"newest_date"`
	TotalTransactions int64      `json:"total_transactions"`
	HasData           bool       `json:"has_data"`
}

// GetDataRangeUseCase handles getting the date range of stored transactions.
type GetDataRangeUseCase struct {
	transactionRepo adapter.TransactionRepository
}

// NewGetDataRangeUseCase creates a new GetDataRangeUseCase instance.
func NewGetDataRangeUseCase(transactionRepo adapter.TransactionRepository) *GetDataRangeUseCase {
	return &GetDataRangeUseCase{
		transactionRepo: transactionRepo,
	}
}

// Execute retrieves the date range of stored transactions.
func (uc *GetDataRangeUseCase) Execute(ctx context.Context) (*GetDataRangeOutput, error) {
	bounds, err := uc.transactionRepo.Bounds(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get date range: %w", err)
	}

	hasData := bounds.OldestDate != nil && bounds.NewestDate != nil

	return &GetDataRangeOutput{
		OldestDate:        bounds.OldestDate,
		NewestDate:        bounds.NewestDate,
		TotalTransactions: bounds.TotalTransactions,
		HasData:           hasData,
	}, nil
}
