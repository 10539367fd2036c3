// Package transaction contains transaction-related use cases.
package transaction

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/finance-tracker/insights/internal/application/adapter"
	"github.com/finance-tracker/insights/internal/domain/entity"
	domainerror "github.com/finance-tracker/insights/internal/domain/error"
)

// MaxImportBatch is the largest number of records accepted in one import.
const MaxImportBatch = 5000

// ImportTransactionsInput represents the input for importing a feed batch.
type ImportTransactionsInput struct {
	Transactions   []RawTransaction
	SignConvention string
}

// ImportTransactionsOutput represents the output of an import.
type ImportTransactionsOutput struct {
	Imported int64
	Version  int64
}

// ImportTransactionsUseCase normalizes and stores feed records.
type ImportTransactionsUseCase struct {
	transactionRepo adapter.TransactionRepository
	cache           adapter.AnalyticsCache
}

// NewImportTransactionsUseCase creates a new ImportTransactionsUseCase instance.
// A nil cache skips invalidation.
func NewImportTransactionsUseCase(
	transactionRepo adapter.TransactionRepository,
	cache adapter.AnalyticsCache,
) *ImportTransactionsUseCase {
	return &ImportTransactionsUseCase{
		transactionRepo: transactionRepo,
		cache:           cache,
	}
}

// Execute validates every record before writing any of them.
// Analytics cached for the previous transaction set are invalidated afterwards.
func (uc *ImportTransactionsUseCase) Execute(ctx context.Context, input ImportTransactionsInput) (*ImportTransactionsOutput, error) {
	if len(input.Transactions) == 0 {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeEmptyTransactionBatch,
			"at least one transaction is required",
			domainerror.ErrEmptyTransactionBatch,
		)
	}

	if len(input.Transactions) > MaxImportBatch {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeTransactionBatchTooLarge,
			fmt.Sprintf("a batch may contain at most %d transactions", MaxImportBatch),
			domainerror.ErrTransactionBatchTooLarge,
		)
	}

	convention, err := ParseSignConvention(input.SignConvention)
	if err != nil {
		return nil, err
	}

	transactions := make([]*entity.Transaction, 0, len(input.Transactions))
	for i, raw := range input.Transactions {
		tx, err := Normalize(raw, convention)
		if err != nil {
			var txErr *domainerror.TransactionError
			if errors.As(err, &txErr) {
				txErr.Index = i
			}
			return nil, err
		}
		transactions = append(transactions, tx)
	}

	imported, err := uc.transactionRepo.UpsertMany(ctx, transactions)
	if err != nil {
		return nil, fmt.Errorf("failed to store transactions: %w", err)
	}

	output := &ImportTransactionsOutput{Imported: imported}

	if uc.cache != nil {
		version, err := uc.cache.BumpVersion(ctx)
		if err != nil {
			// The rows are stored; re-sending the batch is idempotent and retries the bump.
			return nil, fmt.Errorf("transactions stored but analytics cache was not invalidated: %w", err)
		}
		output.Version = version
	}

	slog.Info("Transactions imported", "count", imported, "convention", convention, "version", output.Version)

	return output, nil
}
