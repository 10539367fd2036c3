// Package transaction contains transaction-related use cases.
package transaction

import (
	"context"
	"fmt"
	"strings"

	"github.com/finance-tracker/insights/internal/application/adapter"
	"github.com/finance-tracker/insights/internal/domain/entity"
	domainerror "github.com/finance-tracker/insights/internal/domain/error"
)

// GetTransactionUseCase retrieves one stored transaction.
type GetTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
}

// NewGetTransactionUseCase creates a new GetTransactionUseCase instance.
func NewGetTransactionUseCase(transactionRepo adapter.TransactionRepository) *GetTransactionUseCase {
	return &GetTransactionUseCase{transactionRepo: transactionRepo}
}

// Execute returns the transaction with the given ID.
func (uc *GetTransactionUseCase) Execute(ctx context.Context, id string) (*entity.Transaction, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeTransactionNotFound,
			"transaction not found",
			domainerror.ErrTransactionNotFound,
		)
	}

	tx, err := uc.transactionRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return tx, nil
}
