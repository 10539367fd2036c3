package dto

import (
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/insights/internal/application/usecase/transaction"
	"github.com/finance-tracker/insights/internal/domain/entity"
)

// ImportTransactionsRequest represents the request body for a feed import.
type ImportTransactionsRequest struct {
	SignConvention string                  `json:"sign_convention,omitempty"`
	Transactions   []RawTransactionRequest `json:"transactions" binding:"required,min=1"`
}

// RawTransactionRequest represents a transaction as delivered by the aggregator.
// Category accepts either a label or a hierarchy of labels.
type RawTransactionRequest struct {
	ID           string           `json:"id,omitempty"`
	Date         string           `json:"date"`
	Amount       *decimal.Decimal `json:"amount"`
	Category     any              `json:"category,omitempty"`
	AccountID    string           `json:"account_id"`
	MerchantName string           `json:"merchant_name,omitempty"`
	Description  string           `json:"description,omitempty"`
	Pending      bool             `json:"pending,omitempty"`
}

// ToImportTransactionsInput converts the request to the use case input.
func (r ImportTransactionsRequest) ToImportTransactionsInput() transaction.ImportTransactionsInput {
	raws := make([]transaction.RawTransaction, len(r.Transactions))
	for i, t := range r.Transactions {
		raws[i] = transaction.RawTransaction{
			ID:           t.ID,
			Date:         t.Date,
			Amount:       t.Amount,
			Category:     t.Category,
			AccountID:    t.AccountID,
			MerchantName: t.MerchantName,
			Description:  t.Description,
			Pending:      t.Pending,
		}
	}

	return transaction.ImportTransactionsInput{
		Transactions:   raws,
		SignConvention: r.SignConvention,
	}
}

// ImportTransactionsResponse represents the response for a feed import.
type ImportTransactionsResponse struct {
	Imported int64 `json:"imported"`
	Version  int64 `json:"version"`
}

// TransactionResponse represents a single transaction in API responses.
type TransactionResponse struct {
	ID           string   `json:"id"`
	Date         string   `json:"date"`
	Amount       float64  `json:"amount"`
	Category     string   `json:"category"`
	CategoryPath []string `json:"category_path,omitempty"`
	AccountID    string   `json:"account_id"`
	MerchantName string   `json:"merchant_name,omitempty"`
	Description  string   `json:"description,omitempty"`
	Pending      bool     `json:"pending"`
}

// TransactionPaginationResponse represents pagination information in API responses.
type TransactionPaginationResponse struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// TransactionListResponse represents the response for listing transactions.
type TransactionListResponse struct {
	Period       PeriodResponse                `json:"period"`
	Transactions []TransactionResponse         `json:"transactions"`
	Pagination   TransactionPaginationResponse `json:"pagination"`
	Totals       PeriodTotalsResponse          `json:"totals"`
}

// ToTransactionResponse converts a domain Transaction entity to a TransactionResponse DTO.
func ToTransactionResponse(txn *entity.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:           txn.ID,
		Date:         formatDate(txn.Date),
		Amount:       toFloat(txn.Amount),
		Category:     txn.Category,
		CategoryPath: txn.CategoryPath,
		AccountID:    txn.AccountID,
		MerchantName: txn.MerchantName,
		Description:  txn.Description,
		Pending:      txn.Pending,
	}
}

// ToTransactionListResponse converts a ListTransactionsOutput to TransactionListResponse DTO.
func ToTransactionListResponse(output *transaction.ListTransactionsOutput) TransactionListResponse {
	transactions := make([]TransactionResponse, len(output.Transactions))
	for i, txn := range output.Transactions {
		transactions[i] = ToTransactionResponse(txn)
	}

	return TransactionListResponse{
		Period: PeriodResponse{
			StartDate: formatDate(output.Period.Start),
			EndDate:   formatDate(output.Period.End),
			Days:      output.Period.Days(),
		},
		Transactions: transactions,
		Pagination: TransactionPaginationResponse{
			Page:       output.Pagination.Page,
			Limit:      output.Pagination.Limit,
			Total:      output.Pagination.Total,
			TotalPages: output.Pagination.TotalPages,
		},
		Totals: ToPeriodTotalsResponse(output.Totals),
	}
}
