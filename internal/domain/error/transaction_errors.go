// Package error defines domain-specific errors for the analytics service.
package error

import "errors"

// Transaction domain errors.
var (
	// ErrMissingTransactionDate is returned when a record arrives without a date.
	ErrMissingTransactionDate = errors.New("transaction date is required")

	// ErrInvalidTransactionDate is returned when the transaction date cannot be parsed.
	ErrInvalidTransactionDate = errors.New("invalid transaction date")

	// ErrInvalidTransactionAmount is returned when the transaction amount is missing or malformed.
	ErrInvalidTransactionAmount = errors.New("invalid transaction amount")

	// ErrMissingAccountID is returned when a record is not tied to an account.
	ErrMissingAccountID = errors.New("account id is required")

	// ErrInvalidSignConvention is returned when a feed declares an unknown amount sign convention.
	ErrInvalidSignConvention = errors.New("sign convention must be expense_positive or income_positive")

	// ErrInvalidCategory is returned when the category payload is neither a label nor a list of labels.
	ErrInvalidCategory = errors.New("category must be a string or a list of strings")

	// ErrEmptyTransactionBatch is returned when an import carries no records.
	ErrEmptyTransactionBatch = errors.New("transaction batch cannot be empty")

	// ErrTransactionBatchTooLarge is returned when an import exceeds the batch limit.
	ErrTransactionBatchTooLarge = errors.New("transaction batch is too large")

	// ErrTransactionNotFound is returned when a transaction ID does not exist.
	ErrTransactionNotFound = errors.New("transaction not found")
)

// TransactionErrorCode defines error codes for transaction errors.
// Format: TXN-XXYYYY where XX is category and YYYY is specific error.
type TransactionErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeMissingTransactionDate   TransactionErrorCode = "TXN-010001"
	ErrCodeInvalidTransactionDate   TransactionErrorCode = "TXN-010002"
	ErrCodeInvalidTransactionAmount TransactionErrorCode = "TXN-010003"
	ErrCodeMissingAccountID         TransactionErrorCode = "TXN-010004"
	ErrCodeInvalidSignConvention    TransactionErrorCode = "TXN-010005"
	ErrCodeInvalidCategory          TransactionErrorCode = "TXN-010006"
	ErrCodeEmptyTransactionBatch    TransactionErrorCode = "TXN-010007"
	ErrCodeTransactionBatchTooLarge TransactionErrorCode = "TXN-010008"

	// Not found errors (02XXXX)
	ErrCodeTransactionNotFound TransactionErrorCode = "TXN-020001"
)

// TransactionError represents a transaction error with code and message.
type TransactionError struct {
	Code    TransactionErrorCode
	Message string
	Index   int // Position of the offending record within a batch, -1 when not applicable
	Err     error
}

// Error implements the error interface.
func (e *TransactionError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *TransactionError) Unwrap() error {
	return e.Err
}

// NewTransactionError creates a new TransactionError with the given code and message.
func NewTransactionError(code TransactionErrorCode, message string, err error) *TransactionError {
	return &TransactionError{
		Code:    code,
		Message: message,
		Index:   -1,
		Err:     err,
	}
}
