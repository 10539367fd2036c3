// Package transaction contains transaction-related use cases.
package transaction

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/insights/internal/domain/entity"
	domainerror "github.com/finance-tracker/insights/internal/domain/error"
	"github.com/finance-tracker/insights/internal/domain/valueobject"
)

// SignConvention declares how a feed signs its amounts.
type SignConvention string

const (
	// SignExpensePositive is the native convention: outflows are positive.
	SignExpensePositive SignConvention = "expense_positive"
	// SignIncomePositive marks feeds where inflows are positive; amounts are negated on import.
	SignIncomePositive SignConvention = "income_positive"
)

// ParseSignConvention validates a declared convention. Empty means expense_positive.
func ParseSignConvention(raw string) (SignConvention, error) {
	switch c := SignConvention(strings.TrimSpace(raw)); c {
	case "":
		return SignExpensePositive, nil
	case SignExpensePositive, SignIncomePositive:
		return c, nil
	default:
		return "", domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidSignConvention,
			fmt.Sprintf("unknown sign convention %q", raw),
			domainerror.ErrInvalidSignConvention,
		)
	}
}

// RawTransaction is a record as delivered by the aggregator feed.
// Category may be a string or a list of strings, most general first.
type RawTransaction struct {
	ID           string
	Date         string
	Amount       *decimal.Decimal
	Category     any
	AccountID    string
	MerchantName string
	Description  string
	Pending      bool
}

// Normalize converts a raw record into an expense-positive Transaction.
func Normalize(raw RawTransaction, convention SignConvention) (*entity.Transaction, error) {
	if strings.TrimSpace(raw.Date) == "" {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeMissingTransactionDate,
			"date is required",
			domainerror.ErrMissingTransactionDate,
		)
	}

	date, err := parseDate(raw.Date)
	if err != nil {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionDate,
			fmt.Sprintf("invalid date %q, expected YYYY-MM-DD or RFC3339", raw.Date),
			domainerror.ErrInvalidTransactionDate,
		)
	}

	if raw.Amount == nil {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionAmount,
			"amount is required",
			domainerror.ErrInvalidTransactionAmount,
		)
	}

	accountID := strings.TrimSpace(raw.AccountID)
	if accountID == "" {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeMissingAccountID,
			"account_id is required",
			domainerror.ErrMissingAccountID,
		)
	}

	category, path, err := normalizeCategory(raw.Category)
	if err != nil {
		return nil, err
	}

	amount := *raw.Amount
	switch convention {
	case SignExpensePositive, "":
	case SignIncomePositive:
		amount = amount.Neg()
	default:
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidSignConvention,
			fmt.Sprintf("unknown sign convention %q", convention),
			domainerror.ErrInvalidSignConvention,
		)
	}

	id := strings.TrimSpace(raw.ID)
	if id == "" {
		id = uuid.NewString()
	}

	return &entity.Transaction{
		ID:           id,
		Date:         date,
		Amount:       amount,
		Category:     category,
		CategoryPath: path,
		AccountID:    accountID,
		MerchantName: strings.TrimSpace(raw.MerchantName),
		Description:  strings.TrimSpace(raw.Description),
		Pending:      raw.Pending,
	}, nil
}

// parseDate accepts a calendar day or an RFC3339 timestamp.
// Timestamps keep the calendar day written in their own offset.
func parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if d, err := time.Parse(valueobject.DateLayout, raw); err == nil {
		return d, nil
	}
	ts, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, err
	}
	return entity.TruncateDay(ts), nil
}

// normalizeCategory coalesces a label or a label list into one category.
// For lists the first non-empty label wins and the full list is kept as the path.
func normalizeCategory(raw any) (string, []string, error) {
	var labels []string

	switch v := raw.(type) {
	case nil:
	case string:
		labels = []string{v}
	case []string:
		labels = v
	case []any:
		labels = make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return "", nil, invalidCategory(raw)
			}
			labels = append(labels, s)
		}
	default:
		return "", nil, invalidCategory(raw)
	}

	path := make([]string, 0, len(labels))
	for _, label := range labels {
		if label = strings.TrimSpace(label); label != "" {
			path = append(path, label)
		}
	}

	if len(path) == 0 {
		return entity.UncategorizedCategory, nil, nil
	}
	return path[0], path, nil
}

func invalidCategory(raw any) error {
	return domainerror.NewTransactionError(
		domainerror.ErrCodeInvalidCategory,
		fmt.Sprintf("unsupported category value of type %T", raw),
		domainerror.ErrInvalidCategory,
	)
}
