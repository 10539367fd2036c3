package transaction

import (
	"errors"
	"reflect"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/insights/internal/domain/entity"
	domainerror "github.com/finance-tracker/insights/internal/domain/error"
)

func amount(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name         string
		raw          RawTransaction
		convention   SignConvention
		wantCategory string
		wantPath     []string
		wantAmount   string
		wantDate     string
		wantCode     domainerror.TransactionErrorCode
	}{
		{
			name:         "string category",
			raw:          RawTransaction{ID: "t1", Date: "2024-01-01", Amount: amount("50"), Category: "Food", AccountID: "acc"},
			wantCategory: "Food",
			wantPath:     []string{"Food"},
			wantAmount:   "50",
			wantDate:     "2024-01-01",
		},
		{
			name: "category list keeps first non-empty label",
			raw: RawTransaction{ID: "t2", Date: "2024-01-01", Amount: amount("12.5"), AccountID: "acc",
				Category: []any{" ", "Food and Drink", "Restaurants"}},
			wantCategory: "Food and Drink",
			wantPath:     []string{"Food and Drink", "Restaurants"},
			wantAmount:   "12.5",
			wantDate:     "2024-01-01",
		},
		{
			name:         "missing category",
			raw:          RawTransaction{ID: "t3", Date: "2024-01-01", Amount: amount("1"), AccountID: "acc"},
			wantCategory: entity.UncategorizedCategory,
			wantAmount:   "1",
			wantDate:     "2024-01-01",
		},
		{
			name:         "income positive feed is flipped",
			raw:          RawTransaction{ID: "t4", Date: "2024-01-01", Amount: amount("2000"), Category: "Salary", AccountID: "acc"},
			convention:   SignIncomePositive,
			wantCategory: "Salary",
			wantPath:     []string{"Salary"},
			wantAmount:   "-2000",
			wantDate:     "2024-01-01",
		},
		{
			name:         "rfc3339 keeps local calendar day",
			raw:          RawTransaction{ID: "t5", Date: "2024-01-01T23:30:00-05:00", Amount: amount("3"), Category: "Food", AccountID: "acc"},
			wantCategory: "Food",
			wantPath:     []string{"Food"},
			wantAmount:   "3",
			wantDate:     "2024-01-01",
		},
		{
			name:     "missing date",
			raw:      RawTransaction{Amount: amount("3"), AccountID: "acc"},
			wantCode: domainerror.ErrCodeMissingTransactionDate,
		},
		{
			name:     "bad date",
			raw:      RawTransaction{Date: "01/02/2024", Amount: amount("3"), AccountID: "acc"},
			wantCode: domainerror.ErrCodeInvalidTransactionDate,
		},
		{
			name:     "missing amount",
			raw:      RawTransaction{Date: "2024-01-01", AccountID: "acc"},
			wantCode: domainerror.ErrCodeInvalidTransactionAmount,
		},
		{
			name:     "missing account",
			raw:      RawTransaction{Date: "2024-01-01", Amount: amount("3")},
			wantCode: domainerror.ErrCodeMissingAccountID,
		},
		{
			name:     "non-string category",
			raw:      RawTransaction{Date: "2024-01-01", Amount: amount("3"), AccountID: "acc", Category: 42.0},
			wantCode: domainerror.ErrCodeInvalidCategory,
		},
		{
			name:       "unknown convention",
			raw:        RawTransaction{Date: "2024-01-01", Amount: amount("3"), AccountID: "acc"},
			convention: "whatever",
			wantCode:   domainerror.ErrCodeInvalidSignConvention,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			convention := tt.convention
			if convention == "" {
				convention = SignExpensePositive
			}

			tx, err := Normalize(tt.raw, convention)

			if tt.wantCode != "" {
				var txErr *domainerror.TransactionError
				if !errors.As(err, &txErr) {
					t.Fatalf("expected TransactionError, got %v", err)
				}
				if txErr.Code != tt.wantCode {
					t.Errorf("code = %s, want %s", txErr.Code, tt.wantCode)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tx.Category != tt.wantCategory {
				t.Errorf("category = %q, want %q", tx.Category, tt.wantCategory)
			}
			if !reflect.DeepEqual(tx.CategoryPath, tt.wantPath) {
				t.Errorf("path = %v, want %v", tx.CategoryPath, tt.wantPath)
			}
			if !tx.Amount.Equal(decimal.RequireFromString(tt.wantAmount)) {
				t.Errorf("amount = %s, want %s", tx.Amount, tt.wantAmount)
			}
			if got := tx.Date.Format("2006-01-02"); got != tt.wantDate {
				t.Errorf("date = %s, want %s", got, tt.wantDate)
			}
		})
	}
}

func TestNormalize_GeneratesMissingID(t *testing.T) {
	tx, err := Normalize(RawTransaction{Date: "2024-01-01", Amount: amount("1"), AccountID: "acc"}, SignExpensePositive)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tx.ID == "" {
		t.Error("expected a generated ID")
	}
}

func TestParseSignConvention(t *testing.T) {
	if c, err := ParseSignConvention(""); err != nil || c != SignExpensePositive {
		t.Errorf("default convention = %q, %v", c, err)
	}
	if _, err := ParseSignConvention("debit_positive"); !errors.Is(err, domainerror.ErrInvalidSignConvention) {
		t.Errorf("expected ErrInvalidSignConvention, got %v", err)
	}
}
