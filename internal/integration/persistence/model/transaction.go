// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/insights/internal/domain/entity"
)

// TransactionModel represents the transactions table in the database.
type TransactionModel struct {
	ID           string          `gorm:"type:varchar(64);primaryKey"`
	Date         time.Time       `gorm:"type:date;not null;index"`
	Amount       decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Category     string          `gorm:"type:varchar(255);not null;index"`
	CategoryPath StringList      `gorm:"column:category_path"`
	AccountID    string          `gorm:"type:varchar(64);not null;index"`
	MerchantName string          `gorm:"type:varchar(255)"`
	Description  string          `gorm:"type:text"`
	Pending      bool            `gorm:"not null;default:false"`
	CreatedAt    time.Time       `gorm:"not null"`
	UpdatedAt    time.Time       `gorm:"not null"`
}

// TableName returns the table name for the TransactionModel.
func (TransactionModel) TableName() string {
	return "transactions"
}

// ToEntity converts a TransactionModel to a domain Transaction entity.
func (m *TransactionModel) ToEntity() *entity.Transaction {
	var path []string
	if len(m.CategoryPath) > 0 {
		path = append(path, m.CategoryPath...)
	}

	return &entity.Transaction{
		ID:           m.ID,
		Date:         entity.TruncateDay(m.Date),
		Amount:       m.Amount,
		Category:     m.Category,
		CategoryPath: path,
		AccountID:    m.AccountID,
		MerchantName: m.MerchantName,
		Description:  m.Description,
		Pending:      m.Pending,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

// TransactionFromEntity creates a TransactionModel from a domain Transaction entity.
func TransactionFromEntity(transaction *entity.Transaction) *TransactionModel {
	now := time.Now().UTC()
	createdAt := transaction.CreatedAt
	if createdAt.IsZero() {
		createdAt = now
	}

	return &TransactionModel{
		ID:           transaction.ID,
		Date:         entity.TruncateDay(transaction.Date),
		Amount:       transaction.Amount,
		Category:     transaction.Category,
		CategoryPath: StringList(transaction.CategoryPath),
		AccountID:    transaction.AccountID,
		MerchantName: transaction.MerchantName,
		Description:  transaction.Description,
		Pending:      transaction.Pending,
		CreatedAt:    createdAt,
		UpdatedAt:    now,
	}
}
