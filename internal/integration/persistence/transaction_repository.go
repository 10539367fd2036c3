// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/finance-tracker/insights/internal/application/adapter"
	"github.com/finance-tracker/insights/internal/domain/entity"
	domainerror "github.com/finance-tracker/insights/internal/domain/error"
	"github.com/finance-tracker/insights/internal/integration/persistence/model"
)

// upsertBatchSize bounds the rows written per INSERT statement.
const upsertBatchSize = 500

// transactionRepository implements the adapter.TransactionRepository interface.
type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository instance.
func NewTransactionRepository(db *gorm.DB) adapter.TransactionRepository {
	return &transactionRepository{
		db: db,
	}
}

// UpsertMany inserts or replaces transactions by ID in a single database transaction.
func (r *transactionRepository) UpsertMany(ctx context.Context, transactions []*entity.Transaction) (int64, error) {
	if len(transactions) == 0 {
		return 0, nil
	}

	models := make([]*model.TransactionModel, len(transactions))
	for i, txn := range transactions {
		models[i] = model.TransactionFromEntity(txn)
	}

	var written int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"date", "amount", "category", "category_path", "account_id",
				"merchant_name", "description", "pending", "updated_at",
			}),
		}).CreateInBatches(models, upsertBatchSize)
		if result.Error != nil {
			return result.Error
		}
		written = result.RowsAffected
		return nil
	})
	if err != nil {
		return 0, err
	}

	// Some drivers report 2 affected rows per updated conflict.
	if written > int64(len(transactions)) {
		written = int64(len(transactions))
	}
	return written, nil
}

// FindByID retrieves a transaction by its ID.
func (r *transactionRepository) FindByID(ctx context.Context, id string) (*entity.Transaction, error) {
	var transactionModel model.TransactionModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&transactionModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.NewTransactionError(
				domainerror.ErrCodeTransactionNotFound,
				"transaction not found",
				domainerror.ErrTransactionNotFound,
			)
		}
		return nil, result.Error
	}
	return transactionModel.ToEntity(), nil
}

// Find retrieves every transaction matching the query, ordered by date then ID.
func (r *transactionRepository) Find(ctx context.Context, query adapter.TransactionQuery) ([]*entity.Transaction, error) {
	var models []model.TransactionModel

	db := r.db.WithContext(ctx).Model(&model.TransactionModel{})
	if query.Range != nil {
		db = db.Where("date >= ? AND date <= ?", query.Range.Start, query.Range.End)
	}
	if len(query.Categories) > 0 {
		db = db.Where("category IN ?", query.Categories)
	}
	if len(query.Accounts) > 0 {
		db = db.Where("account_id IN ?", query.Accounts)
	}

	if err := db.Order("date ASC, id ASC").Find(&models).Error; err != nil {
		return nil, err
	}

	transactions := make([]*entity.Transaction, len(models))
	for i := range models {
		transactions[i] = models[i].ToEntity()
	}
	return transactions, nil
}

// Bounds returns the oldest and newest transaction dates and the record count.
func (r *transactionRepository) Bounds(ctx context.Context) (*adapter.TransactionBounds, error) {
	bounds := &adapter.TransactionBounds{}

	db := r.db.WithContext(ctx).Model(&model.TransactionModel{})
	if err := db.Count(&bounds.TotalTransactions).Error; err != nil {
		return nil, err
	}
	if bounds.TotalTransactions == 0 {
		return bounds, nil
	}

	var oldest, newest model.TransactionModel
	if err := r.db.WithContext(ctx).Order("date ASC").First(&oldest).Error; err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Order("date DESC").First(&newest).Error; err != nil {
		return nil, err
	}

	oldestDate := entity.TruncateDay(oldest.Date)
	newestDate := entity.TruncateDay(newest.Date)
	bounds.OldestDate = &oldestDate
	bounds.NewestDate = &newestDate

	return bounds, nil
}

// Ensure transactionRepository implements adapter.TransactionRepository.
var _ adapter.TransactionRepository = (*transactionRepository)(nil)
