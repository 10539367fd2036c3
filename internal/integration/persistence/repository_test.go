package persistence

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/finance-tracker/insights/internal/application/adapter"
	"github.com/finance-tracker/insights/internal/domain/entity"
	domainerror "github.com/finance-tracker/insights/internal/domain/error"
	"github.com/finance-tracker/insights/internal/domain/valueobject"
	"github.com/finance-tracker/insights/internal/integration/persistence/model"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(&model.TransactionModel{}, &model.BudgetModel{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func txn(id, date, amount, category, account string) *entity.Transaction {
	d, _ := time.Parse(valueobject.DateLayout, date)
	return &entity.Transaction{
		ID:           id,
		Date:         d,
		Amount:       decimal.RequireFromString(amount),
		Category:     category,
		CategoryPath: []string{category},
		AccountID:    account,
		MerchantName: "Merchant " + id,
	}
}

func TestTransactionRepository_UpsertAndFind(t *testing.T) {
	ctx := context.Background()
	repo := NewTransactionRepository(openTestDB(t))

	written, err := repo.UpsertMany(ctx, []*entity.Transaction{
		txn("t1", "2024-03-01", "12.50", "Food", "acc-1"),
		txn("t2", "2024-03-05", "-2000.00", "Salary", "acc-1"),
		txn("t3", "2024-03-10", "40.00", "Transport", "acc-2"),
	})
	if err != nil {
		t.Fatalf("UpsertMany() error = %v", err)
	}
	if written != 3 {
		t.Errorf("UpsertMany() written = %d, want 3", written)
	}

	// Re-importing an ID replaces the record instead of duplicating it.
	if _, err := repo.UpsertMany(ctx, []*entity.Transaction{
		txn("t1", "2024-03-02", "15.00", "Groceries", "acc-1"),
	}); err != nil {
		t.Fatalf("UpsertMany() replace error = %v", err)
	}

	got, err := repo.FindByID(ctx, "t1")
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}
	if got.Category != "Groceries" || !got.Amount.Equal(decimal.RequireFromString("15")) {
		t.Errorf("FindByID() = %s %s, want Groceries 15", got.Category, got.Amount)
	}
	if got.Date.Format(valueobject.DateLayout) != "2024-03-02" {
		t.Errorf("FindByID() date = %s, want 2024-03-02", got.Date.Format(valueobject.DateLayout))
	}
	if len(got.CategoryPath) != 1 || got.CategoryPath[0] != "Groceries" {
		t.Errorf("FindByID() category path = %v", got.CategoryPath)
	}

	r, _ := valueobject.ParseDateRange("2024-03-02", "2024-03-09")
	tests := []struct {
		name  string
		query adapter.TransactionQuery
		want  []string
	}{
		{name: "all", query: adapter.TransactionQuery{}, want: []string{"t1", "t2", "t3"}},
		{name: "range", query: adapter.TransactionQuery{Range: &r}, want: []string{"t1", "t2"}},
		{name: "categories", query: adapter.TransactionQuery{Categories: []string{"Transport", "Salary"}}, want: []string{"t2", "t3"}},
		{name: "accounts", query: adapter.TransactionQuery{Accounts: []string{"acc-2"}}, want: []string{"t3"}},
		{name: "no match", query: adapter.TransactionQuery{Categories: []string{"Rent"}}, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			txs, err := repo.Find(ctx, tt.query)
			if err != nil {
				t.Fatalf("Find() error = %v", err)
			}
			if len(txs) != len(tt.want) {
				t.Fatalf("Find() returned %d transactions, want %d", len(txs), len(tt.want))
			}
			for i, id := range tt.want {
				if txs[i].ID != id {
					t.Errorf("Find()[%d] = %s, want %s", i, txs[i].ID, id)
				}
			}
		})
	}
}

func TestTransactionRepository_FindByIDNotFound(t *testing.T) {
	repo := NewTransactionRepository(openTestDB(t))

	_, err := repo.FindByID(context.Background(), "missing")
	if !errors.Is(err, domainerror.ErrTransactionNotFound) {
		t.Errorf("FindByID() error = %v, want ErrTransactionNotFound", err)
	}
}

func TestTransactionRepository_Bounds(t *testing.T) {
	ctx := context.Background()
	repo := NewTransactionRepository(openTestDB(t))

	empty, err := repo.Bounds(ctx)
	if err != nil {
		t.Fatalf("Bounds() error = %v", err)
	}
	if empty.TotalTransactions != 0 || empty.OldestDate != nil || empty.NewestDate != nil {
		t.Errorf("Bounds() on empty table = %+v", empty)
	}

	if _, err := repo.UpsertMany(ctx, []*entity.Transaction{
		txn("t1", "2024-02-10", "1", "Food", "acc-1"),
		txn("t2", "2023-12-31", "1", "Food", "acc-1"),
		txn("t3", "2024-03-15", "1", "Food", "acc-1"),
	}); err != nil {
		t.Fatalf("UpsertMany() error = %v", err)
	}

	bounds, err := repo.Bounds(ctx)
	if err != nil {
		t.Fatalf("Bounds() error = %v", err)
	}
	if bounds.TotalTransactions != 3 {
		t.Errorf("TotalTransactions = %d, want 3", bounds.TotalTransactions)
	}
	if bounds.OldestDate == nil || bounds.OldestDate.Format(valueobject.DateLayout) != "2023-12-31" {
		t.Errorf("OldestDate = %v, want 2023-12-31", bounds.OldestDate)
	}
	if bounds.NewestDate == nil || bounds.NewestDate.Format(valueobject.DateLayout) != "2024-03-15" {
		t.Errorf("NewestDate = %v, want 2024-03-15", bounds.NewestDate)
	}
}

func TestBudgetRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewBudgetRepository(openTestDB(t))

	food := entity.NewBudget("Food", decimal.NewFromInt(200), entity.BudgetPeriodMonthly)
	if err := repo.Upsert(ctx, food); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}
	if err := repo.Upsert(ctx, entity.NewBudget("Entertainment", decimal.NewFromInt(50), entity.BudgetPeriodMonthly)); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	updated := entity.NewBudget("Food", decimal.NewFromInt(300), entity.BudgetPeriodWeekly)
	updated.ID = food.ID
	if err := repo.Upsert(ctx, updated); err != nil {
		t.Fatalf("Upsert() update error = %v", err)
	}

	budgets, err := repo.FindAll(ctx)
	if err != nil {
		t.Fatalf("FindAll() error = %v", err)
	}
	if len(budgets) != 2 {
		t.Fatalf("FindAll() returned %d budgets, want 2", len(budgets))
	}
	if budgets[0].Category != "Entertainment" || budgets[1].Category != "Food" {
		t.Errorf("FindAll() order = %s, %s", budgets[0].Category, budgets[1].Category)
	}

	got, err := repo.FindByCategory(ctx, "Food")
	if err != nil {
		t.Fatalf("FindByCategory() error = %v", err)
	}
	if !got.Amount.Equal(decimal.NewFromInt(300)) || got.Period != entity.BudgetPeriodWeekly {
		t.Errorf("FindByCategory() = %s %s, want 300 weekly", got.Amount, got.Period)
	}

	if err := repo.DeleteByCategory(ctx, "Food"); err != nil {
		t.Fatalf("DeleteByCategory() error = %v", err)
	}
	if _, err := repo.FindByCategory(ctx, "Food"); !errors.Is(err, domainerror.ErrBudgetNotFound) {
		t.Errorf("FindByCategory() after delete error = %v, want ErrBudgetNotFound", err)
	}
	if err := repo.DeleteByCategory(ctx, "Food"); !errors.Is(err, domainerror.ErrBudgetNotFound) {
		t.Errorf("DeleteByCategory() twice error = %v, want ErrBudgetNotFound", err)
	}
}
