package analytics

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"sync"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/insights/internal/application/adapter"
	"github.com/finance-tracker/insights/internal/domain/entity"
	domainerror "github.com/finance-tracker/insights/internal/domain/error"
	"github.com/finance-tracker/insights/internal/domain/valueobject"
)

type memoryTransactionRepo struct {
	mu    sync.Mutex
	txs   []*entity.Transaction
	finds int
	err   error
}

func (r *memoryTransactionRepo) UpsertMany(_ context.Context, txs []*entity.Transaction) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.txs = append(r.txs, txs...)
	return int64(len(txs)), nil
}

func (r *memoryTransactionRepo) FindByID(_ context.Context, id string) (*entity.Transaction, error) {
	for _, tx := range r.txs {
		if tx.ID == id {
			return tx, nil
		}
	}
	return nil, errors.New("not found")
}

func (r *memoryTransactionRepo) Find(_ context.Context, q adapter.TransactionQuery) ([]*entity.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.finds++
	if r.err != nil {
		return nil, r.err
	}
	f := valueobject.FilterSpec{Categories: q.Categories, Accounts: q.Accounts}.Filter()
	return Apply(r.txs, f, q.Range), nil
}

func (r *memoryTransactionRepo) Bounds(context.Context) (*adapter.TransactionBounds, error) {
	bounds := &adapter.TransactionBounds{TotalTransactions: int64(len(r.txs))}
	for _, tx := range r.txs {
		d := tx.Date
		if bounds.OldestDate == nil || d.Before(*bounds.OldestDate) {
			bounds.OldestDate = &d
		}
		if bounds.NewestDate == nil || d.After(*bounds.NewestDate) {
			bounds.NewestDate = &d
		}
	}
	return bounds, nil
}

type memoryBudgetRepo struct {
	budgets map[string]*entity.Budget
}

func (r *memoryBudgetRepo) Upsert(_ context.Context, b *entity.Budget) error {
	r.budgets[b.Category] = b
	return nil
}

func (r *memoryBudgetRepo) FindAll(context.Context) ([]*entity.Budget, error) {
	out := make([]*entity.Budget, 0, len(r.budgets))
	for _, b := range r.budgets {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out, nil
}

func (r *memoryBudgetRepo) FindByCategory(_ context.Context, category string) (*entity.Budget, error) {
	if b, ok := r.budgets[category]; ok {
		return b, nil
	}
	return nil, domainerror.ErrBudgetNotFound
}

func (r *memoryBudgetRepo) DeleteByCategory(_ context.Context, category string) error {
	delete(r.budgets, category)
	return nil
}

type memoryCache struct {
	mu      sync.Mutex
	entries map[string][]byte
	version int64
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: make(map[string][]byte)}
}

func (c *memoryCache) Get(_ context.Context, key string, dest any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	raw, ok := c.entries[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (c *memoryCache) Set(_ context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = raw
	return nil
}

func (c *memoryCache) Version(context.Context) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.version, nil
}

func (c *memoryCache) BumpVersion(context.Context) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.version++
	return c.version, nil
}

type recordingNotifier struct {
	digests []adapter.BudgetAlertDigest
}

func (n *recordingNotifier) NotifyBudgetAlerts(_ context.Context, d adapter.BudgetAlertDigest) (string, error) {
	n.digests = append(n.digests, d)
	return "msg-1", nil
}

func seededRepo(t *testing.T) *memoryTransactionRepo {
	return &memoryTransactionRepo{txs: []*entity.Transaction{
		newTx(t, "2024-01-20", "400", "Food"),
		newTx(t, "2024-02-10", "-3000", "Salary"),
		newTx(t, "2024-03-01", "300", "Food"),
		newTx(t, "2024-03-10", "700", "Transport", withDescription("Train pass")),
		newTx(t, "2024-03-14", "-2000", "Salary"),
	}}
}

func TestGetTrendsUseCase_LongRangeIsCapped(t *testing.T) {
	uc := NewGetTrendsUseCase(seededRepo(t), nil, fixedClock(t, "2024-03-15"))

	out, err := uc.Execute(context.Background(), GetTrendsInput{
		Filter: valueobject.FilterSpec{DateRange: "90"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(out.Trends) != MaxTrendBuckets {
		t.Fatalf("expected %d buckets, got %d", MaxTrendBuckets, len(out.Trends))
	}
	if out.Period.Days != 90 || out.TrendWindow.Days != 30 {
		t.Errorf("period %d days, trend window %d days", out.Period.Days, out.TrendWindow.Days)
	}
	if !out.TrendWindow.EndDate.Equal(day(t, "2024-03-15")) {
		t.Errorf("trend window must end today, got %s", out.TrendWindow.EndDate)
	}
}

func TestGetTrendsUseCase_MonthlyGranularityCoversWholeRange(t *testing.T) {
	uc := NewGetTrendsUseCase(seededRepo(t), nil, fixedClock(t, "2024-03-15"))

	out, err := uc.Execute(context.Background(), GetTrendsInput{
		Filter:      valueobject.FilterSpec{DateRange: "90"},
		Granularity: GranularityMonthly,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 2023-12-17..2024-03-15
	if len(out.Trends) != 4 {
		t.Fatalf("expected 4 months, got %d", len(out.Trends))
	}
	if out.Trends[0].PeriodLabel != "Dec 2023" {
		t.Errorf("first label = %q", out.Trends[0].PeriodLabel)
	}
	if !out.Trends[1].Spending.Equal(dec("400")) {
		t.Errorf("january spending = %s, want 400", out.Trends[1].Spending)
	}
}

func TestGetTrendsUseCase_InvalidRange(t *testing.T) {
	uc := NewGetTrendsUseCase(seededRepo(t), nil, fixedClock(t, "2024-03-15"))

	_, err := uc.Execute(context.Background(), GetTrendsInput{
		Filter: valueobject.FilterSpec{
			DateRange:       valueobject.RangeCustom,
			CustomDateRange: &valueobject.CustomDateRange{Start: "2024-03-10", End: "2024-03-01"},
		},
	})

	var analyticsErr *domainerror.AnalyticsError
	if !errors.As(err, &analyticsErr) || analyticsErr.Code != domainerror.ErrCodeInvalidRange {
		t.Fatalf("expected invalid range error, got %v", err)
	}
}

func TestGetTrendsUseCase_UsesCacheUntilVersionChanges(t *testing.T) {
	repo := seededRepo(t)
	cache := newMemoryCache()
	uc := NewGetTrendsUseCase(repo, cache, fixedClock(t, "2024-03-15"))
	input := GetTrendsInput{Filter: valueobject.FilterSpec{DateRange: "7"}}
	ctx := context.Background()

	first, err := uc.Execute(ctx, input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := uc.Execute(ctx, input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.finds != 1 {
		t.Errorf("expected 1 repository load, got %d", repo.finds)
	}
	if !second.Trends[5].Spending.Equal(first.Trends[5].Spending) {
		t.Errorf("cached result differs: %s vs %s", second.Trends[5].Spending, first.Trends[5].Spending)
	}

	if _, err := cache.BumpVersion(ctx); err != nil {
		t.Fatal(err)
	}
	if _, err := uc.Execute(ctx, input); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.finds != 2 {
		t.Errorf("expected reload after version bump, got %d loads", repo.finds)
	}
}

func TestGetCategoriesUseCase(t *testing.T) {
	uc := NewGetCategoriesUseCase(seededRepo(t), nil, fixedClock(t, "2024-03-15"))

	out, err := uc.Execute(context.Background(), GetCategoriesInput{
		Filter:           valueobject.FilterSpec{DateRange: "30"},
		SelectedCategory: "all",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !out.TotalExpenses.Equal(dec("1000")) {
		t.Errorf("total expenses = %s, want 1000", out.TotalExpenses)
	}
	if len(out.Categories) != 2 || out.Categories[0].Percentage != 70 || out.Categories[1].Percentage != 30 {
		t.Errorf("unexpected breakdown: %+v", out.Categories)
	}
}

func TestGetSummaryUseCase(t *testing.T) {
	uc := NewGetSummaryUseCase(seededRepo(t), nil, fixedClock(t, "2024-03-15"))
	ctx := context.Background()

	t.Run("without comparison", func(t *testing.T) {
		out, err := uc.Execute(ctx, GetSummaryInput{Filter: valueobject.FilterSpec{DateRange: "30"}})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Previous != nil || out.Changes != nil {
			t.Error("did not expect comparison data")
		}
		if !out.Current.NetCashFlow.Equal(dec("1000")) {
			t.Errorf("net cash flow = %s, want 1000", out.Current.NetCashFlow)
		}
	})

	t.Run("with comparison", func(t *testing.T) {
		out, err := uc.Execute(ctx, GetSummaryInput{
			Filter:              valueobject.FilterSpec{DateRange: "30"},
			CompareWithPrevious: true,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Previous == nil {
			t.Fatal("expected previous totals")
		}
		if !out.Previous.TotalIncome.Equal(dec("3000")) || !out.Previous.TotalExpenses.Equal(dec("400")) {
			t.Errorf("previous totals = %+v", out.Previous)
		}
		income := out.Changes[MetricTotalIncome]
		if income.Percentage == nil || *income.Percentage != -33.33 {
			t.Errorf("income change = %v, want -33.33", income.Percentage)
		}
		expenses := out.Changes[MetricTotalExpenses]
		if expenses.Percentage == nil || *expenses.Percentage != 150 {
			t.Errorf("expense change = %v, want 150", expenses.Percentage)
		}
	})

	t.Run("repository failure", func(t *testing.T) {
		failing := &memoryTransactionRepo{err: errors.New("connection refused")}
		uc := NewGetSummaryUseCase(failing, nil, fixedClock(t, "2024-03-15"))
		_, err := uc.Execute(ctx, GetSummaryInput{
			Filter:              valueobject.FilterSpec{DateRange: "30"},
			CompareWithPrevious: true,
		})
		if err == nil {
			t.Fatal("expected error")
		}
	})
}

func TestGetAlertsAndNotifyUseCases(t *testing.T) {
	budgets := &memoryBudgetRepo{budgets: map[string]*entity.Budget{
		"Food":      {Category: "Food", Amount: dec("350")},
		"Transport": {Category: "Transport", Amount: dec("500")},
	}}
	alerts := NewGetAlertsUseCase(seededRepo(t), budgets, nil, fixedClock(t, "2024-03-15"))
	notifier := &recordingNotifier{}
	notify := NewNotifyBudgetAlertsUseCase(alerts, notifier)
	ctx := context.Background()

	out, err := alerts.Execute(ctx, GetAlertsInput{Filter: valueobject.FilterSpec{DateRange: "30"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out.Budgets) != 2 || out.Budgets[0].Category != "Transport" {
		t.Errorf("unexpected budget lines: %+v", out.Budgets)
	}
	if len(out.Alerts) != 2 {
		t.Errorf("expected 2 alerts (Transport over, Food warning), got %+v", out.Alerts)
	}

	sent, err := notify.Execute(ctx, NotifyBudgetAlertsInput{Filter: valueobject.FilterSpec{DateRange: "30"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !sent.Sent || sent.AlertCount != 2 || sent.MessageID != "msg-1" {
		t.Errorf("unexpected notify output: %+v", sent)
	}
	if len(notifier.digests) != 1 || notifier.digests[0].Alerts[0].Spent != "700.00" {
		t.Errorf("unexpected digest: %+v", notifier.digests)
	}
}

func TestNotifyBudgetAlertsUseCase_NotConfigured(t *testing.T) {
	notify := NewNotifyBudgetAlertsUseCase(nil, nil)

	_, err := notify.Execute(context.Background(), NotifyBudgetAlertsInput{})

	if !errors.Is(err, domainerror.ErrAlertRecipientMissing) {
		t.Errorf("expected ErrAlertRecipientMissing, got %v", err)
	}
}

func TestGetInsightsUseCase(t *testing.T) {
	repo := seededRepo(t)
	for _, d := range []string{"2024-02-01", "2024-02-15", "2024-02-29", "2024-03-14"} {
		repo.txs = append(repo.txs, newTx(t, d, "12.99", "Music", withMerchant("Spotify")))
	}
	budgets := &memoryBudgetRepo{budgets: map[string]*entity.Budget{
		"Gifts": {Category: "Gifts", Amount: decimal.Zero},
	}}
	uc := NewGetInsightsUseCase(repo, budgets, nil, fixedClock(t, "2024-03-15"))

	out, err := uc.Execute(context.Background(), GetInsightsInput{Filter: valueobject.FilterSpec{DateRange: "30"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(out.RecurringPayments) != 1 || out.RecurringPayments[0].Frequency != "biweekly" {
		t.Errorf("unexpected recurring payments: %+v", out.RecurringPayments)
	}
	// Gifts has nothing to save; Music tripled against the previous 30 days
	if len(out.SavingsOpportunities) != 1 {
		t.Fatalf("unexpected savings opportunities: %+v", out.SavingsOpportunities)
	}
	music := out.SavingsOpportunities[0]
	if music.Category != "Music" || music.Reason != ReasonIncreasingTrend || !music.PotentialSavings.Equal(dec("3.9")) {
		t.Errorf("unexpected opportunity: %+v", music)
	}
	if out.AsOf.Days != 60 {
		t.Errorf("expected 60-day lookback, got %d", out.AsOf.Days)
	}
}

func TestGetDataRangeUseCase(t *testing.T) {
	out, err := NewGetDataRangeUseCase(seededRepo(t)).Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !out.HasData || out.TotalTransactions != 5 {
		t.Errorf("unexpected output: %+v", out)
	}
	if !out.OldestDate.Equal(day(t, "2024-01-20")) || !out.NewestDate.Equal(day(t, "2024-03-14")) {
		t.Errorf("bounds = %s..%s", out.OldestDate, out.NewestDate)
	}

	empty, err := NewGetDataRangeUseCase(&memoryTransactionRepo{}).Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if empty.HasData {
		t.Error("empty repository must report no data")
	}
}
