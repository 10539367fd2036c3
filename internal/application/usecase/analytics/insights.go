package analytics

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/insights/internal/domain/entity"
	"github.com/finance-tracker/insights/internal/domain/valueobject"
)

// Savings heuristics.
var (
	// TrendIncreaseThreshold is the month-over-month increase, in percent, that flags a category.
	TrendIncreaseThreshold = decimal.NewFromInt(20)

	// TrendSavingsFraction is the share of current spend suggested as savings for a rising category.
	TrendSavingsFraction = decimal.NewFromFloat(0.10)
)

// trendWindowDays is the length of each month-over-month comparison window.
const trendWindowDays = 30

// SavingsReason explains why a savings opportunity was raised.
type SavingsReason string

const (
	ReasonOverBudget      SavingsReason = "over_budget"
	ReasonIncreasingTrend SavingsReason = "increasing_trend"
)

// SavingsOpportunity is a deterministic spending suggestion for one category.
type SavingsOpportunity struct {
	Category         string          `json:"category"`
	Reason           SavingsReason   `json:"reason"`
	Suggestion       string          `json:"suggestion"`
	PotentialSavings decimal.Decimal `json:"potential_savings"`
}

// RecurringPayment is a merchant charge that repeats at a consistent amount and interval.
type RecurringPayment struct {
	Merchant         string          `json:"merchant"`
	Category         string          `json:"category"`
	Amount           decimal.Decimal `json:"amount"`
	Frequency        string          `json:"frequency"`
	IntervalDays     int             `json:"interval_days"`
	Occurrences      int             `json:"occurrences"`
	LastDate         time.Time       `json:"last_date"`
	NextExpectedDate time.Time       `json:"next_expected_date"`
}

// Insights groups the generated suggestions.
type Insights struct {
	SavingsOpportunities []SavingsOpportunity `json:"savings_opportunities"`
	RecurringPayments    []RecurringPayment   `json:"recurring_payments"`
}

// GenerateInsights derives savings opportunities and recurring payments.
// asOf anchors the month-over-month windows.
func GenerateInsights(txs []*entity.Transaction, lines []BudgetLine, asOf time.Time) Insights {
	return Insights{
		SavingsOpportunities: SavingsOpportunities(txs, lines, asOf),
		RecurringPayments:    DetectRecurring(txs, valueobject.DefaultRecurrenceConfig()),
	}
}

// SavingsOpportunities returns at most one suggestion per category, largest savings first.
// Over-budget categories take precedence over rising ones.
func SavingsOpportunities(txs []*entity.Transaction, lines []BudgetLine, asOf time.Time) []SavingsOpportunity {
	byCategory := make(map[string]SavingsOpportunity)

	for _, line := range lines {
		if !line.OverBudget {
			continue
		}
		overage := line.Spent.Sub(line.Budgeted).Round(2)
		if !overage.IsPositive() {
			continue
		}
		byCategory[line.Category] = SavingsOpportunity{
			Category: line.Category,
			Reason:   ReasonOverBudget,
			Suggestion: fmt.Sprintf("Spending on %s is %s over budget. Cutting back to the budget saves %s.",
				line.Category, overage.StringFixed(2), overage.StringFixed(2)),
			PotentialSavings: overage,
		}
	}

	current, _ := valueobject.LastNDays(asOf, trendWindowDays)
	previous := current.Previous()
	currentSpend := SpendByCategory(inRange(txs, current))
	previousSpend := SpendByCategory(inRange(txs, previous))

	for category, spent := range currentSpend {
		if _, ok := byCategory[category]; ok {
			continue
		}
		before, ok := previousSpend[category]
		if !ok || !before.IsPositive() {
			continue
		}
		increase := spent.Sub(before).Mul(hundred).Div(before)
		if !increase.GreaterThan(TrendIncreaseThreshold) {
			continue
		}
		savings := spent.Mul(TrendSavingsFraction).Round(2)
		byCategory[category] = SavingsOpportunity{
			Category: category,
			Reason:   ReasonIncreasingTrend,
			Suggestion: fmt.Sprintf("Spending on %s rose %s%% compared with the previous %d days. Trimming it by %s%% saves %s.",
				category, increase.Round(0).String(), trendWindowDays,
				TrendSavingsFraction.Mul(hundred).String(), savings.StringFixed(2)),
			PotentialSavings: savings,
		}
	}

	out := make([]SavingsOpportunity, 0, len(byCategory))
	for _, opp := range byCategory {
		out = append(out, opp)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].PotentialSavings.Equal(out[j].PotentialSavings) {
			return out[i].PotentialSavings.GreaterThan(out[j].PotentialSavings)
		}
		return out[i].Category < out[j].Category
	})

	return out
}

// DetectRecurring groups expenses by merchant and reports groups whose amounts and
// intervals stay within the configured tolerances of their medians.
func DetectRecurring(txs []*entity.Transaction, cfg valueobject.RecurrenceConfig) []RecurringPayment {
	groups := make(map[string][]*entity.Transaction)
	for _, tx := range txs {
		if !tx.IsExpense() {
			continue
		}
		key := merchantKey(tx.MerchantName)
		if key == "" {
			continue
		}
		groups[key] = append(groups[key], tx)
	}

	out := make([]RecurringPayment, 0)
	for _, group := range groups {
		if payment, ok := recurringPayment(group, cfg); ok {
			out = append(out, payment)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].NextExpectedDate.Equal(out[j].NextExpectedDate) {
			return out[i].NextExpectedDate.Before(out[j].NextExpectedDate)
		}
		return out[i].Merchant < out[j].Merchant
	})

	return out
}

func recurringPayment(group []*entity.Transaction, cfg valueobject.RecurrenceConfig) (RecurringPayment, bool) {
	if len(group) < cfg.MinOccurrences {
		return RecurringPayment{}, false
	}

	sorted := make([]*entity.Transaction, len(group))
	copy(sorted, group)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].Date.Equal(sorted[j].Date) {
			return sorted[i].Date.Before(sorted[j].Date)
		}
		return sorted[i].ID < sorted[j].ID
	})

	amounts := make([]decimal.Decimal, len(sorted))
	for i, tx := range sorted {
		amounts[i] = tx.Amount
	}
	medianAmount := medianDecimal(amounts)
	for _, amount := range amounts {
		if !cfg.IsAmountWithinTolerance(amount, medianAmount) {
			return RecurringPayment{}, false
		}
	}

	intervals := make([]int, len(sorted)-1)
	for i := 1; i < len(sorted); i++ {
		intervals[i-1] = daysBetween(sorted[i-1].Day(), sorted[i].Day())
	}
	medianInterval := medianInt(intervals)
	if medianInterval < 1 {
		return RecurringPayment{}, false
	}
	for _, interval := range intervals {
		if !cfg.IsIntervalWithinTolerance(interval, medianInterval) {
			return RecurringPayment{}, false
		}
	}

	last := sorted[len(sorted)-1]
	return RecurringPayment{
		Merchant:         strings.TrimSpace(last.MerchantName),
		Category:         last.Category,
		Amount:           medianAmount.Round(2),
		Frequency:        frequencyLabel(medianInterval),
		IntervalDays:     medianInterval,
		Occurrences:      len(sorted),
		LastDate:         last.Day(),
		NextExpectedDate: last.Day().AddDate(0, 0, medianInterval),
	}, true
}

func merchantKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// frequencyLabel names the cadence of a median interval in days.
func frequencyLabel(days int) string {
	switch {
	case days >= 6 && days <= 8:
		return "weekly"
	case days >= 13 && days <= 16:
		return "biweekly"
	case days >= 27 && days <= 33:
		return "monthly"
	case days >= 85 && days <= 95:
		return "quarterly"
	case days >= 355 && days <= 375:
		return "yearly"
	default:
		return fmt.Sprintf("every %d days", days)
	}
}

func daysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}

func medianDecimal(values []decimal.Decimal) decimal.Decimal {
	sorted := make([]decimal.Decimal, len(values))
	copy(sorted, values)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].LessThan(sorted[j]) })

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return sorted[mid-1].Add(sorted[mid]).Div(decimal.NewFromInt(2))
}

func medianInt(values []int) int {
	sorted := make([]int, len(values))
	copy(sorted, values)
	sort.Ints(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}
