package analytics

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/insights/internal/domain/entity"
)

// Severity classifies budget utilization.
type Severity string

const (
	SeverityHealthy Severity = "healthy"
	SeverityWarning Severity = "warning"
	SeverityOver    Severity = "over"
)

// Level returns the low/medium/high alias of the severity.
func (s Severity) Level() string {
	switch s {
	case SeverityOver:
		return "high"
	case SeverityWarning:
		return "medium"
	default:
		return "low"
	}
}

// Utilization thresholds, in percent.
var (
	warningThreshold = decimal.NewFromInt(80)
	overThreshold    = decimal.NewFromInt(100)
)

// BudgetInput is a budget ceiling for one category.
type BudgetInput struct {
	Category string
	Budgeted decimal.Decimal
}

// BudgetLine is the evaluated state of one budget.
// Percentage is nil for a zero budget, which is always over.
type BudgetLine struct {
	Category   string          `json:"category"`
	Budgeted   decimal.Decimal `json:"budgeted"`
	Spent      decimal.Decimal `json:"spent"`
	Remaining  decimal.Decimal `json:"remaining"`
	Percentage *float64        `json:"percentage"`
	OverBudget bool            `json:"over_budget"`
	Severity   Severity        `json:"severity"`
}

// BudgetAlert is emitted for every line at warning or over severity.
type BudgetAlert struct {
	Category   string   `json:"category"`
	Severity   Severity `json:"severity"`
	Level      string   `json:"level"`
	Message    string   `json:"message"`
	Percentage *float64 `json:"percentage"`
}

// BudgetInputs converts persisted budgets into evaluator input.
func BudgetInputs(budgets []*entity.Budget) []BudgetInput {
	inputs := make([]BudgetInput, 0, len(budgets))
	for _, b := range budgets {
		inputs = append(inputs, BudgetInput{Category: b.Category, Budgeted: b.Amount})
	}
	return inputs
}

// SpendByCategory sums expenses per category.
func SpendByCategory(txs []*entity.Transaction) map[string]decimal.Decimal {
	spend := make(map[string]decimal.Decimal)
	for _, tx := range txs {
		if !tx.IsExpense() {
			continue
		}
		spend[tx.Category] = spend[tx.Category].Add(tx.Amount)
	}
	return spend
}

// EvaluateBudgets compares spend against each budget ceiling.
// Lines are ordered by utilization descending with zero budgets first, then by category.
func EvaluateBudgets(budgets []BudgetInput, spendByCategory map[string]decimal.Decimal) []BudgetLine {
	lines := make([]BudgetLine, 0, len(budgets))
	for _, b := range budgets {
		spent, ok := spendByCategory[b.Category]
		if !ok {
			spent = decimal.Zero
		}
		lines = append(lines, evaluateLine(b, spent))
	}

	sort.SliceStable(lines, func(i, j int) bool {
		pi, pj := lines[i].Percentage, lines[j].Percentage
		switch {
		case pi == nil && pj != nil:
			return true
		case pi != nil && pj == nil:
			return false
		case pi != nil && pj != nil:
			if c := compareUtilization(lines[i], lines[j]); c != 0 {
				return c > 0
			}
		}
		return lines[i].Category < lines[j].Category
	})

	return lines
}

func evaluateLine(b BudgetInput, spent decimal.Decimal) BudgetLine {
	line := BudgetLine{
		Category:  b.Category,
		Budgeted:  b.Budgeted,
		Spent:     spent,
		Remaining: b.Budgeted.Sub(spent),
	}

	if !b.Budgeted.IsPositive() {
		line.OverBudget = true
		line.Severity = SeverityOver
		return line
	}

	value, _ := spent.Mul(hundred).Div(b.Budgeted).Round(2).Float64()
	line.Percentage = &value
	line.Severity = classify(spent, b.Budgeted)
	line.OverBudget = line.Severity == SeverityOver

	return line
}

// classify compares exact amounts; the reported percentage is rounded and
// must not decide the severity.
func classify(spent, budgeted decimal.Decimal) Severity {
	scaled := spent.Mul(hundred)
	switch {
	case scaled.GreaterThan(budgeted.Mul(overThreshold)):
		return SeverityOver
	case scaled.GreaterThanOrEqual(budgeted.Mul(warningThreshold)):
		return SeverityWarning
	default:
		return SeverityHealthy
	}
}

// compareUtilization orders two positive-budget lines by spent/budgeted
// without dividing.
func compareUtilization(a, b BudgetLine) int {
	return a.Spent.Mul(b.Budgeted).Cmp(b.Spent.Mul(a.Budgeted))
}

// Alerts returns an alert for every warning or over line, preserving line order.
func Alerts(lines []BudgetLine) []BudgetAlert {
	alerts := make([]BudgetAlert, 0)
	for _, line := range lines {
		if line.Severity == SeverityHealthy {
			continue
		}
		alerts = append(alerts, BudgetAlert{
			Category:   line.Category,
			Severity:   line.Severity,
			Level:      line.Severity.Level(),
			Message:    alertMessage(line),
			Percentage: line.Percentage,
		})
	}
	return alerts
}

func alertMessage(line BudgetLine) string {
	if line.Percentage == nil {
		return fmt.Sprintf("%s has no budget allocated but %s was spent", line.Category, line.Spent.StringFixed(2))
	}
	if line.Severity == SeverityOver {
		return fmt.Sprintf("%s is over budget by %s (%.2f%% used)",
			line.Category, line.Remaining.Neg().StringFixed(2), *line.Percentage)
	}
	return fmt.Sprintf("%s has used %.2f%% of its budget, %s remaining",
		line.Category, *line.Percentage, line.Remaining.StringFixed(2))
}
