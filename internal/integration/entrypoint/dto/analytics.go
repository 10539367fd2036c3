package dto

import (
	"github.com/finance-tracker/insights/internal/application/usecase/analytics"
)

// TrendsResponse represents the response for the trends API.
type TrendsResponse struct {
	Period      PeriodResponse       `json:"period"`
	TrendWindow PeriodResponse       `json:"trend_window"`
	Granularity string               `json:"granularity"`
	Trends      []TrendPointResponse `json:"trends"`
}

// TrendPointResponse represents a single trend bucket.
type TrendPointResponse struct {
	Date             string  `json:"date"`
	PeriodLabel      string  `json:"period_label,omitempty"`
	Income           float64 `json:"income"`
	Spending         float64 `json:"spending"`
	Net              float64 `json:"net"`
	TransactionCount int     `json:"transaction_count"`
}

// ToTrendsResponse converts a GetTrendsOutput to TrendsResponse DTO.
func ToTrendsResponse(output *analytics.GetTrendsOutput) TrendsResponse {
	trends := make([]TrendPointResponse, len(output.Trends))
	for i, point := range output.Trends {
		trends[i] = TrendPointResponse{
			Date:             formatDate(point.Date),
			PeriodLabel:      point.PeriodLabel,
			Income:           toFloat(point.Income),
			Spending:         toFloat(point.Spending),
			Net:              toFloat(point.Net),
			TransactionCount: point.TransactionCount,
		}
	}

	return TrendsResponse{
		Period:      ToPeriodResponse(output.Period),
		TrendWindow: ToPeriodResponse(output.TrendWindow),
		Granularity: string(output.Granularity),
		Trends:      trends,
	}
}

// CategoriesResponse represents the response for the category breakdown API.
type CategoriesResponse struct {
	Period        PeriodResponse          `json:"period"`
	TotalExpenses float64                 `json:"total_expenses"`
	Categories    []CategorySliceResponse `json:"categories"`
}

// CategorySliceResponse represents one category of the breakdown.
type CategorySliceResponse struct {
	Category         string  `json:"category"`
	Amount           float64 `json:"amount"`
	Percentage       float64 `json:"percentage"`
	TransactionCount int     `json:"transaction_count"`
}

// ToCategoriesResponse converts a GetCategoriesOutput to CategoriesResponse DTO.
func ToCategoriesResponse(output *analytics.GetCategoriesOutput) CategoriesResponse {
	categories := make([]CategorySliceResponse, len(output.Categories))
	for i, slice := range output.Categories {
		categories[i] = CategorySliceResponse{
			Category:         slice.Category,
			Amount:           toFloat(slice.Amount),
			Percentage:       slice.Percentage,
			TransactionCount: slice.TransactionCount,
		}
	}

	return CategoriesResponse{
		Period:        ToPeriodResponse(output.Period),
		TotalExpenses: toFloat(output.TotalExpenses),
		Categories:    categories,
	}
}

// SummaryResponse represents the response for the period summary API.
type SummaryResponse struct {
	Period         PeriodResponse                  `json:"period"`
	Current        PeriodTotalsResponse            `json:"current"`
	PreviousPeriod *PeriodResponse                 `json:"previous_period,omitempty"`
	Previous       *PeriodTotalsResponse           `json:"previous,omitempty"`
	Changes        map[string]MetricChangeResponse `json:"changes,omitempty"`
}

// PeriodTotalsResponse represents the headline figures of a period.
type PeriodTotalsResponse struct {
	TotalIncome      float64 `json:"total_income"`
	TotalExpenses    float64 `json:"total_expenses"`
	NetCashFlow      float64 `json:"net_cash_flow"`
	SavingsRate      float64 `json:"savings_rate"`
	TransactionCount int     `json:"transaction_count"`
	PendingCount     int     `json:"pending_count"`
}

// MetricChangeResponse represents the change of one metric between periods.
// Percentage is null when the previous period has no baseline.
type MetricChangeResponse struct {
	Current     float64  `json:"current"`
	Previous    float64  `json:"previous"`
	Absolute    float64  `json:"absolute"`
	Percentage  *float64 `json:"percentage"`
	HasBaseline bool     `json:"has_baseline"`
}

// ToPeriodTotalsResponse converts PeriodTotals to a PeriodTotalsResponse DTO.
func ToPeriodTotalsResponse(totals analytics.PeriodTotals) PeriodTotalsResponse {
	return PeriodTotalsResponse{
		TotalIncome:      toFloat(totals.TotalIncome),
		TotalExpenses:    toFloat(totals.TotalExpenses),
		NetCashFlow:      toFloat(totals.NetCashFlow),
		SavingsRate:      toFloat(totals.SavingsRate),
		TransactionCount: totals.TransactionCount,
		PendingCount:     totals.PendingCount,
	}
}

// ToSummaryResponse converts a GetSummaryOutput to SummaryResponse DTO.
func ToSummaryResponse(output *analytics.GetSummaryOutput) SummaryResponse {
	response := SummaryResponse{
		Period:  ToPeriodResponse(output.Period),
		Current: ToPeriodTotalsResponse(output.Current),
	}

	if output.PreviousPeriod != nil {
		previousPeriod := ToPeriodResponse(*output.PreviousPeriod)
		response.PreviousPeriod = &previousPeriod
	}
	if output.Previous != nil {
		previous := ToPeriodTotalsResponse(*output.Previous)
		response.Previous = &previous
	}

	if len(output.Changes) > 0 {
		response.Changes = make(map[string]MetricChangeResponse, len(output.Changes))
		for metric, change := range output.Changes {
			response.Changes[metric] = MetricChangeResponse{
				Current:     toFloat(change.Current),
				Previous:    toFloat(change.Previous),
				Absolute:    toFloat(change.Absolute),
				Percentage:  change.Percentage,
				HasBaseline: change.HasBaseline,
			}
		}
	}

	return response
}

// AlertsResponse represents the response for the budget alerts API.
type AlertsResponse struct {
	Period  PeriodResponse        `json:"period"`
	Budgets []BudgetLineResponse  `json:"budgets"`
	Alerts  []BudgetAlertResponse `json:"alerts"`
}

// BudgetLineResponse represents the evaluation of one budget.
type BudgetLineResponse struct {
	Category   string   `json:"category"`
	Budgeted   float64  `json:"budgeted"`
	Spent      float64  `json:"spent"`
	Remaining  float64  `json:"remaining"`
	Percentage *float64 `json:"percentage"`
	OverBudget bool     `json:"over_budget"`
	Severity   string   `json:"severity"`
}

// BudgetAlertResponse represents a warning or over-budget alert.
type BudgetAlertResponse struct {
	Category   string   `json:"category"`
	Severity   string   `json:"severity"`
	Level      string   `json:"level"`
	Message    string   `json:"message"`
	Percentage *float64 `json:"percentage"`
}

// ToAlertsResponse converts a GetAlertsOutput to AlertsResponse DTO.
func ToAlertsResponse(output *analytics.GetAlertsOutput) AlertsResponse {
	budgets := make([]BudgetLineResponse, len(output.Budgets))
	for i, line := range output.Budgets {
		budgets[i] = BudgetLineResponse{
			Category:   line.Category,
			Budgeted:   toFloat(line.Budgeted),
			Spent:      toFloat(line.Spent),
			Remaining:  toFloat(line.Remaining),
			Percentage: line.Percentage,
			OverBudget: line.OverBudget,
			Severity:   string(line.Severity),
		}
	}

	alerts := make([]BudgetAlertResponse, len(output.Alerts))
	for i, alert := range output.Alerts {
		alerts[i] = BudgetAlertResponse{
			Category:   alert.Category,
			Severity:   string(alert.Severity),
			Level:      alert.Level,
			Message:    alert.Message,
			Percentage: alert.Percentage,
		}
	}

	return AlertsResponse{
		Period:  ToPeriodResponse(output.Period),
		Budgets: budgets,
		Alerts:  alerts,
	}
}

// InsightsResponse represents the response for the insights API.
type InsightsResponse struct {
	Period               PeriodResponse               `json:"period"`
	AsOf                 PeriodResponse               `json:"as_of"`
	SavingsOpportunities []SavingsOpportunityResponse `json:"savings_opportunities"`
	RecurringPayments    []RecurringPaymentResponse   `json:"recurring_payments"`
}

// SavingsOpportunityResponse represents a savings suggestion.
type SavingsOpportunityResponse struct {
	Category         string  `json:"category"`
	Reason           string  `json:"reason"`
	Suggestion       string  `json:"suggestion"`
	PotentialSavings float64 `json:"potential_savings"`
}

// RecurringPaymentResponse represents a detected recurring payment.
type RecurringPaymentResponse struct {
	Merchant         string  `json:"merchant"`
	Category         string  `json:"category"`
	Amount           float64 `json:"amount"`
	Frequency        string  `json:"frequency"`
	IntervalDays     int     `json:"interval_days"`
	Occurrences      int     `json:"occurrences"`
	LastDate         string  `json:"last_date"`
	NextExpectedDate string  `json:"next_expected_date"`
}

// ToInsightsResponse converts a GetInsightsOutput to InsightsResponse DTO.
func ToInsightsResponse(output *analytics.GetInsightsOutput) InsightsResponse {
	opportunities := make([]SavingsOpportunityResponse, len(output.SavingsOpportunities))
	for i, opportunity := range output.SavingsOpportunities {
		opportunities[i] = SavingsOpportunityResponse{
			Category:         opportunity.Category,
			Reason:           string(opportunity.Reason),
			Suggestion:       opportunity.Suggestion,
			PotentialSavings: toFloat(opportunity.PotentialSavings),
		}
	}

	recurring := make([]RecurringPaymentResponse, len(output.RecurringPayments))
	for i, payment := range output.RecurringPayments {
		recurring[i] = RecurringPaymentResponse{
			Merchant:         payment.Merchant,
			Category:         payment.Category,
			Amount:           toFloat(payment.Amount),
			Frequency:        payment.Frequency,
			IntervalDays:     payment.IntervalDays,
			Occurrences:      payment.Occurrences,
			LastDate:         formatDate(payment.LastDate),
			NextExpectedDate: formatDate(payment.NextExpectedDate),
		}
	}

	return InsightsResponse{
		Period:               ToPeriodResponse(output.Period),
		AsOf:                 ToPeriodResponse(output.AsOf),
		SavingsOpportunities: opportunities,
		RecurringPayments:    recurring,
	}
}

// NotifyAlertsResponse represents the response for the alert notification API.
type NotifyAlertsResponse struct {
	Sent       bool   `json:"sent"`
	AlertCount int    `json:"alert_count"`
	MessageID  string `json:"message_id,omitempty"`
}

// ToNotifyAlertsResponse converts a NotifyBudgetAlertsOutput to NotifyAlertsResponse DTO.
func ToNotifyAlertsResponse(output *analytics.NotifyBudgetAlertsOutput) NotifyAlertsResponse {
	return NotifyAlertsResponse{
		Sent:       output.Sent,
		AlertCount: output.AlertCount,
		MessageID:  output.MessageID,
	}
}

// DataRangeResponse represents the response for the data range API.
type DataRangeResponse struct {
	OldestDate        *string `json:"oldest_date"`
	NewestDate        *string `json:"newest_date"`
	TotalTransactions int64   `json:"total_transactions"`
	HasData           bool    `json:"has_data"`
}

// ToDataRangeResponse converts a GetDataRangeOutput to DataRangeResponse DTO.
func ToDataRangeResponse(output *analytics.GetDataRangeOutput) DataRangeResponse {
	return DataRangeResponse{
		OldestDate:        formatDatePtr(output.OldestDate),
		NewestDate:        formatDatePtr(output.NewestDate),
		TotalTransactions: output.TotalTransactions,
		HasData:           output.HasData,
	}
}
