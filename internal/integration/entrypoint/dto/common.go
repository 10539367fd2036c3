// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/insights/internal/application/usecase/analytics"
	"github.com/finance-tracker/insights/internal/domain/valueobject"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// PeriodResponse represents a resolved date window in API responses.
type PeriodResponse struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Days      int    `json:"days"`
}

// ToPeriodResponse converts a resolved period to a PeriodResponse DTO.
func ToPeriodResponse(period analytics.PeriodRange) PeriodResponse {
	return PeriodResponse{
		StartDate: formatDate(period.StartDate),
		EndDate:   formatDate(period.EndDate),
		Days:      period.Days,
	}
}

func formatDate(t time.Time) string {
	return t.Format(valueobject.DateLayout)
}

func formatDatePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := formatDate(*t)
	return &s
}

// toFloat converts a money value to a 2-decimal float for JSON responses.
func toFloat(d decimal.Decimal) float64 {
	f, _ := d.Round(2).Float64()
	return f
}
