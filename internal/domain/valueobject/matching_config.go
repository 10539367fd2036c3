// Package valueobject contains domain value objects for the analytics service.
package valueobject

import "github.com/shopspring/decimal"

// RecurrenceConfig contains the tolerances used to recognise recurring payments.
type RecurrenceConfig struct {
	// Minimum number of charges from the same merchant
	MinOccurrences int

	// Amount tolerance relative to the group's median amount
	AmountTolerancePercent decimal.Decimal // 0.15 = 15%

	// Interval tolerance around the group's median interval
	IntervalToleranceDays int
}

// DefaultRecurrenceConfig returns the default recurrence tolerances.
func DefaultRecurrenceConfig() RecurrenceConfig {
	return RecurrenceConfig{
		MinOccurrences:         3,
		AmountTolerancePercent: decimal.NewFromFloat(0.15),
		IntervalToleranceDays:  5,
	}
}

// IsAmountWithinTolerance checks if amount deviates from reference by no more than the tolerance.
func (c RecurrenceConfig) IsAmountWithinTolerance(amount, reference decimal.Decimal) bool {
	if reference.IsZero() {
		return amount.IsZero()
	}
	diff := amount.Sub(reference).Abs()
	return diff.LessThanOrEqual(reference.Abs().Mul(c.AmountTolerancePercent))
}

// IsIntervalWithinTolerance checks if interval deviates from reference by no more than the tolerance.
func (c RecurrenceConfig) IsIntervalWithinTolerance(intervalDays, referenceDays int) bool {
	diff := intervalDays - referenceDays
	if diff < 0 {
		diff = -diff
	}
	return diff <= c.IntervalToleranceDays
}
