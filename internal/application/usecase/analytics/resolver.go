// Package analytics contains the transaction analytics engine and the use cases that serve it.
package analytics

import (
	"strconv"
	"strings"
	"time"

	"github.com/finance-tracker/insights/internal/domain/entity"
	domainerror "github.com/finance-tracker/insights/internal/domain/error"
	"github.com/finance-tracker/insights/internal/domain/valueobject"
)

// MaxTrendBuckets caps the number of daily buckets rendered for a trend series.
// Longer windows keep the most recent MaxTrendBuckets days, anchored to the range end.
const MaxTrendBuckets = 30

// Clock returns the current instant. Use cases take one so "today" is explicit.
type Clock func() time.Time

// SystemClock returns a Clock reading the wall clock in loc.
func SystemClock(loc *time.Location) Clock {
	if loc == nil {
		loc = time.UTC
	}
	return func() time.Time {
		return time.Now().In(loc)
	}
}

// Today returns the calendar day of the clock reading.
func (c Clock) Today() time.Time {
	return entity.TruncateDay(c())
}

// Resolve converts the date dimension of a filter spec into a concrete inclusive range.
// An empty DateRange selects the default 30-day window.
func Resolve(spec valueobject.FilterSpec, today time.Time) (valueobject.DateRange, error) {
	raw := strings.TrimSpace(spec.DateRange)
	if raw == "" {
		raw = strconv.Itoa(valueobject.DefaultRangeDays)
	}

	if raw == valueobject.RangeCustom {
		if spec.CustomDateRange == nil {
			return valueobject.ParseDateRange("", "")
		}
		return valueobject.ParseDateRange(spec.CustomDateRange.Start, spec.CustomDateRange.End)
	}

	days, err := strconv.Atoi(raw)
	if err != nil {
		return valueobject.DateRange{}, domainerror.NewAnalyticsError(
			domainerror.ErrCodeInvalidRangeDays,
			"range must be a positive number of days or \"custom\"",
			domainerror.ErrInvalidRangeDays,
		)
	}

	return valueobject.LastNDays(today, days)
}

// BucketCount returns the number of daily trend buckets for r.
func BucketCount(r valueobject.DateRange) int {
	return min(r.Days(), MaxTrendBuckets)
}

// TrendWindow returns the sub-range actually covered by the daily trend series.
func TrendWindow(r valueobject.DateRange) valueobject.DateRange {
	return r.Tail(BucketCount(r))
}
