// Package valueobject contains domain value objects for the analytics service.
package valueobject

import (
	"fmt"
	"time"

	"github.com/finance-tracker/insights/internal/domain/entity"
	domainerror "github.com/finance-tracker/insights/internal/domain/error"
)

// DateLayout is the calendar-day layout used on every external boundary.
const DateLayout = "2006-01-02"

// MaxRangeDays bounds a single analytics window to roughly a century.
const MaxRangeDays = 36600

const secondsPerDay = 24 * 60 * 60

// DateRange is an inclusive interval of calendar days.
// A single-day range has Start equal to End.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// NewDateRange creates a DateRange truncated to calendar days.
// It fails with an invalid range error when start is after end.
func NewDateRange(start, end time.Time) (DateRange, error) {
	start = entity.TruncateDay(start)
	end = entity.TruncateDay(end)

	if start.After(end) {
		return DateRange{}, domainerror.NewInvalidRangeError("start date must not be after end date")
	}

	r := DateRange{Start: start, End: end}
	if r.Days() > MaxRangeDays {
		return DateRange{}, domainerror.NewInvalidRangeError(
			fmt.Sprintf("date range must not exceed %d days", MaxRangeDays),
		)
	}

	return r, nil
}

// ParseDateRange parses ISO calendar dates into a DateRange.
func ParseDateRange(start, end string) (DateRange, error) {
	if start == "" || end == "" {
		return DateRange{}, domainerror.NewAnalyticsError(
			domainerror.ErrCodeMissingCustomRange,
			"custom range requires start_date and end_date",
			domainerror.ErrMissingCustomRange,
		)
	}

	startDate, err := time.Parse(DateLayout, start)
	if err != nil {
		return DateRange{}, domainerror.NewAnalyticsError(
			domainerror.ErrCodeInvalidDateFormat,
			"Invalid start_date format, expected YYYY-MM-DD",
			domainerror.ErrInvalidDateFormat,
		)
	}

	endDate, err := time.Parse(DateLayout, end)
	if err != nil {
		return DateRange{}, domainerror.NewAnalyticsError(
			domainerror.ErrCodeInvalidDateFormat,
			"Invalid end_date format, expected YYYY-MM-DD",
			domainerror.ErrInvalidDateFormat,
		)
	}

	return NewDateRange(startDate, endDate)
}

// LastNDays returns the inclusive n-day window ending on today.
func LastNDays(today time.Time, n int) (DateRange, error) {
	if n <= 0 {
		return DateRange{}, domainerror.NewAnalyticsError(
			domainerror.ErrCodeInvalidRangeDays,
			"range must be a positive number of days",
			domainerror.ErrInvalidRangeDays,
		)
	}
	if n > MaxRangeDays {
		return DateRange{}, domainerror.NewInvalidRangeError(
			fmt.Sprintf("date range must not exceed %d days", MaxRangeDays),
		)
	}

	end := entity.TruncateDay(today)
	return DateRange{Start: end.AddDate(0, 0, -(n - 1)), End: end}, nil
}

// Days returns the number of calendar days covered, counting both ends.
// Unix seconds are used because a time.Duration cannot span more than ~292 years.
func (r DateRange) Days() int {
	return int(dayNumber(r.End)-dayNumber(r.Start)) + 1
}

func dayNumber(t time.Time) int64 {
	return entity.TruncateDay(t).Unix() / secondsPerDay
}

// Contains reports whether the calendar day of ts falls inside the range.
func (r DateRange) Contains(ts time.Time) bool {
	day := entity.TruncateDay(ts)
	return !day.Before(r.Start) && !day.After(r.End)
}

// Previous returns the equal-length window that ends the day before Start.
func (r DateRange) Previous() DateRange {
	prevEnd := r.Start.AddDate(0, 0, -1)
	return DateRange{
		Start: prevEnd.AddDate(0, 0, -(r.Days() - 1)),
		End:   prevEnd,
	}
}

// Tail returns the most recent n days of the range, anchored to End.
// The full range is returned when it is not longer than n.
func (r DateRange) Tail(n int) DateRange {
	if n <= 0 || r.Days() <= n {
		return r
	}
	return DateRange{Start: r.End.AddDate(0, 0, -(n - 1)), End: r.End}
}

// Union returns the smallest range covering both r and other.
func (r DateRange) Union(other DateRange) DateRange {
	out := r
	if other.Start.Before(out.Start) {
		out.Start = other.Start
	}
	if other.End.After(out.End) {
		out.End = other.End
	}
	return out
}

// String formats the range as "start..end".
func (r DateRange) String() string {
	return r.Start.Format(DateLayout) + ".." + r.End.Format(DateLayout)
}
