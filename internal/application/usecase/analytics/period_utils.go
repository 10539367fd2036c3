package analytics

import (
	"fmt"
	"time"

	domainerror "github.com/finance-tracker/insights/internal/domain/error"
)

// Granularity represents the bucket size of a trend series.
type Granularity string

const (
	GranularityDaily     Granularity = "daily"
	GranularityWeekly    Granularity = "weekly"
	GranularityMonthly   Granularity = "monthly"
	GranularityQuarterly Granularity = "quarterly"
)

// ParseGranularity validates a granularity query value. Empty means daily.
func ParseGranularity(raw string) (Granularity, error) {
	switch g := Granularity(raw); g {
	case "":
		return GranularityDaily, nil
	case GranularityDaily, GranularityWeekly, GranularityMonthly, GranularityQuarterly:
		return g, nil
	default:
		return "", domainerror.NewAnalyticsError(
			domainerror.ErrCodeInvalidGranularity,
			"granularity must be: daily, weekly, monthly, or quarterly",
			domainerror.ErrInvalidGranularity,
		)
	}
}

// GeneratePeriodLabel generates a human-readable label for a period based on granularity.
// Formats:
// - Weekly: "W{week} {year}" (e.g., "W12 2025")
// - Monthly: "{month_abbr} {year}" (e.g., "Mar 2025")
// - Quarterly: "Q{quarter} {year}" (e.g., "Q1 2025")
func GeneratePeriodLabel(date time.Time, granularity Granularity) string {
	switch granularity {
	case GranularityWeekly:
		year, week := date.ISOWeek()
		return fmt.Sprintf("W%d %d", week, year)
	case GranularityMonthly:
		return fmt.Sprintf("%s %d", date.Month().String()[:3], date.Year())
	case GranularityQuarterly:
		quarter := (int(date.Month())-1)/3 + 1
		return fmt.Sprintf("Q%d %d", quarter, date.Year())
	default:
		return date.Format("2006-01-02")
	}
}

// GeneratePeriodSeries generates all periods between startDate and endDate for the given granularity.
// The first period starts at the boundary containing startDate, so it may begin earlier.
func GeneratePeriodSeries(startDate, endDate time.Time, granularity Granularity) []PeriodInfo {
	var periods []PeriodInfo

	current := periodStart(startDate, granularity)
	for !current.After(endDate) {
		next := advance(current, granularity)
		periodEnd := next.AddDate(0, 0, -1)
		if periodEnd.After(endDate) {
			periodEnd = endDate
		}
		periods = append(periods, PeriodInfo{
			Date:        current,
			PeriodStart: current,
			PeriodEnd:   periodEnd,
			PeriodLabel: GeneratePeriodLabel(current, granularity),
		})
		current = next
	}

	return periods
}

// PeriodInfo holds information about a single period.
type PeriodInfo struct {
	Date        time.Time
	PeriodStart time.Time
	PeriodEnd   time.Time
	PeriodLabel string
}

// GetPeriodKeyForDate returns a unique key for the period containing the given date.
func GetPeriodKeyForDate(date time.Time, granularity Granularity) string {
	return periodStart(date, granularity).Format("2006-01-02")
}

func periodStart(date time.Time, granularity Granularity) time.Time {
	loc := date.Location()
	switch granularity {
	case GranularityWeekly:
		// Weeks start on Monday
		weekday := int(date.Weekday())
		if weekday == 0 {
			weekday = 7
		}
		return time.Date(date.Year(), date.Month(), date.Day()-(weekday-1), 0, 0, 0, 0, loc)
	case GranularityMonthly:
		return time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, loc)
	case GranularityQuarterly:
		quarter := (int(date.Month()) - 1) / 3
		return time.Date(date.Year(), time.Month(quarter*3+1), 1, 0, 0, 0, 0, loc)
	default:
		return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc)
	}
}

func advance(date time.Time, granularity Granularity) time.Time {
	switch granularity {
	case GranularityWeekly:
		return date.AddDate(0, 0, 7)
	case GranularityMonthly:
		return date.AddDate(0, 1, 0)
	case GranularityQuarterly:
		return date.AddDate(0, 3, 0)
	default:
		return date.AddDate(0, 0, 1)
	}
}
