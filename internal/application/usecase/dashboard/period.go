// Package dashboard contains dashboard-related use cases.
package dashboard

import (
	"fmt"
	"time"

	"github.com/self-focus/backend/internal/domain/valueobject"
)

// Granularity is the bucket size of a trend series.
type Granularity string

const (
	GranularityWeekly    Granularity = "weekly"
	GranularityMonthly   Granularity = "monthly"
	GranularityQuarterly Granularity = "quarterly"
)

// IsValid reports whether g is a supported granularity.
func (g Granularity) IsValid() bool {
	return g == GranularityWeekly || g == GranularityMonthly || g == GranularityQuarterly
}

// PeriodInfo holds information about a single period.
type PeriodInfo struct {
	PeriodStart time.Time
	PeriodEnd   time.Time
	PeriodLabel string
}

// PeriodLabel generates a human-readable label for the period starting at date.
// Formats:
// - Weekly: "W{week} {year}" (e.g., "W12 2026")
// - Monthly: "{month_abbr} {year}" (e.g., "Mar 2026")
// - Quarterly: "Q{quarter} {year}" (e.g., "Q1 2026")
func PeriodLabel(date time.Time, granularity Granularity) string {
	switch granularity {
	case GranularityWeekly:
		year, week := date.ISOWeek()
		return fmt.Sprintf("W%d %d", week, year)
	case GranularityMonthly:
		return date.Format("Jan 2006")
	case GranularityQuarterly:
		return fmt.Sprintf("Q%d %d", quarterOf(date), date.Year())
	default:
		return date.Format(valueobject.DateLayout)
	}
}

// PeriodBounds returns the first and last calendar day of the period containing date.
func PeriodBounds(date time.Time, granularity Granularity) (start, end time.Time) {
	d := valueobject.Date(date)

	switch granularity {
	case GranularityWeekly:
		start = weekStart(d)
		end = start.AddDate(0, 0, 6)
	case GranularityMonthly:
		start = time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC)
		end = start.AddDate(0, 1, -1)
	case GranularityQuarterly:
		start = time.Date(d.Year(), time.Month((quarterOf(d)-1)*3+1), 1, 0, 0, 0, 0, time.UTC)
		end = start.AddDate(0, 3, -1)
	default:
		start, end = d, d
	}
	return start, end
}

// PeriodSeries generates every period touching [startDate, endDate] so that
// charts have no gaps. The first and last periods are clipped to the range.
func PeriodSeries(startDate, endDate time.Time, granularity Granularity) []PeriodInfo {
	from, to := valueobject.Date(startDate), valueobject.Date(endDate)

	var periods []PeriodInfo
	current, _ := PeriodBounds(from, granularity)
	for !current.After(to) {
		_, periodEnd := PeriodBounds(current, granularity)
		next := periodEnd.AddDate(0, 0, 1)

		start := current
		if start.Before(from) {
			start = from
		}
		if periodEnd.After(to) {
			periodEnd = to
		}

		periods = append(periods, PeriodInfo{
			PeriodStart: start,
			PeriodEnd:   periodEnd,
			PeriodLabel: PeriodLabel(current, granularity),
		})
		current = next
	}
	return periods
}

// weekStart returns the Monday of the week containing date.
func weekStart(date time.Time) time.Time {
	weekday := int(date.Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday is 7
	}
	return date.AddDate(0, 0, -(weekday - 1))
}

func quarterOf(date time.Time) int {
	return (int(date.Month())-1)/3 + 1
}
