package service

import (
	"time"

	"github.com/self-focus/backend/internal/domain/entity"
	"github.com/self-focus/backend/internal/domain/valueobject"
)

// StreakResult holds recomputed streak values for a habit.
type StreakResult struct {
	CurrentStreak int
	LongestStreak int
}

// RecomputeStreak counts consecutive cadence-aligned completions backwards from
// today. The count stops at the first check-point missing from dates.
// LongestStreak is max(previousLongest, CurrentStreak).
func RecomputeStreak(freq entity.HabitFrequency, dates valueobject.DateSet, today time.Time, previousLongest int) StreakResult {
	streak := 0
	cursor := valueobject.Date(today)

	for dates.Contains(cursor) {
		streak++
		next, ok := stepBack(freq, cursor)
		if !ok {
			break
		}
		cursor = next
	}

	longest := previousLongest
	if streak > longest {
		longest = streak
	}
	return StreakResult{CurrentStreak: streak, LongestStreak: longest}
}

// stepBack moves the cursor to the previous check-point of the cadence.
// Monthly lands on the last day of the month before the cursor's month.
func stepBack(freq entity.HabitFrequency, cursor time.Time) (time.Time, bool) {
	switch freq {
	case entity.HabitFrequencyDaily:
		return cursor.AddDate(0, 0, -1), true
	case entity.HabitFrequencyWeekly:
		return cursor.AddDate(0, 0, -7), true
	case entity.HabitFrequencyMonthly:
		firstOfMonth := time.Date(cursor.Year(), cursor.Month(), 1, 0, 0, 0, 0, time.UTC)
		return firstOfMonth.AddDate(0, 0, -1), true
	}
	return time.Time{}, false
}

// CompletionRate is the percentage of days in [today-windowDays, today] that
// have a completion, relative to windowDays. Both ends are inclusive, so the
// window holds windowDays+1 calendar days and a habit completed on every one of
// them would score above 100; the result is capped at 100.
// A non-positive window yields 0.
func CompletionRate(dates valueobject.DateSet, windowDays int, today time.Time) float64 {
	if windowDays <= 0 {
		return 0
	}

	end := valueobject.Date(today)
	start := end.AddDate(0, 0, -windowDays)

	count := 0
	for d := range dates {
		if !d.Before(start) && !d.After(end) {
			count++
		}
	}

	rate := float64(count) * 100 / float64(windowDays)
	if rate > 100 {
		return 100
	}
	return rate
}

// ApplyStreak writes the result onto the habit.
func ApplyStreak(habit *entity.Habit, result StreakResult) {
	habit.CurrentStreak = result.CurrentStreak
	habit.LongestStreak = result.LongestStreak
}
