package service

import (
	"math"
	"testing"
	"time"

	"github.com/self-focus/backend/internal/domain/entity"
	"github.com/self-focus/backend/internal/domain/valueobject"
)

func TestRecomputeStreak(t *testing.T) {
	tests := []struct {
		name        string
		freq        entity.HabitFrequency
		dates       []time.Time
		today       time.Time
		prevLongest int
		wantCurrent int
		wantLongest int
	}{
		{
			name:        "empty log set",
			freq:        entity.HabitFrequencyDaily,
			today:       day(2024, 5, 10),
			wantCurrent: 0,
		},
		{
			name:        "daily three in a row",
			freq:        entity.HabitFrequencyDaily,
			dates:       []time.Time{day(2024, 5, 10), day(2024, 5, 9), day(2024, 5, 8)},
			today:       day(2024, 5, 10),
			wantCurrent: 3,
			wantLongest: 3,
		},
		{
			name:        "daily gap two days back caps streak",
			freq:        entity.HabitFrequencyDaily,
			dates:       []time.Time{day(2024, 5, 10), day(2024, 5, 9), day(2024, 5, 7), day(2024, 5, 6)},
			today:       day(2024, 5, 10),
			wantCurrent: 2,
			wantLongest: 2,
		},
		{
			name:        "daily not done today",
			freq:        entity.HabitFrequencyDaily,
			dates:       []time.Time{day(2024, 5, 9), day(2024, 5, 8)},
			today:       day(2024, 5, 10),
			wantCurrent: 0,
			prevLongest: 4,
			wantLongest: 4,
		},
		{
			name:        "daily across year boundary",
			freq:        entity.HabitFrequencyDaily,
			dates:       []time.Time{day(2024, 1, 1), day(2023, 12, 31), day(2023, 12, 30)},
			today:       day(2024, 1, 1),
			wantCurrent: 3,
			wantLongest: 3,
		},
		{
			name:        "weekly steps seven days",
			freq:        entity.HabitFrequencyWeekly,
			dates:       []time.Time{day(2024, 5, 10), day(2024, 5, 3), day(2024, 4, 26), day(2024, 4, 20)},
			today:       day(2024, 5, 10),
			wantCurrent: 3,
			wantLongest: 3,
		},
		{
			name:        "weekly ignores dates between check-points",
			freq:        entity.HabitFrequencyWeekly,
			dates:       []time.Time{day(2024, 5, 10), day(2024, 5, 9), day(2024, 5, 4)},
			today:       day(2024, 5, 10),
			wantCurrent: 1,
			wantLongest: 1,
		},
		{
			name:        "monthly Jan 31 to Feb 28 non-leap",
			freq:        entity.HabitFrequencyMonthly,
			dates:       []time.Time{day(2023, 1, 31), day(2023, 2, 28)},
			today:       day(2023, 2, 28),
			wantCurrent: 2,
			wantLongest: 2,
		},
		{
			name:        "monthly from mid-month steps to last day of previous month",
			freq:        entity.HabitFrequencyMonthly,
			dates:       []time.Time{day(2024, 3, 15), day(2024, 2, 29), day(2024, 1, 31)},
			today:       day(2024, 3, 15),
			wantCurrent: 3,
			wantLongest: 3,
		},
		{
			name:        "monthly not thirty days back",
			freq:        entity.HabitFrequencyMonthly,
			dates:       []time.Time{day(2024, 3, 15), day(2024, 2, 14)},
			today:       day(2024, 3, 15),
			wantCurrent: 1,
			wantLongest: 1,
		},
		{
			name:        "monthly earlier day of previous month breaks the chain",
			freq:        entity.HabitFrequencyMonthly,
			dates:       []time.Time{day(2024, 2, 29), day(2024, 1, 30)},
			today:       day(2024, 2, 29),
			wantCurrent: 1,
			wantLongest: 1,
		},
		{
			name:        "monthly 1st after 31st",
			freq:        entity.HabitFrequencyMonthly,
			dates:       []time.Time{day(2024, 2, 1), day(2024, 1, 31)},
			today:       day(2024, 2, 1),
			wantCurrent: 2,
			wantLongest: 2,
		},
		{
			name:        "monthly mid-month predecessor does not count",
			freq:        entity.HabitFrequencyMonthly,
			dates:       []time.Time{day(2024, 2, 1), day(2024, 1, 15)},
			today:       day(2024, 2, 1),
			wantCurrent: 1,
			wantLongest: 1,
		},
		{
			name:        "longest never decreases",
			freq:        entity.HabitFrequencyDaily,
			dates:       []time.Time{day(2024, 5, 10)},
			today:       day(2024, 5, 10),
			prevLongest: 12,
			wantCurrent: 1,
			wantLongest: 12,
		},
		{
			name:        "unknown cadence counts today only",
			freq:        entity.HabitFrequency("Hourly"),
			dates:       []time.Time{day(2024, 5, 10), day(2024, 5, 9)},
			today:       day(2024, 5, 10),
			wantCurrent: 1,
			wantLongest: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RecomputeStreak(tt.freq, valueobject.NewDateSet(tt.dates...), tt.today, tt.prevLongest)

			if got.CurrentStreak != tt.wantCurrent {
				t.Errorf("CurrentStreak = %d, want %d", got.CurrentStreak, tt.wantCurrent)
			}
			if got.LongestStreak != tt.wantLongest {
				t.Errorf("LongestStreak = %d, want %d", got.LongestStreak, tt.wantLongest)
			}
			if got.LongestStreak < got.CurrentStreak {
				t.Errorf("LongestStreak %d below CurrentStreak %d", got.LongestStreak, got.CurrentStreak)
			}
		})
	}
}

func TestRecomputeStreak_TodayWithTimeOfDay(t *testing.T) {
	dates := valueobject.NewDateSet(day(2024, 5, 10), day(2024, 5, 9))
	today := time.Date(2024, 5, 10, 22, 15, 0, 0, time.UTC)

	got := RecomputeStreak(entity.HabitFrequencyDaily, dates, today, 0)

	if got.CurrentStreak != 2 {
		t.Errorf("CurrentStreak = %d, want 2", got.CurrentStreak)
	}
}

func TestCompletionRate(t *testing.T) {
	today := day(2024, 5, 30)

	tests := []struct {
		name   string
		dates  []time.Time
		window int
		want   float64
	}{
		{"zero window", []time.Time{today}, 0, 0},
		{"negative window", []time.Time{today}, -3, 0},
		{"empty set", nil, 30, 0},
		{"fifteen of thirty", consecutiveDays(today, 15), 30, 50},
		{"window start is inclusive", []time.Time{day(2024, 4, 30)}, 30, 100.0 / 30},
		{"outside window ignored", []time.Time{day(2024, 4, 29), day(2024, 6, 1)}, 30, 0},
		{"full window of thirty", consecutiveDays(today, 30), 30, 100},
		// 31 completions fit in an inclusive window of 30.
		{"capped at one hundred", consecutiveDays(today, 31), 30, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CompletionRate(valueobject.NewDateSet(tt.dates...), tt.window, today)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("CompletionRate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func consecutiveDays(from time.Time, n int) []time.Time {
	out := make([]time.Time, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, from.AddDate(0, 0, -i))
	}
	return out
}
