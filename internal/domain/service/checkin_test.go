package service

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/self-focus/backend/internal/domain/entity"
	domainerror "github.com/self-focus/backend/internal/domain/error"
	"github.com/self-focus/backend/internal/domain/valueobject"
)

func newHabit(freq entity.HabitFrequency) *entity.Habit {
	return entity.NewHabit(uuid.New(), "Meditate", "", freq, 1, "")
}

func checkStreak(t *testing.T, habit *entity.Habit, current, longest int) {
	t.Helper()
	if habit.CurrentStreak != current || habit.LongestStreak != longest {
		t.Errorf("habit streak = %d/%d, want %d/%d", habit.CurrentStreak, habit.LongestStreak, current, longest)
	}
}

func TestCheckIn(t *testing.T) {
	today := day(2024, 5, 10)

	t.Run("records and recomputes", func(t *testing.T) {
		habit := newHabit(entity.HabitFrequencyDaily)
		dates := valueobject.NewDateSet(day(2024, 5, 9), day(2024, 5, 8))

		got := CheckIn(habit, dates, today, today)

		if got.Outcome != CheckInRecorded {
			t.Errorf("Outcome = %v, want CheckInRecorded", got.Outcome)
		}
		if got.Streak.CurrentStreak != 3 {
			t.Errorf("Streak.CurrentStreak = %d, want 3", got.Streak.CurrentStreak)
		}
		checkStreak(t, habit, 3, 3)
		if !dates.Contains(today) {
			t.Error("today was not added to the date set")
		}
	})

	t.Run("second call is already recorded and changes nothing", func(t *testing.T) {
		habit := newHabit(entity.HabitFrequencyDaily)
		dates := valueobject.NewDateSet()

		first := CheckIn(habit, dates, today, today)
		if first.Outcome != CheckInRecorded {
			t.Fatalf("first Outcome = %v, want CheckInRecorded", first.Outcome)
		}
		current, longest := habit.CurrentStreak, habit.LongestStreak

		second := CheckIn(habit, dates, today, today)

		if second.Outcome != CheckInAlreadyRecorded {
			t.Errorf("second Outcome = %v, want CheckInAlreadyRecorded", second.Outcome)
		}
		checkStreak(t, habit, current, longest)
		if first.Streak != second.Streak {
			t.Errorf("second Streak = %+v, want %+v", second.Streak, first.Streak)
		}
		if len(dates) != 1 {
			t.Errorf("len(dates) = %d, want 1", len(dates))
		}
	})

	t.Run("already recorded does not repair stale streak", func(t *testing.T) {
		habit := newHabit(entity.HabitFrequencyDaily)
		habit.CurrentStreak = 7
		habit.LongestStreak = 7
		dates := valueobject.NewDateSet(today)

		got := CheckIn(habit, dates, today, today)

		if got.Outcome != CheckInAlreadyRecorded {
			t.Errorf("Outcome = %v, want CheckInAlreadyRecorded", got.Outcome)
		}
		checkStreak(t, habit, 7, 7)
	})

	t.Run("backdated check-in bridges a gap", func(t *testing.T) {
		habit := newHabit(entity.HabitFrequencyDaily)
		dates := valueobject.NewDateSet(today, day(2024, 5, 8))
		habit.CurrentStreak, habit.LongestStreak = 1, 1

		got := CheckIn(habit, dates, day(2024, 5, 9), today)

		if got.Outcome != CheckInRecorded {
			t.Errorf("Outcome = %v, want CheckInRecorded", got.Outcome)
		}
		checkStreak(t, habit, 3, 3)
	})

	t.Run("backdated check-in alone starts no streak", func(t *testing.T) {
		habit := newHabit(entity.HabitFrequencyDaily)
		dates := valueobject.NewDateSet()

		got := CheckIn(habit, dates, day(2024, 5, 9), today)

		if got.Outcome != CheckInRecorded {
			t.Errorf("Outcome = %v, want CheckInRecorded", got.Outcome)
		}
		checkStreak(t, habit, 0, 0)
	})
}

func TestRemoveCheckIn(t *testing.T) {
	today := day(2024, 5, 10)

	t.Run("shortening keeps longest", func(t *testing.T) {
		habit := newHabit(entity.HabitFrequencyDaily)
		dates := valueobject.NewDateSet()
		for _, d := range consecutiveDays(today, 5) {
			CheckIn(habit, dates, d, today)
		}
		if habit.CurrentStreak != 5 || habit.LongestStreak != 5 {
			t.Fatalf("setup streak = %d/%d, want 5/5", habit.CurrentStreak, habit.LongestStreak)
		}

		got := RemoveCheckIn(habit, dates, day(2024, 5, 8), today)

		if got.CurrentStreak != 2 || got.LongestStreak != 5 {
			t.Errorf("RemoveCheckIn() = %+v, want 2/5", got)
		}
		checkStreak(t, habit, 2, 5)
	})

	t.Run("absent date still recomputes", func(t *testing.T) {
		habit := newHabit(entity.HabitFrequencyDaily)
		habit.CurrentStreak = 9
		habit.LongestStreak = 9
		dates := valueobject.NewDateSet(today)

		got := RemoveCheckIn(habit, dates, day(2024, 1, 1), today)

		if got.CurrentStreak != 1 || got.LongestStreak != 9 {
			t.Errorf("RemoveCheckIn() = %+v, want 1/9", got)
		}
		if len(dates) != 1 {
			t.Errorf("len(dates) = %d, want 1", len(dates))
		}
	})

	t.Run("removing today zeroes current", func(t *testing.T) {
		habit := newHabit(entity.HabitFrequencyWeekly)
		dates := valueobject.NewDateSet()
		CheckIn(habit, dates, today, today)

		got := RemoveCheckIn(habit, dates, today, today)

		if got.CurrentStreak != 0 || got.LongestStreak != 1 {
			t.Errorf("RemoveCheckIn() = %+v, want 0/1", got)
		}
	})
}

func TestAdmissionPolicy(t *testing.T) {
	tests := []struct {
		name      string
		active    int
		nameTaken bool
		wantErr   error
		wantCode  domainerror.HabitErrorCode
	}{
		{"below cap", 19, false, nil, ""},
		{"at cap", 20, false, domainerror.ErrHabitLimitReached, domainerror.ErrCodeHabitLimitReached},
		{"over cap", 25, false, domainerror.ErrHabitLimitReached, domainerror.ErrCodeHabitLimitReached},
		{"duplicate name", 3, true, domainerror.ErrHabitNameExists, domainerror.ErrCodeHabitNameExists},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CanCreateHabit(tt.active, tt.nameTaken)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("CanCreateHabit() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("CanCreateHabit() error = %v, want %v", err, tt.wantErr)
			}

			var habitErr *domainerror.HabitError
			if !errors.As(err, &habitErr) {
				t.Fatalf("error %T is not a *HabitError", err)
			}
			if habitErr.Code != tt.wantCode {
				t.Errorf("Code = %s, want %s", habitErr.Code, tt.wantCode)
			}
		})
	}

	t.Run("limit message", func(t *testing.T) {
		err := AdmissionPolicy{MaxActive: 20}.CanActivate(20)
		var habitErr *domainerror.HabitError
		if !errors.As(err, &habitErr) {
			t.Fatalf("CanActivate() error = %v, want *HabitError", err)
		}
		if want := "Maximum habits reached (20)"; habitErr.Message != want {
			t.Errorf("Message = %q, want %q", habitErr.Message, want)
		}
	})

	t.Run("custom cap", func(t *testing.T) {
		if err := (AdmissionPolicy{MaxActive: 2}).CanCreate(2, false); err == nil {
			t.Error("CanCreate(2) at cap 2 succeeded")
		}
		if err := (AdmissionPolicy{MaxActive: 2}).CanCreate(1, false); err != nil {
			t.Errorf("CanCreate(1) at cap 2 error = %v", err)
		}
	})
}
