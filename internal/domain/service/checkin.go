package service

import (
	"fmt"
	"time"

	"github.com/self-focus/backend/internal/domain/entity"
	domainerror "github.com/self-focus/backend/internal/domain/error"
	"github.com/self-focus/backend/internal/domain/valueobject"
)

// MaxActiveHabits is the default cap on concurrently active habits per user.
const MaxActiveHabits = 20

// CheckInOutcome reports what CheckIn did.
type CheckInOutcome string

const (
	CheckInRecorded        CheckInOutcome = "Recorded"
	CheckInAlreadyRecorded CheckInOutcome = "AlreadyRecorded"
)

// CheckInResult is returned by CheckIn. Streak holds the habit's values after
// the call, whether or not anything changed.
type CheckInResult struct {
	Outcome CheckInOutcome
	Streak  StreakResult
}

// CheckIn records date into dates and refreshes the habit's streak.
// When the date is already present nothing is touched and the outcome is
// CheckInAlreadyRecorded.
func CheckIn(habit *entity.Habit, dates valueobject.DateSet, date, today time.Time) CheckInResult {
	if !dates.Add(date) {
		return CheckInResult{
			Outcome: CheckInAlreadyRecorded,
			Streak:  StreakResult{CurrentStreak: habit.CurrentStreak, LongestStreak: habit.LongestStreak},
		}
	}

	result := RecomputeStreak(habit.Frequency, dates, today, habit.LongestStreak)
	ApplyStreak(habit, result)
	return CheckInResult{Outcome: CheckInRecorded, Streak: result}
}

// RemoveCheckIn deletes date from dates, if present, and always recomputes.
func RemoveCheckIn(habit *entity.Habit, dates valueobject.DateSet, date, today time.Time) StreakResult {
	dates.Remove(date)
	result := RecomputeStreak(habit.Frequency, dates, today, habit.LongestStreak)
	ApplyStreak(habit, result)
	return result
}

// AdmissionPolicy holds the per-user limits applied before a habit is created
// or reactivated.
type AdmissionPolicy struct {
	MaxActive int
}

// DefaultAdmissionPolicy returns the policy with MaxActiveHabits.
func DefaultAdmissionPolicy() AdmissionPolicy {
	return AdmissionPolicy{MaxActive: MaxActiveHabits}
}

// CanCreate checks the active-habit cap and name uniqueness.
func (p AdmissionPolicy) CanCreate(activeCount int, nameTaken bool) error {
	if err := p.CanActivate(activeCount); err != nil {
		return err
	}
	if nameTaken {
		return domainerror.NewHabitError(
			domainerror.ErrCodeHabitNameExists,
			"Habit name already exists",
			domainerror.ErrHabitNameExists,
		)
	}
	return nil
}

// CanActivate checks only the active-habit cap.
func (p AdmissionPolicy) CanActivate(activeCount int) error {
	if activeCount >= p.MaxActive {
		return domainerror.NewHabitError(
			domainerror.ErrCodeHabitLimitReached,
			fmt.Sprintf("Maximum habits reached (%d)", p.MaxActive),
			domainerror.ErrHabitLimitReached,
		)
	}
	return nil
}

// CanCreateHabit applies DefaultAdmissionPolicy.
func CanCreateHabit(activeCount int, nameTaken bool) error {
	return DefaultAdmissionPolicy().CanCreate(activeCount, nameTaken)
}
