// Package habit contains habit and check-in use cases.
package habit

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/self-focus/backend/internal/application/adapter"
	"github.com/self-focus/backend/internal/domain/entity"
	domainerror "github.com/self-focus/backend/internal/domain/error"
	"github.com/self-focus/backend/internal/domain/service"
	"github.com/self-focus/backend/internal/domain/valueobject"
)

// CheckInDeps bundles the collaborators of the check-in use cases.
type CheckInDeps struct {
	HabitRepo    adapter.HabitRepository
	LogRepo      adapter.HabitLogRepository
	UserRepo     adapter.UserRepository
	EmailService adapter.EmailService
	Locker       adapter.EntityLocker
	Clock        adapter.Clock
}

// CheckInInput represents the input for a check-in.
type CheckInInput struct {
	HabitID uuid.UUID
	UserID  uuid.UUID
	Date    *time.Time // Optional, defaults to today
	Notes   string
}

// CheckInOutput reports the outcome and the habit's streak afterwards.
// Log is nil when the date was already recorded.
type CheckInOutput struct {
	Outcome       service.CheckInOutcome
	Log           *entity.HabitLog
	Habit         *entity.Habit
	CurrentStreak int
	LongestStreak int
}

// CheckInUseCase records a completion and refreshes the streak.
type CheckInUseCase struct {
	deps CheckInDeps
}

// NewCheckInUseCase creates a new CheckInUseCase instance.
func NewCheckInUseCase(deps CheckInDeps) *CheckInUseCase {
	return &CheckInUseCase{deps: deps}
}

// Execute performs the check-in. A repeated date is not an error; the output
// carries service.CheckInAlreadyRecorded instead.
func (uc *CheckInUseCase) Execute(ctx context.Context, input CheckInInput) (*CheckInOutput, error) {
	today := valueobject.Date(uc.deps.Clock.Now())
	date := today
	if input.Date != nil {
		date = valueobject.Date(*input.Date)
	}
	if date.After(today) {
		return nil, domainerror.NewHabitError(
			domainerror.ErrCodeInvalidCheckInDate,
			"cannot check in for a future date",
			domainerror.ErrInvalidCheckInDate,
		)
	}

	notes, err := validateText("notes", input.Notes, MaxNotesLength)
	if err != nil {
		return nil, err
	}

	var (
		out            *CheckInOutput
		previousStreak int
	)
	err = uc.deps.Locker.WithLock(ctx, adapter.HabitLockKey(input.HabitID), func(ctx context.Context) error {
		habit, err := findOwnedHabit(ctx, uc.deps.HabitRepo, input.HabitID, input.UserID)
		if err != nil {
			return err
		}
		previousStreak = habit.CurrentStreak

		dates, err := loadDates(ctx, uc.deps.LogRepo, habit.ID)
		if err != nil {
			return err
		}

		result := service.CheckIn(habit, dates, date, today)
		out = &CheckInOutput{
			Outcome:       result.Outcome,
			Habit:         habit,
			CurrentStreak: result.Streak.CurrentStreak,
			LongestStreak: result.Streak.LongestStreak,
		}
		if result.Outcome == service.CheckInAlreadyRecorded {
			return nil
		}

		log := entity.NewHabitLog(habit.ID, date, notes)
		if err := uc.deps.LogRepo.Create(ctx, log); err != nil {
			if errors.Is(err, domainerror.ErrAlreadyCheckedIn) {
				// Another writer won the unique constraint; report it the same way.
				out.Outcome = service.CheckInAlreadyRecorded
				return nil
			}
			return fmt.Errorf("failed to record check-in: %w", err)
		}
		out.Log = log

		habit.UpdatedAt = uc.deps.Clock.Now().UTC()
		if err := uc.deps.HabitRepo.Update(ctx, habit); err != nil {
			return fmt.Errorf("failed to update habit streak: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if out.Outcome == service.CheckInRecorded {
		slog.Debug("Habit checked in",
			"habit_id", out.Habit.ID,
			"date", date.Format(valueobject.DateLayout),
			"current_streak", out.CurrentStreak,
			"longest_streak", out.LongestStreak,
		)
		if isStreakMilestone(previousStreak, out.CurrentStreak) {
			uc.notifyMilestone(ctx, out.Habit, out.CurrentStreak)
		}
	}
	return out, nil
}

func (uc *CheckInUseCase) notifyMilestone(ctx context.Context, habit *entity.Habit, streak int) {
	if uc.deps.EmailService == nil || uc.deps.UserRepo == nil {
		return
	}

	user, err := uc.deps.UserRepo.FindByID(ctx, habit.UserID)
	if err != nil {
		slog.Warn("Failed to load user for streak email", "habit_id", habit.ID, "error", err)
		return
	}

	if err := uc.deps.EmailService.QueueStreakMilestoneEmail(ctx, adapter.QueueStreakMilestoneInput{
		UserID:    user.ID,
		UserEmail: user.Email,
		UserName:  user.Username,
		HabitName: habit.Name,
		Streak:    streak,
	}); err != nil {
		slog.Warn("Failed to queue streak email", "habit_id", habit.ID, "error", err)
	}
}

// RemoveCheckInInput represents the input for removing a check-in.
type RemoveCheckInInput struct {
	LogID  uuid.UUID
	UserID uuid.UUID
}

// RemoveCheckInUseCase deletes a check-in and recomputes the streak.
type RemoveCheckInUseCase struct {
	deps CheckInDeps
}

// NewRemoveCheckInUseCase creates a new RemoveCheckInUseCase instance.
func NewRemoveCheckInUseCase(deps CheckInDeps) *RemoveCheckInUseCase {
	return &RemoveCheckInUseCase{deps: deps}
}

// Execute removes the check-in and returns the updated habit.
func (uc *RemoveCheckInUseCase) Execute(ctx context.Context, input RemoveCheckInInput) (*entity.Habit, error) {
	log, err := uc.deps.LogRepo.FindByID(ctx, input.LogID)
	if err != nil {
		if errors.Is(err, domainerror.ErrHabitLogNotFound) {
			return nil, domainerror.NewHabitError(
				domainerror.ErrCodeHabitLogNotFound,
				"check-in not found",
				domainerror.ErrHabitLogNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find check-in: %w", err)
	}

	var habit *entity.Habit
	err = uc.deps.Locker.WithLock(ctx, adapter.HabitLockKey(log.HabitID), func(ctx context.Context) error {
		habit, err = findOwnedHabit(ctx, uc.deps.HabitRepo, log.HabitID, input.UserID)
		if err != nil {
			return err
		}

		dates, err := loadDates(ctx, uc.deps.LogRepo, habit.ID)
		if err != nil {
			return err
		}

		if err := uc.deps.LogRepo.Delete(ctx, log.ID); err != nil {
			return fmt.Errorf("failed to delete check-in: %w", err)
		}

		service.RemoveCheckIn(habit, dates, log.DateCompleted, uc.deps.Clock.Now())
		habit.UpdatedAt = uc.deps.Clock.Now().UTC()
		if err := uc.deps.HabitRepo.Update(ctx, habit); err != nil {
			return fmt.Errorf("failed to update habit streak: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return habit, nil
}
