// Package habit contains habit and check-in use cases.
package habit

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/self-focus/backend/internal/application/adapter"
	"github.com/self-focus/backend/internal/domain/entity"
	domainerror "github.com/self-focus/backend/internal/domain/error"
	"github.com/self-focus/backend/internal/domain/service"
)

// UpdateHabitInput represents the input for habit update. Nil fields are kept.
type UpdateHabitInput struct {
	HabitID      uuid.UUID
	UserID       uuid.UUID
	Name         *string
	Description  *string
	Frequency    *entity.HabitFrequency
	TargetCount  *int
	ReminderTime *string
}

// UpdateHabitOutput represents the output of habit update.
type UpdateHabitOutput struct {
	Habit *entity.Habit
}

// UpdateHabitUseCase edits a habit. A cadence change recomputes the streak.
type UpdateHabitUseCase struct {
	habitRepo adapter.HabitRepository
	logRepo   adapter.HabitLogRepository
	locker    adapter.EntityLocker
	clock     adapter.Clock
}

// NewUpdateHabitUseCase creates a new UpdateHabitUseCase instance.
func NewUpdateHabitUseCase(
	habitRepo adapter.HabitRepository,
	logRepo adapter.HabitLogRepository,
	locker adapter.EntityLocker,
	clock adapter.Clock,
) *UpdateHabitUseCase {
	return &UpdateHabitUseCase{
		habitRepo: habitRepo,
		logRepo:   logRepo,
		locker:    locker,
		clock:     clock,
	}
}

// Execute performs the habit update.
func (uc *UpdateHabitUseCase) Execute(ctx context.Context, input UpdateHabitInput) (*UpdateHabitOutput, error) {
	var habit *entity.Habit
	err := uc.locker.WithLock(ctx, adapter.HabitAdmissionLockKey(input.UserID), func(ctx context.Context) error {
		return uc.locker.WithLock(ctx, adapter.HabitLockKey(input.HabitID), func(ctx context.Context) error {
			var err error
			habit, err = findOwnedHabit(ctx, uc.habitRepo, input.HabitID, input.UserID)
			if err != nil {
				return err
			}
			return uc.apply(ctx, habit, input)
		})
	})
	if err != nil {
		return nil, err
	}
	return &UpdateHabitOutput{Habit: habit}, nil
}

func (uc *UpdateHabitUseCase) apply(ctx context.Context, habit *entity.Habit, input UpdateHabitInput) error {
	if input.Name != nil {
		name, err := validateName(*input.Name)
		if err != nil {
			return err
		}
		taken, err := uc.habitRepo.ExistsByNameAndUser(ctx, name, habit.UserID, &habit.ID)
		if err != nil {
			return fmt.Errorf("failed to check habit name: %w", err)
		}
		if taken {
			return domainerror.NewHabitError(
				domainerror.ErrCodeHabitNameExists,
				"Habit name already exists",
				domainerror.ErrHabitNameExists,
			)
		}
		habit.Name = name
	}

	if input.Description != nil {
		description, err := validateText("description", *input.Description, MaxDescriptionLength)
		if err != nil {
			return err
		}
		habit.Description = description
	}

	if input.ReminderTime != nil {
		reminder, err := validateReminderTime(*input.ReminderTime)
		if err != nil {
			return err
		}
		habit.ReminderTime = reminder
	}

	if input.TargetCount != nil && *input.TargetCount > 0 {
		habit.TargetCount = *input.TargetCount
	}

	if input.Frequency != nil && *input.Frequency != habit.Frequency {
		if err := validateFrequency(*input.Frequency); err != nil {
			return err
		}
		habit.Frequency = *input.Frequency

		dates, err := loadDates(ctx, uc.logRepo, habit.ID)
		if err != nil {
			return err
		}
		service.ApplyStreak(habit, service.RecomputeStreak(habit.Frequency, dates, uc.clock.Now(), habit.LongestStreak))
	}

	habit.UpdatedAt = uc.clock.Now().UTC()
	if err := uc.habitRepo.Update(ctx, habit); err != nil {
		return fmt.Errorf("failed to update habit: %w", err)
	}
	return nil
}
