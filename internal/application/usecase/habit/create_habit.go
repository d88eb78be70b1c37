// Package habit contains habit and check-in use cases.
package habit

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/self-focus/backend/internal/application/adapter"
	"github.com/self-focus/backend/internal/domain/entity"
)

// CreateHabitInput represents the input for habit creation.
type CreateHabitInput struct {
	UserID       uuid.UUID
	Name         string
	Description  string
	Frequency    entity.HabitFrequency // Optional, defaults to Daily
	TargetCount  int                   // Optional, defaults to 1
	ReminderTime string                // Optional, HH:MM
}

// CreateHabitOutput represents the output of habit creation.
type CreateHabitOutput struct {
	Habit *entity.Habit
}

// CreateHabitUseCase admits a new habit when the user is under the active cap
// and the name is free.
type CreateHabitUseCase struct {
	habitRepo adapter.HabitRepository
	locker    adapter.EntityLocker
	config    Config
}

// NewCreateHabitUseCase creates a new CreateHabitUseCase instance.
func NewCreateHabitUseCase(habitRepo adapter.HabitRepository, locker adapter.EntityLocker, config Config) *CreateHabitUseCase {
	return &CreateHabitUseCase{
		habitRepo: habitRepo,
		locker:    locker,
		config:    config,
	}
}

// Execute performs the habit creation.
func (uc *CreateHabitUseCase) Execute(ctx context.Context, input CreateHabitInput) (*CreateHabitOutput, error) {
	name, err := validateName(input.Name)
	if err != nil {
		return nil, err
	}

	frequency := input.Frequency
	if frequency == "" {
		frequency = entity.HabitFrequencyDaily
	}
	if err := validateFrequency(frequency); err != nil {
		return nil, err
	}

	reminder, err := validateReminderTime(input.ReminderTime)
	if err != nil {
		return nil, err
	}

	description, err := validateText("description", input.Description, MaxDescriptionLength)
	if err != nil {
		return nil, err
	}

	var habit *entity.Habit
	err = uc.locker.WithLock(ctx, adapter.HabitAdmissionLockKey(input.UserID), func(ctx context.Context) error {
		active, err := uc.habitRepo.CountActive(ctx, input.UserID)
		if err != nil {
			return fmt.Errorf("failed to count active habits: %w", err)
		}

		taken, err := uc.habitRepo.ExistsByNameAndUser(ctx, name, input.UserID, nil)
		if err != nil {
			return fmt.Errorf("failed to check habit name: %w", err)
		}

		if err := uc.config.Admission.CanCreate(int(active), taken); err != nil {
			slog.Info("Habit creation refused", "user_id", input.UserID, "active", active, "error", err)
			return err
		}

		habit = entity.NewHabit(input.UserID, name, description, frequency, input.TargetCount, reminder)
		if err := uc.habitRepo.Create(ctx, habit); err != nil {
			return fmt.Errorf("failed to create habit: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &CreateHabitOutput{Habit: habit}, nil
}
