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

// ToggleHabitInput represents the input for flipping a habit's active flag.
type ToggleHabitInput struct {
	HabitID uuid.UUID
	UserID  uuid.UUID
}

// ToggleHabitUseCase activates or deactivates a habit. Reactivation is
// subject to the active-habit cap.
type ToggleHabitUseCase struct {
	habitRepo adapter.HabitRepository
	locker    adapter.EntityLocker
	clock     adapter.Clock
	config    Config
}

// NewToggleHabitUseCase creates a new ToggleHabitUseCase instance.
func NewToggleHabitUseCase(habitRepo adapter.HabitRepository, locker adapter.EntityLocker, clock adapter.Clock, config Config) *ToggleHabitUseCase {
	return &ToggleHabitUseCase{
		habitRepo: habitRepo,
		locker:    locker,
		clock:     clock,
		config:    config,
	}
}

// Execute flips the flag and returns the updated habit.
func (uc *ToggleHabitUseCase) Execute(ctx context.Context, input ToggleHabitInput) (*entity.Habit, error) {
	var habit *entity.Habit
	err := uc.locker.WithLock(ctx, adapter.HabitAdmissionLockKey(input.UserID), func(ctx context.Context) error {
		var err error
		habit, err = findOwnedHabit(ctx, uc.habitRepo, input.HabitID, input.UserID)
		if err != nil {
			return err
		}

		if !habit.IsActive {
			active, err := uc.habitRepo.CountActive(ctx, input.UserID)
			if err != nil {
				return fmt.Errorf("failed to count active habits: %w", err)
			}
			if err := uc.config.Admission.CanActivate(int(active)); err != nil {
				return err
			}
		}

		habit.IsActive = !habit.IsActive
		habit.UpdatedAt = uc.clock.Now().UTC()
		if err := uc.habitRepo.Update(ctx, habit); err != nil {
			return fmt.Errorf("failed to update habit: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Debug("Habit toggled", "habit_id", habit.ID, "active", habit.IsActive)
	return habit, nil
}
