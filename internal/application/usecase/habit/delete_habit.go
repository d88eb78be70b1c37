// Package habit contains habit and check-in use cases.
package habit

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/self-focus/backend/internal/application/adapter"
)

// DeleteHabitInput represents the input for habit deletion.
type DeleteHabitInput struct {
	HabitID uuid.UUID
	UserID  uuid.UUID
}

// DeleteHabitUseCase removes a habit and all of its check-ins.
type DeleteHabitUseCase struct {
	habitRepo adapter.HabitRepository
	logRepo   adapter.HabitLogRepository
	locker    adapter.EntityLocker
}

// NewDeleteHabitUseCase creates a new DeleteHabitUseCase instance.
func NewDeleteHabitUseCase(habitRepo adapter.HabitRepository, logRepo adapter.HabitLogRepository, locker adapter.EntityLocker) *DeleteHabitUseCase {
	return &DeleteHabitUseCase{
		habitRepo: habitRepo,
		logRepo:   logRepo,
		locker:    locker,
	}
}

// Execute performs the deletion. Check-ins go first.
func (uc *DeleteHabitUseCase) Execute(ctx context.Context, input DeleteHabitInput) error {
	return uc.locker.WithLock(ctx, adapter.HabitLockKey(input.HabitID), func(ctx context.Context) error {
		habit, err := findOwnedHabit(ctx, uc.habitRepo, input.HabitID, input.UserID)
		if err != nil {
			return err
		}

		if err := uc.logRepo.DeleteByHabit(ctx, habit.ID); err != nil {
			return fmt.Errorf("failed to delete check-ins: %w", err)
		}
		if err := uc.habitRepo.Delete(ctx, habit.ID); err != nil {
			return fmt.Errorf("failed to delete habit: %w", err)
		}
		return nil
	})
}
