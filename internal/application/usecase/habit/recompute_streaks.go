// Package habit contains habit and check-in use cases.
package habit

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/self-focus/backend/internal/application/adapter"
	"github.com/self-focus/backend/internal/domain/service"
)

// RecomputeStreaksOutput reports how many habits were examined and changed.
type RecomputeStreaksOutput struct {
	Checked int
	Updated int
}

// RecomputeStreaksUseCase re-derives the current streak of every active habit
// for today. Streaks that lapsed since the last check-in drop to zero here.
type RecomputeStreaksUseCase struct {
	habitRepo adapter.HabitRepository
	logRepo   adapter.HabitLogRepository
	locker    adapter.EntityLocker
	clock     adapter.Clock
}

// NewRecomputeStreaksUseCase creates a new RecomputeStreaksUseCase instance.
func NewRecomputeStreaksUseCase(
	habitRepo adapter.HabitRepository,
	logRepo adapter.HabitLogRepository,
	locker adapter.EntityLocker,
	clock adapter.Clock,
) *RecomputeStreaksUseCase {
	return &RecomputeStreaksUseCase{
		habitRepo: habitRepo,
		logRepo:   logRepo,
		locker:    locker,
		clock:     clock,
	}
}

// Execute walks every active habit.
func (uc *RecomputeStreaksUseCase) Execute(ctx context.Context) (*RecomputeStreaksOutput, error) {
	habits, err := uc.habitRepo.FindAllActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list active habits: %w", err)
	}

	out := &RecomputeStreaksOutput{}
	for _, h := range habits {
		if err := ctx.Err(); err != nil {
			return out, err
		}

		err := uc.locker.WithLock(ctx, adapter.HabitLockKey(h.ID), func(ctx context.Context) error {
			habit, err := uc.habitRepo.FindByID(ctx, h.ID)
			if err != nil {
				return fmt.Errorf("failed to reload habit: %w", err)
			}

			dates, err := loadDates(ctx, uc.logRepo, habit.ID)
			if err != nil {
				return err
			}

			result := service.RecomputeStreak(habit.Frequency, dates, uc.clock.Now(), habit.LongestStreak)
			out.Checked++
			if result.CurrentStreak == habit.CurrentStreak && result.LongestStreak == habit.LongestStreak {
				return nil
			}

			service.ApplyStreak(habit, result)
			habit.UpdatedAt = uc.clock.Now().UTC()
			if err := uc.habitRepo.Update(ctx, habit); err != nil {
				return fmt.Errorf("failed to update habit streak: %w", err)
			}
			out.Updated++
			return nil
		})
		if err != nil {
			slog.Error("Failed to recompute streak", "habit_id", h.ID, "error", err)
			return out, err
		}
	}

	slog.Info("Streaks recomputed", "checked", out.Checked, "updated", out.Updated)
	return out, nil
}
