// Package habit contains habit and check-in use cases.
package habit

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/self-focus/backend/internal/application/adapter"
	"github.com/self-focus/backend/internal/domain/entity"
	"github.com/self-focus/backend/internal/domain/service"
	"github.com/self-focus/backend/internal/domain/valueobject"
)

// GetHabitInput represents the input for getting a habit.
type GetHabitInput struct {
	HabitID uuid.UUID
	UserID  uuid.UUID
}

// GetHabitOutput is a habit with its recent check-ins.
type GetHabitOutput struct {
	Habit          *entity.Habit
	RecentLogs     []*entity.HabitLog
	CompletionRate float64
	CompletedToday bool
}

// GetHabitUseCase handles fetching a single habit.
type GetHabitUseCase struct {
	habitRepo adapter.HabitRepository
	logRepo   adapter.HabitLogRepository
	clock     adapter.Clock
	config    Config
}

// NewGetHabitUseCase creates a new GetHabitUseCase instance.
func NewGetHabitUseCase(habitRepo adapter.HabitRepository, logRepo adapter.HabitLogRepository, clock adapter.Clock, config Config) *GetHabitUseCase {
	return &GetHabitUseCase{
		habitRepo: habitRepo,
		logRepo:   logRepo,
		clock:     clock,
		config:    config,
	}
}

// Execute fetches the habit.
func (uc *GetHabitUseCase) Execute(ctx context.Context, input GetHabitInput) (*GetHabitOutput, error) {
	habit, err := findOwnedHabit(ctx, uc.habitRepo, input.HabitID, input.UserID)
	if err != nil {
		return nil, err
	}

	today := valueobject.Date(uc.clock.Now())
	window := uc.config.CompletionWindowDays
	if window < RecentLogDays {
		window = RecentLogDays
	}

	logs, err := uc.logRepo.FindByHabitsSince(ctx, []uuid.UUID{habit.ID}, today.AddDate(0, 0, -window))
	if err != nil {
		return nil, fmt.Errorf("failed to load check-ins: %w", err)
	}

	recentFrom := today.AddDate(0, 0, -RecentLogDays)
	recent := make([]*entity.HabitLog, 0, len(logs))
	for _, l := range logs {
		if !l.DateCompleted.Before(recentFrom) {
			recent = append(recent, l)
		}
	}

	dates := datesOf(logs)
	return &GetHabitOutput{
		Habit:          habit,
		RecentLogs:     recent,
		CompletionRate: service.CompletionRate(dates, uc.config.CompletionWindowDays, today),
		CompletedToday: dates.Contains(today),
	}, nil
}
