// Package habit contains habit and check-in use cases.
package habit

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/self-focus/backend/internal/application/adapter"
	"github.com/self-focus/backend/internal/domain/entity"
	"github.com/self-focus/backend/internal/domain/service"
	"github.com/self-focus/backend/internal/domain/valueobject"
)

// ListHabitsInput represents the input for listing habits.
type ListHabitsInput struct {
	UserID          uuid.UUID
	IncludeInactive bool
}

// ListHabitsOutput represents the output of listing habits.
type ListHabitsOutput struct {
	Habits []entity.HabitWithStatus
}

// ListHabitsUseCase lists habits, newest first, with today's status and the
// completion rate over the configured window.
type ListHabitsUseCase struct {
	habitRepo adapter.HabitRepository
	logRepo   adapter.HabitLogRepository
	clock     adapter.Clock
	config    Config
}

// NewListHabitsUseCase creates a new ListHabitsUseCase instance.
func NewListHabitsUseCase(habitRepo adapter.HabitRepository, logRepo adapter.HabitLogRepository, clock adapter.Clock, config Config) *ListHabitsUseCase {
	return &ListHabitsUseCase{
		habitRepo: habitRepo,
		logRepo:   logRepo,
		clock:     clock,
		config:    config,
	}
}

// Execute performs the listing.
func (uc *ListHabitsUseCase) Execute(ctx context.Context, input ListHabitsInput) (*ListHabitsOutput, error) {
	filter := adapter.HabitFilter{UserID: input.UserID}
	if !input.IncludeInactive {
		active := true
		filter.IsActive = &active
	}

	habits, err := uc.habitRepo.FindByFilter(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list habits: %w", err)
	}

	statuses, err := decorate(ctx, uc.logRepo, habits, valueobject.Date(uc.clock.Now()), uc.config.CompletionWindowDays)
	if err != nil {
		return nil, err
	}
	return &ListHabitsOutput{Habits: statuses}, nil
}

// decorate attaches CompletedToday and CompletionRate to each habit with a
// single log query.
func decorate(ctx context.Context, logRepo adapter.HabitLogRepository, habits []*entity.Habit, today time.Time, windowDays int) ([]entity.HabitWithStatus, error) {
	out := make([]entity.HabitWithStatus, 0, len(habits))
	if len(habits) == 0 {
		return out, nil
	}

	ids := make([]uuid.UUID, len(habits))
	for i, h := range habits {
		ids[i] = h.ID
	}

	since := today.AddDate(0, 0, -windowDays)
	logs, err := logRepo.FindByHabitsSince(ctx, ids, since)
	if err != nil {
		return nil, fmt.Errorf("failed to load check-ins: %w", err)
	}

	byHabit := make(map[uuid.UUID]valueobject.DateSet, len(habits))
	for _, l := range logs {
		if byHabit[l.HabitID] == nil {
			byHabit[l.HabitID] = valueobject.NewDateSet()
		}
		byHabit[l.HabitID].Add(l.DateCompleted)
	}

	for _, h := range habits {
		dates := byHabit[h.ID]
		out = append(out, entity.HabitWithStatus{
			Habit:          h,
			CompletedToday: dates.Contains(today),
			CompletionRate: service.CompletionRate(dates, windowDays, today),
		})
	}
	return out, nil
}
