// Package habit contains habit and check-in use cases.
package habit

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/self-focus/backend/internal/application/adapter"
	"github.com/self-focus/backend/internal/domain/entity"
	"github.com/self-focus/backend/internal/domain/valueobject"
)

// CalendarInput represents the input for the check-in calendar.
type CalendarInput struct {
	UserID uuid.UUID
	Days   int // Optional, defaults to CalendarDays
}

// CalendarEntry is one habit completed on a calendar day.
type CalendarEntry struct {
	HabitID   uuid.UUID
	HabitName string
}

// CalendarOutput groups the check-ins of active habits by YYYY-MM-DD.
type CalendarOutput struct {
	Habits []*entity.Habit
	Days   map[string][]CalendarEntry
}

// CalendarUseCase builds the check-in calendar.
type CalendarUseCase struct {
	habitRepo adapter.HabitRepository
	logRepo   adapter.HabitLogRepository
	clock     adapter.Clock
}

// NewCalendarUseCase creates a new CalendarUseCase instance.
func NewCalendarUseCase(habitRepo adapter.HabitRepository, logRepo adapter.HabitLogRepository, clock adapter.Clock) *CalendarUseCase {
	return &CalendarUseCase{
		habitRepo: habitRepo,
		logRepo:   logRepo,
		clock:     clock,
	}
}

// Execute builds the calendar.
func (uc *CalendarUseCase) Execute(ctx context.Context, input CalendarInput) (*CalendarOutput, error) {
	days := input.Days
	if days <= 0 {
		days = CalendarDays
	}

	active := true
	habits, err := uc.habitRepo.FindByFilter(ctx, adapter.HabitFilter{UserID: input.UserID, IsActive: &active})
	if err != nil {
		return nil, fmt.Errorf("failed to list habits: %w", err)
	}

	out := &CalendarOutput{Habits: habits, Days: make(map[string][]CalendarEntry)}
	if len(habits) == 0 {
		return out, nil
	}

	names := make(map[uuid.UUID]string, len(habits))
	ids := make([]uuid.UUID, 0, len(habits))
	for _, h := range habits {
		names[h.ID] = h.Name
		ids = append(ids, h.ID)
	}

	since := valueobject.Date(uc.clock.Now()).AddDate(0, 0, -days)
	logs, err := uc.logRepo.FindByHabitsSince(ctx, ids, since)
	if err != nil {
		return nil, fmt.Errorf("failed to load check-ins: %w", err)
	}

	for _, l := range logs {
		key := l.DateCompleted.Format(valueobject.DateLayout)
		out.Days[key] = append(out.Days[key], CalendarEntry{HabitID: l.HabitID, HabitName: names[l.HabitID]})
	}
	return out, nil
}
