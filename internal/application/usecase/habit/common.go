// Package habit contains habit and check-in use cases.
package habit

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/self-focus/backend/internal/application/adapter"
	"github.com/self-focus/backend/internal/domain/entity"
	domainerror "github.com/self-focus/backend/internal/domain/error"
	"github.com/self-focus/backend/internal/domain/service"
	"github.com/self-focus/backend/internal/domain/valueobject"
)

const (
	// MaxNameLength is the maximum habit name length.
	MaxNameLength = 200
	// MaxDescriptionLength is the maximum habit description length.
	MaxDescriptionLength = 1000
	// MaxNotesLength is the maximum check-in notes length.
	MaxNotesLength = 500
	// RecentLogDays is how far back a habit detail lists check-ins.
	RecentLogDays = 30
	// CalendarDays is the default calendar look-back.
	CalendarDays = 90

	reminderLayout = "15:04"
)

// StreakMilestones are the streak lengths that trigger a notification.
var StreakMilestones = []int{7, 30, 100}

// Config holds the tunables of the habit use cases.
type Config struct {
	Admission            service.AdmissionPolicy
	CompletionWindowDays int
}

// DefaultConfig returns the cap of 20 active habits and a 30 day completion window.
func DefaultConfig() Config {
	return Config{
		Admission:            service.DefaultAdmissionPolicy(),
		CompletionWindowDays: 30,
	}
}

func validateName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", domainerror.NewHabitError(
			domainerror.ErrCodeHabitNameRequired,
			"habit name is required",
			domainerror.ErrHabitNameRequired,
		)
	}
	if len(name) > MaxNameLength {
		return "", domainerror.NewHabitError(
			domainerror.ErrCodeHabitNameTooLong,
			fmt.Sprintf("habit name must not exceed %d characters", MaxNameLength),
			domainerror.ErrHabitNameTooLong,
		)
	}
	return name, nil
}

func validateFrequency(freq entity.HabitFrequency) error {
	if !freq.IsValid() {
		return domainerror.NewHabitError(
			domainerror.ErrCodeInvalidHabitFrequency,
			"frequency must be 'Daily', 'Weekly', or 'Monthly'",
			domainerror.ErrInvalidHabitFrequency,
		)
	}
	return nil
}

func validateReminderTime(value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", nil
	}
	if _, err := time.Parse(reminderLayout, value); err != nil {
		return "", domainerror.NewHabitError(
			domainerror.ErrCodeInvalidReminderTime,
			"reminder time must be HH:MM",
			domainerror.ErrInvalidReminderTime,
		)
	}
	return value, nil
}

func validateText(field, value string, max int) (string, error) {
	value = strings.TrimSpace(value)
	if len(value) > max {
		return "", domainerror.NewHabitError(
			domainerror.ErrCodeHabitFieldTooLong,
			fmt.Sprintf("%s must not exceed %d characters", field, max),
			domainerror.ErrHabitFieldTooLong,
		)
	}
	return value, nil
}

// findOwnedHabit loads a habit and checks it belongs to userID.
func findOwnedHabit(ctx context.Context, repo adapter.HabitRepository, habitID, userID uuid.UUID) (*entity.Habit, error) {
	habit, err := repo.FindByID(ctx, habitID)
	if err != nil {
		if errors.Is(err, domainerror.ErrHabitNotFound) {
			return nil, domainerror.NewHabitError(
				domainerror.ErrCodeHabitNotFound,
				"habit not found",
				domainerror.ErrHabitNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find habit: %w", err)
	}

	if habit.UserID != userID {
		return nil, domainerror.NewHabitError(
			domainerror.ErrCodeUnauthorizedHabitAccess,
			"not authorized to access this habit",
			domainerror.ErrUnauthorizedHabitAccess,
		)
	}
	return habit, nil
}

// loadDates collects every completion date of a habit.
func loadDates(ctx context.Context, repo adapter.HabitLogRepository, habitID uuid.UUID) (valueobject.DateSet, error) {
	logs, err := repo.FindByHabit(ctx, habitID)
	if err != nil {
		return nil, fmt.Errorf("failed to load check-ins: %w", err)
	}
	return datesOf(logs), nil
}

func datesOf(logs []*entity.HabitLog) valueobject.DateSet {
	dates := make(valueobject.DateSet, len(logs))
	for _, l := range logs {
		dates.Add(l.DateCompleted)
	}
	return dates
}

// isStreakMilestone reports whether streak just reached one of StreakMilestones.
func isStreakMilestone(previous, streak int) bool {
	if streak <= previous {
		return false
	}
	for _, m := range StreakMilestones {
		if streak == m {
			return true
		}
	}
	return false
}
