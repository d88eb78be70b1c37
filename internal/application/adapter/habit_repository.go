// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/self-focus/backend/internal/domain/entity"
)

// HabitFilter narrows a habit listing.
type HabitFilter struct {
	UserID   uuid.UUID
	IsActive *bool
}

// HabitRepository defines the interface for habit persistence operations.
type HabitRepository interface {
	// Create creates a new habit in the database.
	Create(ctx context.Context, habit *entity.Habit) error

	// FindByID retrieves a habit by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Habit, error)

	// FindByFilter retrieves habits, newest first.
	FindByFilter(ctx context.Context, filter HabitFilter) ([]*entity.Habit, error)

	// FindAllActive retrieves active habits of every user.
	FindAllActive(ctx context.Context) ([]*entity.Habit, error)

	// CountActive returns the number of active habits of a user.
	CountActive(ctx context.Context, userID uuid.UUID) (int64, error)

	// ExistsByNameAndUser checks whether the user has another habit with that name.
	// excludeID skips the habit being renamed.
	ExistsByNameAndUser(ctx context.Context, name string, userID uuid.UUID, excludeID *uuid.UUID) (bool, error)

	// Update updates an existing habit in the database.
	Update(ctx context.Context, habit *entity.Habit) error

	// Delete removes a habit. Logs must be removed first.
	Delete(ctx context.Context, id uuid.UUID) error
}

// HabitLogRepository defines the interface for check-in persistence operations.
type HabitLogRepository interface {
	// Create stores a check-in. The (habit, date) pair is unique; a duplicate
	// returns domainerror.ErrAlreadyCheckedIn.
	Create(ctx context.Context, log *entity.HabitLog) error

	// FindByID retrieves a check-in by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.HabitLog, error)

	// FindByHabitAndDate retrieves the check-in of a habit on a date.
	FindByHabitAndDate(ctx context.Context, habitID uuid.UUID, date time.Time) (*entity.HabitLog, error)

	// FindByHabit retrieves every check-in of a habit, newest first.
	FindByHabit(ctx context.Context, habitID uuid.UUID) ([]*entity.HabitLog, error)

	// FindByHabitsSince retrieves check-ins of the given habits dated on or after since.
	FindByHabitsSince(ctx context.Context, habitIDs []uuid.UUID, since time.Time) ([]*entity.HabitLog, error)

	// Delete removes a check-in.
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteByHabit removes every check-in of a habit.
	DeleteByHabit(ctx context.Context, habitID uuid.UUID) error
}
