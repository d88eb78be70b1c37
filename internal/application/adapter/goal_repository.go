// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/self-focus/backend/internal/domain/entity"
)

// GoalRepository defines the interface for goal persistence operations.
type GoalRepository interface {
	// Create creates a new goal in the database.
	Create(ctx context.Context, goal *entity.Goal) error

	// FindByID retrieves a goal by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Goal, error)

	// FindByUser retrieves goals of a user, newest first. A nil status returns every goal.
	FindByUser(ctx context.Context, userID uuid.UUID, status *entity.GoalStatus) ([]*entity.Goal, error)

	// Update updates an existing goal in the database.
	Update(ctx context.Context, goal *entity.Goal) error

	// Delete removes a goal. Milestones must be removed first.
	Delete(ctx context.Context, id uuid.UUID) error
}

// MilestoneRepository defines the interface for milestone persistence operations.
type MilestoneRepository interface {
	// Create creates a new milestone in the database.
	Create(ctx context.Context, milestone *entity.Milestone) error

	// FindByID retrieves a milestone by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Milestone, error)

	// FindByGoal retrieves milestones of a goal ordered by target date, undated last.
	FindByGoal(ctx context.Context, goalID uuid.UUID) ([]*entity.Milestone, error)

	// Update updates an existing milestone in the database.
	Update(ctx context.Context, milestone *entity.Milestone) error

	// Delete removes a single milestone.
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteByGoal removes every milestone of a goal.
	DeleteByGoal(ctx context.Context, goalID uuid.UUID) error
}
