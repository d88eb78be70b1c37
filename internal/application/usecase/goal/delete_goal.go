// Package goal contains goal and milestone use cases.
package goal

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/self-focus/backend/internal/application/adapter"
)

// DeleteGoalInput represents the input for goal deletion.
type DeleteGoalInput struct {
	GoalID uuid.UUID
	UserID uuid.UUID
}

// DeleteGoalUseCase removes a goal and its milestones.
type DeleteGoalUseCase struct {
	goalRepo      adapter.GoalRepository
	milestoneRepo adapter.MilestoneRepository
	locker        adapter.EntityLocker
}

// NewDeleteGoalUseCase creates a new DeleteGoalUseCase instance.
func NewDeleteGoalUseCase(goalRepo adapter.GoalRepository, milestoneRepo adapter.MilestoneRepository, locker adapter.EntityLocker) *DeleteGoalUseCase {
	return &DeleteGoalUseCase{
		goalRepo:      goalRepo,
		milestoneRepo: milestoneRepo,
		locker:        locker,
	}
}

// Execute performs the goal deletion. Milestones go first.
func (uc *DeleteGoalUseCase) Execute(ctx context.Context, input DeleteGoalInput) error {
	return uc.locker.WithLock(ctx, adapter.GoalLockKey(input.GoalID), func(ctx context.Context) error {
		goal, err := findOwnedGoal(ctx, uc.goalRepo, input.GoalID, input.UserID)
		if err != nil {
			return err
		}

		if err := uc.milestoneRepo.DeleteByGoal(ctx, goal.ID); err != nil {
			return fmt.Errorf("failed to delete milestones: %w", err)
		}

		if err := uc.goalRepo.Delete(ctx, goal.ID); err != nil {
			return fmt.Errorf("failed to delete goal: %w", err)
		}
		return nil
	})
}
