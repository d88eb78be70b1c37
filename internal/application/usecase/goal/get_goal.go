// Package goal contains goal and milestone use cases.
package goal

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/self-focus/backend/internal/application/adapter"
	"github.com/self-focus/backend/internal/domain/entity"
	"github.com/self-focus/backend/internal/domain/service"
)

// GetGoalInput represents the input for getting a goal.
type GetGoalInput struct {
	GoalID uuid.UUID
	UserID uuid.UUID
}

// GetGoalOutput represents a goal with its milestones ordered by target date.
type GetGoalOutput struct {
	Goal          *entity.Goal
	Milestones    []*entity.Milestone
	DaysRemaining *int
}

// GetGoalUseCase handles fetching a single goal.
type GetGoalUseCase struct {
	goalRepo      adapter.GoalRepository
	milestoneRepo adapter.MilestoneRepository
	clock         adapter.Clock
}

// NewGetGoalUseCase creates a new GetGoalUseCase instance.
func NewGetGoalUseCase(goalRepo adapter.GoalRepository, milestoneRepo adapter.MilestoneRepository, clock adapter.Clock) *GetGoalUseCase {
	return &GetGoalUseCase{
		goalRepo:      goalRepo,
		milestoneRepo: milestoneRepo,
		clock:         clock,
	}
}

// Execute fetches the goal.
func (uc *GetGoalUseCase) Execute(ctx context.Context, input GetGoalInput) (*GetGoalOutput, error) {
	goal, err := findOwnedGoal(ctx, uc.goalRepo, input.GoalID, input.UserID)
	if err != nil {
		return nil, err
	}

	milestones, err := uc.milestoneRepo.FindByGoal(ctx, goal.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load milestones: %w", err)
	}

	return &GetGoalOutput{
		Goal:          goal,
		Milestones:    milestones,
		DaysRemaining: service.DaysRemaining(goal.TargetDate, uc.clock.Now()),
	}, nil
}
