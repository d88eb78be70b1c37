// Package goal contains goal and milestone use cases.
package goal

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/self-focus/backend/internal/application/adapter"
	"github.com/self-focus/backend/internal/domain/entity"
	domainerror "github.com/self-focus/backend/internal/domain/error"
	"github.com/self-focus/backend/internal/domain/service"
)

// ListGoalsInput represents the input for listing goals.
type ListGoalsInput struct {
	UserID uuid.UUID
	Status *entity.GoalStatus // Optional, nil lists every goal
}

// GoalSummary is a goal with its derived days remaining.
type GoalSummary struct {
	Goal          *entity.Goal
	DaysRemaining *int
}

// ListGoalsOutput represents the output of listing goals.
type ListGoalsOutput struct {
	Goals []GoalSummary
}

// ListGoalsUseCase handles listing goals, newest first.
type ListGoalsUseCase struct {
	goalRepo adapter.GoalRepository
	clock    adapter.Clock
}

// NewListGoalsUseCase creates a new ListGoalsUseCase instance.
func NewListGoalsUseCase(goalRepo adapter.GoalRepository, clock adapter.Clock) *ListGoalsUseCase {
	return &ListGoalsUseCase{
		goalRepo: goalRepo,
		clock:    clock,
	}
}

// Execute performs the goal listing.
func (uc *ListGoalsUseCase) Execute(ctx context.Context, input ListGoalsInput) (*ListGoalsOutput, error) {
	if input.Status != nil && !input.Status.IsValid() {
		return nil, domainerror.NewGoalError(
			domainerror.ErrCodeInvalidGoalStatus,
			"status must be 'Active', 'Completed', or 'Paused'",
			domainerror.ErrInvalidGoalStatus,
		)
	}

	goals, err := uc.goalRepo.FindByUser(ctx, input.UserID, input.Status)
	if err != nil {
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}

	now := uc.clock.Now()
	out := make([]GoalSummary, 0, len(goals))
	for _, g := range goals {
		out = append(out, GoalSummary{
			Goal:          g,
			DaysRemaining: service.DaysRemaining(g.TargetDate, now),
		})
	}

	return &ListGoalsOutput{Goals: out}, nil
}
