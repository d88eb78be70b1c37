// Package goal contains goal and milestone use cases.
package goal

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/self-focus/backend/internal/application/adapter"
	"github.com/self-focus/backend/internal/domain/entity"
	domainerror "github.com/self-focus/backend/internal/domain/error"
)

// UpdateGoalInput represents the input for goal update.
type UpdateGoalInput struct {
	GoalID          uuid.UUID
	UserID          uuid.UUID
	Title           *string    // Optional
	Description     *string    // Optional
	TargetDate      *time.Time // Optional
	ClearTargetDate bool
}

// UpdateGoalOutput represents the output of goal update.
type UpdateGoalOutput struct {
	Goal *entity.Goal
}

// UpdateGoalUseCase handles goal edits. Progress and status are not touched here.
type UpdateGoalUseCase struct {
	goalRepo adapter.GoalRepository
	locker   adapter.EntityLocker
	clock    adapter.Clock
}

// NewUpdateGoalUseCase creates a new UpdateGoalUseCase instance.
func NewUpdateGoalUseCase(goalRepo adapter.GoalRepository, locker adapter.EntityLocker, clock adapter.Clock) *UpdateGoalUseCase {
	return &UpdateGoalUseCase{
		goalRepo: goalRepo,
		locker:   locker,
		clock:    clock,
	}
}

// Execute performs the goal update.
func (uc *UpdateGoalUseCase) Execute(ctx context.Context, input UpdateGoalInput) (*UpdateGoalOutput, error) {
	var goal *entity.Goal
	err := uc.locker.WithLock(ctx, adapter.GoalLockKey(input.GoalID), func(ctx context.Context) error {
		var err error
		goal, err = findOwnedGoal(ctx, uc.goalRepo, input.GoalID, input.UserID)
		if err != nil {
			return err
		}

		if input.Title != nil {
			if goal.Title, err = validateTitle(*input.Title); err != nil {
				return err
			}
		}
		if input.Description != nil {
			if goal.Description, err = validateDescription(*input.Description, MaxGoalDescriptionLength); err != nil {
				return err
			}
		}
		if input.ClearTargetDate {
			goal.TargetDate = nil
		} else if input.TargetDate != nil {
			goal.TargetDate = normalizeDate(input.TargetDate)
		}

		goal.UpdatedAt = uc.clock.Now().UTC()
		if err := uc.goalRepo.Update(ctx, goal); err != nil {
			return fmt.Errorf("failed to update goal: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &UpdateGoalOutput{Goal: goal}, nil
}

// UpdateGoalStatusInput represents the input for a manual status change.
type UpdateGoalStatusInput struct {
	GoalID uuid.UUID
	UserID uuid.UUID
	Status entity.GoalStatus
}

// UpdateGoalStatusUseCase lets the owner move a goal between statuses.
type UpdateGoalStatusUseCase struct {
	goalRepo adapter.GoalRepository
	locker   adapter.EntityLocker
	clock    adapter.Clock
}

// NewUpdateGoalStatusUseCase creates a new UpdateGoalStatusUseCase instance.
func NewUpdateGoalStatusUseCase(goalRepo adapter.GoalRepository, locker adapter.EntityLocker, clock adapter.Clock) *UpdateGoalStatusUseCase {
	return &UpdateGoalStatusUseCase{
		goalRepo: goalRepo,
		locker:   locker,
		clock:    clock,
	}
}

// Execute performs the status change.
func (uc *UpdateGoalStatusUseCase) Execute(ctx context.Context, input UpdateGoalStatusInput) (*UpdateGoalOutput, error) {
	if !input.Status.IsValid() {
		return nil, domainerror.NewGoalError(
			domainerror.ErrCodeInvalidGoalStatus,
			"invalid status",
			domainerror.ErrInvalidGoalStatus,
		)
	}

	var goal *entity.Goal
	err := uc.locker.WithLock(ctx, adapter.GoalLockKey(input.GoalID), func(ctx context.Context) error {
		var err error
		goal, err = findOwnedGoal(ctx, uc.goalRepo, input.GoalID, input.UserID)
		if err != nil {
			return err
		}

		goal.Status = input.Status
		goal.UpdatedAt = uc.clock.Now().UTC()
		if err := uc.goalRepo.Update(ctx, goal); err != nil {
			return fmt.Errorf("failed to update goal status: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &UpdateGoalOutput{Goal: goal}, nil
}
