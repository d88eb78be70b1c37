// Package goal contains goal and milestone use cases.
package goal

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/self-focus/backend/internal/application/adapter"
	"github.com/self-focus/backend/internal/domain/entity"
)

// MilestoneOutput is a milestone together with its goal after progress was refreshed.
type MilestoneOutput struct {
	Milestone *entity.Milestone
	Goal      *entity.Goal
}

// MilestoneDeps bundles the collaborators of the milestone use cases.
type MilestoneDeps struct {
	GoalRepo      adapter.GoalRepository
	MilestoneRepo adapter.MilestoneRepository
	UserRepo      adapter.UserRepository
	EmailService  adapter.EmailService
	Locker        adapter.EntityLocker
	Clock         adapter.Clock
}

func (d MilestoneDeps) tracker() *progressTracker {
	return &progressTracker{
		goalRepo:      d.GoalRepo,
		milestoneRepo: d.MilestoneRepo,
		userRepo:      d.UserRepo,
		emailService:  d.EmailService,
		clock:         d.Clock,
	}
}

// CreateMilestoneInput represents the input for milestone creation.
type CreateMilestoneInput struct {
	GoalID      uuid.UUID
	UserID      uuid.UUID
	Title       string
	Description string
	TargetDate  *time.Time
}

// CreateMilestoneUseCase adds a milestone and refreshes goal progress.
type CreateMilestoneUseCase struct {
	deps    MilestoneDeps
	tracker *progressTracker
}

// NewCreateMilestoneUseCase creates a new CreateMilestoneUseCase instance.
func NewCreateMilestoneUseCase(deps MilestoneDeps) *CreateMilestoneUseCase {
	return &CreateMilestoneUseCase{deps: deps, tracker: deps.tracker()}
}

// Execute performs the milestone creation.
func (uc *CreateMilestoneUseCase) Execute(ctx context.Context, input CreateMilestoneInput) (*MilestoneOutput, error) {
	title, err := validateTitle(input.Title)
	if err != nil {
		return nil, err
	}
	description, err := validateDescription(input.Description, MaxMilestoneDescriptionLength)
	if err != nil {
		return nil, err
	}

	var out *MilestoneOutput
	err = uc.deps.Locker.WithLock(ctx, adapter.GoalLockKey(input.GoalID), func(ctx context.Context) error {
		goal, err := findOwnedGoal(ctx, uc.deps.GoalRepo, input.GoalID, input.UserID)
		if err != nil {
			return err
		}

		milestone := entity.NewMilestone(goal.ID, title, description, normalizeDate(input.TargetDate))
		if err := uc.deps.MilestoneRepo.Create(ctx, milestone); err != nil {
			return fmt.Errorf("failed to create milestone: %w", err)
		}

		if _, err := uc.tracker.refresh(ctx, goal); err != nil {
			return err
		}
		out = &MilestoneOutput{Milestone: milestone, Goal: goal}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// SetMilestoneCompletionInput represents the input for completing or
// reopening a milestone.
type SetMilestoneCompletionInput struct {
	MilestoneID uuid.UUID
	UserID      uuid.UUID
	Completed   bool
}

// SetMilestoneCompletionUseCase flips a milestone's completion and refreshes
// goal progress. A goal that already reached Completed stays Completed.
type SetMilestoneCompletionUseCase struct {
	deps    MilestoneDeps
	tracker *progressTracker
}

// NewSetMilestoneCompletionUseCase creates a new SetMilestoneCompletionUseCase instance.
func NewSetMilestoneCompletionUseCase(deps MilestoneDeps) *SetMilestoneCompletionUseCase {
	return &SetMilestoneCompletionUseCase{deps: deps, tracker: deps.tracker()}
}

// Execute performs the completion change.
func (uc *SetMilestoneCompletionUseCase) Execute(ctx context.Context, input SetMilestoneCompletionInput) (*MilestoneOutput, error) {
	milestone, goal, err := findOwnedMilestone(ctx, uc.deps.GoalRepo, uc.deps.MilestoneRepo, input.MilestoneID, input.UserID)
	if err != nil {
		return nil, err
	}

	var out *MilestoneOutput
	err = uc.deps.Locker.WithLock(ctx, adapter.GoalLockKey(goal.ID), func(ctx context.Context) error {
		// Re-read under the lock so concurrent toggles see each other.
		current, owner, err := findOwnedMilestone(ctx, uc.deps.GoalRepo, uc.deps.MilestoneRepo, milestone.ID, input.UserID)
		if err != nil {
			return err
		}

		if input.Completed {
			if !current.IsCompleted {
				current.MarkComplete(uc.deps.Clock.Now())
			}
		} else {
			current.MarkIncomplete()
		}

		if err := uc.deps.MilestoneRepo.Update(ctx, current); err != nil {
			return fmt.Errorf("failed to update milestone: %w", err)
		}

		if _, err := uc.tracker.refresh(ctx, owner); err != nil {
			return err
		}
		out = &MilestoneOutput{Milestone: current, Goal: owner}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteMilestoneInput represents the input for milestone deletion.
type DeleteMilestoneInput struct {
	MilestoneID uuid.UUID
	UserID      uuid.UUID
}

// DeleteMilestoneUseCase removes a milestone and refreshes goal progress.
type DeleteMilestoneUseCase struct {
	deps    MilestoneDeps
	tracker *progressTracker
}

// NewDeleteMilestoneUseCase creates a new DeleteMilestoneUseCase instance.
func NewDeleteMilestoneUseCase(deps MilestoneDeps) *DeleteMilestoneUseCase {
	return &DeleteMilestoneUseCase{deps: deps, tracker: deps.tracker()}
}

// Execute performs the milestone deletion and returns the refreshed goal.
func (uc *DeleteMilestoneUseCase) Execute(ctx context.Context, input DeleteMilestoneInput) (*entity.Goal, error) {
	milestone, goal, err := findOwnedMilestone(ctx, uc.deps.GoalRepo, uc.deps.MilestoneRepo, input.MilestoneID, input.UserID)
	if err != nil {
		return nil, err
	}

	err = uc.deps.Locker.WithLock(ctx, adapter.GoalLockKey(goal.ID), func(ctx context.Context) error {
		if err := uc.deps.MilestoneRepo.Delete(ctx, milestone.ID); err != nil {
			return fmt.Errorf("failed to delete milestone: %w", err)
		}

		fresh, err := findOwnedGoal(ctx, uc.deps.GoalRepo, goal.ID, input.UserID)
		if err != nil {
			return err
		}
		goal = fresh

		_, err = uc.tracker.refresh(ctx, goal)
		return err
	})
	if err != nil {
		return nil, err
	}
	return goal, nil
}
