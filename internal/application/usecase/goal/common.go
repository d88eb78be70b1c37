// Package goal contains goal and milestone use cases.
package goal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
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
	// MaxTitleLength applies to goal and milestone titles.
	MaxTitleLength = 200
	// MaxGoalDescriptionLength is the maximum goal description length.
	MaxGoalDescriptionLength = 1000
	// MaxMilestoneDescriptionLength is the maximum milestone description length.
	MaxMilestoneDescriptionLength = 500
)

func validateTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", domainerror.NewGoalError(
			domainerror.ErrCodeGoalTitleRequired,
			"title is required",
			domainerror.ErrGoalTitleRequired,
		)
	}
	if len(title) > MaxTitleLength {
		return "", domainerror.NewGoalError(
			domainerror.ErrCodeGoalTitleTooLong,
			fmt.Sprintf("title must not exceed %d characters", MaxTitleLength),
			domainerror.ErrGoalTitleTooLong,
		)
	}
	return title, nil
}

func validateDescription(description string, max int) (string, error) {
	description = strings.TrimSpace(description)
	if len(description) > max {
		return "", domainerror.NewGoalError(
			domainerror.ErrCodeGoalDescriptionTooLong,
			fmt.Sprintf("description must not exceed %d characters", max),
			domainerror.ErrGoalDescriptionTooLong,
		)
	}
	return description, nil
}

func normalizeDate(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	d := valueobject.Date(*t)
	return &d
}

// findOwnedGoal loads a goal and checks it belongs to userID.
func findOwnedGoal(ctx context.Context, repo adapter.GoalRepository, goalID, userID uuid.UUID) (*entity.Goal, error) {
	goal, err := repo.FindByID(ctx, goalID)
	if err != nil {
		if errors.Is(err, domainerror.ErrGoalNotFound) {
			return nil, domainerror.NewGoalError(
				domainerror.ErrCodeGoalNotFound,
				"goal not found",
				domainerror.ErrGoalNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find goal: %w", err)
	}

	if goal.UserID != userID {
		return nil, domainerror.NewGoalError(
			domainerror.ErrCodeUnauthorizedGoalAccess,
			"not authorized to access this goal",
			domainerror.ErrUnauthorizedGoalAccess,
		)
	}
	return goal, nil
}

// findOwnedMilestone loads a milestone together with its goal and checks ownership.
func findOwnedMilestone(
	ctx context.Context,
	goalRepo adapter.GoalRepository,
	milestoneRepo adapter.MilestoneRepository,
	milestoneID, userID uuid.UUID,
) (*entity.Milestone, *entity.Goal, error) {
	milestone, err := milestoneRepo.FindByID(ctx, milestoneID)
	if err != nil {
		if errors.Is(err, domainerror.ErrMilestoneNotFound) {
			return nil, nil, domainerror.NewGoalError(
				domainerror.ErrCodeMilestoneNotFound,
				"milestone not found",
				domainerror.ErrMilestoneNotFound,
			)
		}
		return nil, nil, fmt.Errorf("failed to find milestone: %w", err)
	}

	goal, err := findOwnedGoal(ctx, goalRepo, milestone.GoalID, userID)
	if err != nil {
		return nil, nil, err
	}
	return milestone, goal, nil
}

// progressTracker recomputes and persists goal progress after milestone changes.
type progressTracker struct {
	goalRepo      adapter.GoalRepository
	milestoneRepo adapter.MilestoneRepository
	userRepo      adapter.UserRepository
	emailService  adapter.EmailService
	clock         adapter.Clock
}

// refresh reloads the milestones of goal, applies the derived progress and
// saves the goal. Must run under the goal lock.
func (p *progressTracker) refresh(ctx context.Context, goal *entity.Goal) ([]*entity.Milestone, error) {
	milestones, err := p.milestoneRepo.FindByGoal(ctx, goal.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load milestones: %w", err)
	}

	completed := service.ApplyProgress(goal, service.ComputeProgress(milestones))
	goal.UpdatedAt = p.clock.Now().UTC()
	if err := p.goalRepo.Update(ctx, goal); err != nil {
		return nil, fmt.Errorf("failed to update goal progress: %w", err)
	}

	slog.Debug("Goal progress recomputed",
		"goal_id", goal.ID,
		"progress", goal.ProgressPercentage,
		"status", goal.Status,
	)

	if completed {
		slog.Info("Goal completed", "goal_id", goal.ID, "user_id", goal.UserID)
		p.notifyCompleted(ctx, goal)
	}
	return milestones, nil
}

// notifyCompleted queues the congratulation email. Failures are logged only.
func (p *progressTracker) notifyCompleted(ctx context.Context, goal *entity.Goal) {
	if p.emailService == nil || p.userRepo == nil {
		return
	}

	user, err := p.userRepo.FindByID(ctx, goal.UserID)
	if err != nil {
		slog.Warn("Failed to load user for goal completed email", "goal_id", goal.ID, "error", err)
		return
	}

	if err := p.emailService.QueueGoalCompletedEmail(ctx, adapter.QueueGoalCompletedInput{
		UserID:    user.ID,
		UserEmail: user.Email,
		UserName:  user.Username,
		GoalTitle: goal.Title,
	}); err != nil {
		slog.Warn("Failed to queue goal completed email", "goal_id", goal.ID, "error", err)
	}
}
