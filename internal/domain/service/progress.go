package service

import (
	"time"

	"github.com/self-focus/backend/internal/domain/entity"
	"github.com/self-focus/backend/internal/domain/valueobject"
)

// ProgressResult is the outcome of ComputeProgress.
// StatusHint is non-nil only when the goal has reached 100%.
type ProgressResult struct {
	Percentage int
	StatusHint *entity.GoalStatus
}

// ComputeProgress derives a goal's completion percentage from its milestones.
// The percentage truncates, so 1 of 3 completed yields 33.
func ComputeProgress(milestones []*entity.Milestone) ProgressResult {
	total := len(milestones)
	if total == 0 {
		return ProgressResult{}
	}

	completed := 0
	for _, m := range milestones {
		if m != nil && m.IsCompleted {
			completed++
		}
	}

	result := ProgressResult{Percentage: completed * 100 / total}
	if result.Percentage == 100 {
		status := entity.GoalStatusCompleted
		result.StatusHint = &status
	}
	return result
}

// ApplyProgress writes the result onto the goal. A completed goal is never
// moved back to another status here. Reports whether the goal transitioned to
// Completed during this call.
func ApplyProgress(goal *entity.Goal, result ProgressResult) bool {
	goal.ProgressPercentage = result.Percentage
	if result.StatusHint == nil || goal.Status == *result.StatusHint {
		return false
	}
	goal.Status = *result.StatusHint
	return true
}

// DaysRemaining returns the whole calendar days from today to targetDate,
// negative when the date has passed. Nil when no target date is set.
func DaysRemaining(targetDate *time.Time, today time.Time) *int {
	if targetDate == nil {
		return nil
	}
	days := valueobject.DaysBetween(today, *targetDate)
	return &days
}
