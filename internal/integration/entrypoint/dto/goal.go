package dto

import (
	"time"

	"github.com/self-focus/backend/internal/application/usecase/goal"
	"github.com/self-focus/backend/internal/domain/entity"
	"github.com/self-focus/backend/internal/domain/valueobject"
)

// CreateGoalRequest represents the request body for goal creation.
type CreateGoalRequest struct {
	Title       string  `json:"title" binding:"required,min=1,max=200"`
	Description string  `json:"description,omitempty" binding:"omitempty,max=1000"`
	TargetDate  *string `json:"target_date,omitempty"`
}

// UpdateGoalRequest represents the request body for goal update.
// ClearTargetDate removes the target date when set.
type UpdateGoalRequest struct {
	Title           *string `json:"title,omitempty" binding:"omitempty,min=1,max=200"`
	Description     *string `json:"description,omitempty" binding:"omitempty,max=1000"`
	TargetDate      *string `json:"target_date,omitempty"`
	ClearTargetDate bool    `json:"clear_target_date,omitempty"`
}

// UpdateGoalStatusRequest represents the request body for a status change.
type UpdateGoalStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// CreateMilestoneRequest represents the request body for milestone creation.
type CreateMilestoneRequest struct {
	Title       string  `json:"title" binding:"required,min=1,max=200"`
	Description string  `json:"description,omitempty" binding:"omitempty,max=500"`
	TargetDate  *string `json:"target_date,omitempty"`
}

// SetMilestoneCompletionRequest represents the request body for completing a milestone.
type SetMilestoneCompletionRequest struct {
	Completed *bool `json:"completed" binding:"required"`
}

// GoalResponse represents a single goal in API responses.
type GoalResponse struct {
	ID                 string              `json:"id"`
	UserID             string              `json:"user_id"`
	Title              string              `json:"title"`
	Description        string              `json:"description"`
	TargetDate         *string             `json:"target_date,omitempty"`
	Status             string              `json:"status"`
	ProgressPercentage int                 `json:"progress_percentage"`
	DaysRemaining      *int                `json:"days_remaining,omitempty"`
	Milestones         []MilestoneResponse `json:"milestones,omitempty"`
	CreatedAt          time.Time           `json:"created_at"`
	UpdatedAt          time.Time           `json:"updated_at"`
}

// GoalListResponse represents the response for listing goals.
type GoalListResponse struct {
	Goals []GoalResponse `json:"goals"`
}

// MilestoneResponse represents a single milestone in API responses.
type MilestoneResponse struct {
	ID          string     `json:"id"`
	GoalID      string     `json:"goal_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	TargetDate  *string    `json:"target_date,omitempty"`
	IsCompleted bool       `json:"is_completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// MilestoneMutationResponse returns the milestone with the recomputed goal.
type MilestoneMutationResponse struct {
	Milestone *MilestoneResponse `json:"milestone,omitempty"`
	Goal      GoalResponse       `json:"goal"`
}

func formatDatePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(valueobject.DateLayout)
	return &s
}

// ToGoalResponse converts a domain Goal entity to a GoalResponse DTO.
func ToGoalResponse(g *entity.Goal) GoalResponse {
	return GoalResponse{
		ID:                 g.ID.String(),
		UserID:             g.UserID.String(),
		Title:              g.Title,
		Description:        g.Description,
		TargetDate:         formatDatePtr(g.TargetDate),
		Status:             string(g.Status),
		ProgressPercentage: g.ProgressPercentage,
		CreatedAt:          g.CreatedAt,
		UpdatedAt:          g.UpdatedAt,
	}
}

// ToMilestoneResponse converts a domain Milestone entity to a MilestoneResponse DTO.
func ToMilestoneResponse(m *entity.Milestone) MilestoneResponse {
	return MilestoneResponse{
		ID:          m.ID.String(),
		GoalID:      m.GoalID.String(),
		Title:       m.Title,
		Description: m.Description,
		TargetDate:  formatDatePtr(m.TargetDate),
		IsCompleted: m.IsCompleted,
		CompletedAt: m.CompletedAt,
		CreatedAt:   m.CreatedAt,
	}
}

// ToGoalListResponse converts a ListGoalsOutput to GoalListResponse.
func ToGoalListResponse(output *goal.ListGoalsOutput) GoalListResponse {
	goals := make([]GoalResponse, len(output.Goals))
	for i, summary := range output.Goals {
		goals[i] = ToGoalResponse(summary.Goal)
		goals[i].DaysRemaining = summary.DaysRemaining
	}
	return GoalListResponse{
		Goals: goals,
	}
}

// ToGoalDetailResponse converts a GetGoalOutput to a GoalResponse with milestones.
func ToGoalDetailResponse(output *goal.GetGoalOutput) GoalResponse {
	response := ToGoalResponse(output.Goal)
	response.DaysRemaining = output.DaysRemaining
	response.Milestones = make([]MilestoneResponse, len(output.Milestones))
	for i, m := range output.Milestones {
		response.Milestones[i] = ToMilestoneResponse(m)
	}
	return response
}

// ToMilestoneMutationResponse converts a MilestoneOutput to its API form.
func ToMilestoneMutationResponse(output *goal.MilestoneOutput) MilestoneMutationResponse {
	milestone := ToMilestoneResponse(output.Milestone)
	return MilestoneMutationResponse{
		Milestone: &milestone,
		Goal:      ToGoalResponse(output.Goal),
	}
}
