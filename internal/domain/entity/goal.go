// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// GoalStatus represents the lifecycle state of a goal.
type GoalStatus string

const (
	GoalStatusActive    GoalStatus = "Active"
	GoalStatusCompleted GoalStatus = "Completed"
	GoalStatusPaused    GoalStatus = "Paused"
)

// IsValid reports whether s is one of the known goal statuses.
func (s GoalStatus) IsValid() bool {
	switch s {
	case GoalStatusActive, GoalStatusCompleted, GoalStatusPaused:
		return true
	}
	return false
}

// Goal represents a personal goal tracked through milestones.
type Goal struct {
	ID                 uuid.UUID
	UserID             uuid.UUID
	Title              string
	Description        string
	TargetDate         *time.Time
	Status             GoalStatus
	ProgressPercentage int
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// NewGoal creates a new active Goal with zero progress.
func NewGoal(userID uuid.UUID, title, description string, targetDate *time.Time) *Goal {
	now := time.Now().UTC()

	return &Goal{
		ID:          uuid.New(),
		UserID:      userID,
		Title:       title,
		Description: description,
		TargetDate:  targetDate,
		Status:      GoalStatusActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Milestone is a checkpoint of a goal. CompletedAt is set if and only if IsCompleted is true.
type Milestone struct {
	ID          uuid.UUID
	GoalID      uuid.UUID
	Title       string
	Description string
	TargetDate  *time.Time
	IsCompleted bool
	CompletedAt *time.Time
	CreatedAt   time.Time
}

// NewMilestone creates a new incomplete Milestone for the given goal.
func NewMilestone(goalID uuid.UUID, title, description string, targetDate *time.Time) *Milestone {
	return &Milestone{
		ID:          uuid.New(),
		GoalID:      goalID,
		Title:       title,
		Description: description,
		TargetDate:  targetDate,
		CreatedAt:   time.Now().UTC(),
	}
}

// MarkComplete flags the milestone as completed at the given instant.
func (m *Milestone) MarkComplete(at time.Time) {
	t := at.UTC()
	m.IsCompleted = true
	m.CompletedAt = &t
}

// MarkIncomplete clears the completion flag and timestamp.
func (m *Milestone) MarkIncomplete() {
	m.IsCompleted = false
	m.CompletedAt = nil
}

// GoalWithMilestones represents a goal with its milestones ordered by target date.
type GoalWithMilestones struct {
	Goal       *Goal
	Milestones []*Milestone
}
