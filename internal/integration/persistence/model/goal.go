// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/self-focus/backend/internal/domain/entity"
)

// GoalModel represents the goals table in the database.
type GoalModel struct {
	ID                 uuid.UUID  `gorm:"type:uuid;primaryKey"`
	UserID             uuid.UUID  `gorm:"type:uuid;not null;index"`
	Title              string     `gorm:"type:varchar(200);not null"`
	Description        string     `gorm:"type:text"`
	TargetDate         *time.Time `gorm:"type:date"`
	Status             string     `gorm:"type:varchar(20);not null;default:'Active';index"`
	ProgressPercentage int        `gorm:"not null;default:0"`
	CreatedAt          time.Time  `gorm:"not null"`
	UpdatedAt          time.Time  `gorm:"not null"`
}

// TableName returns the table name for the GoalModel.
func (GoalModel) TableName() string {
	return "goals"
}

// ToEntity converts a GoalModel to a domain Goal entity.
func (m *GoalModel) ToEntity() *entity.Goal {
	return &entity.Goal{
		ID:                 m.ID,
		UserID:             m.UserID,
		Title:              m.Title,
		Description:        m.Description,
		TargetDate:         utcPtr(m.TargetDate),
		Status:             entity.GoalStatus(m.Status),
		ProgressPercentage: m.ProgressPercentage,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
}

// GoalFromEntity creates a GoalModel from a domain Goal entity.
func GoalFromEntity(goal *entity.Goal) *GoalModel {
	return &GoalModel{
		ID:                 goal.ID,
		UserID:             goal.UserID,
		Title:              goal.Title,
		Description:        goal.Description,
		TargetDate:         goal.TargetDate,
		Status:             string(goal.Status),
		ProgressPercentage: goal.ProgressPercentage,
		CreatedAt:          goal.CreatedAt,
		UpdatedAt:          goal.UpdatedAt,
	}
}

// MilestoneModel represents the milestones table in the database.
type MilestoneModel struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	GoalID      uuid.UUID  `gorm:"type:uuid;not null;index"`
	Title       string     `gorm:"type:varchar(200);not null"`
	Description string     `gorm:"type:text"`
	TargetDate  *time.Time `gorm:"type:date"`
	IsCompleted bool       `gorm:"not null;default:false"`
	CompletedAt *time.Time `gorm:"type:timestamp"`
	CreatedAt   time.Time  `gorm:"not null"`
}

// TableName returns the table name for the MilestoneModel.
func (MilestoneModel) TableName() string {
	return "milestones"
}

// ToEntity converts a MilestoneModel to a domain Milestone entity.
func (m *MilestoneModel) ToEntity() *entity.Milestone {
	return &entity.Milestone{
		ID:          m.ID,
		GoalID:      m.GoalID,
		Title:       m.Title,
		Description: m.Description,
		TargetDate:  utcPtr(m.TargetDate),
		IsCompleted: m.IsCompleted,
		CompletedAt: m.CompletedAt,
		CreatedAt:   m.CreatedAt,
	}
}

// MilestoneFromEntity creates a MilestoneModel from a domain Milestone entity.
func MilestoneFromEntity(milestone *entity.Milestone) *MilestoneModel {
	return &MilestoneModel{
		ID:          milestone.ID,
		GoalID:      milestone.GoalID,
		Title:       milestone.Title,
		Description: milestone.Description,
		TargetDate:  milestone.TargetDate,
		IsCompleted: milestone.IsCompleted,
		CompletedAt: milestone.CompletedAt,
		CreatedAt:   milestone.CreatedAt,
	}
}

// utcPtr normalises a nullable date column read back from the driver.
func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
