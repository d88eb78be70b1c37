// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/self-focus/backend/internal/domain/entity"
)

// HabitModel represents the habits table in the database.
type HabitModel struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID        uuid.UUID `gorm:"type:uuid;not null;index"`
	Name          string    `gorm:"type:varchar(200);not null"`
	Description   string    `gorm:"type:text"`
	Frequency     string    `gorm:"type:varchar(20);not null;default:'Daily'"`
	TargetCount   int       `gorm:"not null;default:1"`
	CurrentStreak int       `gorm:"not null;default:0"`
	LongestStreak int       `gorm:"not null;default:0"`
	IsActive      bool      `gorm:"not null;index"`
	ReminderTime  string    `gorm:"type:varchar(5)"`
	CreatedAt     time.Time `gorm:"not null"`
	UpdatedAt     time.Time `gorm:"not null"`
}

// TableName returns the table name for the HabitModel.
func (HabitModel) TableName() string {
	return "habits"
}

// ToEntity converts a HabitModel to a domain Habit entity.
func (m *HabitModel) ToEntity() *entity.Habit {
	return &entity.Habit{
		ID:            m.ID,
		UserID:        m.UserID,
		Name:          m.Name,
		Description:   m.Description,
		Frequency:     entity.HabitFrequency(m.Frequency),
		TargetCount:   m.TargetCount,
		CurrentStreak: m.CurrentStreak,
		LongestStreak: m.LongestStreak,
		IsActive:      m.IsActive,
		ReminderTime:  m.ReminderTime,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

// HabitFromEntity creates a HabitModel from a domain Habit entity.
func HabitFromEntity(habit *entity.Habit) *HabitModel {
	return &HabitModel{
		ID:            habit.ID,
		UserID:        habit.UserID,
		Name:          habit.Name,
		Description:   habit.Description,
		Frequency:     string(habit.Frequency),
		TargetCount:   habit.TargetCount,
		CurrentStreak: habit.CurrentStreak,
		LongestStreak: habit.LongestStreak,
		IsActive:      habit.IsActive,
		ReminderTime:  habit.ReminderTime,
		CreatedAt:     habit.CreatedAt,
		UpdatedAt:     habit.UpdatedAt,
	}
}

// HabitLogModel represents the habit_logs table. One row per habit and day.
type HabitLogModel struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	HabitID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_habit_logs_habit_date"`
	DateCompleted time.Time `gorm:"type:date;not null;uniqueIndex:idx_habit_logs_habit_date"`
	Notes         string    `gorm:"type:text"`
	CreatedAt     time.Time `gorm:"not null"`
}

// TableName returns the table name for the HabitLogModel.
func (HabitLogModel) TableName() string {
	return "habit_logs"
}

// ToEntity converts a HabitLogModel to a domain HabitLog entity.
func (m *HabitLogModel) ToEntity() *entity.HabitLog {
	return &entity.HabitLog{
		ID:            m.ID,
		HabitID:       m.HabitID,
		DateCompleted: m.DateCompleted.UTC(),
		Notes:         m.Notes,
		CreatedAt:     m.CreatedAt,
	}
}

// HabitLogFromEntity creates a HabitLogModel from a domain HabitLog entity.
func HabitLogFromEntity(log *entity.HabitLog) *HabitLogModel {
	return &HabitLogModel{
		ID:            log.ID,
		HabitID:       log.HabitID,
		DateCompleted: log.DateCompleted,
		Notes:         log.Notes,
		CreatedAt:     log.CreatedAt,
	}
}
