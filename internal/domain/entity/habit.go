// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// HabitFrequency is the recurrence cadence of a habit.
type HabitFrequency string

const (
	HabitFrequencyDaily   HabitFrequency = "Daily"
	HabitFrequencyWeekly  HabitFrequency = "Weekly"
	HabitFrequencyMonthly HabitFrequency = "Monthly"
)

// IsValid reports whether f is one of the known cadences.
func (f HabitFrequency) IsValid() bool {
	switch f {
	case HabitFrequencyDaily, HabitFrequencyWeekly, HabitFrequencyMonthly:
		return true
	}
	return false
}

// Habit represents a recurring habit. LongestStreak >= CurrentStreak always holds.
type Habit struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	Name          string
	Description   string
	Frequency     HabitFrequency
	TargetCount   int
	CurrentStreak int
	LongestStreak int
	IsActive      bool
	ReminderTime  string // "HH:MM", empty when unset
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewHabit creates a new active Habit with no streak.
func NewHabit(userID uuid.UUID, name, description string, frequency HabitFrequency, targetCount int, reminderTime string) *Habit {
	now := time.Now().UTC()
	if targetCount < 1 {
		targetCount = 1
	}

	return &Habit{
		ID:           uuid.New(),
		UserID:       userID,
		Name:         name,
		Description:  description,
		Frequency:    frequency,
		TargetCount:  targetCount,
		IsActive:     true,
		ReminderTime: reminderTime,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// HabitLog records one completion of a habit. Unique per (HabitID, DateCompleted).
type HabitLog struct {
	ID            uuid.UUID
	HabitID       uuid.UUID
	DateCompleted time.Time // date only, midnight UTC
	Notes         string
	CreatedAt     time.Time
}

// NewHabitLog creates a new HabitLog for the given date.
func NewHabitLog(habitID uuid.UUID, dateCompleted time.Time, notes string) *HabitLog {
	return &HabitLog{
		ID:            uuid.New(),
		HabitID:       habitID,
		DateCompleted: dateCompleted,
		Notes:         notes,
		CreatedAt:     time.Now().UTC(),
	}
}

// HabitWithStatus decorates a habit with per-request derived fields.
type HabitWithStatus struct {
	Habit          *Habit
	CompletedToday bool
	CompletionRate float64
}
