package dto

import (
	"time"

	"github.com/self-focus/backend/internal/application/usecase/habit"
	"github.com/self-focus/backend/internal/domain/entity"
	"github.com/self-focus/backend/internal/domain/valueobject"
)

// CreateHabitRequest represents the request body for habit creation.
type CreateHabitRequest struct {
	Name         string `json:"name" binding:"required,min=1,max=200"`
	Description  string `json:"description,omitempty" binding:"omitempty,max=1000"`
	Frequency    string `json:"frequency,omitempty"`
	TargetCount  int    `json:"target_count,omitempty" binding:"omitempty,min=1"`
	ReminderTime string `json:"reminder_time,omitempty"`
}

// UpdateHabitRequest represents the request body for habit update.
type UpdateHabitRequest struct {
	Name         *string `json:"name,omitempty" binding:"omitempty,min=1,max=200"`
	Description  *string `json:"description,omitempty" binding:"omitempty,max=1000"`
	Frequency    *string `json:"frequency,omitempty"`
	TargetCount  *int    `json:"target_count,omitempty" binding:"omitempty,min=1"`
	ReminderTime *string `json:"reminder_time,omitempty"`
}

// CheckInRequest represents the request body for a check-in. Date defaults to today.
type CheckInRequest struct {
	Date  *string `json:"date,omitempty"`
	Notes string  `json:"notes,omitempty" binding:"omitempty,max=500"`
}

// HabitResponse represents a single habit in API responses.
type HabitResponse struct {
	ID             string    `json:"id"`
	UserID         string    `json:"user_id"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	Frequency      string    `json:"frequency"`
	TargetCount    int       `json:"target_count"`
	CurrentStreak  int       `json:"current_streak"`
	LongestStreak  int       `json:"longest_streak"`
	IsActive       bool      `json:"is_active"`
	ReminderTime   string    `json:"reminder_time,omitempty"`
	CompletedToday *bool     `json:"completed_today,omitempty"`
	CompletionRate *float64  `json:"completion_rate,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// HabitListResponse represents the response for listing habits.
type HabitListResponse struct {
	Habits []HabitResponse `json:"habits"`
}

// HabitLogResponse represents a single check-in in API responses.
type HabitLogResponse struct {
	ID            string    `json:"id"`
	HabitID       string    `json:"habit_id"`
	DateCompleted string    `json:"date_completed"`
	Notes         string    `json:"notes,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// HabitDetailResponse represents a habit with its recent check-ins.
type HabitDetailResponse struct {
	Habit      HabitResponse      `json:"habit"`
	RecentLogs []HabitLogResponse `json:"recent_logs"`
}

// CheckInResponse represents the result of a check-in.
type CheckInResponse struct {
	Message       string            `json:"message"`
	Log           *HabitLogResponse `json:"log,omitempty"`
	CurrentStreak int               `json:"current_streak"`
	LongestStreak int               `json:"longest_streak"`
}

// CalendarEntryResponse is a habit completed on a calendar day.
type CalendarEntryResponse struct {
	HabitID   string `json:"habit_id"`
	HabitName string `json:"habit_name"`
}

// CalendarResponse represents the check-in calendar.
type CalendarResponse struct {
	Habits []HabitResponse                     `json:"habits"`
	Days   map[string][]CalendarEntryResponse `json:"days"`
}

// ToHabitResponse converts a domain Habit entity to a HabitResponse DTO.
func ToHabitResponse(h *entity.Habit) HabitResponse {
	return HabitResponse{
		ID:            h.ID.String(),
		UserID:        h.UserID.String(),
		Name:          h.Name,
		Description:   h.Description,
		Frequency:     string(h.Frequency),
		TargetCount:   h.TargetCount,
		CurrentStreak: h.CurrentStreak,
		LongestStreak: h.LongestStreak,
		IsActive:      h.IsActive,
		ReminderTime:  h.ReminderTime,
		CreatedAt:     h.CreatedAt,
		UpdatedAt:     h.UpdatedAt,
	}
}

// ToHabitLogResponse converts a domain HabitLog entity to a HabitLogResponse DTO.
func ToHabitLogResponse(l *entity.HabitLog) HabitLogResponse {
	return HabitLogResponse{
		ID:            l.ID.String(),
		HabitID:       l.HabitID.String(),
		DateCompleted: l.DateCompleted.Format(valueobject.DateLayout),
		Notes:         l.Notes,
		CreatedAt:     l.CreatedAt,
	}
}

// ToHabitListResponse converts a ListHabitsOutput to HabitListResponse.
func ToHabitListResponse(output *habit.ListHabitsOutput) HabitListResponse {
	habits := make([]HabitResponse, len(output.Habits))
	for i, h := range output.Habits {
		completedToday := h.CompletedToday
		rate := h.CompletionRate
		habits[i] = ToHabitResponse(h.Habit)
		habits[i].CompletedToday = &completedToday
		habits[i].CompletionRate = &rate
	}
	return HabitListResponse{
		Habits: habits,
	}
}

// ToHabitDetailResponse converts a GetHabitOutput to HabitDetailResponse.
func ToHabitDetailResponse(output *habit.GetHabitOutput) HabitDetailResponse {
	completedToday := output.CompletedToday
	rate := output.CompletionRate
	response := HabitDetailResponse{
		Habit:      ToHabitResponse(output.Habit),
		RecentLogs: make([]HabitLogResponse, len(output.RecentLogs)),
	}
	response.Habit.CompletedToday = &completedToday
	response.Habit.CompletionRate = &rate
	for i, l := range output.RecentLogs {
		response.RecentLogs[i] = ToHabitLogResponse(l)
	}
	return response
}

// ToCalendarResponse converts a CalendarOutput to CalendarResponse.
func ToCalendarResponse(output *habit.CalendarOutput) CalendarResponse {
	response := CalendarResponse{
		Habits: make([]HabitResponse, len(output.Habits)),
		Days:   make(map[string][]CalendarEntryResponse, len(output.Days)),
	}
	for i, h := range output.Habits {
		response.Habits[i] = ToHabitResponse(h)
	}
	for day, entries := range output.Days {
		converted := make([]CalendarEntryResponse, len(entries))
		for i, e := range entries {
			converted[i] = CalendarEntryResponse{
				HabitID:   e.HabitID.String(),
				HabitName: e.HabitName,
			}
		}
		response.Days[day] = converted
	}
	return response
}
