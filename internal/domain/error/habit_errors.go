// Package error defines domain-specific errors for the Self Focus application.
package error

import "errors"

// Habit domain errors.
var (
	// ErrHabitNotFound is returned when a habit is not found in the system.
	ErrHabitNotFound = errors.New("habit not found")

	// ErrHabitLogNotFound is returned when a check-in record is not found.
	ErrHabitLogNotFound = errors.New("check-in not found")

	// ErrUnauthorizedHabitAccess is returned when user is not authorized to access a habit.
	ErrUnauthorizedHabitAccess = errors.New("unauthorized access to habit")

	// ErrHabitLimitReached is returned when the user already has the maximum number of active habits.
	ErrHabitLimitReached = errors.New("maximum active habits reached")

	// ErrHabitNameExists is returned when the user already has a habit with the same name.
	ErrHabitNameExists = errors.New("habit name already exists")

	// ErrInvalidHabitFrequency is returned when the cadence is not daily, weekly or monthly.
	ErrInvalidHabitFrequency = errors.New("invalid habit frequency")

	// ErrHabitNameRequired is returned when a habit is created without a name.
	ErrHabitNameRequired = errors.New("habit name is required")

	// ErrHabitNameTooLong is returned when a habit name exceeds the maximum length.
	ErrHabitNameTooLong = errors.New("habit name too long")

	// ErrHabitFieldTooLong is returned when a description or check-in note exceeds its maximum length.
	ErrHabitFieldTooLong = errors.New("habit field too long")

	// ErrInvalidReminderTime is returned when the reminder time is not HH:MM.
	ErrInvalidReminderTime = errors.New("invalid reminder time")

	// ErrAlreadyCheckedIn is returned by storage when a habit already has a check-in on that date.
	ErrAlreadyCheckedIn = errors.New("already checked in for this date")

	// ErrInvalidCheckInDate is returned when the check-in date cannot be parsed or lies in the future.
	ErrInvalidCheckInDate = errors.New("invalid check-in date")
)

// HabitErrorCode defines error codes for habit errors.
// Format: HAB-XXYYYY where XX is category and YYYY is specific error.
type HabitErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeHabitNotFound            HabitErrorCode = "HAB-010001"
	ErrCodeHabitLogNotFound         HabitErrorCode = "HAB-010002"
	ErrCodeUnauthorizedHabitAccess  HabitErrorCode = "HAB-010003"
	ErrCodeInvalidHabitFrequency    HabitErrorCode = "HAB-010004"
	ErrCodeHabitNameRequired        HabitErrorCode = "HAB-010005"
	ErrCodeHabitNameTooLong         HabitErrorCode = "HAB-010006"
	ErrCodeInvalidReminderTime      HabitErrorCode = "HAB-010007"
	ErrCodeInvalidCheckInDate       HabitErrorCode = "HAB-010008"
	ErrCodeMissingHabitFields       HabitErrorCode = "HAB-010009"
	ErrCodeHabitFieldTooLong        HabitErrorCode = "HAB-010010"

	// Admission errors (02XXXX)
	ErrCodeHabitLimitReached HabitErrorCode = "HAB-020001"
	ErrCodeHabitNameExists   HabitErrorCode = "HAB-020002"
	ErrCodeAlreadyCheckedIn  HabitErrorCode = "HAB-020003"
)

// HabitError represents a habit error with code and message.
type HabitError struct {
	Code    HabitErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *HabitError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *HabitError) Unwrap() error {
	return e.Err
}

// NewHabitError creates a new HabitError with the given code and message.
func NewHabitError(code HabitErrorCode, message string, err error) *HabitError {
	return &HabitError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
