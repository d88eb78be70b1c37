// Package error defines domain-specific errors for the Self Focus application.
package error

import "errors"

// Goal domain errors.
var (
	// ErrGoalNotFound is returned when a goal is not found in the system.
	ErrGoalNotFound = errors.New("goal not found")

	// ErrMilestoneNotFound is returned when a milestone is not found in the system.
	ErrMilestoneNotFound = errors.New("milestone not found")

	// ErrUnauthorizedGoalAccess is returned when user is not authorized to access a goal.
	ErrUnauthorizedGoalAccess = errors.New("unauthorized access to goal")

	// ErrInvalidGoalStatus is returned when the goal status is not one of the known values.
	ErrInvalidGoalStatus = errors.New("invalid goal status")

	// ErrGoalTitleRequired is returned when a goal or milestone is created without a title.
	ErrGoalTitleRequired = errors.New("title is required")

	// ErrGoalTitleTooLong is returned when a goal or milestone title exceeds the maximum length.
	ErrGoalTitleTooLong = errors.New("title too long")

	// ErrGoalDescriptionTooLong is returned when a description exceeds the maximum length.
	ErrGoalDescriptionTooLong = errors.New("description too long")
)

// GoalErrorCode defines error codes for goal errors.
// Format: GOL-XXYYYY where XX is category and YYYY is specific error.
type GoalErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeGoalNotFound            GoalErrorCode = "GOL-010001"
	ErrCodeMilestoneNotFound       GoalErrorCode = "GOL-010002"
	ErrCodeUnauthorizedGoalAccess  GoalErrorCode = "GOL-010003"
	ErrCodeInvalidGoalStatus       GoalErrorCode = "GOL-010004"
	ErrCodeGoalTitleRequired       GoalErrorCode = "GOL-010005"
	ErrCodeGoalTitleTooLong        GoalErrorCode = "GOL-010006"
	ErrCodeGoalDescriptionTooLong  GoalErrorCode = "GOL-010007"
	ErrCodeMissingGoalFields       GoalErrorCode = "GOL-010008"
)

// GoalError represents a goal error with code and message.
type GoalError struct {
	Code    GoalErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *GoalError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *GoalError) Unwrap() error {
	return e.Err
}

// NewGoalError creates a new GoalError with the given code and message.
func NewGoalError(code GoalErrorCode, message string, err error) *GoalError {
	return &GoalError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
