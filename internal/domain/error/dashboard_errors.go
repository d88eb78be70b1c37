// Package error defines domain-specific errors for the Self Focus application.
package error

import "errors"

// Dashboard domain errors.
var (
	// ErrInvalidDateFormat is returned when a date parameter is not YYYY-MM-DD.
	ErrInvalidDateFormat = errors.New("invalid date format, expected YYYY-MM-DD")

	// ErrInvalidDateRange is returned when end_date is before start_date.
	ErrInvalidDateRange = errors.New("end_date must not be before start_date")

	// ErrInvalidYear is returned when a year parameter is out of range.
	ErrInvalidYear = errors.New("invalid year")

	// ErrInvalidGranularity is returned when the trend granularity is unknown.
	ErrInvalidGranularity = errors.New("invalid granularity")

	// ErrMissingDate is returned when a required date parameter is absent.
	ErrMissingDate = errors.New("date is required")
)

// DashboardErrorCode defines error codes for dashboard errors.
// Format: DSH-XXYYYY where XX is category and YYYY is specific error.
type DashboardErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidDateFormat  DashboardErrorCode = "DSH-010001"
	ErrCodeInvalidDateRange   DashboardErrorCode = "DSH-010002"
	ErrCodeInvalidYear        DashboardErrorCode = "DSH-010003"
	ErrCodeInvalidGranularity DashboardErrorCode = "DSH-010004"
	ErrCodeMissingDate        DashboardErrorCode = "DSH-010005"
)

// DashboardError represents a dashboard error with code and message.
type DashboardError struct {
	Code    DashboardErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *DashboardError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *DashboardError) Unwrap() error {
	return e.Err
}

// NewDashboardError creates a new DashboardError with the given code and message.
func NewDashboardError(code DashboardErrorCode, message string, err error) *DashboardError {
	return &DashboardError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
