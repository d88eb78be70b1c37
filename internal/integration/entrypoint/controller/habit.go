package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/self-focus/backend/internal/application/usecase/habit"
	"github.com/self-focus/backend/internal/domain/entity"
	domainerror "github.com/self-focus/backend/internal/domain/error"
	"github.com/self-focus/backend/internal/domain/service"
	"github.com/self-focus/backend/internal/integration/entrypoint/dto"
)

const alreadyCheckedInMessage = "Already checked in for this date"

// HabitController handles habit, check-in and calendar endpoints.
type HabitController struct {
	uc HabitUseCases
}

// HabitUseCases groups the use cases served by HabitController.
type HabitUseCases struct {
	List          *habit.ListHabitsUseCase
	Create        *habit.CreateHabitUseCase
	Get           *habit.GetHabitUseCase
	Update        *habit.UpdateHabitUseCase
	Toggle        *habit.ToggleHabitUseCase
	Delete        *habit.DeleteHabitUseCase
	CheckIn       *habit.CheckInUseCase
	RemoveCheckIn *habit.RemoveCheckInUseCase
	Calendar      *habit.CalendarUseCase
}

// NewHabitController creates a new habit controller instance.
func NewHabitController(uc HabitUseCases) *HabitController {
	return &HabitController{uc: uc}
}

// List handles GET /habits requests. include_inactive=true also lists paused habits.
func (c *HabitController) List(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	output, err := c.uc.List.Execute(ctx.Request.Context(), habit.ListHabitsInput{
		UserID:          userID,
		IncludeInactive: ctx.Query("include_inactive") == "true",
	})
	if err != nil {
		c.handleHabitError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToHabitListResponse(output))
}

// Create handles POST /habits requests.
func (c *HabitController) Create(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req dto.CreateHabitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Invalid request body",
			Code:    string(domainerror.ErrCodeMissingHabitFields),
			Details: err.Error(),
		})
		return
	}

	output, err := c.uc.Create.Execute(ctx.Request.Context(), habit.CreateHabitInput{
		UserID:       userID,
		Name:         req.Name,
		Description:  req.Description,
		Frequency:    entity.HabitFrequency(req.Frequency),
		TargetCount:  req.TargetCount,
		ReminderTime: req.ReminderTime,
	})
	if err != nil {
		c.handleHabitError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToHabitResponse(output.Habit))
}

// Get handles GET /habits/:id requests.
func (c *HabitController) Get(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	habitID, ok := uuidParam(ctx, "id", "habit")
	if !ok {
		return
	}

	output, err := c.uc.Get.Execute(ctx.Request.Context(), habit.GetHabitInput{
		HabitID: habitID,
		UserID:  userID,
	})
	if err != nil {
		c.handleHabitError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToHabitDetailResponse(output))
}

// Update handles PUT /habits/:id requests.
func (c *HabitController) Update(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	habitID, ok := uuidParam(ctx, "id", "habit")
	if !ok {
		return
	}

	var req dto.UpdateHabitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequestBody(ctx, err)
		return
	}

	input := habit.UpdateHabitInput{
		HabitID:      habitID,
		UserID:       userID,
		Name:         req.Name,
		Description:  req.Description,
		TargetCount:  req.TargetCount,
		ReminderTime: req.ReminderTime,
	}
	if req.Frequency != nil {
		frequency := entity.HabitFrequency(*req.Frequency)
		input.Frequency = &frequency
	}

	output, err := c.uc.Update.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleHabitError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToHabitResponse(output.Habit))
}

// Toggle handles POST /habits/:id/toggle requests.
func (c *HabitController) Toggle(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	habitID, ok := uuidParam(ctx, "id", "habit")
	if !ok {
		return
	}

	updated, err := c.uc.Toggle.Execute(ctx.Request.Context(), habit.ToggleHabitInput{
		HabitID: habitID,
		UserID:  userID,
	})
	if err != nil {
		c.handleHabitError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToHabitResponse(updated))
}

// Delete handles DELETE /habits/:id requests.
func (c *HabitController) Delete(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	habitID, ok := uuidParam(ctx, "id", "habit")
	if !ok {
		return
	}

	err := c.uc.Delete.Execute(ctx.Request.Context(), habit.DeleteHabitInput{
		HabitID: habitID,
		UserID:  userID,
	})
	if err != nil {
		c.handleHabitError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// CheckIn handles POST /habits/:id/checkin requests.
// A repeated date answers 400 without touching the habit.
func (c *HabitController) CheckIn(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	habitID, ok := uuidParam(ctx, "id", "habit")
	if !ok {
		return
	}

	var req dto.CheckInRequest
	if ctx.Request.ContentLength != 0 {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			badRequestBody(ctx, err)
			return
		}
	}

	date, ok := optionalDate(ctx, req.Date, "date")
	if !ok {
		return
	}

	output, err := c.uc.CheckIn.Execute(ctx.Request.Context(), habit.CheckInInput{
		HabitID: habitID,
		UserID:  userID,
		Date:    date,
		Notes:   req.Notes,
	})
	if err != nil {
		c.handleHabitError(ctx, err)
		return
	}

	if output.Outcome == service.CheckInAlreadyRecorded {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: alreadyCheckedInMessage,
			Code:  string(domainerror.ErrCodeAlreadyCheckedIn),
		})
		return
	}

	response := dto.CheckInResponse{
		Message:       "Checked in",
		CurrentStreak: output.CurrentStreak,
		LongestStreak: output.LongestStreak,
	}
	if output.Log != nil {
		log := dto.ToHabitLogResponse(output.Log)
		response.Log = &log
	}
	ctx.JSON(http.StatusCreated, response)
}

// RemoveCheckIn handles DELETE /checkins/:id requests.
func (c *HabitController) RemoveCheckIn(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	logID, ok := uuidParam(ctx, "id", "check-in")
	if !ok {
		return
	}

	updated, err := c.uc.RemoveCheckIn.Execute(ctx.Request.Context(), habit.RemoveCheckInInput{
		LogID:  logID,
		UserID: userID,
	})
	if err != nil {
		c.handleHabitError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToHabitResponse(updated))
}

// Calendar handles GET /habits/calendar requests.
func (c *HabitController) Calendar(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	input := habit.CalendarInput{UserID: userID}
	if daysStr := ctx.Query("days"); daysStr != "" {
		days, err := strconv.Atoi(daysStr)
		if err != nil || days < 1 {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "days must be a positive integer",
			})
			return
		}
		input.Days = days
	}

	output, err := c.uc.Calendar.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleHabitError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCalendarResponse(output))
}

// handleHabitError handles habit errors and returns appropriate HTTP responses.
func (c *HabitController) handleHabitError(ctx *gin.Context, err error) {
	var habitErr *domainerror.HabitError
	if errors.As(err, &habitErr) {
		ctx.JSON(c.getStatusCodeForHabitError(habitErr.Code), dto.ErrorResponse{
			Error: habitErr.Message,
			Code:  string(habitErr.Code),
		})
		return
	}

	internalError(ctx)
}

// getStatusCodeForHabitError maps habit error codes to HTTP status codes.
func (c *HabitController) getStatusCodeForHabitError(code domainerror.HabitErrorCode) int {
	switch code {
	case domainerror.ErrCodeHabitNotFound,
		domainerror.ErrCodeHabitLogNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeUnauthorizedHabitAccess:
		return http.StatusForbidden
	case domainerror.ErrCodeHabitNameExists:
		return http.StatusConflict
	case domainerror.ErrCodeInvalidHabitFrequency,
		domainerror.ErrCodeHabitNameRequired,
		domainerror.ErrCodeHabitNameTooLong,
		domainerror.ErrCodeInvalidReminderTime,
		domainerror.ErrCodeInvalidCheckInDate,
		domainerror.ErrCodeMissingHabitFields,
		domainerror.ErrCodeHabitFieldTooLong,
		domainerror.ErrCodeHabitLimitReached,
		domainerror.ErrCodeAlreadyCheckedIn:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
