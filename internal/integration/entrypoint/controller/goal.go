package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/self-focus/backend/internal/application/usecase/goal"
	"github.com/self-focus/backend/internal/domain/entity"
	domainerror "github.com/self-focus/backend/internal/domain/error"
	"github.com/self-focus/backend/internal/integration/entrypoint/dto"
)

// GoalController handles goal and milestone endpoints.
type GoalController struct {
	listUseCase              *goal.ListGoalsUseCase
	createUseCase            *goal.CreateGoalUseCase
	getUseCase               *goal.GetGoalUseCase
	updateUseCase            *goal.UpdateGoalUseCase
	updateStatusUseCase      *goal.UpdateGoalStatusUseCase
	deleteUseCase            *goal.DeleteGoalUseCase
	createMilestoneUseCase   *goal.CreateMilestoneUseCase
	completeMilestoneUseCase *goal.SetMilestoneCompletionUseCase
	deleteMilestoneUseCase   *goal.DeleteMilestoneUseCase
}

// GoalUseCases groups the use cases served by GoalController.
type GoalUseCases struct {
	List              *goal.ListGoalsUseCase
	Create            *goal.CreateGoalUseCase
	Get               *goal.GetGoalUseCase
	Update            *goal.UpdateGoalUseCase
	UpdateStatus      *goal.UpdateGoalStatusUseCase
	Delete            *goal.DeleteGoalUseCase
	CreateMilestone   *goal.CreateMilestoneUseCase
	CompleteMilestone *goal.SetMilestoneCompletionUseCase
	DeleteMilestone   *goal.DeleteMilestoneUseCase
}

// NewGoalController creates a new goal controller instance.
func NewGoalController(uc GoalUseCases) *GoalController {
	return &GoalController{
		listUseCase:              uc.List,
		createUseCase:            uc.Create,
		getUseCase:               uc.Get,
		updateUseCase:            uc.Update,
		updateStatusUseCase:      uc.UpdateStatus,
		deleteUseCase:            uc.Delete,
		createMilestoneUseCase:   uc.CreateMilestone,
		completeMilestoneUseCase: uc.CompleteMilestone,
		deleteMilestoneUseCase:   uc.DeleteMilestone,
	}
}

// List handles GET /goals requests with an optional status filter.
func (c *GoalController) List(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	input := goal.ListGoalsInput{UserID: userID}
	if statusStr := ctx.Query("status"); statusStr != "" {
		status := entity.GoalStatus(statusStr)
		if !status.IsValid() {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "status must be Active, Completed or Paused",
				Code:  string(domainerror.ErrCodeInvalidGoalStatus),
			})
			return
		}
		input.Status = &status
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleGoalError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToGoalListResponse(output))
}

// Create handles POST /goals requests.
func (c *GoalController) Create(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req dto.CreateGoalRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Invalid request body",
			Code:    string(domainerror.ErrCodeMissingGoalFields),
			Details: err.Error(),
		})
		return
	}

	targetDate, ok := optionalDate(ctx, req.TargetDate, "target_date")
	if !ok {
		return
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), goal.CreateGoalInput{
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		TargetDate:  targetDate,
	})
	if err != nil {
		c.handleGoalError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToGoalResponse(output.Goal))
}

// Get handles GET /goals/:id requests.
func (c *GoalController) Get(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	goalID, ok := uuidParam(ctx, "id", "goal")
	if !ok {
		return
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), goal.GetGoalInput{
		GoalID: goalID,
		UserID: userID,
	})
	if err != nil {
		c.handleGoalError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToGoalDetailResponse(output))
}

// Update handles PUT /goals/:id requests.
func (c *GoalController) Update(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	goalID, ok := uuidParam(ctx, "id", "goal")
	if !ok {
		return
	}

	var req dto.UpdateGoalRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequestBody(ctx, err)
		return
	}

	targetDate, ok := optionalDate(ctx, req.TargetDate, "target_date")
	if !ok {
		return
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), goal.UpdateGoalInput{
		GoalID:          goalID,
		UserID:          userID,
		Title:           req.Title,
		Description:     req.Description,
		TargetDate:      targetDate,
		ClearTargetDate: req.ClearTargetDate,
	})
	if err != nil {
		c.handleGoalError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToGoalResponse(output.Goal))
}

// UpdateStatus handles PATCH /goals/:id/status requests.
func (c *GoalController) UpdateStatus(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	goalID, ok := uuidParam(ctx, "id", "goal")
	if !ok {
		return
	}

	var req dto.UpdateGoalStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequestBody(ctx, err)
		return
	}

	output, err := c.updateStatusUseCase.Execute(ctx.Request.Context(), goal.UpdateGoalStatusInput{
		GoalID: goalID,
		UserID: userID,
		Status: entity.GoalStatus(req.Status),
	})
	if err != nil {
		c.handleGoalError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToGoalResponse(output.Goal))
}

// Delete handles DELETE /goals/:id requests.
func (c *GoalController) Delete(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	goalID, ok := uuidParam(ctx, "id", "goal")
	if !ok {
		return
	}

	err := c.deleteUseCase.Execute(ctx.Request.Context(), goal.DeleteGoalInput{
		GoalID: goalID,
		UserID: userID,
	})
	if err != nil {
		c.handleGoalError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// CreateMilestone handles POST /goals/:id/milestones requests.
func (c *GoalController) CreateMilestone(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	goalID, ok := uuidParam(ctx, "id", "goal")
	if !ok {
		return
	}

	var req dto.CreateMilestoneRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequestBody(ctx, err)
		return
	}

	targetDate, ok := optionalDate(ctx, req.TargetDate, "target_date")
	if !ok {
		return
	}

	output, err := c.createMilestoneUseCase.Execute(ctx.Request.Context(), goal.CreateMilestoneInput{
		GoalID:      goalID,
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		TargetDate:  targetDate,
	})
	if err != nil {
		c.handleGoalError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToMilestoneMutationResponse(output))
}

// SetMilestoneCompletion handles PATCH /milestones/:id requests.
func (c *GoalController) SetMilestoneCompletion(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	milestoneID, ok := uuidParam(ctx, "id", "milestone")
	if !ok {
		return
	}

	var req dto.SetMilestoneCompletionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequestBody(ctx, err)
		return
	}

	output, err := c.completeMilestoneUseCase.Execute(ctx.Request.Context(), goal.SetMilestoneCompletionInput{
		MilestoneID: milestoneID,
		UserID:      userID,
		Completed:   *req.Completed,
	})
	if err != nil {
		c.handleGoalError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToMilestoneMutationResponse(output))
}

// DeleteMilestone handles DELETE /milestones/:id requests and returns the recomputed goal.
func (c *GoalController) DeleteMilestone(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	milestoneID, ok := uuidParam(ctx, "id", "milestone")
	if !ok {
		return
	}

	updated, err := c.deleteMilestoneUseCase.Execute(ctx.Request.Context(), goal.DeleteMilestoneInput{
		MilestoneID: milestoneID,
		UserID:      userID,
	})
	if err != nil {
		c.handleGoalError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MilestoneMutationResponse{
		Goal: dto.ToGoalResponse(updated),
	})
}

// handleGoalError handles goal errors and returns appropriate HTTP responses.
func (c *GoalController) handleGoalError(ctx *gin.Context, err error) {
	var goalErr *domainerror.GoalError
	if errors.As(err, &goalErr) {
		ctx.JSON(c.getStatusCodeForGoalError(goalErr.Code), dto.ErrorResponse{
			Error: goalErr.Message,
			Code:  string(goalErr.Code),
		})
		return
	}

	internalError(ctx)
}

// getStatusCodeForGoalError maps goal error codes to HTTP status codes.
func (c *GoalController) getStatusCodeForGoalError(code domainerror.GoalErrorCode) int {
	switch code {
	case domainerror.ErrCodeGoalNotFound,
		domainerror.ErrCodeMilestoneNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeUnauthorizedGoalAccess:
		return http.StatusForbidden
	case domainerror.ErrCodeInvalidGoalStatus,
		domainerror.ErrCodeGoalTitleRequired,
		domainerror.ErrCodeGoalTitleTooLong,
		domainerror.ErrCodeGoalDescriptionTooLong,
		domainerror.ErrCodeMissingGoalFields:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
