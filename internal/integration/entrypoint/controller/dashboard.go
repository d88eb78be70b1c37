package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/self-focus/backend/internal/application/usecase/dashboard"
	domainerror "github.com/self-focus/backend/internal/domain/error"
	"github.com/self-focus/backend/internal/domain/valueobject"
	"github.com/self-focus/backend/internal/integration/entrypoint/dto"
)

// DashboardController handles dashboard endpoints.
type DashboardController struct {
	overviewUseCase *dashboard.GetOverviewUseCase
	statsUseCase    *dashboard.GetStatsUseCase
	trendsUseCase   *dashboard.GetTrendsUseCase
}

// NewDashboardController creates a new dashboard controller instance.
func NewDashboardController(
	overviewUseCase *dashboard.GetOverviewUseCase,
	statsUseCase *dashboard.GetStatsUseCase,
	trendsUseCase *dashboard.GetTrendsUseCase,
) *DashboardController {
	return &DashboardController{
		overviewUseCase: overviewUseCase,
		statsUseCase:    statsUseCase,
		trendsUseCase:   trendsUseCase,
	}
}

// Overview handles GET /dashboard requests.
func (c *DashboardController) Overview(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	output, err := c.overviewUseCase.Execute(ctx.Request.Context(), dashboard.GetOverviewInput{UserID: userID})
	if err != nil {
		c.handleDashboardError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToOverviewResponse(output))
}

// Stats handles GET /dashboard/stats requests.
func (c *DashboardController) Stats(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	output, err := c.statsUseCase.Execute(ctx.Request.Context(), dashboard.GetStatsInput{UserID: userID})
	if err != nil {
		c.handleDashboardError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToStatsResponse(output))
}

// Trends handles GET /dashboard/trends requests.
func (c *DashboardController) Trends(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	startDateStr := ctx.Query("start_date")
	endDateStr := ctx.Query("end_date")
	if startDateStr == "" || endDateStr == "" {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "start_date and end_date are required",
			Code:  string(domainerror.ErrCodeMissingDate),
		})
		return
	}

	startDate, err := valueobject.ParseDate(startDateStr)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid start_date format, expected YYYY-MM-DD",
			Code:  string(domainerror.ErrCodeInvalidDateFormat),
		})
		return
	}

	endDate, err := valueobject.ParseDate(endDateStr)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid end_date format, expected YYYY-MM-DD",
			Code:  string(domainerror.ErrCodeInvalidDateFormat),
		})
		return
	}

	granularity := dashboard.Granularity(ctx.DefaultQuery("granularity", string(dashboard.GranularityMonthly)))

	output, err := c.trendsUseCase.Execute(ctx.Request.Context(), dashboard.GetTrendsInput{
		UserID:      userID,
		StartDate:   startDate,
		EndDate:     endDate,
		Granularity: granularity,
	})
	if err != nil {
		c.handleDashboardError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTrendsResponse(output))
}

// handleDashboardError handles dashboard errors and returns appropriate HTTP responses.
func (c *DashboardController) handleDashboardError(ctx *gin.Context, err error) {
	var dashErr *domainerror.DashboardError
	if errors.As(err, &dashErr) {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: dashErr.Message,
			Code:  string(dashErr.Code),
		})
		return
	}

	internalError(ctx)
}
