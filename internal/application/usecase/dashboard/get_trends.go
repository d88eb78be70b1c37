// Package dashboard contains dashboard-related use cases.
package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/self-focus/backend/internal/application/adapter"
	domainerror "github.com/self-focus/backend/internal/domain/error"
	"github.com/self-focus/backend/internal/domain/service"
)

// GetTrendsInput represents the input for getting trends.
type GetTrendsInput struct {
	UserID      uuid.UUID
	StartDate   time.Time
	EndDate     time.Time
	Granularity Granularity
}

// TrendPoint represents a single trend data point.
type TrendPoint struct {
	PeriodStart      time.Time
	PeriodEnd        time.Time
	PeriodLabel      string
	Income           decimal.Decimal
	Expenses         decimal.Decimal
	Net              decimal.Decimal
	TransactionCount int
}

// GetTrendsOutput represents the output of getting trends.
type GetTrendsOutput struct {
	StartDate   time.Time
	EndDate     time.Time
	Granularity Granularity
	Trends      []TrendPoint
}

// GetTrendsUseCase handles getting income/expense trends.
type GetTrendsUseCase struct {
	transactionRepo adapter.TransactionRepository
}

// NewGetTrendsUseCase creates a new GetTrendsUseCase instance.
func NewGetTrendsUseCase(transactionRepo adapter.TransactionRepository) *GetTrendsUseCase {
	return &GetTrendsUseCase{
		transactionRepo: transactionRepo,
	}
}

// Execute retrieves income/expense trends for the given period and granularity.
// Periods without transactions are included with zero values.
func (uc *GetTrendsUseCase) Execute(ctx context.Context, input GetTrendsInput) (*GetTrendsOutput, error) {
	if err := validateTrendsInput(input); err != nil {
		return nil, err
	}

	txns, err := uc.transactionRepo.FindByUser(ctx, input.UserID, &input.StartDate, &input.EndDate)
	if err != nil {
		return nil, fmt.Errorf("failed to get trends: %w", err)
	}

	periods := PeriodSeries(input.StartDate, input.EndDate, input.Granularity)
	trends := make([]TrendPoint, 0, len(periods))
	for _, p := range periods {
		start, end := p.PeriodStart, p.PeriodEnd
		totals := service.PeriodTotals(txns, &start, &end)

		count := 0
		for _, t := range txns {
			if !t.Date.Before(start) && !t.Date.After(end) {
				count++
			}
		}

		trends = append(trends, TrendPoint{
			PeriodStart:      start,
			PeriodEnd:        end,
			PeriodLabel:      p.PeriodLabel,
			Income:           totals.IncomeTotal,
			Expenses:         totals.ExpenseTotal,
			Net:              totals.NetTotal,
			TransactionCount: count,
		})
	}

	return &GetTrendsOutput{
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		Granularity: input.Granularity,
		Trends:      trends,
	}, nil
}

// validateTrendsInput validates the input parameters.
func validateTrendsInput(input GetTrendsInput) error {
	if input.StartDate.IsZero() || input.EndDate.IsZero() {
		return domainerror.NewDashboardError(
			domainerror.ErrCodeMissingDate,
			"start_date and end_date are required",
			domainerror.ErrMissingDate,
		)
	}

	if input.EndDate.Before(input.StartDate) {
		return domainerror.NewDashboardError(
			domainerror.ErrCodeInvalidDateRange,
			"end_date must be after start_date",
			domainerror.ErrInvalidDateRange,
		)
	}

	if !input.Granularity.IsValid() {
		return domainerror.NewDashboardError(
			domainerror.ErrCodeInvalidGranularity,
			"granularity must be: weekly, monthly, or quarterly",
			domainerror.ErrInvalidGranularity,
		)
	}

	return nil
}
