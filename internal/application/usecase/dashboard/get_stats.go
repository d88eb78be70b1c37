// Package dashboard contains dashboard-related use cases.
package dashboard

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/self-focus/backend/internal/application/adapter"
	"github.com/self-focus/backend/internal/application/usecase/transaction"
	"github.com/self-focus/backend/internal/domain/entity"
	"github.com/self-focus/backend/internal/domain/service"
	"github.com/self-focus/backend/internal/domain/valueobject"
)

// GetStatsInput represents the input for dashboard chart data.
type GetStatsInput struct {
	UserID uuid.UUID
}

// GoalProgress is one row of the active goals chart.
type GoalProgress struct {
	GoalID        uuid.UUID
	Title         string
	Progress      int
	DaysRemaining *int
}

// GetStatsOutput holds the spending breakdown and the active goals' progress.
type GetStatsOutput struct {
	SpendingByCategory []transaction.CategoryAmount
	GoalsProgress      []GoalProgress
}

// GetStatsUseCase builds the dashboard chart data.
type GetStatsUseCase struct {
	goalRepo        adapter.GoalRepository
	transactionRepo adapter.TransactionRepository
	categoryRepo    adapter.CategoryRepository
	clock           adapter.Clock
}

// NewGetStatsUseCase creates a new GetStatsUseCase instance.
func NewGetStatsUseCase(
	goalRepo adapter.GoalRepository,
	transactionRepo adapter.TransactionRepository,
	categoryRepo adapter.CategoryRepository,
	clock adapter.Clock,
) *GetStatsUseCase {
	return &GetStatsUseCase{
		goalRepo:        goalRepo,
		transactionRepo: transactionRepo,
		categoryRepo:    categoryRepo,
		clock:           clock,
	}
}

// Execute builds the chart data.
func (uc *GetStatsUseCase) Execute(ctx context.Context, input GetStatsInput) (*GetStatsOutput, error) {
	today := valueobject.Date(uc.clock.Now())

	spending, _, err := transaction.ExpenseBreakdown(ctx, uc.transactionRepo, uc.categoryRepo, input.UserID, today, transaction.CategoryBreakdownWindowDays)
	if err != nil {
		return nil, err
	}

	status := entity.GoalStatusActive
	goals, err := uc.goalRepo.FindByUser(ctx, input.UserID, &status)
	if err != nil {
		return nil, fmt.Errorf("failed to load goals: %w", err)
	}

	progress := make([]GoalProgress, 0, len(goals))
	for _, g := range goals {
		progress = append(progress, GoalProgress{
			GoalID:        g.ID,
			Title:         g.Title,
			Progress:      g.ProgressPercentage,
			DaysRemaining: service.DaysRemaining(g.TargetDate, today),
		})
	}

	return &GetStatsOutput{
		SpendingByCategory: spending,
		GoalsProgress:      progress,
	}, nil
}
