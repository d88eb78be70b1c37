// Package dashboard contains dashboard-related use cases.
package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/self-focus/backend/internal/application/adapter"
	"github.com/self-focus/backend/internal/domain/entity"
	"github.com/self-focus/backend/internal/domain/service"
	"github.com/self-focus/backend/internal/domain/valueobject"
)

// RecentItemsLimit caps the recent goals, transactions and check-ins shown.
const RecentItemsLimit = 5

// GetOverviewInput represents the input for the dashboard overview.
type GetOverviewInput struct {
	UserID uuid.UUID
}

// GoalCounts holds goal totals by status.
type GoalCounts struct {
	Total     int
	Active    int
	Completed int
	Paused    int
}

// RecentCheckIn is a check-in with its habit name.
type RecentCheckIn struct {
	Log       *entity.HabitLog
	HabitName string
}

// GetOverviewOutput aggregates goals, ledger and habits for the home screen.
type GetOverviewOutput struct {
	Goals                GoalCounts
	RecentGoals          []*entity.Goal
	Balance              decimal.Decimal
	MonthIncome          decimal.Decimal
	MonthExpenses        decimal.Decimal
	RecentTransactions   []*entity.TransactionWithCategory
	ActiveHabits         int
	HabitsCompletedToday int
	Habits               []*entity.Habit
	RecentCheckIns       []RecentCheckIn
}

// GetOverviewUseCase builds the dashboard overview.
type GetOverviewUseCase struct {
	goalRepo        adapter.GoalRepository
	transactionRepo adapter.TransactionRepository
	habitRepo       adapter.HabitRepository
	logRepo         adapter.HabitLogRepository
	clock           adapter.Clock
}

// NewGetOverviewUseCase creates a new GetOverviewUseCase instance.
func NewGetOverviewUseCase(
	goalRepo adapter.GoalRepository,
	transactionRepo adapter.TransactionRepository,
	habitRepo adapter.HabitRepository,
	logRepo adapter.HabitLogRepository,
	clock adapter.Clock,
) *GetOverviewUseCase {
	return &GetOverviewUseCase{
		goalRepo:        goalRepo,
		transactionRepo: transactionRepo,
		habitRepo:       habitRepo,
		logRepo:         logRepo,
		clock:           clock,
	}
}

// Execute builds the overview.
func (uc *GetOverviewUseCase) Execute(ctx context.Context, input GetOverviewInput) (*GetOverviewOutput, error) {
	today := valueobject.Date(uc.clock.Now())
	out := &GetOverviewOutput{}

	if err := uc.fillGoals(ctx, input.UserID, out); err != nil {
		return nil, err
	}
	if err := uc.fillLedger(ctx, input.UserID, today, out); err != nil {
		return nil, err
	}
	if err := uc.fillHabits(ctx, input.UserID, today, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (uc *GetOverviewUseCase) fillGoals(ctx context.Context, userID uuid.UUID, out *GetOverviewOutput) error {
	goals, err := uc.goalRepo.FindByUser(ctx, userID, nil)
	if err != nil {
		return fmt.Errorf("failed to load goals: %w", err)
	}

	out.Goals.Total = len(goals)
	for _, g := range goals {
		switch g.Status {
		case entity.GoalStatusActive:
			out.Goals.Active++
		case entity.GoalStatusCompleted:
			out.Goals.Completed++
		case entity.GoalStatusPaused:
			out.Goals.Paused++
		}
	}

	if len(goals) > RecentItemsLimit {
		goals = goals[:RecentItemsLimit]
	}
	out.RecentGoals = goals
	return nil
}

func (uc *GetOverviewUseCase) fillLedger(ctx context.Context, userID uuid.UUID, today time.Time, out *GetOverviewOutput) error {
	txns, err := uc.transactionRepo.FindByUser(ctx, userID, nil, nil)
	if err != nil {
		return fmt.Errorf("failed to load transactions: %w", err)
	}

	start, end := PeriodBounds(today, GranularityMonthly)
	month := service.PeriodTotals(txns, &start, &end)
	out.Balance = service.Balance(txns)
	out.MonthIncome = month.IncomeTotal
	out.MonthExpenses = month.ExpenseTotal

	recent, err := uc.transactionRepo.FindByFilter(ctx,
		adapter.TransactionFilter{UserID: userID},
		adapter.TransactionPagination{Page: 1, Limit: RecentItemsLimit},
	)
	if err != nil {
		return fmt.Errorf("failed to load recent transactions: %w", err)
	}
	out.RecentTransactions = recent.Transactions
	return nil
}

func (uc *GetOverviewUseCase) fillHabits(ctx context.Context, userID uuid.UUID, today time.Time, out *GetOverviewOutput) error {
	active := true
	habits, err := uc.habitRepo.FindByFilter(ctx, adapter.HabitFilter{UserID: userID, IsActive: &active})
	if err != nil {
		return fmt.Errorf("failed to load habits: %w", err)
	}
	out.Habits = habits
	out.ActiveHabits = len(habits)
	if len(habits) == 0 {
		return nil
	}

	names := make(map[uuid.UUID]string, len(habits))
	ids := make([]uuid.UUID, 0, len(habits))
	for _, h := range habits {
		names[h.ID] = h.Name
		ids = append(ids, h.ID)
	}

	logs, err := uc.logRepo.FindByHabitsSince(ctx, ids, today.AddDate(0, 0, -30))
	if err != nil {
		return fmt.Errorf("failed to load check-ins: %w", err)
	}

	for _, l := range logs {
		if l.DateCompleted.Equal(today) {
			out.HabitsCompletedToday++
		}
		if len(out.RecentCheckIns) < RecentItemsLimit {
			out.RecentCheckIns = append(out.RecentCheckIns, RecentCheckIn{Log: l, HabitName: names[l.HabitID]})
		}
	}
	return nil
}
