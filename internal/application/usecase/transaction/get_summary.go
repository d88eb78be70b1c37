// Package transaction contains transaction-related use cases.
package transaction

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/self-focus/backend/internal/application/adapter"
	"github.com/self-focus/backend/internal/domain/entity"
	"github.com/self-focus/backend/internal/domain/service"
	"github.com/self-focus/backend/internal/domain/valueobject"
)

// CategoryBreakdownWindowDays is the look-back of the expense breakdown.
const CategoryBreakdownWindowDays = 30

// GetSummaryInput represents the input for the ledger summary.
type GetSummaryInput struct {
	UserID uuid.UUID
}

// GetSummaryOutput carries the balance and the current month's totals.
type GetSummaryOutput struct {
	Balance     decimal.Decimal
	MonthTotals entity.TransactionTotals
	MonthStart  time.Time
	MonthEnd    time.Time
}

// GetSummaryUseCase computes the ledger overview.
type GetSummaryUseCase struct {
	transactionRepo adapter.TransactionRepository
	clock           adapter.Clock
}

// NewGetSummaryUseCase creates a new GetSummaryUseCase instance.
func NewGetSummaryUseCase(transactionRepo adapter.TransactionRepository, clock adapter.Clock) *GetSummaryUseCase {
	return &GetSummaryUseCase{transactionRepo: transactionRepo, clock: clock}
}

// Execute computes the summary.
func (uc *GetSummaryUseCase) Execute(ctx context.Context, input GetSummaryInput) (*GetSummaryOutput, error) {
	txns, err := uc.transactionRepo.FindByUser(ctx, input.UserID, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load ledger: %w", err)
	}

	start, end := monthBounds(uc.clock.Now())
	return &GetSummaryOutput{
		Balance:     service.Balance(txns),
		MonthTotals: service.PeriodTotals(txns, &start, &end),
		MonthStart:  start,
		MonthEnd:    end,
	}, nil
}

// monthBounds returns the first and last calendar day of now's month.
func monthBounds(now time.Time) (time.Time, time.Time) {
	today := valueobject.Date(now)
	start := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, -1)
}

// CategoryAmount is one row of a category breakdown.
type CategoryAmount struct {
	Category *entity.Category
	Total    decimal.Decimal
}

// GetMonthlySummaryInput represents the input for the yearly report.
type GetMonthlySummaryInput struct {
	UserID uuid.UUID
	Year   int // Zero means the current year
}

// GetMonthlySummaryOutput holds per-month totals and the recent expense breakdown.
type GetMonthlySummaryOutput struct {
	Year             int
	Months           []entity.MonthlyTotals
	ExpenseBreakdown []CategoryAmount
	BreakdownStart   time.Time
	BreakdownEnd     time.Time
}

// GetMonthlySummaryUseCase builds the yearly report.
type GetMonthlySummaryUseCase struct {
	transactionRepo adapter.TransactionRepository
	categoryRepo    adapter.CategoryRepository
	clock           adapter.Clock
}

// NewGetMonthlySummaryUseCase creates a new GetMonthlySummaryUseCase instance.
func NewGetMonthlySummaryUseCase(
	transactionRepo adapter.TransactionRepository,
	categoryRepo adapter.CategoryRepository,
	clock adapter.Clock,
) *GetMonthlySummaryUseCase {
	return &GetMonthlySummaryUseCase{
		transactionRepo: transactionRepo,
		categoryRepo:    categoryRepo,
		clock:           clock,
	}
}

// Execute builds the report.
func (uc *GetMonthlySummaryUseCase) Execute(ctx context.Context, input GetMonthlySummaryInput) (*GetMonthlySummaryOutput, error) {
	today := valueobject.Date(uc.clock.Now())
	year := input.Year
	if year == 0 {
		year = today.Year()
	}

	yearStart := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	yearEnd := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
	yearTxns, err := uc.transactionRepo.FindByUser(ctx, input.UserID, &yearStart, &yearEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}

	breakdown, start, err := ExpenseBreakdown(ctx, uc.transactionRepo, uc.categoryRepo, input.UserID, today, CategoryBreakdownWindowDays)
	if err != nil {
		return nil, err
	}

	return &GetMonthlySummaryOutput{
		Year:             year,
		Months:           service.MonthlySummary(yearTxns, year),
		ExpenseBreakdown: breakdown,
		BreakdownStart:   start,
		BreakdownEnd:     today,
	}, nil
}

// ExpenseBreakdown totals expenses per category over the last windowDays,
// largest first. Categories without spending are omitted.
func ExpenseBreakdown(
	ctx context.Context,
	transactionRepo adapter.TransactionRepository,
	categoryRepo adapter.CategoryRepository,
	userID uuid.UUID,
	today time.Time,
	windowDays int,
) ([]CategoryAmount, time.Time, error) {
	start := today.AddDate(0, 0, -windowDays)
	txns, err := transactionRepo.FindByUser(ctx, userID, &start, &today)
	if err != nil {
		return nil, start, fmt.Errorf("failed to load transactions: %w", err)
	}

	categories, err := categoryRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, start, fmt.Errorf("failed to load categories: %w", err)
	}

	totals := service.ByCategoryForType(txns, entity.TransactionTypeExpense)
	out := make([]CategoryAmount, 0, len(totals))
	for _, c := range categories {
		if total, ok := totals[c.ID]; ok {
			out = append(out, CategoryAmount{Category: c, Total: total})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Total.GreaterThan(out[j].Total)
	})
	return out, start, nil
}
