package transaction

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/self-focus/backend/internal/application/adapter"
	"github.com/self-focus/backend/internal/application/adapter/fake"
	"github.com/self-focus/backend/internal/domain/entity"
	domainerror "github.com/self-focus/backend/internal/domain/error"
)

type fixture struct {
	store    *fake.Store
	clock    *fake.Clock
	locker   *fake.Locker
	userID   uuid.UUID
	category *entity.Category
	create   *CreateTransactionUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := fake.NewStore()
	userID := uuid.New()
	category := entity.NewCategory(userID, "Food", entity.DefaultCategoryColor, entity.DefaultCategoryIcon, false)
	require.NoError(t, store.Categories().Create(context.Background(), category))

	clock := fake.NewClock(time.Date(2026, time.March, 15, 10, 30, 0, 0, time.UTC))
	locker := fake.NewLocker()
	return &fixture{
		store:    store,
		clock:    clock,
		locker:   locker,
		userID:   userID,
		category: category,
		create:   NewCreateTransactionUseCase(store.Transactions(), store.Categories(), locker, clock),
	}
}

func (f *fixture) record(t *testing.T, amount string, typ entity.TransactionType, date time.Time) *entity.Transaction {
	t.Helper()
	out, err := f.create.Execute(context.Background(), CreateTransactionInput{
		UserID:     f.userID,
		CategoryID: f.category.ID,
		Amount:     decimal.RequireFromString(amount),
		Type:       typ,
		Date:       &date,
	})
	require.NoError(t, err)
	return out.Transaction.Transaction
}

func txnCode(t *testing.T, err error) domainerror.TransactionErrorCode {
	t.Helper()
	var txnErr *domainerror.TransactionError
	require.True(t, errors.As(err, &txnErr), "expected TransactionError, got %v", err)
	return txnErr.Code
}

func TestCreateTransaction_Solvency(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	out, err := f.create.Execute(ctx, CreateTransactionInput{
		UserID:     f.userID,
		CategoryID: f.category.ID,
		Amount:     decimal.RequireFromString("100.00"),
		Type:       entity.TransactionTypeIncome,
	})
	require.NoError(t, err)
	assert.True(t, out.Balance.Equal(decimal.NewFromInt(100)))
	assert.Equal(t, time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC), out.Transaction.Transaction.Date)
	assert.Equal(t, "Food", out.Transaction.Category.Name)

	t.Run("expense equal to balance is accepted", func(t *testing.T) {
		out, err := f.create.Execute(ctx, CreateTransactionInput{
			UserID:     f.userID,
			CategoryID: f.category.ID,
			Amount:     decimal.RequireFromString("100.00"),
			Type:       entity.TransactionTypeExpense,
		})
		require.NoError(t, err)
		assert.True(t, out.Balance.IsZero())
	})

	t.Run("expense above balance is declined", func(t *testing.T) {
		_, err := f.create.Execute(ctx, CreateTransactionInput{
			UserID:     f.userID,
			CategoryID: f.category.ID,
			Amount:     decimal.RequireFromString("0.01"),
			Type:       entity.TransactionTypeExpense,
		})
		require.Error(t, err)
		assert.True(t, errors.Is(err, domainerror.ErrInsufficientFunds))

		var txnErr *domainerror.TransactionError
		require.True(t, errors.As(err, &txnErr))
		require.NotNil(t, txnErr.Balance)
		assert.True(t, txnErr.Balance.IsZero())
		assert.Contains(t, txnErr.Message, "$0.00")

		txns, err := f.store.Transactions().FindByUser(ctx, f.userID, nil, nil)
		require.NoError(t, err)
		assert.Len(t, txns, 2)
	})

	t.Run("income is never checked", func(t *testing.T) {
		_, err := f.create.Execute(ctx, CreateTransactionInput{
			UserID:     f.userID,
			CategoryID: f.category.ID,
			Amount:     decimal.RequireFromString("5000"),
			Type:       entity.TransactionTypeIncome,
		})
		assert.NoError(t, err)
	})

	assert.Contains(t, f.locker.Keys, adapter.LedgerLockKey(f.userID))
}

func TestCreateTransaction_Validation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	foreign := entity.NewCategory(uuid.New(), "Other", entity.DefaultCategoryColor, entity.DefaultCategoryIcon, false)
	require.NoError(t, f.store.Categories().Create(ctx, foreign))

	valid := func(mod func(*CreateTransactionInput)) CreateTransactionInput {
		in := CreateTransactionInput{
			UserID:     f.userID,
			CategoryID: f.category.ID,
			Amount:     decimal.RequireFromString("10"),
			Type:       entity.TransactionTypeIncome,
		}
		mod(&in)
		return in
	}

	tests := []struct {
		name     string
		input    CreateTransactionInput
		wantCode domainerror.TransactionErrorCode
	}{
		{"zero amount", valid(func(in *CreateTransactionInput) { in.Amount = decimal.Zero }), domainerror.ErrCodeInvalidTransactionAmount},
		{"negative amount", valid(func(in *CreateTransactionInput) { in.Amount = decimal.NewFromInt(-3) }), domainerror.ErrCodeInvalidTransactionAmount},
		{"three decimals", valid(func(in *CreateTransactionInput) { in.Amount = decimal.RequireFromString("1.234") }), domainerror.ErrCodeInvalidTransactionAmount},
		{"unknown type", valid(func(in *CreateTransactionInput) { in.Type = "Gift" }), domainerror.ErrCodeInvalidTransactionType},
		{"long description", valid(func(in *CreateTransactionInput) { in.Description = strings.Repeat("x", MaxDescriptionLength+1) }), domainerror.ErrCodeDescriptionTooLong},
		{"missing category", valid(func(in *CreateTransactionInput) { in.CategoryID = uuid.New() }), domainerror.ErrCodeTxnCategoryNotFound},
		{"foreign category", valid(func(in *CreateTransactionInput) { in.CategoryID = foreign.ID }), domainerror.ErrCodeTxnCategoryNotOwned},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.create.Execute(ctx, tt.input)
			assert.Equal(t, tt.wantCode, txnCode(t, err))
		})
	}
}

func TestUpdateTransaction(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	uc := NewUpdateTransactionUseCase(f.store.Transactions(), f.store.Categories(), f.locker, f.clock)
	today := f.clock.Now()

	f.record(t, "100", entity.TransactionTypeIncome, today)
	expense := f.record(t, "40", entity.TransactionTypeExpense, today)

	t.Run("expense may grow up to the balance without itself", func(t *testing.T) {
		amount := decimal.RequireFromString("100")
		out, err := uc.Execute(ctx, UpdateTransactionInput{ID: expense.ID, UserID: f.userID, Amount: &amount})
		require.NoError(t, err)
		assert.True(t, out.Transaction.Amount.Equal(amount))
	})

	t.Run("expense beyond the balance is declined", func(t *testing.T) {
		amount := decimal.RequireFromString("100.01")
		_, err := uc.Execute(ctx, UpdateTransactionInput{ID: expense.ID, UserID: f.userID, Amount: &amount})
		assert.True(t, errors.Is(err, domainerror.ErrInsufficientFunds))

		stored, err := f.store.Transactions().FindByID(ctx, expense.ID)
		require.NoError(t, err)
		assert.True(t, stored.Amount.Equal(decimal.NewFromInt(100)))
	})

	t.Run("description only", func(t *testing.T) {
		desc := "  groceries "
		out, err := uc.Execute(ctx, UpdateTransactionInput{ID: expense.ID, UserID: f.userID, Description: &desc})
		require.NoError(t, err)
		assert.Equal(t, "groceries", out.Transaction.Description)
	})

	t.Run("other user", func(t *testing.T) {
		desc := "x"
		_, err := uc.Execute(ctx, UpdateTransactionInput{ID: expense.ID, UserID: uuid.New(), Description: &desc})
		assert.Equal(t, domainerror.ErrCodeNotAuthorizedTransaction, txnCode(t, err))
	})

	t.Run("not found", func(t *testing.T) {
		_, err := uc.Execute(ctx, UpdateTransactionInput{ID: uuid.New(), UserID: f.userID})
		assert.Equal(t, domainerror.ErrCodeTransactionNotFound, txnCode(t, err))
	})
}

func TestDeleteTransaction(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	uc := NewDeleteTransactionUseCase(f.store.Transactions(), f.locker)
	txn := f.record(t, "10", entity.TransactionTypeIncome, f.clock.Now())

	err := uc.Execute(ctx, DeleteTransactionInput{ID: txn.ID, UserID: uuid.New()})
	assert.Equal(t, domainerror.ErrCodeNotAuthorizedTransaction, txnCode(t, err))

	require.NoError(t, uc.Execute(ctx, DeleteTransactionInput{ID: txn.ID, UserID: f.userID}))
	_, err = f.store.Transactions().FindByID(ctx, txn.ID)
	assert.ErrorIs(t, err, domainerror.ErrTransactionNotFound)
}

func TestListTransactions(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	uc := NewListTransactionsUseCase(f.store.Transactions())
	start := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 25; i++ {
		f.record(t, "10", entity.TransactionTypeIncome, start.AddDate(0, 0, i))
	}
	f.record(t, "1", entity.TransactionTypeExpense, start)

	out, err := uc.Execute(ctx, ListTransactionsInput{UserID: f.userID})
	require.NoError(t, err)
	require.Len(t, out.Transactions, DefaultPageSize)
	assert.Equal(t, int64(26), out.Pagination.Total)
	assert.True(t, out.Pagination.HasNext)
	assert.False(t, out.Pagination.HasPrev)
	assert.Equal(t, start.AddDate(0, 0, 24), out.Transactions[0].Transaction.Date)

	page2, err := uc.Execute(ctx, ListTransactionsInput{UserID: f.userID, Page: 2})
	require.NoError(t, err)
	assert.Len(t, page2.Transactions, 6)
	assert.False(t, page2.Pagination.HasNext)

	expense := entity.TransactionTypeExpense
	filtered, err := uc.Execute(ctx, ListTransactionsInput{UserID: f.userID, Type: &expense})
	require.NoError(t, err)
	require.Len(t, filtered.Transactions, 1)
	assert.Equal(t, entity.TransactionTypeExpense, filtered.Transactions[0].Transaction.Type)
}

func TestGetSummary(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	uc := NewGetSummaryUseCase(f.store.Transactions(), f.clock)

	f.record(t, "1000", entity.TransactionTypeIncome, time.Date(2026, time.February, 20, 0, 0, 0, 0, time.UTC))
	f.record(t, "200", entity.TransactionTypeIncome, time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC))
	f.record(t, "50.25", entity.TransactionTypeExpense, time.Date(2026, time.March, 14, 0, 0, 0, 0, time.UTC))

	out, err := uc.Execute(ctx, GetSummaryInput{UserID: f.userID})
	require.NoError(t, err)
	assert.Equal(t, "1149.75", out.Balance.StringFixed(2))
	assert.Equal(t, "200.00", out.MonthTotals.IncomeTotal.StringFixed(2))
	assert.Equal(t, "50.25", out.MonthTotals.ExpenseTotal.StringFixed(2))
	assert.Equal(t, "149.75", out.MonthTotals.NetTotal.StringFixed(2))
	assert.Equal(t, time.Date(2026, time.March, 31, 0, 0, 0, 0, time.UTC), out.MonthEnd)
}

func TestGetMonthlySummary(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	uc := NewGetMonthlySummaryUseCase(f.store.Transactions(), f.store.Categories(), f.clock)
	travel := entity.NewCategory(f.userID, "Travel", entity.DefaultCategoryColor, entity.DefaultCategoryIcon, false)
	require.NoError(t, f.store.Categories().Create(ctx, travel))

	f.record(t, "1000", entity.TransactionTypeIncome, time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC))
	f.record(t, "20", entity.TransactionTypeExpense, time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC))
	_, err := f.create.Execute(ctx, CreateTransactionInput{
		UserID: f.userID, CategoryID: travel.ID, Amount: decimal.NewFromInt(300), Type: entity.TransactionTypeExpense,
	})
	require.NoError(t, err)
	// Outside the 30 day breakdown window.
	f.record(t, "5", entity.TransactionTypeExpense, time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC))

	out, err := uc.Execute(ctx, GetMonthlySummaryInput{UserID: f.userID})
	require.NoError(t, err)
	assert.Equal(t, 2026, out.Year)
	require.Len(t, out.Months, 3)
	assert.Equal(t, time.January, out.Months[0].Month)
	assert.Equal(t, time.March, out.Months[2].Month)
	assert.Equal(t, "320.00", out.Months[2].Totals.ExpenseTotal.StringFixed(2))

	require.Len(t, out.ExpenseBreakdown, 2)
	assert.Equal(t, "Travel", out.ExpenseBreakdown[0].Category.Name)
	assert.Equal(t, "Food", out.ExpenseBreakdown[1].Category.Name)
	assert.Equal(t, "20.00", out.ExpenseBreakdown[1].Total.StringFixed(2))

	empty, err := uc.Execute(ctx, GetMonthlySummaryInput{UserID: f.userID, Year: 2020})
	require.NoError(t, err)
	assert.Empty(t, empty.Months)
}

func TestExportTransactions(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	uc := NewExportTransactionsUseCase(f.store.Transactions())

	f.record(t, "10", entity.TransactionTypeIncome, time.Date(2026, time.January, 2, 0, 0, 0, 0, time.UTC))
	f.record(t, "2.5", entity.TransactionTypeExpense, time.Date(2026, time.March, 3, 0, 0, 0, 0, time.UTC))

	var buf bytes.Buffer
	n, err := uc.Execute(ctx, ExportTransactionsInput{UserID: f.userID, Writer: &buf})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Date,Type,Amount,Category,Description", lines[0])
	assert.Equal(t, "2026-03-03,Expense,2.50,Food,", lines[1])
	assert.Equal(t, "2026-01-02,Income,10.00,Food,", lines[2])
}
