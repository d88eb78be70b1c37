// Package transaction contains transaction-related use cases.
package transaction

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/self-focus/backend/internal/application/adapter"
	"github.com/self-focus/backend/internal/domain/entity"
	"github.com/self-focus/backend/internal/domain/service"
	"github.com/self-focus/backend/internal/domain/valueobject"
)

// CreateTransactionInput represents the input for transaction creation.
type CreateTransactionInput struct {
	UserID      uuid.UUID
	CategoryID  uuid.UUID
	Amount      decimal.Decimal
	Type        entity.TransactionType
	Description string
	Date        *time.Time // Optional, defaults to today
	ReceiptURL  string
}

// CreateTransactionOutput represents the output of transaction creation.
type CreateTransactionOutput struct {
	Transaction *entity.TransactionWithCategory
	Balance     decimal.Decimal
}

// CreateTransactionUseCase records income and expenses. Expenses that would
// overdraw the ledger are declined.
type CreateTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
	categoryRepo    adapter.CategoryRepository
	locker          adapter.EntityLocker
	clock           adapter.Clock
}

// NewCreateTransactionUseCase creates a new CreateTransactionUseCase instance.
func NewCreateTransactionUseCase(
	transactionRepo adapter.TransactionRepository,
	categoryRepo adapter.CategoryRepository,
	locker adapter.EntityLocker,
	clock adapter.Clock,
) *CreateTransactionUseCase {
	return &CreateTransactionUseCase{
		transactionRepo: transactionRepo,
		categoryRepo:    categoryRepo,
		locker:          locker,
		clock:           clock,
	}
}

// Execute performs the transaction creation.
func (uc *CreateTransactionUseCase) Execute(ctx context.Context, input CreateTransactionInput) (*CreateTransactionOutput, error) {
	description := strings.TrimSpace(input.Description)
	if err := validateFields(input.Amount, input.Type, description); err != nil {
		return nil, err
	}

	category, err := resolveCategory(ctx, uc.categoryRepo, input.CategoryID, input.UserID)
	if err != nil {
		return nil, err
	}

	date := valueobject.Date(uc.clock.Now())
	if input.Date != nil {
		date = valueobject.Date(*input.Date)
	}

	var output *CreateTransactionOutput
	err = uc.locker.WithLock(ctx, adapter.LedgerLockKey(input.UserID), func(ctx context.Context) error {
		balance, err := currentBalance(ctx, uc.transactionRepo, input.UserID, nil)
		if err != nil {
			return err
		}

		if err := service.CheckSolvency(input.Type, input.Amount, balance); err != nil {
			slog.Info("Expense declined for insufficient funds",
				"user_id", input.UserID,
				"amount", input.Amount.StringFixed(2),
				"balance", balance.StringFixed(2),
			)
			return err
		}

		txn := entity.NewTransaction(input.UserID, category.ID, input.Amount, input.Type, description, date, input.ReceiptURL)
		if err := uc.transactionRepo.Create(ctx, txn); err != nil {
			return fmt.Errorf("failed to create transaction: %w", err)
		}

		newBalance := balance.Add(input.Amount)
		if input.Type == entity.TransactionTypeExpense {
			newBalance = balance.Sub(input.Amount)
		}

		output = &CreateTransactionOutput{
			Transaction: &entity.TransactionWithCategory{Transaction: txn, Category: category},
			Balance:     newBalance,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return output, nil
}
