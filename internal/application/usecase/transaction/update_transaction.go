// Package transaction contains transaction-related use cases.
package transaction

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/self-focus/backend/internal/application/adapter"
	"github.com/self-focus/backend/internal/domain/entity"
	"github.com/self-focus/backend/internal/domain/service"
	"github.com/self-focus/backend/internal/domain/valueobject"
)

// UpdateTransactionInput represents the input for transaction update.
// Nil fields keep their current value.
type UpdateTransactionInput struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	CategoryID  *uuid.UUID
	Amount      *decimal.Decimal
	Type        *entity.TransactionType
	Description *string
	Date        *time.Time
	ReceiptURL  *string
}

// UpdateTransactionUseCase edits a transaction. An edited expense is checked
// against the balance of the ledger without its previous version.
type UpdateTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
	categoryRepo    adapter.CategoryRepository
	locker          adapter.EntityLocker
	clock           adapter.Clock
}

// NewUpdateTransactionUseCase creates a new UpdateTransactionUseCase instance.
func NewUpdateTransactionUseCase(
	transactionRepo adapter.TransactionRepository,
	categoryRepo adapter.CategoryRepository,
	locker adapter.EntityLocker,
	clock adapter.Clock,
) *UpdateTransactionUseCase {
	return &UpdateTransactionUseCase{
		transactionRepo: transactionRepo,
		categoryRepo:    categoryRepo,
		locker:          locker,
		clock:           clock,
	}
}

// Execute performs the transaction update.
func (uc *UpdateTransactionUseCase) Execute(ctx context.Context, input UpdateTransactionInput) (*entity.TransactionWithCategory, error) {
	var output *entity.TransactionWithCategory
	err := uc.locker.WithLock(ctx, adapter.LedgerLockKey(input.UserID), func(ctx context.Context) error {
		txn, err := findOwned(ctx, uc.transactionRepo, input.ID, input.UserID)
		if err != nil {
			return err
		}

		if input.Amount != nil {
			txn.Amount = *input.Amount
		}
		if input.Type != nil {
			txn.Type = *input.Type
		}
		if input.Description != nil {
			txn.Description = strings.TrimSpace(*input.Description)
		}
		if input.Date != nil {
			txn.Date = valueobject.Date(*input.Date)
		}
		if input.ReceiptURL != nil {
			txn.ReceiptURL = *input.ReceiptURL
		}
		if input.CategoryID != nil {
			txn.CategoryID = *input.CategoryID
		}

		if err := validateFields(txn.Amount, txn.Type, txn.Description); err != nil {
			return err
		}

		category, err := resolveCategory(ctx, uc.categoryRepo, txn.CategoryID, input.UserID)
		if err != nil {
			return err
		}

		balance, err := currentBalance(ctx, uc.transactionRepo, input.UserID, &txn.ID)
		if err != nil {
			return err
		}
		if err := service.CheckSolvency(txn.Type, txn.Amount, balance); err != nil {
			return err
		}

		txn.UpdatedAt = uc.clock.Now().UTC()
		if err := uc.transactionRepo.Update(ctx, txn); err != nil {
			return fmt.Errorf("failed to update transaction: %w", err)
		}

		output = &entity.TransactionWithCategory{Transaction: txn, Category: category}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return output, nil
}
