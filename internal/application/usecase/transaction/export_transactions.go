// Package transaction contains transaction-related use cases.
package transaction

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/self-focus/backend/internal/application/adapter"
	"github.com/self-focus/backend/internal/domain/entity"
	"github.com/self-focus/backend/internal/domain/service"
)

// ExportTransactionsInput represents the input for the CSV export.
type ExportTransactionsInput struct {
	UserID uuid.UUID
	Writer io.Writer
}

// ExportTransactionsUseCase writes a user's ledger as CSV, newest first.
type ExportTransactionsUseCase struct {
	transactionRepo adapter.TransactionRepository
}

// NewExportTransactionsUseCase creates a new ExportTransactionsUseCase instance.
func NewExportTransactionsUseCase(transactionRepo adapter.TransactionRepository) *ExportTransactionsUseCase {
	return &ExportTransactionsUseCase{transactionRepo: transactionRepo}
}

// Execute streams the export into input.Writer and returns the row count.
func (uc *ExportTransactionsUseCase) Execute(ctx context.Context, input ExportTransactionsInput) (int, error) {
	rows, err := uc.transactionRepo.FindAllWithCategory(ctx, input.UserID)
	if err != nil {
		return 0, fmt.Errorf("failed to load transactions: %w", err)
	}

	flat := make([]entity.TransactionWithCategory, len(rows))
	for i, r := range rows {
		flat[i] = *r
	}

	if err := service.WriteTransactionsCSV(input.Writer, flat); err != nil {
		return 0, err
	}

	slog.Debug("Transactions exported", "user_id", input.UserID, "rows", len(flat))
	return len(flat), nil
}
