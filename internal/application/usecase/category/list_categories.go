// Package category contains category-related use cases.
package category

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/self-focus/backend/internal/application/adapter"
	"github.com/self-focus/backend/internal/domain/entity"
	"github.com/self-focus/backend/internal/domain/service"
)

// ListCategoriesInput represents the input for listing categories.
// When both dates are set each category carries its total for the period.
type ListCategoriesInput struct {
	UserID    uuid.UUID
	StartDate *time.Time
	EndDate   *time.Time
}

// CategoryOutput is a category with its optional period total.
type CategoryOutput struct {
	Category    *entity.Category
	PeriodTotal *decimal.Decimal
}

// ListCategoriesOutput represents the output of listing categories.
type ListCategoriesOutput struct {
	Categories []*CategoryOutput
}

// ListCategoriesUseCase handles listing categories logic.
type ListCategoriesUseCase struct {
	categoryRepo    adapter.CategoryRepository
	transactionRepo adapter.TransactionRepository
}

// NewListCategoriesUseCase creates a new ListCategoriesUseCase instance.
func NewListCategoriesUseCase(categoryRepo adapter.CategoryRepository, transactionRepo adapter.TransactionRepository) *ListCategoriesUseCase {
	return &ListCategoriesUseCase{
		categoryRepo:    categoryRepo,
		transactionRepo: transactionRepo,
	}
}

// Execute performs the category listing.
func (uc *ListCategoriesUseCase) Execute(ctx context.Context, input ListCategoriesInput) (*ListCategoriesOutput, error) {
	categories, err := uc.categoryRepo.FindByUser(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	var totals map[uuid.UUID]decimal.Decimal
	if input.StartDate != nil && input.EndDate != nil {
		txns, err := uc.transactionRepo.FindByUser(ctx, input.UserID, input.StartDate, input.EndDate)
		if err != nil {
			return nil, fmt.Errorf("failed to load transactions: %w", err)
		}
		totals = service.ByCategory(txns)
	}

	output := &ListCategoriesOutput{Categories: make([]*CategoryOutput, len(categories))}
	for i, cat := range categories {
		out := &CategoryOutput{Category: cat}
		if totals != nil {
			total := totals[cat.ID]
			out.PeriodTotal = &total
		}
		output.Categories[i] = out
	}
	return output, nil
}
