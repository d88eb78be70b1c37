package dto

import (
	"time"

	"github.com/self-focus/backend/internal/application/usecase/category"
	"github.com/self-focus/backend/internal/domain/entity"
)

// CreateCategoryRequest represents the request body for category creation.
type CreateCategoryRequest struct {
	Name  string `json:"name" binding:"required,min=1,max=50"`
	Color string `json:"color,omitempty"`
	Icon  string `json:"icon,omitempty"`
}

// CategoryResponse represents a single category in API responses.
// PeriodTotal is only set when the list was requested with a date range.
type CategoryResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Color       string    `json:"color"`
	Icon        string    `json:"icon"`
	IsDefault   bool      `json:"is_default"`
	PeriodTotal *string   `json:"period_total,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// CategoryListResponse represents the response for listing categories.
type CategoryListResponse struct {
	Categories []CategoryResponse `json:"categories"`
}

// ToCategoryResponse converts a domain Category entity to a CategoryResponse DTO.
func ToCategoryResponse(cat *entity.Category) CategoryResponse {
	return CategoryResponse{
		ID:        cat.ID.String(),
		Name:      cat.Name,
		Color:     cat.Color,
		Icon:      cat.Icon,
		IsDefault: cat.IsDefault,
		CreatedAt: cat.CreatedAt,
	}
}

// ToCategoryListResponse converts a list of CategoryOutput to CategoryListResponse.
func ToCategoryListResponse(outputs []*category.CategoryOutput) CategoryListResponse {
	categories := make([]CategoryResponse, len(outputs))
	for i, output := range outputs {
		categories[i] = ToCategoryResponse(output.Category)
		if output.PeriodTotal != nil {
			total := output.PeriodTotal.StringFixed(2)
			categories[i].PeriodTotal = &total
		}
	}
	return CategoryListResponse{
		Categories: categories,
	}
}
