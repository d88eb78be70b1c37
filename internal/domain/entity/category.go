// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// DefaultCategoryColor is the default color for categories.
const DefaultCategoryColor = "#6B7280"

// DefaultCategoryIcon is the default icon for categories.
const DefaultCategoryIcon = "📊"

// Category represents a transaction category owned by a user.
type Category struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Name      string
	Color     string
	Icon      string
	IsDefault bool
	CreatedAt time.Time
}

// NewCategory creates a new Category entity.
// Note: Defaulting logic for color and icon should be applied in the Application layer (UseCase)
// before calling this constructor.
func NewCategory(userID uuid.UUID, name, color, icon string, isDefault bool) *Category {
	return &Category{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      name,
		Color:     color,
		Icon:      icon,
		IsDefault: isDefault,
		CreatedAt: time.Now().UTC(),
	}
}

// CategorySeed describes one of the categories every new account starts with.
type CategorySeed struct {
	Name  string
	Color string
	Icon  string
}

// DefaultCategories is the set seeded for each newly registered user.
var DefaultCategories = []CategorySeed{
	{Name: "Food & Dining", Color: "#EF4444", Icon: "🍽️"},
	{Name: "Transportation", Color: "#3B82F6", Icon: "🚗"},
	{Name: "Shopping", Color: "#8B5CF6", Icon: "🛍️"},
	{Name: "Entertainment", Color: "#F59E0B", Icon: "🎬"},
	{Name: "Health & Fitness", Color: "#10B981", Icon: "💊"},
	{Name: "Education", Color: "#06B6D4", Icon: "📚"},
	{Name: "Bills & Utilities", Color: "#6B7280", Icon: "💡"},
	{Name: "Salary", Color: "#22C55E", Icon: "💰"},
	{Name: "Freelance", Color: "#84CC16", Icon: "💻"},
	{Name: "Investment", Color: "#14B8A6", Icon: "📈"},
}
