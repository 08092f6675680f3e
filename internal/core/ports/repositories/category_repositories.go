package repositories

import (
	"context"
	"time"

	"github.com/finkeeper/personal_finance_app/internal/core/domain"
)

// CategoryRepository defines operations for category data.
type CategoryRepository interface {
	FindCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error)
	FindCategoriesByUserID(ctx context.Context, userID string) ([]domain.Category, error)
	FindCategoriesByUserIDAndType(ctx context.Context, userID string, categoryType domain.CategoryType) ([]domain.Category, error)
	SaveCategory(ctx context.Context, category domain.Category) error
	UpdateCategory(ctx context.Context, category domain.Category) error
	DeleteCategory(ctx context.Context, categoryID string, now time.Time) error
}
