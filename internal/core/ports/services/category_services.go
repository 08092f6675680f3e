package services

import (
	"context"

	"github.com/finkeeper/personal_finance_app/internal/core/domain"
	"github.com/finkeeper/personal_finance_app/internal/dto"
)

// CategorySvcFacade defines the operations for managing categories.
type CategorySvcFacade interface {
	CreateCategory(ctx context.Context, userID string, req dto.CreateCategoryRequest) (*domain.Category, error)
	GetCategoryByID(ctx context.Context, userID string, categoryID string) (*domain.Category, error)
	// ListCategories returns the user's categories, optionally restricted to
	// one type.
	ListCategories(ctx context.Context, userID string, categoryType *domain.CategoryType) ([]domain.Category, error)
	UpdateCategory(ctx context.Context, userID string, categoryID string, req dto.UpdateCategoryRequest) (*domain.Category, error)
	DeleteCategory(ctx context.Context, userID string, categoryID string) error
}

// TagSvcFacade defines the operations for managing tags.
type TagSvcFacade interface {
	CreateTag(ctx context.Context, userID string, req dto.CreateTagRequest) (*domain.Tag, error)
	GetTagByID(ctx context.Context, userID string, tagID string) (*domain.Tag, error)
	ListTags(ctx context.Context, userID string) ([]domain.Tag, error)
	UpdateTag(ctx context.Context, userID string, tagID string, req dto.UpdateTagRequest) (*domain.Tag, error)
	DeleteTag(ctx context.Context, userID string, tagID string) error
}
