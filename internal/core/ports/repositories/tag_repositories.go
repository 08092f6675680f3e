package repositories

import (
	"context"
	"time"

	"github.com/finkeeper/personal_finance_app/internal/core/domain"
)

// TagRepository defines operations for tag data.
type TagRepository interface {
	FindTagByID(ctx context.Context, tagID string) (*domain.Tag, error)
	FindTagsByIDs(ctx context.Context, tagIDs []string) (map[string]domain.Tag, error)
	FindTagsByUserID(ctx context.Context, userID string) ([]domain.Tag, error)
	SaveTag(ctx context.Context, tag domain.Tag) error
	UpdateTag(ctx context.Context, tag domain.Tag) error
	DeleteTag(ctx context.Context, tagID string, now time.Time) error
}
