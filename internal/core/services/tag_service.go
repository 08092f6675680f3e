package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/finkeeper/personal_finance_app/internal/apperrors"
	"github.com/finkeeper/personal_finance_app/internal/core/domain"
	portsrepo "github.com/finkeeper/personal_finance_app/internal/core/ports/repositories"
	portssvc "github.com/finkeeper/personal_finance_app/internal/core/ports/services"
	"github.com/finkeeper/personal_finance_app/internal/dto"
)

// tagService implements the TagSvcFacade interface
type tagService struct {
	BaseService
	tagRepo portsrepo.TagRepository
	now     func() time.Time
}

// NewTagService creates a new tag service.
func NewTagService(tagRepo portsrepo.TagRepository) portssvc.TagSvcFacade {
	return &tagService{
		tagRepo: tagRepo,
		now:     time.Now,
	}
}

var _ portssvc.TagSvcFacade = (*tagService)(nil)

func (s *tagService) CreateTag(ctx context.Context, userID string, req dto.CreateTagRequest) (*domain.Tag, error) {
	now := s.now().UTC()
	tag := domain.Tag{
		TagID:  uuid.NewString(),
		UserID: userID,
		Name:   req.Name,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	if err := s.tagRepo.SaveTag(ctx, tag); err != nil {
		s.LogError(ctx, err, "Failed to save tag", slog.String("user_id", userID))
		return nil, err
	}
	return &tag, nil
}

func (s *tagService) GetTagByID(ctx context.Context, userID string, tagID string) (*domain.Tag, error) {
	tag, err := s.tagRepo.FindTagByID(ctx, tagID)
	if err != nil {
		return nil, err
	}
	if tag.UserID != userID {
		return nil, fmt.Errorf("%w: tag %s does not belong to user", apperrors.ErrForbidden, tagID)
	}
	if tag.IsDeleted {
		return nil, fmt.Errorf("%w: tag %s", apperrors.ErrNotFound, tagID)
	}
	return tag, nil
}

func (s *tagService) ListTags(ctx context.Context, userID string) ([]domain.Tag, error) {
	tags, err := s.tagRepo.FindTagsByUserID(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list tags", slog.String("user_id", userID))
		return nil, err
	}
	return tags, nil
}

func (s *tagService) UpdateTag(ctx context.Context, userID string, tagID string, req dto.UpdateTagRequest) (*domain.Tag, error) {
	tag, err := s.GetTagByID(ctx, userID, tagID)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		tag.Name = *req.Name
	}
	tag.LastUpdatedAt = s.now().UTC()

	if err := s.tagRepo.UpdateTag(ctx, *tag); err != nil {
		s.LogError(ctx, err, "Failed to update tag", slog.String("tag_id", tagID))
		return nil, err
	}
	return tag, nil
}

func (s *tagService) DeleteTag(ctx context.Context, userID string, tagID string) error {
	if _, err := s.GetTagByID(ctx, userID, tagID); err != nil {
		return err
	}
	if err := s.tagRepo.DeleteTag(ctx, tagID, s.now().UTC()); err != nil {
		s.LogError(ctx, err, "Failed to delete tag", slog.String("tag_id", tagID))
		return err
	}
	return nil
}
