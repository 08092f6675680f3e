package dto

import (
	"time"

	"github.com/finkeeper/personal_finance_app/internal/core/domain"
)

// CreateTagRequest defines the data needed to create a tag.
type CreateTagRequest struct {
	Name string `json:"name" binding:"required"`
}

// UpdateTagRequest defines the data allowed for updating a tag.
type UpdateTagRequest struct {
	Name *string `json:"name" binding:"required"`
}

// TagResponse defines the data returned for a tag.
type TagResponse struct {
	TagID         string    `json:"tagID"`
	Name          string    `json:"name"`
	CreatedAt     time.Time `json:"createdAt"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}

// ListTagsResponse wraps a list of tags.
type ListTagsResponse struct {
	Tags []TagResponse `json:"tags"`
}

// ToTagResponse converts a domain.Tag to TagResponse DTO
func ToTagResponse(tag *domain.Tag) TagResponse {
	return TagResponse{
		TagID:         tag.TagID,
		Name:          tag.Name,
		CreatedAt:     tag.CreatedAt,
		LastUpdatedAt: tag.LastUpdatedAt,
	}
}
