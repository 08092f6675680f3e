package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/finkeeper/personal_finance_app/internal/core/ports/services"
	"github.com/finkeeper/personal_finance_app/internal/dto"
)

// TagHandler handles tag CRUD requests.
type TagHandler struct {
	tagService portssvc.TagSvcFacade
}

// NewTagHandler creates a new instance of TagHandler.
func NewTagHandler(tagService portssvc.TagSvcFacade) *TagHandler {
	return &TagHandler{tagService: tagService}
}

func registerTagRoutes(rg *gin.RouterGroup, tagService portssvc.TagSvcFacade) {
	h := NewTagHandler(tagService)

	tags := rg.Group("/tags")
	{
		tags.POST("", h.CreateTag)
		tags.GET("", h.ListTags)
		tags.GET("/:tagID", h.GetTag)
		tags.PATCH("/:tagID", h.UpdateTag)
		tags.DELETE("/:tagID", h.DeleteTag)
	}
}

// CreateTag godoc
// @Summary Create a tag
// @Tags tags
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param tag body dto.CreateTagRequest true "Tag to create"
// @Success 201 {object} dto.TagResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /tags [post]
func (h *TagHandler) CreateTag(c *gin.Context) {
	userID, ok := mustGetUserID(c)
	if !ok {
		return
	}
	var req dto.CreateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload: " + err.Error()})
		return
	}
	tag, err := h.tagService.CreateTag(c.Request.Context(), userID, req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToTagResponse(tag))
}

// ListTags godoc
// @Summary List the user's tags
// @Tags tags
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.ListTagsResponse
// @Failure 401 {object} ErrorResponse
// @Router /tags [get]
func (h *TagHandler) ListTags(c *gin.Context) {
	userID, ok := mustGetUserID(c)
	if !ok {
		return
	}
	tags, err := h.tagService.ListTags(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	resp := dto.ListTagsResponse{Tags: make([]dto.TagResponse, len(tags))}
	for i := range tags {
		resp.Tags[i] = dto.ToTagResponse(&tags[i])
	}
	c.JSON(http.StatusOK, resp)
}

// GetTag godoc
// @Summary Get one tag
// @Tags tags
// @Produce json
// @Security BearerAuth
// @Param tagID path string true "Tag ID"
// @Success 200 {object} dto.TagResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /tags/{tagID} [get]
func (h *TagHandler) GetTag(c *gin.Context) {
	userID, ok := mustGetUserID(c)
	if !ok {
		return
	}
	tag, err := h.tagService.GetTagByID(c.Request.Context(), userID, c.Param("tagID"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToTagResponse(tag))
}

// UpdateTag godoc
// @Summary Rename a tag
// @Tags tags
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param tagID path string true "Tag ID"
// @Param tag body dto.UpdateTagRequest true "Fields to update"
// @Success 200 {object} dto.TagResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /tags/{tagID} [patch]
func (h *TagHandler) UpdateTag(c *gin.Context) {
	userID, ok := mustGetUserID(c)
	if !ok {
		return
	}
	var req dto.UpdateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload: " + err.Error()})
		return
	}
	tag, err := h.tagService.UpdateTag(c.Request.Context(), userID, c.Param("tagID"), req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToTagResponse(tag))
}

// DeleteTag godoc
// @Summary Delete a tag
// @Tags tags
// @Security BearerAuth
// @Param tagID path string true "Tag ID"
// @Success 204
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /tags/{tagID} [delete]
func (h *TagHandler) DeleteTag(c *gin.Context) {
	userID, ok := mustGetUserID(c)
	if !ok {
		return
	}
	if err := h.tagService.DeleteTag(c.Request.Context(), userID, c.Param("tagID")); err != nil {
		handleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
