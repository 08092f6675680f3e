package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/finkeeper/personal_finance_app/internal/core/domain"
	portssvc "github.com/finkeeper/personal_finance_app/internal/core/ports/services"
	"github.com/finkeeper/personal_finance_app/internal/dto"
)

// CategoryHandler handles category CRUD requests.
type CategoryHandler struct {
	categoryService portssvc.CategorySvcFacade
}

// NewCategoryHandler creates a new instance of CategoryHandler.
func NewCategoryHandler(categoryService portssvc.CategorySvcFacade) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

func registerCategoryRoutes(rg *gin.RouterGroup, categoryService portssvc.CategorySvcFacade) {
	h := NewCategoryHandler(categoryService)

	categories := rg.Group("/categories")
	{
		categories.POST("", h.CreateCategory)
		categories.GET("", h.ListCategories)
		categories.GET("/:categoryID", h.GetCategory)
		categories.PATCH("/:categoryID", h.UpdateCategory)
		categories.DELETE("/:categoryID", h.DeleteCategory)
	}
}

// CreateCategory godoc
// @Summary Create a category
// @Tags categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param category body dto.CreateCategoryRequest true "Category to create"
// @Success 201 {object} dto.CategoryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /categories [post]
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	userID, ok := mustGetUserID(c)
	if !ok {
		return
	}
	var req dto.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload: " + err.Error()})
		return
	}
	category, err := h.categoryService.CreateCategory(c.Request.Context(), userID, req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToCategoryResponse(category))
}

// ListCategories godoc
// @Summary List the user's categories
// @Tags categories
// @Produce json
// @Security BearerAuth
// @Param type query string false "Restrict to one category type" Enums(INCOME, EXPENSE)
// @Success 200 {object} dto.ListCategoriesResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /categories [get]
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	userID, ok := mustGetUserID(c)
	if !ok {
		return
	}
	var typeFilter *domain.CategoryType
	if raw := c.Query("type"); raw != "" {
		t := domain.CategoryType(raw)
		if t != domain.IncomeCategory && t != domain.ExpenseCategory {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "type must be INCOME or EXPENSE"})
			return
		}
		typeFilter = &t
	}
	categories, err := h.categoryService.ListCategories(c.Request.Context(), userID, typeFilter)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	resp := dto.ListCategoriesResponse{Categories: make([]dto.CategoryResponse, len(categories))}
	for i := range categories {
		resp.Categories[i] = dto.ToCategoryResponse(&categories[i])
	}
	c.JSON(http.StatusOK, resp)
}

// GetCategory godoc
// @Summary Get one category
// @Tags categories
// @Produce json
// @Security BearerAuth
// @Param categoryID path string true "Category ID"
// @Success 200 {object} dto.CategoryResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /categories/{categoryID} [get]
func (h *CategoryHandler) GetCategory(c *gin.Context) {
	userID, ok := mustGetUserID(c)
	if !ok {
		return
	}
	category, err := h.categoryService.GetCategoryByID(c.Request.Context(), userID, c.Param("categoryID"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToCategoryResponse(category))
}

// UpdateCategory godoc
// @Summary Update a category
// @Description Renames or restyles a category. The category type is fixed at
// creation.
// @Tags categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param categoryID path string true "Category ID"
// @Param category body dto.UpdateCategoryRequest true "Fields to update"
// @Success 200 {object} dto.CategoryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /categories/{categoryID} [patch]
func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	userID, ok := mustGetUserID(c)
	if !ok {
		return
	}
	var req dto.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload: " + err.Error()})
		return
	}
	category, err := h.categoryService.UpdateCategory(c.Request.Context(), userID, c.Param("categoryID"), req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToCategoryResponse(category))
}

// DeleteCategory godoc
// @Summary Delete a category
// @Description Soft-deletes the category. Existing transactions keep their
// category reference.
// @Tags categories
// @Security BearerAuth
// @Param categoryID path string true "Category ID"
// @Success 204
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /categories/{categoryID} [delete]
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	userID, ok := mustGetUserID(c)
	if !ok {
		return
	}
	if err := h.categoryService.DeleteCategory(c.Request.Context(), userID, c.Param("categoryID")); err != nil {
		handleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
