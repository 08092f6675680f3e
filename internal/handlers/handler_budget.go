package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	portssvc "github.com/finkeeper/personal_finance_app/internal/core/ports/services"
	"github.com/finkeeper/personal_finance_app/internal/dto"
	"github.com/finkeeper/personal_finance_app/internal/utils/dates"
)

// BudgetHandler handles budget CRUD and status requests.
type BudgetHandler struct {
	budgetService portssvc.BudgetSvcFacade
}

// NewBudgetHandler creates a new instance of BudgetHandler.
func NewBudgetHandler(budgetService portssvc.BudgetSvcFacade) *BudgetHandler {
	return &BudgetHandler{budgetService: budgetService}
}

func registerBudgetRoutes(rg *gin.RouterGroup, budgetService portssvc.BudgetSvcFacade) {
	h := NewBudgetHandler(budgetService)

	budgets := rg.Group("/budgets")
	{
		budgets.POST("", h.CreateBudget)
		budgets.GET("", h.ListBudgets)
		budgets.GET("/:budgetID", h.GetBudget)
		budgets.GET("/:budgetID/status", h.GetBudgetStatus)
		budgets.PATCH("/:budgetID", h.UpdateBudget)
		budgets.DELETE("/:budgetID", h.DeleteBudget)
	}
}

// CreateBudget godoc
// @Summary Create a budget
// @Tags budgets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param budget body dto.CreateBudgetRequest true "Budget to create"
// @Success 201 {object} dto.BudgetResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /budgets [post]
func (h *BudgetHandler) CreateBudget(c *gin.Context) {
	userID, ok := mustGetUserID(c)
	if !ok {
		return
	}
	var req dto.CreateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload: " + err.Error()})
		return
	}
	budget, err := h.budgetService.CreateBudget(c.Request.Context(), userID, req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToBudgetResponse(budget))
}

// ListBudgets godoc
// @Summary List the user's budgets
// @Tags budgets
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.ListBudgetsResponse
// @Failure 401 {object} ErrorResponse
// @Router /budgets [get]
func (h *BudgetHandler) ListBudgets(c *gin.Context) {
	userID, ok := mustGetUserID(c)
	if !ok {
		return
	}
	budgets, err := h.budgetService.ListBudgets(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	resp := dto.ListBudgetsResponse{Budgets: make([]dto.BudgetResponse, len(budgets))}
	for i := range budgets {
		resp.Budgets[i] = dto.ToBudgetResponse(&budgets[i])
	}
	c.JSON(http.StatusOK, resp)
}

// GetBudget godoc
// @Summary Get one budget
// @Tags budgets
// @Produce json
// @Security BearerAuth
// @Param budgetID path string true "Budget ID"
// @Success 200 {object} dto.BudgetResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /budgets/{budgetID} [get]
func (h *BudgetHandler) GetBudget(c *gin.Context) {
	userID, ok := mustGetUserID(c)
	if !ok {
		return
	}
	budget, err := h.budgetService.GetBudgetByID(c.Request.Context(), userID, c.Param("budgetID"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToBudgetResponse(budget))
}

// GetBudgetStatus godoc
// @Summary Get a budget's spend status
// @Description Evaluates the budget window containing the given date (today
// @Description when omitted) against actual expense spend.
// @Tags budgets
// @Produce json
// @Security BearerAuth
// @Param budgetID path string true "Budget ID"
// @Param asOf query string false "Evaluation date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} dto.BudgetStatusResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /budgets/{budgetID}/status [get]
func (h *BudgetHandler) GetBudgetStatus(c *gin.Context) {
	userID, ok := mustGetUserID(c)
	if !ok {
		return
	}
	asOf, ok := parseDateParam(c, "asOf", dates.Normalize(time.Now().UTC()))
	if !ok {
		return
	}
	status, err := h.budgetService.GetBudgetStatus(c.Request.Context(), userID, c.Param("budgetID"), asOf)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToBudgetStatusResponse(status))
}

// UpdateBudget godoc
// @Summary Update a budget
// @Tags budgets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param budgetID path string true "Budget ID"
// @Param budget body dto.UpdateBudgetRequest true "Fields to update"
// @Success 200 {object} dto.BudgetResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /budgets/{budgetID} [patch]
func (h *BudgetHandler) UpdateBudget(c *gin.Context) {
	userID, ok := mustGetUserID(c)
	if !ok {
		return
	}
	var req dto.UpdateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload: " + err.Error()})
		return
	}
	budget, err := h.budgetService.UpdateBudget(c.Request.Context(), userID, c.Param("budgetID"), req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToBudgetResponse(budget))
}

// DeleteBudget godoc
// @Summary Delete a budget
// @Tags budgets
// @Security BearerAuth
// @Param budgetID path string true "Budget ID"
// @Success 204
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /budgets/{budgetID} [delete]
func (h *BudgetHandler) DeleteBudget(c *gin.Context) {
	userID, ok := mustGetUserID(c)
	if !ok {
		return
	}
	if err := h.budgetService.DeleteBudget(c.Request.Context(), userID, c.Param("budgetID")); err != nil {
		handleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
