package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	portssvc "github.com/finkeeper/personal_finance_app/internal/core/ports/services"
	"github.com/finkeeper/personal_finance_app/internal/dto"
	"github.com/finkeeper/personal_finance_app/internal/middleware"
	"github.com/finkeeper/personal_finance_app/internal/utils/dates"
)

// AccountHandler handles account CRUD requests.
type AccountHandler struct {
	accountService portssvc.AccountSvcFacade
	balanceService portssvc.BalanceSvc
}

// NewAccountHandler creates a new instance of AccountHandler.
func NewAccountHandler(accountService portssvc.AccountSvcFacade, balanceService portssvc.BalanceSvc) *AccountHandler {
	return &AccountHandler{accountService: accountService, balanceService: balanceService}
}

func registerAccountRoutes(rg *gin.RouterGroup, accountService portssvc.AccountSvcFacade, balanceService portssvc.BalanceSvc) {
	h := NewAccountHandler(accountService, balanceService)

	accounts := rg.Group("/accounts")
	{
		accounts.POST("", h.CreateAccount)
		accounts.GET("", h.ListAccounts)
		accounts.GET("/:accountID", h.GetAccount)
		accounts.PATCH("/:accountID", h.UpdateAccount)
		accounts.DELETE("/:accountID", h.DeleteAccount)
	}
}

// CreateAccount godoc
// @Summary Create an account
// @Tags accounts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param account body dto.CreateAccountRequest true "Account to create"
// @Success 201 {object} dto.AccountResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /accounts [post]
func (h *AccountHandler) CreateAccount(c *gin.Context) {
	userID, ok := mustGetUserID(c)
	if !ok {
		return
	}
	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload: " + err.Error()})
		return
	}
	account, err := h.accountService.CreateAccount(c.Request.Context(), userID, req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToAccountResponse(account))
}

// ListAccounts godoc
// @Summary List the user's accounts
// @Tags accounts
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.ListAccountsResponse
// @Failure 401 {object} ErrorResponse
// @Router /accounts [get]
func (h *AccountHandler) ListAccounts(c *gin.Context) {
	userID, ok := mustGetUserID(c)
	if !ok {
		return
	}
	accounts, err := h.accountService.ListAccounts(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToListAccountsResponse(accounts))
}

// GetAccount godoc
// @Summary Get one account with its current balance
// @Tags accounts
// @Produce json
// @Security BearerAuth
// @Param accountID path string true "Account ID"
// @Success 200 {object} dto.AccountResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /accounts/{accountID} [get]
func (h *AccountHandler) GetAccount(c *gin.Context) {
	userID, ok := mustGetUserID(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	accountID := c.Param("accountID")

	account, err := h.accountService.GetAccountByID(ctx, userID, accountID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	resp := dto.ToAccountResponse(account)
	balance, _, err := h.balanceService.GetAccountBalance(ctx, userID, accountID, dates.Normalize(time.Now().UTC()))
	if err != nil {
		// The account itself loaded fine; log and return it without a balance.
		middleware.GetLoggerFromCtx(ctx).Error("Failed to compute account balance", "error", err, "account_id", accountID)
	} else {
		resp.Balance = &balance
	}
	c.JSON(http.StatusOK, resp)
}

// UpdateAccount godoc
// @Summary Update an account
// @Tags accounts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param accountID path string true "Account ID"
// @Param account body dto.UpdateAccountRequest true "Fields to update"
// @Success 200 {object} dto.AccountResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /accounts/{accountID} [patch]
func (h *AccountHandler) UpdateAccount(c *gin.Context) {
	userID, ok := mustGetUserID(c)
	if !ok {
		return
	}
	var req dto.UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload: " + err.Error()})
		return
	}
	account, err := h.accountService.UpdateAccount(c.Request.Context(), userID, c.Param("accountID"), req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// DeleteAccount godoc
// @Summary Delete an account
// @Description Soft-deletes the account. Its transactions are kept but the
// account no longer contributes to balances or reports.
// @Tags accounts
// @Security BearerAuth
// @Param accountID path string true "Account ID"
// @Success 204
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /accounts/{accountID} [delete]
func (h *AccountHandler) DeleteAccount(c *gin.Context) {
	userID, ok := mustGetUserID(c)
	if !ok {
		return
	}
	if err := h.accountService.DeleteAccount(c.Request.Context(), userID, c.Param("accountID")); err != nil {
		handleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
