package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/finkeeper/personal_finance_app/internal/core/domain"
	portssvc "github.com/finkeeper/personal_finance_app/internal/core/ports/services"
	"github.com/finkeeper/personal_finance_app/internal/dto"
)

// InstallmentHandler handles payment-plan requests nested under a transaction.
type InstallmentHandler struct {
	installmentService portssvc.InstallmentSvcFacade
}

// NewInstallmentHandler creates a new instance of InstallmentHandler.
func NewInstallmentHandler(installmentService portssvc.InstallmentSvcFacade) *InstallmentHandler {
	return &InstallmentHandler{installmentService: installmentService}
}

func registerInstallmentRoutes(rg *gin.RouterGroup, installmentService portssvc.InstallmentSvcFacade) {
	h := NewInstallmentHandler(installmentService)

	installments := rg.Group("/transactions/:transactionID/installments")
	{
		installments.PUT("", h.SetInstallments)
		installments.GET("", h.ListInstallments)
		installments.DELETE("", h.DeleteInstallments)
	}
}

// SetInstallments godoc
// @Summary Replace a transaction's payment plan
// @Tags installments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param transactionID path string true "Transaction ID"
// @Param plan body dto.SetInstallmentsRequest true "Ordered installment list"
// @Success 200 {object} dto.ListInstallmentsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /transactions/{transactionID}/installments [put]
func (h *InstallmentHandler) SetInstallments(c *gin.Context) {
	userID, ok := mustGetUserID(c)
	if !ok {
		return
	}
	var req dto.SetInstallmentsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload: " + err.Error()})
		return
	}
	transactionID := c.Param("transactionID")
	installments, err := h.installmentService.SetInstallments(c.Request.Context(), userID, transactionID, req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toListInstallmentsResponse(transactionID, installments))
}

// ListInstallments godoc
// @Summary List a transaction's payment plan
// @Tags installments
// @Produce json
// @Security BearerAuth
// @Param transactionID path string true "Transaction ID"
// @Success 200 {object} dto.ListInstallmentsResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /transactions/{transactionID}/installments [get]
func (h *InstallmentHandler) ListInstallments(c *gin.Context) {
	userID, ok := mustGetUserID(c)
	if !ok {
		return
	}
	transactionID := c.Param("transactionID")
	installments, err := h.installmentService.ListInstallments(c.Request.Context(), userID, transactionID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toListInstallmentsResponse(transactionID, installments))
}

// DeleteInstallments godoc
// @Summary Delete a transaction's payment plan
// @Tags installments
// @Security BearerAuth
// @Param transactionID path string true "Transaction ID"
// @Success 204
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /transactions/{transactionID}/installments [delete]
func (h *InstallmentHandler) DeleteInstallments(c *gin.Context) {
	userID, ok := mustGetUserID(c)
	if !ok {
		return
	}
	if err := h.installmentService.DeleteInstallments(c.Request.Context(), userID, c.Param("transactionID")); err != nil {
		handleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func toListInstallmentsResponse(transactionID string, installments []domain.Installment) dto.ListInstallmentsResponse {
	resp := dto.ListInstallmentsResponse{
		TransactionID: transactionID,
		Installments:  make([]dto.InstallmentResponse, len(installments)),
	}
	for i := range installments {
		resp.Installments[i] = dto.ToInstallmentResponse(&installments[i])
	}
	return resp
}
