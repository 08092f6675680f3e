package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/finkeeper/personal_finance_app/internal/core/ports/services"
	"github.com/finkeeper/personal_finance_app/internal/dto"
)

// ExchangeRateHandler handles exchange rate requests.
type ExchangeRateHandler struct {
	exchangeRateService portssvc.ExchangeRateSvcFacade
}

// NewExchangeRateHandler creates a new instance of ExchangeRateHandler.
func NewExchangeRateHandler(exchangeRateService portssvc.ExchangeRateSvcFacade) *ExchangeRateHandler {
	return &ExchangeRateHandler{exchangeRateService: exchangeRateService}
}

func registerExchangeRateRoutes(rg *gin.RouterGroup, exchangeRateService portssvc.ExchangeRateSvcFacade) {
	h := NewExchangeRateHandler(exchangeRateService)

	rates := rg.Group("/exchange-rates")
	{
		rates.POST("", h.CreateExchangeRate)
		rates.GET("", h.ListExchangeRates)
	}
}

// CreateExchangeRate godoc
// @Summary Record an exchange rate
// @Description Records the rate for a currency pair effective from a date.
// Conversions use the latest rate effective on or before the conversion date.
// @Tags exchange-rates
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param rate body dto.CreateExchangeRateRequest true "Rate to record"
// @Success 201 {object} dto.ExchangeRateResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /exchange-rates [post]
func (h *ExchangeRateHandler) CreateExchangeRate(c *gin.Context) {
	if _, ok := mustGetUserID(c); !ok {
		return
	}
	var req dto.CreateExchangeRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload: " + err.Error()})
		return
	}
	rate, err := h.exchangeRateService.CreateExchangeRate(c.Request.Context(), req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToExchangeRateResponse(rate))
}

// ListExchangeRates godoc
// @Summary List recorded exchange rates
// @Tags exchange-rates
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.ListExchangeRatesResponse
// @Failure 401 {object} ErrorResponse
// @Router /exchange-rates [get]
func (h *ExchangeRateHandler) ListExchangeRates(c *gin.Context) {
	if _, ok := mustGetUserID(c); !ok {
		return
	}
	rates, err := h.exchangeRateService.ListExchangeRates(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}
	resp := dto.ListExchangeRatesResponse{Rates: make([]dto.ExchangeRateResponse, len(rates))}
	for i := range rates {
		resp.Rates[i] = dto.ToExchangeRateResponse(&rates[i])
	}
	c.JSON(http.StatusOK, resp)
}
