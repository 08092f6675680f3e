package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	portssvc "github.com/finkeeper/personal_finance_app/internal/core/ports/services"
	"github.com/finkeeper/personal_finance_app/internal/dto"
	"github.com/finkeeper/personal_finance_app/internal/utils/dates"
)

const dateLayout = "2006-01-02"

// ReportingHandler handles balance and aggregation report requests.
type ReportingHandler struct {
	balanceService   portssvc.BalanceSvc
	reportingService portssvc.ReportingSvc
	userService      portssvc.UserSvcFacade
}

// NewReportingHandler creates a new instance of ReportingHandler.
func NewReportingHandler(balanceService portssvc.BalanceSvc, reportingService portssvc.ReportingSvc, userService portssvc.UserSvcFacade) *ReportingHandler {
	return &ReportingHandler{
		balanceService:   balanceService,
		reportingService: reportingService,
		userService:      userService,
	}
}

func registerReportingRoutes(rg *gin.RouterGroup, balanceService portssvc.BalanceSvc, reportingService portssvc.ReportingSvc, userService portssvc.UserSvcFacade) {
	h := NewReportingHandler(balanceService, reportingService, userService)

	reports := rg.Group("/reports")
	{
		reports.GET("/balance", h.GetBalance)
		reports.GET("/accounts-balance", h.GetAccountsBalance)
		reports.GET("/balance-history", h.GetBalanceHistory)
		reports.GET("/cashflow", h.GetCashflow)
		reports.GET("/period-comparison", h.GetPeriodComparison)
		reports.GET("/category-summary", h.GetCategorySummary)
	}
}

// resolveCurrency returns the explicit currency query parameter, falling back
// to the user's base currency.
func (h *ReportingHandler) resolveCurrency(c *gin.Context, userID string) (string, bool) {
	if currency := c.Query("currency"); currency != "" {
		if len(currency) != 3 {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "currency must be a 3-letter code"})
			return "", false
		}
		return currency, true
	}
	user, err := h.userService.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, err)
		return "", false
	}
	return user.BaseCurrency, true
}

// parseDateParam parses an optional YYYY-MM-DD query parameter, returning the
// fallback when absent.
func parseDateParam(c *gin.Context, name string, fallback time.Time) (time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return fallback, true
	}
	parsed, err := time.Parse(dateLayout, raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: name + " must be a date in YYYY-MM-DD form"})
		return time.Time{}, false
	}
	return dates.Normalize(parsed), true
}

// requireDateParam parses a mandatory YYYY-MM-DD query parameter.
func requireDateParam(c *gin.Context, name string) (time.Time, bool) {
	if c.Query(name) == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: name + " is required"})
		return time.Time{}, false
	}
	return parseDateParam(c, name, time.Time{})
}

// GetBalance godoc
// @Summary Total balance across all accounts
// @Description Returns the user's total balance as of a date (default today),
// converted to the requested currency (default the user's base currency).
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param asOf query string false "Valuation date (YYYY-MM-DD, default today)"
// @Param currency query string false "Target currency (default user's base currency)"
// @Success 200 {object} dto.BalanceResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /reports/balance [get]
func (h *ReportingHandler) GetBalance(c *gin.Context) {
	userID, ok := mustGetUserID(c)
	if !ok {
		return
	}
	asOf, ok := parseDateParam(c, "asOf", dates.Normalize(time.Now().UTC()))
	if !ok {
		return
	}
	currency, ok := h.resolveCurrency(c, userID)
	if !ok {
		return
	}
	balance, err := h.balanceService.GetTotalBalance(c.Request.Context(), userID, asOf, currency)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.BalanceResponse{
		AsOf:     asOf.Format(dateLayout),
		Currency: currency,
		Balance:  balance,
	})
}

// GetAccountsBalance godoc
// @Summary Per-account balances
// @Description Returns each active account's balance as of a date, both in
// the account's native currency and converted to the requested currency.
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param asOf query string false "Valuation date (YYYY-MM-DD, default today)"
// @Param currency query string false "Target currency (default user's base currency)"
// @Success 200 {object} dto.AccountsBalanceResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /reports/accounts-balance [get]
func (h *ReportingHandler) GetAccountsBalance(c *gin.Context) {
	userID, ok := mustGetUserID(c)
	if !ok {
		return
	}
	asOf, ok := parseDateParam(c, "asOf", dates.Normalize(time.Now().UTC()))
	if !ok {
		return
	}
	currency, ok := h.resolveCurrency(c, userID)
	if !ok {
		return
	}
	balances, total, err := h.balanceService.GetAccountsBalance(c.Request.Context(), userID, asOf, currency)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountsBalanceResponse(balances, total, asOf.Format(dateLayout), currency))
}

// GetBalanceHistory godoc
// @Summary Balance history series
// @Description Returns the cumulative balance over [from, to] bucketed at the
// requested granularity. Each point is the balance at the end of its bucket.
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param from query string true "Inclusive start date (YYYY-MM-DD)"
// @Param to query string true "Inclusive end date (YYYY-MM-DD)"
// @Param granularity query string false "day, week or month (default month)"
// @Param currency query string false "Target currency (default user's base currency)"
// @Success 200 {object} dto.BalanceHistoryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /reports/balance-history [get]
func (h *ReportingHandler) GetBalanceHistory(c *gin.Context) {
	userID, ok := mustGetUserID(c)
	if !ok {
		return
	}
	from, ok := requireDateParam(c, "from")
	if !ok {
		return
	}
	to, ok := requireDateParam(c, "to")
	if !ok {
		return
	}
	granularity := dates.Monthly
	if raw := c.Query("granularity"); raw != "" {
		parsed, err := dates.ParseGranularity(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		granularity = parsed
	}
	currency, ok := h.resolveCurrency(c, userID)
	if !ok {
		return
	}
	points, err := h.balanceService.GetBalanceHistory(c.Request.Context(), userID, from, to, granularity, currency)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToBalanceHistoryResponse(points, from.Format(dateLayout), to.Format(dateLayout), string(granularity), currency))
}

// GetCashflow godoc
// @Summary Cashflow report
// @Description Returns income, expense and net per bucket over [from, to].
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param from query string true "Inclusive start date (YYYY-MM-DD)"
// @Param to query string true "Inclusive end date (YYYY-MM-DD)"
// @Param granularity query string false "day, week or month (default month)"
// @Success 200 {object} dto.CashflowResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /reports/cashflow [get]
func (h *ReportingHandler) GetCashflow(c *gin.Context) {
	userID, ok := mustGetUserID(c)
	if !ok {
		return
	}
	from, ok := requireDateParam(c, "from")
	if !ok {
		return
	}
	to, ok := requireDateParam(c, "to")
	if !ok {
		return
	}
	granularity := dates.Monthly
	if raw := c.Query("granularity"); raw != "" {
		parsed, err := dates.ParseGranularity(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		granularity = parsed
	}
	points, err := h.reportingService.GetCashflow(c.Request.Context(), userID, from, to, granularity)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToCashflowResponse(points, from.Format(dateLayout), to.Format(dateLayout), string(granularity)))
}

// GetPeriodComparison godoc
// @Summary Compare a period with the preceding one
// @Description Returns income/expense/net for [from, to] and for the
// immediately preceding range of the same length.
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param from query string true "Inclusive start date (YYYY-MM-DD)"
// @Param to query string true "Inclusive end date (YYYY-MM-DD)"
// @Success 200 {object} dto.PeriodComparisonResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /reports/period-comparison [get]
func (h *ReportingHandler) GetPeriodComparison(c *gin.Context) {
	userID, ok := mustGetUserID(c)
	if !ok {
		return
	}
	from, ok := requireDateParam(c, "from")
	if !ok {
		return
	}
	to, ok := requireDateParam(c, "to")
	if !ok {
		return
	}
	cmp, err := h.reportingService.GetPeriodComparison(c.Request.Context(), userID, from, to)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToPeriodComparisonResponse(cmp))
}

// GetCategorySummary godoc
// @Summary Per-category totals
// @Description Returns net amount and transaction count per category over
// [from, to], optionally restricted to one account.
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param from query string true "Inclusive start date (YYYY-MM-DD)"
// @Param to query string true "Inclusive end date (YYYY-MM-DD)"
// @Param accountID query string false "Restrict to one account"
// @Success 200 {object} dto.CategorySummaryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /reports/category-summary [get]
func (h *ReportingHandler) GetCategorySummary(c *gin.Context) {
	userID, ok := mustGetUserID(c)
	if !ok {
		return
	}
	from, ok := requireDateParam(c, "from")
	if !ok {
		return
	}
	to, ok := requireDateParam(c, "to")
	if !ok {
		return
	}
	var accountID *string
	if raw := c.Query("accountID"); raw != "" {
		accountID = &raw
	}
	rows, err := h.reportingService.GetCategorySummary(c.Request.Context(), userID, from, to, accountID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToCategorySummaryResponse(rows, from.Format(dateLayout), to.Format(dateLayout)))
}
