package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/jwlsn/booking_revenue_app/internal/core/ports/services"
	"github.com/jwlsn/booking_revenue_app/internal/dto"
	"github.com/jwlsn/booking_revenue_app/internal/middleware"
)

// exchangeRateHandler handles HTTP requests related to exchange rates
type exchangeRateHandler struct {
	rateService      portssvc.RateSvcFacade
	reportingService portssvc.ReportingSvc
}

// newExchangeRateHandler creates a new exchangeRateHandler
func newExchangeRateHandler(rs portssvc.RateSvcFacade, reporting portssvc.ReportingSvc) *exchangeRateHandler {
	return &exchangeRateHandler{
		rateService:      rs,
		reportingService: reporting,
	}
}

// registerRateRoutes registers routes related to exchange rates
func registerRateRoutes(rg *gin.RouterGroup, rs portssvc.RateSvcFacade, reporting portssvc.ReportingSvc) {
	h := newExchangeRateHandler(rs, reporting)

	rates := rg.Group("/rates")
	{
		rates.GET("", h.listRates)
		rates.GET("/month-end", h.getMonthEndRates)
	}
}

// listRates returns exchange rates with optional filtering and pagination.
func (h *exchangeRateHandler) listRates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListRatesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Invalid rate list query", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	onOrBefore, err := params.ParseOnOrBefore()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid onOrBefore date. Use YYYY-MM-DD"})
		return
	}

	var from, to *string
	if params.From != "" {
		from = &params.From
	}
	if params.To != "" {
		to = &params.To
	}

	rates, total, err := h.rateService.ListRates(c.Request.Context(), from, to, onOrBefore, params.Page, params.PageSize)
	if err != nil {
		logger.Error("Failed to list exchange rates", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list exchange rates"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListExchangeRateResponse(rates, total))
}

// getMonthEndRates returns the rate snapshots dated on the last calendar day
// of the requested month.
func (h *exchangeRateHandler) getMonthEndRates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.MonthEndRatesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Invalid month-end rate query", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "month is required in YYYY-MM format"})
		return
	}

	rates, err := h.reportingService.MonthEndRates(c.Request.Context(), params.Month)
	if err != nil {
		logger.Error("Failed to retrieve month-end rates", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve month-end rates"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListExchangeRateResponse(rates, len(rates)))
}
