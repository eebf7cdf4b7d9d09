package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jwlsn/booking_revenue_app/internal/apperrors"
	portssvc "github.com/jwlsn/booking_revenue_app/internal/core/ports/services"
	"github.com/jwlsn/booking_revenue_app/internal/dto"
	"github.com/jwlsn/booking_revenue_app/internal/middleware"
)

// reportHandler handles HTTP requests for the monthly revenue summary
type reportHandler struct {
	reportingService  portssvc.ReportingSvc
	exportService     portssvc.ExportSvc
	reportingCurrency string
}

// newReportHandler creates a new reportHandler
func newReportHandler(rs portssvc.ReportingSvc, es portssvc.ExportSvc, reportingCurrency string) *reportHandler {
	return &reportHandler{
		reportingService:  rs,
		exportService:     es,
		reportingCurrency: reportingCurrency,
	}
}

// registerReportRoutes registers routes related to revenue reports
func registerReportRoutes(rg *gin.RouterGroup, rs portssvc.ReportingSvc, es portssvc.ExportSvc, reportingCurrency string) {
	h := newReportHandler(rs, es, reportingCurrency)

	reports := rg.Group("/reports")
	{
		reports.GET("/monthly-revenue", h.getMonthlySummary)
		reports.GET("/monthly-revenue/export", h.exportMonthlySummary)
	}
}

// getMonthlySummary returns the monthly revenue summary as JSON, optionally
// filtered to a single YYYY-MM month.
func (h *reportHandler) getMonthlySummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.MonthlySummaryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Invalid monthly summary query", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid month filter. Use YYYY-MM"})
		return
	}

	rows, err := h.reportingService.MonthlyRevenueSummary(c.Request.Context(), params.Month)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid month filter. Use YYYY-MM"})
			return
		}
		logger.Error("Failed to generate monthly revenue summary", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate monthly revenue summary"})
		return
	}

	logger.Info("Monthly revenue summary generated", slog.Int("row_count", len(rows)))
	c.JSON(http.StatusOK, dto.ToMonthlySummaryResponse(rows, h.reportingCurrency))
}

// exportMonthlySummary streams the monthly revenue summary as a CSV download.
func (h *reportHandler) exportMonthlySummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.MonthlySummaryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Invalid monthly summary query", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid month filter. Use YYYY-MM"})
		return
	}

	rows, err := h.reportingService.MonthlyRevenueSummary(c.Request.Context(), params.Month)
	if err != nil {
		logger.Error("Failed to generate monthly revenue summary for export", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate monthly revenue summary"})
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="monthly_revenue_summary.csv"`)
	c.Status(http.StatusOK)

	if err := h.exportService.WriteSummaryCSV(c.Writer, rows); err != nil {
		// Headers are already out; all we can do is log.
		logger.Error("Failed to stream summary CSV", slog.String("error", err.Error()))
		return
	}

	logger.Info("Monthly revenue summary exported", slog.Int("row_count", len(rows)))
}
