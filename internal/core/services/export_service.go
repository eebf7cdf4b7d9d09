package services

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jwlsn/booking_revenue_app/internal/core/domain"
	portssvc "github.com/jwlsn/booking_revenue_app/internal/core/ports/services"
)

// exportService implements the ExportSvc interface.
type exportService struct {
	reportingCurrency string
}

// NewExportService creates a new summary export service.
func NewExportService(reportingCurrency string) portssvc.ExportSvc {
	return &exportService{reportingCurrency: reportingCurrency}
}

var _ portssvc.ExportSvc = (*exportService)(nil)

// WriteSummaryCSV renders summary rows as CSV with a header row. Monetary
// values render with exactly two decimal places; a null revenue renders as
// an empty cell. Identical rows always produce identical bytes.
func (s *exportService) WriteSummaryCSV(w io.Writer, rows []domain.MonthlySummaryRow) error {
	writer := csv.NewWriter(w)

	currency := strings.ToLower(s.reportingCurrency)
	header := []string{
		"owner_company", "month", "original_currency", "booking_count",
		currency + "_revenue", currency + "_costs",
	}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write summary header: %w", err)
	}

	for _, row := range rows {
		revenue := ""
		if row.ReportingRevenue.Valid {
			revenue = row.ReportingRevenue.Decimal.StringFixed(2)
		}

		record := []string{
			row.OwnerCompany,
			row.Month,
			row.OriginalCurrency,
			strconv.FormatInt(row.BookingCount, 10),
			revenue,
			row.ReportingFee.StringFixed(2),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write summary row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush summary CSV: %w", err)
	}
	return nil
}
