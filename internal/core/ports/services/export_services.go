package services

import (
	"io"

	"github.com/jwlsn/booking_revenue_app/internal/core/domain"
)

// ExportSvc defines the flat-file export of the monthly summary
type ExportSvc interface {
	// WriteSummaryCSV renders summary rows as CSV with a header row.
	// Output is deterministic: identical rows produce identical bytes.
	WriteSummaryCSV(w io.Writer, rows []domain.MonthlySummaryRow) error
}
