package services

import (
	"context"

	"github.com/jwlsn/booking_revenue_app/internal/core/domain"
)

// ReportingSvc defines operations for building the monthly revenue summary
type ReportingSvc interface {
	// MonthlyRevenueSummary builds the full revenue/cost summary, one row per
	// (owner company, checkout month, original currency). month filters the
	// result to a single YYYY-MM period when non-empty.
	MonthlyRevenueSummary(ctx context.Context, month string) ([]domain.MonthlySummaryRow, error)

	// MonthEndRates returns the rate snapshots dated on the last calendar day
	// of the given YYYY-MM month, as used for minimum fee conversion.
	MonthEndRates(ctx context.Context, month string) ([]domain.ExchangeRate, error)
}
