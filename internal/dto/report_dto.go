package dto

import (
	"github.com/jwlsn/booking_revenue_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// MonthlySummaryParams defines the query parameters for the monthly revenue summary.
type MonthlySummaryParams struct {
	Month string `form:"month" binding:"omitempty,yyyymm"`
}

// MonthlySummaryRowResponse is one row of the monthly revenue summary.
type MonthlySummaryRowResponse struct {
	OwnerCompany     string              `json:"ownerCompany"`
	Month            string              `json:"month"`
	OriginalCurrency string              `json:"originalCurrency"`
	BookingCount     int64               `json:"bookingCount"`
	Revenue          decimal.NullDecimal `json:"revenue"` // reporting currency, 2dp; null when no rate was available
	Costs            decimal.Decimal     `json:"costs"`   // reporting currency, 2dp
}

// MonthlySummaryResponse is the full monthly revenue summary.
type MonthlySummaryResponse struct {
	ReportingCurrency string                      `json:"reportingCurrency"`
	Rows              []MonthlySummaryRowResponse `json:"rows"`
}

// ToMonthlySummaryResponse converts domain summary rows to the response DTO.
func ToMonthlySummaryResponse(rows []domain.MonthlySummaryRow, reportingCurrency string) MonthlySummaryResponse {
	response := MonthlySummaryResponse{
		ReportingCurrency: reportingCurrency,
		Rows:              make([]MonthlySummaryRowResponse, len(rows)),
	}
	for i, row := range rows {
		response.Rows[i] = MonthlySummaryRowResponse{
			OwnerCompany:     row.OwnerCompany,
			Month:            row.Month,
			OriginalCurrency: row.OriginalCurrency,
			BookingCount:     row.BookingCount,
			Revenue:          row.ReportingRevenue,
			Costs:            row.ReportingFee,
		}
	}
	return response
}
