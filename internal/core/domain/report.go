package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DailyRevenue is the revenue of one company for one checkout day, in the
// original currency implied by the owning company's country.
type DailyRevenue struct {
	OwnerCompany string          `json:"ownerCompany"`
	Country      string          `json:"country"`
	Currency     string          `json:"currency"`
	Date         time.Time       `json:"date"` // checkout date, midnight UTC
	BookingCount int64           `json:"bookingCount"`
	BookingFee   decimal.Decimal `json:"bookingFee"`
	Revenue      decimal.Decimal `json:"revenue"` // fee x count, original currency

	// ConvertedRevenue is the day's revenue in the reporting currency.
	// Invalid when no rate row exists for the exact checkout date; the gap
	// propagates as a null through the monthly sum.
	ConvertedRevenue decimal.NullDecimal `json:"convertedRevenue"`
}

// MonthlySummaryRow is one output row of the revenue aggregation, keyed by
// (owner company, checkout month, original currency).
type MonthlySummaryRow struct {
	OwnerCompany     string `json:"ownerCompany"`
	Month            string `json:"month"` // YYYY-MM
	OriginalCurrency string `json:"originalCurrency"`
	BookingCount     int64  `json:"bookingCount"`

	// AverageBookingFee is informational only; nothing downstream consumes it.
	AverageBookingFee decimal.Decimal `json:"averageBookingFee"`

	// OriginalRevenue is the month's revenue before conversion.
	OriginalRevenue decimal.Decimal `json:"originalRevenue"`

	// ReportingRevenue is the month's revenue in the reporting currency,
	// rounded to 2dp. Null when every day of the month lacked a same-day rate.
	ReportingRevenue decimal.NullDecimal `json:"reportingRevenue"`

	// ReportingFee is the monthly minimum fee converted at the month-end
	// rate, rounded to 2dp. Rows without a month-end rate are dropped from
	// the summary entirely rather than emitted with a null fee.
	ReportingFee decimal.Decimal `json:"reportingFee"`
}
