package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/jwlsn/booking_revenue_app/internal/apperrors"
	"github.com/jwlsn/booking_revenue_app/internal/core/domain"
	portsrepo "github.com/jwlsn/booking_revenue_app/internal/core/ports/repositories"
	portssvc "github.com/jwlsn/booking_revenue_app/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

const monthLayout = "2006-01"

// reportingService implements the ReportingSvc interface.
//
// The summary is a pure function of the booking and rate snapshots: nothing
// is materialized, and re-running it on unchanged inputs yields identical
// rows in identical order.
type reportingService struct {
	BaseService
	bookingRepo       portsrepo.BookingReader
	rateRepo          portsrepo.ExchangeRateReader
	reportingCurrency string
}

// NewReportingService creates a new reporting service.
func NewReportingService(bookingRepo portsrepo.BookingReader, rateRepo portsrepo.ExchangeRateReader, reportingCurrency string) portssvc.ReportingSvc {
	return &reportingService{
		bookingRepo:       bookingRepo,
		rateRepo:          rateRepo,
		reportingCurrency: reportingCurrency,
	}
}

var _ portssvc.ReportingSvc = (*reportingService)(nil)

// MonthlyRevenueSummary builds the monthly revenue/cost summary.
func (s *reportingService) MonthlyRevenueSummary(ctx context.Context, month string) ([]domain.MonthlySummaryRow, error) {
	if month != "" {
		if _, err := time.Parse(monthLayout, month); err != nil {
			return nil, fmt.Errorf("%w: month must be in YYYY-MM format", apperrors.ErrValidation)
		}
	}

	bookings, err := s.bookingRepo.ListBookings(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve bookings for revenue summary")
		return nil, fmt.Errorf("failed to retrieve bookings: %w", err)
	}

	rates, err := s.rateRepo.ListRatesTo(ctx, s.reportingCurrency)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve exchange rates for revenue summary")
		return nil, fmt.Errorf("failed to retrieve exchange rates: %w", err)
	}

	daily := dailyRevenue(bookings)
	convertDaily(daily, newRateLookup(rates))
	rollups := rollupMonthly(daily)
	rows := applyMonthlyFees(rollups, monthEndRates(rates))

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Month != rows[j].Month {
			return rows[i].Month < rows[j].Month
		}
		if rows[i].OwnerCompany != rows[j].OwnerCompany {
			return rows[i].OwnerCompany < rows[j].OwnerCompany
		}
		return rows[i].OriginalCurrency < rows[j].OriginalCurrency
	})

	if month != "" {
		filtered := rows[:0]
		for _, row := range rows {
			if row.Month == month {
				filtered = append(filtered, row)
			}
		}
		rows = filtered
	}

	s.LogInfo(ctx, "Monthly revenue summary generated",
		slog.Int("bookings", len(bookings)),
		slog.Int("rates", len(rates)),
		slog.Int("row_count", len(rows)))
	return rows, nil
}

// MonthEndRates returns the rate snapshots dated on the last calendar day of
// the given YYYY-MM month.
func (s *reportingService) MonthEndRates(ctx context.Context, month string) ([]domain.ExchangeRate, error) {
	parsed, err := time.Parse(monthLayout, month)
	if err != nil {
		return nil, fmt.Errorf("%w: month must be in YYYY-MM format", apperrors.ErrValidation)
	}

	lastDay := lastDayOfMonth(parsed)
	rates, _, err := s.rateRepo.ListRates(ctx, nil, nil, &lastDay, 0, 0)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve month-end rates", slog.String("month", month))
		return nil, fmt.Errorf("failed to retrieve month-end rates: %w", err)
	}

	monthEnd := make([]domain.ExchangeRate, 0)
	for _, rate := range rates {
		if sameDate(rate.RateDate, lastDay) {
			monthEnd = append(monthEnd, rate)
		}
	}
	return monthEnd, nil
}

// dailyKey identifies one per-day revenue group.
type dailyKey struct {
	ownerCompany string
	country      string
	date         time.Time
}

// dailyRevenue groups bookings by (company, country, checkout date) and
// prices each group with the country policy. Bookings without a checkout
// date are excluded here and therefore invisible to every later stage.
func dailyRevenue(bookings []domain.Booking) []*domain.DailyRevenue {
	groups := make(map[dailyKey]*domain.DailyRevenue)
	var order []dailyKey

	for _, b := range bookings {
		if !b.IsCheckedOut() {
			continue
		}

		key := dailyKey{
			ownerCompany: b.OwnerCompany,
			country:      b.OwnerCompanyCountry,
			date:         dateOf(*b.CheckOutDate),
		}

		group, ok := groups[key]
		if !ok {
			policy := domain.PolicyForCountry(b.OwnerCompanyCountry)
			group = &domain.DailyRevenue{
				OwnerCompany: b.OwnerCompany,
				Country:      b.OwnerCompanyCountry,
				Currency:     policy.Currency,
				Date:         key.date,
				BookingFee:   policy.BookingFee,
			}
			groups[key] = group
			order = append(order, key)
		}
		group.BookingCount++
	}

	result := make([]*domain.DailyRevenue, 0, len(order))
	for _, key := range order {
		group := groups[key]
		group.Revenue = group.BookingFee.Mul(decimal.NewFromInt(group.BookingCount))
		result = append(result, group)
	}
	return result
}

// rateKey identifies one rate snapshot by source currency and date.
type rateKey struct {
	fromCurrency string
	date         time.Time
}

func newRateLookup(rates []domain.ExchangeRate) map[rateKey]decimal.Decimal {
	lookup := make(map[rateKey]decimal.Decimal, len(rates))
	for _, rate := range rates {
		lookup[rateKey{fromCurrency: rate.FromCurrency, date: dateOf(rate.RateDate)}] = rate.Rate
	}
	return lookup
}

// convertDaily fills in each day's reporting-currency revenue using the rate
// snapshot dated exactly on the checkout date. A day with no same-day
// snapshot converts to null rather than falling back to an earlier date; the
// gap then propagates through the monthly sum.
func convertDaily(daily []*domain.DailyRevenue, lookup map[rateKey]decimal.Decimal) {
	for _, day := range daily {
		rate, ok := lookup[rateKey{fromCurrency: day.Currency, date: day.Date}]
		if !ok {
			continue
		}
		day.ConvertedRevenue = decimal.NewNullDecimal(day.Revenue.Mul(rate))
	}
}

// monthlyKey identifies one output row.
type monthlyKey struct {
	ownerCompany string
	month        string
	currency     string
}

// monthlyRollup accumulates per-day rows into one month.
type monthlyRollup struct {
	key              monthlyKey
	bookingCount     int64
	dayCount         int64
	feeTotal         decimal.Decimal
	originalRevenue  decimal.Decimal
	convertedRevenue decimal.Decimal
	anyConverted     bool
}

// rollupMonthly groups per-day rows by (company, month, currency). Converted
// revenue sums with SQL SUM semantics: null days are skipped, and a group
// where every day is null sums to null.
func rollupMonthly(daily []*domain.DailyRevenue) []*monthlyRollup {
	groups := make(map[monthlyKey]*monthlyRollup)
	var order []monthlyKey

	for _, day := range daily {
		key := monthlyKey{
			ownerCompany: day.OwnerCompany,
			month:        day.Date.Format(monthLayout),
			currency:     day.Currency,
		}

		rollup, ok := groups[key]
		if !ok {
			rollup = &monthlyRollup{key: key}
			groups[key] = rollup
			order = append(order, key)
		}

		rollup.bookingCount += day.BookingCount
		rollup.dayCount++
		rollup.feeTotal = rollup.feeTotal.Add(day.BookingFee)
		rollup.originalRevenue = rollup.originalRevenue.Add(day.Revenue)
		if day.ConvertedRevenue.Valid {
			rollup.convertedRevenue = rollup.convertedRevenue.Add(day.ConvertedRevenue.Decimal)
			rollup.anyConverted = true
		}
	}

	result := make([]*monthlyRollup, 0, len(order))
	for _, key := range order {
		result = append(result, groups[key])
	}
	return result
}

// monthEndRates selects, for every distinct month present in the rate data,
// the snapshots dated exactly on the last calendar day of that month.
func monthEndRates(rates []domain.ExchangeRate) map[monthlyKey]decimal.Decimal {
	monthEnd := make(map[monthlyKey]decimal.Decimal)
	for _, rate := range rates {
		date := dateOf(rate.RateDate)
		if !sameDate(date, lastDayOfMonth(date)) {
			continue
		}
		key := monthlyKey{month: date.Format(monthLayout), currency: rate.FromCurrency}
		monthEnd[key] = rate.Rate
	}
	return monthEnd
}

// applyMonthlyFees joins rollups to month-end rates and prices the monthly
// minimum fee. The join is inner: a month/currency without a month-end rate
// produces no output row at all. Rounding to 2dp happens only here, at the
// output boundary.
func applyMonthlyFees(rollups []*monthlyRollup, monthEnd map[monthlyKey]decimal.Decimal) []domain.MonthlySummaryRow {
	rows := make([]domain.MonthlySummaryRow, 0, len(rollups))
	for _, rollup := range rollups {
		rate, ok := monthEnd[monthlyKey{month: rollup.key.month, currency: rollup.key.currency}]
		if !ok {
			continue
		}

		minFee, ok := domain.MinimumFeeForCurrency(rollup.key.currency)
		if !ok {
			continue
		}

		row := domain.MonthlySummaryRow{
			OwnerCompany:      rollup.key.ownerCompany,
			Month:             rollup.key.month,
			OriginalCurrency:  rollup.key.currency,
			BookingCount:      rollup.bookingCount,
			AverageBookingFee: rollup.feeTotal.Div(decimal.NewFromInt(rollup.dayCount)),
			OriginalRevenue:   rollup.originalRevenue,
			ReportingFee:      minFee.Mul(rate).Round(2),
		}
		if rollup.anyConverted {
			row.ReportingRevenue = decimal.NewNullDecimal(rollup.convertedRevenue.Round(2))
		}
		rows = append(rows, row)
	}
	return rows
}

// dateOf truncates a timestamp to its calendar date at midnight UTC.
func dateOf(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// lastDayOfMonth returns the last calendar day of t's month at midnight UTC.
func lastDayOfMonth(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, time.UTC)
}

func sameDate(a, b time.Time) bool {
	return dateOf(a).Equal(dateOf(b))
}
