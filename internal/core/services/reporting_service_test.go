package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/jwlsn/booking_revenue_app/internal/apperrors"
	"github.com/jwlsn/booking_revenue_app/internal/core/domain"
	portssvc "github.com/jwlsn/booking_revenue_app/internal/core/ports/services"
	"github.com/jwlsn/booking_revenue_app/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock BookingRepository ---
type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) ListBookings(ctx context.Context) ([]domain.Booking, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) Truncate(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockBookingRepository) SaveBookings(ctx context.Context, bookings []domain.Booking) error {
	args := m.Called(ctx, bookings)
	return args.Error(0)
}

// --- Mock ExchangeRateRepository ---
type MockExchangeRateRepository struct {
	mock.Mock
}

func (m *MockExchangeRateRepository) ListRatesTo(ctx context.Context, toCurrency string) ([]domain.ExchangeRate, error) {
	args := m.Called(ctx, toCurrency)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExchangeRate), args.Error(1)
}

func (m *MockExchangeRateRepository) ListRates(ctx context.Context, fromCurrency, toCurrency *string, onOrBefore *time.Time, page, pageSize int) ([]domain.ExchangeRate, int, error) {
	args := m.Called(ctx, fromCurrency, toCurrency, onOrBefore, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.ExchangeRate), args.Int(1), args.Error(2)
}

func (m *MockExchangeRateRepository) ReplaceAll(ctx context.Context, rates []domain.ExchangeRate) error {
	args := m.Called(ctx, rates)
	return args.Error(0)
}

// --- Test helpers ---

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func checkoutAt(t time.Time) *time.Time {
	return &t
}

func booking(id, company, country string, checkOut *time.Time) domain.Booking {
	return domain.Booking{
		BookingID:           id,
		CheckInDate:         date(2024, time.January, 1),
		CheckOutDate:        checkOut,
		OwnerCompany:        company,
		OwnerCompanyCountry: country,
	}
}

func gbpRate(from string, rate string, on time.Time) domain.ExchangeRate {
	return domain.ExchangeRate{
		FromCurrency: from,
		ToCurrency:   "GBP",
		Rate:         decimal.RequireFromString(rate),
		RateDate:     on,
	}
}

// --- Test Suite ---
type ReportingServiceTestSuite struct {
	suite.Suite
	mockBookingRepo *MockBookingRepository
	mockRateRepo    *MockExchangeRateRepository
	service         portssvc.ReportingSvc
}

func (suite *ReportingServiceTestSuite) SetupTest() {
	suite.mockBookingRepo = new(MockBookingRepository)
	suite.mockRateRepo = new(MockExchangeRateRepository)
	suite.service = services.NewReportingService(suite.mockBookingRepo, suite.mockRateRepo, "GBP")
}

// --- Test Cases ---

func (suite *ReportingServiceTestSuite) TestMonthlyRevenueSummary_Success() {
	ctx := context.Background()

	jan15 := date(2024, time.January, 15)
	jan20 := date(2024, time.January, 20)
	jan31 := date(2024, time.January, 31)

	bookings := []domain.Booking{
		booking("b1", "Acme Stays", "UK", checkoutAt(jan15)),
		booking("b2", "Acme Stays", "UK", checkoutAt(jan15)),
		booking("b3", "Sunset Rentals", "USA", checkoutAt(jan20)),
		booking("b4", "Sunset Rentals", "USA", checkoutAt(jan20)),
		booking("b5", "Sunset Rentals", "USA", checkoutAt(jan20)),
		booking("b6", "Sunset Rentals", "USA", nil), // still checked in
	}
	rates := []domain.ExchangeRate{
		gbpRate("GBP", "1", jan15),
		gbpRate("GBP", "1", jan31),
		gbpRate("USD", "0.79", jan20),
		gbpRate("USD", "0.80", jan31),
	}

	suite.mockBookingRepo.On("ListBookings", ctx).Return(bookings, nil).Once()
	suite.mockRateRepo.On("ListRatesTo", ctx, "GBP").Return(rates, nil).Once()

	rows, err := suite.service.MonthlyRevenueSummary(ctx, "")

	suite.Require().NoError(err)
	suite.Require().Len(rows, 2)

	acme := rows[0]
	suite.Equal("Acme Stays", acme.OwnerCompany)
	suite.Equal("2024-01", acme.Month)
	suite.Equal("GBP", acme.OriginalCurrency)
	suite.Equal(int64(2), acme.BookingCount)
	suite.True(acme.OriginalRevenue.Equal(decimal.NewFromInt(20)), "original revenue: %s", acme.OriginalRevenue)
	suite.Require().True(acme.ReportingRevenue.Valid)
	suite.Equal("20.00", acme.ReportingRevenue.Decimal.StringFixed(2))
	suite.Equal("100.00", acme.ReportingFee.StringFixed(2))

	sunset := rows[1]
	suite.Equal("Sunset Rentals", sunset.OwnerCompany)
	suite.Equal("USD", sunset.OriginalCurrency)
	suite.Equal(int64(3), sunset.BookingCount)
	suite.True(sunset.OriginalRevenue.Equal(decimal.NewFromInt(42)), "original revenue: %s", sunset.OriginalRevenue)
	suite.Require().True(sunset.ReportingRevenue.Valid)
	suite.Equal("33.18", sunset.ReportingRevenue.Decimal.StringFixed(2)) // 42 * 0.79
	suite.Equal("112.00", sunset.ReportingFee.StringFixed(2))            // 140 * 0.80

	suite.mockBookingRepo.AssertExpectations(suite.T())
	suite.mockRateRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestMonthlyRevenueSummary_UnknownCountryBillsInEUR() {
	ctx := context.Background()

	jan10 := date(2024, time.January, 10)
	jan31 := date(2024, time.January, 31)

	bookings := []domain.Booking{
		booking("b1", "Alpine Chalets", "FR", checkoutAt(jan10)),
	}
	rates := []domain.ExchangeRate{
		gbpRate("EUR", "0.85", jan10),
		gbpRate("EUR", "0.86", jan31),
	}

	suite.mockBookingRepo.On("ListBookings", ctx).Return(bookings, nil).Once()
	suite.mockRateRepo.On("ListRatesTo", ctx, "GBP").Return(rates, nil).Once()

	rows, err := suite.service.MonthlyRevenueSummary(ctx, "")

	suite.Require().NoError(err)
	suite.Require().Len(rows, 1)
	suite.Equal("EUR", rows[0].OriginalCurrency)
	suite.True(rows[0].OriginalRevenue.Equal(decimal.NewFromInt(12)))
	suite.Require().True(rows[0].ReportingRevenue.Valid)
	suite.Equal("10.20", rows[0].ReportingRevenue.Decimal.StringFixed(2)) // 12 * 0.85
	suite.Equal("103.20", rows[0].ReportingFee.StringFixed(2))            // 120 * 0.86
}

func (suite *ReportingServiceTestSuite) TestMonthlyRevenueSummary_MissingDailyRateYieldsNullRevenue() {
	ctx := context.Background()

	jan10 := date(2024, time.January, 10)
	jan31 := date(2024, time.January, 31)

	bookings := []domain.Booking{
		booking("b1", "Sunset Rentals", "USA", checkoutAt(jan10)),
	}
	// Month-end rate exists, but no snapshot dated on the checkout day.
	rates := []domain.ExchangeRate{
		gbpRate("USD", "0.80", jan31),
	}

	suite.mockBookingRepo.On("ListBookings", ctx).Return(bookings, nil).Once()
	suite.mockRateRepo.On("ListRatesTo", ctx, "GBP").Return(rates, nil).Once()

	rows, err := suite.service.MonthlyRevenueSummary(ctx, "")

	suite.Require().NoError(err)
	suite.Require().Len(rows, 1)
	suite.False(rows[0].ReportingRevenue.Valid, "revenue should be null when no checkout-day rate exists")
	suite.Equal("112.00", rows[0].ReportingFee.StringFixed(2))
}

func (suite *ReportingServiceTestSuite) TestMonthlyRevenueSummary_PartialRateCoverageSumsConvertedDaysOnly() {
	ctx := context.Background()

	jan10 := date(2024, time.January, 10)
	jan20 := date(2024, time.January, 20)
	jan31 := date(2024, time.January, 31)

	bookings := []domain.Booking{
		booking("b1", "Sunset Rentals", "USA", checkoutAt(jan10)),
		booking("b2", "Sunset Rentals", "USA", checkoutAt(jan20)),
	}
	// Only the second checkout day has a snapshot.
	rates := []domain.ExchangeRate{
		gbpRate("USD", "0.80", jan20),
		gbpRate("USD", "0.80", jan31),
	}

	suite.mockBookingRepo.On("ListBookings", ctx).Return(bookings, nil).Once()
	suite.mockRateRepo.On("ListRatesTo", ctx, "GBP").Return(rates, nil).Once()

	rows, err := suite.service.MonthlyRevenueSummary(ctx, "")

	suite.Require().NoError(err)
	suite.Require().Len(rows, 1)
	suite.Equal(int64(2), rows[0].BookingCount)
	suite.Require().True(rows[0].ReportingRevenue.Valid)
	suite.Equal("11.20", rows[0].ReportingRevenue.Decimal.StringFixed(2)) // only the jan20 day converts
}

func (suite *ReportingServiceTestSuite) TestMonthlyRevenueSummary_MissingMonthEndRateDropsRow() {
	ctx := context.Background()

	jan15 := date(2024, time.January, 15)

	bookings := []domain.Booking{
		booking("b1", "Sunset Rentals", "USA", checkoutAt(jan15)),
	}
	// Daily rate present, month-end snapshot absent.
	rates := []domain.ExchangeRate{
		gbpRate("USD", "0.80", jan15),
	}

	suite.mockBookingRepo.On("ListBookings", ctx).Return(bookings, nil).Once()
	suite.mockRateRepo.On("ListRatesTo", ctx, "GBP").Return(rates, nil).Once()

	rows, err := suite.service.MonthlyRevenueSummary(ctx, "")

	suite.Require().NoError(err)
	suite.Empty(rows)
}

func (suite *ReportingServiceTestSuite) TestMonthlyRevenueSummary_LeapDayIsMonthEnd() {
	ctx := context.Background()

	feb29 := date(2024, time.February, 29)

	bookings := []domain.Booking{
		booking("b1", "Sunset Rentals", "USA", checkoutAt(feb29)),
		booking("b2", "Sunset Rentals", "USA", checkoutAt(feb29)),
	}
	rates := []domain.ExchangeRate{
		gbpRate("USD", "1", feb29),
	}

	suite.mockBookingRepo.On("ListBookings", ctx).Return(bookings, nil).Once()
	suite.mockRateRepo.On("ListRatesTo", ctx, "GBP").Return(rates, nil).Once()

	rows, err := suite.service.MonthlyRevenueSummary(ctx, "")

	suite.Require().NoError(err)
	suite.Require().Len(rows, 1)
	suite.Equal("2024-02", rows[0].Month)
	suite.Equal(int64(2), rows[0].BookingCount)
	suite.Require().True(rows[0].ReportingRevenue.Valid)
	suite.Equal("28.00", rows[0].ReportingRevenue.Decimal.StringFixed(2))
	suite.Equal("140.00", rows[0].ReportingFee.StringFixed(2))
}

func (suite *ReportingServiceTestSuite) TestMonthlyRevenueSummary_RoundsOnlyAtOutput() {
	ctx := context.Background()

	jan15 := date(2024, time.January, 15)
	jan31 := date(2024, time.January, 31)

	bookings := []domain.Booking{
		booking("b1", "Sunset Rentals", "USA", checkoutAt(jan15)),
	}
	rates := []domain.ExchangeRate{
		gbpRate("USD", "0.793651", jan15),
		gbpRate("USD", "0.793651", jan31),
	}

	suite.mockBookingRepo.On("ListBookings", ctx).Return(bookings, nil).Once()
	suite.mockRateRepo.On("ListRatesTo", ctx, "GBP").Return(rates, nil).Once()

	rows, err := suite.service.MonthlyRevenueSummary(ctx, "")

	suite.Require().NoError(err)
	suite.Require().Len(rows, 1)
	suite.Require().True(rows[0].ReportingRevenue.Valid)
	suite.Equal("11.11", rows[0].ReportingRevenue.Decimal.StringFixed(2)) // 14 * 0.793651 = 11.111114
	suite.Equal("111.11", rows[0].ReportingFee.StringFixed(2))            // 140 * 0.793651 = 111.11114
}

func (suite *ReportingServiceTestSuite) TestMonthlyRevenueSummary_SortedAndDeterministic() {
	ctx := context.Background()

	jan15 := date(2024, time.January, 15)
	jan31 := date(2024, time.January, 31)
	feb10 := date(2024, time.February, 10)
	feb29 := date(2024, time.February, 29)

	bookings := []domain.Booking{
		booking("b1", "Zebra Lodges", "UK", checkoutAt(jan15)),
		booking("b2", "Acme Stays", "UK", checkoutAt(jan15)),
		booking("b3", "Acme Stays", "UK", checkoutAt(feb10)),
	}
	rates := []domain.ExchangeRate{
		gbpRate("GBP", "1", jan15),
		gbpRate("GBP", "1", jan31),
		gbpRate("GBP", "1", feb10),
		gbpRate("GBP", "1", feb29),
	}

	suite.mockBookingRepo.On("ListBookings", ctx).Return(bookings, nil).Twice()
	suite.mockRateRepo.On("ListRatesTo", ctx, "GBP").Return(rates, nil).Twice()

	first, err := suite.service.MonthlyRevenueSummary(ctx, "")
	suite.Require().NoError(err)
	suite.Require().Len(first, 3)

	suite.Equal("2024-01", first[0].Month)
	suite.Equal("Acme Stays", first[0].OwnerCompany)
	suite.Equal("2024-01", first[1].Month)
	suite.Equal("Zebra Lodges", first[1].OwnerCompany)
	suite.Equal("2024-02", first[2].Month)
	suite.Equal("Acme Stays", first[2].OwnerCompany)

	// Re-running on unchanged inputs yields identical rows.
	second, err := suite.service.MonthlyRevenueSummary(ctx, "")
	suite.Require().NoError(err)
	suite.Equal(first, second)
}

func (suite *ReportingServiceTestSuite) TestMonthlyRevenueSummary_MonthFilter() {
	ctx := context.Background()

	jan15 := date(2024, time.January, 15)
	jan31 := date(2024, time.January, 31)
	feb10 := date(2024, time.February, 10)
	feb29 := date(2024, time.February, 29)

	bookings := []domain.Booking{
		booking("b1", "Acme Stays", "UK", checkoutAt(jan15)),
		booking("b2", "Acme Stays", "UK", checkoutAt(feb10)),
	}
	rates := []domain.ExchangeRate{
		gbpRate("GBP", "1", jan15),
		gbpRate("GBP", "1", jan31),
		gbpRate("GBP", "1", feb10),
		gbpRate("GBP", "1", feb29),
	}

	suite.mockBookingRepo.On("ListBookings", ctx).Return(bookings, nil).Once()
	suite.mockRateRepo.On("ListRatesTo", ctx, "GBP").Return(rates, nil).Once()

	rows, err := suite.service.MonthlyRevenueSummary(ctx, "2024-02")

	suite.Require().NoError(err)
	suite.Require().Len(rows, 1)
	suite.Equal("2024-02", rows[0].Month)
}

func (suite *ReportingServiceTestSuite) TestMonthlyRevenueSummary_InvalidMonth() {
	ctx := context.Background()

	rows, err := suite.service.MonthlyRevenueSummary(ctx, "2024-13")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(rows)
	suite.mockBookingRepo.AssertNotCalled(suite.T(), "ListBookings", mock.Anything)
}

func (suite *ReportingServiceTestSuite) TestMonthlyRevenueSummary_EmptyStore() {
	ctx := context.Background()

	suite.mockBookingRepo.On("ListBookings", ctx).Return([]domain.Booking{}, nil).Once()
	suite.mockRateRepo.On("ListRatesTo", ctx, "GBP").Return([]domain.ExchangeRate{}, nil).Once()

	rows, err := suite.service.MonthlyRevenueSummary(ctx, "")

	suite.Require().NoError(err)
	suite.Empty(rows)
}

func (suite *ReportingServiceTestSuite) TestMonthEndRates_Success() {
	ctx := context.Background()

	jan31 := date(2024, time.January, 31)
	rates := []domain.ExchangeRate{
		gbpRate("USD", "0.80", date(2024, time.January, 30)),
		gbpRate("USD", "0.81", jan31),
		gbpRate("EUR", "0.85", jan31),
	}

	suite.mockRateRepo.On("ListRates", ctx, (*string)(nil), (*string)(nil), mock.AnythingOfType("*time.Time"), 0, 0).
		Return(rates, len(rates), nil).Once()

	monthEnd, err := suite.service.MonthEndRates(ctx, "2024-01")

	suite.Require().NoError(err)
	suite.Require().Len(monthEnd, 2)
	for _, rate := range monthEnd {
		suite.True(rate.RateDate.Equal(jan31))
	}
}

func (suite *ReportingServiceTestSuite) TestMonthEndRates_InvalidMonth() {
	ctx := context.Background()

	monthEnd, err := suite.service.MonthEndRates(ctx, "January 2024")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(monthEnd)
}

func TestReportingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}
