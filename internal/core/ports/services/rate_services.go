package services

import (
	"context"
	"io"
	"time"

	"github.com/jwlsn/booking_revenue_app/internal/core/domain"
)

// RateReaderSvc defines read operations for exchange rate data
type RateReaderSvc interface {
	// ListRates retrieves rates with optional filtering and pagination.
	ListRates(ctx context.Context, fromCurrency, toCurrency *string, onOrBefore *time.Time, page, pageSize int) ([]domain.ExchangeRate, int, error)
}

// RateLoaderSvc defines the bulk load operation for exchange rate data
type RateLoaderSvc interface {
	// LoadRatesFromCSV parses a reference CSV (header row expected) and
	// replaces the rate store wholesale. Returns the number of rates loaded.
	LoadRatesFromCSV(ctx context.Context, r io.Reader) (int, error)
}

// RateSvcFacade combines all rate-related service interfaces
type RateSvcFacade interface {
	RateReaderSvc
	RateLoaderSvc
}
