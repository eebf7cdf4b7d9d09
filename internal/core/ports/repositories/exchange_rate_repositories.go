package repositories

import (
	"context"
	"time"

	"github.com/jwlsn/booking_revenue_app/internal/core/domain"
)

// ExchangeRateReader defines read operations for exchange rate data
type ExchangeRateReader interface {
	// ListRatesTo retrieves every rate snapshot converting into the given
	// currency, across all dates.
	ListRatesTo(ctx context.Context, toCurrency string) ([]domain.ExchangeRate, error)

	// ListRates retrieves rates with optional filtering and pagination.
	ListRates(ctx context.Context, fromCurrency, toCurrency *string, onOrBefore *time.Time, page, pageSize int) ([]domain.ExchangeRate, int, error)
}

// ExchangeRateWriter defines write operations for exchange rate data
type ExchangeRateWriter interface {
	// ReplaceAll swaps the full rate table for the given snapshot set.
	// The swap is atomic: readers never observe an empty table.
	ReplaceAll(ctx context.Context, rates []domain.ExchangeRate) error
}

// ExchangeRateRepositoryFacade combines all exchange rate-related repository interfaces
type ExchangeRateRepositoryFacade interface {
	ExchangeRateReader
	ExchangeRateWriter
}
