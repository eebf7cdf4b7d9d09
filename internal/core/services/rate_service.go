package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/jwlsn/booking_revenue_app/internal/core/domain"
	portsrepo "github.com/jwlsn/booking_revenue_app/internal/core/ports/repositories"
	portssvc "github.com/jwlsn/booking_revenue_app/internal/core/ports/services"
	"github.com/jwlsn/booking_revenue_app/internal/utils/ratesfile"
)

// rateService implements the RateSvcFacade interface.
type rateService struct {
	BaseService
	rateRepo portsrepo.ExchangeRateRepositoryFacade
}

// NewRateService creates a new exchange rate service.
func NewRateService(rateRepo portsrepo.ExchangeRateRepositoryFacade) portssvc.RateSvcFacade {
	return &rateService{rateRepo: rateRepo}
}

var _ portssvc.RateSvcFacade = (*rateService)(nil)

// LoadRatesFromCSV parses the reference CSV and replaces the rate store
// wholesale. The previous rate set stays visible until the new one is
// published.
func (s *rateService) LoadRatesFromCSV(ctx context.Context, r io.Reader) (int, error) {
	rates, err := ratesfile.Parse(r)
	if err != nil {
		s.LogError(ctx, err, "Failed to parse rate file")
		return 0, fmt.Errorf("failed to parse rate file: %w", err)
	}

	if err := s.rateRepo.ReplaceAll(ctx, rates); err != nil {
		s.LogError(ctx, err, "Failed to replace exchange rates", slog.Int("rate_count", len(rates)))
		return 0, fmt.Errorf("failed to replace exchange rates: %w", err)
	}

	s.LogInfo(ctx, "Exchange rates reloaded", slog.Int("rate_count", len(rates)))
	return len(rates), nil
}

// ListRates retrieves exchange rates with optional filtering and pagination.
func (s *rateService) ListRates(ctx context.Context, fromCurrency, toCurrency *string, onOrBefore *time.Time, page, pageSize int) ([]domain.ExchangeRate, int, error) {
	rates, total, err := s.rateRepo.ListRates(ctx, fromCurrency, toCurrency, onOrBefore, page, pageSize)
	if err != nil {
		s.LogError(ctx, err, "Failed to list exchange rates")
		return nil, 0, fmt.Errorf("failed to list exchange rates: %w", err)
	}
	return rates, total, nil
}
