package services

import (
	"context"
	"fmt"
	"log/slog"

	portsclients "github.com/jwlsn/booking_revenue_app/internal/core/ports/clients"
	portsrepo "github.com/jwlsn/booking_revenue_app/internal/core/ports/repositories"
	portssvc "github.com/jwlsn/booking_revenue_app/internal/core/ports/services"
)

// ingestionService implements the IngestionSvc interface.
type ingestionService struct {
	BaseService
	source      portsclients.BookingSource
	bookingRepo portsrepo.BookingRepositoryFacade
}

// NewIngestionService creates a new booking ingestion service.
func NewIngestionService(source portsclients.BookingSource, bookingRepo portsrepo.BookingRepositoryFacade) portssvc.IngestionSvc {
	return &ingestionService{source: source, bookingRepo: bookingRepo}
}

var _ portssvc.IngestionSvc = (*ingestionService)(nil)

// IngestBookings truncates the raw store and re-fetches every booking page
// from the upstream API. Pages are persisted as they arrive; any failure
// aborts the run.
func (s *ingestionService) IngestBookings(ctx context.Context) (int, error) {
	if err := s.bookingRepo.Truncate(ctx); err != nil {
		s.LogError(ctx, err, "Failed to truncate bookings before ingestion")
		return 0, fmt.Errorf("failed to truncate bookings: %w", err)
	}

	total := 0
	for page := 1; ; page++ {
		result, err := s.source.FetchPage(ctx, page)
		if err != nil {
			s.LogError(ctx, err, "Failed to fetch bookings page", slog.Int("page", page))
			return total, fmt.Errorf("failed to fetch bookings page %d: %w", page, err)
		}

		if err := s.bookingRepo.SaveBookings(ctx, result.Bookings); err != nil {
			s.LogError(ctx, err, "Failed to persist bookings page", slog.Int("page", page))
			return total, fmt.Errorf("failed to persist bookings page %d: %w", page, err)
		}

		total += len(result.Bookings)
		s.LogInfo(ctx, "Fetched bookings page",
			slog.Int("page", result.Page),
			slog.Int("page_size", len(result.Bookings)),
			slog.Int("total_expected", result.Total))

		if result.LastPage() {
			break
		}
	}

	s.LogInfo(ctx, "Booking ingestion complete", slog.Int("booking_count", total))
	return total, nil
}
