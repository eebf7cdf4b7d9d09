package repositories

import (
	"context"

	"github.com/jwlsn/booking_revenue_app/internal/core/domain"
)

// BookingReader defines read operations for raw booking data
type BookingReader interface {
	// ListBookings retrieves the full contents of the raw store.
	// The aggregation is a pure function of this snapshot.
	ListBookings(ctx context.Context) ([]domain.Booking, error)
}

// BookingWriter defines write operations for raw booking data
type BookingWriter interface {
	// Truncate empties the raw store before a fresh ingestion run.
	Truncate(ctx context.Context) error

	// SaveBookings appends a batch of bookings to the raw store.
	SaveBookings(ctx context.Context, bookings []domain.Booking) error
}

// BookingRepositoryFacade combines all booking-related repository interfaces
type BookingRepositoryFacade interface {
	BookingReader
	BookingWriter
}
