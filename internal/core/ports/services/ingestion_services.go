package services

import "context"

// IngestionSvc defines the booking ingestion operation
type IngestionSvc interface {
	// IngestBookings truncates the raw store and re-fetches every booking
	// page from the upstream API. Returns the number of bookings persisted.
	IngestBookings(ctx context.Context) (int, error)
}
