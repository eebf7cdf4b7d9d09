package clients

import (
	"context"

	"github.com/jwlsn/booking_revenue_app/internal/core/domain"
)

// BookingPage is one page of bookings from the upstream API.
type BookingPage struct {
	Bookings []domain.Booking
	Page     int
	PerPage  int
	Total    int
}

// LastPage reports whether this page is the final one.
func (p BookingPage) LastPage() bool {
	return p.Page*p.PerPage >= p.Total
}

// BookingSource fetches booking pages from the upstream API.
type BookingSource interface {
	// FetchPage retrieves one page of bookings. Transient failures are
	// retried inside the source; errors returned here are terminal.
	FetchPage(ctx context.Context, page int) (*BookingPage, error)
}
