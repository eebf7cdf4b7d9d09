package domain

import "time"

// Booking is a single raw booking fact ingested from the upstream API.
// Rows are append-only; a booking is never updated or deleted once written.
type Booking struct {
	BookingID           string     `json:"bookingID"`
	CheckInDate         time.Time  `json:"checkInDate"`
	CheckOutDate        *time.Time `json:"checkOutDate"` // nil until the guest checks out
	OwnerCompany        string     `json:"ownerCompany"`
	OwnerCompanyCountry string     `json:"ownerCompanyCountry"` // short code, e.g. "UK"
}

// IsCheckedOut reports whether the booking has a checkout date.
// Bookings without one are invisible to revenue reporting.
func (b Booking) IsCheckedOut() bool {
	return b.CheckOutDate != nil
}
