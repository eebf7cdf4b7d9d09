package models

import "time"

// Booking mirrors one row of the bookings table.
type Booking struct {
	BookingID           string     `json:"bookingID"`
	CheckInDate         time.Time  `json:"checkInDate"`
	CheckOutDate        *time.Time `json:"checkOutDate"` // nullable in the schema
	OwnerCompany        string     `json:"ownerCompany"`
	OwnerCompanyCountry string     `json:"ownerCompanyCountry"`
}
