package mapping

import (
	"github.com/jwlsn/booking_revenue_app/internal/core/domain"
	"github.com/jwlsn/booking_revenue_app/internal/models"
)

// ToModelBooking converts a domain Booking to a model Booking
func ToModelBooking(d domain.Booking) models.Booking {
	return models.Booking{
		BookingID:           d.BookingID,
		CheckInDate:         d.CheckInDate,
		CheckOutDate:        d.CheckOutDate,
		OwnerCompany:        d.OwnerCompany,
		OwnerCompanyCountry: d.OwnerCompanyCountry,
	}
}

// ToDomainBooking converts a model Booking to a domain Booking
func ToDomainBooking(m models.Booking) domain.Booking {
	return domain.Booking{
		BookingID:           m.BookingID,
		CheckInDate:         m.CheckInDate,
		CheckOutDate:        m.CheckOutDate,
		OwnerCompany:        m.OwnerCompany,
		OwnerCompanyCountry: m.OwnerCompanyCountry,
	}
}
