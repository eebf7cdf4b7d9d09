package pgsql

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jwlsn/booking_revenue_app/internal/apperrors"
	"github.com/jwlsn/booking_revenue_app/internal/core/domain"
	portsrepo "github.com/jwlsn/booking_revenue_app/internal/core/ports/repositories"
	"github.com/jwlsn/booking_revenue_app/internal/models"
	"github.com/jwlsn/booking_revenue_app/internal/utils/mapping"
)

// PgxBookingRepository implements the ports.BookingRepositoryFacade interface using pgxpool.
type PgxBookingRepository struct {
	BaseRepository
}

// NewPgxBookingRepository creates a new PgxBookingRepository.
func NewPgxBookingRepository(db *pgxpool.Pool) *PgxBookingRepository {
	return &PgxBookingRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

var _ portsrepo.BookingRepositoryFacade = (*PgxBookingRepository)(nil)

// Truncate empties the bookings table ahead of a fresh ingestion run.
func (r *PgxBookingRepository) Truncate(ctx context.Context) error {
	if _, err := r.Pool.Exec(ctx, `TRUNCATE TABLE bookings`); err != nil {
		return apperrors.NewAppError(500, "failed to truncate bookings", err)
	}
	return nil
}

// SaveBookings bulk-appends a batch of bookings via COPY.
func (r *PgxBookingRepository) SaveBookings(ctx context.Context, bookings []domain.Booking) error {
	if len(bookings) == 0 {
		return nil
	}

	rows := make([][]interface{}, len(bookings))
	for i, b := range bookings {
		m := mapping.ToModelBooking(b)
		rows[i] = []interface{}{
			m.BookingID, m.CheckInDate, m.CheckOutDate, m.OwnerCompany, m.OwnerCompanyCountry,
		}
	}

	_, err := r.Pool.CopyFrom(ctx,
		pgx.Identifier{"bookings"},
		[]string{"booking_id", "check_in_date", "check_out_date", "owner_company", "owner_company_country"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to bulk insert bookings", err)
	}
	return nil
}

// ListBookings retrieves the full contents of the bookings table.
func (r *PgxBookingRepository) ListBookings(ctx context.Context) ([]domain.Booking, error) {
	query := `
		SELECT booking_id, check_in_date, check_out_date, owner_company, owner_company_country
		FROM bookings;
	`

	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list bookings", err)
	}
	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		var m models.Booking
		if err := rows.Scan(
			&m.BookingID, &m.CheckInDate, &m.CheckOutDate, &m.OwnerCompany, &m.OwnerCompanyCountry,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan booking", err)
		}
		bookings = append(bookings, mapping.ToDomainBooking(m))
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating bookings", err)
	}

	if bookings == nil {
		// Return empty slice instead of nil
		return []domain.Booking{}, nil
	}
	return bookings, nil
}
