package pgsql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jwlsn/booking_revenue_app/internal/apperrors"
	"github.com/jwlsn/booking_revenue_app/internal/core/domain"
	portsrepo "github.com/jwlsn/booking_revenue_app/internal/core/ports/repositories"
	"github.com/jwlsn/booking_revenue_app/internal/models"
	"github.com/jwlsn/booking_revenue_app/internal/utils/mapping"
)

// PgxExchangeRateRepository implements the ports.ExchangeRateRepositoryFacade interface using pgxpool.
type PgxExchangeRateRepository struct {
	BaseRepository
}

// NewPgxExchangeRateRepository creates a new PgxExchangeRateRepository.
func NewPgxExchangeRateRepository(db *pgxpool.Pool) *PgxExchangeRateRepository {
	return &PgxExchangeRateRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

var _ portsrepo.ExchangeRateRepositoryFacade = (*PgxExchangeRateRepository)(nil)

// ReplaceAll swaps the full contents of the exchange_rates table for the
// given snapshot set. Rows are loaded into a staging table first and
// published in the same transaction, so concurrent readers either see the
// old set or the new one, never an empty table.
func (r *PgxExchangeRateRepository) ReplaceAll(ctx context.Context, rates []domain.ExchangeRate) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, `TRUNCATE TABLE exchange_rates_staging`); err != nil {
		_ = r.Rollback(ctx, tx)
		return apperrors.NewAppError(500, "failed to truncate rate staging table", err)
	}

	rows := make([][]interface{}, len(rates))
	for i, rate := range rates {
		m := mapping.ToModelExchangeRate(rate)
		// Rate is passed as its string form so pgx encodes it as numeric
		// without loss of precision.
		rows[i] = []interface{}{
			strings.ToUpper(m.FromCurrency), strings.ToUpper(m.ToCurrency), m.Rate.String(), m.RateDate,
		}
	}

	if _, err := tx.CopyFrom(ctx,
		pgx.Identifier{"exchange_rates_staging"},
		[]string{"from_currency", "to_currency", "rate", "rate_date"},
		pgx.CopyFromRows(rows),
	); err != nil {
		_ = r.Rollback(ctx, tx)
		return apperrors.NewAppError(500, "failed to bulk insert exchange rates", err)
	}

	if _, err := tx.Exec(ctx, `TRUNCATE TABLE exchange_rates`); err != nil {
		_ = r.Rollback(ctx, tx)
		return apperrors.NewAppError(500, "failed to truncate exchange rates", err)
	}

	if _, err := tx.Exec(ctx, `
		INSERT INTO exchange_rates (from_currency, to_currency, rate, rate_date)
		SELECT from_currency, to_currency, rate, rate_date FROM exchange_rates_staging`,
	); err != nil {
		_ = r.Rollback(ctx, tx)
		return apperrors.NewAppError(500, "failed to publish exchange rates", err)
	}

	return r.Commit(ctx, tx)
}

// ListRatesTo retrieves every rate snapshot converting into the given currency.
func (r *PgxExchangeRateRepository) ListRatesTo(ctx context.Context, toCurrency string) ([]domain.ExchangeRate, error) {
	query := `
		SELECT from_currency, to_currency, rate, rate_date
		FROM exchange_rates
		WHERE to_currency = $1
		ORDER BY from_currency, rate_date;
	`

	rows, err := r.Pool.Query(ctx, query, strings.ToUpper(toCurrency))
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list exchange rates", err)
	}
	defer rows.Close()

	var rates []domain.ExchangeRate
	for rows.Next() {
		var m models.ExchangeRate
		if err := rows.Scan(&m.FromCurrency, &m.ToCurrency, &m.Rate, &m.RateDate); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan exchange rate", err)
		}
		rates = append(rates, mapping.ToDomainExchangeRate(m))
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating exchange rates", err)
	}

	if rates == nil {
		return []domain.ExchangeRate{}, nil
	}
	return rates, nil
}

// ListRates retrieves exchange rates with optional filtering and pagination.
func (r *PgxExchangeRateRepository) ListRates(
	ctx context.Context,
	fromCurrency, toCurrency *string,
	onOrBefore *time.Time,
	page, pageSize int,
) ([]domain.ExchangeRate, int, error) {
	// Build the base query and count query
	baseQuery := `FROM exchange_rates WHERE 1=1`
	args := []interface{}{}
	argNum := 1

	// Add filters
	if fromCurrency != nil {
		baseQuery += fmt.Sprintf(" AND from_currency = $%d", argNum)
		args = append(args, strings.ToUpper(*fromCurrency))
		argNum++
	}

	if toCurrency != nil {
		baseQuery += fmt.Sprintf(" AND to_currency = $%d", argNum)
		args = append(args, strings.ToUpper(*toCurrency))
		argNum++
	}

	if onOrBefore != nil {
		baseQuery += fmt.Sprintf(" AND rate_date <= $%d", argNum)
		args = append(args, onOrBefore.Truncate(24*time.Hour))
		argNum++
	}

	// Get total count
	var total int
	countQuery := "SELECT COUNT(*) " + baseQuery
	err := r.Pool.QueryRow(ctx, countQuery, args...).Scan(&total)
	if err != nil {
		return nil, 0, apperrors.NewAppError(500, "failed to count exchange rates", err)
	}

	// If no results, return early
	if total == 0 {
		return []domain.ExchangeRate{}, 0, nil
	}

	// Get paginated results
	baseQuery += " ORDER BY from_currency, to_currency, rate_date DESC"
	if pageSize > 0 {
		offset := (page - 1) * pageSize
		baseQuery += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argNum, argNum+1)
		args = append(args, pageSize, offset)
	}

	rows, err := r.Pool.Query(ctx, "SELECT from_currency, to_currency, rate, rate_date "+baseQuery, args...)
	if err != nil {
		return nil, 0, apperrors.NewAppError(500, "failed to list exchange rates", err)
	}
	defer rows.Close()

	var rates []domain.ExchangeRate
	for rows.Next() {
		var m models.ExchangeRate
		if err := rows.Scan(&m.FromCurrency, &m.ToCurrency, &m.Rate, &m.RateDate); err != nil {
			return nil, 0, apperrors.NewAppError(500, "failed to scan exchange rate", err)
		}
		rates = append(rates, mapping.ToDomainExchangeRate(m))
	}

	if err := rows.Err(); err != nil {
		return nil, 0, apperrors.NewAppError(500, "error iterating exchange rates", err)
	}

	return rates, total, nil
}
