// Package ratesfile parses the exchange rate reference CSV.
package ratesfile

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jwlsn/booking_revenue_app/internal/apperrors"
	"github.com/jwlsn/booking_revenue_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// expectedHeader is the required column layout of the reference file.
var expectedHeader = []string{"from_currency", "to_currency", "rate", "rate_date"}

const dateLayout = "2006-01-02"

// Parse reads the reference CSV (header row required) into domain rates.
// Any malformed row fails the whole load; a partial rate set must never be
// published.
func Parse(r io.Reader) ([]domain.ExchangeRate, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: rate file is empty", apperrors.ErrSchemaMismatch)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read rate file header: %w", err)
	}
	if err := validateHeader(header); err != nil {
		return nil, err
	}

	var rates []domain.ExchangeRate
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("failed to read rate file line %d: %w", line, err)
		}

		rate, err := parseRecord(record)
		if err != nil {
			return nil, fmt.Errorf("rate file line %d: %w", line, err)
		}
		rates = append(rates, rate)
	}

	return rates, nil
}

func validateHeader(header []string) error {
	if len(header) != len(expectedHeader) {
		return fmt.Errorf("%w: rate file has %d columns, expected %d", apperrors.ErrSchemaMismatch, len(header), len(expectedHeader))
	}
	for i, name := range expectedHeader {
		if strings.TrimSpace(strings.ToLower(header[i])) != name {
			return fmt.Errorf("%w: rate file column %d is %q, expected %q", apperrors.ErrSchemaMismatch, i+1, header[i], name)
		}
	}
	return nil
}

func parseRecord(record []string) (domain.ExchangeRate, error) {
	from := strings.ToUpper(strings.TrimSpace(record[0]))
	to := strings.ToUpper(strings.TrimSpace(record[1]))
	if len(from) != 3 || len(to) != 3 {
		return domain.ExchangeRate{}, fmt.Errorf("%w: currency codes must be 3 letters, got %q and %q", apperrors.ErrValidation, record[0], record[1])
	}

	rate, err := decimal.NewFromString(strings.TrimSpace(record[2]))
	if err != nil {
		return domain.ExchangeRate{}, fmt.Errorf("%w: invalid rate %q", apperrors.ErrValidation, record[2])
	}
	if rate.LessThanOrEqual(decimal.Zero) {
		return domain.ExchangeRate{}, fmt.Errorf("%w: rate must be positive, got %q", apperrors.ErrValidation, record[2])
	}

	rateDate, err := time.Parse(dateLayout, strings.TrimSpace(record[3]))
	if err != nil {
		return domain.ExchangeRate{}, fmt.Errorf("%w: invalid rate_date %q, expected YYYY-MM-DD", apperrors.ErrValidation, record[3])
	}

	return domain.ExchangeRate{
		FromCurrency: from,
		ToCurrency:   to,
		Rate:         rate,
		RateDate:     rateDate,
	}, nil
}
