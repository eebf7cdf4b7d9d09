// Package bookings implements the HTTP client for the upstream bookings API.
package bookings

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/jwlsn/booking_revenue_app/internal/apperrors"
	"github.com/jwlsn/booking_revenue_app/internal/core/domain"
	portsclients "github.com/jwlsn/booking_revenue_app/internal/core/ports/clients"
)

const defaultMaxRetries = 3

// bookingFields is the exact set of columns the upstream API must deliver.
// Anything more or less is schema drift and a hard failure.
var bookingFields = map[string]struct{}{
	"booking_id":            {},
	"check_in_date":         {},
	"check_out_date":        {},
	"owner_company":         {},
	"owner_company_country": {},
}

// Client fetches booking pages from the upstream API with basic retries.
type Client struct {
	baseURL    string
	pageSize   int
	maxRetries int
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a bookings API client.
func NewClient(baseURL string, pageSize int, logger *slog.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		pageSize:   pageSize,
		maxRetries: defaultMaxRetries,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     logger,
	}
}

var _ portsclients.BookingSource = (*Client)(nil)

// pageEnvelope mirrors the upstream pagination wrapper.
type pageEnvelope struct {
	Results []json.RawMessage `json:"results"`
	Page    int               `json:"page"`
	PerPage int               `json:"per_page"`
	Total   int               `json:"total"`
}

// apiBooking mirrors one upstream booking record.
type apiBooking struct {
	BookingID           string  `json:"booking_id"`
	CheckInDate         string  `json:"check_in_date"`
	CheckOutDate        *string `json:"check_out_date"`
	OwnerCompany        string  `json:"owner_company"`
	OwnerCompanyCountry string  `json:"owner_company_country"`
}

// FetchPage retrieves one page of bookings, retrying transient failures.
func (c *Client) FetchPage(ctx context.Context, page int) (*portsclients.BookingPage, error) {
	reqURL, err := url.JoinPath(c.baseURL, "api", "bookings")
	if err != nil {
		return nil, fmt.Errorf("invalid bookings API base URL %q: %w", c.baseURL, err)
	}

	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("per_page", strconv.Itoa(c.pageSize))
	reqURL += "?" + query.Encode()

	body, err := c.getWithRetry(ctx, reqURL)
	if err != nil {
		return nil, err
	}

	var envelope pageEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("%w: malformed bookings API response: %v", apperrors.ErrSchemaMismatch, err)
	}

	result := &portsclients.BookingPage{
		Page:    envelope.Page,
		PerPage: envelope.PerPage,
		Total:   envelope.Total,
	}

	for _, raw := range envelope.Results {
		booking, err := parseBooking(raw)
		if err != nil {
			return nil, err
		}
		result.Bookings = append(result.Bookings, booking)
	}

	return result, nil
}

// getWithRetry issues a GET, retrying network errors and 5xx responses with
// doubling backoff. 4xx responses are terminal.
func (c *Client) getWithRetry(ctx context.Context, reqURL string) ([]byte, error) {
	backoff := 500 * time.Millisecond
	var lastErr error

	for attempt := 1; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to build bookings API request: %w", err)
		}

		resp, err := c.httpClient.Do(req)
		if err == nil {
			body, readErr := io.ReadAll(resp.Body)
			resp.Body.Close()

			switch {
			case readErr != nil:
				lastErr = fmt.Errorf("failed to read bookings API response: %w", readErr)
			case resp.StatusCode == http.StatusOK:
				return body, nil
			case resp.StatusCode >= 500:
				lastErr = fmt.Errorf("bookings API returned status %d", resp.StatusCode)
			default:
				return nil, fmt.Errorf("bookings API returned status %d", resp.StatusCode)
			}
		} else {
			lastErr = fmt.Errorf("bookings API request failed: %w", err)
		}

		if attempt < c.maxRetries {
			c.logger.Warn("Retrying bookings API request",
				slog.String("url", reqURL),
				slog.Int("attempt", attempt),
				slog.String("error", lastErr.Error()))
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
			backoff *= 2
		}
	}

	return nil, fmt.Errorf("bookings API request failed after %d attempts: %w", c.maxRetries, lastErr)
}

// parseBooking validates one raw record against the expected column set and
// converts it to the domain shape.
func parseBooking(raw json.RawMessage) (domain.Booking, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return domain.Booking{}, fmt.Errorf("%w: malformed booking record: %v", apperrors.ErrSchemaMismatch, err)
	}

	if len(fields) != len(bookingFields) {
		return domain.Booking{}, fmt.Errorf("%w: booking record has %d columns, expected %d", apperrors.ErrSchemaMismatch, len(fields), len(bookingFields))
	}
	for name := range fields {
		if _, ok := bookingFields[name]; !ok {
			return domain.Booking{}, fmt.Errorf("%w: unexpected booking column %q", apperrors.ErrSchemaMismatch, name)
		}
	}

	var rec apiBooking
	if err := json.Unmarshal(raw, &rec); err != nil {
		return domain.Booking{}, fmt.Errorf("%w: malformed booking record: %v", apperrors.ErrSchemaMismatch, err)
	}

	checkIn, err := parseTimestamp(rec.CheckInDate)
	if err != nil {
		return domain.Booking{}, fmt.Errorf("%w: booking %s has invalid check_in_date %q", apperrors.ErrSchemaMismatch, rec.BookingID, rec.CheckInDate)
	}

	var checkOut *time.Time
	if rec.CheckOutDate != nil && *rec.CheckOutDate != "" {
		t, err := parseTimestamp(*rec.CheckOutDate)
		if err != nil {
			return domain.Booking{}, fmt.Errorf("%w: booking %s has invalid check_out_date %q", apperrors.ErrSchemaMismatch, rec.BookingID, *rec.CheckOutDate)
		}
		checkOut = &t
	}

	return domain.Booking{
		BookingID:           rec.BookingID,
		CheckInDate:         checkIn,
		CheckOutDate:        checkOut,
		OwnerCompany:        rec.OwnerCompany,
		OwnerCompanyCountry: rec.OwnerCompanyCountry,
	}, nil
}

var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseTimestamp(s string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}
