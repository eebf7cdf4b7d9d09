package bookings

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jwlsn/booking_revenue_app/internal/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestFetchPage_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/bookings", r.URL.Path)
		assert.Equal(t, "1", r.URL.Query().Get("page"))
		assert.Equal(t, "2", r.URL.Query().Get("per_page"))

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{
			"results": [
				{"booking_id": "b1", "check_in_date": "2024-01-10 12:00:00", "check_out_date": "2024-01-15 10:00:00", "owner_company": "Acme Stays", "owner_company_country": "UK"},
				{"booking_id": "b2", "check_in_date": "2024-01-12", "check_out_date": null, "owner_company": "Sunset Rentals", "owner_company_country": "USA"}
			],
			"page": 1, "per_page": 2, "total": 3
		}`)
	}))
	defer server.Close()

	client := NewClient(server.URL, 2, testLogger())
	page, err := client.FetchPage(context.Background(), 1)

	require.NoError(t, err)
	require.Len(t, page.Bookings, 2)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 3, page.Total)
	assert.False(t, page.LastPage())

	first := page.Bookings[0]
	assert.Equal(t, "b1", first.BookingID)
	assert.Equal(t, time.Date(2024, time.January, 10, 12, 0, 0, 0, time.UTC), first.CheckInDate)
	require.NotNil(t, first.CheckOutDate)
	assert.Equal(t, time.Date(2024, time.January, 15, 10, 0, 0, 0, time.UTC), *first.CheckOutDate)
	assert.Equal(t, "Acme Stays", first.OwnerCompany)
	assert.Equal(t, "UK", first.OwnerCompanyCountry)

	second := page.Bookings[1]
	assert.Nil(t, second.CheckOutDate, "null check_out_date should stay nil")
	assert.False(t, second.IsCheckedOut())
}

func TestFetchPage_LastPage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"results": [], "page": 2, "per_page": 50, "total": 60}`)
	}))
	defer server.Close()

	client := NewClient(server.URL, 50, testLogger())
	page, err := client.FetchPage(context.Background(), 2)

	require.NoError(t, err)
	assert.True(t, page.LastPage())
}

func TestFetchPage_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		fmt.Fprint(w, `{"results": [], "page": 1, "per_page": 50, "total": 0}`)
	}))
	defer server.Close()

	client := NewClient(server.URL, 50, testLogger())
	page, err := client.FetchPage(context.Background(), 1)

	require.NoError(t, err)
	assert.NotNil(t, page)
	assert.Equal(t, int32(2), calls.Load())
}

func TestFetchPage_ExhaustsRetries(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewClient(server.URL, 50, testLogger())
	page, err := client.FetchPage(context.Background(), 1)

	require.Error(t, err)
	assert.Nil(t, page)
	assert.Equal(t, int32(3), calls.Load())
}

func TestFetchPage_ClientErrorIsTerminal(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(server.URL, 50, testLogger())
	_, err := client.FetchPage(context.Background(), 1)

	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load(), "4xx responses must not be retried")
}

func TestFetchPage_SchemaDrift(t *testing.T) {
	testCases := []struct {
		name string
		body string
	}{
		{
			name: "unexpected extra column",
			body: `{"results": [{"booking_id": "b1", "check_in_date": "2024-01-10", "check_out_date": null, "owner_company": "Acme", "owner_company_country": "UK", "property_id": "p9"}], "page": 1, "per_page": 50, "total": 1}`,
		},
		{
			name: "missing column",
			body: `{"results": [{"booking_id": "b1", "check_in_date": "2024-01-10", "check_out_date": null, "owner_company": "Acme"}], "page": 1, "per_page": 50, "total": 1}`,
		},
		{
			name: "renamed column",
			body: `{"results": [{"id": "b1", "check_in_date": "2024-01-10", "check_out_date": null, "owner_company": "Acme", "owner_company_country": "UK"}], "page": 1, "per_page": 50, "total": 1}`,
		},
		{
			name: "unparseable check_in_date",
			body: `{"results": [{"booking_id": "b1", "check_in_date": "10 Jan 2024", "check_out_date": null, "owner_company": "Acme", "owner_company_country": "UK"}], "page": 1, "per_page": 50, "total": 1}`,
		},
		{
			name: "not json",
			body: `<html>maintenance</html>`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, tc.body)
			}))
			defer server.Close()

			client := NewClient(server.URL, 50, testLogger())
			_, err := client.FetchPage(context.Background(), 1)

			require.Error(t, err)
			assert.ErrorIs(t, err, apperrors.ErrSchemaMismatch)
		})
	}
}

func TestFetchPage_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := NewClient(server.URL, 50, testLogger())
	_, err := client.FetchPage(ctx, 1)

	require.Error(t, err)
}
