package dto

import (
	"time"

	"github.com/jwlsn/booking_revenue_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ListRatesParams defines the query parameters for listing exchange rates.
type ListRatesParams struct {
	From       string `form:"from" binding:"omitempty,len=3,uppercase"`
	To         string `form:"to" binding:"omitempty,len=3,uppercase"`
	OnOrBefore string `form:"onOrBefore" binding:"omitempty,datetime=2006-01-02"`
	Page       int    `form:"page,default=1" binding:"omitempty,min=1"`
	PageSize   int    `form:"pageSize,default=50" binding:"omitempty,min=1,max=500"`
}

// MonthEndRatesParams defines the query parameters for the month-end rate lookup.
type MonthEndRatesParams struct {
	Month string `form:"month" binding:"required,yyyymm"`
}

// ExchangeRateResponse defines the structure for API responses containing exchange rate details.
type ExchangeRateResponse struct {
	FromCurrency string          `json:"fromCurrency"`
	ToCurrency   string          `json:"toCurrency"`
	Rate         decimal.Decimal `json:"rate"`
	RateDate     string          `json:"rateDate"` // YYYY-MM-DD
}

// ListExchangeRateResponse is a paginated list of exchange rates.
type ListExchangeRateResponse struct {
	Rates []ExchangeRateResponse `json:"rates"`
	Total int                    `json:"total"`
}

// ToExchangeRateResponse converts a domain.ExchangeRate to ExchangeRateResponse DTO
func ToExchangeRateResponse(rate domain.ExchangeRate) ExchangeRateResponse {
	return ExchangeRateResponse{
		FromCurrency: rate.FromCurrency,
		ToCurrency:   rate.ToCurrency,
		Rate:         rate.Rate,
		RateDate:     rate.RateDate.Format("2006-01-02"),
	}
}

// ToListExchangeRateResponse converts a slice of domain.ExchangeRate to the list DTO.
func ToListExchangeRateResponse(rates []domain.ExchangeRate, total int) ListExchangeRateResponse {
	responses := make([]ExchangeRateResponse, len(rates))
	for i, rate := range rates {
		responses[i] = ToExchangeRateResponse(rate)
	}
	return ListExchangeRateResponse{Rates: responses, Total: total}
}

// ParseOnOrBefore converts the optional onOrBefore filter to a time pointer.
func (p ListRatesParams) ParseOnOrBefore() (*time.Time, error) {
	if p.OnOrBefore == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", p.OnOrBefore)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
