package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRate is a daily snapshot rate between an ordered currency pair.
// At most one row exists per (from, to, date); the rate table is only ever
// replaced wholesale, never updated in place.
type ExchangeRate struct {
	FromCurrency string          `json:"fromCurrency"`
	ToCurrency   string          `json:"toCurrency"`
	Rate         decimal.Decimal `json:"rate"`
	RateDate     time.Time       `json:"rateDate"` // date precision, midnight UTC
}
