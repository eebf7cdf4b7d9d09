package domain

import "github.com/shopspring/decimal"

// CountryPolicy ties an owning company's country to the currency its bookings
// are billed in and the fee schedule applied to them.
type CountryPolicy struct {
	Currency   string
	BookingFee decimal.Decimal // flat fee charged per booking, in Currency
	MinimumFee decimal.Decimal // flat monthly minimum charge, in Currency
}

var countryPolicies = map[string]CountryPolicy{
	"UK": {
		Currency:   "GBP",
		BookingFee: decimal.NewFromInt(10),
		MinimumFee: decimal.NewFromInt(100),
	},
	"USA": {
		Currency:   "USD",
		BookingFee: decimal.NewFromInt(14),
		MinimumFee: decimal.NewFromInt(140),
	},
}

// defaultCountryPolicy applies to every country without an explicit entry.
// There is deliberately no validation that the code is a real country.
var defaultCountryPolicy = CountryPolicy{
	Currency:   "EUR",
	BookingFee: decimal.NewFromInt(12),
	MinimumFee: decimal.NewFromInt(120),
}

// PolicyForCountry returns the billing policy for a country code.
// It is a total function: unrecognized codes fall into the EUR bucket.
func PolicyForCountry(country string) CountryPolicy {
	if p, ok := countryPolicies[country]; ok {
		return p
	}
	return defaultCountryPolicy
}

// MinimumFeeForCurrency returns the monthly minimum fee denominated in the
// given currency, or false if no policy bills in that currency.
func MinimumFeeForCurrency(currency string) (decimal.Decimal, bool) {
	if currency == defaultCountryPolicy.Currency {
		return defaultCountryPolicy.MinimumFee, true
	}
	for _, p := range countryPolicies {
		if p.Currency == currency {
			return p.MinimumFee, true
		}
	}
	return decimal.Decimal{}, false
}
