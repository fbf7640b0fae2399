package money

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrInvalidCurrency is returned for currency codes that are not three uppercase letters.
var ErrInvalidCurrency = errors.New("invalid currency code")

// ErrInvalidAmount is returned for amounts that are not positive or carry more
// precision than the currency supports.
var ErrInvalidAmount = errors.New("invalid amount")

// exponents overrides the default minor-unit exponent of 2 for currencies that
// use a different one.
var exponents = map[string]int32{
	"BHD": 3,
	"CLP": 0,
	"JPY": 0,
	"KRW": 0,
	"KWD": 3,
	"OMR": 3,
	"VND": 0,
}

// ValidCurrency reports whether code is a well-formed ISO-4217 style code.
func ValidCurrency(code string) bool {
	if len(code) != 3 {
		return false
	}
	for _, c := range code {
		if c < 'A' || c > 'Z' {
			return false
		}
	}
	return true
}

// Exponent returns the number of minor-unit digits for a currency.
func Exponent(currency string) int32 {
	if e, ok := exponents[currency]; ok {
		return e
	}
	return 2
}

// ParseAmount converts a decimal string like "40.00" into minor units for the
// given currency. The amount must be strictly positive and must not carry more
// fractional digits than the currency's exponent.
func ParseAmount(s string, currency string) (int64, error) {
	if !ValidCurrency(currency) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidCurrency, currency)
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	if !d.IsPositive() {
		return 0, fmt.Errorf("%w: amount must be positive, got %q", ErrInvalidAmount, s)
	}

	exp := Exponent(currency)
	minor := d.Shift(exp)
	if !minor.IsInteger() {
		return 0, fmt.Errorf("%w: %q has more precision than %s allows", ErrInvalidAmount, s, currency)
	}
	if !minor.BigInt().IsInt64() {
		return 0, fmt.Errorf("%w: %q out of range", ErrInvalidAmount, s)
	}

	return minor.IntPart(), nil
}

// FormatAmount renders minor units as a decimal string with the currency's
// full minor-unit precision, e.g. 4000 USD -> "40.00".
func FormatAmount(minor int64, currency string) string {
	exp := Exponent(currency)
	return decimal.New(minor, -exp).StringFixed(exp)
}
