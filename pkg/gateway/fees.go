package gateway

import "github.com/cbailey/wallet-ledger/pkg/money"

// FeeSchedule is a percentage-plus-fixed fee, the shape both supported
// providers publish. The fixed part is quoted in major units of two decimal
// places and scaled to the currency's exponent.
type FeeSchedule struct {
	PercentBps int64 // fee percentage in basis points, e.g. 290 = 2.9%
	FixedCents int64 // fixed component in hundredths of a major unit
}

// Apply computes the fee in minor units for an amount in the given currency,
// rounding half up.
func (f FeeSchedule) Apply(amountMinor int64, currency string) int64 {
	fee := (amountMinor*f.PercentBps + 5000) / 10000

	fixed := f.FixedCents
	switch exp := money.Exponent(currency); {
	case exp > 2:
		for i := int32(2); i < exp; i++ {
			fixed *= 10
		}
	case exp < 2:
		for i := exp; i < 2; i++ {
			fixed = (fixed + 5) / 10
		}
	}

	return fee + fixed
}
