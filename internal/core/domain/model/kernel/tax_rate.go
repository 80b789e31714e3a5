package kernel

import (
	"storefront/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// TaxRate is a fraction in [0, 1], e.g. 0.10 for 10%.
// The zero value is a valid rate of 0.
type TaxRate struct {
	rate decimal.Decimal
}

// NewTaxRate validates that rate lies in [0, 1].
func NewTaxRate(rate decimal.Decimal) (TaxRate, error) {
	if rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(1)) {
		return TaxRate{}, errs.NewValueIsOutOfRangeError("tax rate", rate.String(), 0, 1)
	}
	return TaxRate{rate: rate}, nil
}

// TaxRateFromString parses a decimal string such as "0.10".
func TaxRateFromString(s string) (TaxRate, error) {
	rate, err := decimal.NewFromString(s)
	if err != nil {
		return TaxRate{}, errs.NewValueIsInvalidErrorWithCause("tax rate", err)
	}
	return NewTaxRate(rate)
}

// MustTaxRate is TaxRateFromString for literals known to be valid. It panics otherwise.
func MustTaxRate(s string) TaxRate {
	r, err := TaxRateFromString(s)
	if err != nil {
		panic(err)
	}
	return r
}

// Apply returns round2(amount * rate), rounding half away from zero.
func (r TaxRate) Apply(amount Money) Money {
	return Money{amount: amount.Amount().Mul(r.rate).Round(moneyPlaces)}
}

// Decimal exposes the rate value.
func (r TaxRate) Decimal() decimal.Decimal {
	return r.rate
}

// IsEqual compares rates numerically.
func (r TaxRate) IsEqual(other TaxRate) bool {
	return r.rate.Equal(other.rate)
}

// String formats the rate as a plain decimal, e.g. "0.1".
func (r TaxRate) String() string {
	return r.rate.String()
}
