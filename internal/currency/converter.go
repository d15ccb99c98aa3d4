package currency

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var ErrUnknownCurrency = errors.New("unknown currency")

// Rates are anchored on EUR the way the ECB publishes them.
const baseCurrency = "EUR"

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=RateSource
type RateSource interface {
	Rate(from, to string) (decimal.Decimal, error)
}

// Converter turns a rate lookup into a fixed-precision coefficient and
// applies it to monetary amounts. The rate source is injected; keeping
// it fresh is the caller's job.
type Converter struct {
	rates RateSource
}

func NewConverter(rates RateSource) *Converter {
	return &Converter{rates: rates}
}

// Coefficient returns the EUR-to-target exchange rate rounded to four
// decimal places. Unknown currencies surface ErrUnknownCurrency with
// the offending code.
func (c *Converter) Coefficient(target string) (decimal.Decimal, error) {
	coeff, err := c.rates.Rate(baseCurrency, target)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("coefficient for %s: %w", target, err)
	}

	return coeff.Round(4), nil
}

// Convert multiplies an amount by a coefficient and rounds half-up to
// two decimal places.
func Convert(amount, coefficient decimal.Decimal) decimal.Decimal {
	return amount.Mul(coefficient).Round(2)
}
