package converter

import (
	"errors"
	"fmt"

	"github.com/dalfonso89/currency-converter-cli/internal/currency"
)

// ErrRateUnavailable indicates that no rate is known for one side of the conversion.
var ErrRateUnavailable = errors.New("rate unavailable")

// RateLookup returns the rate of a currency relative to a common base.
type RateLookup interface {
	Get(code currency.Code) (float64, error)
}

// Convert returns amount expressed in to, using rates relative to the same base:
// (amount / rate[from]) * rate[to]. The result is not rounded.
func Convert(rates RateLookup, amount float64, from, to currency.Code) (float64, error) {
	fromRate, err := lookup(rates, from)
	if err != nil {
		return 0, err
	}
	toRate, err := lookup(rates, to)
	if err != nil {
		return 0, err
	}

	if from == to {
		return amount, nil
	}
	return (amount / fromRate) * toRate, nil
}

func lookup(rates RateLookup, code currency.Code) (float64, error) {
	rate, err := rates.Get(code)
	if err != nil {
		return 0, fmt.Errorf("%w for %s: %v", ErrRateUnavailable, code, err)
	}
	if rate <= 0 {
		return 0, fmt.Errorf("%w for %s: non-positive rate %v", ErrRateUnavailable, code, rate)
	}
	return rate, nil
}
