package converter

import (
	"fmt"
	"testing"

	"github.com/dalfonso89/currency-converter-cli/internal/currency"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticRates map[currency.Code]float64

func (s staticRates) Get(code currency.Code) (float64, error) {
	rate, ok := s[code]
	if !ok {
		return 0, fmt.Errorf("no rate for %s", code)
	}
	return rate, nil
}

var testRates = staticRates{
	"USD": 1.0,
	"ARS": 900.0,
	"BOB": 6.91,
	"BRL": 5.0,
	"CLP": 943.27,
	"COP": 3912.5,
}

func TestConvert_KnownValues(t *testing.T) {
	tests := []struct {
		name   string
		amount float64
		from   currency.Code
		to     currency.Code
		want   float64
	}{
		{"usd to ars", 100, "USD", "ARS", 90000},
		{"ars to usd", 90000, "ARS", "USD", 100},
		{"cross rate", 10, "BRL", "ARS", 1800},
		{"negative amount", -50, "USD", "BRL", -250},
		{"zero amount", 0, "COP", "CLP", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Convert(testRates, tt.amount, tt.from, tt.to)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestConvert_Identity(t *testing.T) {
	for _, code := range currency.Supported() {
		t.Run(code.String(), func(t *testing.T) {
			got, err := Convert(testRates, 123.456, code, code)
			require.NoError(t, err)
			assert.Equal(t, 123.456, got)
		})
	}
}

func TestConvert_RoundTrip(t *testing.T) {
	amounts := []float64{0.01, 1, 99.99, 12345.678}

	for _, from := range currency.Supported() {
		for _, to := range currency.Supported() {
			for _, amount := range amounts {
				there, err := Convert(testRates, amount, from, to)
				require.NoError(t, err)
				back, err := Convert(testRates, there, to, from)
				require.NoError(t, err)
				assert.InEpsilon(t, amount, back, 1e-12, "%s -> %s -> %s", from, to, from)
			}
		}
	}
}

func TestConvert_RateUnavailable(t *testing.T) {
	partial := staticRates{"USD": 1.0, "ARS": 900.0, "BRL": 0}

	tests := []struct {
		name string
		from currency.Code
		to   currency.Code
	}{
		{"missing source", "CLP", "USD"},
		{"missing destination", "USD", "COP"},
		{"missing both", "CLP", "CLP"},
		{"non-positive rate", "BRL", "USD"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Convert(partial, 10, tt.from, tt.to)
			require.ErrorIs(t, err, ErrRateUnavailable)
		})
	}
}
