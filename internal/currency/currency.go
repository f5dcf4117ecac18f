package currency

import "errors"

// Code is a three letter ISO 4217 currency code.
type Code string

// Base is the currency every cached rate is expressed against.
const Base Code = "USD"

// ErrUnsupportedCurrency is returned for codes outside the supported set.
var ErrUnsupportedCurrency = errors.New("unsupported currency")

var supported = []Code{"ARS", "BOB", "BRL", "CLP", "COP", "USD"}

// Supported returns the supported currency set in its canonical menu order.
// The returned slice is a copy.
func Supported() []Code {
	codes := make([]Code, len(supported))
	copy(codes, supported)
	return codes
}

// IsSupported reports whether code belongs to the supported set.
func IsSupported(code Code) bool {
	for _, c := range supported {
		if c == code {
			return true
		}
	}
	return false
}

func (c Code) String() string {
	return string(c)
}
