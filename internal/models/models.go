package models

import "github.com/dalfonso89/currency-converter-cli/internal/currency"

// RateSet is a successful fetch: every rate is relative to Base, and Base itself maps to 1.0.
type RateSet struct {
	Base     currency.Code
	Rates    map[currency.Code]float64
	Provider string
}

// Rate is a single cached rate, as listed to the user.
type Rate struct {
	Code  currency.Code
	Value float64
}

// Conversion is the outcome of converting Amount From one currency To another.
type Conversion struct {
	From      currency.Code
	To        currency.Code
	Amount    float64
	Converted float64
}
