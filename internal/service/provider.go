package service

import (
	"context"

	"github.com/dalfonso89/currency-converter-cli/internal/currency"
	"github.com/dalfonso89/currency-converter-cli/internal/models"
)

// ExchangeRateProvider defines the interface for exchange rate providers
type ExchangeRateProvider interface {
	GetName() string
	// GetRates fetches the latest rates relative to baseCurrency, keeping only the codes in
	// currencies. Failures are reported as *FetchError.
	GetRates(ctx context.Context, baseCurrency currency.Code, currencies []currency.Code) (models.RateSet, error)
}
