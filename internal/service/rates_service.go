package service

import (
	"context"
	"fmt"

	"github.com/dalfonso89/currency-converter-cli/internal/cache"
	"github.com/dalfonso89/currency-converter-cli/internal/config"
	"github.com/dalfonso89/currency-converter-cli/internal/converter"
	"github.com/dalfonso89/currency-converter-cli/internal/currency"
	"github.com/dalfonso89/currency-converter-cli/internal/models"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

// RatesService owns the rate cache. Rates are fetched once and reused until the next
// explicit Refresh; a failed refresh leaves the cache exactly as it was.
type RatesService struct {
	logger     *logrus.Logger
	provider   ExchangeRateProvider
	base       currency.Code
	currencies []currency.Code

	cache *cache.RateCache

	singleFlightGroup singleflight.Group
}

// NewRatesService creates a rates service backed by the configured HTTP provider
func NewRatesService(configuration *config.Config, logger *logrus.Logger) *RatesService {
	return NewRatesServiceWithProvider(NewHTTPExchangeRateProvider(configuration.Provider, logger), logger)
}

// NewRatesServiceWithProvider creates a rates service over provider, quoting the supported
// currencies against currency.Base
func NewRatesServiceWithProvider(provider ExchangeRateProvider, logger *logrus.Logger) *RatesService {
	currencies := currency.Supported()
	return &RatesService{
		logger:     logger,
		provider:   provider,
		base:       currency.Base,
		currencies: currencies,
		cache:      cache.New(currencies),
	}
}

// HasRates reports whether the cache has been populated
func (ratesService *RatesService) HasRates() bool {
	return !ratesService.cache.IsEmpty()
}

// EnsureRates populates the cache on first use
func (ratesService *RatesService) EnsureRates(ctx context.Context) error {
	if ratesService.HasRates() {
		return nil
	}
	return ratesService.Refresh(ctx)
}

// Refresh fetches the latest rates and replaces the whole cache with them
func (ratesService *RatesService) Refresh(ctx context.Context) error {
	cacheKey := "rates:" + ratesService.base.String()
	result, err, _ := ratesService.singleFlightGroup.Do(cacheKey, func() (interface{}, error) {
		return ratesService.provider.GetRates(ctx, ratesService.base, ratesService.currencies)
	})
	if err != nil {
		ratesService.logger.WithFields(logrus.Fields{
			"provider": ratesService.provider.GetName(),
			"type":     classifyError(err).String(),
		}).Warnf("Failed to refresh exchange rates: %v", err)
		return err
	}

	rateSet := result.(models.RateSet)
	ratesService.cache.ReplaceAll(rateSet.Base, rateSet.Rates)

	ratesService.logger.WithFields(logrus.Fields{
		"provider": rateSet.Provider,
		"base":     rateSet.Base,
		"rates":    ratesService.cache.Len(),
	}).Info("Exchange rates refreshed")
	return nil
}

// Convert converts amount between two cached currencies of the supported set
func (ratesService *RatesService) Convert(amount float64, from, to currency.Code) (models.Conversion, error) {
	for _, code := range []currency.Code{from, to} {
		if !currency.IsSupported(code) {
			return models.Conversion{}, fmt.Errorf("%w: %s", currency.ErrUnsupportedCurrency, code)
		}
	}

	converted, err := converter.Convert(ratesService.cache, amount, from, to)
	if err != nil {
		return models.Conversion{}, err
	}
	return models.Conversion{
		From:      from,
		To:        to,
		Amount:    amount,
		Converted: converted,
	}, nil
}

// Rates lists the cached rates in display order
func (ratesService *RatesService) Rates() []models.Rate {
	rates := make([]models.Rate, 0, ratesService.cache.Len())
	ratesService.cache.ForEach(func(code currency.Code, rate float64) {
		rates = append(rates, models.Rate{Code: code, Value: rate})
	})
	return rates
}

// Currencies returns the currencies offered for conversion, in menu order
func (ratesService *RatesService) Currencies() []currency.Code {
	codes := make([]currency.Code, len(ratesService.currencies))
	copy(codes, ratesService.currencies)
	return codes
}
