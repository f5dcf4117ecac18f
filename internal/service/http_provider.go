package service

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/dalfonso89/currency-converter-cli/internal/config"
	"github.com/dalfonso89/currency-converter-cli/internal/currency"
	"github.com/dalfonso89/currency-converter-cli/internal/models"

	"github.com/sirupsen/logrus"
)

const resultSuccess = "success"

// HTTPExchangeRateProvider fetches rates from an ExchangeRate-API compatible endpoint:
// GET {base_url}/{api_key}/latest/{BASE}
type HTTPExchangeRateProvider struct {
	configuration config.ExchangeRateProvider
	logger        *logrus.Logger
	httpClient    *http.Client
}

// NewHTTPExchangeRateProvider creates a new HTTP exchange rate provider
func NewHTTPExchangeRateProvider(configuration config.ExchangeRateProvider, logger *logrus.Logger) *HTTPExchangeRateProvider {
	dialer := &net.Dialer{
		Timeout:   configuration.ConnectTimeout,
		KeepAlive: 30 * time.Second,
	}
	httpTransport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		DialContext:         dialer.DialContext,
		TLSHandshakeTimeout: configuration.ConnectTimeout,
		IdleConnTimeout:     90 * time.Second,
	}
	return &HTTPExchangeRateProvider{
		configuration: configuration,
		logger:        logger,
		httpClient:    &http.Client{Timeout: configuration.Timeout, Transport: httpTransport},
	}
}

// GetName returns the provider name
func (provider *HTTPExchangeRateProvider) GetName() string {
	return provider.configuration.Name
}

// GetRates issues a single request for the latest rates; it is never retried.
func (provider *HTTPExchangeRateProvider) GetRates(ctx context.Context, baseCurrency currency.Code, currencies []currency.Code) (models.RateSet, error) {
	endpoint, err := provider.buildURL(baseCurrency)
	if err != nil {
		return models.RateSet{}, &FetchError{Type: ErrorTypeUnknown, Message: "failed to build request URL", Cause: err}
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return models.RateSet{}, &FetchError{Type: ErrorTypeUnknown, Message: "failed to create request", Cause: err}
	}
	request.Header.Set("Accept", "application/json")

	provider.logger.WithFields(logrus.Fields{
		"provider": provider.GetName(),
		"base":     baseCurrency,
	}).Debug("Fetching exchange rates")

	response, err := provider.httpClient.Do(request)
	if err != nil {
		return models.RateSet{}, networkError(ctx, "failed to make request", err)
	}
	defer response.Body.Close()

	body, err := io.ReadAll(response.Body)
	if response.StatusCode != http.StatusOK {
		return models.RateSet{}, &FetchError{
			Type:       ErrorTypeHTTPStatus,
			Message:    "provider returned unexpected status",
			StatusCode: response.StatusCode,
			Body:       string(body),
		}
	}
	if err != nil {
		return models.RateSet{}, networkError(ctx, "failed to read response body", err)
	}

	return provider.parseResponse(body, currencies)
}

// buildURL keeps the API key as a path segment, escaped
func (provider *HTTPExchangeRateProvider) buildURL(baseCurrency currency.Code) (string, error) {
	return url.JoinPath(provider.configuration.BaseURL, provider.configuration.APIKey, "latest", baseCurrency.String())
}

// parseResponse checks every field it relies on instead of assuming zero values.
func (provider *HTTPExchangeRateProvider) parseResponse(body []byte, currencies []currency.Code) (models.RateSet, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return models.RateSet{}, &FetchError{Type: ErrorTypeMalformedPayload, Message: "failed to parse response", Cause: err}
	}
	if fields == nil {
		return models.RateSet{}, malformedPayload("response is not a JSON object")
	}

	var result string
	if raw, ok := fields["result"]; !ok || json.Unmarshal(raw, &result) != nil || result != resultSuccess {
		return models.RateSet{}, &FetchError{Type: ErrorTypeProvider, Message: providerErrorMessage(fields)}
	}

	base, err := parseBase(fields)
	if err != nil {
		return models.RateSet{}, err
	}

	rawRates, ok := fields["conversion_rates"]
	if !ok {
		return models.RateSet{}, malformedPayload("missing conversion_rates")
	}
	var conversionRates map[string]json.RawMessage
	if err := json.Unmarshal(rawRates, &conversionRates); err != nil || conversionRates == nil {
		return models.RateSet{}, malformedPayload("conversion_rates is not an object")
	}

	rates := make(map[currency.Code]float64, len(currencies)+1)
	for _, code := range currencies {
		raw, ok := conversionRates[code.String()]
		if !ok {
			continue
		}
		var rate float64
		if err := json.Unmarshal(raw, &rate); err != nil {
			return models.RateSet{}, malformedPayload("rate for %s is not a number", code)
		}
		if rate <= 0 {
			provider.logger.WithField("currency", code).Warnf("Ignoring non-positive rate %v", rate)
			continue
		}
		rates[code] = rate
	}
	rates[base] = 1.0

	return models.RateSet{
		Base:     base,
		Rates:    rates,
		Provider: provider.GetName(),
	}, nil
}

// parseBase reads base_code, falling back to base
func parseBase(fields map[string]json.RawMessage) (currency.Code, error) {
	for _, key := range []string{"base_code", "base"} {
		raw, ok := fields[key]
		if !ok {
			continue
		}
		var base string
		if err := json.Unmarshal(raw, &base); err != nil || base == "" {
			return "", malformedPayload("%s is not a currency code", key)
		}
		return currency.Code(base), nil
	}
	return "", malformedPayload("missing base currency")
}

// providerErrorMessage extracts the reason of a business failure
func providerErrorMessage(fields map[string]json.RawMessage) string {
	if raw, ok := fields["error"]; ok {
		var providerError struct {
			Info *string `json:"info"`
		}
		if json.Unmarshal(raw, &providerError) == nil && providerError.Info != nil {
			return *providerError.Info
		}
	}
	if raw, ok := fields["error-type"]; ok {
		var errorType string
		if json.Unmarshal(raw, &errorType) == nil && errorType != "" {
			return errorType
		}
	}
	return "unknown error"
}

var _ ExchangeRateProvider = (*HTTPExchangeRateProvider)(nil)
