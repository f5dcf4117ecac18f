package testutils

import (
	"io"
	"time"

	"github.com/dalfonso89/currency-converter-cli/internal/config"
	"github.com/dalfonso89/currency-converter-cli/internal/logger"

	"github.com/sirupsen/logrus"
)

// MockLogger creates a debug logger that discards its output
func MockLogger() *logrus.Logger {
	return logger.New("debug", io.Discard)
}

// MockConfig creates a configuration pointing at baseURL
func MockConfig(baseURL string) *config.Config {
	return &config.Config{
		LogLevel: "debug",
		Language: "en",

		Provider: config.ExchangeRateProvider{
			Name:           "test-provider",
			BaseURL:        baseURL,
			APIKey:         "test-api-key",
			ConnectTimeout: 2 * time.Second,
			Timeout:        5 * time.Second,
		},
	}
}
