package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	defaultAPIBaseURL            = "https://v6.exchangerate-api.com/v6"
	defaultConnectTimeoutSeconds = 10
	defaultRequestTimeoutSeconds = 30
	defaultLogLevel              = "error"
	defaultLanguage              = "es"
)

// ErrMissingAPIKey is returned by Validate when no provider credential is configured.
var ErrMissingAPIKey = errors.New("api_key is required")

// ExchangeRateProvider holds the settings of the remote rate provider
type ExchangeRateProvider struct {
	Name           string
	BaseURL        string
	APIKey         string
	ConnectTimeout time.Duration
	Timeout        time.Duration
}

// Config holds all configuration for the application
type Config struct {
	LogLevel string
	LogFile  string
	Language string

	Provider ExchangeRateProvider
}

// Load loads configuration from an optional .env file, an optional config.yaml and the environment
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetDefault("api_key", "")
	v.SetDefault("api_base_url", defaultAPIBaseURL)
	v.SetDefault("connect_timeout_seconds", defaultConnectTimeoutSeconds)
	v.SetDefault("request_timeout_seconds", defaultRequestTimeoutSeconds)
	v.SetDefault("log_level", defaultLogLevel)
	v.SetDefault("log_file", "")
	v.SetDefault("ui_language", defaultLanguage)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	return &Config{
		LogLevel: v.GetString("log_level"),
		LogFile:  v.GetString("log_file"),
		Language: v.GetString("ui_language"),

		Provider: ExchangeRateProvider{
			Name:           "exchangerate-api",
			BaseURL:        strings.TrimRight(v.GetString("api_base_url"), "/"),
			APIKey:         v.GetString("api_key"),
			ConnectTimeout: seconds(v.GetInt("connect_timeout_seconds"), defaultConnectTimeoutSeconds),
			Timeout:        seconds(v.GetInt("request_timeout_seconds"), defaultRequestTimeoutSeconds),
		},
	}, nil
}

// Validate checks the settings the application cannot start without
func (c *Config) Validate() error {
	if c.Provider.APIKey == "" {
		return ErrMissingAPIKey
	}
	if c.Provider.BaseURL == "" {
		return errors.New("api_base_url is required")
	}
	return nil
}

// seconds converts n to a duration, falling back when n is not positive
func seconds(n, fallback int) time.Duration {
	if n <= 0 {
		n = fallback
	}
	return time.Duration(n) * time.Second
}
