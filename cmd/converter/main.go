package main

import (
	"context"
	"log"
	"os"

	"github.com/dalfonso89/currency-converter-cli/internal/config"
	"github.com/dalfonso89/currency-converter-cli/internal/console"
	"github.com/dalfonso89/currency-converter-cli/internal/i18n"
	"github.com/dalfonso89/currency-converter-cli/internal/logger"
	"github.com/dalfonso89/currency-converter-cli/internal/menu"
	"github.com/dalfonso89/currency-converter-cli/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Initialize logger
	logger, closeLogger, err := logger.Open(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		log.Fatalf("Failed to open log file: %v", err)
	}

	ratesService := service.NewRatesService(cfg, logger)
	con := console.New(os.Stdin, os.Stdout, i18n.NewPrinter(cfg.Language), logger)
	controller := menu.NewController(con, ratesService, logger)

	logger.WithField("provider", cfg.Provider.Name).Info("Starting currency converter")
	err = controller.Run(context.Background())
	if err != nil {
		logger.Errorf("Console session failed: %v", err)
	}
	_ = closeLogger()

	if err != nil {
		os.Exit(1)
	}
}
