package menu

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/dalfonso89/currency-converter-cli/internal/console"
	"github.com/dalfonso89/currency-converter-cli/internal/currency"
	"github.com/dalfonso89/currency-converter-cli/internal/i18n"
	"github.com/dalfonso89/currency-converter-cli/internal/models"
	"github.com/dalfonso89/currency-converter-cli/internal/service"

	"github.com/sirupsen/logrus"
)

const (
	optionConvert = iota + 1
	optionViewRates
	optionExit
)

var options = []string{i18n.MenuConvert, i18n.MenuViewRates, i18n.MenuExit}

// RatesService is what the menu needs from the rate cache owner
type RatesService interface {
	HasRates() bool
	EnsureRates(ctx context.Context) error
	Convert(amount float64, from, to currency.Code) (models.Conversion, error)
	Rates() []models.Rate
	Currencies() []currency.Code
}

// Controller runs the interactive menu loop
type Controller struct {
	console *console.Console
	rates   RatesService
	logger  *logrus.Logger
}

// NewController creates a menu controller
func NewController(console *console.Console, rates RatesService, logger *logrus.Logger) *Controller {
	return &Controller{
		console: console,
		rates:   rates,
		logger:  logger,
	}
}

// Run loops over the main menu until the user exits or input ends. Fetch and conversion
// failures are reported and the menu is shown again; only console I/O failures are returned.
func (c *Controller) Run(ctx context.Context) error {
	c.console.Println(i18n.Welcome)

	for {
		c.showMenu()
		choice, err := c.console.ReadChoice(optionConvert, optionExit)
		if err == nil {
			switch choice {
			case optionConvert:
				err = c.convert(ctx)
			case optionViewRates:
				err = c.viewRates(ctx)
			case optionExit:
				c.console.Println(i18n.Farewell)
				return nil
			}
		}

		if errors.Is(err, io.EOF) {
			c.logger.Debug("Input closed, exiting")
			c.console.Blank()
			c.console.Println(i18n.Farewell)
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func (c *Controller) showMenu() {
	c.console.Blank()
	c.console.Println(i18n.MainMenuHeader)
	for i, option := range options {
		c.console.PrintItem(i+1, c.console.Text(option))
	}
	c.console.Print(i18n.ChooseOption)
}

func (c *Controller) convert(ctx context.Context) error {
	if !c.ensureRates(ctx) {
		return nil
	}

	c.console.Blank()
	c.console.Println(i18n.ConvertHeader)
	c.console.Print(i18n.EnterAmount)
	amount, err := c.console.ReadAmount()
	if err != nil {
		return err
	}

	currencies := c.rates.Currencies()
	c.console.Println(i18n.SelectSource)
	from, err := c.console.SelectCurrency(currencies)
	if err != nil {
		return err
	}
	c.console.Println(i18n.SelectTarget)
	to, err := c.console.SelectCurrency(currencies)
	if err != nil {
		return err
	}

	conversion, err := c.rates.Convert(amount, from, to)
	if err != nil {
		c.logger.WithFields(logrus.Fields{"from": from, "to": to}).Warnf("Conversion failed: %v", err)
		c.console.Failure(i18n.RateUnavailable, fmt.Sprintf("%s/%s", from, to))
		return nil
	}

	c.console.PrintConversion(conversion)
	return nil
}

func (c *Controller) viewRates(ctx context.Context) error {
	if !c.ensureRates(ctx) {
		return nil
	}

	c.console.Blank()
	c.console.Println(i18n.RatesHeader)
	for _, rate := range c.rates.Rates() {
		c.console.PrintRate(rate)
	}
	return nil
}

// ensureRates fetches rates on first use and reports whether any are available
func (c *Controller) ensureRates(ctx context.Context) bool {
	if c.rates.HasRates() {
		return true
	}

	c.console.Println(i18n.Refreshing)
	if err := c.rates.EnsureRates(ctx); err != nil {
		c.reportFetchError(err)
	} else {
		c.console.Success(i18n.Refreshed)
	}

	if !c.rates.HasRates() {
		c.console.Failure(i18n.NoRates)
		return false
	}
	return true
}

func (c *Controller) reportFetchError(err error) {
	var fetchErr *service.FetchError
	if !errors.As(err, &fetchErr) {
		c.console.Failure(i18n.FetchFailed, err.Error())
		return
	}

	switch fetchErr.Type {
	case service.ErrorTypeHTTPStatus:
		c.console.Failure(i18n.StatusCode, strconv.Itoa(fetchErr.StatusCode))
		c.console.Failure(i18n.StatusBody, fetchErr.Body)
	case service.ErrorTypeProvider:
		c.console.Failure(i18n.RequestUnsuccessful)
		c.console.Failure(i18n.ProviderError, fetchErr.Message)
	case service.ErrorTypeMalformedPayload:
		c.console.Failure(i18n.MalformedResponse, fetchErr.Error())
	default:
		reason := fetchErr.Error()
		if fetchErr.Cause != nil {
			reason = fetchErr.Cause.Error()
		}
		c.console.Failure(i18n.FetchFailed, reason)
	}
}
