package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/dalfonso89/currency-converter-cli/internal/currency"
	"github.com/dalfonso89/currency-converter-cli/internal/i18n"
	"github.com/dalfonso89/currency-converter-cli/internal/models"

	"github.com/fatih/color"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/text/message"
)

// Console reads user input line by line and writes localized text.
// Every read blocks until a full line is available; io.EOF is returned once input ends.
type Console struct {
	in      *bufio.Reader
	out     io.Writer
	printer *message.Printer
	logger  *logrus.Logger

	success *color.Color
	failure *color.Color
}

// New creates a console over in and out
func New(in io.Reader, out io.Writer, printer *message.Printer, logger *logrus.Logger) *Console {
	return &Console{
		in:      bufio.NewReader(in),
		out:     out,
		printer: printer,
		logger:  logger,
		success: color.New(color.FgGreen),
		failure: color.New(color.FgRed),
	}
}

// DisableColor turns off ANSI colouring regardless of the terminal
func (c *Console) DisableColor() {
	c.success.DisableColor()
	c.failure.DisableColor()
}

// Print writes the localized text for key without a trailing newline, as prompts do
func (c *Console) Print(key string, args ...interface{}) {
	c.printer.Fprintf(c.out, key, args...)
}

// Println writes the localized text for key on its own line
func (c *Console) Println(key string, args ...interface{}) {
	c.printer.Fprintf(c.out, key, args...)
	fmt.Fprintln(c.out)
}

// Blank writes an empty line
func (c *Console) Blank() {
	fmt.Fprintln(c.out)
}

// Success writes the localized text for key highlighted as a success
func (c *Console) Success(key string, args ...interface{}) {
	c.success.Fprintln(c.out, c.printer.Sprintf(key, args...))
}

// Failure writes the localized text for key highlighted as an error
func (c *Console) Failure(key string, args ...interface{}) {
	c.failure.Fprintln(c.out, c.printer.Sprintf(key, args...))
}

// PrintItem writes a numbered menu entry
func (c *Console) PrintItem(number int, text string) {
	fmt.Fprintf(c.out, "%d. %s\n", number, text)
}

// PrintConversion writes "<amount> <FROM> = <result> <TO>" with two decimals
func (c *Console) PrintConversion(conversion models.Conversion) {
	fmt.Fprintf(c.out, "%s %s = %s %s\n",
		FormatAmount(conversion.Amount), conversion.From,
		FormatAmount(conversion.Converted), conversion.To)
}

// PrintRate writes "<CODE>: <rate>" with four decimals
func (c *Console) PrintRate(rate models.Rate) {
	fmt.Fprintf(c.out, "%s: %s\n", rate.Code, FormatRate(rate.Value))
}

// ReadChoice reads lines until one holds an integer within [low, high]
func (c *Console) ReadChoice(low, high int) (int, error) {
	for {
		line, err := c.readLine()
		if err != nil {
			return 0, err
		}

		choice, err := strconv.Atoi(line)
		if err != nil {
			c.logger.WithField("input", line).Debug("Rejected non-numeric choice")
			c.Print(i18n.EnterValidNumber)
			continue
		}
		if choice < low || choice > high {
			c.logger.WithField("input", line).Debug("Rejected out of range choice")
			c.Print(i18n.EnterNumberInRange, strconv.Itoa(low), strconv.Itoa(high))
			continue
		}
		return choice, nil
	}
}

// ReadAmount reads lines until one holds a finite decimal number.
// Negative amounts are accepted.
func (c *Console) ReadAmount() (float64, error) {
	for {
		line, err := c.readLine()
		if err != nil {
			return 0, err
		}

		amount, ok := ParseAmount(line)
		if !ok {
			c.logger.WithField("input", line).Debug("Rejected amount")
			c.Print(i18n.EnterValidNumber)
			continue
		}
		return amount, nil
	}
}

// SelectCurrency lists codes as a 1-based menu and returns the chosen one
func (c *Console) SelectCurrency(codes []currency.Code) (currency.Code, error) {
	if len(codes) == 0 {
		return "", errors.New("no currencies to select from")
	}
	for i, code := range codes {
		c.PrintItem(i+1, code.String())
	}

	choice, err := c.ReadChoice(1, len(codes))
	if err != nil {
		return "", err
	}
	return codes[choice-1], nil
}

// readLine returns the next line without its line terminator. A final line lacking a
// newline is still returned; io.EOF only comes once nothing is left.
func (c *Console) readLine() (string, error) {
	line, err := c.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// ParseAmount parses a decimal number written with a decimal point, or with a decimal
// comma when no point is present ("12,5"). A comma followed by exactly three digits
// ("1,000") reads as a thousands separator and is rejected as ambiguous.
func ParseAmount(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if !strings.Contains(s, ".") && strings.Count(s, ",") == 1 {
		if isThousandsGroup(s[strings.Index(s, ",")+1:]) {
			return 0, false
		}
		s = strings.Replace(s, ",", ".", 1)
	}

	amount, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 0, false
	}
	return amount, true
}

func isThousandsGroup(s string) bool {
	if len(s) != 3 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// FormatAmount renders v with two decimals, rounding half away from zero
func FormatAmount(v float64) string {
	return formatFixed(v, 2)
}

// FormatRate renders v with four decimals, rounding half away from zero
func FormatRate(v float64) string {
	return formatFixed(v, 4)
}

func formatFixed(v float64, places int32) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', int(places), 64)
	}
	return decimal.NewFromFloat(v).StringFixed(places)
}

// Text returns the localized text for key
func (c *Console) Text(key string, args ...interface{}) string {
	return c.printer.Sprintf(key, args...)
}
