package menu

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/dalfonso89/currency-converter-cli/internal/console"
	"github.com/dalfonso89/currency-converter-cli/internal/i18n"
	"github.com/dalfonso89/currency-converter-cli/internal/service"
	"github.com/dalfonso89/currency-converter-cli/internal/testutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type session struct {
	server *testutils.MockProviderServer
	out    *bytes.Buffer
}

func runSession(t *testing.T, lang, input string, setup func(server *testutils.MockProviderServer)) session {
	t.Helper()

	server := testutils.NewMockProviderServer()
	t.Cleanup(server.Close)
	if setup != nil {
		setup(server)
	}

	logger := testutils.MockLogger()
	ratesService := service.NewRatesService(testutils.MockConfig(server.URL()), logger)

	out := &bytes.Buffer{}
	con := console.New(strings.NewReader(input), out, i18n.NewPrinter(lang), logger)
	con.DisableColor()

	require.NoError(t, NewController(con, ratesService, logger).Run(context.Background()))
	return session{server: server, out: out}
}

func TestRun_Exit(t *testing.T) {
	s := runSession(t, "es", "3\n", nil)

	assert.Equal(t, strings.Join([]string{
		"Bienvenido al Convertidor de Moneda",
		"",
		"--- Menú Principal ---",
		"1. Realizar una conversión",
		"2. Ver tasas de cambio actuales",
		"3. Salir",
		"Seleccione una opción: Gracias por usar el Convertidor de Moneda. ¡Hasta luego!",
		"",
	}, "\n"), s.out.String())
	assert.Empty(t, s.server.Requests())
}

func TestRun_Convert(t *testing.T) {
	s := runSession(t, "en", "1\n100\n6\n1\n3\n", nil)

	output := s.out.String()
	assert.Contains(t, output, "Updating exchange rates...\nExchange rates updated successfully.\n")
	assert.Contains(t, output, "--- Convert ---\nEnter the amount to convert: Select the source currency:\n1. ARS\n")
	assert.Contains(t, output, "Select the target currency:\n")
	assert.Contains(t, output, "100.00 USD = 90000.00 ARS\n")
	assert.True(t, strings.HasSuffix(output, "Thank you for using the Currency Converter. Goodbye!\n"))

	requests := s.server.Requests()
	require.Len(t, requests, 1)
	assert.Equal(t, "USD", requests[0].Base)
}

func TestRun_ConvertWithRetries(t *testing.T) {
	s := runSession(t, "en", "x\n1\nabc\n900\n0\n1\n6\n3\n", nil)

	output := s.out.String()
	assert.Contains(t, output, "900.00 ARS = 1.00 USD\n")
	assert.Equal(t, 2, strings.Count(output, "Please enter a valid number: "))
	assert.Equal(t, 1, strings.Count(output, "Please enter a number between 1 and 6: "))
}

func TestRun_ViewRates(t *testing.T) {
	s := runSession(t, "en", "2\n3\n", nil)

	assert.Contains(t, s.out.String(), strings.Join([]string{
		"--- Current Exchange Rates ---",
		"ARS: 900.0000",
		"BOB: 6.9100",
		"BRL: 5.0000",
		"CLP: 943.2700",
		"COP: 3912.5000",
		"USD: 1.0000",
		"",
	}, "\n"))
}

func TestRun_RatesFetchedOnce(t *testing.T) {
	s := runSession(t, "en", "2\n1\n1\n1\n2\n2\n3\n", nil)

	assert.Len(t, s.server.Requests(), 1)
	assert.Equal(t, 1, strings.Count(s.out.String(), "Updating exchange rates..."))
	assert.Contains(t, s.out.String(), "1.00 ARS = 0.01 BOB\n")
}

func TestRun_FetchErrors(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		expected []string
	}{
		{
			name:   "http status",
			status: http.StatusNotFound,
			body:   "no such page",
			expected: []string{
				"Error in the response. Status code: 404\n",
				"Error message: no such page\n",
			},
		},
		{
			name:   "provider error",
			status: http.StatusOK,
			body:   `{"result": "error", "error": {"info": "invalid-key"}}`,
			expected: []string{
				"The request was not successful.\nError: invalid-key\n",
			},
		},
		{
			name:   "provider error without reason",
			status: http.StatusOK,
			body:   `{"result": "error"}`,
			expected: []string{
				"The request was not successful.\nError: unknown error\n",
			},
		},
		{
			name:   "malformed payload",
			status: http.StatusOK,
			body:   `{"result": "success", "conversion_rates": `,
			expected: []string{
				"The provider sent an invalid response: failed to parse response",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := runSession(t, "en", "1\n2\n3\n", func(server *testutils.MockProviderServer) {
				server.SetResponse(tt.status, tt.body)
			})

			output := s.out.String()
			for _, expected := range tt.expected {
				assert.Equal(t, 2, strings.Count(output, expected), "missing %q in\n%s", expected, output)
			}
			assert.Equal(t, 2, strings.Count(output, "No exchange rates available. Try again later.\n"))
			assert.NotContains(t, output, "Enter the amount to convert")
			assert.NotContains(t, output, "--- Current Exchange Rates ---")
			assert.Len(t, s.server.Requests(), 2)
		})
	}
}

func TestRun_NetworkFailure(t *testing.T) {
	s := runSession(t, "en", "2\n3\n", func(server *testutils.MockProviderServer) {
		server.Close()
	})

	output := s.out.String()
	assert.Contains(t, output, "Error fetching exchange rates: ")
	assert.Contains(t, output, "No exchange rates available. Try again later.\n")
	assert.True(t, strings.HasSuffix(output, "Thank you for using the Currency Converter. Goodbye!\n"))
}

func TestRun_RateUnavailable(t *testing.T) {
	s := runSession(t, "en", "1\n10\n5\n1\n3\n", func(server *testutils.MockProviderServer) {
		server.SetResponse(http.StatusOK, testutils.SuccessBody("USD", map[string]float64{"ARS": 900}))
	})

	output := s.out.String()
	assert.Contains(t, output, "Exchange rate unavailable for COP/ARS.\n")
	assert.NotContains(t, output, " = ")
}

func TestRun_EOFExits(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"at main menu", ""},
		{"while reading amount", "1\n"},
		{"while selecting currency", "1\n5\n2\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := runSession(t, "en", tt.input, nil)
			assert.True(t, strings.HasSuffix(s.out.String(), "\nThank you for using the Currency Converter. Goodbye!\n"))
		})
	}
}

func TestRun_InputError(t *testing.T) {
	server := testutils.NewMockProviderServer()
	defer server.Close()

	logger := testutils.MockLogger()
	ratesService := service.NewRatesService(testutils.MockConfig(server.URL()), logger)
	boom := errors.New("terminal detached")
	con := console.New(iotest.ErrReader(boom), &bytes.Buffer{}, i18n.NewPrinter("en"), logger)

	err := NewController(con, ratesService, logger).Run(context.Background())
	assert.ErrorIs(t, err, boom)
}
