// Package i18n holds the console strings in every supported language.
// Keys are the English texts; arguments are always pre-formatted strings so that numbers
// keep the fixed notation of the console regardless of language.
package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

const (
	Welcome             = "Welcome to the Currency Converter"
	MainMenuHeader      = "--- Main Menu ---"
	MenuConvert         = "Convert an amount"
	MenuViewRates       = "View current exchange rates"
	MenuExit            = "Exit"
	ChooseOption        = "Choose an option: "
	EnterNumberInRange  = "Please enter a number between %s and %s: "
	EnterValidNumber    = "Please enter a valid number: "
	Farewell            = "Thank you for using the Currency Converter. Goodbye!"
	ConvertHeader       = "--- Convert ---"
	EnterAmount         = "Enter the amount to convert: "
	SelectSource        = "Select the source currency:"
	SelectTarget        = "Select the target currency:"
	RatesHeader         = "--- Current Exchange Rates ---"
	Refreshing          = "Updating exchange rates..."
	Refreshed           = "Exchange rates updated successfully."
	FetchFailed         = "Error fetching exchange rates: %s"
	StatusCode          = "Error in the response. Status code: %s"
	StatusBody          = "Error message: %s"
	RequestUnsuccessful = "The request was not successful."
	ProviderError       = "Error: %s"
	MalformedResponse   = "The provider sent an invalid response: %s"
	RateUnavailable     = "Exchange rate unavailable for %s."
	NoRates             = "No exchange rates available. Try again later."
)

var spanish = map[string]string{
	Welcome:             "Bienvenido al Convertidor de Moneda",
	MainMenuHeader:      "--- Menú Principal ---",
	MenuConvert:         "Realizar una conversión",
	MenuViewRates:       "Ver tasas de cambio actuales",
	MenuExit:            "Salir",
	ChooseOption:        "Seleccione una opción: ",
	EnterNumberInRange:  "Por favor, ingrese un número entre %s y %s: ",
	EnterValidNumber:    "Por favor, ingrese un número válido: ",
	Farewell:            "Gracias por usar el Convertidor de Moneda. ¡Hasta luego!",
	ConvertHeader:       "--- Realizar Conversión ---",
	EnterAmount:         "Ingrese la cantidad a convertir: ",
	SelectSource:        "Seleccione la moneda de origen:",
	SelectTarget:        "Seleccione la moneda de destino:",
	RatesHeader:         "--- Tasas de Cambio Actuales ---",
	Refreshing:          "Actualizando tasas de cambio...",
	Refreshed:           "Tasas de cambio actualizadas correctamente.",
	FetchFailed:         "Error al obtener las tasas de cambio: %s",
	StatusCode:          "Error en la respuesta. Código de estado: %s",
	StatusBody:          "Mensaje de error: %s",
	RequestUnsuccessful: "La solicitud no fue exitosa.",
	ProviderError:       "Error: %s",
	MalformedResponse:   "El proveedor envió una respuesta inválida: %s",
	RateUnavailable:     "Tasa de cambio no disponible para %s.",
	NoRates:             "No hay tasas de cambio disponibles. Intente nuevamente más tarde.",
}

// Default is used when the requested language is unknown.
var Default = language.Spanish

var supported = []language.Tag{language.Spanish, language.English}

var (
	matcher = language.NewMatcher(supported)
	texts   = newCatalog()
)

func newCatalog() catalog.Catalog {
	builder := catalog.NewBuilder(catalog.Fallback(Default))
	for key, text := range spanish {
		if err := builder.SetString(language.Spanish, key, text); err != nil {
			panic(err)
		}
	}
	for key := range spanish {
		if err := builder.SetString(language.English, key, key); err != nil {
			panic(err)
		}
	}
	return builder
}

// Match returns the supported language closest to lang, e.g. "es-AR" or "en_US".
func Match(lang string) language.Tag {
	tag, err := language.Parse(lang)
	if err != nil {
		return Default
	}
	_, index, confidence := matcher.Match(tag)
	if confidence == language.No {
		return Default
	}
	return supported[index]
}

// NewPrinter returns a printer for the language closest to lang.
func NewPrinter(lang string) *message.Printer {
	return message.NewPrinter(Match(lang), message.Catalog(texts))
}
