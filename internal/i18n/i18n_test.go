package i18n

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"
)

func TestMatch(t *testing.T) {
	tests := []struct {
		lang string
		want language.Tag
	}{
		{"es", language.Spanish},
		{"es-AR", language.Spanish},
		{"en", language.English},
		{"en_US", language.English},
		{"", language.Spanish},
		{"not a tag!", language.Spanish},
	}

	for _, tt := range tests {
		t.Run(tt.lang, func(t *testing.T) {
			assert.Equal(t, tt.want, Match(tt.lang))
		})
	}
}

func TestNewPrinter(t *testing.T) {
	es := NewPrinter("es")
	en := NewPrinter("en")

	assert.Equal(t, "Salir", es.Sprintf(MenuExit))
	assert.Equal(t, "Exit", en.Sprintf(MenuExit))
	assert.Equal(t, "Por favor, ingrese un número entre 1 y 3: ", es.Sprintf(EnterNumberInRange, "1", "3"))
	assert.Equal(t, "Please enter a number between 1 and 3: ", en.Sprintf(EnterNumberInRange, "1", "3"))
	assert.Equal(t, "Error: invalid-key", es.Sprintf(ProviderError, "invalid-key"))
}

func TestCatalog_EveryKeyTranslated(t *testing.T) {
	es := NewPrinter("es")
	for key, text := range spanish {
		if strings.Contains(text, "%") {
			continue
		}
		assert.Equal(t, text, es.Sprintf(key), key)
	}
}
