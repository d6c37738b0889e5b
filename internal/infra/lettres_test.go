package infra

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestNombreEnLettres(t *testing.T) {
	cases := map[int64]string{
		0:         "zéro",
		1:         "un",
		16:        "seize",
		17:        "dix-sept",
		21:        "vingt-et-un",
		45:        "quarante-cinq",
		71:        "soixante-et-onze",
		77:        "soixante-dix-sept",
		80:        "quatre-vingts",
		81:        "quatre-vingt-un",
		91:        "quatre-vingt-onze",
		100:       "cent",
		200:       "deux-cents",
		201:       "deux-cent-un",
		1000:      "mille",
		1190:      "mille-cent-quatre-vingt-dix",
		80000:     "quatre-vingt-mille",
		200000:    "deux-cent-mille",
		1000000:   "un million",
		2500000:   "deux millions cinq-cent-mille",
		-12:       "moins douze",
		3_000_001: "trois millions un",
	}
	for n, want := range cases {
		assert.Equal(t, want, NombreEnLettres(n), "n=%d", n)
	}
}

func TestMontantEnLettres(t *testing.T) {
	assert.Equal(t, "Mille-cent-quatre-vingt-dix dinars", MontantEnLettres(decimal.NewFromInt(1190)))
	assert.Equal(t, "Un dinar", MontantEnLettres(decimal.NewFromInt(1)))
	assert.Equal(t, "Douze dinars et cinq-cents millimes", MontantEnLettres(decimal.RequireFromString("12.50")))
	assert.Equal(t, "Zéro dinars et un millime", MontantEnLettres(decimal.RequireFromString("0.001")))
}

func TestFormatDT(t *testing.T) {
	assert.Equal(t, "12 345,50 DT", FormatDT(decimal.RequireFromString("12345.5")))
	assert.Equal(t, "999,00 DT", FormatDT(decimal.NewFromInt(999)))
	assert.Equal(t, "-1 000,00 DT", FormatDT(decimal.NewFromInt(-1000)))
	assert.Equal(t, "0,00 DT", FormatDT(decimal.Zero))
}
