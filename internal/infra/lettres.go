package infra

import (
	"strings"

	"github.com/shopspring/decimal"
)

// French numerals, 1990 rectified spelling (hyphens between every numeral word).

var unites = [...]string{
	"", "un", "deux", "trois", "quatre", "cinq", "six", "sept", "huit", "neuf",
	"dix", "onze", "douze", "treize", "quatorze", "quinze", "seize",
	"dix-sept", "dix-huit", "dix-neuf",
}

var dizaines = [...]string{"", "", "vingt", "trente", "quarante", "cinquante", "soixante"}

func moinsDeCent(n int) string {
	switch {
	case n < 20:
		return unites[n]
	case n < 70:
		d, u := n/10, n%10
		switch u {
		case 0:
			return dizaines[d]
		case 1:
			return dizaines[d] + "-et-un"
		}
		return dizaines[d] + "-" + unites[u]
	case n < 80:
		if n == 71 {
			return "soixante-et-onze"
		}
		return "soixante-" + unites[n-60]
	case n == 80:
		return "quatre-vingts"
	default:
		return "quatre-vingt-" + unites[n-80]
	}
}

// moinsDeMille spells 1..999. final is false when the group is followed by
// "mille", which removes the plural of "cents" and "quatre-vingts".
func moinsDeMille(n int, final bool) string {
	c, r := n/100, n%100
	var s string
	switch c {
	case 0:
	case 1:
		s = "cent"
	default:
		s = unites[c] + "-cent"
		if r == 0 && final {
			s += "s"
		}
	}
	if r == 0 {
		return s
	}
	reste := moinsDeCent(r)
	if r == 80 && !final {
		reste = "quatre-vingt"
	}
	if s == "" {
		return reste
	}
	return s + "-" + reste
}

// NombreEnLettres spells a whole number in French.
func NombreEnLettres(n int64) string {
	if n == 0 {
		return "zéro"
	}
	if n < 0 {
		return "moins " + NombreEnLettres(-n)
	}

	var parts []string
	groupe := func(v int64, singulier, pluriel string) {
		if v == 0 {
			return
		}
		if v == 1 {
			parts = append(parts, "un "+singulier)
			return
		}
		parts = append(parts, moinsDeMille(int(v), true)+" "+pluriel)
	}
	groupe(n/1_000_000_000, "milliard", "milliards")
	groupe((n/1_000_000)%1000, "million", "millions")

	var bas []string
	switch milliers := int((n / 1000) % 1000); milliers {
	case 0:
	case 1:
		bas = append(bas, "mille")
	default:
		bas = append(bas, moinsDeMille(milliers, false)+"-mille")
	}
	if reste := int(n % 1000); reste > 0 {
		bas = append(bas, moinsDeMille(reste, true))
	}
	if len(bas) > 0 {
		parts = append(parts, strings.Join(bas, "-"))
	}
	return strings.Join(parts, " ")
}

// MontantEnLettres spells an amount in dinars and millimes (1 DT = 1000
// millimes), capitalised, as printed on contracts and invoices.
func MontantEnLettres(m decimal.Decimal) string {
	m = m.Round(3)
	prefixe := ""
	if m.IsNegative() {
		prefixe = "moins "
		m = m.Neg()
	}
	dinars := m.Truncate(0)
	millimes := m.Sub(dinars).Shift(3).IntPart()

	s := prefixe + NombreEnLettres(dinars.IntPart())
	if dinars.Equal(decimal.NewFromInt(1)) {
		s += " dinar"
	} else {
		s += " dinars"
	}
	if millimes > 0 {
		s += " et " + NombreEnLettres(millimes)
		if millimes == 1 {
			s += " millime"
		} else {
			s += " millimes"
		}
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// FormatDT renders an amount the way the office writes it: "12 345,50 DT".
func FormatDT(m decimal.Decimal) string {
	s := m.StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	entier, dec, _ := strings.Cut(s, ".")

	var b strings.Builder
	for i, r := range entier {
		if i > 0 && (len(entier)-i)%3 == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	out := b.String() + "," + dec + " DT"
	if neg {
		out = "-" + out
	}
	return out
}
