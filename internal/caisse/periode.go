package caisse

import (
	"errors"
	"time"
)

// Period presets offered by the banque page.
const (
	PresetTout   = "tout"
	PresetAnnee  = "annee"
	PresetMois   = "mois"
	PresetCustom = "custom"
)

// Open-ended sentinels used when a bound is missing.
var (
	DebutOuvert = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	FinOuverte  = time.Date(2099, 12, 31, 0, 0, 0, 0, time.UTC)
)

var ErrPresetInconnu = errors.New("période inconnue")

// Periode is an inclusive date range. Both bounds are calendar days.
type Periode struct {
	Debut time.Time
	Fin   time.Time
}

// Jour truncates t to its calendar day in UTC.
func Jour(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Resoudre turns a preset into a Periode relative to now. debut and fin are
// only read for the custom preset; a nil bound falls back to the sentinel.
func Resoudre(preset string, debut, fin *time.Time, now time.Time) (Periode, error) {
	switch preset {
	case "", PresetTout:
		return Periode{Debut: DebutOuvert, Fin: FinOuverte}, nil
	case PresetAnnee:
		y := now.Year()
		return Periode{
			Debut: time.Date(y, 1, 1, 0, 0, 0, 0, time.UTC),
			Fin:   time.Date(y, 12, 31, 0, 0, 0, 0, time.UTC),
		}, nil
	case PresetMois:
		y, m, _ := now.Date()
		first := time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
		return Periode{Debut: first, Fin: first.AddDate(0, 1, -1)}, nil
	case PresetCustom:
		p := Periode{Debut: DebutOuvert, Fin: FinOuverte}
		if debut != nil {
			p.Debut = Jour(*debut)
		}
		if fin != nil {
			p.Fin = Jour(*fin)
		}
		return p, nil
	default:
		return Periode{}, ErrPresetInconnu
	}
}

// Contient reports whether t falls on a day inside the period.
func (p Periode) Contient(t time.Time) bool {
	j := Jour(t)
	return !j.Before(p.Debut) && !j.After(p.Fin)
}
