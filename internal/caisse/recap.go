// Package caisse computes what is held in the cash drawer versus what has
// reached the bank, and drives the cheque deposit state machine.
package caisse

import (
	"elysee/internal/ledger"
	"elysee/internal/model"

	"github.com/shopspring/decimal"
)

// LigneMode aggregates one payment mode over a period.
type LigneMode struct {
	Mode          string
	Nombre        int
	TotalEncaisse decimal.Decimal
	TotalDepose   decimal.Decimal
	EnCaisse      decimal.Decimal
}

// RecapCheques adds the cross-check between the per-row flags and the
// cheque deposit records.
type RecapCheques struct {
	LigneMode
	DeposeSelonDepots decimal.Decimal
	Ecart             decimal.Decimal
}

// Coherent is true when flagged cheques and deposit rows agree within the
// ledger tolerance.
func (c RecapCheques) Coherent() bool {
	return c.Ecart.Abs().LessThanOrEqual(ledger.Tolerance)
}

// Recap is the caisse/banque summary of a period.
type Recap struct {
	Especes  LigneMode
	Cheques  RecapCheques
	Virement LigneMode
	CB       LigneMode

	TotalBanque   decimal.Decimal
	TotalCaisse   decimal.Decimal
	TotalEncaisse decimal.Decimal
}

func ligne(mode string) LigneMode {
	return LigneMode{Mode: mode, TotalEncaisse: decimal.Zero, TotalDepose: decimal.Zero, EnCaisse: decimal.Zero}
}

// Rapprocher reconciles payments and deposits already restricted to one
// period. Cash is fungible and tracked only in aggregate; each cheque carries
// its own depose flag; transfers and card payments land in the bank directly.
func Rapprocher(reglements []model.Reglement, depots []model.DepotBanque) Recap {
	r := Recap{
		Especes:  ligne(model.ModeEspeces),
		Cheques:  RecapCheques{LigneMode: ligne(model.ModeCheque), DeposeSelonDepots: decimal.Zero},
		Virement: ligne(model.ModeVirement),
		CB:       ligne(model.ModeCB),
	}

	for _, reg := range reglements {
		switch reg.Mode {
		case model.ModeEspeces:
			r.Especes.Nombre++
			r.Especes.TotalEncaisse = r.Especes.TotalEncaisse.Add(reg.Montant)
		case model.ModeCheque:
			r.Cheques.Nombre++
			r.Cheques.TotalEncaisse = r.Cheques.TotalEncaisse.Add(reg.Montant)
			if reg.Depose {
				r.Cheques.TotalDepose = r.Cheques.TotalDepose.Add(reg.Montant)
			} else {
				r.Cheques.EnCaisse = r.Cheques.EnCaisse.Add(reg.Montant)
			}
		case model.ModeVirement:
			r.Virement.Nombre++
			r.Virement.TotalEncaisse = r.Virement.TotalEncaisse.Add(reg.Montant)
		case model.ModeCB:
			r.CB.Nombre++
			r.CB.TotalEncaisse = r.CB.TotalEncaisse.Add(reg.Montant)
		}
	}

	for _, dep := range depots {
		switch dep.Mode {
		case model.ModeEspeces:
			r.Especes.TotalDepose = r.Especes.TotalDepose.Add(dep.Montant)
		case model.ModeCheque:
			r.Cheques.DeposeSelonDepots = r.Cheques.DeposeSelonDepots.Add(dep.Montant)
		}
	}

	r.Especes.EnCaisse = r.Especes.TotalEncaisse.Sub(r.Especes.TotalDepose)
	r.Cheques.Ecart = r.Cheques.TotalDepose.Sub(r.Cheques.DeposeSelonDepots)
	r.Virement.TotalDepose = r.Virement.TotalEncaisse
	r.CB.TotalDepose = r.CB.TotalEncaisse

	r.TotalBanque = r.Especes.TotalDepose.
		Add(r.Cheques.TotalDepose).
		Add(r.Virement.TotalDepose).
		Add(r.CB.TotalDepose)
	r.TotalCaisse = r.Especes.EnCaisse.Add(r.Cheques.EnCaisse)
	r.TotalEncaisse = r.Especes.TotalEncaisse.
		Add(r.Cheques.TotalEncaisse).
		Add(r.Virement.TotalEncaisse).
		Add(r.CB.TotalEncaisse)
	return r
}
