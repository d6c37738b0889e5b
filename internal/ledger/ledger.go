// Package ledger derives client balances and HT/TVA/TTC breakdowns from
// already-fetched debit and payment rows. Every function is pure: callers
// fetch the rows, and a failed fetch must never be replaced by an empty slice.
package ledger

import (
	"elysee/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Tolerance is the band around zero inside which a balance counts as settled.
var Tolerance = decimal.New(1, -2)

var cent = decimal.NewFromInt(100)

// Etat is the tri-state reading of a balance.
type Etat string

const (
	EtatDu     Etat = "du"     // client owes money
	EtatCredit Etat = "credit" // client paid more than billed
	EtatSolde  Etat = "solde"  // settled within Tolerance
)

// Totaux is the account summary of one client or one reporting set.
type Totaux struct {
	TotalDebit decimal.Decimal
	TotalPaye  decimal.Decimal
	Solde      decimal.Decimal
	Etat       Etat
}

// Ventilation splits a set of debits into HT, TVA and TTC.
// TotalTVA is TotalTTC − TotalHT so the three always reconcile to the cent.
type Ventilation struct {
	TotalHT  decimal.Decimal
	TotalTVA decimal.Decimal
	TotalTTC decimal.Decimal
}

// MontantTTC is the reference formula of the generated montant_ttc column.
func MontantTTC(quantite int, prixHT, tauxTVA decimal.Decimal) decimal.Decimal {
	ht := prixHT.Mul(decimal.NewFromInt(int64(quantite)))
	return ht.Mul(decimal.NewFromInt(1).Add(tauxTVA.Div(cent))).Round(2)
}

// HTFromTTC converts an amount typed tax-inclusive into the unit price HT
// sent to the store (quantity 1).
func HTFromTTC(ttc, tauxTVA decimal.Decimal) decimal.Decimal {
	return ttc.Div(decimal.NewFromInt(1).Add(tauxTVA.Div(cent))).Round(2)
}

// Classer maps a balance onto its display state.
func Classer(solde decimal.Decimal) Etat {
	switch {
	case solde.GreaterThan(Tolerance):
		return EtatDu
	case solde.LessThan(Tolerance.Neg()):
		return EtatCredit
	default:
		return EtatSolde
	}
}

// Calculer sums debits and payments. Empty inputs give zero totals.
func Calculer(debits []model.Debit, reglements []model.Reglement) Totaux {
	t := Totaux{TotalDebit: decimal.Zero, TotalPaye: decimal.Zero}
	for i := range debits {
		t.TotalDebit = t.TotalDebit.Add(debits[i].MontantTTC)
	}
	for i := range reglements {
		t.TotalPaye = t.TotalPaye.Add(reglements[i].Montant)
	}
	t.Solde = t.TotalDebit.Sub(t.TotalPaye)
	t.Etat = Classer(t.Solde)
	return t
}

// Ventiler breaks down every debit given.
func Ventiler(debits []model.Debit) Ventilation {
	v := Ventilation{TotalHT: decimal.Zero, TotalTTC: decimal.Zero}
	for i := range debits {
		v.TotalHT = v.TotalHT.Add(debits[i].MontantHT())
		v.TotalTTC = v.TotalTTC.Add(debits[i].MontantTTC)
	}
	v.TotalHT = v.TotalHT.Round(2)
	v.TotalTVA = v.TotalTTC.Sub(v.TotalHT)
	return v
}

// ParCategorie breaks down only the debits of one categorie.
func ParCategorie(debits []model.Debit, categorie string) Ventilation {
	return Ventiler(Filtrer(debits, categorie))
}

// Filtrer keeps the debits of one categorie, preserving order.
func Filtrer(debits []model.Debit, categorie string) []model.Debit {
	out := make([]model.Debit, 0, len(debits))
	for _, d := range debits {
		if d.Categorie == categorie {
			out = append(out, d)
		}
	}
	return out
}

// SoldesParClient computes the balance of every client present in either set.
func SoldesParClient(debits []model.Debit, reglements []model.Reglement) map[uuid.UUID]decimal.Decimal {
	soldes := make(map[uuid.UUID]decimal.Decimal)
	for _, d := range debits {
		soldes[d.ClientID] = soldes[d.ClientID].Add(d.MontantTTC)
	}
	for _, r := range reglements {
		soldes[r.ClientID] = soldes[r.ClientID].Sub(r.Montant)
	}
	return soldes
}

// TotauxParClient computes the account summary of every client present in
// either set.
func TotauxParClient(debits []model.Debit, reglements []model.Reglement) map[uuid.UUID]Totaux {
	out := make(map[uuid.UUID]Totaux)
	get := func(id uuid.UUID) Totaux {
		t, ok := out[id]
		if !ok {
			t = Totaux{TotalDebit: decimal.Zero, TotalPaye: decimal.Zero}
		}
		return t
	}
	for _, d := range debits {
		t := get(d.ClientID)
		t.TotalDebit = t.TotalDebit.Add(d.MontantTTC)
		out[d.ClientID] = t
	}
	for _, r := range reglements {
		t := get(r.ClientID)
		t.TotalPaye = t.TotalPaye.Add(r.Montant)
		out[r.ClientID] = t
	}
	for id, t := range out {
		t.Solde = t.TotalDebit.Sub(t.TotalPaye)
		t.Etat = Classer(t.Solde)
		out[id] = t
	}
	return out
}
