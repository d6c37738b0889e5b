package caisse

import (
	"errors"
	"strings"
	"time"

	"elysee/internal/model"

	"github.com/google/uuid"
)

// EtatCheque is the position of a cheque between caisse and banque.
type EtatCheque string

const (
	EnCaisse EtatCheque = "en_caisse"
	Depose   EtatCheque = "depose"
)

var (
	ErrPasUnCheque = errors.New("seuls les chèques peuvent être déposés")
	ErrDejaDepose  = errors.New("chèque déjà déposé")
	ErrNonDepose   = errors.New("chèque non déposé")
)

// Etat reads the state of a cheque payment.
func Etat(r *model.Reglement) EtatCheque {
	if r.Depose {
		return Depose
	}
	return EnCaisse
}

// ChequesEnCaisse keeps the cheques still held in the caisse, the rows a
// deposit can be made from. Other modes are never selectable even though
// their depose flag stays false.
func ChequesEnCaisse(reglements []model.Reglement) []model.Reglement {
	var out []model.Reglement
	for _, r := range reglements {
		if r.Mode == model.ModeCheque && Etat(&r) == EnCaisse {
			out = append(out, r)
		}
	}
	return out
}

// Deposer moves a cheque from EnCaisse to Depose on the given day.
func Deposer(r *model.Reglement, date time.Time) error {
	if r.Mode != model.ModeCheque {
		return ErrPasUnCheque
	}
	if r.Depose {
		return ErrDejaDepose
	}
	j := Jour(date)
	r.Depose = true
	r.DateDepot = &j
	return nil
}

// Retourner moves a deposited cheque back into the caisse.
func Retourner(r *model.Reglement) error {
	if r.Mode != model.ModeCheque {
		return ErrPasUnCheque
	}
	if !r.Depose {
		return ErrNonDepose
	}
	r.Depose = false
	r.DateDepot = nil
	return nil
}

// ReferenceDepot is the label written on a cheque deposit: "NOM PRENOM" of
// the first spouse.
func ReferenceDepot(c *model.Client) string {
	if c == nil {
		return ""
	}
	return c.NomComplet()
}

// DepotPourCheque builds the deposit row matching a cheque that was just
// moved to Depose.
func DepotPourCheque(r *model.Reglement, reference string, date time.Time) model.DepotBanque {
	id := r.ID
	ref := reference
	return model.DepotBanque{
		Date:        Jour(date),
		Montant:     r.Montant,
		Mode:        model.ModeCheque,
		Reference:   &ref,
		ReglementID: &id,
	}
}

// Candidat is a deposited cheque with the name of its client, as seen by
// the legacy reverse lookup.
type Candidat struct {
	Reglement model.Reglement
	NomClient string
}

// Retrouve is the outcome of RetrouverCheque.
type Retrouve struct {
	ReglementID uuid.UUID
	// Ambigu is set when more than one cheque fits equally well; the first
	// one in candidate order is returned.
	Ambigu bool
}

// RetrouverCheque finds the cheque behind a deposit that predates the
// reglement_id link: same amount, deposited, and the client name equal to
// the deposit reference. A candidate deposited on the deposit's day is
// preferred.
func RetrouverCheque(depot model.DepotBanque, candidats []Candidat) (Retrouve, bool) {
	ref := ""
	if depot.Reference != nil {
		ref = strings.TrimSpace(*depot.Reference)
	}
	if depot.Mode != model.ModeCheque || ref == "" {
		return Retrouve{}, false
	}

	var memeJour, autres []uuid.UUID
	for _, c := range candidats {
		r := c.Reglement
		if r.Mode != model.ModeCheque || !r.Depose || !r.Montant.Equal(depot.Montant) {
			continue
		}
		if strings.TrimSpace(c.NomClient) != ref {
			continue
		}
		if r.DateDepot != nil && Jour(*r.DateDepot).Equal(Jour(depot.Date)) {
			memeJour = append(memeJour, r.ID)
		} else {
			autres = append(autres, r.ID)
		}
	}

	switch {
	case len(memeJour) > 0:
		return Retrouve{ReglementID: memeJour[0], Ambigu: len(memeJour) > 1}, true
	case len(autres) > 0:
		return Retrouve{ReglementID: autres[0], Ambigu: len(autres) > 1}, true
	default:
		return Retrouve{}, false
	}
}
