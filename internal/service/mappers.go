package service

import (
	"time"

	"elysee/internal/caisse"
	"elysee/internal/dto"
	"elysee/internal/ledger"
	"elysee/internal/model"
)

func jour(t time.Time) string { return t.Format(layoutJour) }

func jourPtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := jour(*t)
	return &s
}

func toClientResponse(c *model.Client) dto.ClientResponse {
	prestations := []string(c.TypePrestation)
	if prestations == nil {
		prestations = []string{}
	}
	return dto.ClientResponse{
		ID:              c.ID.String(),
		NomMarie1:       c.NomMarie1,
		PrenomMarie1:    c.PrenomMarie1,
		NomMarie2:       c.NomMarie2,
		PrenomMarie2:    c.PrenomMarie2,
		Telephone1:      c.Telephone1,
		Telephone2:      c.Telephone2,
		Email1:          c.Email1,
		Email2:          c.Email2,
		CinPasseport:    c.CinPasseport,
		Adresse:         c.Adresse,
		CodePostal:      c.CodePostal,
		Ville:           c.Ville,
		DateMariage:     jourPtr(c.DateMariage),
		HeureDebut:      c.HeureDebut,
		HeureFin:        c.HeureFin,
		LieuCeremonie:   c.LieuCeremonie,
		LieuReception:   c.LieuReception,
		NombreInvites:   c.NombreInvites,
		TypePrestation:  prestations,
		Formule:         c.Formule,
		Statut:          c.Statut,
		Referent:        c.Referent,
		Memo:            c.Memo,
		DateInscription: jour(c.DateInscription),
		Archived:        c.Archived,
	}
}

func toDebitResponse(d *model.Debit) dto.DebitResponse {
	return dto.DebitResponse{
		ID:             d.ID.String(),
		ClientID:       d.ClientID.String(),
		Date:           jour(d.Date),
		Quantite:       d.Quantite,
		Designation:    d.Designation,
		PrixUnitaireHT: d.PrixUnitaireHT,
		TauxTVA:        d.TauxTVA,
		Categorie:      d.Categorie,
		MontantHT:      d.MontantHT().Round(2),
		MontantTTC:     d.MontantTTC,
	}
}

func toReglementResponse(r *model.Reglement) dto.ReglementResponse {
	resp := dto.ReglementResponse{
		ID:        r.ID.String(),
		ClientID:  r.ClientID.String(),
		Date:      jour(r.Date),
		Mode:      r.Mode,
		Reference: r.Reference,
		Montant:   r.Montant,
		Depose:    r.Depose,
		DateDepot: jourPtr(r.DateDepot),
	}
	if r.Client != nil {
		resp.NomClient = r.Client.NomComplet()
	}
	return resp
}

func toDepotResponse(d *model.DepotBanque) dto.DepotResponse {
	resp := dto.DepotResponse{
		ID:        d.ID.String(),
		Date:      jour(d.Date),
		Montant:   d.Montant,
		Mode:      d.Mode,
		Reference: d.Reference,
		Notes:     d.Notes,
	}
	if d.ReglementID != nil {
		s := d.ReglementID.String()
		resp.ReglementID = &s
	}
	return resp
}

func toEcheanceResponse(e *model.Echeance) dto.EcheanceResponse {
	return dto.EcheanceResponse{
		ID:           e.ID.String(),
		ClientID:     e.ClientID.String(),
		DateEcheance: jour(e.DateEcheance),
		Montant:      e.Montant,
		Libelle:      e.Libelle,
		Payee:        e.Payee,
	}
}

func toVentilation(v ledger.Ventilation) dto.VentilationResponse {
	return dto.VentilationResponse{TotalHT: v.TotalHT, TotalTVA: v.TotalTVA, TotalTTC: v.TotalTTC}
}

func toLigneMode(l caisse.LigneMode) dto.LigneModeResponse {
	return dto.LigneModeResponse{
		Mode:          l.Mode,
		Nombre:        l.Nombre,
		TotalEncaisse: l.TotalEncaisse,
		TotalDepose:   l.TotalDepose,
		EnCaisse:      l.EnCaisse,
	}
}

func toUtilisateurResponse(u *model.Utilisateur, role string) dto.UtilisateurResponse {
	return dto.UtilisateurResponse{
		ID:       u.ID.String(),
		Email:    u.Email,
		FullName: u.FullName,
		Role:     role,
		Actif:    u.Actif,
	}
}

func toParametresResponse(p *model.Parametres) dto.ParametresResponse {
	return dto.ParametresResponse{
		NomEntreprise:      p.NomEntreprise,
		Adresse:            p.Adresse,
		Telephone:          p.Telephone,
		Email:              p.Email,
		Siret:              p.Siret,
		LogoURL:            p.LogoURL,
		ConditionsPaiement: p.ConditionsPaiement,
		MentionsLegales:    p.MentionsLegales,
		NomGerant:          p.NomGerant,
	}
}
