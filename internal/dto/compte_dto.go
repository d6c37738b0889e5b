package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

// DebitRequest carries either PrixUnitaireHT or MontantTTC. When only the
// TTC line total is typed, the unit HT price is derived from it.
type DebitRequest struct {
	Date           string           `json:"date"             validate:"required,datetime=2006-01-02"`
	Quantite       int              `json:"quantite"         validate:"omitempty,min=1"`
	Designation    string           `json:"designation"      validate:"required,min=1,max=200"`
	PrixUnitaireHT *decimal.Decimal `json:"prix_unitaire_ht"`
	MontantTTC     *decimal.Decimal `json:"montant_ttc"`
	TauxTVA        *decimal.Decimal `json:"taux_tva"`
	Categorie      string           `json:"categorie"        validate:"required,oneof=location option"`
}

type ReglementRequest struct {
	Date      string          `json:"date"      validate:"required,datetime=2006-01-02"`
	Mode      string          `json:"mode"      validate:"required,oneof=cb virement especes cheque"`
	Reference *string         `json:"reference" validate:"omitempty,max=100"`
	Montant   decimal.Decimal `json:"montant"   validate:"required,gt=0"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type DebitResponse struct {
	ID             string          `json:"id"`
	ClientID       string          `json:"client_id"`
	Date           string          `json:"date"`
	Quantite       int             `json:"quantite"`
	Designation    string          `json:"designation"`
	PrixUnitaireHT decimal.Decimal `json:"prix_unitaire_ht"`
	TauxTVA        decimal.Decimal `json:"taux_tva"`
	Categorie      string          `json:"categorie"`
	MontantHT      decimal.Decimal `json:"montant_ht"`
	MontantTTC     decimal.Decimal `json:"montant_ttc"`
}

type ReglementResponse struct {
	ID        string          `json:"id"`
	ClientID  string          `json:"client_id"`
	NomClient string          `json:"nom_client,omitempty"`
	Date      string          `json:"date"`
	Mode      string          `json:"mode"`
	Reference *string         `json:"reference"`
	Montant   decimal.Decimal `json:"montant"`
	Depose    bool            `json:"depose"`
	DateDepot *string         `json:"date_depot"`
}

type VentilationResponse struct {
	TotalHT  decimal.Decimal `json:"total_ht"`
	TotalTVA decimal.Decimal `json:"total_tva"`
	TotalTTC decimal.Decimal `json:"total_ttc"`
}

// CompteResponse is the full account view of one client.
type CompteResponse struct {
	Client     ClientResponse      `json:"client"`
	Debits     []DebitResponse     `json:"debits"`
	Reglements []ReglementResponse `json:"reglements"`
	Echeances  []EcheanceResponse  `json:"echeances"`
	TotalDebit decimal.Decimal     `json:"total_debit"`
	TotalPaye  decimal.Decimal     `json:"total_paye"`
	Solde      decimal.Decimal     `json:"solde"`
	Etat       string              `json:"etat"`
	Location   VentilationResponse `json:"location"`
	Option     VentilationResponse `json:"option"`
	Total      VentilationResponse `json:"total"`
}

// ─── Échéancier ──────────────────────────────────────────────────────────────

type EcheanceRequest struct {
	DateEcheance string          `json:"date_echeance" validate:"required,datetime=2006-01-02"`
	Montant      decimal.Decimal `json:"montant"       validate:"required,gt=0"`
	Libelle      string          `json:"libelle"       validate:"max=200"`
}

type EcheanceResponse struct {
	ID           string          `json:"id"`
	ClientID     string          `json:"client_id"`
	DateEcheance string          `json:"date_echeance"`
	Montant      decimal.Decimal `json:"montant"`
	Libelle      string          `json:"libelle"`
	Payee        bool            `json:"payee"`
}

// ─── Recettes ────────────────────────────────────────────────────────────────

type RecettesFilter struct {
	PeriodeQuery
	Mode string `form:"mode" validate:"omitempty,oneof=cb virement especes cheque"`
}

type RecettesResponse struct {
	Reglements []ReglementResponse        `json:"reglements"`
	Nombre     int                        `json:"nombre"`
	Total      decimal.Decimal            `json:"total"`
	ParMode    map[string]decimal.Decimal `json:"par_mode"`
}
