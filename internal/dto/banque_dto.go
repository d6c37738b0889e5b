package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

// PeriodeQuery selects a reporting window: periode=tout|annee|mois|custom,
// debut/fin as YYYY-MM-DD for custom.
type PeriodeQuery struct {
	Preset string `form:"periode" validate:"omitempty,oneof=tout annee mois custom"`
	Debut  string `form:"debut"   validate:"omitempty,datetime=2006-01-02"`
	Fin    string `form:"fin"     validate:"omitempty,datetime=2006-01-02"`
}

type DeposerChequesRequest struct {
	IDs  []string `json:"ids"  validate:"required,min=1,dive,uuid"`
	Date string   `json:"date" validate:"required,datetime=2006-01-02"`
}

type DepotEspecesRequest struct {
	Montant   decimal.Decimal `json:"montant"   validate:"required,gt=0"`
	Date      string          `json:"date"      validate:"required,datetime=2006-01-02"`
	Reference *string         `json:"reference" validate:"omitempty,max=100"`
	Notes     *string         `json:"notes"     validate:"omitempty,max=500"`
}

type RapportComptableQuery struct {
	Annee int `form:"annee" validate:"required,min=2000,max=2099"`
	Mois  int `form:"mois"  validate:"required,min=1,max=12"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type PeriodeResponse struct {
	Debut string `json:"debut"`
	Fin   string `json:"fin"`
}

type LigneModeResponse struct {
	Mode          string          `json:"mode"`
	Nombre        int             `json:"nombre"`
	TotalEncaisse decimal.Decimal `json:"total_encaisse"`
	TotalDepose   decimal.Decimal `json:"total_depose"`
	EnCaisse      decimal.Decimal `json:"en_caisse"`
}

type RecapChequesResponse struct {
	LigneModeResponse
	DeposeSelonDepots decimal.Decimal `json:"depose_selon_depots"`
	Ecart             decimal.Decimal `json:"ecart"`
	Coherent          bool            `json:"coherent"`
}

type ChequeEnCaisseResponse struct {
	ID        string          `json:"id"`
	ClientID  string          `json:"client_id"`
	NomClient string          `json:"nom_client"`
	Date      string          `json:"date"`
	Montant   decimal.Decimal `json:"montant"`
	Reference *string         `json:"reference"`
}

type DepotResponse struct {
	ID          string          `json:"id"`
	Date        string          `json:"date"`
	Montant     decimal.Decimal `json:"montant"`
	Mode        string          `json:"mode"`
	Reference   *string         `json:"reference"`
	Notes       *string         `json:"notes"`
	ReglementID *string         `json:"reglement_id"`
}

type RecapResponse struct {
	Periode         PeriodeResponse          `json:"periode"`
	Especes         LigneModeResponse        `json:"especes"`
	Cheques         RecapChequesResponse     `json:"cheques"`
	Virement        LigneModeResponse        `json:"virement"`
	CB              LigneModeResponse        `json:"cb"`
	TotalBanque     decimal.Decimal          `json:"total_banque"`
	TotalCaisse     decimal.Decimal          `json:"total_caisse"`
	TotalEncaisse   decimal.Decimal          `json:"total_encaisse"`
	ChequesEnCaisse []ChequeEnCaisseResponse `json:"cheques_en_caisse"`
	Depots          []DepotResponse          `json:"depots"`
}

type ResultatDepotCheque struct {
	ReglementID string `json:"reglement_id"`
	Statut      string `json:"statut"` // ok | erreur
	DepotID     string `json:"depot_id,omitempty"`
	Erreur      string `json:"erreur,omitempty"`
}

type DeposerChequesResponse struct {
	Resultats []ResultatDepotCheque `json:"resultats"`
	Deposes   int                   `json:"deposes"`
	Echecs    int                   `json:"echecs"`
}

type SuppressionDepotResponse struct {
	DepotID     string  `json:"depot_id"`
	ReglementID *string `json:"reglement_id"`
	// Lien: fk | heuristique | aucun | especes
	Lien   string `json:"lien"`
	Ambigu bool   `json:"ambigu"`
}

type LigneRapportResponse struct {
	Date        string          `json:"date"`
	Client      string          `json:"client"`
	Designation string          `json:"designation"`
	Categorie   string          `json:"categorie"`
	Quantite    int             `json:"quantite"`
	MontantHT   decimal.Decimal `json:"montant_ht"`
	TVA         decimal.Decimal `json:"tva"`
	MontantTTC  decimal.Decimal `json:"montant_ttc"`
}

type RapportComptableResponse struct {
	Annee    int                    `json:"annee"`
	Mois     int                    `json:"mois"`
	Location VentilationResponse    `json:"location"`
	Option   VentilationResponse    `json:"option"`
	General  VentilationResponse    `json:"general"`
	Lignes   []LigneRapportResponse `json:"lignes"`
}
