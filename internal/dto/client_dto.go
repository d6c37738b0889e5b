package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

// ClientRequest is used for both creation and update. Every field is
// optional: a file can be opened blank and completed later.
type ClientRequest struct {
	NomMarie1       string   `json:"nom_marie_1"      validate:"max=100"`
	PrenomMarie1    string   `json:"prenom_marie_1"   validate:"max=100"`
	NomMarie2       string   `json:"nom_marie_2"      validate:"max=100"`
	PrenomMarie2    string   `json:"prenom_marie_2"   validate:"max=100"`
	Telephone1      *string  `json:"telephone_1"      validate:"omitempty,max=30"`
	Telephone2      *string  `json:"telephone_2"      validate:"omitempty,max=30"`
	Email1          *string  `json:"email_1"          validate:"omitempty,email"`
	Email2          *string  `json:"email_2"          validate:"omitempty,email"`
	CinPasseport    *string  `json:"cin_passeport"    validate:"omitempty,max=30"`
	Adresse         *string  `json:"adresse"`
	CodePostal      *string  `json:"code_postal"      validate:"omitempty,max=10"`
	Ville           *string  `json:"ville"`
	DateMariage     *string  `json:"date_mariage"     validate:"omitempty,datetime=2006-01-02"`
	HeureDebut      *string  `json:"heure_debut"      validate:"omitempty,datetime=15:04"`
	HeureFin        *string  `json:"heure_fin"        validate:"omitempty,datetime=15:04"`
	LieuCeremonie   *string  `json:"lieu_ceremonie"`
	LieuReception   *string  `json:"lieu_reception"`
	NombreInvites   *int     `json:"nombre_invites"   validate:"omitempty,min=0"`
	TypePrestation  []string `json:"type_prestation"`
	Formule         *string  `json:"formule"`
	Statut          string   `json:"statut"           validate:"omitempty,oneof=prospect en_cours confirme termine annule"`
	Referent        *string  `json:"referent"`
	Memo            *string  `json:"memo"`
	DateInscription *string  `json:"date_inscription" validate:"omitempty,datetime=2006-01-02"`
}

// ClientFilter is bound from the list query string.
type ClientFilter struct {
	Archived  bool   `form:"archived"`
	Statut    string `form:"statut"`
	Recherche string `form:"q"`
	Impayes   bool   `form:"impayes"`
	Mariage   string `form:"mariage"` // "" | passe | a_venir
	Tri       string `form:"tri"`     // nom | date_mariage | statut | reste
	Page      int    `form:"page"`
	Limit     int    `form:"limit"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ClientResponse struct {
	ID              string   `json:"id"`
	NomMarie1       string   `json:"nom_marie_1"`
	PrenomMarie1    string   `json:"prenom_marie_1"`
	NomMarie2       string   `json:"nom_marie_2"`
	PrenomMarie2    string   `json:"prenom_marie_2"`
	Telephone1      *string  `json:"telephone_1"`
	Telephone2      *string  `json:"telephone_2"`
	Email1          *string  `json:"email_1"`
	Email2          *string  `json:"email_2"`
	CinPasseport    *string  `json:"cin_passeport"`
	Adresse         *string  `json:"adresse"`
	CodePostal      *string  `json:"code_postal"`
	Ville           *string  `json:"ville"`
	DateMariage     *string  `json:"date_mariage"`
	HeureDebut      *string  `json:"heure_debut"`
	HeureFin        *string  `json:"heure_fin"`
	LieuCeremonie   *string  `json:"lieu_ceremonie"`
	LieuReception   *string  `json:"lieu_reception"`
	NombreInvites   *int     `json:"nombre_invites"`
	TypePrestation  []string `json:"type_prestation"`
	Formule         *string  `json:"formule"`
	Statut          string   `json:"statut"`
	Referent        *string  `json:"referent"`
	Memo            *string  `json:"memo"`
	DateInscription string   `json:"date_inscription"`
	Archived        bool     `json:"archived"`
}

// ClientListItem adds the account position to a client row.
type ClientListItem struct {
	ClientResponse
	TotalDebit decimal.Decimal `json:"total_debit"`
	TotalPaye  decimal.Decimal `json:"total_paye"`
	Reste      decimal.Decimal `json:"reste"`
	Etat       string          `json:"etat"` // du | credit | solde
}

type ClientListResponse struct {
	Data  []ClientListItem `json:"data"`
	Total int              `json:"total"`
	Page  int              `json:"page"`
	Limit int              `json:"limit"`
}
