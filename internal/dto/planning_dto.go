package dto

type PlanningQuery struct {
	Debut string `form:"debut" validate:"required,datetime=2006-01-02"`
	Fin   string `form:"fin"   validate:"required,datetime=2006-01-02"`
}

type EvenementRequest struct {
	ClientID  *string `json:"client_id"  validate:"omitempty,uuid"`
	Titre     string  `json:"titre"      validate:"required,min=1,max=200"`
	Type      string  `json:"type"       validate:"omitempty,oneof=mariage rdv_preparation reperage_lieu autre"`
	DateDebut string  `json:"date_debut" validate:"required"` // RFC 3339
	DateFin   string  `json:"date_fin"   validate:"required"`
	Couleur   *string `json:"couleur"    validate:"omitempty,hexcolor"`
	Notes     *string `json:"notes"`
}

// EvenementResponse is either a stored event or a wedding derived from a
// client file (Virtuel=true, StatutPaiement set).
type EvenementResponse struct {
	ID             string  `json:"id"`
	ClientID       *string `json:"client_id"`
	Titre          string  `json:"titre"`
	Type           string  `json:"type"`
	DateDebut      string  `json:"date_debut"`
	DateFin        string  `json:"date_fin"`
	Couleur        string  `json:"couleur"`
	Notes          *string `json:"notes"`
	Virtuel        bool    `json:"virtuel"`
	StatutPaiement string  `json:"statut_paiement,omitempty"` // paid | unpaid | cancelled
}
