package dto

type ParametresRequest struct {
	NomEntreprise      string  `json:"nom_entreprise"      validate:"max=200"`
	Adresse            string  `json:"adresse"             validate:"max=300"`
	Telephone          string  `json:"telephone"           validate:"max=30"`
	Email              string  `json:"email"               validate:"omitempty,email"`
	Siret              string  `json:"siret"               validate:"max=50"`
	LogoURL            *string `json:"logo_url"            validate:"omitempty,url"`
	ConditionsPaiement string  `json:"conditions_paiement"`
	MentionsLegales    string  `json:"mentions_legales"`
	NomGerant          string  `json:"nom_gerant"          validate:"max=100"`
}

type ParametresResponse struct {
	NomEntreprise      string  `json:"nom_entreprise"`
	Adresse            string  `json:"adresse"`
	Telephone          string  `json:"telephone"`
	Email              string  `json:"email"`
	Siret              string  `json:"siret"`
	LogoURL            *string `json:"logo_url"`
	ConditionsPaiement string  `json:"conditions_paiement"`
	MentionsLegales    string  `json:"mentions_legales"`
	NomGerant          string  `json:"nom_gerant"`
}

// EnvoiFactureRequest optionally overrides the client's e-mail address.
type EnvoiFactureRequest struct {
	Email string `json:"email" validate:"omitempty,email"`
}

type EnvoiFactureResponse struct {
	Statut string `json:"statut"` // en_file
	Email  string `json:"email"`
}
