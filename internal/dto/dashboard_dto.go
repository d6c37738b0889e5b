package dto

import "github.com/shopspring/decimal"

type ImpayesResponse struct {
	Nombre  int             `json:"nombre"`
	Montant decimal.Decimal `json:"montant"`
}

type CaisseResponse struct {
	Especes decimal.Decimal `json:"especes"`
	Cheques decimal.Decimal `json:"cheques"`
	Total   decimal.Decimal `json:"total"`
}

type AlerteResponse struct {
	ClientID    string          `json:"client_id"`
	Nom         string          `json:"nom"`
	DateMariage string          `json:"date_mariage"`
	Jours       int             `json:"jours"`
	TotalDu     decimal.Decimal `json:"total_du"`
	TotalPaye   decimal.Decimal `json:"total_paye"`
	Reste       decimal.Decimal `json:"reste"`
}

type MariageResponse struct {
	ClientID      string  `json:"client_id"`
	Couple        string  `json:"couple"`
	DateMariage   string  `json:"date_mariage"`
	Statut        string  `json:"statut"`
	LieuReception *string `json:"lieu_reception"`
}

type DashboardResponse struct {
	CAMois            decimal.Decimal   `json:"ca_mois"`
	CAAnnee           decimal.Decimal   `json:"ca_annee"`
	MariagesMois      int               `json:"mariages_mois"`
	Impayes           ImpayesResponse   `json:"impayes"`
	Caisse            CaisseResponse    `json:"caisse"`
	Alertes           []AlerteResponse  `json:"alertes"`
	ProchainsMariages []MariageResponse `json:"prochains_mariages"`
}

// StatsAnnuellesResponse backs the two yearly charts.
type StatsAnnuellesResponse struct {
	Annee           int                 `json:"annee"`
	CAParMois       [12]decimal.Decimal `json:"ca_par_mois"`
	MariagesParMois [12]int             `json:"mariages_par_mois"`
}
