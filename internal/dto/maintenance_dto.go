package dto

type GroupeDoublonsResponse struct {
	ClientID  string   `json:"client_id"`
	Cle       string   `json:"cle"`
	Conserve  string   `json:"conserve"`
	Supprimes []string `json:"supprimes"`
}

type DoublonsResponse struct {
	ClientsAnalyses int                      `json:"clients_analyses"`
	DoublonsTrouves int                      `json:"doublons_trouves"`
	Groupes         []GroupeDoublonsResponse `json:"groupes"`
	Supprimes       int                      `json:"supprimes"`
	Erreurs         []string                 `json:"erreurs"`
	Applique        bool                     `json:"applique"`
}

type BilanResponse struct {
	Inseres int      `json:"inseres"`
	Ignores int      `json:"ignores"`
	Erreurs []string `json:"erreurs"`
}

type ImportResponse struct {
	Clients        BilanResponse  `json:"clients"`
	Debits         BilanResponse  `json:"debits"`
	Reglements     BilanResponse  `json:"reglements"`
	Avertissements []string       `json:"avertissements"`
	NonRattaches   []string       `json:"non_rattaches"`
	ParRegle       map[string]int `json:"par_regle"`
}
