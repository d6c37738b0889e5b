package importer

import (
	"sort"

	"elysee/internal/model"

	"github.com/google/uuid"
)

// GroupeDoublons is one charge entered several times for the same client.
type GroupeDoublons struct {
	ClientID  uuid.UUID
	Cle       string
	Conserve  model.Debit
	Supprimes []model.Debit
}

// RapportDoublons is the outcome of a duplicate scan.
type RapportDoublons struct {
	ClientsAnalyses int
	DoublonsTrouves int
	Groupes         []GroupeDoublons
	IDsASupprimer   []uuid.UUID
}

// CleDoublon is the grouping key inside one client: categorie, unit price to
// the cent and normalised designation.
func CleDoublon(d model.Debit) string {
	return d.Categorie + "|" + d.PrixUnitaireHT.StringFixed(2) + "|" + NormaliserDesignation(d.Designation)
}

// DetecterDoublons groups debits per client and key, keeps the oldest row of
// each group and reports the others. The input slice is not modified.
func DetecterDoublons(debits []model.Debit) RapportDoublons {
	tries := make([]model.Debit, len(debits))
	copy(tries, debits)
	sort.SliceStable(tries, func(i, j int) bool {
		return tries[i].CreatedAt.Before(tries[j].CreatedAt)
	})

	type groupe struct {
		client uuid.UUID
		cle    string
		lignes []model.Debit
	}
	var ordre []*groupe
	index := make(map[string]*groupe)
	clients := make(map[uuid.UUID]struct{})

	for _, d := range tries {
		clients[d.ClientID] = struct{}{}
		cle := CleDoublon(d)
		k := d.ClientID.String() + "|" + cle
		g, ok := index[k]
		if !ok {
			g = &groupe{client: d.ClientID, cle: cle}
			index[k] = g
			ordre = append(ordre, g)
		}
		g.lignes = append(g.lignes, d)
	}

	rapport := RapportDoublons{ClientsAnalyses: len(clients)}
	for _, g := range ordre {
		if len(g.lignes) < 2 {
			continue
		}
		gd := GroupeDoublons{ClientID: g.client, Cle: g.cle, Conserve: g.lignes[0], Supprimes: g.lignes[1:]}
		for _, d := range gd.Supprimes {
			rapport.IDsASupprimer = append(rapport.IDsASupprimer, d.ID)
		}
		rapport.DoublonsTrouves += len(gd.Supprimes)
		rapport.Groupes = append(rapport.Groupes, gd)
	}
	return rapport
}

// Retirer returns debits without the given ids.
func Retirer(debits []model.Debit, ids []uuid.UUID) []model.Debit {
	exclus := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		exclus[id] = struct{}{}
	}
	out := make([]model.Debit, 0, len(debits))
	for _, d := range debits {
		if _, ok := exclus[d.ID]; !ok {
			out = append(out, d)
		}
	}
	return out
}
