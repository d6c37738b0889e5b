// Package importer loads the historical workbook into the store and cleans
// up duplicate debits. Name resolution goes through an ordered cascade of
// matching rules; rows that cannot be attached become warnings, never errors.
package importer

import (
	"context"
	"fmt"
	"time"

	"elysee/internal/config"
	"elysee/internal/ledger"
	"elysee/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Store is what the import needs from persistence.
type Store interface {
	ListClients(ctx context.Context) ([]model.Client, error)
	CreateClient(ctx context.Context, c *model.Client) error
	ListDebits(ctx context.Context) ([]model.Debit, error)
	CreateDebits(ctx context.Context, debits []model.Debit) error
	ListReglements(ctx context.Context) ([]model.Reglement, error)
	CreateReglements(ctx context.Context, regs []model.Reglement) error
}

// Options tunes an import run.
type Options struct {
	TailleLot     int
	TauxTVA       decimal.Decimal
	LieuReception string
	Maintenant    func() time.Time
}

// OptionsDepuis reads the import settings from the runtime configuration.
func OptionsDepuis(cfg *config.Config) Options {
	return Options{
		TailleLot:     cfg.ImportBatchSize,
		TauxTVA:       decimal.NewFromFloat(cfg.TauxTVA),
		LieuReception: cfg.LieuReception,
	}
}

// Bilan counts what happened to one sheet.
type Bilan struct {
	Inseres int
	Ignores int
	Erreurs []string
}

// Rapport is the summary of an import run.
type Rapport struct {
	Clients        Bilan
	Debits         Bilan
	Reglements     Bilan
	Avertissements []string
	// NonRattaches lists payment rows whose client could not be resolved,
	// as "<nom> (<date>)".
	NonRattaches []string
	// ParRegle counts how many payment rows each matching rule resolved.
	ParRegle map[string]int
}

type Importer struct {
	store Store
	opts  Options
}

func NewImporter(store Store, opts Options) *Importer {
	if opts.TailleLot <= 0 {
		opts.TailleLot = TailleLotDefaut
	}
	if opts.TauxTVA.IsZero() {
		opts.TauxTVA = decimal.NewFromInt(19)
	}
	if opts.Maintenant == nil {
		opts.Maintenant = time.Now
	}
	return &Importer{store: store, opts: opts}
}

func jourISO(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}

// Executer imports clients, then debits, then payments. A fetch failure of
// existing rows aborts the run before anything is written for that sheet.
func (im *Importer) Executer(ctx context.Context, c *Classeur) (*Rapport, error) {
	rapport := &Rapport{ParRegle: make(map[string]int)}

	parExcel, idx, dates, err := im.importerClients(ctx, c.Clients, rapport)
	if err != nil {
		return rapport, err
	}
	if err := im.importerDebits(ctx, c.Debits, parExcel, dates, rapport); err != nil {
		return rapport, err
	}
	if err := im.importerReglements(ctx, c.Reglements, idx, rapport); err != nil {
		return rapport, err
	}

	log.Info().
		Int("clients_inseres", rapport.Clients.Inseres).
		Int("debits_inseres", rapport.Debits.Inseres).
		Int("reglements_inseres", rapport.Reglements.Inseres).
		Int("non_rattaches", len(rapport.NonRattaches)).
		Msg("import terminé")
	return rapport, nil
}

// ── Clients ───────────────────────────────────────────────────────────────────
// Deduplicated by NOM|date_mariage. Inserted one by one because each new id
// feeds the debit and payment mappings.

func (im *Importer) importerClients(ctx context.Context, lignes []LigneClient, r *Rapport) (map[int]uuid.UUID, *Index, map[uuid.UUID]time.Time, error) {
	existants, err := im.store.ListClients(ctx)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("lecture clients: %w", err)
	}
	connus := make(map[string]uuid.UUID, len(existants))
	for _, c := range existants {
		connus[NormaliserNom(c.NomMarie1)+"|"+jourISO(c.DateMariage)] = c.ID
	}

	parExcel := make(map[int]uuid.UUID)
	dates := make(map[uuid.UUID]time.Time)
	idx := NewIndex()

	for _, l := range lignes {
		cle := NormaliserNom(l.Nom) + "|" + jourISO(l.DateMariage)
		if id, ok := connus[cle]; ok {
			parExcel[l.ExcelID] = id
			idx.Ajouter(l.Nom+" "+l.Prenom, id)
			idx.Ajouter(l.Nom, id)
			r.Clients.Ignores++
			continue
		}

		statut := model.StatutConfirme
		if l.Statut == model.StatutAnnule {
			statut = model.StatutAnnule
		}
		inscription := im.opts.Maintenant()
		if l.DateInscription != nil {
			inscription = *l.DateInscription
		}
		client := &model.Client{
			NomMarie1:       l.Nom,
			PrenomMarie1:    l.Prenom,
			CinPasseport:    optionnel(l.CIN),
			Telephone1:      optionnel(l.Telephone),
			DateMariage:     l.DateMariage,
			DateInscription: inscription,
			Statut:          statut,
			LieuReception:   optionnel(im.opts.LieuReception),
			TypePrestation:  datatypes.JSONSlice[string]{},
		}
		if l.NumContrat != "" {
			client.Memo = optionnel("Contrat n° " + l.NumContrat)
		}
		if err := im.store.CreateClient(ctx, client); err != nil {
			r.Clients.Erreurs = append(r.Clients.Erreurs, fmt.Sprintf("ligne %d (%s %s): %v", l.Ligne, l.Nom, l.Prenom, err))
			continue
		}
		connus[cle] = client.ID
		parExcel[l.ExcelID] = client.ID
		idx.Ajouter(l.Nom+" "+l.Prenom, client.ID)
		idx.Ajouter(l.Nom, client.ID)
		r.Clients.Inseres++
	}

	for _, l := range lignes {
		id, ok := parExcel[l.ExcelID]
		if !ok {
			continue
		}
		switch {
		case l.DateInscription != nil:
			dates[id] = *l.DateInscription
		case l.DateMariage != nil:
			dates[id] = *l.DateMariage
		}
	}
	return parExcel, idx, dates, nil
}

// ── Débits ────────────────────────────────────────────────────────────────────
// The sheet amount is the TTC line total; HT is derived at the configured rate.
// Deduplicated by client|designation|TTC.

func (im *Importer) importerDebits(ctx context.Context, lignes []LigneDebit, parExcel map[int]uuid.UUID, dates map[uuid.UUID]time.Time, r *Rapport) error {
	existants, err := im.store.ListDebits(ctx)
	if err != nil {
		return fmt.Errorf("lecture débits: %w", err)
	}
	vus := make(map[string]struct{}, len(existants))
	for _, d := range existants {
		vus[cleDebit(d.ClientID, d.Designation, d.MontantTTC)] = struct{}{}
	}

	var aInserer []model.Debit
	for _, l := range lignes {
		clientID, ok := parExcel[l.ExcelClientID]
		if !ok {
			r.Avertissements = append(r.Avertissements, fmt.Sprintf("Client ID %d (%s) non trouvé", l.ExcelClientID, l.NomClient))
			continue
		}
		if !l.Montant.IsPositive() {
			continue
		}
		designation := l.Designation
		if designation == "" {
			designation = "Location salle"
		}
		cle := cleDebit(clientID, designation, l.Montant)
		if _, ok := vus[cle]; ok {
			r.Debits.Ignores++
			continue
		}
		vus[cle] = struct{}{}

		categorie := model.CategorieLocation
		if l.Categorie == model.CategorieOption {
			categorie = model.CategorieOption
		}
		date := im.opts.Maintenant()
		if l.Date != nil {
			date = *l.Date
		} else if fallback, ok := dates[clientID]; ok {
			date = fallback
		}
		unitaireTTC := l.Montant.Div(decimal.NewFromInt(int64(l.Quantite)))
		aInserer = append(aInserer, model.Debit{
			ClientID:       clientID,
			Date:           date,
			Quantite:       l.Quantite,
			Designation:    designation,
			PrixUnitaireHT: ledger.HTFromTTC(unitaireTTC, im.opts.TauxTVA),
			TauxTVA:        im.opts.TauxTVA,
			Categorie:      categorie,
		})
	}

	n, errs := ParLots(ctx, aInserer, im.opts.TailleLot, im.store.CreateDebits)
	r.Debits.Inseres = n
	for _, e := range errs {
		r.Debits.Erreurs = append(r.Debits.Erreurs, e.Error())
	}
	return nil
}

func cleDebit(clientID uuid.UUID, designation string, ttc decimal.Decimal) string {
	return clientID.String() + "|" + NormaliserNom(designation) + "|" + ttc.StringFixed(2)
}

// ── Règlements ────────────────────────────────────────────────────────────────
// Client resolved through the matcher; deduplicated by client|date|mode|montant.

func (im *Importer) importerReglements(ctx context.Context, lignes []LigneReglement, idx *Index, r *Rapport) error {
	existants, err := im.store.ListReglements(ctx)
	if err != nil {
		return fmt.Errorf("lecture règlements: %w", err)
	}
	vus := make(map[string]struct{}, len(existants))
	for _, reg := range existants {
		vus[cleReglement(reg.ClientID, &reg.Date, reg.Mode, reg.Montant)] = struct{}{}
	}

	matcher := NewMatcher(idx)
	var aInserer []model.Reglement
	for _, l := range lignes {
		if !l.Montant.IsPositive() {
			continue
		}
		corr, ok := matcher.Resoudre(l.NomClient)
		if !ok {
			r.NonRattaches = append(r.NonRattaches, fmt.Sprintf("%s (%s)", l.NomClient, jourISO(l.Date)))
			continue
		}
		if !modeValide(l.Mode) {
			r.Avertissements = append(r.Avertissements, fmt.Sprintf("ligne %d: mode %q inconnu", l.Ligne, l.Mode))
			continue
		}
		if l.Date == nil {
			r.Avertissements = append(r.Avertissements, fmt.Sprintf("ligne %d: date de paiement manquante", l.Ligne))
			continue
		}
		cle := cleReglement(corr.ClientID, l.Date, l.Mode, l.Montant)
		if _, ok := vus[cle]; ok {
			r.Reglements.Ignores++
			continue
		}
		vus[cle] = struct{}{}
		r.ParRegle[corr.Regle]++

		aInserer = append(aInserer, model.Reglement{
			ClientID: corr.ClientID,
			Date:     *l.Date,
			Mode:     l.Mode,
			Montant:  l.Montant,
		})
	}

	n, errs := ParLots(ctx, aInserer, im.opts.TailleLot, im.store.CreateReglements)
	r.Reglements.Inseres = n
	for _, e := range errs {
		r.Reglements.Erreurs = append(r.Reglements.Erreurs, e.Error())
	}
	return nil
}

func cleReglement(clientID uuid.UUID, date *time.Time, mode string, montant decimal.Decimal) string {
	return clientID.String() + "|" + jourISO(date) + "|" + mode + "|" + montant.StringFixed(2)
}

func modeValide(m string) bool {
	switch m {
	case model.ModeCB, model.ModeVirement, model.ModeEspeces, model.ModeCheque:
		return true
	}
	return false
}

func optionnel(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
