package service

import (
	"context"
	"io"

	"elysee/internal/dto"
	"elysee/internal/importer"
	"elysee/internal/metrics"
	"elysee/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// MaintenanceService runs the data clean-up and import jobs shared by the
// admin API and the importer CLI.
type MaintenanceService interface {
	// AnalyserDoublons reports duplicate debits without touching them.
	AnalyserDoublons(ctx context.Context) (*dto.DoublonsResponse, error)
	// NettoyerDoublons deletes the reported duplicates when confirm is set,
	// chunk by chunk; a failing chunk does not stop the others.
	NettoyerDoublons(ctx context.Context, confirm bool) (*dto.DoublonsResponse, error)
	Importer(ctx context.Context, r io.Reader) (*dto.ImportResponse, error)
	ImporterClasseur(ctx context.Context, c *importer.Classeur) (*dto.ImportResponse, error)
}

type maintenanceService struct {
	debits    repository.DebitRepository
	store     importer.Store
	opts      importer.Options
	tailleLot int
}

func NewMaintenanceService(debits repository.DebitRepository, store importer.Store, opts importer.Options) MaintenanceService {
	taille := opts.TailleLot
	if taille <= 0 {
		taille = importer.TailleLotDefaut
	}
	return &maintenanceService{debits: debits, store: store, opts: opts, tailleLot: taille}
}

func (s *maintenanceService) AnalyserDoublons(ctx context.Context) (*dto.DoublonsResponse, error) {
	resp, _, err := s.analyser(ctx)
	return resp, err
}

func (s *maintenanceService) analyser(ctx context.Context) (*dto.DoublonsResponse, []uuid.UUID, error) {
	debits, err := s.debits.ListAll(ctx)
	if err != nil {
		return nil, nil, indisponible("débits", err)
	}
	rapport := importer.DetecterDoublons(debits)

	resp := &dto.DoublonsResponse{
		ClientsAnalyses: rapport.ClientsAnalyses,
		DoublonsTrouves: rapport.DoublonsTrouves,
		Groupes:         make([]dto.GroupeDoublonsResponse, len(rapport.Groupes)),
		Erreurs:         []string{},
	}
	for i, g := range rapport.Groupes {
		gr := dto.GroupeDoublonsResponse{
			ClientID:  g.ClientID.String(),
			Cle:       g.Cle,
			Conserve:  g.Conserve.ID.String(),
			Supprimes: make([]string, len(g.Supprimes)),
		}
		for j, d := range g.Supprimes {
			gr.Supprimes[j] = d.ID.String()
		}
		resp.Groupes[i] = gr
	}
	return resp, rapport.IDsASupprimer, nil
}

func (s *maintenanceService) NettoyerDoublons(ctx context.Context, confirm bool) (*dto.DoublonsResponse, error) {
	resp, ids, err := s.analyser(ctx)
	if err != nil {
		return nil, err
	}
	if !confirm || len(ids) == 0 {
		log.Info().Int("doublons", resp.DoublonsTrouves).Msg("analyse des doublons (sans suppression)")
		return resp, nil
	}

	supprimes, erreurs := importer.ParLots(ctx, ids, s.tailleLot, func(ctx context.Context, lot []uuid.UUID) error {
		_, err := s.debits.DeleteByIDs(ctx, lot)
		return err
	})
	resp.Applique = true
	resp.Supprimes = supprimes
	for _, e := range erreurs {
		resp.Erreurs = append(resp.Erreurs, e.Error())
	}
	metrics.DoublonsSupprimes.Add(float64(supprimes))

	log.Info().
		Int("doublons", resp.DoublonsTrouves).
		Int("supprimes", supprimes).
		Int("lots_en_erreur", len(erreurs)).
		Msg("nettoyage des doublons")
	return resp, nil
}

func (s *maintenanceService) Importer(ctx context.Context, r io.Reader) (*dto.ImportResponse, error) {
	c, err := importer.LireClasseurDepuis(r)
	if err != nil {
		return nil, invalide("classeur illisible: %v", err)
	}
	return s.ImporterClasseur(ctx, c)
}

func (s *maintenanceService) ImporterClasseur(ctx context.Context, c *importer.Classeur) (*dto.ImportResponse, error) {
	rapport, err := importer.NewImporter(s.store, s.opts).Executer(ctx, c)
	if rapport != nil {
		compter("clients", rapport.Clients)
		compter("debits", rapport.Debits)
		compter("reglements", rapport.Reglements)
	}
	if err != nil {
		return nil, indisponible("import", err)
	}
	return toImportResponse(rapport), nil
}

func compter(feuille string, b importer.Bilan) {
	metrics.ImportLignes.WithLabelValues(feuille, "insere").Add(float64(b.Inseres))
	metrics.ImportLignes.WithLabelValues(feuille, "ignore").Add(float64(b.Ignores))
	metrics.ImportLignes.WithLabelValues(feuille, "erreur").Add(float64(len(b.Erreurs)))
}

func toBilan(b importer.Bilan) dto.BilanResponse {
	erreurs := b.Erreurs
	if erreurs == nil {
		erreurs = []string{}
	}
	return dto.BilanResponse{Inseres: b.Inseres, Ignores: b.Ignores, Erreurs: erreurs}
}

func toImportResponse(r *importer.Rapport) *dto.ImportResponse {
	resp := &dto.ImportResponse{
		Clients:        toBilan(r.Clients),
		Debits:         toBilan(r.Debits),
		Reglements:     toBilan(r.Reglements),
		Avertissements: r.Avertissements,
		NonRattaches:   r.NonRattaches,
		ParRegle:       r.ParRegle,
	}
	if resp.Avertissements == nil {
		resp.Avertissements = []string{}
	}
	if resp.NonRattaches == nil {
		resp.NonRattaches = []string{}
	}
	return resp
}
