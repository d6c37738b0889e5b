package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"elysee/internal/caisse"
	"elysee/internal/dto"
	"elysee/internal/ledger"
	"elysee/internal/metrics"
	"elysee/internal/model"
	"elysee/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Links reported when a deposit is deleted.
const (
	LienFK          = "fk"
	LienHeuristique = "heuristique"
	LienAucun       = "aucun"
	LienEspeces     = "especes"
)

type BanqueService interface {
	Recap(ctx context.Context, q dto.PeriodeQuery) (*dto.RecapResponse, error)
	DeposerCheques(ctx context.Context, req dto.DeposerChequesRequest) (*dto.DeposerChequesResponse, error)
	DeposerEspeces(ctx context.Context, req dto.DepotEspecesRequest) (*dto.DepotResponse, error)
	SupprimerDepot(ctx context.Context, id uuid.UUID) (*dto.SuppressionDepotResponse, error)
	RapportComptable(ctx context.Context, q dto.RapportComptableQuery) (*dto.RapportComptableResponse, error)
}

type banqueService struct {
	reglements repository.ReglementRepository
	depots     repository.DepotRepository
	debits     repository.DebitRepository
	now        func() time.Time
}

func NewBanqueService(
	reglements repository.ReglementRepository,
	depots repository.DepotRepository,
	debits repository.DebitRepository,
) BanqueService {
	return &banqueService{reglements: reglements, depots: depots, debits: debits, now: time.Now}
}

// ── Recap ─────────────────────────────────────────────────────────────────────

func (s *banqueService) Recap(ctx context.Context, q dto.PeriodeQuery) (*dto.RecapResponse, error) {
	periode, err := resoudrePeriode(q, s.now())
	if err != nil {
		return nil, err
	}
	regs, err := s.reglements.ListByPeriode(ctx, periode.Debut, periode.Fin, "")
	if err != nil {
		return nil, indisponible("règlements", err)
	}
	depots, err := s.depots.ListByPeriode(ctx, periode.Debut, periode.Fin)
	if err != nil {
		return nil, indisponible("dépôts", err)
	}

	recap := caisse.Rapprocher(regs, depots)
	if !recap.Cheques.Coherent() {
		log.Warn().
			Str("debut", jour(periode.Debut)).
			Str("fin", jour(periode.Fin)).
			Str("ecart", recap.Cheques.Ecart.StringFixed(2)).
			Msg("chèques déposés et dépôts bancaires divergent")
	}

	resp := &dto.RecapResponse{
		Periode:  dto.PeriodeResponse{Debut: jour(periode.Debut), Fin: jour(periode.Fin)},
		Especes:  toLigneMode(recap.Especes),
		Virement: toLigneMode(recap.Virement),
		CB:       toLigneMode(recap.CB),
		Cheques: dto.RecapChequesResponse{
			LigneModeResponse: toLigneMode(recap.Cheques.LigneMode),
			DeposeSelonDepots: recap.Cheques.DeposeSelonDepots,
			Ecart:             recap.Cheques.Ecart,
			Coherent:          recap.Cheques.Coherent(),
		},
		TotalBanque:     recap.TotalBanque,
		TotalCaisse:     recap.TotalCaisse,
		TotalEncaisse:   recap.TotalEncaisse,
		ChequesEnCaisse: []dto.ChequeEnCaisseResponse{},
		Depots:          make([]dto.DepotResponse, len(depots)),
	}
	enCaisse := caisse.ChequesEnCaisse(regs)
	for i := range enCaisse {
		r := &enCaisse[i]
		resp.ChequesEnCaisse = append(resp.ChequesEnCaisse, dto.ChequeEnCaisseResponse{
			ID:        r.ID.String(),
			ClientID:  r.ClientID.String(),
			NomClient: caisse.ReferenceDepot(r.Client),
			Date:      jour(r.Date),
			Montant:   r.Montant,
			Reference: r.Reference,
		})
	}
	for i := range depots {
		resp.Depots[i] = toDepotResponse(&depots[i])
	}
	return resp, nil
}

func resoudrePeriode(q dto.PeriodeQuery, now time.Time) (caisse.Periode, error) {
	var debut, fin *time.Time
	var err error
	if debut, err = parseJourOpt(&q.Debut); err != nil {
		return caisse.Periode{}, err
	}
	if fin, err = parseJourOpt(&q.Fin); err != nil {
		return caisse.Periode{}, err
	}
	p, err := caisse.Resoudre(q.Preset, debut, fin, now)
	if err != nil {
		return caisse.Periode{}, invalide("période %q inconnue", q.Preset)
	}
	if p.Fin.Before(p.Debut) {
		return caisse.Periode{}, invalide("la date de fin précède la date de début")
	}
	return p, nil
}

// ── DeposerCheques ────────────────────────────────────────────────────────────
// Each cheque is one transaction: the flag update and the deposit row are
// written together or not at all. A failing cheque does not stop the batch;
// the caller gets one result per id.

func (s *banqueService) DeposerCheques(ctx context.Context, req dto.DeposerChequesRequest) (*dto.DeposerChequesResponse, error) {
	date, err := parseJour(req.Date)
	if err != nil {
		return nil, err
	}
	resp := &dto.DeposerChequesResponse{Resultats: make([]dto.ResultatDepotCheque, 0, len(req.IDs))}

	for _, raw := range req.IDs {
		res := dto.ResultatDepotCheque{ReglementID: raw}
		id, err := uuid.Parse(raw)
		if err == nil {
			var depot *model.DepotBanque
			depot, err = s.deposerCheque(ctx, id, date)
			if err == nil {
				res.DepotID = depot.ID.String()
			}
		}

		if err != nil {
			res.Statut = "erreur"
			res.Erreur = err.Error()
			resp.Echecs++
			metrics.DepotsCheques.WithLabelValues("erreur").Inc()
			log.Warn().Err(err).Str("reglement_id", raw).Msg("dépôt de chèque refusé")
		} else {
			res.Statut = "ok"
			resp.Deposes++
			metrics.DepotsCheques.WithLabelValues("ok").Inc()
		}
		resp.Resultats = append(resp.Resultats, res)
	}

	log.Info().
		Int("deposes", resp.Deposes).
		Int("echecs", resp.Echecs).
		Str("date", jour(date)).
		Msg("dépôt de chèques")
	return resp, nil
}

func (s *banqueService) deposerCheque(ctx context.Context, id uuid.UUID, date time.Time) (*model.DepotBanque, error) {
	var depot model.DepotBanque
	err := runTx(ctx, s.reglements.DB(), func(tx *gorm.DB) error {
		reg, err := s.reglements.FindByID(ctx, tx, id)
		if err != nil {
			return introuvable("règlement", err)
		}
		avant := reg.Depose
		if err := caisse.Deposer(reg, date); err != nil {
			return fmt.Errorf("%w: %w", ErrConflit, err)
		}
		n, err := s.reglements.UpdateDepot(ctx, tx, reg, avant)
		if err != nil {
			return err
		}
		if n == 0 {
			return fmt.Errorf("%w: chèque modifié entre-temps", ErrConflit)
		}
		depot = caisse.DepotPourCheque(reg, caisse.ReferenceDepot(reg.Client), date)
		return s.depots.Create(ctx, tx, &depot)
	})
	if err != nil {
		return nil, err
	}
	return &depot, nil
}

// ── DeposerEspeces ────────────────────────────────────────────────────────────

func (s *banqueService) DeposerEspeces(ctx context.Context, req dto.DepotEspecesRequest) (*dto.DepotResponse, error) {
	date, err := parseJour(req.Date)
	if err != nil {
		return nil, err
	}
	if !req.Montant.IsPositive() {
		return nil, invalide("le montant doit être positif")
	}
	d := &model.DepotBanque{
		Date:      date,
		Montant:   req.Montant.Round(2),
		Mode:      model.ModeEspeces,
		Reference: req.Reference,
		Notes:     req.Notes,
	}
	if err := s.depots.Create(ctx, nil, d); err != nil {
		return nil, err
	}
	log.Info().Str("depot_id", d.ID.String()).Str("montant", d.Montant.StringFixed(2)).Msg("dépôt d'espèces")
	resp := toDepotResponse(d)
	return &resp, nil
}

// ── SupprimerDepot ────────────────────────────────────────────────────────────
// Deleting a cheque deposit returns the cheque to the caisse in the same
// transaction. The explicit reglement_id link is used when present; older
// rows fall back to matching amount and client name.

func (s *banqueService) SupprimerDepot(ctx context.Context, id uuid.UUID) (*dto.SuppressionDepotResponse, error) {
	resp := &dto.SuppressionDepotResponse{DepotID: id.String(), Lien: LienEspeces}

	err := runTx(ctx, s.depots.DB(), func(tx *gorm.DB) error {
		depot, err := s.depots.FindByID(ctx, tx, id)
		if err != nil {
			return introuvable("dépôt", err)
		}

		if depot.Mode == model.ModeCheque {
			regID, lien, ambigu, err := s.chequeDuDepot(ctx, tx, depot)
			if err != nil {
				return err
			}
			resp.Lien, resp.Ambigu = lien, ambigu
			if regID != nil {
				existe, err := s.retournerCheque(ctx, tx, *regID)
				if err != nil {
					return err
				}
				if existe {
					rid := regID.String()
					resp.ReglementID = &rid
				} else {
					log.Warn().Str("depot_id", id.String()).Str("reglement_id", regID.String()).Msg("chèque lié introuvable")
					resp.Lien, resp.Ambigu = LienAucun, false
				}
			}
		}

		n, err := s.depots.Delete(ctx, tx, id)
		if err != nil {
			return err
		}
		if n == 0 {
			return ErrIntrouvable
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.DepotsSupprimes.WithLabelValues(resp.Lien).Inc()
	ev := log.Info()
	if resp.Lien == LienAucun || resp.Ambigu {
		ev = log.Warn()
	}
	ev.Str("depot_id", resp.DepotID).Str("lien", resp.Lien).Bool("ambigu", resp.Ambigu).Msg("dépôt supprimé")
	return resp, nil
}

func (s *banqueService) chequeDuDepot(ctx context.Context, tx *gorm.DB, depot *model.DepotBanque) (*uuid.UUID, string, bool, error) {
	if depot.ReglementID != nil {
		return depot.ReglementID, LienFK, false, nil
	}
	regs, err := s.reglements.ListChequesDeposes(ctx, tx, depot.Montant)
	if err != nil {
		return nil, "", false, indisponible("chèques déposés", err)
	}
	candidats := make([]caisse.Candidat, len(regs))
	for i := range regs {
		candidats[i] = caisse.Candidat{Reglement: regs[i], NomClient: caisse.ReferenceDepot(regs[i].Client)}
	}
	found, ok := caisse.RetrouverCheque(*depot, candidats)
	if !ok {
		return nil, LienAucun, false, nil
	}
	return &found.ReglementID, LienHeuristique, found.Ambigu, nil
}

// retournerCheque reports false when the cheque no longer exists.
func (s *banqueService) retournerCheque(ctx context.Context, tx *gorm.DB, id uuid.UUID) (bool, error) {
	reg, err := s.reglements.FindByID(ctx, tx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, indisponible("règlement", err)
	}
	if err := caisse.Retourner(reg); err != nil {
		// already back in the caisse; the deposit row is still removed
		log.Warn().Err(err).Str("reglement_id", id.String()).Msg("chèque déjà en caisse")
		return true, nil
	}
	n, err := s.reglements.UpdateDepot(ctx, tx, reg, true)
	if err != nil {
		return false, err
	}
	if n == 0 {
		return false, fmt.Errorf("%w: chèque modifié entre-temps", ErrConflit)
	}
	return true, nil
}

// ── RapportComptable ──────────────────────────────────────────────────────────

func (s *banqueService) RapportComptable(ctx context.Context, q dto.RapportComptableQuery) (*dto.RapportComptableResponse, error) {
	if q.Mois < 1 || q.Mois > 12 {
		return nil, invalide("mois %d hors plage", q.Mois)
	}
	debut := time.Date(q.Annee, time.Month(q.Mois), 1, 0, 0, 0, 0, time.UTC)
	fin := debut.AddDate(0, 1, -1)

	debits, err := s.debits.ListByPeriode(ctx, debut, fin)
	if err != nil {
		return nil, indisponible("débits", err)
	}

	resp := &dto.RapportComptableResponse{
		Annee:    q.Annee,
		Mois:     q.Mois,
		Location: toVentilation(ledger.ParCategorie(debits, model.CategorieLocation)),
		Option:   toVentilation(ledger.ParCategorie(debits, model.CategorieOption)),
		General:  toVentilation(ledger.Ventiler(debits)),
		Lignes:   make([]dto.LigneRapportResponse, len(debits)),
	}
	for i := range debits {
		d := &debits[i]
		ht := d.MontantHT().Round(2)
		nom := ""
		if d.Client != nil {
			nom = d.Client.NomComplet()
		}
		resp.Lignes[i] = dto.LigneRapportResponse{
			Date:        jour(d.Date),
			Client:      nom,
			Designation: d.Designation,
			Categorie:   d.Categorie,
			Quantite:    d.Quantite,
			MontantHT:   ht,
			TVA:         d.MontantTTC.Sub(ht),
			MontantTTC:  d.MontantTTC,
		}
	}
	return resp, nil
}
