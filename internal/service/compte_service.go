package service

import (
	"context"
	"fmt"
	"strings"

	"elysee/internal/dto"
	"elysee/internal/ledger"
	"elysee/internal/model"
	"elysee/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// CompteService manages the account of one client: debit lines, payments
// and the derived totals.
type CompteService interface {
	Compte(ctx context.Context, clientID uuid.UUID) (*dto.CompteResponse, error)
	AjouterDebit(ctx context.Context, clientID uuid.UUID, req dto.DebitRequest) (*dto.DebitResponse, error)
	SupprimerDebit(ctx context.Context, id uuid.UUID) error
	AjouterReglement(ctx context.Context, clientID uuid.UUID, req dto.ReglementRequest) (*dto.ReglementResponse, error)
	SupprimerReglement(ctx context.Context, id uuid.UUID) error
}

type compteService struct {
	clients    repository.ClientRepository
	debits     repository.DebitRepository
	reglements repository.ReglementRepository
	echeances  repository.EcheanceRepository
	tauxTVA    decimal.Decimal
}

func NewCompteService(
	clients repository.ClientRepository,
	debits repository.DebitRepository,
	reglements repository.ReglementRepository,
	echeances repository.EcheanceRepository,
	tauxTVA decimal.Decimal,
) CompteService {
	return &compteService{clients: clients, debits: debits, reglements: reglements, echeances: echeances, tauxTVA: tauxTVA}
}

// ── Compte ────────────────────────────────────────────────────────────────────

func (s *compteService) Compte(ctx context.Context, clientID uuid.UUID) (*dto.CompteResponse, error) {
	client, err := s.clients.FindByID(ctx, clientID)
	if err != nil {
		return nil, introuvable("client", err)
	}
	debits, err := s.debits.ListByClient(ctx, clientID)
	if err != nil {
		return nil, indisponible("débits", err)
	}
	regs, err := s.reglements.ListByClient(ctx, clientID)
	if err != nil {
		return nil, indisponible("règlements", err)
	}
	echeances, err := s.echeances.ListByClient(ctx, clientID)
	if err != nil {
		return nil, indisponible("échéances", err)
	}

	t := ledger.Calculer(debits, regs)
	resp := &dto.CompteResponse{
		Client:     toClientResponse(client),
		Debits:     make([]dto.DebitResponse, len(debits)),
		Reglements: make([]dto.ReglementResponse, len(regs)),
		Echeances:  make([]dto.EcheanceResponse, len(echeances)),
		TotalDebit: t.TotalDebit,
		TotalPaye:  t.TotalPaye,
		Solde:      t.Solde,
		Etat:       string(t.Etat),
		Location:   toVentilation(ledger.ParCategorie(debits, model.CategorieLocation)),
		Option:     toVentilation(ledger.ParCategorie(debits, model.CategorieOption)),
		Total:      toVentilation(ledger.Ventiler(debits)),
	}
	for i := range debits {
		resp.Debits[i] = toDebitResponse(&debits[i])
	}
	for i := range regs {
		resp.Reglements[i] = toReglementResponse(&regs[i])
	}
	for i := range echeances {
		resp.Echeances[i] = toEcheanceResponse(&echeances[i])
	}
	return resp, nil
}

// ── Débits ────────────────────────────────────────────────────────────────────
// montant_ttc is never sent: the database computes it. A TTC amount typed
// by the user is converted to a unit HT price first.

func (s *compteService) AjouterDebit(ctx context.Context, clientID uuid.UUID, req dto.DebitRequest) (*dto.DebitResponse, error) {
	if _, err := s.clients.FindByID(ctx, clientID); err != nil {
		return nil, introuvable("client", err)
	}
	date, err := parseJour(req.Date)
	if err != nil {
		return nil, err
	}
	quantite := req.Quantite
	if quantite == 0 {
		quantite = 1
	}
	taux := s.tauxTVA
	if req.TauxTVA != nil {
		taux = *req.TauxTVA
	}
	if taux.IsNegative() {
		return nil, invalide("taux de TVA négatif")
	}

	var prixHT decimal.Decimal
	switch {
	case req.PrixUnitaireHT != nil:
		prixHT = req.PrixUnitaireHT.Round(2)
	case req.MontantTTC != nil:
		unitaireTTC := req.MontantTTC.Div(decimal.NewFromInt(int64(quantite)))
		prixHT = ledger.HTFromTTC(unitaireTTC, taux)
	default:
		return nil, invalide("prix_unitaire_ht ou montant_ttc requis")
	}
	if !prixHT.IsPositive() {
		return nil, invalide("le montant doit être positif")
	}

	d := &model.Debit{
		ClientID:       clientID,
		Date:           date,
		Quantite:       quantite,
		Designation:    strings.TrimSpace(req.Designation),
		PrixUnitaireHT: prixHT,
		TauxTVA:        taux,
		Categorie:      req.Categorie,
	}
	if err := s.debits.Create(ctx, d); err != nil {
		return nil, err
	}
	resp := toDebitResponse(d)
	return &resp, nil
}

func (s *compteService) SupprimerDebit(ctx context.Context, id uuid.UUID) error {
	n, err := s.debits.Delete(ctx, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrIntrouvable
	}
	return nil
}

// ── Règlements ────────────────────────────────────────────────────────────────
// A new payment always starts outside the bank workflow (depose=false).

func (s *compteService) AjouterReglement(ctx context.Context, clientID uuid.UUID, req dto.ReglementRequest) (*dto.ReglementResponse, error) {
	if _, err := s.clients.FindByID(ctx, clientID); err != nil {
		return nil, introuvable("client", err)
	}
	date, err := parseJour(req.Date)
	if err != nil {
		return nil, err
	}
	if !req.Montant.IsPositive() {
		return nil, invalide("le montant doit être positif")
	}
	reg := &model.Reglement{
		ClientID:  clientID,
		Date:      date,
		Mode:      req.Mode,
		Reference: req.Reference,
		Montant:   req.Montant.Round(2),
		Depose:    false,
		DateDepot: nil,
	}
	if err := s.reglements.Create(ctx, reg); err != nil {
		return nil, err
	}
	resp := toReglementResponse(reg)
	return &resp, nil
}

// SupprimerReglement refuses a deposited cheque: its bank deposit must be
// deleted first, which returns the cheque to the caisse.
func (s *compteService) SupprimerReglement(ctx context.Context, id uuid.UUID) error {
	reg, err := s.reglements.FindByID(ctx, nil, id)
	if err != nil {
		return introuvable("règlement", err)
	}
	if reg.Mode == model.ModeCheque && reg.Depose {
		return fmt.Errorf("%w: chèque déposé, supprimer d'abord le dépôt bancaire", ErrConflit)
	}
	n, err := s.reglements.Delete(ctx, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrIntrouvable
	}
	log.Info().Str("reglement_id", id.String()).Str("mode", reg.Mode).Msg("règlement supprimé")
	return nil
}
