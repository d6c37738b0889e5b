package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"elysee/internal/dto"
	"elysee/internal/ledger"
	"elysee/internal/model"
	"elysee/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Colours of the wedding entries derived from client files.
const (
	CouleurAnnule  = "#9ca3af"
	CouleurImpaye  = "#dc2626"
	CouleurPaye    = "#16a34a"
	couleurDefault = "#6366f1"
)

// Payment status shown on a derived wedding entry.
const (
	PaiementPaye   = "paid"
	PaiementImpaye = "unpaid"
	PaiementAnnule = "cancelled"
)

type PlanningService interface {
	// Lister returns stored events starting in [debut, fin) merged with the
	// weddings of the same window, ordered by start.
	Lister(ctx context.Context, q dto.PlanningQuery) ([]dto.EvenementResponse, error)
	Creer(ctx context.Context, req dto.EvenementRequest) (*dto.EvenementResponse, error)
	Modifier(ctx context.Context, id uuid.UUID, req dto.EvenementRequest) (*dto.EvenementResponse, error)
	Supprimer(ctx context.Context, id uuid.UUID) error
}

type planningService struct {
	evenements repository.EvenementRepository
	clients    repository.ClientRepository
	debits     repository.DebitRepository
	reglements repository.ReglementRepository
}

func NewPlanningService(
	evenements repository.EvenementRepository,
	clients repository.ClientRepository,
	debits repository.DebitRepository,
	reglements repository.ReglementRepository,
) PlanningService {
	return &planningService{evenements: evenements, clients: clients, debits: debits, reglements: reglements}
}

func (s *planningService) Lister(ctx context.Context, q dto.PlanningQuery) ([]dto.EvenementResponse, error) {
	debut, err := parseJour(q.Debut)
	if err != nil {
		return nil, err
	}
	fin, err := parseJour(q.Fin)
	if err != nil {
		return nil, err
	}
	if !fin.After(debut) {
		return nil, invalide("la date de fin doit suivre la date de début")
	}

	evts, err := s.evenements.ListEntre(ctx, debut, fin)
	if err != nil {
		return nil, indisponible("événements", err)
	}
	mariages, err := s.clients.ListMariages(ctx, debut, fin.AddDate(0, 0, -1))
	if err != nil {
		return nil, indisponible("clients", err)
	}
	debits, err := s.debits.ListAll(ctx)
	if err != nil {
		return nil, indisponible("débits", err)
	}
	regs, err := s.reglements.ListAll(ctx)
	if err != nil {
		return nil, indisponible("règlements", err)
	}
	soldes := ledger.SoldesParClient(debits, regs)

	out := make([]dto.EvenementResponse, 0, len(evts)+len(mariages))
	for i := range evts {
		out = append(out, toEvenementResponse(&evts[i]))
	}
	for i := range mariages {
		c := &mariages[i]
		statut := statutPaiement(c, soldes)
		out = append(out, mariageVirtuel(c, statut))
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].DateDebut < out[j].DateDebut })
	return out, nil
}

func statutPaiement(c *model.Client, soldes map[uuid.UUID]decimal.Decimal) string {
	if c.Statut == model.StatutAnnule {
		return PaiementAnnule
	}
	if ledger.Classer(soldes[c.ID]) == ledger.EtatDu {
		return PaiementImpaye
	}
	return PaiementPaye
}

func mariageVirtuel(c *model.Client, statut string) dto.EvenementResponse {
	couleur := CouleurPaye
	switch statut {
	case PaiementAnnule:
		couleur = CouleurAnnule
	case PaiementImpaye:
		couleur = CouleurImpaye
	}
	var notes *string
	lieu := c.LieuCeremonie
	if lieu == nil || strings.TrimSpace(*lieu) == "" {
		lieu = c.LieuReception
	}
	if lieu != nil && strings.TrimSpace(*lieu) != "" {
		n := "Lieu: " + strings.TrimSpace(*lieu)
		notes = &n
	}
	j := jour(*c.DateMariage)
	id := c.ID.String()
	return dto.EvenementResponse{
		ID:             "wedding-" + id,
		ClientID:       &id,
		Titre:          "Mariage " + c.Couple(),
		Type:           model.EvenementMariage,
		DateDebut:      j + "T10:00:00Z",
		DateFin:        j + "T23:00:00Z",
		Couleur:        couleur,
		Notes:          notes,
		Virtuel:        true,
		StatutPaiement: statut,
	}
}

func toEvenementResponse(e *model.Evenement) dto.EvenementResponse {
	resp := dto.EvenementResponse{
		ID:        e.ID.String(),
		Titre:     e.Titre,
		Type:      e.Type,
		DateDebut: e.DateDebut.UTC().Format(time.RFC3339),
		DateFin:   e.DateFin.UTC().Format(time.RFC3339),
		Couleur:   couleurDefault,
		Notes:     e.Notes,
	}
	if e.ClientID != nil {
		id := e.ClientID.String()
		resp.ClientID = &id
	}
	if e.Couleur != nil && *e.Couleur != "" {
		resp.Couleur = *e.Couleur
	}
	return resp
}

// ── CRUD ──────────────────────────────────────────────────────────────────────

func (s *planningService) Creer(ctx context.Context, req dto.EvenementRequest) (*dto.EvenementResponse, error) {
	e := &model.Evenement{}
	if err := appliquerEvenement(e, req); err != nil {
		return nil, err
	}
	if e.ClientID != nil {
		if _, err := s.clients.FindByID(ctx, *e.ClientID); err != nil {
			return nil, introuvable("client", err)
		}
	}
	if err := s.evenements.Create(ctx, e); err != nil {
		return nil, err
	}
	resp := toEvenementResponse(e)
	return &resp, nil
}

func (s *planningService) Modifier(ctx context.Context, id uuid.UUID, req dto.EvenementRequest) (*dto.EvenementResponse, error) {
	e, err := s.evenements.FindByID(ctx, id)
	if err != nil {
		return nil, introuvable("événement", err)
	}
	if err := appliquerEvenement(e, req); err != nil {
		return nil, err
	}
	if err := s.evenements.Update(ctx, e); err != nil {
		return nil, err
	}
	resp := toEvenementResponse(e)
	return &resp, nil
}

func (s *planningService) Supprimer(ctx context.Context, id uuid.UUID) error {
	n, err := s.evenements.Delete(ctx, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrIntrouvable
	}
	return nil
}

func appliquerEvenement(e *model.Evenement, req dto.EvenementRequest) error {
	debut, err := time.Parse(time.RFC3339, req.DateDebut)
	if err != nil {
		return invalide("date_debut %q attendue au format RFC 3339", req.DateDebut)
	}
	fin, err := time.Parse(time.RFC3339, req.DateFin)
	if err != nil {
		return invalide("date_fin %q attendue au format RFC 3339", req.DateFin)
	}
	if fin.Before(debut) {
		return invalide("la fin précède le début")
	}
	var clientID *uuid.UUID
	if req.ClientID != nil && *req.ClientID != "" {
		id, err := uuid.Parse(*req.ClientID)
		if err != nil {
			return invalide("client_id invalide")
		}
		clientID = &id
	}
	e.ClientID = clientID
	e.Titre = strings.TrimSpace(req.Titre)
	e.Type = req.Type
	if e.Type == "" {
		e.Type = model.EvenementAutre
	}
	e.DateDebut, e.DateFin = debut, fin
	e.Couleur = req.Couleur
	e.Notes = req.Notes
	return nil
}
