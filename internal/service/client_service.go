package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"elysee/internal/caisse"
	"elysee/internal/dto"
	"elysee/internal/ledger"
	"elysee/internal/model"
	"elysee/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type ClientService interface {
	Creer(ctx context.Context, req dto.ClientRequest) (*dto.ClientResponse, error)
	Obtenir(ctx context.Context, id uuid.UUID) (*dto.ClientResponse, error)
	Lister(ctx context.Context, filter dto.ClientFilter) (*dto.ClientListResponse, error)
	Modifier(ctx context.Context, id uuid.UUID, req dto.ClientRequest) (*dto.ClientResponse, error)
	Archiver(ctx context.Context, id uuid.UUID, archived bool) error
	Supprimer(ctx context.Context, id uuid.UUID) error
}

type clientService struct {
	clients    repository.ClientRepository
	debits     repository.DebitRepository
	reglements repository.ReglementRepository
	now        func() time.Time
}

func NewClientService(
	clients repository.ClientRepository,
	debits repository.DebitRepository,
	reglements repository.ReglementRepository,
) ClientService {
	return &clientService{clients: clients, debits: debits, reglements: reglements, now: time.Now}
}

// ── Creer / Modifier ──────────────────────────────────────────────────────────

func (s *clientService) Creer(ctx context.Context, req dto.ClientRequest) (*dto.ClientResponse, error) {
	c := &model.Client{
		Statut:          model.StatutProspect,
		DateInscription: s.now(),
		TypePrestation:  datatypes.JSONSlice[string]{},
	}
	if err := appliquerClient(c, req); err != nil {
		return nil, err
	}
	if err := s.clients.Create(ctx, c); err != nil {
		return nil, err
	}
	resp := toClientResponse(c)
	return &resp, nil
}

func (s *clientService) Modifier(ctx context.Context, id uuid.UUID, req dto.ClientRequest) (*dto.ClientResponse, error) {
	c, err := s.clients.FindByID(ctx, id)
	if err != nil {
		return nil, introuvable("client", err)
	}
	if err := appliquerClient(c, req); err != nil {
		return nil, err
	}
	if err := s.clients.Update(ctx, c); err != nil {
		return nil, err
	}
	resp := toClientResponse(c)
	return &resp, nil
}

// appliquerClient copies the request onto c. Names are trimmed; empty
// statut and date_inscription keep the current value.
func appliquerClient(c *model.Client, req dto.ClientRequest) error {
	mariage, err := parseJourOpt(req.DateMariage)
	if err != nil {
		return err
	}
	inscription, err := parseJourOpt(req.DateInscription)
	if err != nil {
		return err
	}

	c.NomMarie1 = strings.TrimSpace(req.NomMarie1)
	c.PrenomMarie1 = strings.TrimSpace(req.PrenomMarie1)
	c.NomMarie2 = strings.TrimSpace(req.NomMarie2)
	c.PrenomMarie2 = strings.TrimSpace(req.PrenomMarie2)
	c.Telephone1, c.Telephone2 = req.Telephone1, req.Telephone2
	c.Email1, c.Email2 = req.Email1, req.Email2
	c.CinPasseport = req.CinPasseport
	c.Adresse, c.CodePostal, c.Ville = req.Adresse, req.CodePostal, req.Ville
	c.DateMariage = mariage
	c.HeureDebut, c.HeureFin = req.HeureDebut, req.HeureFin
	c.LieuCeremonie, c.LieuReception = req.LieuCeremonie, req.LieuReception
	c.NombreInvites = req.NombreInvites
	c.TypePrestation = datatypes.JSONSlice[string](req.TypePrestation)
	if c.TypePrestation == nil {
		c.TypePrestation = datatypes.JSONSlice[string]{}
	}
	c.Formule = req.Formule
	c.Referent = req.Referent
	c.Memo = req.Memo
	if req.Statut != "" {
		c.Statut = req.Statut
	}
	if inscription != nil {
		c.DateInscription = *inscription
	}
	return nil
}

func (s *clientService) Obtenir(ctx context.Context, id uuid.UUID) (*dto.ClientResponse, error) {
	c, err := s.clients.FindByID(ctx, id)
	if err != nil {
		return nil, introuvable("client", err)
	}
	resp := toClientResponse(c)
	return &resp, nil
}

// ── Lister ────────────────────────────────────────────────────────────────────
// Balances come from the full debit and payment sets. If either read fails
// the list fails: a client must never be shown as settled by default.

func (s *clientService) Lister(ctx context.Context, filter dto.ClientFilter) (*dto.ClientListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 500 {
		filter.Limit = 50
	}
	today := caisse.Jour(s.now())

	clients, err := s.clients.List(ctx, filter, today)
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
	totaux := ledger.TotauxParClient(debits, regs)

	items := make([]dto.ClientListItem, 0, len(clients))
	for i := range clients {
		c := &clients[i]
		t, ok := totaux[c.ID]
		if !ok {
			t = ledger.Totaux{TotalDebit: decimal.Zero, TotalPaye: decimal.Zero, Solde: decimal.Zero, Etat: ledger.EtatSolde}
		}
		if filter.Impayes && t.Etat != ledger.EtatDu {
			continue
		}
		items = append(items, dto.ClientListItem{
			ClientResponse: toClientResponse(c),
			TotalDebit:     t.TotalDebit,
			TotalPaye:      t.TotalPaye,
			Reste:          t.Solde,
			Etat:           string(t.Etat),
		})
	}
	if filter.Tri == "reste" {
		sort.SliceStable(items, func(i, j int) bool { return items[i].Reste.GreaterThan(items[j].Reste) })
	}

	total := len(items)
	debut := (filter.Page - 1) * filter.Limit
	if debut > total {
		debut = total
	}
	fin := debut + filter.Limit
	if fin > total {
		fin = total
	}
	return &dto.ClientListResponse{Data: items[debut:fin], Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

// ── Archiver / Supprimer ──────────────────────────────────────────────────────

func (s *clientService) Archiver(ctx context.Context, id uuid.UUID, archived bool) error {
	n, err := s.clients.SetArchived(ctx, id, archived)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrIntrouvable
	}
	return nil
}

// Supprimer is the hard delete; dependent rows cascade in the database.
func (s *clientService) Supprimer(ctx context.Context, id uuid.UUID) error {
	n, err := s.clients.Delete(ctx, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrIntrouvable
	}
	return nil
}
