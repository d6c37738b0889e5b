package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"elysee/internal/dto"
	"elysee/internal/infra"
	"elysee/internal/ledger"
	"elysee/internal/model"
	"elysee/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// FactureQueue hands an invoice delivery over to the background workers.
type FactureQueue interface {
	EnqueueFacture(ctx context.Context, clientID uuid.UUID, email string, typ infra.TypeDocument) error
}

type DocumentService interface {
	// Construire loads everything printed on a facture or devis.
	Construire(ctx context.Context, clientID uuid.UUID, typ infra.TypeDocument) (*infra.Document, error)
	// PDF renders the document and returns its bytes and file name.
	PDF(ctx context.Context, clientID uuid.UUID, typ infra.TypeDocument) ([]byte, string, error)
	// Contrat allocates the next contract number and renders the location
	// or options contract.
	Contrat(ctx context.Context, clientID uuid.UUID, variante string) ([]byte, string, error)
	EnvoyerFacture(ctx context.Context, clientID uuid.UUID, req dto.EnvoiFactureRequest) (*dto.EnvoiFactureResponse, error)
}

type documentService struct {
	clients    repository.ClientRepository
	debits     repository.DebitRepository
	reglements repository.ReglementRepository
	parametres repository.ParametresRepository
	contrats   repository.ContratRepository
	queue      FactureQueue
	now        func() time.Time
}

// NewDocumentService wires the document builder. queue may be nil when no
// job queue is available; EnvoyerFacture then fails with ErrIndisponible.
func NewDocumentService(
	clients repository.ClientRepository,
	debits repository.DebitRepository,
	reglements repository.ReglementRepository,
	parametres repository.ParametresRepository,
	contrats repository.ContratRepository,
	queue FactureQueue,
) DocumentService {
	return &documentService{
		clients:    clients,
		debits:     debits,
		reglements: reglements,
		parametres: parametres,
		contrats:   contrats,
		queue:      queue,
		now:        time.Now,
	}
}

func (s *documentService) Construire(ctx context.Context, clientID uuid.UUID, typ infra.TypeDocument) (*infra.Document, error) {
	if typ != infra.DocFacture && typ != infra.DocDevis {
		return nil, invalide("type de document %q inconnu", typ)
	}
	return s.charger(ctx, clientID, typ)
}

func (s *documentService) charger(ctx context.Context, clientID uuid.UUID, typ infra.TypeDocument) (*infra.Document, error) {
	client, err := s.clients.FindByID(ctx, clientID)
	if err != nil {
		return nil, introuvable("client", err)
	}
	params, err := s.parametres.Get(ctx)
	if err != nil {
		return nil, indisponible("paramètres", err)
	}
	debits, err := s.debits.ListByClient(ctx, clientID)
	if err != nil {
		return nil, indisponible("débits", err)
	}
	regs, err := s.reglements.ListByClient(ctx, clientID)
	if err != nil {
		return nil, indisponible("règlements", err)
	}
	return &infra.Document{
		Type:       typ,
		Date:       s.now(),
		Parametres: *params,
		Client:     *client,
		Debits:     debits,
		Reglements: regs,
	}, nil
}

func (s *documentService) PDF(ctx context.Context, clientID uuid.UUID, typ infra.TypeDocument) ([]byte, string, error) {
	doc, err := s.Construire(ctx, clientID, typ)
	if err != nil {
		return nil, "", err
	}
	data, err := infra.RenderDocumentBytes(doc)
	if err != nil {
		return nil, "", fmt.Errorf("rendu %s: %w", typ, err)
	}
	return data, doc.NomFichier(), nil
}

func (s *documentService) Contrat(ctx context.Context, clientID uuid.UUID, variante string) ([]byte, string, error) {
	switch variante {
	case "", model.ContratLocation:
		variante = model.ContratLocation
	case model.ContratOptions, model.CategorieOption:
		variante = model.ContratOptions
	default:
		return nil, "", invalide("type de contrat %q inconnu", variante)
	}
	doc, err := s.charger(ctx, clientID, infra.DocContrat)
	if err != nil {
		return nil, "", err
	}
	doc.Variante = variante
	doc.Debits = ledger.Filtrer(doc.Debits, model.CategorieContrat(variante))

	// numbered only after every read succeeded
	ct := &model.Contrat{ClientID: clientID, Type: variante}
	if err := s.contrats.Create(ctx, ct); err != nil {
		return nil, "", fmt.Errorf("numérotation du contrat: %w", err)
	}
	doc.NumeroContrat = ct.Numero

	data, err := infra.RenderDocumentBytes(doc)
	if err != nil {
		return nil, "", fmt.Errorf("rendu contrat: %w", err)
	}
	log.Info().Str("client_id", clientID.String()).Str("type", variante).Int64("numero", ct.Numero).Msg("contrat émis")
	return data, doc.NomFichier(), nil
}

// EnvoyerFacture queues the invoice for e-mail delivery. The address comes
// from the request, else from the client file.
func (s *documentService) EnvoyerFacture(ctx context.Context, clientID uuid.UUID, req dto.EnvoiFactureRequest) (*dto.EnvoiFactureResponse, error) {
	client, err := s.clients.FindByID(ctx, clientID)
	if err != nil {
		return nil, introuvable("client", err)
	}
	email := strings.TrimSpace(req.Email)
	for _, e := range []*string{client.Email1, client.Email2} {
		if email == "" && e != nil {
			email = strings.TrimSpace(*e)
		}
	}
	if email == "" {
		return nil, invalide("aucune adresse e-mail pour ce client")
	}
	if s.queue == nil {
		return nil, fmt.Errorf("%w: file d'envoi", ErrIndisponible)
	}
	if err := s.queue.EnqueueFacture(ctx, clientID, email, infra.DocFacture); err != nil {
		return nil, indisponible("file d'envoi", err)
	}
	log.Info().Str("client_id", clientID.String()).Str("email", email).Msg("facture mise en file d'envoi")
	return &dto.EnvoiFactureResponse{Statut: "en_file", Email: email}, nil
}
