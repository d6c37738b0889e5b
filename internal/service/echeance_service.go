package service

import (
	"context"

	"elysee/internal/dto"
	"elysee/internal/model"
	"elysee/internal/repository"

	"github.com/google/uuid"
)

// EcheanceService manages the payment schedule of a client. Instalments
// are reminders only: marking one paid does not create a reglement.
type EcheanceService interface {
	Lister(ctx context.Context, clientID uuid.UUID) ([]dto.EcheanceResponse, error)
	Ajouter(ctx context.Context, clientID uuid.UUID, req dto.EcheanceRequest) (*dto.EcheanceResponse, error)
	BasculerPayee(ctx context.Context, id uuid.UUID) (*dto.EcheanceResponse, error)
	Supprimer(ctx context.Context, id uuid.UUID) error
}

type echeanceService struct {
	clients   repository.ClientRepository
	echeances repository.EcheanceRepository
}

func NewEcheanceService(clients repository.ClientRepository, echeances repository.EcheanceRepository) EcheanceService {
	return &echeanceService{clients: clients, echeances: echeances}
}

func (s *echeanceService) Lister(ctx context.Context, clientID uuid.UUID) ([]dto.EcheanceResponse, error) {
	list, err := s.echeances.ListByClient(ctx, clientID)
	if err != nil {
		return nil, indisponible("échéances", err)
	}
	resp := make([]dto.EcheanceResponse, len(list))
	for i := range list {
		resp[i] = toEcheanceResponse(&list[i])
	}
	return resp, nil
}

func (s *echeanceService) Ajouter(ctx context.Context, clientID uuid.UUID, req dto.EcheanceRequest) (*dto.EcheanceResponse, error) {
	if _, err := s.clients.FindByID(ctx, clientID); err != nil {
		return nil, introuvable("client", err)
	}
	date, err := parseJour(req.DateEcheance)
	if err != nil {
		return nil, err
	}
	if !req.Montant.IsPositive() {
		return nil, invalide("le montant doit être positif")
	}
	e := &model.Echeance{ClientID: clientID, DateEcheance: date, Montant: req.Montant.Round(2), Libelle: req.Libelle}
	if err := s.echeances.Create(ctx, e); err != nil {
		return nil, err
	}
	resp := toEcheanceResponse(e)
	return &resp, nil
}

func (s *echeanceService) BasculerPayee(ctx context.Context, id uuid.UUID) (*dto.EcheanceResponse, error) {
	e, err := s.echeances.FindByID(ctx, id)
	if err != nil {
		return nil, introuvable("échéance", err)
	}
	e.Payee = !e.Payee
	if _, err := s.echeances.SetPayee(ctx, id, e.Payee); err != nil {
		return nil, err
	}
	resp := toEcheanceResponse(e)
	return &resp, nil
}

func (s *echeanceService) Supprimer(ctx context.Context, id uuid.UUID) error {
	n, err := s.echeances.Delete(ctx, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrIntrouvable
	}
	return nil
}
