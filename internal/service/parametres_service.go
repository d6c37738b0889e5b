package service

import (
	"context"
	"strings"

	"elysee/internal/dto"
	"elysee/internal/repository"

	"github.com/rs/zerolog/log"
)

type ParametresService interface {
	Obtenir(ctx context.Context) (*dto.ParametresResponse, error)
	Modifier(ctx context.Context, req dto.ParametresRequest) (*dto.ParametresResponse, error)
}

type parametresService struct {
	repo repository.ParametresRepository
}

func NewParametresService(repo repository.ParametresRepository) ParametresService {
	return &parametresService{repo: repo}
}

func (s *parametresService) Obtenir(ctx context.Context) (*dto.ParametresResponse, error) {
	p, err := s.repo.Get(ctx)
	if err != nil {
		return nil, indisponible("paramètres", err)
	}
	resp := toParametresResponse(p)
	return &resp, nil
}

func (s *parametresService) Modifier(ctx context.Context, req dto.ParametresRequest) (*dto.ParametresResponse, error) {
	p, err := s.repo.Get(ctx)
	if err != nil {
		return nil, indisponible("paramètres", err)
	}
	p.NomEntreprise = strings.TrimSpace(req.NomEntreprise)
	p.Adresse = strings.TrimSpace(req.Adresse)
	p.Telephone = strings.TrimSpace(req.Telephone)
	p.Email = strings.TrimSpace(req.Email)
	p.Siret = strings.TrimSpace(req.Siret)
	p.LogoURL = req.LogoURL
	p.ConditionsPaiement = req.ConditionsPaiement
	p.MentionsLegales = req.MentionsLegales
	p.NomGerant = strings.TrimSpace(req.NomGerant)
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	log.Info().Str("nom_entreprise", p.NomEntreprise).Msg("paramètres mis à jour")
	resp := toParametresResponse(p)
	return &resp, nil
}
