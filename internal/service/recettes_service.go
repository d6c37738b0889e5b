package service

import (
	"context"
	"time"

	"elysee/internal/dto"
	"elysee/internal/repository"

	"github.com/shopspring/decimal"
)

// RecettesService lists the payments received over a period.
type RecettesService interface {
	Lister(ctx context.Context, f dto.RecettesFilter) (*dto.RecettesResponse, error)
}

type recettesService struct {
	reglements repository.ReglementRepository
	now        func() time.Time
}

func NewRecettesService(reglements repository.ReglementRepository) RecettesService {
	return &recettesService{reglements: reglements, now: time.Now}
}

func (s *recettesService) Lister(ctx context.Context, f dto.RecettesFilter) (*dto.RecettesResponse, error) {
	periode, err := resoudrePeriode(f.PeriodeQuery, s.now())
	if err != nil {
		return nil, err
	}
	regs, err := s.reglements.ListByPeriode(ctx, periode.Debut, periode.Fin, f.Mode)
	if err != nil {
		return nil, indisponible("règlements", err)
	}

	resp := &dto.RecettesResponse{
		Reglements: make([]dto.ReglementResponse, len(regs)),
		Nombre:     len(regs),
		Total:      decimal.Zero,
		ParMode:    map[string]decimal.Decimal{},
	}
	for i := range regs {
		r := &regs[i]
		resp.Reglements[i] = toReglementResponse(r)
		resp.Total = resp.Total.Add(r.Montant)
		resp.ParMode[r.Mode] = resp.ParMode[r.Mode].Add(r.Montant)
	}
	return resp, nil
}
