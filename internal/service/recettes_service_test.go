package service_test

import (
	"context"
	"testing"

	"elysee/internal/dto"
	"elysee/internal/model"
	"elysee/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecettes(t *testing.T) {
	s := newStore()
	c := s.client("BEN SALAH", "Amine")
	s.reglement(c.ID, "2024-03-01", model.ModeCheque, "500")
	s.reglement(c.ID, "2024-03-02", model.ModeCheque, "250")
	s.reglement(c.ID, "2024-03-03", model.ModeEspeces, "100")
	s.reglement(c.ID, "2024-05-01", model.ModeEspeces, "999")
	svc := service.NewRecettesService(s.reglements)

	tous, err := svc.Lister(context.Background(), dto.RecettesFilter{
		PeriodeQuery: dto.PeriodeQuery{Preset: "custom", Debut: "2024-03-01", Fin: "2024-03-31"},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, tous.Nombre)
	assert.True(t, d("850").Equal(tous.Total))
	assert.True(t, d("750").Equal(tous.ParMode[model.ModeCheque]))
	assert.Equal(t, "BEN SALAH Amine", tous.Reglements[0].NomClient)

	cheques, err := svc.Lister(context.Background(), dto.RecettesFilter{
		PeriodeQuery: dto.PeriodeQuery{Preset: "custom", Debut: "2024-03-01", Fin: "2024-03-31"},
		Mode:         model.ModeCheque,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, cheques.Nombre)
}
