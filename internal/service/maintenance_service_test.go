package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"elysee/internal/importer"
	"elysee/internal/model"
	"elysee/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedDoublons(s *store, n int) *model.Client {
	c := s.client("BEN SALAH", "Amine")
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		s.debits.debits = append(s.debits.debits, model.Debit{
			ID: uuid.New(), ClientID: c.ID, Date: base, Quantite: 1,
			Designation: "Location de la salle", PrixUnitaireHT: d("1000"), TauxTVA: d("19"),
			Categorie: model.CategorieLocation, MontantTTC: d("1190"),
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
	}
	return c
}

func TestAnalyserDoublons_SansSuppression(t *testing.T) {
	s := newStore()
	seedDoublons(s, 3)
	svc := service.NewMaintenanceService(s.debits, nil, importer.Options{})

	resp, err := svc.NettoyerDoublons(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, 1, resp.ClientsAnalyses)
	assert.Equal(t, 2, resp.DoublonsTrouves)
	assert.False(t, resp.Applique)
	assert.Len(t, s.debits.debits, 3)
}

func TestNettoyerDoublons_ParLots(t *testing.T) {
	s := newStore()
	seedDoublons(s, 26) // 25 duplicates → lots of 10, 10, 5
	premier := s.debits.debits[0].ID
	appels := 0
	s.debits.deleteErr = func(ids []uuid.UUID) error {
		appels++
		if appels == 2 {
			return errors.New("timeout")
		}
		return nil
	}
	svc := service.NewMaintenanceService(s.debits, nil, importer.Options{TailleLot: 10})

	resp, err := svc.NettoyerDoublons(context.Background(), true)
	require.NoError(t, err)
	assert.True(t, resp.Applique)
	assert.Equal(t, 25, resp.DoublonsTrouves)
	assert.Equal(t, 15, resp.Supprimes)
	require.Len(t, resp.Erreurs, 1)
	assert.Contains(t, resp.Erreurs[0], "lot 2")
	assert.Len(t, s.debits.debits, 11)
	assert.Equal(t, premier, s.debits.debits[0].ID)
}

func TestAnalyserDoublons_LectureEchouee(t *testing.T) {
	s := newStore()
	s.debits.err = errPanne
	svc := service.NewMaintenanceService(s.debits, nil, importer.Options{})

	_, err := svc.AnalyserDoublons(context.Background())
	assert.ErrorIs(t, err, service.ErrIndisponible)
}
