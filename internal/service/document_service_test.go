package service_test

import (
	"context"
	"testing"

	"elysee/internal/dto"
	"elysee/internal/infra"
	"elysee/internal/model"
	"elysee/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFactureQueue struct {
	jobs []string
	err  error
}

func (q *fakeFactureQueue) EnqueueFacture(_ context.Context, clientID uuid.UUID, email string, typ infra.TypeDocument) error {
	if q.err != nil {
		return q.err
	}
	q.jobs = append(q.jobs, clientID.String()+"|"+email+"|"+string(typ))
	return nil
}

func newDocuments(s *store, q service.FactureQueue) service.DocumentService {
	return newDocumentsAvec(s, &fakeContratRepo{}, q)
}

func newDocumentsAvec(s *store, contrats *fakeContratRepo, q service.FactureQueue) service.DocumentService {
	params := &fakeParametresRepo{p: model.Parametres{ID: 1, NomEntreprise: "Élysée Réceptions"}}
	return service.NewDocumentService(s.clients, s.debits, s.reglements, params, contrats, q)
}

func TestDocument_PDF(t *testing.T) {
	s := newStore()
	c := s.client("BEN SALAH", "Amine")
	s.debit(c.ID, "2024-01-01", "1000", model.CategorieLocation)
	s.reglement(c.ID, "2024-01-05", model.ModeCheque, "500")

	data, nom, err := newDocuments(s, nil).PDF(context.Background(), c.ID, infra.DocFacture)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(data[:4]))
	assert.Contains(t, nom, "facture_F-")

	_, _, err = newDocuments(s, nil).PDF(context.Background(), c.ID, "avoir")
	assert.ErrorIs(t, err, service.ErrInvalide)
}

func TestEnvoyerFacture(t *testing.T) {
	s := newStore()
	email := "couple@example.tn"
	avec := s.clients.add(model.Client{NomMarie1: "A", Email2: &email})
	sans := s.client("B", "b")
	q := &fakeFactureQueue{}
	docs := newDocuments(s, q)

	resp, err := docs.EnvoyerFacture(context.Background(), avec.ID, dto.EnvoiFactureRequest{})
	require.NoError(t, err)
	assert.Equal(t, "en_file", resp.Statut)
	assert.Equal(t, email, resp.Email)
	require.Len(t, q.jobs, 1)
	assert.Equal(t, avec.ID.String()+"|"+email+"|facture", q.jobs[0])

	_, err = docs.EnvoyerFacture(context.Background(), sans.ID, dto.EnvoiFactureRequest{})
	assert.ErrorIs(t, err, service.ErrInvalide)

	_, err = docs.EnvoyerFacture(context.Background(), sans.ID, dto.EnvoiFactureRequest{Email: "autre@example.tn"})
	require.NoError(t, err)

	_, err = newDocuments(s, nil).EnvoyerFacture(context.Background(), avec.ID, dto.EnvoiFactureRequest{})
	assert.ErrorIs(t, err, service.ErrIndisponible)
}

func TestContrat_NumerosSuccessifs(t *testing.T) {
	s := newStore()
	c := s.client("BEN ALI", "Salma")
	s.debit(c.ID, "2024-01-01", "5000", model.CategorieLocation)
	s.debit(c.ID, "2024-01-02", "300", model.CategorieOption)
	s.reglement(c.ID, "2024-01-05", model.ModeCheque, "2000")
	contrats := &fakeContratRepo{}
	docs := newDocumentsAvec(s, contrats, nil)

	data, nom, err := docs.Contrat(context.Background(), c.ID, "")
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(data[:4]))
	assert.Equal(t, "contrat_location_00001.pdf", nom)

	_, nom, err = docs.Contrat(context.Background(), c.ID, "option")
	require.NoError(t, err)
	assert.Equal(t, "contrat_options_00002.pdf", nom)

	require.Len(t, contrats.contrats, 2)
	assert.Equal(t, model.ContratLocation, contrats.contrats[0].Type)
	assert.Equal(t, model.ContratOptions, contrats.contrats[1].Type)
	assert.Equal(t, c.ID, contrats.contrats[1].ClientID)
}

func TestContrat_EchecsSansNumero(t *testing.T) {
	s := newStore()
	c := s.client("BEN ALI", "Salma")
	contrats := &fakeContratRepo{}
	docs := newDocumentsAvec(s, contrats, nil)

	_, _, err := docs.Contrat(context.Background(), c.ID, "mariage")
	assert.ErrorIs(t, err, service.ErrInvalide)

	_, _, err = docs.Contrat(context.Background(), uuid.New(), model.ContratLocation)
	assert.ErrorIs(t, err, service.ErrIntrouvable)

	s.debits.err = errPanne
	_, _, err = docs.Contrat(context.Background(), c.ID, model.ContratLocation)
	assert.ErrorIs(t, err, service.ErrIndisponible)

	assert.Empty(t, contrats.contrats)
}
