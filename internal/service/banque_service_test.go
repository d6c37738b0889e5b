package service_test

import (
	"context"
	"errors"
	"testing"

	"elysee/internal/dto"
	"elysee/internal/model"
	"elysee/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBanque(s *store) service.BanqueService {
	return service.NewBanqueService(s.reglements, s.depots, s.debits)
}

func TestDeposerCheques_CreeDepotLie(t *testing.T) {
	s := newStore()
	c := s.client("BEN SALAH", "Amine")
	chq := s.reglement(c.ID, "2024-03-10", model.ModeCheque, "500.00")

	resp, err := newBanque(s).DeposerCheques(context.Background(), dto.DeposerChequesRequest{
		IDs:  []string{chq.ID.String()},
		Date: "2024-03-15",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Deposes)
	assert.Equal(t, 0, resp.Echecs)
	assert.Equal(t, "ok", resp.Resultats[0].Statut)

	reg := s.reglements.regs[chq.ID]
	assert.True(t, reg.Depose)
	require.NotNil(t, reg.DateDepot)
	assert.Equal(t, "2024-03-15", reg.DateDepot.Format("2006-01-02"))

	require.Len(t, s.depots.depots, 1)
	dep := s.depots.depots[0]
	assert.Equal(t, model.ModeCheque, dep.Mode)
	assert.True(t, d("500").Equal(dep.Montant))
	require.NotNil(t, dep.Reference)
	assert.Equal(t, "BEN SALAH Amine", *dep.Reference)
	require.NotNil(t, dep.ReglementID)
	assert.Equal(t, chq.ID, *dep.ReglementID)
}

func TestDeposerCheques_LotPartiel(t *testing.T) {
	s := newStore()
	c := s.client("TRABELSI", "Sana")
	ok := s.reglement(c.ID, "2024-03-01", model.ModeCheque, "300.00")
	especes := s.reglement(c.ID, "2024-03-01", model.ModeEspeces, "100.00")
	deja := s.reglements.add(model.Reglement{ClientID: c.ID, Date: jour("2024-02-01"), Mode: model.ModeCheque, Montant: d("50"), Depose: true})

	resp, err := newBanque(s).DeposerCheques(context.Background(), dto.DeposerChequesRequest{
		IDs:  []string{especes.ID.String(), ok.ID.String(), deja.ID.String(), uuid.NewString()},
		Date: "2024-03-20",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Deposes)
	assert.Equal(t, 3, resp.Echecs)
	require.Len(t, resp.Resultats, 4)
	assert.Equal(t, "erreur", resp.Resultats[0].Statut)
	assert.Equal(t, "ok", resp.Resultats[1].Statut)
	assert.Equal(t, "erreur", resp.Resultats[2].Statut)
	assert.Equal(t, "erreur", resp.Resultats[3].Statut)
	assert.Len(t, s.depots.depots, 1)
	assert.False(t, s.reglements.regs[especes.ID].Depose)
}

func TestDeposerCheques_EchecInsertionSignale(t *testing.T) {
	s := newStore()
	c := s.client("GHARBI", "Lina")
	chq := s.reglement(c.ID, "2024-03-01", model.ModeCheque, "300.00")
	s.depots.createErr = errors.New("insert refusé")

	resp, err := newBanque(s).DeposerCheques(context.Background(), dto.DeposerChequesRequest{
		IDs:  []string{chq.ID.String()},
		Date: "2024-03-20",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Echecs)
	assert.Contains(t, resp.Resultats[0].Erreur, "insert refusé")
	assert.Empty(t, s.depots.depots)
}

func TestSupprimerDepot_ParLien(t *testing.T) {
	s := newStore()
	c := s.client("BEN SALAH", "Amine")
	chq := s.reglement(c.ID, "2024-03-10", model.ModeCheque, "500.00")
	banque := newBanque(s)

	_, err := banque.DeposerCheques(context.Background(), dto.DeposerChequesRequest{IDs: []string{chq.ID.String()}, Date: "2024-03-15"})
	require.NoError(t, err)
	depotID := s.depots.depots[0].ID

	resp, err := banque.SupprimerDepot(context.Background(), depotID)
	require.NoError(t, err)
	assert.Equal(t, service.LienFK, resp.Lien)
	require.NotNil(t, resp.ReglementID)
	assert.Equal(t, chq.ID.String(), *resp.ReglementID)
	assert.False(t, s.reglements.regs[chq.ID].Depose)
	assert.Nil(t, s.reglements.regs[chq.ID].DateDepot)
	assert.Empty(t, s.depots.depots)
}

func TestSupprimerDepot_AncienDepotRetrouveParNom(t *testing.T) {
	s := newStore()
	c := s.client("BEN SALAH", "Amine")
	autre := s.client("JLASSI", "Mehdi")
	dateDepot := jour("2024-03-15")
	vise := s.reglements.add(model.Reglement{ClientID: c.ID, Date: jour("2024-03-01"), Mode: model.ModeCheque, Montant: d("500"), Depose: true, DateDepot: &dateDepot})
	leurre := s.reglements.add(model.Reglement{ClientID: autre.ID, Date: jour("2024-03-01"), Mode: model.ModeCheque, Montant: d("500"), Depose: true, DateDepot: &dateDepot})

	ref := "BEN SALAH Amine"
	legacy := model.DepotBanque{ID: uuid.New(), Date: dateDepot, Montant: d("500"), Mode: model.ModeCheque, Reference: &ref}
	s.depots.depots = append(s.depots.depots, legacy)

	resp, err := newBanque(s).SupprimerDepot(context.Background(), legacy.ID)
	require.NoError(t, err)
	assert.Equal(t, service.LienHeuristique, resp.Lien)
	assert.False(t, resp.Ambigu)
	assert.False(t, s.reglements.regs[vise.ID].Depose)
	assert.True(t, s.reglements.regs[leurre.ID].Depose)
	assert.Empty(t, s.depots.depots)
}

func TestSupprimerDepot_AncienDepotIgnoreLesChequesDejaLies(t *testing.T) {
	s := newStore()
	c := s.client("BEN SALAH", "Amine")
	banque := newBanque(s)
	lie := s.reglement(c.ID, "2024-03-01", model.ModeCheque, "500")
	_, err := banque.DeposerCheques(context.Background(), dto.DeposerChequesRequest{IDs: []string{lie.ID.String()}, Date: "2024-03-15"})
	require.NoError(t, err)

	dateDepot := jour("2024-03-15")
	orphelin := s.reglements.add(model.Reglement{ClientID: c.ID, Date: jour("2024-02-01"), Mode: model.ModeCheque, Montant: d("500"), Depose: true, DateDepot: &dateDepot})
	ref := "BEN SALAH Amine"
	legacy := model.DepotBanque{ID: uuid.New(), Date: dateDepot, Montant: d("500"), Mode: model.ModeCheque, Reference: &ref}
	s.depots.depots = append(s.depots.depots, legacy)

	resp, err := banque.SupprimerDepot(context.Background(), legacy.ID)
	require.NoError(t, err)
	assert.Equal(t, service.LienHeuristique, resp.Lien)
	assert.False(t, resp.Ambigu)
	require.NotNil(t, resp.ReglementID)
	assert.Equal(t, orphelin.ID.String(), *resp.ReglementID)
	assert.True(t, s.reglements.regs[lie.ID].Depose)
	assert.False(t, s.reglements.regs[orphelin.ID].Depose)
}

func TestSupprimerDepot_LienVersChequeDisparu(t *testing.T) {
	s := newStore()
	disparu := uuid.New()
	ref := "BEN SALAH Amine"
	dep := model.DepotBanque{ID: uuid.New(), Date: jour("2024-03-15"), Montant: d("500"), Mode: model.ModeCheque, Reference: &ref, ReglementID: &disparu}
	s.depots.depots = append(s.depots.depots, dep)

	resp, err := newBanque(s).SupprimerDepot(context.Background(), dep.ID)
	require.NoError(t, err)
	assert.Equal(t, service.LienAucun, resp.Lien)
	assert.Nil(t, resp.ReglementID)
	assert.Empty(t, s.depots.depots)
}

func TestSupprimerDepot_AucunChequeRetrouve(t *testing.T) {
	s := newStore()
	ref := "INCONNU"
	legacy := model.DepotBanque{ID: uuid.New(), Date: jour("2024-03-15"), Montant: d("500"), Mode: model.ModeCheque, Reference: &ref}
	s.depots.depots = append(s.depots.depots, legacy)

	resp, err := newBanque(s).SupprimerDepot(context.Background(), legacy.ID)
	require.NoError(t, err)
	assert.Equal(t, service.LienAucun, resp.Lien)
	assert.Nil(t, resp.ReglementID)
	assert.Empty(t, s.depots.depots)
}

func TestSupprimerDepot_EchecRetourConserveDepot(t *testing.T) {
	s := newStore()
	c := s.client("BEN SALAH", "Amine")
	chq := s.reglement(c.ID, "2024-03-10", model.ModeCheque, "500.00")
	banque := newBanque(s)
	_, err := banque.DeposerCheques(context.Background(), dto.DeposerChequesRequest{IDs: []string{chq.ID.String()}, Date: "2024-03-15"})
	require.NoError(t, err)

	s.reglements.updateErr[chq.ID] = errPanne
	_, err = banque.SupprimerDepot(context.Background(), s.depots.depots[0].ID)
	require.Error(t, err)
	assert.Len(t, s.depots.depots, 1)
}

func TestSupprimerDepot_Especes(t *testing.T) {
	s := newStore()
	banque := newBanque(s)
	dep, err := banque.DeposerEspeces(context.Background(), dto.DepotEspecesRequest{Montant: d("200"), Date: "2024-03-15"})
	require.NoError(t, err)

	id, _ := uuid.Parse(dep.ID)
	resp, err := banque.SupprimerDepot(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, service.LienEspeces, resp.Lien)

	_, err = banque.SupprimerDepot(context.Background(), id)
	assert.ErrorIs(t, err, service.ErrIntrouvable)
}

func TestRecap_Periode(t *testing.T) {
	s := newStore()
	c := s.client("BEN SALAH", "Amine")
	s.reglement(c.ID, "2024-03-01", model.ModeEspeces, "1000")
	chq := s.reglement(c.ID, "2024-03-02", model.ModeCheque, "500")
	reste := s.reglement(c.ID, "2024-03-03", model.ModeCheque, "250")
	s.reglement(c.ID, "2024-03-04", model.ModeVirement, "300")
	s.reglement(c.ID, "2024-03-05", model.ModeCB, "100")
	s.reglement(c.ID, "2023-12-31", model.ModeEspeces, "9999")
	banque := newBanque(s)

	_, err := banque.DeposerCheques(context.Background(), dto.DeposerChequesRequest{IDs: []string{chq.ID.String()}, Date: "2024-03-10"})
	require.NoError(t, err)
	_, err = banque.DeposerEspeces(context.Background(), dto.DepotEspecesRequest{Montant: d("400"), Date: "2024-03-10"})
	require.NoError(t, err)

	recap, err := banque.Recap(context.Background(), dto.PeriodeQuery{Preset: "custom", Debut: "2024-01-01", Fin: "2024-12-31"})
	require.NoError(t, err)

	assert.True(t, d("600").Equal(recap.Especes.EnCaisse))
	assert.True(t, d("250").Equal(recap.Cheques.EnCaisse))
	assert.True(t, d("500").Equal(recap.Cheques.TotalDepose))
	assert.True(t, recap.Cheques.Coherent)
	// 400 cash + 500 cheque + 300 transfer + 100 card
	assert.True(t, d("1300").Equal(recap.TotalBanque))
	assert.True(t, d("850").Equal(recap.TotalCaisse))
	assert.True(t, d("2150").Equal(recap.TotalEncaisse))
	require.Len(t, recap.ChequesEnCaisse, 1)
	assert.Equal(t, reste.ID.String(), recap.ChequesEnCaisse[0].ID)
	assert.Equal(t, "BEN SALAH Amine", recap.ChequesEnCaisse[0].NomClient)
	assert.Len(t, recap.Depots, 2)
}

func TestRecap_SeulsLesChequesSontSelectionnables(t *testing.T) {
	s := newStore()
	c := s.client("DUPONT", "Ali")
	s.reglement(c.ID, "2024-03-01", model.ModeEspeces, "200")
	chq := s.reglement(c.ID, "2024-03-01", model.ModeCheque, "300")
	banque := newBanque(s)

	recap, err := banque.Recap(context.Background(), dto.PeriodeQuery{Preset: "tout"})
	require.NoError(t, err)
	assert.True(t, d("200").Equal(recap.Especes.EnCaisse))
	assert.True(t, d("300").Equal(recap.Cheques.EnCaisse))
	assert.True(t, recap.TotalBanque.IsZero())
	require.Len(t, recap.ChequesEnCaisse, 1)
	assert.Equal(t, chq.ID.String(), recap.ChequesEnCaisse[0].ID)
	assert.True(t, d("300").Equal(recap.ChequesEnCaisse[0].Montant))

	_, err = banque.DeposerCheques(context.Background(), dto.DeposerChequesRequest{IDs: []string{chq.ID.String()}, Date: "2024-03-05"})
	require.NoError(t, err)
	recap, err = banque.Recap(context.Background(), dto.PeriodeQuery{Preset: "tout"})
	require.NoError(t, err)
	assert.Empty(t, recap.ChequesEnCaisse)
	assert.True(t, recap.Cheques.EnCaisse.IsZero())
	assert.True(t, d("300").Equal(recap.TotalBanque))
}

func TestRecap_LectureEchoueeRemonte(t *testing.T) {
	s := newStore()
	s.depots.err = errPanne

	_, err := newBanque(s).Recap(context.Background(), dto.PeriodeQuery{})
	assert.ErrorIs(t, err, service.ErrIndisponible)
}

func TestRecap_PresetInconnu(t *testing.T) {
	_, err := newBanque(newStore()).Recap(context.Background(), dto.PeriodeQuery{Preset: "semaine"})
	assert.ErrorIs(t, err, service.ErrInvalide)
}

func TestRapportComptable(t *testing.T) {
	s := newStore()
	c := s.client("BEN SALAH", "Amine")
	s.debit(c.ID, "2024-03-05", "1000", model.CategorieLocation)
	s.debit(c.ID, "2024-03-20", "100", model.CategorieOption)
	s.debit(c.ID, "2024-04-01", "5000", model.CategorieLocation)

	r, err := newBanque(s).RapportComptable(context.Background(), dto.RapportComptableQuery{Annee: 2024, Mois: 3})
	require.NoError(t, err)
	require.Len(t, r.Lignes, 2)
	assert.True(t, d("1190").Equal(r.Location.TotalTTC))
	assert.True(t, d("19").Equal(r.Option.TotalTVA))
	assert.True(t, d("1100").Equal(r.General.TotalHT))
	assert.True(t, d("209").Equal(r.General.TotalTVA))
	assert.Equal(t, "BEN SALAH Amine", r.Lignes[0].Client)
}
