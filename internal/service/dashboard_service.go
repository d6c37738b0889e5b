package service

import (
	"context"
	"sort"
	"time"

	"elysee/internal/caisse"
	"elysee/internal/dto"
	"elysee/internal/ledger"
	"elysee/internal/model"
	"elysee/internal/repository"

	"github.com/shopspring/decimal"
)

const prochainsMariages = 5

type DashboardService interface {
	Dashboard(ctx context.Context) (*dto.DashboardResponse, error)
	StatsAnnuelles(ctx context.Context, annee int) (*dto.StatsAnnuellesResponse, error)
}

type dashboardService struct {
	clients    repository.ClientRepository
	debits     repository.DebitRepository
	reglements repository.ReglementRepository
	depots     repository.DepotRepository
	alertDays  int
	now        func() time.Time
}

func NewDashboardService(
	clients repository.ClientRepository,
	debits repository.DebitRepository,
	reglements repository.ReglementRepository,
	depots repository.DepotRepository,
	alertDays int,
) DashboardService {
	if alertDays <= 0 {
		alertDays = 30
	}
	return &dashboardService{
		clients:    clients,
		debits:     debits,
		reglements: reglements,
		depots:     depots,
		alertDays:  alertDays,
		now:        time.Now,
	}
}

// Dashboard aggregates the home page. CA figures are sums of payments
// received, not of debits billed.
func (s *dashboardService) Dashboard(ctx context.Context) (*dto.DashboardResponse, error) {
	today := caisse.Jour(s.now())
	mois, err := caisse.Resoudre(caisse.PresetMois, nil, nil, today)
	if err != nil {
		return nil, err
	}
	annee, err := caisse.Resoudre(caisse.PresetAnnee, nil, nil, today)
	if err != nil {
		return nil, err
	}

	clients, err := s.clients.ListAll(ctx)
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
	depots, err := s.depots.ListByPeriode(ctx, caisse.DebutOuvert, caisse.FinOuverte)
	if err != nil {
		return nil, indisponible("dépôts", err)
	}

	resp := &dto.DashboardResponse{
		CAMois:            decimal.Zero,
		CAAnnee:           decimal.Zero,
		Impayes:           dto.ImpayesResponse{Montant: decimal.Zero},
		Alertes:           []dto.AlerteResponse{},
		ProchainsMariages: []dto.MariageResponse{},
	}
	for _, r := range regs {
		if mois.Contient(r.Date) {
			resp.CAMois = resp.CAMois.Add(r.Montant)
		}
		if annee.Contient(r.Date) {
			resp.CAAnnee = resp.CAAnnee.Add(r.Montant)
		}
	}

	recap := caisse.Rapprocher(regs, depots)
	resp.Caisse = dto.CaisseResponse{
		Especes: recap.Especes.EnCaisse,
		Cheques: recap.Cheques.EnCaisse,
		Total:   recap.TotalCaisse,
	}

	totaux := ledger.TotauxParClient(debits, regs)
	limite := today.AddDate(0, 0, s.alertDays)

	var avenir []model.Client
	for i := range clients {
		c := clients[i]
		if c.Archived {
			continue
		}
		t, ok := totaux[c.ID]
		if ok && t.Etat == ledger.EtatDu {
			resp.Impayes.Nombre++
			resp.Impayes.Montant = resp.Impayes.Montant.Add(t.Solde)
		}
		if c.DateMariage == nil {
			continue
		}
		dm := caisse.Jour(*c.DateMariage)
		if mois.Contient(dm) {
			resp.MariagesMois++
		}
		if dm.Before(today) {
			continue
		}
		if c.Statut != model.StatutAnnule {
			avenir = append(avenir, c)
		}
		if ok && t.Etat == ledger.EtatDu && !dm.After(limite) {
			resp.Alertes = append(resp.Alertes, dto.AlerteResponse{
				ClientID:    c.ID.String(),
				Nom:         c.Couple(),
				DateMariage: jour(dm),
				Jours:       int(dm.Sub(today).Hours() / 24),
				TotalDu:     t.TotalDebit,
				TotalPaye:   t.TotalPaye,
				Reste:       t.Solde,
			})
		}
	}

	sort.SliceStable(resp.Alertes, func(i, j int) bool { return resp.Alertes[i].Jours < resp.Alertes[j].Jours })
	sort.SliceStable(avenir, func(i, j int) bool { return avenir[i].DateMariage.Before(*avenir[j].DateMariage) })
	if len(avenir) > prochainsMariages {
		avenir = avenir[:prochainsMariages]
	}
	for i := range avenir {
		c := &avenir[i]
		resp.ProchainsMariages = append(resp.ProchainsMariages, dto.MariageResponse{
			ClientID:      c.ID.String(),
			Couple:        c.Couple(),
			DateMariage:   jour(*c.DateMariage),
			Statut:        c.Statut,
			LieuReception: c.LieuReception,
		})
	}
	return resp, nil
}

// StatsAnnuelles feeds the yearly charts: payments received and weddings
// held per calendar month.
func (s *dashboardService) StatsAnnuelles(ctx context.Context, annee int) (*dto.StatsAnnuellesResponse, error) {
	if annee == 0 {
		annee = s.now().Year()
	}
	if annee < 2000 || annee > 2099 {
		return nil, invalide("année %d hors plage", annee)
	}
	debut := time.Date(annee, 1, 1, 0, 0, 0, 0, time.UTC)
	fin := time.Date(annee, 12, 31, 0, 0, 0, 0, time.UTC)

	regs, err := s.reglements.ListByPeriode(ctx, debut, fin, "")
	if err != nil {
		return nil, indisponible("règlements", err)
	}
	mariages, err := s.clients.ListMariages(ctx, debut, fin)
	if err != nil {
		return nil, indisponible("clients", err)
	}

	resp := &dto.StatsAnnuellesResponse{Annee: annee}
	for i := range resp.CAParMois {
		resp.CAParMois[i] = decimal.Zero
	}
	for _, r := range regs {
		m := r.Date.Month() - 1
		resp.CAParMois[m] = resp.CAParMois[m].Add(r.Montant)
	}
	for _, c := range mariages {
		if c.DateMariage == nil || c.Statut == model.StatutAnnule {
			continue
		}
		resp.MariagesParMois[c.DateMariage.Month()-1]++
	}
	return resp, nil
}
