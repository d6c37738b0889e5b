package service_test

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"elysee/internal/dto"
	"elysee/internal/ledger"
	"elysee/internal/model"
	"elysee/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func jour(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

var errPanne = errors.New("connexion perdue")

// ── Clients ──────────────────────────────────────────────────────────────────

type fakeClientRepo struct {
	clients map[uuid.UUID]*model.Client
	ordre   []uuid.UUID
	err     error
}

var _ repository.ClientRepository = (*fakeClientRepo)(nil)

func newFakeClientRepo() *fakeClientRepo {
	return &fakeClientRepo{clients: make(map[uuid.UUID]*model.Client)}
}

func (r *fakeClientRepo) add(c model.Client) *model.Client {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.clients[c.ID] = &c
	r.ordre = append(r.ordre, c.ID)
	return &c
}

func (r *fakeClientRepo) Create(_ context.Context, c *model.Client) error {
	if r.err != nil {
		return r.err
	}
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	cp := *c
	r.clients[c.ID] = &cp
	r.ordre = append(r.ordre, c.ID)
	return nil
}

func (r *fakeClientRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Client, error) {
	c, ok := r.clients[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *fakeClientRepo) List(_ context.Context, f dto.ClientFilter, _ time.Time) ([]model.Client, error) {
	if r.err != nil {
		return nil, r.err
	}
	var out []model.Client
	for _, id := range r.ordre {
		c := r.clients[id]
		if c.Archived != f.Archived {
			continue
		}
		if f.Statut != "" && c.Statut != f.Statut {
			continue
		}
		if f.Recherche != "" && !strings.Contains(strings.ToUpper(c.NomMarie1+" "+c.PrenomMarie1), strings.ToUpper(f.Recherche)) {
			continue
		}
		out = append(out, *c)
	}
	return out, nil
}

func (r *fakeClientRepo) ListAll(_ context.Context) ([]model.Client, error) {
	if r.err != nil {
		return nil, r.err
	}
	out := make([]model.Client, 0, len(r.ordre))
	for _, id := range r.ordre {
		out = append(out, *r.clients[id])
	}
	return out, nil
}

func (r *fakeClientRepo) ListMariages(_ context.Context, debut, fin time.Time) ([]model.Client, error) {
	if r.err != nil {
		return nil, r.err
	}
	var out []model.Client
	for _, id := range r.ordre {
		c := r.clients[id]
		if c.Archived || c.DateMariage == nil || c.DateMariage.Before(debut) || c.DateMariage.After(fin) {
			continue
		}
		out = append(out, *c)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].DateMariage.Before(*out[j].DateMariage) })
	return out, nil
}

func (r *fakeClientRepo) Update(_ context.Context, c *model.Client) error {
	cp := *c
	r.clients[c.ID] = &cp
	return nil
}

func (r *fakeClientRepo) SetArchived(_ context.Context, id uuid.UUID, archived bool) (int64, error) {
	c, ok := r.clients[id]
	if !ok {
		return 0, nil
	}
	c.Archived = archived
	return 1, nil
}

func (r *fakeClientRepo) Delete(_ context.Context, id uuid.UUID) (int64, error) {
	if _, ok := r.clients[id]; !ok {
		return 0, nil
	}
	delete(r.clients, id)
	for i, o := range r.ordre {
		if o == id {
			r.ordre = append(r.ordre[:i], r.ordre[i+1:]...)
			break
		}
	}
	return 1, nil
}

// ── Debits ───────────────────────────────────────────────────────────────────

type fakeDebitRepo struct {
	debits    []model.Debit
	clients   *fakeClientRepo
	err       error
	deleteErr func(ids []uuid.UUID) error
}

var _ repository.DebitRepository = (*fakeDebitRepo)(nil)

// Create mimics the generated montant_ttc column.
func (r *fakeDebitRepo) Create(_ context.Context, deb *model.Debit) error {
	if deb.ID == uuid.Nil {
		deb.ID = uuid.New()
	}
	deb.MontantTTC = ledger.MontantTTC(deb.Quantite, deb.PrixUnitaireHT, deb.TauxTVA)
	deb.CreatedAt = time.Now()
	r.debits = append(r.debits, *deb)
	return nil
}

func (r *fakeDebitRepo) add(deb model.Debit) model.Debit {
	_ = r.Create(context.Background(), &deb)
	return deb
}

func (r *fakeDebitRepo) CreateBatch(ctx context.Context, debits []model.Debit) error {
	for i := range debits {
		if err := r.Create(ctx, &debits[i]); err != nil {
			return err
		}
	}
	return nil
}

func (r *fakeDebitRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Debit, error) {
	for i := range r.debits {
		if r.debits[i].ID == id {
			cp := r.debits[i]
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeDebitRepo) ListByClient(_ context.Context, clientID uuid.UUID) ([]model.Debit, error) {
	if r.err != nil {
		return nil, r.err
	}
	var out []model.Debit
	for _, deb := range r.debits {
		if deb.ClientID == clientID {
			out = append(out, deb)
		}
	}
	return out, nil
}

func (r *fakeDebitRepo) ListByPeriode(_ context.Context, debut, fin time.Time) ([]model.Debit, error) {
	if r.err != nil {
		return nil, r.err
	}
	var out []model.Debit
	for _, deb := range r.debits {
		if deb.Date.Before(debut) || deb.Date.After(fin) {
			continue
		}
		if r.clients != nil {
			deb.Client, _ = r.clients.FindByID(context.Background(), deb.ClientID)
		}
		out = append(out, deb)
	}
	return out, nil
}

func (r *fakeDebitRepo) ListAll(_ context.Context) ([]model.Debit, error) {
	if r.err != nil {
		return nil, r.err
	}
	return append([]model.Debit(nil), r.debits...), nil
}

func (r *fakeDebitRepo) Delete(_ context.Context, id uuid.UUID) (int64, error) {
	return r.DeleteByIDs(context.Background(), []uuid.UUID{id})
}

func (r *fakeDebitRepo) DeleteByIDs(_ context.Context, ids []uuid.UUID) (int64, error) {
	if r.deleteErr != nil {
		if err := r.deleteErr(ids); err != nil {
			return 0, err
		}
	}
	exclus := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		exclus[id] = true
	}
	var n int64
	kept := r.debits[:0]
	for _, deb := range r.debits {
		if exclus[deb.ID] {
			n++
			continue
		}
		kept = append(kept, deb)
	}
	r.debits = kept
	return n, nil
}

// ── Reglements ───────────────────────────────────────────────────────────────

type fakeReglementRepo struct {
	regs    map[uuid.UUID]*model.Reglement
	ordre   []uuid.UUID
	clients *fakeClientRepo
	// depots, when set, hides cheques already linked to a deposit.
	depots *fakeDepotRepo
	err    error
	// updateErr fails UpdateDepot for the given id.
	updateErr map[uuid.UUID]error
}

var _ repository.ReglementRepository = (*fakeReglementRepo)(nil)

func newFakeReglementRepo(clients *fakeClientRepo) *fakeReglementRepo {
	return &fakeReglementRepo{regs: make(map[uuid.UUID]*model.Reglement), clients: clients, updateErr: map[uuid.UUID]error{}}
}

func (r *fakeReglementRepo) add(reg model.Reglement) model.Reglement {
	if reg.ID == uuid.Nil {
		reg.ID = uuid.New()
	}
	reg.CreatedAt = time.Now()
	r.regs[reg.ID] = &reg
	r.ordre = append(r.ordre, reg.ID)
	return reg
}

func (r *fakeReglementRepo) withClient(reg model.Reglement) model.Reglement {
	if r.clients != nil {
		reg.Client, _ = r.clients.FindByID(context.Background(), reg.ClientID)
	}
	return reg
}

func (r *fakeReglementRepo) Create(_ context.Context, reg *model.Reglement) error {
	if reg.ID == uuid.Nil {
		reg.ID = uuid.New()
	}
	cp := *reg
	r.regs[reg.ID] = &cp
	r.ordre = append(r.ordre, reg.ID)
	return nil
}

func (r *fakeReglementRepo) CreateBatch(ctx context.Context, regs []model.Reglement) error {
	for i := range regs {
		_ = r.Create(ctx, &regs[i])
	}
	return nil
}

func (r *fakeReglementRepo) FindByID(_ context.Context, _ *gorm.DB, id uuid.UUID) (*model.Reglement, error) {
	reg, ok := r.regs[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := r.withClient(*reg)
	return &cp, nil
}

func (r *fakeReglementRepo) list(keep func(*model.Reglement) bool) ([]model.Reglement, error) {
	if r.err != nil {
		return nil, r.err
	}
	var out []model.Reglement
	for _, id := range r.ordre {
		reg := r.regs[id]
		if keep(reg) {
			out = append(out, r.withClient(*reg))
		}
	}
	return out, nil
}

func (r *fakeReglementRepo) ListByClient(_ context.Context, clientID uuid.UUID) ([]model.Reglement, error) {
	return r.list(func(reg *model.Reglement) bool { return reg.ClientID == clientID })
}

func (r *fakeReglementRepo) ListByPeriode(_ context.Context, debut, fin time.Time, mode string) ([]model.Reglement, error) {
	return r.list(func(reg *model.Reglement) bool {
		return !reg.Date.Before(debut) && !reg.Date.After(fin) && (mode == "" || reg.Mode == mode)
	})
}

func (r *fakeReglementRepo) ListAll(_ context.Context) ([]model.Reglement, error) {
	return r.list(func(*model.Reglement) bool { return true })
}

func (r *fakeReglementRepo) ListChequesDeposes(_ context.Context, _ *gorm.DB, montant decimal.Decimal) ([]model.Reglement, error) {
	return r.list(func(reg *model.Reglement) bool {
		return reg.Mode == model.ModeCheque && reg.Depose && reg.Montant.Equal(montant) && !r.lie(reg.ID)
	})
}

func (r *fakeReglementRepo) lie(id uuid.UUID) bool {
	if r.depots == nil {
		return false
	}
	for _, dep := range r.depots.depots {
		if dep.ReglementID != nil && *dep.ReglementID == id {
			return true
		}
	}
	return false
}

func (r *fakeReglementRepo) UpdateDepot(_ context.Context, _ *gorm.DB, reg *model.Reglement, deposeAvant bool) (int64, error) {
	if err := r.updateErr[reg.ID]; err != nil {
		return 0, err
	}
	cur, ok := r.regs[reg.ID]
	if !ok || cur.Depose != deposeAvant {
		return 0, nil
	}
	cur.Depose = reg.Depose
	cur.DateDepot = reg.DateDepot
	return 1, nil
}

func (r *fakeReglementRepo) Delete(_ context.Context, id uuid.UUID) (int64, error) {
	if _, ok := r.regs[id]; !ok {
		return 0, nil
	}
	delete(r.regs, id)
	for i, o := range r.ordre {
		if o == id {
			r.ordre = append(r.ordre[:i], r.ordre[i+1:]...)
			break
		}
	}
	return 1, nil
}

func (r *fakeReglementRepo) DB() *gorm.DB { return nil }

// ── Depots ───────────────────────────────────────────────────────────────────

type fakeDepotRepo struct {
	depots    []model.DepotBanque
	err       error
	createErr error
}

var _ repository.DepotRepository = (*fakeDepotRepo)(nil)

func (r *fakeDepotRepo) Create(_ context.Context, _ *gorm.DB, dep *model.DepotBanque) error {
	if r.createErr != nil {
		return r.createErr
	}
	if dep.ID == uuid.Nil {
		dep.ID = uuid.New()
	}
	r.depots = append(r.depots, *dep)
	return nil
}

func (r *fakeDepotRepo) FindByID(_ context.Context, _ *gorm.DB, id uuid.UUID) (*model.DepotBanque, error) {
	for i := range r.depots {
		if r.depots[i].ID == id {
			cp := r.depots[i]
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeDepotRepo) ListByPeriode(_ context.Context, debut, fin time.Time) ([]model.DepotBanque, error) {
	if r.err != nil {
		return nil, r.err
	}
	var out []model.DepotBanque
	for _, dep := range r.depots {
		if !dep.Date.Before(debut) && !dep.Date.After(fin) {
			out = append(out, dep)
		}
	}
	return out, nil
}

func (r *fakeDepotRepo) Delete(_ context.Context, _ *gorm.DB, id uuid.UUID) (int64, error) {
	for i := range r.depots {
		if r.depots[i].ID == id {
			r.depots = append(r.depots[:i], r.depots[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (r *fakeDepotRepo) DB() *gorm.DB { return nil }

// ── Echeances ───────────────────────────────────────────────────────────────

type fakeEcheanceRepo struct {
	echeances []model.Echeance
}

var _ repository.EcheanceRepository = (*fakeEcheanceRepo)(nil)

func (r *fakeEcheanceRepo) Create(_ context.Context, e *model.Echeance) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	r.echeances = append(r.echeances, *e)
	return nil
}

func (r *fakeEcheanceRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Echeance, error) {
	for i := range r.echeances {
		if r.echeances[i].ID == id {
			cp := r.echeances[i]
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeEcheanceRepo) ListByClient(_ context.Context, clientID uuid.UUID) ([]model.Echeance, error) {
	var out []model.Echeance
	for _, e := range r.echeances {
		if e.ClientID == clientID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *fakeEcheanceRepo) SetPayee(_ context.Context, id uuid.UUID, payee bool) (int64, error) {
	for i := range r.echeances {
		if r.echeances[i].ID == id {
			r.echeances[i].Payee = payee
			return 1, nil
		}
	}
	return 0, nil
}

func (r *fakeEcheanceRepo) Delete(_ context.Context, id uuid.UUID) (int64, error) {
	for i := range r.echeances {
		if r.echeances[i].ID == id {
			r.echeances = append(r.echeances[:i], r.echeances[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

// ── Evenements ──────────────────────────────────────────────────────────────

type fakeEvenementRepo struct {
	evenements []model.Evenement
}

var _ repository.EvenementRepository = (*fakeEvenementRepo)(nil)

func (r *fakeEvenementRepo) Create(_ context.Context, e *model.Evenement) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	r.evenements = append(r.evenements, *e)
	return nil
}

func (r *fakeEvenementRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Evenement, error) {
	for i := range r.evenements {
		if r.evenements[i].ID == id {
			cp := r.evenements[i]
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeEvenementRepo) ListEntre(_ context.Context, debut, fin time.Time) ([]model.Evenement, error) {
	var out []model.Evenement
	for _, e := range r.evenements {
		if !e.DateDebut.Before(debut) && e.DateDebut.Before(fin) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *fakeEvenementRepo) Update(_ context.Context, e *model.Evenement) error {
	for i := range r.evenements {
		if r.evenements[i].ID == e.ID {
			r.evenements[i] = *e
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *fakeEvenementRepo) Delete(_ context.Context, id uuid.UUID) (int64, error) {
	for i := range r.evenements {
		if r.evenements[i].ID == id {
			r.evenements = append(r.evenements[:i], r.evenements[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

// ── Parametres ──────────────────────────────────────────────────────────────

type fakeContratRepo struct {
	contrats []model.Contrat
	err      error
}

var _ repository.ContratRepository = (*fakeContratRepo)(nil)

func (r *fakeContratRepo) Create(_ context.Context, c *model.Contrat) error {
	if r.err != nil {
		return r.err
	}
	c.ID = uuid.New()
	c.Numero = int64(len(r.contrats) + 1)
	c.CreatedAt = time.Now()
	r.contrats = append(r.contrats, *c)
	return nil
}

type fakeParametresRepo struct {
	p   model.Parametres
	err error
}

var _ repository.ParametresRepository = (*fakeParametresRepo)(nil)

func (r *fakeParametresRepo) Get(_ context.Context) (*model.Parametres, error) {
	if r.err != nil {
		return nil, r.err
	}
	cp := r.p
	return &cp, nil
}

func (r *fakeParametresRepo) Update(_ context.Context, p *model.Parametres) error {
	r.p = *p
	return nil
}

// ── Utilisateurs ────────────────────────────────────────────────────────────

type fakeUtilisateurRepo struct {
	users map[uuid.UUID]*model.Utilisateur
}

var _ repository.UtilisateurRepository = (*fakeUtilisateurRepo)(nil)

func newFakeUtilisateurRepo() *fakeUtilisateurRepo {
	return &fakeUtilisateurRepo{users: make(map[uuid.UUID]*model.Utilisateur)}
}

func (r *fakeUtilisateurRepo) Create(_ context.Context, u *model.Utilisateur) error {
	for _, o := range r.users {
		if strings.EqualFold(o.Email, u.Email) {
			return gorm.ErrDuplicatedKey
		}
	}
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUtilisateurRepo) FindByEmail(_ context.Context, email string) (*model.Utilisateur, error) {
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) && u.Actif {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUtilisateurRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Utilisateur, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUtilisateurRepo) List(_ context.Context) ([]model.Utilisateur, error) {
	out := make([]model.Utilisateur, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return out, nil
}

func (r *fakeUtilisateurRepo) Update(_ context.Context, u *model.Utilisateur) error {
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUtilisateurRepo) SetActif(_ context.Context, id uuid.UUID, actif bool) (int64, error) {
	u, ok := r.users[id]
	if !ok {
		return 0, nil
	}
	u.Actif = actif
	return 1, nil
}

// ── Fixtures ────────────────────────────────────────────────────────────────

type store struct {
	clients    *fakeClientRepo
	debits     *fakeDebitRepo
	reglements *fakeReglementRepo
	depots     *fakeDepotRepo
	echeances  *fakeEcheanceRepo
}

func newStore() *store {
	clients := newFakeClientRepo()
	depots := &fakeDepotRepo{}
	reglements := newFakeReglementRepo(clients)
	reglements.depots = depots
	return &store{
		clients:    clients,
		debits:     &fakeDebitRepo{clients: clients},
		reglements: reglements,
		depots:     depots,
		echeances:  &fakeEcheanceRepo{},
	}
}

func (s *store) client(nom, prenom string) *model.Client {
	return s.clients.add(model.Client{NomMarie1: nom, PrenomMarie1: prenom, Statut: model.StatutConfirme})
}

func (s *store) debit(clientID uuid.UUID, date, prixHT, categorie string) model.Debit {
	return s.debits.add(model.Debit{
		ClientID:       clientID,
		Date:           jour(date),
		Quantite:       1,
		Designation:    "Location salle",
		PrixUnitaireHT: d(prixHT),
		TauxTVA:        d("19"),
		Categorie:      categorie,
	})
}

func (s *store) reglement(clientID uuid.UUID, date, mode, montant string) model.Reglement {
	return s.reglements.add(model.Reglement{ClientID: clientID, Date: jour(date), Mode: mode, Montant: d(montant)})
}
