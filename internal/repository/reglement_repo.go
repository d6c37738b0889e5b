package repository

import (
	"context"
	"time"

	"elysee/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ReglementRepository interface {
	Create(ctx context.Context, reg *model.Reglement) error
	CreateBatch(ctx context.Context, regs []model.Reglement) error
	FindByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*model.Reglement, error)
	ListByClient(ctx context.Context, clientID uuid.UUID) ([]model.Reglement, error)
	// ListByPeriode preloads Client. An empty mode means every mode.
	ListByPeriode(ctx context.Context, debut, fin time.Time, mode string) ([]model.Reglement, error)
	ListAll(ctx context.Context) ([]model.Reglement, error)
	// ListChequesDeposes returns deposited cheques of the given amount with
	// their client, candidates for reversing a legacy deposit. Cheques
	// already linked to a deposit through reglement_id are left out.
	ListChequesDeposes(ctx context.Context, tx *gorm.DB, montant decimal.Decimal) ([]model.Reglement, error)
	// UpdateDepot writes Depose/DateDepot only if the row still has the
	// expected previous flag. Zero rows affected means a concurrent change.
	UpdateDepot(ctx context.Context, tx *gorm.DB, reg *model.Reglement, deposeAvant bool) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
	DB() *gorm.DB
}

type reglementRepo struct{ db *gorm.DB }

func NewReglementRepository(db *gorm.DB) ReglementRepository { return &reglementRepo{db: db} }

func (r *reglementRepo) DB() *gorm.DB { return r.db }

// conn picks the transaction when one is running.
func (r *reglementRepo) conn(ctx context.Context, tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx.WithContext(ctx)
	}
	return r.db.WithContext(ctx)
}

func (r *reglementRepo) Create(ctx context.Context, reg *model.Reglement) error {
	return r.db.WithContext(ctx).Create(reg).Error
}

func (r *reglementRepo) CreateBatch(ctx context.Context, regs []model.Reglement) error {
	if len(regs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&regs).Error
}

func (r *reglementRepo) FindByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*model.Reglement, error) {
	var reg model.Reglement
	err := r.conn(ctx, tx).Preload("Client").First(&reg, "id = ?", id).Error
	return &reg, err
}

func (r *reglementRepo) ListByClient(ctx context.Context, clientID uuid.UUID) ([]model.Reglement, error) {
	var regs []model.Reglement
	err := r.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Order("date ASC").Order("created_at ASC").
		Find(&regs).Error
	return regs, err
}

func (r *reglementRepo) ListByPeriode(ctx context.Context, debut, fin time.Time, mode string) ([]model.Reglement, error) {
	q := r.db.WithContext(ctx).Preload("Client").Where("date BETWEEN ? AND ?", debut, fin)
	if mode != "" {
		q = q.Where("mode = ?", mode)
	}
	var regs []model.Reglement
	err := q.Order("date DESC").Order("created_at DESC").Find(&regs).Error
	return regs, err
}

func (r *reglementRepo) ListAll(ctx context.Context) ([]model.Reglement, error) {
	var regs []model.Reglement
	err := r.db.WithContext(ctx).Order("created_at ASC").Find(&regs).Error
	return regs, err
}

func (r *reglementRepo) ListChequesDeposes(ctx context.Context, tx *gorm.DB, montant decimal.Decimal) ([]model.Reglement, error) {
	var regs []model.Reglement
	err := r.conn(ctx, tx).Preload("Client").
		Where("mode = ? AND depose = true AND montant = ?", model.ModeCheque, montant).
		Where("NOT EXISTS (SELECT 1 FROM depots_banque d WHERE d.reglement_id = reglements.id)").
		Order("date_depot ASC").Order("created_at ASC").
		Find(&regs).Error
	return regs, err
}

func (r *reglementRepo) UpdateDepot(ctx context.Context, tx *gorm.DB, reg *model.Reglement, deposeAvant bool) (int64, error) {
	res := r.conn(ctx, tx).Model(&model.Reglement{}).
		Where("id = ? AND depose = ?", reg.ID, deposeAvant).
		Updates(map[string]interface{}{
			"depose":     reg.Depose,
			"date_depot": reg.DateDepot,
		})
	return res.RowsAffected, res.Error
}

func (r *reglementRepo) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&model.Reglement{}, "id = ?", id)
	return res.RowsAffected, res.Error
}
