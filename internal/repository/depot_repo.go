package repository

import (
	"context"
	"time"

	"elysee/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DepotRepository interface {
	Create(ctx context.Context, tx *gorm.DB, d *model.DepotBanque) error
	FindByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*model.DepotBanque, error)
	ListByPeriode(ctx context.Context, debut, fin time.Time) ([]model.DepotBanque, error)
	Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) (int64, error)
	DB() *gorm.DB
}

type depotRepo struct{ db *gorm.DB }

func NewDepotRepository(db *gorm.DB) DepotRepository { return &depotRepo{db: db} }

func (r *depotRepo) DB() *gorm.DB { return r.db }

func (r *depotRepo) conn(ctx context.Context, tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx.WithContext(ctx)
	}
	return r.db.WithContext(ctx)
}

func (r *depotRepo) Create(ctx context.Context, tx *gorm.DB, d *model.DepotBanque) error {
	return r.conn(ctx, tx).Create(d).Error
}

func (r *depotRepo) FindByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*model.DepotBanque, error) {
	var d model.DepotBanque
	err := r.conn(ctx, tx).First(&d, "id = ?", id).Error
	return &d, err
}

func (r *depotRepo) ListByPeriode(ctx context.Context, debut, fin time.Time) ([]model.DepotBanque, error) {
	var depots []model.DepotBanque
	err := r.db.WithContext(ctx).
		Where("date BETWEEN ? AND ?", debut, fin).
		Order("date DESC").Order("created_at DESC").
		Find(&depots).Error
	return depots, err
}

func (r *depotRepo) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) (int64, error) {
	res := r.conn(ctx, tx).Delete(&model.DepotBanque{}, "id = ?", id)
	return res.RowsAffected, res.Error
}
