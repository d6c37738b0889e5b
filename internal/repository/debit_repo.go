package repository

import (
	"context"
	"time"

	"elysee/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DebitRepository interface {
	// Create inserts the line and reloads it so MontantTTC carries the value
	// computed by the database.
	Create(ctx context.Context, d *model.Debit) error
	CreateBatch(ctx context.Context, debits []model.Debit) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Debit, error)
	ListByClient(ctx context.Context, clientID uuid.UUID) ([]model.Debit, error)
	// ListByPeriode preloads Client; bounds are inclusive.
	ListByPeriode(ctx context.Context, debut, fin time.Time) ([]model.Debit, error)
	ListAll(ctx context.Context) ([]model.Debit, error)
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
	DeleteByIDs(ctx context.Context, ids []uuid.UUID) (int64, error)
}

type debitRepo struct{ db *gorm.DB }

func NewDebitRepository(db *gorm.DB) DebitRepository { return &debitRepo{db: db} }

func (r *debitRepo) Create(ctx context.Context, d *model.Debit) error {
	db := r.db.WithContext(ctx)
	if err := db.Create(d).Error; err != nil {
		return err
	}
	return db.First(d, "id = ?", d.ID).Error
}

func (r *debitRepo) CreateBatch(ctx context.Context, debits []model.Debit) error {
	if len(debits) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&debits).Error
}

func (r *debitRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Debit, error) {
	var d model.Debit
	err := r.db.WithContext(ctx).First(&d, "id = ?", id).Error
	return &d, err
}

func (r *debitRepo) ListByClient(ctx context.Context, clientID uuid.UUID) ([]model.Debit, error) {
	var debits []model.Debit
	err := r.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Order("date ASC").Order("created_at ASC").
		Find(&debits).Error
	return debits, err
}

func (r *debitRepo) ListByPeriode(ctx context.Context, debut, fin time.Time) ([]model.Debit, error) {
	var debits []model.Debit
	err := r.db.WithContext(ctx).Preload("Client").
		Where("date BETWEEN ? AND ?", debut, fin).
		Order("date ASC").Order("created_at ASC").
		Find(&debits).Error
	return debits, err
}

func (r *debitRepo) ListAll(ctx context.Context) ([]model.Debit, error) {
	var debits []model.Debit
	err := r.db.WithContext(ctx).Order("created_at ASC").Find(&debits).Error
	return debits, err
}

func (r *debitRepo) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&model.Debit{}, "id = ?", id)
	return res.RowsAffected, res.Error
}

func (r *debitRepo) DeleteByIDs(ctx context.Context, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res := r.db.WithContext(ctx).Where("id IN ?", ids).Delete(&model.Debit{})
	return res.RowsAffected, res.Error
}
