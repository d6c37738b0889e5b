package repository

import (
	"context"

	"elysee/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EcheanceRepository interface {
	Create(ctx context.Context, e *model.Echeance) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Echeance, error)
	ListByClient(ctx context.Context, clientID uuid.UUID) ([]model.Echeance, error)
	SetPayee(ctx context.Context, id uuid.UUID, payee bool) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
}

type echeanceRepo struct{ db *gorm.DB }

func NewEcheanceRepository(db *gorm.DB) EcheanceRepository { return &echeanceRepo{db: db} }

func (r *echeanceRepo) Create(ctx context.Context, e *model.Echeance) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *echeanceRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Echeance, error) {
	var e model.Echeance
	err := r.db.WithContext(ctx).First(&e, "id = ?", id).Error
	return &e, err
}

func (r *echeanceRepo) ListByClient(ctx context.Context, clientID uuid.UUID) ([]model.Echeance, error) {
	var list []model.Echeance
	err := r.db.WithContext(ctx).Where("client_id = ?", clientID).Order("date_echeance ASC").Find(&list).Error
	return list, err
}

func (r *echeanceRepo) SetPayee(ctx context.Context, id uuid.UUID, payee bool) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.Echeance{}).Where("id = ?", id).Update("payee", payee)
	return res.RowsAffected, res.Error
}

func (r *echeanceRepo) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&model.Echeance{}, "id = ?", id)
	return res.RowsAffected, res.Error
}
