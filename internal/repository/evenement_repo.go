package repository

import (
	"context"
	"time"

	"elysee/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EvenementRepository interface {
	Create(ctx context.Context, e *model.Evenement) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Evenement, error)
	// ListEntre returns events starting in [debut, fin).
	ListEntre(ctx context.Context, debut, fin time.Time) ([]model.Evenement, error)
	Update(ctx context.Context, e *model.Evenement) error
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
}

type evenementRepo struct{ db *gorm.DB }

func NewEvenementRepository(db *gorm.DB) EvenementRepository { return &evenementRepo{db: db} }

func (r *evenementRepo) Create(ctx context.Context, e *model.Evenement) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *evenementRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Evenement, error) {
	var e model.Evenement
	err := r.db.WithContext(ctx).First(&e, "id = ?", id).Error
	return &e, err
}

func (r *evenementRepo) ListEntre(ctx context.Context, debut, fin time.Time) ([]model.Evenement, error) {
	var evs []model.Evenement
	err := r.db.WithContext(ctx).
		Where("date_debut >= ? AND date_debut < ?", debut, fin).
		Order("date_debut ASC").
		Find(&evs).Error
	return evs, err
}

func (r *evenementRepo) Update(ctx context.Context, e *model.Evenement) error {
	return r.db.WithContext(ctx).Save(e).Error
}

func (r *evenementRepo) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&model.Evenement{}, "id = ?", id)
	return res.RowsAffected, res.Error
}
