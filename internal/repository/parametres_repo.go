package repository

import (
	"context"

	"elysee/internal/model"

	"gorm.io/gorm"
)

// ParametresRepository reads and writes the single settings row (id = 1),
// seeded by the schema migration.
type ParametresRepository interface {
	Get(ctx context.Context) (*model.Parametres, error)
	Update(ctx context.Context, p *model.Parametres) error
}

type parametresRepo struct{ db *gorm.DB }

func NewParametresRepository(db *gorm.DB) ParametresRepository { return &parametresRepo{db: db} }

func (r *parametresRepo) Get(ctx context.Context) (*model.Parametres, error) {
	var p model.Parametres
	err := r.db.WithContext(ctx).First(&p, 1).Error
	return &p, err
}

func (r *parametresRepo) Update(ctx context.Context, p *model.Parametres) error {
	p.ID = 1
	return r.db.WithContext(ctx).Save(p).Error
}
