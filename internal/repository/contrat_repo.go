package repository

import (
	"context"

	"elysee/internal/model"

	"gorm.io/gorm"
)

// ContratRepository allocates contract numbers.
type ContratRepository interface {
	// Create inserts the contract and fills ID, Numero and CreatedAt from
	// the database.
	Create(ctx context.Context, c *model.Contrat) error
}

type contratRepo struct{ db *gorm.DB }

func NewContratRepository(db *gorm.DB) ContratRepository { return &contratRepo{db: db} }

func (r *contratRepo) Create(ctx context.Context, c *model.Contrat) error {
	return r.db.WithContext(ctx).
		Raw(`INSERT INTO contrats (client_id, type) VALUES (?, ?) RETURNING id, numero, client_id, type, created_at`, c.ClientID, c.Type).
		Scan(c).Error
}
