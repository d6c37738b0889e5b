package repository

import (
	"context"
	"strings"
	"time"

	"elysee/internal/dto"
	"elysee/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ClientRepository interface {
	Create(ctx context.Context, c *model.Client) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Client, error)
	// List applies the filters SQL can evaluate (archived, statut, search,
	// wedding date side). Balance filters and sorting by reste are done by
	// the service.
	List(ctx context.Context, filter dto.ClientFilter, today time.Time) ([]model.Client, error)
	ListAll(ctx context.Context) ([]model.Client, error)
	// ListMariages returns non-archived clients whose wedding falls in
	// [debut, fin], ordered by date.
	ListMariages(ctx context.Context, debut, fin time.Time) ([]model.Client, error)
	Update(ctx context.Context, c *model.Client) error
	SetArchived(ctx context.Context, id uuid.UUID, archived bool) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
}

type clientRepo struct{ db *gorm.DB }

func NewClientRepository(db *gorm.DB) ClientRepository { return &clientRepo{db: db} }

func (r *clientRepo) Create(ctx context.Context, c *model.Client) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *clientRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Client, error) {
	var c model.Client
	err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error
	return &c, err
}

func (r *clientRepo) List(ctx context.Context, filter dto.ClientFilter, today time.Time) ([]model.Client, error) {
	q := r.db.WithContext(ctx).Model(&model.Client{}).Where("archived = ?", filter.Archived)

	if filter.Statut != "" {
		q = q.Where("statut = ?", filter.Statut)
	}
	if s := strings.TrimSpace(filter.Recherche); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		q = q.Where(`(LOWER(nom_marie_1) LIKE ? OR LOWER(prenom_marie_1) LIKE ?
			OR LOWER(nom_marie_2) LIKE ? OR LOWER(prenom_marie_2) LIKE ?
			OR telephone_1 LIKE ? OR LOWER(email_1) LIKE ?)`,
			like, like, like, like, like, like)
	}
	switch filter.Mariage {
	case "passe":
		q = q.Where("date_mariage < ?", today)
	case "a_venir":
		q = q.Where("date_mariage >= ?", today)
	}

	switch filter.Tri {
	case "date_mariage":
		q = q.Order("date_mariage ASC NULLS LAST")
	case "statut":
		q = q.Order("statut ASC").Order("nom_marie_1 ASC")
	default:
		q = q.Order("nom_marie_1 ASC").Order("prenom_marie_1 ASC")
	}

	var clients []model.Client
	err := q.Find(&clients).Error
	return clients, err
}

func (r *clientRepo) ListAll(ctx context.Context) ([]model.Client, error) {
	var clients []model.Client
	err := r.db.WithContext(ctx).Order("created_at ASC").Find(&clients).Error
	return clients, err
}

func (r *clientRepo) ListMariages(ctx context.Context, debut, fin time.Time) ([]model.Client, error) {
	var clients []model.Client
	err := r.db.WithContext(ctx).
		Where("archived = false AND date_mariage BETWEEN ? AND ?", debut, fin).
		Order("date_mariage ASC").
		Find(&clients).Error
	return clients, err
}

func (r *clientRepo) Update(ctx context.Context, c *model.Client) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *clientRepo) SetArchived(ctx context.Context, id uuid.UUID, archived bool) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.Client{}).Where("id = ?", id).Update("archived", archived)
	return res.RowsAffected, res.Error
}

// Delete removes the client; debits, reglements, echeances and evenements
// go with it through ON DELETE CASCADE.
func (r *clientRepo) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&model.Client{}, "id = ?", id)
	return res.RowsAffected, res.Error
}
