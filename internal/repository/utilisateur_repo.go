package repository

import (
	"context"

	"elysee/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UtilisateurRepository interface {
	Create(ctx context.Context, u *model.Utilisateur) error
	FindByEmail(ctx context.Context, email string) (*model.Utilisateur, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Utilisateur, error)
	List(ctx context.Context) ([]model.Utilisateur, error)
	Update(ctx context.Context, u *model.Utilisateur) error
	SetActif(ctx context.Context, id uuid.UUID, actif bool) (int64, error)
}

type utilisateurRepo struct{ db *gorm.DB }

func NewUtilisateurRepository(db *gorm.DB) UtilisateurRepository {
	return &utilisateurRepo{db: db}
}

func (r *utilisateurRepo) Create(ctx context.Context, u *model.Utilisateur) error {
	return r.db.WithContext(ctx).Create(u).Error
}

// FindByEmail only returns active accounts; the match is case-insensitive.
func (r *utilisateurRepo) FindByEmail(ctx context.Context, email string) (*model.Utilisateur, error) {
	var u model.Utilisateur
	err := r.db.WithContext(ctx).
		Where("LOWER(email) = LOWER(?) AND actif = true", email).
		First(&u).Error
	return &u, err
}

func (r *utilisateurRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Utilisateur, error) {
	var u model.Utilisateur
	err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error
	return &u, err
}

func (r *utilisateurRepo) List(ctx context.Context) ([]model.Utilisateur, error) {
	var users []model.Utilisateur
	err := r.db.WithContext(ctx).Order("email ASC").Find(&users).Error
	return users, err
}

func (r *utilisateurRepo) Update(ctx context.Context, u *model.Utilisateur) error {
	return r.db.WithContext(ctx).Save(u).Error
}

func (r *utilisateurRepo) SetActif(ctx context.Context, id uuid.UUID, actif bool) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.Utilisateur{}).Where("id = ?", id).Update("actif", actif)
	return res.RowsAffected, res.Error
}
