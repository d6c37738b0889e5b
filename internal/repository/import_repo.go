package repository

import (
	"context"

	"elysee/internal/importer"
	"elysee/internal/model"

	"gorm.io/gorm"
)

// ImportRepository adapts the table repositories to importer.Store.
type ImportRepository struct {
	clients    ClientRepository
	debits     DebitRepository
	reglements ReglementRepository
}

var _ importer.Store = (*ImportRepository)(nil)

func NewImportRepository(db *gorm.DB) *ImportRepository {
	return &ImportRepository{
		clients:    NewClientRepository(db),
		debits:     NewDebitRepository(db),
		reglements: NewReglementRepository(db),
	}
}

func (r *ImportRepository) ListClients(ctx context.Context) ([]model.Client, error) {
	return r.clients.ListAll(ctx)
}

func (r *ImportRepository) CreateClient(ctx context.Context, c *model.Client) error {
	return r.clients.Create(ctx, c)
}

func (r *ImportRepository) ListDebits(ctx context.Context) ([]model.Debit, error) {
	return r.debits.ListAll(ctx)
}

func (r *ImportRepository) CreateDebits(ctx context.Context, debits []model.Debit) error {
	return r.debits.CreateBatch(ctx, debits)
}

func (r *ImportRepository) ListReglements(ctx context.Context) ([]model.Reglement, error) {
	return r.reglements.ListAll(ctx)
}

func (r *ImportRepository) CreateReglements(ctx context.Context, regs []model.Reglement) error {
	return r.reglements.CreateBatch(ctx, regs)
}
