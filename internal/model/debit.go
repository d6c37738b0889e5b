package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	CategorieLocation = "location"
	CategorieOption   = "option"
)

// Debit is a billable line on a client account.
// MontantTTC is a generated column in PostgreSQL:
// ROUND(quantite * prix_unitaire_ht * (1 + taux_tva / 100), 2).
// It is read-only for gorm and is never part of a write payload.
type Debit struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ClientID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	Date           time.Time       `gorm:"type:date;not null"`
	Quantite       int             `gorm:"not null;default:1"`
	Designation    string          `gorm:"not null"`
	PrixUnitaireHT decimal.Decimal `gorm:"column:prix_unitaire_ht;type:decimal(12,2);not null"`
	TauxTVA        decimal.Decimal `gorm:"column:taux_tva;type:decimal(5,2);not null;default:19"`
	Categorie      string          `gorm:"type:varchar(20);not null"`
	MontantTTC     decimal.Decimal `gorm:"column:montant_ttc;type:decimal(12,2);->;-:migration"`
	CreatedAt      time.Time

	Client *Client `gorm:"foreignKey:ClientID"`
}

func (Debit) TableName() string { return "debits" }

// MontantHT is the tax-exclusive line amount (quantite × prix unitaire).
func (d *Debit) MontantHT() decimal.Decimal {
	return d.PrixUnitaireHT.Mul(decimal.NewFromInt(int64(d.Quantite)))
}
