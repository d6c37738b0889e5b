package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Echeance is one instalment of a client's payment schedule.
type Echeance struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ClientID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	DateEcheance time.Time       `gorm:"type:date;not null"`
	Montant      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Libelle      string          `gorm:"not null;default:''"`
	Payee        bool            `gorm:"not null;default:false"`
	CreatedAt    time.Time
}

func (Echeance) TableName() string { return "echeances" }
