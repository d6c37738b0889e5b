package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Payment modes.
const (
	ModeCB       = "cb"
	ModeVirement = "virement"
	ModeEspeces  = "especes"
	ModeCheque   = "cheque"
)

// Reglement is a payment received from a client.
// Depose and DateDepot only move for cheques, through the deposit workflow;
// a CHECK constraint rejects depose=true on any other mode.
type Reglement struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ClientID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Date      time.Time `gorm:"type:date;not null;index"`
	Mode      string    `gorm:"type:varchar(20);not null"`
	Reference *string
	Montant   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Depose    bool            `gorm:"not null;default:false"`
	DateDepot *time.Time      `gorm:"type:date"`
	CreatedAt time.Time

	Client *Client `gorm:"foreignKey:ClientID"`
}

func (Reglement) TableName() string { return "reglements" }
