package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DepotBanque records money moved from the caisse to the bank.
// Mode: "especes" | "cheque". Cheque deposits carry ReglementID; rows
// written before the column existed have it NULL and are matched by
// amount and reference on reversal.
type DepotBanque struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Date        time.Time       `gorm:"type:date;not null;index"`
	Montant     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Mode        string          `gorm:"type:varchar(20);not null"`
	Reference   *string
	Notes       *string
	ReglementID *uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt   time.Time
}

func (DepotBanque) TableName() string { return "depots_banque" }
