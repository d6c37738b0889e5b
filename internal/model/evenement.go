package model

import (
	"time"

	"github.com/google/uuid"
)

// Calendar event types.
const (
	EvenementMariage        = "mariage"
	EvenementRdvPreparation = "rdv_preparation"
	EvenementReperageLieu   = "reperage_lieu"
	EvenementAutre          = "autre"
)

// Evenement is an entry on the planning. Weddings themselves are not stored
// here; they are derived from Client.DateMariage.
type Evenement struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ClientID  *uuid.UUID `gorm:"type:uuid;index"`
	Titre     string     `gorm:"not null"`
	Type      string     `gorm:"type:varchar(30);not null;default:'autre'"`
	DateDebut time.Time  `gorm:"not null;index"`
	DateFin   time.Time  `gorm:"not null"`
	Couleur   *string    `gorm:"type:varchar(9)"`
	Notes     *string
	CreatedAt time.Time
	UpdatedAt time.Time

	Client *Client `gorm:"foreignKey:ClientID"`
}

func (Evenement) TableName() string { return "evenements" }
