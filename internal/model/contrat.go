package model

import (
	"time"

	"github.com/google/uuid"
)

// Contract variants: the rental itself or the optional services.
const (
	ContratLocation = "location"
	ContratOptions  = "options"
)

// Contrat records one printed contract. Numero comes from a database
// sequence and is never reused.
type Contrat struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Numero    int64     `gorm:"->"`
	ClientID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Type      string    `gorm:"type:varchar(20);not null"`
	CreatedAt time.Time
}

func (Contrat) TableName() string { return "contrats" }

// CategorieContrat is the debit category printed on a contract variant.
func CategorieContrat(variante string) string {
	if variante == ContratOptions {
		return CategorieOption
	}
	return CategorieLocation
}
