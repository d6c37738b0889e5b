package model

import (
	"time"
)

// Parametres is the single settings row printed on every document.
type Parametres struct {
	ID                 int    `gorm:"primaryKey"`
	NomEntreprise      string `gorm:"not null;default:''"`
	Adresse            string `gorm:"not null;default:''"`
	Telephone          string `gorm:"not null;default:''"`
	Email              string `gorm:"not null;default:''"`
	Siret              string `gorm:"not null;default:''"`
	LogoURL            *string
	ConditionsPaiement string `gorm:"not null;default:''"`
	MentionsLegales    string `gorm:"not null;default:''"`
	NomGerant          string `gorm:"not null;default:''"`
	UpdatedAt          time.Time
}

func (Parametres) TableName() string { return "parametres" }
