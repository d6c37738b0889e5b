package model

import (
	"time"

	"github.com/google/uuid"
)

// Roles. Secretaire is the least privileged.
const (
	RoleAdmin         = "admin"
	RoleCollaborateur = "collaborateur"
	RoleSecretaire    = "secretaire"
)

// Utilisateur stores back-office accounts.
type Utilisateur struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Email        string    `gorm:"uniqueIndex;not null"`
	FullName     string    `gorm:"not null;default:''"`
	PasswordHash string    `gorm:"not null"`
	// Role may be empty or stale on legacy profiles; it is resolved at login.
	Role      string `gorm:"type:varchar(20);not null;default:''"`
	Actif     bool   `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Utilisateur) TableName() string { return "utilisateurs" }

// RoleValide reports whether r is a known role.
func RoleValide(r string) bool {
	switch r {
	case RoleAdmin, RoleCollaborateur, RoleSecretaire:
		return true
	}
	return false
}
