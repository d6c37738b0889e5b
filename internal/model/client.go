package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Statut values for a client file.
const (
	StatutProspect = "prospect"
	StatutEnCours  = "en_cours"
	StatutConfirme = "confirme"
	StatutTermine  = "termine"
	StatutAnnule   = "annule"
)

// Client is a couple booking the venue. A record can be saved blank and
// completed later; Archived is the soft delete flag.
type Client struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	NomMarie1     string    `gorm:"column:nom_marie_1;not null;default:''"`
	PrenomMarie1  string    `gorm:"column:prenom_marie_1;not null;default:''"`
	NomMarie2     string    `gorm:"column:nom_marie_2;not null;default:''"`
	PrenomMarie2  string    `gorm:"column:prenom_marie_2;not null;default:''"`
	Telephone1    *string   `gorm:"column:telephone_1"`
	Telephone2    *string   `gorm:"column:telephone_2"`
	Email1        *string   `gorm:"column:email_1"`
	Email2        *string   `gorm:"column:email_2"`
	CinPasseport  *string
	Adresse       *string
	CodePostal    *string
	Ville         *string
	DateMariage   *time.Time `gorm:"type:date;index"`
	HeureDebut    *string    `gorm:"type:varchar(5)"`
	HeureFin      *string    `gorm:"type:varchar(5)"`
	LieuCeremonie *string
	LieuReception *string
	NombreInvites *int
	// TypePrestation lists the booked services (salle, traiteur, ...).
	TypePrestation  datatypes.JSONSlice[string] `gorm:"type:jsonb;not null;default:'[]'"`
	Formule         *string
	Statut          string `gorm:"type:varchar(20);not null;default:'prospect'"`
	Referent        *string
	Memo            *string
	DateInscription time.Time `gorm:"type:date;not null"`
	Archived        bool      `gorm:"not null;default:false;index"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (Client) TableName() string { return "clients" }

// NomComplet is "NOM PRENOM" of the first spouse, the label used on deposit
// slips and by the importer.
func (c *Client) NomComplet() string {
	return strings.TrimSpace(c.NomMarie1 + " " + c.PrenomMarie1)
}

// Couple renders both spouses for documents and the planning.
func (c *Client) Couple() string {
	a := strings.TrimSpace(c.PrenomMarie1 + " " + c.NomMarie1)
	b := strings.TrimSpace(c.PrenomMarie2 + " " + c.NomMarie2)
	switch {
	case a == "":
		return b
	case b == "":
		return a
	default:
		return a + " & " + b
	}
}
