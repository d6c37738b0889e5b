package importer_test

import (
	"testing"
	"time"

	"elysee/internal/importer"
	"elysee/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormaliserDesignation(t *testing.T) {
	cases := map[string]string{
		"Location de la salle":   "location salle",
		"  location   salle ":    "location salle",
		"Décoration de l'entrée": "décoration entrée",
		"Décoration de l’entrée": "décoration entrée",
		"Service d`accueil":      "service accueil",
		"Lustre DES mariés":      "lustre mariés",
		"Le DJ":                  "dj",
		"délices du chef":        "délices chef",
		"":                       "",
		"de la du":               "",
		"Ladies Lounge":          "ladies lounge",
	}
	for in, want := range cases {
		assert.Equal(t, want, importer.NormaliserDesignation(in), in)
	}
}

func TestNormaliserNom(t *testing.T) {
	assert.Equal(t, "BEN ALI SALMA", importer.NormaliserNom("  ben  ali\tSalma "))
	assert.Equal(t, "", importer.NormaliserNom("   "))
}

func ligne(client uuid.UUID, designation, prix, categorie string, cree time.Time) model.Debit {
	return model.Debit{
		ID:             uuid.New(),
		ClientID:       client,
		Designation:    designation,
		PrixUnitaireHT: decimal.RequireFromString(prix),
		Categorie:      categorie,
		Quantite:       1,
		CreatedAt:      cree,
	}
}

func TestDetecterDoublons(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	t0 := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

	premier := ligne(a, "Location de la salle", "3000", model.CategorieLocation, t0)
	copie := ligne(a, "location salle", "3000.00", model.CategorieLocation, t0.Add(time.Hour))
	autrePrix := ligne(a, "Location salle", "2999.99", model.CategorieLocation, t0.Add(2*time.Hour))
	autreCategorie := ligne(a, "Location salle", "3000", model.CategorieOption, t0.Add(3*time.Hour))
	autreClient := ligne(b, "Location de la salle", "3000", model.CategorieLocation, t0.Add(4*time.Hour))
	dj1 := ligne(b, "DJ", "500", model.CategorieOption, t0.Add(5*time.Hour))
	dj2 := ligne(b, "dj", "500", model.CategorieOption, t0.Add(6*time.Hour))
	dj3 := ligne(b, " DJ ", "500", model.CategorieOption, t0.Add(7*time.Hour))

	// shuffled input: the oldest row must still be the one kept
	rapport := importer.DetecterDoublons([]model.Debit{dj3, copie, autreClient, premier, dj1, autrePrix, dj2, autreCategorie})

	assert.Equal(t, 2, rapport.ClientsAnalyses)
	assert.Equal(t, 3, rapport.DoublonsTrouves)
	require.Len(t, rapport.Groupes, 2)
	assert.ElementsMatch(t, []uuid.UUID{copie.ID, dj2.ID, dj3.ID}, rapport.IDsASupprimer)

	for _, g := range rapport.Groupes {
		switch g.ClientID {
		case a:
			assert.Equal(t, premier.ID, g.Conserve.ID)
			assert.Equal(t, "location|3000.00|location salle", g.Cle)
		case b:
			assert.Equal(t, dj1.ID, g.Conserve.ID)
			require.Len(t, g.Supprimes, 2)
			assert.Equal(t, dj2.ID, g.Supprimes[0].ID)
		}
	}
}

func TestDetecterDoublons_Idempotent(t *testing.T) {
	a := uuid.New()
	t0 := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	debits := []model.Debit{
		ligne(a, "Location de la salle", "3000", model.CategorieLocation, t0),
		ligne(a, "Location salle", "3000", model.CategorieLocation, t0.Add(time.Minute)),
		ligne(a, "Traiteur", "45", model.CategorieOption, t0.Add(2*time.Minute)),
		ligne(a, "traiteur", "45", model.CategorieOption, t0.Add(3*time.Minute)),
	}
	premier := importer.DetecterDoublons(debits)
	require.Equal(t, 2, premier.DoublonsTrouves)

	restants := importer.Retirer(debits, premier.IDsASupprimer)
	assert.Len(t, restants, 2)

	second := importer.DetecterDoublons(restants)
	assert.Zero(t, second.DoublonsTrouves)
	assert.Empty(t, second.IDsASupprimer)
}

func TestDetecterDoublons_Vide(t *testing.T) {
	r := importer.DetecterDoublons(nil)
	assert.Zero(t, r.ClientsAnalyses)
	assert.Zero(t, r.DoublonsTrouves)
}
