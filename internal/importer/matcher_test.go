package importer_test

import (
	"testing"

	"elysee/internal/importer"
	"elysee/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func indexDe(clients ...*model.Client) *importer.Index {
	idx := importer.NewIndex()
	for _, c := range clients {
		idx.AjouterClient(c)
	}
	return idx
}

func client(nom, prenom string) *model.Client {
	return &model.Client{ID: uuid.New(), NomMarie1: nom, PrenomMarie1: prenom}
}

func TestMatcher_RotationDesMots(t *testing.T) {
	salma := client("Ben Ali", "Salma")
	m := importer.NewMatcher(indexDe(client("Trabelsi", "Yassine"), salma))

	corr, ok := m.Resoudre("SALMA BEN ALI")
	require.True(t, ok)
	assert.Equal(t, salma.ID, corr.ClientID)
	assert.Equal(t, "rotation", corr.Regle)
}

func TestMatcher_Cascade(t *testing.T) {
	dupont := client("Dupont", "Ali")
	martin := client("Martin", "Sarah")
	haddad := client("El Haddad", "Mounir")
	m := importer.NewMatcher(indexDe(dupont, martin, haddad))

	cases := []struct {
		nom   string
		id    uuid.UUID
		regle string
	}{
		{"dupont ali", dupont.ID, "exact"},
		{"  MARTIN  ", martin.ID, "exact"},
		{"DUPONT ALI BEN SALAH", dupont.ID, "prefixe"},
		{"MART", martin.ID, "prefixe"},
		{"SARAH MARTIN", martin.ID, "rotation"},
		{"HADDAD MOUNIR", haddad.ID, "premier_mot"},
		{"MME HADDAD", haddad.ID, "mot_partiel"},
	}
	for _, tc := range cases {
		t.Run(tc.nom, func(t *testing.T) {
			corr, ok := m.Resoudre(tc.nom)
			require.True(t, ok)
			assert.Equal(t, tc.id, corr.ClientID)
			assert.Equal(t, tc.regle, corr.Regle)
		})
	}
}

func TestMatcher_NonResolu(t *testing.T) {
	m := importer.NewMatcher(indexDe(client("Dupont", "Ali")))

	_, ok := m.Resoudre("")
	assert.False(t, ok)
	_, ok = m.Resoudre("   ")
	assert.False(t, ok)
	_, ok = m.Resoudre("ZZZ YYY")
	assert.False(t, ok)
	// three-letter tokens are too short for the partial rule
	_, ok = m.Resoudre("XX ALI")
	assert.False(t, ok)
}

func TestMatcher_ReglesPersonnalisees(t *testing.T) {
	salma := client("Ben Ali", "Salma")
	idx := indexDe(salma)

	strict := &importer.Matcher{Index: idx, Regles: []importer.Regle{importer.RegleExacte}}
	_, ok := strict.Resoudre("SALMA BEN ALI")
	assert.False(t, ok)

	inverse := &importer.Matcher{Index: idx, Regles: []importer.Regle{importer.RegleMotPartiel, importer.RegleRotation}}
	corr, ok := inverse.Resoudre("SALMA BEN ALI")
	require.True(t, ok)
	assert.Equal(t, "mot_partiel", corr.Regle)
}

func TestIndex_OrdreEtNomsVides(t *testing.T) {
	idx := importer.NewIndex()
	a, b := uuid.New(), uuid.New()
	idx.Ajouter("dupont", a)
	idx.Ajouter("", b)
	idx.Ajouter("martin", b)
	idx.Ajouter("DUPONT", b)

	assert.Equal(t, 2, idx.Len())
	id, ok := idx.Exact("DUPONT")
	require.True(t, ok)
	assert.Equal(t, b, id)

	var ordre []string
	idx.Parcourir(func(nom string, _ uuid.UUID) bool {
		ordre = append(ordre, nom)
		return false
	})
	assert.Equal(t, []string{"DUPONT", "MARTIN"}, ordre)
}
