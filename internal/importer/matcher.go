package importer

import (
	"strings"

	"elysee/internal/model"

	"github.com/google/uuid"
)

// Index maps normalised client names to ids. Iteration follows insertion
// order; re-adding a name updates its id without moving it.
type Index struct {
	noms  []string
	exact map[string]uuid.UUID
}

func NewIndex() *Index {
	return &Index{exact: make(map[string]uuid.UUID)}
}

// Ajouter indexes a name. Empty names are ignored.
func (idx *Index) Ajouter(nom string, id uuid.UUID) {
	n := NormaliserNom(nom)
	if n == "" {
		return
	}
	if _, ok := idx.exact[n]; !ok {
		idx.noms = append(idx.noms, n)
	}
	idx.exact[n] = id
}

// AjouterClient indexes "NOM PRENOM" and "NOM" of the first spouse.
func (idx *Index) AjouterClient(c *model.Client) {
	idx.Ajouter(c.NomMarie1+" "+c.PrenomMarie1, c.ID)
	idx.Ajouter(c.NomMarie1, c.ID)
}

// Exact looks a normalised name up.
func (idx *Index) Exact(nom string) (uuid.UUID, bool) {
	id, ok := idx.exact[nom]
	return id, ok
}

// Parcourir calls fn on each entry in order until fn returns true.
func (idx *Index) Parcourir(fn func(nom string, id uuid.UUID) bool) (uuid.UUID, bool) {
	for _, n := range idx.noms {
		id := idx.exact[n]
		if fn(n, id) {
			return id, true
		}
	}
	return uuid.Nil, false
}

func (idx *Index) Len() int { return len(idx.noms) }

// Regle is one step of the matching cascade. nom is already normalised and
// never empty.
type Regle interface {
	Nom() string
	Resoudre(idx *Index, nom string) (uuid.UUID, bool)
}

type regleExacte struct{}

func (regleExacte) Nom() string { return "exact" }
func (regleExacte) Resoudre(idx *Index, nom string) (uuid.UUID, bool) {
	return idx.Exact(nom)
}

// regleDebut matches when one name is a prefix of the other.
type regleDebut struct{}

func (regleDebut) Nom() string { return "prefixe" }
func (regleDebut) Resoudre(idx *Index, nom string) (uuid.UUID, bool) {
	return idx.Parcourir(func(cle string, _ uuid.UUID) bool {
		return strings.HasPrefix(nom, cle) || strings.HasPrefix(cle, nom)
	})
}

// regleRotation tries every cyclic rotation of the words, so "PRENOM NOM"
// finds "NOM PRENOM".
type regleRotation struct{}

func (regleRotation) Nom() string { return "rotation" }
func (regleRotation) Resoudre(idx *Index, nom string) (uuid.UUID, bool) {
	mots := strings.Split(nom, " ")
	for i := 1; i < len(mots); i++ {
		rot := append(append([]string{}, mots[i:]...), mots[:i]...)
		if id, ok := idx.Exact(strings.Join(rot, " ")); ok {
			return id, true
		}
	}
	return uuid.Nil, false
}

// reglePremierMot treats the first word as a family name bounded by a space
// in the indexed name.
type reglePremierMot struct{}

func (reglePremierMot) Nom() string { return "premier_mot" }
func (reglePremierMot) Resoudre(idx *Index, nom string) (uuid.UUID, bool) {
	premier := strings.Split(nom, " ")[0]
	return idx.Parcourir(func(cle string, _ uuid.UUID) bool {
		return strings.HasPrefix(cle, premier+" ") || strings.HasSuffix(cle, " "+premier)
	})
}

// regleMotPartiel accepts any word of at least MinLongueur characters found
// inside an indexed name.
type regleMotPartiel struct{ MinLongueur int }

func (regleMotPartiel) Nom() string { return "mot_partiel" }
func (r regleMotPartiel) Resoudre(idx *Index, nom string) (uuid.UUID, bool) {
	for _, mot := range strings.Split(nom, " ") {
		if len([]rune(mot)) < r.MinLongueur {
			continue
		}
		if id, ok := idx.Parcourir(func(cle string, _ uuid.UUID) bool {
			return strings.Contains(cle, mot)
		}); ok {
			return id, true
		}
	}
	return uuid.Nil, false
}

var (
	RegleExacte     Regle = regleExacte{}
	RegleDebut      Regle = regleDebut{}
	RegleRotation   Regle = regleRotation{}
	ReglePremierMot Regle = reglePremierMot{}
	RegleMotPartiel Regle = regleMotPartiel{MinLongueur: 4}
)

// ReglesParDefaut is the cascade used by the spreadsheet import.
func ReglesParDefaut() []Regle {
	return []Regle{RegleExacte, RegleDebut, RegleRotation, ReglePremierMot, RegleMotPartiel}
}

// Correspondance tells which rule resolved a name.
type Correspondance struct {
	ClientID uuid.UUID
	Regle    string
}

// Matcher resolves free-text names against an Index. The first rule that
// answers wins; build a custom Regles slice to reorder or disable rules.
type Matcher struct {
	Index  *Index
	Regles []Regle
}

func NewMatcher(idx *Index) *Matcher {
	return &Matcher{Index: idx, Regles: ReglesParDefaut()}
}

// Resoudre returns false for empty names and when no rule matches.
func (m *Matcher) Resoudre(nom string) (Correspondance, bool) {
	n := NormaliserNom(nom)
	if n == "" {
		return Correspondance{}, false
	}
	for _, r := range m.Regles {
		if id, ok := r.Resoudre(m.Index, n); ok {
			return Correspondance{ClientID: id, Regle: r.Nom()}, true
		}
	}
	return Correspondance{}, false
}
