package importer

import (
	"strings"
)

// motsVides are dropped from designations before comparison, as whole tokens
// only, so "décoration" and "lustre" survive intact.
var motsVides = map[string]bool{
	"de": true, "la": true, "le": true, "du": true, "des": true, "l": true, "d": true,
}

var apostrophes = strings.NewReplacer("'", " ", "’", " ", "`", " ")

// NormaliserDesignation reduces a designation to the form used to spot
// duplicates: "Location de la salle" and "location  salle" compare equal.
func NormaliserDesignation(s string) string {
	s = apostrophes.Replace(strings.ToLower(strings.TrimSpace(s)))
	mots := strings.Fields(s)
	out := mots[:0]
	for _, m := range mots {
		if !motsVides[m] {
			out = append(out, m)
		}
	}
	return strings.Join(out, " ")
}

// NormaliserNom trims, upper-cases and collapses whitespace in a person name.
func NormaliserNom(s string) string {
	return strings.Join(strings.Fields(strings.ToUpper(s)), " ")
}
