package importer

import (
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// Sheet names of the historical workbook.
const (
	FeuilleClients    = "clients"
	FeuilleDebits     = "debits"
	FeuilleReglements = "reglements"
)

// LigneClient is one row of the clients sheet.
type LigneClient struct {
	Ligne           int
	ExcelID         int
	Nom             string
	Prenom          string
	DateMariage     *time.Time
	DateInscription *time.Time
	CIN             string
	Telephone       string
	NumContrat      string
	Statut          string
}

// LigneDebit is one row of the debits sheet. Montant is tax-inclusive.
type LigneDebit struct {
	Ligne         int
	ExcelClientID int
	NomClient     string
	Montant       decimal.Decimal
	Designation   string
	Categorie     string
	Date          *time.Time
	Quantite      int
}

// LigneReglement is one row of the reglements sheet.
type LigneReglement struct {
	Ligne     int
	NomClient string
	Montant   decimal.Decimal
	Mode      string
	Date      *time.Time
}

// Classeur holds the typed content of the three sheets.
type Classeur struct {
	Clients    []LigneClient
	Debits     []LigneDebit
	Reglements []LigneReglement
}

// LireClasseur opens an .xlsx file from disk.
func LireClasseur(path string) (*Classeur, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("ouverture %s: %w", path, err)
	}
	defer f.Close()
	return lire(f)
}

// LireClasseurDepuis reads an .xlsx stream (upload).
func LireClasseurDepuis(r io.Reader) (*Classeur, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("lecture classeur: %w", err)
	}
	defer f.Close()
	return lire(f)
}

func lire(f *excelize.File) (*Classeur, error) {
	c := &Classeur{}

	clients, err := feuille(f, FeuilleClients)
	if err != nil {
		return nil, err
	}
	for _, l := range clients {
		id, _ := strconv.Atoi(l.get("ID"))
		c.Clients = append(c.Clients, LigneClient{
			Ligne:           l.num,
			ExcelID:         id,
			Nom:             l.get("Nom"),
			Prenom:          l.get("Prénom"),
			DateMariage:     ParseDate(l.get("Date mariage")),
			DateInscription: ParseDate(l.get("Date inscription")),
			CIN:             l.get("CIN"),
			Telephone:       l.get("Téléphone"),
			NumContrat:      l.get("N° contrat"),
			Statut:          strings.ToLower(l.get("Statut")),
		})
	}

	debits, err := feuille(f, FeuilleDebits)
	if err != nil {
		return nil, err
	}
	for _, l := range debits {
		id, _ := strconv.Atoi(l.get("ID Client"))
		qte, err := strconv.Atoi(l.get("Qté"))
		if err != nil || qte < 1 {
			qte = 1
		}
		c.Debits = append(c.Debits, LigneDebit{
			Ligne:         l.num,
			ExcelClientID: id,
			NomClient:     l.get("Nom client"),
			Montant:       parseMontant(l.get("Montant (DT)")),
			Designation:   l.get("Désignation"),
			Categorie:     strings.ToLower(l.get("Catégorie")),
			Date:          ParseDate(l.get("Date")),
			Quantite:      qte,
		})
	}

	regs, err := feuille(f, FeuilleReglements)
	if err != nil {
		return nil, err
	}
	for _, l := range regs {
		c.Reglements = append(c.Reglements, LigneReglement{
			Ligne:     l.num,
			NomClient: l.get("Nom client"),
			Montant:   parseMontant(l.get("Montant (DT)")),
			Mode:      strings.ToLower(l.get("Mode")),
			Date:      ParseDate(l.get("Date paiement")),
		})
	}
	return c, nil
}

type ligneBrute struct {
	num     int
	entetes map[string]int
	cells   []string
}

func (l ligneBrute) get(col string) string {
	i, ok := l.entetes[col]
	if !ok || i >= len(l.cells) {
		return ""
	}
	return strings.TrimSpace(l.cells[i])
}

// feuille returns the data rows of a sheet keyed by its header row. Raw
// values are requested so dates arrive as Excel serials, not display text.
func feuille(f *excelize.File, nom string) ([]ligneBrute, error) {
	rows, err := f.GetRows(nom, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("feuille %q: %w", nom, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	entetes := make(map[string]int, len(rows[0]))
	for i, h := range rows[0] {
		entetes[strings.TrimSpace(h)] = i
	}
	out := make([]ligneBrute, 0, len(rows)-1)
	for i, r := range rows[1:] {
		if vide(r) {
			continue
		}
		out = append(out, ligneBrute{num: i + 2, entetes: entetes, cells: r})
	}
	return out, nil
}

func vide(r []string) bool {
	for _, c := range r {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

var (
	reISO = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	reFR  = regexp.MustCompile(`^(\d{2})/(\d{2})/(\d{4})$`)
)

// ParseDate accepts YYYY-MM-DD, DD/MM/YYYY or an Excel serial number.
// Anything else yields nil.
func ParseDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if reISO.MatchString(s) {
		if t, err := time.Parse("2006-01-02", s); err == nil {
			return &t
		}
		return nil
	}
	if m := reFR.FindStringSubmatch(s); m != nil {
		if t, err := time.Parse("2006-01-02", m[3]+"-"+m[2]+"-"+m[1]); err == nil {
			return &t
		}
		return nil
	}
	if serial, err := strconv.ParseFloat(s, 64); err == nil && serial > 0 {
		t, err := excelize.ExcelDateToTime(serial, false)
		if err != nil {
			return nil
		}
		y, mo, d := t.Date()
		j := time.Date(y, mo, d, 0, 0, 0, 0, time.UTC)
		return &j
	}
	return nil
}

func parseMontant(s string) decimal.Decimal {
	s = strings.ReplaceAll(strings.ReplaceAll(s, " ", ""), ",", ".")
	if s == "" {
		return decimal.Zero
	}
	m, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return m
}
