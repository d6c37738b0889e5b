package infra

import (
	"fmt"
	"strings"
	"time"

	"elysee/internal/model"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
)

// ClauseReglement is the payment schedule printed on every contract.
const ClauseReglement = "50% à la signature du contrat et 50% restants 30 jours avant l'événement."

var moisFR = [...]string{
	"janvier", "février", "mars", "avril", "mai", "juin",
	"juillet", "août", "septembre", "octobre", "novembre", "décembre",
}

// DateLongue formats a day as "13 juillet 2024".
func DateLongue(t time.Time) string {
	return fmt.Sprintf("%d %s %d", t.Day(), moisFR[t.Month()-1], t.Year())
}

// TitreContrat names the contract variant.
func TitreContrat(variante string) string {
	if variante == model.ContratOptions {
		return "Contrat Options"
	}
	return "Contrat Location"
}

// ModesPaiement reports which payment types already appear among the
// client's payments, in the order printed on the contract.
func ModesPaiement(regs []model.Reglement) (cheque, especes, virement bool) {
	for _, r := range regs {
		switch r.Mode {
		case model.ModeCheque:
			cheque = true
		case model.ModeEspeces:
			especes = true
		case model.ModeVirement:
			virement = true
		}
	}
	return
}

func renderContrat(pdf *fpdf.Fpdf, tr func(string) string, doc *Document) {
	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30
	p := doc.Parametres
	c := doc.Client

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW/2, 8, tr(p.NomEntreprise), "", 0, "L", false, 0, "")
	pdf.CellFormat(contentW/2, 8, "CONTRAT", "", 1, "R", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW/2, 5, tr(TitreContrat(doc.Variante)), "", 0, "L", false, 0, "")
	pdf.CellFormat(contentW/2, 5, tr("N° "+doc.Numero()), "", 1, "R", false, 0, "")
	pdf.CellFormat(contentW, 5, tr("Le "+DateLongue(doc.Date)), "", 1, "R", false, 0, "")
	pdf.Ln(2)
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(contentW, 5, tr("BANQUETS - RÉCEPTIONS - ÉVÉNEMENTS"), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	// ── Parties ──────────────────────────────────────────────────────────────
	champ := func(label, valeur string) {
		pdf.SetFont("Helvetica", "B", 9)
		w := pdf.GetStringWidth(tr(label)) + 1
		pdf.CellFormat(w, 5, tr(label), "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		pdf.CellFormat(contentW-w, 5, tr(valeur), "", 1, "L", false, 0, "")
	}

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(contentW, 6, "Entre :", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	for _, l := range []string{p.NomEntreprise, prefixer("Adresse : ", p.Adresse), prefixer("Tél : ", p.Telephone), prefixer("Email : ", p.Email), prefixer("représenté par ", p.NomGerant)} {
		if l != "" {
			pdf.CellFormat(contentW, 5, tr(l), "", 1, "L", false, 0, "")
		}
	}
	pdf.SetFont("Helvetica", "I", 9)
	pdf.CellFormat(contentW, 6, "d'une part, et", "", 1, "L", false, 0, "")

	champ("Nom Client : ", c.Couple())
	if v := valeur(c.CinPasseport); v != "" {
		champ("N° CIN ou Passeport : ", v)
	}
	tel := valeurOu(c.Telephone1, "-")
	if v := valeur(c.Telephone2); v != "" {
		tel += " / " + v
	}
	champ("Téléphone : ", tel)
	champ("Adresse : ", ouTiret(adresseClient(&c)))
	if v := valeur(c.Email1); v != "" {
		champ("Adresse E-Mail : ", v)
	}
	pdf.Ln(4)

	// ── Event ────────────────────────────────────────────────────────────────
	champ("Type de Réception : ", ouTiret(strings.Join([]string(c.TypePrestation), ", ")))
	champ("Nom de la Salle : ", valeurOu(c.LieuReception, "-"))
	evenement := "-"
	if c.DateMariage != nil {
		evenement = c.DateMariage.Format("02/01/2006")
	}
	champ("Date d'événement : ", fmt.Sprintf("%s   Horaires de : %s à %s", evenement, valeurOu(c.HeureDebut, "-"), valeurOu(c.HeureFin, "-")))
	invites := "-"
	if c.NombreInvites != nil {
		invites = fmt.Sprintf("%d", *c.NombreInvites)
	}
	champ("Nombre de Personnes : ", invites)
	pdf.Ln(4)

	// ── Services ─────────────────────────────────────────────────────────────
	titre := "PRESTATIONS DE LOCATION :"
	if doc.Variante == model.ContratOptions {
		titre = "OPTIONS ET PRESTATIONS COMPLÉMENTAIRES :"
	}
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(contentW, 6, tr(titre), "", 1, "L", false, 0, "")

	cols := []float64{contentW * 0.12, contentW * 0.63, contentW * 0.25}
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(235, 235, 235)
	for i, h := range []string{"Qté", "Désignation", "Montant TTC"} {
		align := "L"
		if i == 2 {
			align = "R"
		}
		pdf.CellFormat(cols[i], 7, tr(h), "1", 0, align, true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	total := decimal.Zero
	for _, d := range doc.Debits {
		total = total.Add(d.MontantTTC)
		pdf.CellFormat(cols[0], 6, fmt.Sprintf("%d", d.Quantite), "1", 0, "L", false, 0, "")
		pdf.CellFormat(cols[1], 6, tr(tronquer(d.Designation, 70)), "1", 0, "L", false, 0, "")
		pdf.CellFormat(cols[2], 6, tr(FormatDT(d.MontantTTC)), "1", 1, "R", false, 0, "")
	}
	if len(doc.Debits) == 0 {
		pdf.SetFont("Helvetica", "I", 9)
		pdf.CellFormat(contentW, 6, tr("Aucune prestation enregistrée"), "1", 1, "C", false, 0, "")
	}
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(cols[0]+cols[1], 7, "TOTAL", "1", 0, "R", false, 0, "")
	pdf.CellFormat(cols[2], 7, tr(FormatDT(total)), "1", 1, "R", false, 0, "")
	pdf.Ln(4)

	// ── Price and payment ────────────────────────────────────────────────────
	paye := decimal.Zero
	for _, r := range doc.Reglements {
		paye = paye.Add(r.Montant)
	}
	chq, esp, vir := ModesPaiement(doc.Reglements)

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(contentW, 5, tr("Tarif : "+FormatDT(total)), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "I", 9)
	pdf.MultiCell(contentW, 5, tr(MontantEnLettres(total)), "", "L", false)
	champ("Mode de Paiement : ", ClauseReglement)
	champ("Type de Paiement : ", fmt.Sprintf("%s Chèque   %s Espèces   %s Virement Bancaire", coche(chq), coche(esp), coche(vir)))
	champ("Acompte versé : ", FormatDT(paye))
	pdf.Ln(14)

	// ── Signatures ───────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(contentW/2, 5, "Service commercial", "", 0, "L", false, 0, "")
	pdf.CellFormat(contentW/2, 5, "MME / MR", "", 1, "R", false, 0, "")
	pdf.Ln(18)
	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(contentW/2, 4, "(Signature + cachet)", "", 0, "L", false, 0, "")
	pdf.CellFormat(contentW/2, 4, "(Signature client)", "", 1, "R", false, 0, "")
	pdf.Ln(10)

	// ── Footer ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "", 7)
	pdf.CellFormat(contentW, 4, tr("Le présent contrat est sujet aux conditions générales figurant en annexe."), "", 1, "C", false, 0, "")
	var coords []string
	for _, s := range []string{p.NomEntreprise, p.Adresse, p.Telephone, p.Email} {
		if s != "" {
			coords = append(coords, s)
		}
	}
	pdf.CellFormat(contentW, 4, tr(strings.Join(coords, " - ")), "", 1, "C", false, 0, "")
	if p.Siret != "" {
		pdf.CellFormat(contentW, 4, tr(p.Siret), "", 1, "C", false, 0, "")
	}
}

func coche(ok bool) string {
	if ok {
		return "[x]"
	}
	return "[ ]"
}

func prefixer(prefix, s string) string {
	if s == "" {
		return ""
	}
	return prefix + s
}

func valeur(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}

func valeurOu(s *string, defaut string) string {
	if v := valeur(s); v != "" {
		return v
	}
	return defaut
}

func ouTiret(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
