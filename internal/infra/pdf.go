package infra

// pdf.go renders invoices (facture), quotes (devis) and contracts with go-pdf/fpdf:
//   - company header from the parametres row
//   - client block (couple, address, wedding date)
//   - debit lines with HT unit price, quantity, VAT rate and TTC total
//   - HT / TVA / TTC summary, TVA obtained by subtraction
//   - payments received and balance state (facture only)
//   - amount in words and legal mentions
// Contracts have their own layout, see renderContrat.

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"elysee/internal/ledger"
	"elysee/internal/model"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
)

type TypeDocument string

const (
	DocFacture TypeDocument = "facture"
	DocDevis   TypeDocument = "devis"
	DocContrat TypeDocument = "contrat"
)

// Document gathers everything printed on a facture, devis or contrat.
type Document struct {
	Type       TypeDocument
	Date       time.Time
	Parametres model.Parametres
	Client     model.Client
	Debits     []model.Debit
	Reglements []model.Reglement

	// Contract only: location or options, and the allocated number.
	Variante      string
	NumeroContrat int64
}

// Numero is derived from the client id so a reprint carries the same number.
// Contracts print their sequence number on five digits.
func (d *Document) Numero() string {
	if d.Type == DocContrat {
		return fmt.Sprintf("%05d", d.NumeroContrat)
	}
	prefix := "F"
	if d.Type == DocDevis {
		prefix = "D"
	}
	return fmt.Sprintf("%s-%d-%s", prefix, d.Date.Year(), strings.ToUpper(d.Client.ID.String()[:8]))
}

func (d *Document) NomFichier() string {
	if d.Type == DocContrat {
		return fmt.Sprintf("contrat_%s_%s.pdf", d.Variante, d.Numero())
	}
	return fmt.Sprintf("%s_%s.pdf", d.Type, d.Numero())
}

// LigneSolde is the closing line of an invoice: label and amount to print
// for the balance state. A credit is printed as a positive amount.
func LigneSolde(t ledger.Totaux) (string, decimal.Decimal) {
	switch t.Etat {
	case ledger.EtatDu:
		return "Reste à payer", t.Solde
	case ledger.EtatCredit:
		return "Avoir", t.Solde.Abs()
	default:
		return "Soldé", decimal.Zero
	}
}

// RenderDocumentPDF writes the PDF to w.
func RenderDocumentPDF(doc *Document, w io.Writer) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("") // cp1252 for accents

	if doc.Type == DocContrat {
		renderContrat(pdf, tr, doc)
	} else {
		renderFacture(pdf, tr, doc)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("pdf: render %s: %w", doc.Type, err)
	}
	return nil
}

func renderFacture(pdf *fpdf.Fpdf, tr func(string) string, doc *Document) {
	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30
	p := doc.Parametres

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW/2, 8, tr(p.NomEntreprise), "", 0, "L", false, 0, "")
	titre := "FACTURE"
	if doc.Type == DocDevis {
		titre = "DEVIS"
	}
	pdf.CellFormat(contentW/2, 8, titre, "", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	for _, l := range []string{p.Adresse, p.Telephone, p.Email} {
		if l != "" {
			pdf.CellFormat(contentW/2, 4.5, tr(l), "", 1, "L", false, 0, "")
		}
	}
	if p.Siret != "" {
		pdf.CellFormat(contentW/2, 4.5, tr("Matricule fiscal : "+p.Siret), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	// ── Document and client block ────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(contentW/2, 5, tr("N° "+doc.Numero()), "", 0, "L", false, 0, "")
	pdf.CellFormat(contentW/2, 5, tr(doc.Client.Couple()), "", 1, "R", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW/2, 4.5, "Date : "+doc.Date.Format("02/01/2006"), "", 0, "L", false, 0, "")
	pdf.CellFormat(contentW/2, 4.5, tr(adresseClient(&doc.Client)), "", 1, "R", false, 0, "")
	if doc.Client.DateMariage != nil {
		pdf.CellFormat(contentW, 4.5, tr("Date du mariage : "+doc.Client.DateMariage.Format("02/01/2006")), "", 1, "R", false, 0, "")
	}
	pdf.Ln(6)

	// ── Lines ────────────────────────────────────────────────────────────────
	cols := []float64{contentW * 0.44, contentW * 0.10, contentW * 0.16, contentW * 0.10, contentW * 0.20}
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(235, 235, 235)
	for i, h := range []string{"Désignation", "Qté", "PU HT", "TVA", "Total TTC"} {
		align := "R"
		if i == 0 {
			align = "L"
		}
		pdf.CellFormat(cols[i], 7, tr(h), "1", 0, align, true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	for _, d := range doc.Debits {
		pdf.CellFormat(cols[0], 6, tr(tronquer(d.Designation, 48)), "1", 0, "L", false, 0, "")
		pdf.CellFormat(cols[1], 6, fmt.Sprintf("%d", d.Quantite), "1", 0, "R", false, 0, "")
		pdf.CellFormat(cols[2], 6, tr(FormatDT(d.PrixUnitaireHT)), "1", 0, "R", false, 0, "")
		pdf.CellFormat(cols[3], 6, d.TauxTVA.String()+" %", "1", 0, "R", false, 0, "")
		pdf.CellFormat(cols[4], 6, tr(FormatDT(d.MontantTTC)), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(4)

	// ── Totals ───────────────────────────────────────────────────────────────
	v := ledger.Ventiler(doc.Debits)
	labelW := contentW * 0.70
	valW := contentW - labelW
	ligne := func(label string, m string, gras bool) {
		style := ""
		if gras {
			style = "B"
		}
		pdf.SetFont("Helvetica", style, 9)
		pdf.CellFormat(labelW, 5.5, tr(label), "", 0, "R", false, 0, "")
		pdf.CellFormat(valW, 5.5, tr(m), "", 1, "R", false, 0, "")
	}
	ligne("Total HT", FormatDT(v.TotalHT), false)
	ligne("TVA", FormatDT(v.TotalTVA), false)
	ligne("Total TTC", FormatDT(v.TotalTTC), true)

	if doc.Type == DocFacture {
		t := ledger.Calculer(doc.Debits, doc.Reglements)
		for _, r := range doc.Reglements {
			ligne(fmt.Sprintf("Règlement %s du %s", libelleMode(r.Mode), r.Date.Format("02/01/2006")), "-"+FormatDT(r.Montant), false)
		}
		label, montant := LigneSolde(t)
		ligne(label, FormatDT(montant), true)
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "I", 9)
	arrete := "Arrêté la présente facture à la somme de : "
	if doc.Type == DocDevis {
		arrete = "Arrêté le présent devis à la somme de : "
	}
	pdf.MultiCell(contentW, 5, tr(arrete+MontantEnLettres(v.TotalTTC)+" TTC."), "", "L", false)
	pdf.Ln(3)

	// ── Footer ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "", 8)
	if p.ConditionsPaiement != "" {
		pdf.MultiCell(contentW, 4, tr("Conditions de paiement : "+p.ConditionsPaiement), "", "L", false)
	}
	if p.MentionsLegales != "" {
		pdf.MultiCell(contentW, 4, tr(p.MentionsLegales), "", "L", false)
	}
	if p.NomGerant != "" {
		pdf.Ln(6)
		pdf.CellFormat(contentW, 5, tr(p.NomGerant), "", 1, "R", false, 0, "")
	}
}

// RenderDocumentBytes renders the PDF in memory (mail attachments, HTTP download).
func RenderDocumentBytes(doc *Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := RenderDocumentPDF(doc, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// GenerateDocumentPDF writes the PDF under storagePath and returns its path.
func GenerateDocumentPDF(doc *Document, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}
	path := filepath.Join(storagePath, doc.NomFichier())
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("pdf: create file: %w", err)
	}
	defer f.Close()
	if err := RenderDocumentPDF(doc, f); err != nil {
		return "", err
	}
	return path, nil
}

func adresseClient(c *model.Client) string {
	var parts []string
	for _, s := range []*string{c.Adresse, c.CodePostal, c.Ville} {
		if s != nil && *s != "" {
			parts = append(parts, *s)
		}
	}
	return strings.Join(parts, " ")
}

func libelleMode(mode string) string {
	switch mode {
	case model.ModeCB:
		return "CB"
	case model.ModeVirement:
		return "virement"
	case model.ModeEspeces:
		return "espèces"
	case model.ModeCheque:
		return "chèque"
	}
	return mode
}

func tronquer(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
