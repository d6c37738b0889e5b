package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"elysee/internal/infra"
	"elysee/internal/service"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// FactureJobPayload is the job envelope sent to QueueFacture.
type FactureJobPayload struct {
	ClientID string `json:"client_id"`
	Email    string `json:"email"`
	Type     string `json:"type"`
}

// DocumentSource loads the data printed on a document.
type DocumentSource interface {
	Construire(ctx context.Context, clientID uuid.UUID, typ infra.TypeDocument) (*infra.Document, error)
}

type emailQueue interface {
	EnqueueEmail(ctx context.Context, payload EmailJobPayload) error
}

// FactureWorker renders the document, archives the PDF under
// pdfStoragePath and hands the mail over to QueueEmail.
type FactureWorker struct {
	docs           DocumentSource
	emails         emailQueue
	pdfStoragePath string
}

func NewFactureWorker(docs DocumentSource, emails emailQueue, pdfStoragePath string) *FactureWorker {
	return &FactureWorker{docs: docs, emails: emails, pdfStoragePath: pdfStoragePath}
}

func (w *FactureWorker) Process(ctx context.Context, raw json.RawMessage) error {
	var payload FactureJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return fmt.Errorf("%w: payload: %v", ErrPermanent, err)
	}
	clientID, err := uuid.Parse(payload.ClientID)
	if err != nil {
		return fmt.Errorf("%w: client_id %q", ErrPermanent, payload.ClientID)
	}
	if payload.Email == "" {
		return fmt.Errorf("%w: adresse vide", ErrPermanent)
	}
	typ := infra.TypeDocument(payload.Type)
	if typ == "" {
		typ = infra.DocFacture
	}

	doc, err := w.docs.Construire(ctx, clientID, typ)
	if err != nil {
		if errors.Is(err, service.ErrIntrouvable) || errors.Is(err, service.ErrInvalide) {
			return fmt.Errorf("%w: %v", ErrPermanent, err)
		}
		return err
	}

	path, err := infra.GenerateDocumentPDF(doc, w.pdfStoragePath)
	if err != nil {
		return err
	}

	log.Info().Str("client_id", payload.ClientID).Str("pdf", path).Msg("facture générée")
	return w.emails.EnqueueEmail(ctx, EmailJobPayload{
		ToEmail: payload.Email,
		Subject: fmt.Sprintf("%s %s - %s", titreDocument(typ), doc.Numero(), doc.Parametres.NomEntreprise),
		Body:    corpsMessage(doc),
		PDFPath: path,
	})
}

func titreDocument(typ infra.TypeDocument) string {
	if typ == infra.DocDevis {
		return "Devis"
	}
	return "Facture"
}

func corpsMessage(doc *infra.Document) string {
	return fmt.Sprintf("Bonjour %s,\n\nVeuillez trouver ci-joint votre %s %s.\n\nCordialement,\n%s\n",
		doc.Client.Couple(), string(doc.Type), doc.Numero(), doc.Parametres.NomEntreprise)
}
