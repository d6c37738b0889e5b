package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"elysee/internal/infra"

	"github.com/rs/zerolog/log"
)

// EmailJobPayload is the job envelope sent to QueueEmail.
type EmailJobPayload struct {
	ToEmail string `json:"to_email"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
	PDFPath string `json:"pdf_path,omitempty"`
}

// Sender is satisfied by *infra.Mailer.
type Sender interface {
	Envoyer(to, subject, body string, pieces ...infra.Piece) error
}

// EmailWorker sends queued mails, attaching the archived PDF when present.
type EmailWorker struct {
	mailer Sender
}

func NewEmailWorker(mailer Sender) *EmailWorker {
	return &EmailWorker{mailer: mailer}
}

func (w *EmailWorker) Process(_ context.Context, raw json.RawMessage) error {
	var payload EmailJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return fmt.Errorf("%w: payload: %v", ErrPermanent, err)
	}
	if payload.ToEmail == "" {
		return fmt.Errorf("%w: adresse vide", ErrPermanent)
	}

	var pieces []infra.Piece
	if payload.PDFPath != "" {
		data, err := os.ReadFile(payload.PDFPath)
		if err != nil {
			return fmt.Errorf("%w: pièce jointe: %v", ErrPermanent, err)
		}
		pieces = append(pieces, infra.Piece{
			Nom:         filepath.Base(payload.PDFPath),
			ContentType: "application/pdf",
			Contenu:     data,
		})
	}

	if err := w.mailer.Envoyer(payload.ToEmail, payload.Subject, payload.Body, pieces...); err != nil {
		return err
	}
	log.Info().Str("to", payload.ToEmail).Msg("e-mail envoyé")
	return nil
}
