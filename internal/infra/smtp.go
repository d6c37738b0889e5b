package infra

import (
	"bytes"
	"fmt"
	"net/smtp"

	"elysee/internal/config"

	"github.com/jordan-wright/email"
)

// Piece is an in-memory attachment.
type Piece struct {
	Nom         string
	ContentType string
	Contenu     []byte
}

// Mailer sends mail through the configured SMTP relay, behind a circuit breaker.
type Mailer struct {
	host     string
	user     string
	password string
	from     string
	addr     string
	cb       *CircuitBreaker
	send     func(e *email.Email, addr string, auth smtp.Auth) error
}

func NewMailer(cfg *config.Config) *Mailer {
	return &Mailer{
		host:     cfg.SMTPHost,
		user:     cfg.SMTPUser,
		password: cfg.SMTPPassword,
		from:     cfg.SMTPFrom,
		addr:     fmt.Sprintf("%s:%d", cfg.SMTPHost, cfg.SMTPPort),
		cb:       NewCircuitBreaker(DefaultCBConfig("smtp")),
		send:     func(e *email.Email, addr string, auth smtp.Auth) error { return e.Send(addr, auth) },
	}
}

// Configured reports whether an SMTP host was provided.
func (m *Mailer) Configured() bool { return m.host != "" }

// Breaker exposes the breaker state for the health endpoint.
func (m *Mailer) Breaker() *CircuitBreaker { return m.cb }

// Envoyer sends a plain-text message with optional attachments.
func (m *Mailer) Envoyer(to, subject, body string, pieces ...Piece) error {
	if !m.Configured() {
		return fmt.Errorf("mailer: SMTP_HOST non configuré")
	}
	e := email.NewEmail()
	e.From = m.from
	e.To = []string{to}
	e.Subject = subject
	e.Text = []byte(body)

	for _, p := range pieces {
		if _, err := e.Attach(bytes.NewReader(p.Contenu), p.Nom, p.ContentType); err != nil {
			return fmt.Errorf("mailer: attach %s: %w", p.Nom, err)
		}
	}

	var auth smtp.Auth
	if m.user != "" {
		auth = smtp.PlainAuth("", m.user, m.password, m.host)
	}
	return m.cb.Execute(func() error {
		return m.send(e, m.addr, auth)
	})
}
