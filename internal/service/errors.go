package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Sentinels mapped to HTTP status codes by the handlers.
var (
	ErrIntrouvable   = errors.New("introuvable")
	ErrIndisponible  = errors.New("données indisponibles")
	ErrInvalide      = errors.New("requête invalide")
	ErrConflit       = errors.New("conflit")
	ErrIdentifiants  = errors.New("identifiants invalides")
	ErrTokenInvalide = errors.New("token invalide ou expiré")
)

// indisponible marks a failed read. The caller must surface it rather than
// compute anything from a partial or empty set.
func indisponible(what string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrIndisponible, what, err)
}

// introuvable maps gorm.ErrRecordNotFound to ErrIntrouvable and every other
// failure to ErrIndisponible.
func introuvable(what string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", what, ErrIntrouvable)
	}
	return indisponible(what, err)
}

func invalide(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalide, fmt.Sprintf(format, args...))
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

const layoutJour = "2006-01-02"

func parseJour(s string) (time.Time, error) {
	t, err := time.Parse(layoutJour, s)
	if err != nil {
		return time.Time{}, invalide("date %q attendue au format AAAA-MM-JJ", s)
	}
	return t, nil
}

func parseJourOpt(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := parseJour(*s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
