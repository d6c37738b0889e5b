// Command seeduser creates or resets the first administrator account.
//
//	SEED_EMAIL=... SEED_PASSWORD=... go run ./cmd/seeduser
package main

import (
	"context"
	"os"
	"strings"
	"time"

	"elysee/internal/config"
	"elysee/internal/infra"
	"elysee/internal/model"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("chargement de la configuration impossible")
	}

	email := strings.ToLower(strings.TrimSpace(os.Getenv("SEED_EMAIL")))
	password := os.Getenv("SEED_PASSWORD")
	if email == "" || len(password) < 8 {
		log.Fatal().Msg("SEED_EMAIL et SEED_PASSWORD (8 caractères min.) sont requis")
	}
	nom := os.Getenv("SEED_NAME")
	if nom == "" {
		nom = "Administrateur"
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		log.Fatal().Err(err).Msg("bcrypt")
	}

	if err := infra.Migrate(cfg.DatabaseURL); err != nil {
		log.Fatal().Err(err).Msg("migration du schéma impossible")
	}
	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("connexion postgres impossible")
	}

	result := db.WithContext(context.Background()).Exec(`
		INSERT INTO utilisateurs (email, full_name, password_hash, role)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (email) DO UPDATE
		SET password_hash = EXCLUDED.password_hash,
		    full_name = EXCLUDED.full_name,
		    role = EXCLUDED.role,
		    actif = true,
		    updated_at = NOW()
	`, email, nom, string(hash), model.RoleAdmin)
	if result.Error != nil {
		log.Fatal().Err(result.Error).Msg("insertion impossible")
	}
	log.Info().Str("email", email).Msg("administrateur créé ou mis à jour")
}
