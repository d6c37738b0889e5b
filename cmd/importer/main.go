// Command importer loads the historical workbook and cleans duplicate debits.
//
//	importer import <classeur.xlsx>
//	importer doublons [--confirm]
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"elysee/internal/config"
	"elysee/internal/importer"
	"elysee/internal/infra"
	"elysee/internal/repository"
	"elysee/internal/service"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func usage() {
	fmt.Fprintln(os.Stderr, "usage:\n  importer import <classeur.xlsx>\n  importer doublons [--confirm]")
	os.Exit(2)
}

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	if len(os.Args) < 2 {
		usage()
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("chargement de la configuration impossible")
	}
	if err := infra.Migrate(cfg.DatabaseURL); err != nil {
		log.Fatal().Err(err).Msg("migration du schéma impossible")
	}
	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("connexion postgres impossible")
	}

	svc := service.NewMaintenanceService(
		repository.NewDebitRepository(db),
		repository.NewImportRepository(db),
		importer.OptionsDepuis(cfg),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var resultat interface{}
	switch os.Args[1] {
	case "import":
		if len(os.Args) != 3 {
			usage()
		}
		classeur, err := importer.LireClasseur(os.Args[2])
		if err != nil {
			log.Fatal().Err(err).Str("fichier", os.Args[2]).Msg("lecture du classeur impossible")
		}
		resultat, err = svc.ImporterClasseur(ctx, classeur)
		if err != nil {
			log.Fatal().Err(err).Msg("import interrompu")
		}
	case "doublons":
		fs := flag.NewFlagSet("doublons", flag.ExitOnError)
		confirm := fs.Bool("confirm", false, "supprimer les doublons trouvés")
		_ = fs.Parse(os.Args[2:])
		resultat, err = svc.NettoyerDoublons(ctx, *confirm)
		if err != nil {
			log.Fatal().Err(err).Msg("analyse des doublons impossible")
		}
		if !*confirm {
			log.Info().Msg("analyse seule, relancer avec --confirm pour supprimer")
		}
	default:
		usage()
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(resultat); err != nil {
		log.Fatal().Err(err).Msg("écriture du rapport impossible")
	}
}
