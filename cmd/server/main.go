package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"elysee/internal/config"
	"elysee/internal/handler"
	"elysee/internal/infra"
	"elysee/internal/router"
	"elysee/internal/service"
	"elysee/internal/worker"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("chargement de la configuration impossible")
	}

	// Structured logger: console in development, JSON otherwise
	if cfg.Env != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	if err := infra.Migrate(cfg.DatabaseURL); err != nil {
		log.Fatal().Err(err).Msg("migration du schéma impossible")
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("connexion postgres impossible")
	}

	// Redis only carries the e-mail queue; the API runs without it.
	rdb, err := infra.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Warn().Err(err).Msg("redis indisponible, envoi des factures désactivé")
		rdb = nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mailer := infra.NewMailer(cfg)
	var queue service.FactureQueue
	var dispatcher *worker.Dispatcher
	if rdb != nil {
		dispatcher = worker.NewDispatcher(worker.NewRedisPusher(rdb))
		queue = dispatcher
	}

	svcs := router.NewServices(cfg, db, queue)

	// Worker handlers are wired here (composition root) so that the pool
	// shares the service instances of the HTTP layer.
	if rdb != nil {
		pool := worker.NewPool(rdb, dispatcher, map[string]worker.Handler{
			worker.JobFacture: worker.NewFactureWorker(svcs.Documents, dispatcher, cfg.PDFStoragePath),
			worker.JobEmail:   worker.NewEmailWorker(mailer),
		})
		pool.Start(ctx, cfg.WorkerPoolSize)
	}

	r := router.NewWithServices(cfg, svcs, handler.Health(db, rdb, mailer))

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Msgf("elysee backend à l'écoute sur :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("erreur serveur")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("arrêt du serveur…")
	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("arrêt forcé")
	}
	log.Info().Msg("serveur arrêté")
}
