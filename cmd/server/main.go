package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"purobeach/internal/config"
	"purobeach/internal/infra"
	"purobeach/internal/repository"
	"purobeach/internal/router"
	"purobeach/internal/worker"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	// Structured logger: pretty console in development, JSON elsewhere.
	if cfg.Env == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}

	rdb, err := infra.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}

	// Background workers: incident/audit webhook delivery and confirmation
	// emails. Handlers are wired here (composition root) so the pool has full
	// access to the infrastructure dependencies.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	incidenciasClient := infra.NewIncidenciasClient(cfg.IncidenciasURL)
	incidenciasCB := infra.NewCircuitBreaker(infra.DefaultCBConfig())
	mailer := infra.NewMailer(cfg)
	incidenciaRepo := repository.NewIncidenciaRepository(db)
	reservaRepo := repository.NewReservaRepository(db)

	incidenciaWorker := worker.NewIncidenciaWorker(incidenciasClient, incidenciasCB, incidenciaRepo)
	handlers := map[string]worker.Handler{
		worker.QueueIncidencias: incidenciaWorker,
		worker.QueueAuditoria:   worker.NewAuditoriaWorker(incidenciaWorker),
		worker.QueueEmail:       worker.NewEmailWorker(mailer, reservaRepo, cfg.PDFStoragePath),
	}
	worker.StartWorkerPool(ctx, rdb, cfg.WorkerPoolSize, handlers)

	// Retry cron re-attempts incident rows stuck in pendiente
	worker.StartRetryCron(ctx, worker.RetryCronConfig{
		IncidenciaRepo: incidenciaRepo,
		Client:         incidenciasClient,
		CB:             incidenciasCB,
		RDB:            rdb,
	})

	r := router.New(cfg, db, rdb, incidenciasCB)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Msgf("Puro Beach backend listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server…")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server exited")
}
