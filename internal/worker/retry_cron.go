package worker

// Background goroutine that periodically re-attempts webhook delivery for
// incidencias stuck in estado='pendiente' with a next_retry_at in the past.
// Uses the circuit breaker to avoid hammering a downed sink.

import (
	"context"
	"fmt"
	"time"

	"purobeach/internal/infra"
	"purobeach/internal/model"
	"purobeach/internal/repository"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	retryTickInterval = 30 * time.Second
	retryBatchSize    = 10

	// MaxIncidenciaRetries is the total number of cron re-attempts before an
	// incident is parked in estado='error' and sent to the DLQ.
	MaxIncidenciaRetries = 8
)

// computeRetryBackoff returns the wait before the next cron attempt for a row
// that has already failed retryCount times. Capped at 15 minutes.
func computeRetryBackoff(retryCount int) time.Duration {
	backoff := time.Duration(1<<uint(retryCount)) * 10 * time.Second
	if backoff > 15*time.Minute {
		backoff = 15 * time.Minute
	}
	return backoff
}

// RetryCronConfig holds all dependencies for the retry goroutine.
type RetryCronConfig struct {
	IncidenciaRepo repository.IncidenciaRepository
	Client         *infra.IncidenciasClient
	CB             *infra.CircuitBreaker
	RDB            *redis.Client
}

// StartRetryCron launches a background goroutine that ticks every 30s,
// queries pending incidencias, and re-attempts delivery through the CB.
// It respects the context for graceful shutdown.
func StartRetryCron(ctx context.Context, cfg RetryCronConfig) {
	go func() {
		ticker := time.NewTicker(retryTickInterval)
		defer ticker.Stop()

		log.Info().Msg("retry_cron: started")

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("retry_cron: shutting down")
				return
			case <-ticker.C:
				processRetries(ctx, cfg)
			}
		}
	}()
}

func processRetries(ctx context.Context, cfg RetryCronConfig) {
	// If CB is open, skip entirely — don't hammer a downed sink
	if cfg.CB.State() == infra.CBOpen {
		log.Debug().Msg("retry_cron: circuit breaker is open, skipping tick")
		return
	}

	now := time.Now()
	incidencias, err := cfg.IncidenciaRepo.ListPendingRetries(ctx, now, retryBatchSize)
	if err != nil {
		log.Error().Err(err).Msg("retry_cron: failed to query pending retries")
		return
	}

	if len(incidencias) == 0 {
		return
	}

	log.Info().Int("count", len(incidencias)).Msg("retry_cron: processing pending incidencias")

	for i := range incidencias {
		inc := &incidencias[i]

		// Check CB state before each call — it may have tripped mid-batch
		if cfg.CB.State() == infra.CBOpen {
			log.Debug().Msg("retry_cron: circuit breaker opened mid-batch, stopping")
			return
		}

		payload := infra.IncidenciaPayload{
			ReservaID: inc.ReservaID.String(),
			Tipo:      inc.Tipo,
			Estado:    inc.EstadoReserva,
			Usuario:   inc.Usuario,
			Motivo:    inc.Motivo,
			Fecha:     inc.CreatedAt.UTC().Format(time.RFC3339),
		}

		cbErr := cfg.CB.Execute(func() error {
			_, err := cfg.Client.Reportar(ctx, payload)
			return err
		})

		if cbErr != nil {
			// Failure — increment retry count, schedule next attempt
			inc.RetryCount++
			errMsg := cbErr.Error()
			inc.LastError = &errMsg
			nextRetry := time.Now().Add(computeRetryBackoff(inc.RetryCount))
			inc.NextRetryAt = &nextRetry

			if inc.RetryCount >= MaxIncidenciaRetries {
				inc.Estado = model.IncidenciaError
				inc.NextRetryAt = nil
				log.Error().
					Str("incidencia_id", inc.ID.String()).
					Str("reserva_id", inc.ReservaID.String()).
					Int("retries", inc.RetryCount).
					Msg("retry_cron: max retries exceeded, moving to error/DLQ")

				// Send to DLQ for manual inspection
				raw := fmt.Sprintf(`{"reserva_id":"%s","incidencia_id":"%s","tipo":"%s"}`,
					inc.ReservaID, inc.ID, inc.Tipo)
				SendToDLQ(ctx, cfg.RDB, QueueIncidencias, "incidencias", []byte(raw),
					fmt.Sprintf("max retries (%d) exceeded: %s", MaxIncidenciaRetries, errMsg),
					inc.RetryCount)
			} else {
				log.Warn().
					Str("incidencia_id", inc.ID.String()).
					Int("retry_count", inc.RetryCount).
					Time("next_retry_at", *inc.NextRetryAt).
					Msg("retry_cron: delivery retry failed, scheduled next attempt")
			}

			_ = cfg.IncidenciaRepo.Update(ctx, inc)
			continue
		}

		// Success path
		inc.Estado = model.IncidenciaEnviada
		inc.NextRetryAt = nil
		inc.LastError = nil
		_ = cfg.IncidenciaRepo.Update(ctx, inc)

		log.Info().
			Str("incidencia_id", inc.ID.String()).
			Int("total_retries", inc.RetryCount).
			Msg("retry_cron: delivered after retry")
	}
}
