package worker

// Delivers incident and audit events to the hotel operations webhook. Each
// event is persisted before delivery; the row tracks retry state so the retry
// cron can pick up anything that did not go through on the first attempts.

import (
	"context"
	"encoding/json"
	"time"

	"purobeach/internal/infra"
	"purobeach/internal/model"
	"purobeach/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// IncidenciaWorker processes jobs from QueueIncidencias and QueueAuditoria.
type IncidenciaWorker struct {
	client *infra.IncidenciasClient
	cb     *infra.CircuitBreaker
	repo   repository.IncidenciaRepository
}

func NewIncidenciaWorker(client *infra.IncidenciasClient, cb *infra.CircuitBreaker, repo repository.IncidenciaRepository) *IncidenciaWorker {
	return &IncidenciaWorker{client: client, cb: cb, repo: repo}
}

// Process persists the event and attempts delivery with exponential backoff.
// Failures leave the row pendiente with next_retry_at set for the cron.
func (w *IncidenciaWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload IncidenciaJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("incidencia_worker: invalid payload")
		return
	}
	w.deliver(ctx, payload, model.IncidenciaCambioEstado)
}

// ProcessAuditoria handles bypass-override audit jobs through the same
// delivery path, typed bypass_transicion.
type AuditoriaWorker struct {
	inner *IncidenciaWorker
}

func NewAuditoriaWorker(inner *IncidenciaWorker) *AuditoriaWorker {
	return &AuditoriaWorker{inner: inner}
}

func (w *AuditoriaWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload AuditoriaJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("auditoria_worker: invalid payload")
		return
	}
	w.inner.deliver(ctx, IncidenciaJobPayload{
		ReservaID:   payload.ReservaID,
		Estado:      payload.Estado,
		CambiadoPor: payload.Usuario,
	}, model.IncidenciaBypass)
}

func (w *IncidenciaWorker) deliver(ctx context.Context, payload IncidenciaJobPayload, tipo string) {
	reservaID, err := uuid.Parse(payload.ReservaID)
	if err != nil {
		log.Error().Str("reserva_id", payload.ReservaID).Msg("incidencia_worker: invalid reserva_id")
		return
	}

	inc := &model.Incidencia{
		ReservaID:     reservaID,
		Tipo:          tipo,
		Estado:        model.IncidenciaPendiente,
		EstadoReserva: payload.Estado,
		Usuario:       payload.CambiadoPor,
		Motivo:        payload.Motivo,
	}
	if err := w.repo.Create(ctx, inc); err != nil {
		log.Error().Err(err).Str("reserva_id", payload.ReservaID).Msg("incidencia_worker: failed to persist incident")
		return
	}

	deliverErr := withRetry(ctx, 3, func(attempt int) error {
		return w.cb.Execute(func() error {
			_, err := w.client.Reportar(ctx, infra.IncidenciaPayload{
				ReservaID: payload.ReservaID,
				Tipo:      tipo,
				Estado:    payload.Estado,
				Usuario:   payload.CambiadoPor,
				Motivo:    payload.Motivo,
				Fecha:     inc.CreatedAt.UTC().Format(time.RFC3339),
			})
			if err != nil {
				log.Warn().
					Err(err).
					Int("attempt", attempt+1).
					Str("reserva_id", payload.ReservaID).
					Msg("incidencia_worker: delivery attempt failed")
			}
			return err
		})
	})

	if deliverErr != nil {
		inc.RetryCount = 3
		errMsg := deliverErr.Error()
		inc.LastError = &errMsg
		next := time.Now().Add(computeRetryBackoff(inc.RetryCount))
		inc.NextRetryAt = &next
		_ = w.repo.Update(ctx, inc)
		log.Error().
			Err(deliverErr).
			Str("incidencia_id", inc.ID.String()).
			Time("next_retry_at", next).
			Msg("incidencia_worker: delivery failed, scheduled for retry cron")
		return
	}

	inc.Estado = model.IncidenciaEnviada
	inc.NextRetryAt = nil
	inc.LastError = nil
	_ = w.repo.Update(ctx, inc)
	log.Info().
		Str("incidencia_id", inc.ID.String()).
		Str("tipo", tipo).
		Msg("incidencia_worker: delivered")
}

// withRetry calls fn up to maxAttempts times with exponential backoff
// (immediate, 1s, 2s…). Returns nil if any attempt succeeds.
func withRetry(ctx context.Context, maxAttempts int, fn func(attempt int) error) error {
	var lastErr error
	for i := 0; i < maxAttempts; i++ {
		if i > 0 {
			wait := time.Duration(1<<uint(i-1)) * time.Second
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
			}
		}
		if err := fn(i); err != nil {
			lastErr = err
			continue
		}
		return nil
	}
	return lastErr
}
