package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	QueueIncidencias = "jobs:incidencias"
	QueueAuditoria   = "jobs:auditoria"
	QueueEmail       = "jobs:email"
)

// Job is the generic envelope for all async tasks.
type Job struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// IncidenciaJobPayload reports a state change flagged crea_incidencia.
type IncidenciaJobPayload struct {
	ReservaID   string  `json:"reserva_id"`
	Estado      string  `json:"estado"`
	CambiadoPor string  `json:"cambiado_por"`
	Motivo      *string `json:"motivo,omitempty"`
}

// AuditoriaJobPayload records an administrative override (matrix bypass).
type AuditoriaJobPayload struct {
	Accion    string `json:"accion"`
	ReservaID string `json:"reserva_id"`
	Estado    string `json:"estado"`
	Usuario   string `json:"usuario"`
}

// EmailJobPayload asks for a confirmation email with the PDF ticket.
type EmailJobPayload struct {
	ReservaID string `json:"reserva_id"`
	Email     string `json:"email"`
	Nombre    string `json:"nombre"`
}

// Dispatcher enqueues async jobs into Redis lists.
// The worker pool dequeues them via BRPOP.
type Dispatcher struct {
	rdb *redis.Client
}

func NewDispatcher(rdb *redis.Client) *Dispatcher {
	return &Dispatcher{rdb: rdb}
}

func (d *Dispatcher) EnqueueIncidencia(ctx context.Context, payload IncidenciaJobPayload) error {
	return d.enqueue(ctx, QueueIncidencias, "incidencia", payload)
}

func (d *Dispatcher) EnqueueAuditoria(ctx context.Context, payload AuditoriaJobPayload) error {
	return d.enqueue(ctx, QueueAuditoria, "auditoria", payload)
}

func (d *Dispatcher) EnqueueEmail(ctx context.Context, payload EmailJobPayload) error {
	return d.enqueue(ctx, QueueEmail, "email", payload)
}

func (d *Dispatcher) enqueue(ctx context.Context, queue, jobType string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	job := Job{Type: jobType, Payload: data}
	encoded, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return d.rdb.LPush(ctx, queue, encoded).Err()
}

// Handler processes one dequeued job payload.
type Handler interface {
	Process(ctx context.Context, payload json.RawMessage)
}

// StartWorkerPool launches numWorkers goroutines consuming the queues mapped
// in handlers. Each goroutine blocks on BRPOP — zero CPU when idle.
func StartWorkerPool(ctx context.Context, rdb *redis.Client, numWorkers int, handlers map[string]Handler) {
	queues := make([]string, 0, len(handlers))
	for q := range handlers {
		queues = append(queues, q)
	}
	for i := 0; i < numWorkers; i++ {
		go runWorker(ctx, rdb, i, queues, handlers)
	}
	log.Info().Msgf("worker pool started with %d workers", numWorkers)
}

func runWorker(ctx context.Context, rdb *redis.Client, id int, queues []string, handlers map[string]Handler) {
	for {
		select {
		case <-ctx.Done():
			log.Info().Msgf("worker %d shutting down", id)
			return
		default:
			// Blocking pop — waits up to 5s then loops to check ctx
			result, err := rdb.BRPop(ctx, 5*time.Second, queues...).Result()
			if err != nil {
				continue // timeout or context cancelled
			}
			if len(result) < 2 {
				continue
			}
			processJob(ctx, handlers, result[0], result[1])
		}
	}
}

func processJob(ctx context.Context, handlers map[string]Handler, queue, raw string) {
	var job Job
	if err := json.Unmarshal([]byte(raw), &job); err != nil {
		log.Error().Str("queue", queue).Err(err).Msg("failed to unmarshal job")
		return
	}
	h, ok := handlers[queue]
	if !ok {
		log.Warn().Str("queue", queue).Str("type", job.Type).Msg("no handler for queue")
		return
	}
	h.Process(ctx, job.Payload)
}
