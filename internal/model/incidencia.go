package model

import (
	"time"

	"github.com/google/uuid"
)

// Incident delivery states.
const (
	IncidenciaPendiente = "pendiente"
	IncidenciaEnviada   = "enviada"
	IncidenciaError     = "error"
)

// Incident types.
const (
	IncidenciaCambioEstado = "cambio_estado"
	IncidenciaBypass       = "bypass_transicion"
)

// Incidencia records an event that must reach the external incident/audit
// sink: no-shows, cancellations of states flagged crea_incidencia, and
// administrative bypass overrides. Delivery is asynchronous with retries;
// rows stuck in pendiente are re-attempted by the retry cron.
type Incidencia struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ReservaID     uuid.UUID `gorm:"type:uuid;index;not null"`
	Tipo          string    `gorm:"type:varchar(30);not null"`
	Estado        string    `gorm:"type:varchar(20);not null;default:'pendiente';index"`
	EstadoReserva string    `gorm:"not null"` // state code that triggered it
	Usuario       string    `gorm:"not null"`
	Motivo        *string
	RetryCount    int        `gorm:"not null;default:0"`
	NextRetryAt   *time.Time `gorm:"index"`
	LastError     *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (Incidencia) TableName() string { return "incidencias" }
