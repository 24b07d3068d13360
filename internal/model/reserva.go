package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Reservation types.
const (
	ReservaNormal        = "normal"
	ReservaPaquete       = "paquete"
	ReservaConsumoMinimo = "consumo_minimo"
)

// Reserva is a booking for one customer. Multi-day groups link children to a
// parent via PadreID (one child per additional date; parent covers the first).
//
// EstadoID is the single source of truth for the reservation state; the display
// code/name is read through the Estado relation and the accumulated state set is
// derived from the active Historial rows.
type Reserva struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ClienteID   uuid.UUID  `gorm:"type:uuid;index;not null"`
	FechaInicio time.Time  `gorm:"type:date;index;not null"`
	FechaFin    time.Time  `gorm:"type:date;not null"`
	NumPersonas int        `gorm:"not null;default:1"`
	EstadoID    uuid.UUID  `gorm:"type:uuid;index;not null"`
	PadreID     *uuid.UUID `gorm:"type:uuid;index"`
	// MobiliarioBloqueado prevents move-mode from reassigning this reservation's furniture.
	MobiliarioBloqueado bool             `gorm:"not null;default:false"`
	Tipo                string           `gorm:"type:varchar(20);not null;default:'normal'"`
	PaqueteID           *uuid.UUID       `gorm:"type:uuid"`
	PrecioFinal         *decimal.Decimal `gorm:"type:decimal(10,2)"`
	Pagado              bool             `gorm:"not null;default:false"`
	MetodoPago          *string          `gorm:"type:varchar(20)"`
	TicketPago          *string          `gorm:"type:varchar(40)"`
	Notas               *string
	CreatedAt           time.Time
	UpdatedAt           time.Time

	Cliente      *Cliente          `gorm:"foreignKey:ClienteID"`
	Estado       *EstadoReserva    `gorm:"foreignKey:EstadoID"`
	Padre        *Reserva          `gorm:"foreignKey:PadreID"`
	Hijas        []Reserva         `gorm:"foreignKey:PadreID"`
	Asignaciones []Asignacion      `gorm:"foreignKey:ReservaID"`
	Historial    []HistorialEstado `gorm:"foreignKey:ReservaID"`
}

func (Reserva) TableName() string { return "reservas" }

// CodigoEstado returns the current state code, or "" when Estado is not preloaded.
func (r *Reserva) CodigoEstado() string {
	if r.Estado == nil {
		return ""
	}
	return r.Estado.Codigo
}

// EsMultiDia reports whether the reservation belongs to a multi-day group.
func (r *Reserva) EsMultiDia() bool {
	return r.PadreID != nil || !r.FechaInicio.Equal(r.FechaFin)
}

// HistorialEstado records every state applied to a reservation. Activo marks
// the rows that form the current accumulated state set; rows are deactivated,
// never deleted, so the full trail survives.
type HistorialEstado struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ReservaID   uuid.UUID `gorm:"type:uuid;index;not null"`
	EstadoID    uuid.UUID `gorm:"type:uuid;not null"`
	Activo      bool      `gorm:"not null;default:true;index"`
	CambiadoPor string    `gorm:"not null"`
	Motivo      *string
	// Bypass marks administrative overrides that skipped matrix validation.
	Bypass    bool `gorm:"not null;default:false"`
	CreatedAt time.Time

	Estado *EstadoReserva `gorm:"foreignKey:EstadoID"`
}

func (HistorialEstado) TableName() string { return "historial_estados" }
