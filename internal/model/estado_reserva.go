package model

import (
	"time"

	"github.com/google/uuid"
)

// System state codes seeded by cmd/seed. Custom states may be added at runtime;
// they are not listed here and the transition matrix treats them as permissive.
const (
	EstadoConfirmada = "confirmada"
	EstadoSentada    = "sentada"
	EstadoCancelada  = "cancelada"
	EstadoNoShow     = "no_show"
	EstadoCompletada = "completada"
	EstadoLiberada   = "liberada"
)

// EstadoReserva is a configurable reservation state.
// LiberaDisponibilidad: furniture held by reservations in this state does NOT
// count as occupied. CreaIncidencia: entering this state reports an incident.
// EsSistema protects seed states from deletion/renaming. Prioridad breaks ties
// when a reservation carries several simultaneous states.
type EstadoReserva struct {
	ID                   uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Codigo               string    `gorm:"uniqueIndex;not null"`
	Nombre               string    `gorm:"not null"`
	Color                string    `gorm:"type:varchar(10);not null;default:'#9E9E9E'"`
	LiberaDisponibilidad bool      `gorm:"not null;default:false"`
	CreaIncidencia       bool      `gorm:"not null;default:false"`
	EsDefault            bool      `gorm:"not null;default:false"`
	EsSistema            bool      `gorm:"not null;default:false"`
	Prioridad            int       `gorm:"not null;default:0"`
	Activo               bool      `gorm:"not null;default:true"`
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

func (EstadoReserva) TableName() string { return "estados_reserva" }

// transicionesValidas is the lifecycle matrix for system states, keyed by Codigo.
// Terminal states map to an empty slice. Codes absent from the matrix (custom
// workflow states) are permissive: any transition is allowed from/to them.
var transicionesValidas = map[string][]string{
	EstadoConfirmada: {EstadoSentada, EstadoCancelada, EstadoNoShow},
	EstadoSentada:    {EstadoCompletada, EstadoCancelada, EstadoLiberada},
	EstadoCancelada:  {EstadoConfirmada},
	EstadoNoShow:     {EstadoConfirmada},
	EstadoCompletada: {},
	EstadoLiberada:   {},
}

// TransicionesPermitidas returns the legal target codes from a given state code.
// The second return is false for codes not present in the matrix (custom states).
func TransicionesPermitidas(codigo string) ([]string, bool) {
	destinos, conocido := transicionesValidas[codigo]
	return destinos, conocido
}

// EsTransicionValida reports whether codigo→destino is allowed by the matrix.
// Unknown source codes are permissive; an empty source (new reservation) is
// always valid.
func EsTransicionValida(codigo, destino string) bool {
	if codigo == "" {
		return true
	}
	destinos, conocido := transicionesValidas[codigo]
	if !conocido {
		return true
	}
	for _, d := range destinos {
		if d == destino {
			return true
		}
	}
	return false
}

// EsEstadoTerminal reports whether a known state has no outgoing transitions.
// Unknown codes are never terminal.
func EsEstadoTerminal(codigo string) bool {
	destinos, conocido := transicionesValidas[codigo]
	return conocido && len(destinos) == 0
}
