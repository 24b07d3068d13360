package service

import (
	"errors"
	"fmt"
	"strings"
)

// Typed failures raised by the core. The handler layer translates them into
// HTTP status + JSON envelopes; the core never swallows a conflict into a
// false success.

var (
	ErrReservaNoEncontrada    = errors.New("reserva no encontrada")
	ErrMobiliarioNoEncontrado = errors.New("mobiliario no encontrado")
	ErrClienteNoEncontrado    = errors.New("cliente no encontrado")
	ErrZonaNoEncontrada       = errors.New("zona no encontrada")
	ErrEstadoNoEncontrado     = errors.New("estado no encontrado")

	// ErrMobiliarioBloqueado rejects move-mode mutations on a locked reservation.
	ErrMobiliarioBloqueado = errors.New("el mobiliario de la reserva está bloqueado")
)

// ConflictoOcupacion is one occupied (mobiliario, fecha) pair with its holder.
type ConflictoOcupacion struct {
	MobiliarioID string
	Numero       string
	Fecha        string
	ReservaID    string
	Cliente      string
}

// ErrConflicto reports occupied furniture with structured detail so the
// boundary can explain the refusal (who holds it, which date).
type ErrConflicto struct {
	Detalle    string
	Conflictos []ConflictoOcupacion
}

func (e *ErrConflicto) Error() string {
	if len(e.Conflictos) == 0 {
		return e.Detalle
	}
	partes := make([]string, 0, len(e.Conflictos))
	for _, c := range e.Conflictos {
		if c.Cliente != "" {
			partes = append(partes, fmt.Sprintf("%s (%s, %s)", c.Numero, c.Cliente, c.Fecha))
		} else {
			partes = append(partes, fmt.Sprintf("%s (%s)", c.Numero, c.Fecha))
		}
	}
	return e.Detalle + ": " + strings.Join(partes, ", ")
}

// ErrTransicionInvalida is raised when the transition matrix rejects a state
// change. Permitidas lists the legal target codes from Desde.
type ErrTransicionInvalida struct {
	Desde      string
	Hasta      string
	Permitidas []string
}

func (e *ErrTransicionInvalida) Error() string {
	if len(e.Permitidas) == 0 {
		return fmt.Sprintf("transición de estado inválida: %q es un estado terminal", e.Desde)
	}
	return fmt.Sprintf("transición de estado inválida de %q a %q; estados permitidos: %s",
		e.Desde, e.Hasta, strings.Join(e.Permitidas, ", "))
}

// ErrReservaDuplicada is raised when the customer already holds an active
// reservation overlapping the requested dates.
type ErrReservaDuplicada struct {
	ReservaID string
	Fechas    string
}

func (e *ErrReservaDuplicada) Error() string {
	return fmt.Sprintf("el cliente ya tiene una reserva activa en las fechas solicitadas (%s)", e.Fechas)
}
