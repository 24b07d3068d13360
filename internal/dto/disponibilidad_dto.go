package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

// DisponibilidadFilter is bound from the query string of GET /v1/disponibilidad.
type DisponibilidadFilter struct {
	FechaDesde string `form:"fecha_desde" validate:"required,datetime=2006-01-02"`
	FechaHasta string `form:"fecha_hasta" validate:"required,datetime=2006-01-02"`
	ZonaID     string `form:"zona_id"     validate:"omitempty,uuid"`
}

// CheckBulkRequest asks whether every (mobiliario, fecha) pair is free.
// Empty MobiliarioIDs or Fechas is vacuously all-available.
type CheckBulkRequest struct {
	MobiliarioIDs []string `json:"mobiliario_ids" validate:"dive,uuid"`
	Fechas        []string `json:"fechas"         validate:"dive,datetime=2006-01-02"`
}

// ConflictosFilter is bound from the query string of GET /v1/disponibilidad/conflictos.
type ConflictosFilter struct {
	Fecha         string   `form:"fecha"          validate:"required,datetime=2006-01-02"`
	MobiliarioIDs []string `form:"mobiliario_ids" validate:"dive,uuid"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

// ParNoDisponible identifies one occupied (mobiliario, fecha) pair in a bulk check.
type ParNoDisponible struct {
	MobiliarioID string `json:"mobiliario_id"`
	Fecha        string `json:"fecha"`
}

type CheckBulkResponse struct {
	TodoDisponible bool              `json:"todo_disponible"`
	NoDisponibles  []ParNoDisponible `json:"no_disponibles"`
	// Matriz[fecha][mobiliario_id] = disponible
	Matriz map[string]map[string]bool `json:"matriz"`
}

// ResumenDia aggregates occupancy for one date of the availability map.
type ResumenDia struct {
	Total         int     `json:"total"`
	Disponibles   int     `json:"disponibles"`
	Ocupados      int     `json:"ocupados"`
	TasaOcupacion float64 `json:"tasa_ocupacion"` // 0..1
}

type MapaDisponibilidadResponse struct {
	Mobiliario []MobiliarioResponse `json:"mobiliario"`
	Fechas     []string             `json:"fechas"`
	// Disponibilidad[fecha][mobiliario_id] = disponible
	Disponibilidad map[string]map[string]bool `json:"disponibilidad"`
	Resumen        map[string]ResumenDia      `json:"resumen"`
}

// ReservaConflicto describes a reservation occupying requested furniture.
type ReservaConflicto struct {
	ReservaID    string `json:"reserva_id"`
	MobiliarioID string `json:"mobiliario_id"`
	Numero       string `json:"numero"`
	Fecha        string `json:"fecha"`
	Cliente      string `json:"cliente"`
	Estado       string `json:"estado"`
}
