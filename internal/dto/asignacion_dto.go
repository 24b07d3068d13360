package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type AsignarMobiliarioRequest struct {
	MobiliarioIDs []string `json:"mobiliario_ids" validate:"required,min=1,dive,uuid"`
	Fecha         string   `json:"fecha"          validate:"required,datetime=2006-01-02"`
}

type DesasignarMobiliarioRequest struct {
	MobiliarioIDs []string `json:"mobiliario_ids" validate:"required,min=1,dive,uuid"`
	Fecha         string   `json:"fecha"          validate:"required,datetime=2006-01-02"`
}

type BloquearMobiliarioRequest struct {
	Bloqueado bool `json:"bloqueado"`
}

// PoolFilter selects the target date for the move-mode panel.
type PoolFilter struct {
	Fecha string `form:"fecha" validate:"omitempty,datetime=2006-01-02"` // empty = fecha_inicio
}

// CoincidenciasFilter is bound from GET /v1/sugerencias/coincidencias.
type CoincidenciasFilter struct {
	Fecha        string   `form:"fecha"        validate:"required,datetime=2006-01-02"`
	Preferencias []string `form:"preferencias"`
	ZonaID       string   `form:"zona_id"      validate:"omitempty,uuid"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type AsignarResponse struct {
	Asignados     int      `json:"asignados"`
	MobiliarioIDs []string `json:"mobiliario_ids"`
}

type DesasignarResponse struct {
	Desasignados  int      `json:"desasignados"`
	MobiliarioIDs []string `json:"mobiliario_ids"`
}

type BloquearMobiliarioResponse struct {
	ReservaID           string `json:"reserva_id"`
	MobiliarioBloqueado bool   `json:"mobiliario_bloqueado"`
}

// PoolDiaResponse lists the furniture a reservation holds on one date.
type PoolDiaResponse struct {
	Fecha      string               `json:"fecha"`
	Mobiliario []AsignacionResponse `json:"mobiliario"`
}

// PoolReservaResponse is the move-mode detail bundle for one reservation.
type PoolReservaResponse struct {
	Reserva      ReservaResponse   `json:"reserva"`
	Preferencias []string          `json:"preferencias"`
	Dias         []PoolDiaResponse `json:"dias"`
	// FechasGrupo spans the whole multi-day group, parent and children.
	FechasGrupo []string `json:"fechas_grupo"`
}

// CoincidenciaResponse is one furniture unit ranked for a preference set.
// Disponible is state-agnostic here: any assignment row for the date counts.
type CoincidenciaResponse struct {
	Mobiliario               MobiliarioResponse `json:"mobiliario"`
	Disponible               bool               `json:"disponible"`
	PuntuacionCoincidencia   float64            `json:"puntuacion_coincidencia"`
	PreferenciasCoincidentes []string           `json:"preferencias_coincidentes"`
}
