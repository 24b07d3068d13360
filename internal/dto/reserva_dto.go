package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

// DiaReservaRequest carries the furniture wanted for one date of the group.
type DiaReservaRequest struct {
	Fecha         string   `json:"fecha"          validate:"required,datetime=2006-01-02"`
	MobiliarioIDs []string `json:"mobiliario_ids" validate:"required,min=1,dive,uuid"`
}

// CrearReservaRequest creates a single-day reservation (one Dias entry) or a
// multi-day linked group (one entry per date). All dates are checked for
// availability before any row is written.
type CrearReservaRequest struct {
	ClienteID   string              `json:"cliente_id"   validate:"required,uuid"`
	NumPersonas int                 `json:"num_personas" validate:"required,min=1,max=50"`
	Dias        []DiaReservaRequest `json:"dias"         validate:"required,min=1,dive"`
	Tipo        string              `json:"tipo"         validate:"omitempty,oneof=normal paquete consumo_minimo"`
	PaqueteID   *string             `json:"paquete_id"   validate:"omitempty,uuid"`
	PrecioFinal *decimal.Decimal    `json:"precio_final" validate:"omitempty"`
	Notas       *string             `json:"notas"`
	// PermitirDuplicado overrides the same-customer overlap guard.
	PermitirDuplicado bool `json:"permitir_duplicado"`
}

type ActualizarReservaRequest struct {
	NumPersonas *int             `json:"num_personas" validate:"omitempty,min=1,max=50"`
	PaqueteID   *string          `json:"paquete_id"   validate:"omitempty,uuid"`
	PrecioFinal *decimal.Decimal `json:"precio_final"`
	Pagado      *bool            `json:"pagado"`
	MetodoPago  *string          `json:"metodo_pago"  validate:"omitempty,oneof=efectivo tarjeta habitacion transferencia"`
	TicketPago  *string          `json:"ticket_pago"  validate:"omitempty,max=40"`
	Notas       *string          `json:"notas"`
}

type CancelarReservaRequest struct {
	Motivo string `json:"motivo" validate:"required,min=3"`
	// Bypass skips matrix validation (administrative override; audit-logged).
	Bypass bool `json:"bypass"`
}

// AgregarEstadoRequest adds a state to the reservation's accumulated set.
type AgregarEstadoRequest struct {
	Estado string  `json:"estado" validate:"required,min=1"`
	Motivo *string `json:"motivo"`
	Bypass bool    `json:"bypass"`
}

// CambiarEstadoRequest replaces the whole accumulated set with a single state.
type CambiarEstadoRequest struct {
	Estado string  `json:"estado" validate:"required,min=1"`
	Motivo *string `json:"motivo"`
	Bypass bool    `json:"bypass"`
}

// ReservaFilter is bound from the query string of GET /v1/reservas.
type ReservaFilter struct {
	Fecha     string `form:"fecha"      validate:"omitempty,datetime=2006-01-02"` // empty = today
	Estado    string `form:"estado"`                                              // state code | "all"
	ZonaID    string `form:"zona_id"    validate:"omitempty,uuid"`
	ClienteID string `form:"cliente_id" validate:"omitempty,uuid"`
	Page      int    `form:"page,default=1"   validate:"min=1"`
	Limit     int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type EstadoActivoResponse struct {
	Codigo    string `json:"codigo"`
	Nombre    string `json:"nombre"`
	Color     string `json:"color"`
	Prioridad int    `json:"prioridad"`
}

type AsignacionResponse struct {
	MobiliarioID string `json:"mobiliario_id"`
	Numero       string `json:"numero"`
	Tipo         string `json:"tipo"`
	Fecha        string `json:"fecha"`
	Activa       bool   `json:"activa"`
}

type ReservaResponse struct {
	ID                  string                 `json:"id"`
	ClienteID           string                 `json:"cliente_id"`
	Cliente             string                 `json:"cliente"`
	FechaInicio         string                 `json:"fecha_inicio"`
	FechaFin            string                 `json:"fecha_fin"`
	NumPersonas         int                    `json:"num_personas"`
	Estado              string                 `json:"estado"` // primary state code
	EstadoNombre        string                 `json:"estado_nombre"`
	EstadosActivos      []EstadoActivoResponse `json:"estados_activos"`
	PadreID             *string                `json:"padre_id"`
	HijaIDs             []string               `json:"hija_ids,omitempty"`
	MobiliarioBloqueado bool                   `json:"mobiliario_bloqueado"`
	Tipo                string                 `json:"tipo"`
	PaqueteID           *string                `json:"paquete_id"`
	PrecioFinal         *decimal.Decimal       `json:"precio_final"`
	Pagado              bool                   `json:"pagado"`
	MetodoPago          *string                `json:"metodo_pago"`
	TicketPago          *string                `json:"ticket_pago"`
	Notas               *string                `json:"notas"`
	Asignaciones        []AsignacionResponse   `json:"asignaciones"`
	CreatedAt           string                 `json:"created_at"`
}

type ReservaListResponse struct {
	Data  []ReservaResponse `json:"data"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}

// CrearReservaResponse returns the created group: the parent plus any children.
type CrearReservaResponse struct {
	Reserva ReservaResponse   `json:"reserva"`
	Hijas   []ReservaResponse `json:"hijas,omitempty"`
}

type HistorialEstadoResponse struct {
	Estado      string  `json:"estado"`
	Activo      bool    `json:"activo"`
	CambiadoPor string  `json:"cambiado_por"`
	Motivo      *string `json:"motivo"`
	Bypass      bool    `json:"bypass"`
	CreatedAt   string  `json:"created_at"`
}
