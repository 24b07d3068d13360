package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearBloqueoRequest struct {
	MobiliarioID string  `json:"mobiliario_id" validate:"required,uuid"`
	FechaInicio  string  `json:"fecha_inicio"  validate:"required,datetime=2006-01-02"`
	FechaFin     string  `json:"fecha_fin"     validate:"required,datetime=2006-01-02"`
	Tipo         string  `json:"tipo"          validate:"required,oneof=mantenimiento vip evento"`
	Motivo       *string `json:"motivo"`
}

// BloqueoFilter is bound from the query string of GET /v1/bloqueos.
type BloqueoFilter struct {
	MobiliarioID string `form:"mobiliario_id" validate:"omitempty,uuid"`
	FechaDesde   string `form:"fecha_desde"   validate:"omitempty,datetime=2006-01-02"`
	FechaHasta   string `form:"fecha_hasta"   validate:"omitempty,datetime=2006-01-02"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type BloqueoResponse struct {
	ID           string  `json:"id"`
	MobiliarioID string  `json:"mobiliario_id"`
	Numero       string  `json:"numero,omitempty"`
	FechaInicio  string  `json:"fecha_inicio"`
	FechaFin     string  `json:"fecha_fin"`
	Tipo         string  `json:"tipo"`
	TipoNombre   string  `json:"tipo_nombre"`
	Color        string  `json:"color"`
	Motivo       *string `json:"motivo"`
	CreadoPor    string  `json:"creado_por"`
}
