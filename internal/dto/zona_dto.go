package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearZonaRequest struct {
	Nombre  string  `json:"nombre"   validate:"required,min=2,max=100"`
	PadreID *string `json:"padre_id" validate:"omitempty,uuid"`
	Orden   int     `json:"orden"    validate:"min=0"`
	Color   string  `json:"color"    validate:"omitempty,hexcolor"`
}

type ActualizarZonaRequest struct {
	Nombre  *string `json:"nombre"   validate:"omitempty,min=2,max=100"`
	PadreID *string `json:"padre_id" validate:"omitempty,uuid"`
	Orden   *int    `json:"orden"    validate:"omitempty,min=0"`
	Color   *string `json:"color"    validate:"omitempty,hexcolor"`
	Activo  *bool   `json:"activo"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ZonaResponse struct {
	ID         string  `json:"id"`
	Nombre     string  `json:"nombre"`
	PadreID    *string `json:"padre_id"`
	Orden      int     `json:"orden"`
	Color      string  `json:"color"`
	Activo     bool    `json:"activo"`
	Mobiliario int64   `json:"mobiliario"` // units owned by the zone
}
