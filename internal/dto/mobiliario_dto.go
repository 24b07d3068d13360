package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearMobiliarioRequest struct {
	Numero          string   `json:"numero"       validate:"required,min=1,max=10"`
	ZonaID          string   `json:"zona_id"      validate:"required,uuid"`
	Tipo            string   `json:"tipo"         validate:"required,oneof=hamaca balinesa cama_vip mesa"`
	Capacidad       int      `json:"capacidad"    validate:"required,min=1,max=20"`
	PosX            float64  `json:"pos_x"`
	PosY            float64  `json:"pos_y"`
	Ancho           float64  `json:"ancho"        validate:"omitempty,gt=0"`
	Alto            float64  `json:"alto"         validate:"omitempty,gt=0"`
	Rotacion        float64  `json:"rotacion"`
	ValidoDesde     *string  `json:"valido_desde" validate:"omitempty,datetime=2006-01-02"`
	ValidoHasta     *string  `json:"valido_hasta" validate:"omitempty,datetime=2006-01-02"`
	Caracteristicas []string `json:"caracteristicas" validate:"dive,min=1"`
}

type ActualizarMobiliarioRequest struct {
	Numero          *string  `json:"numero"       validate:"omitempty,min=1,max=10"`
	ZonaID          *string  `json:"zona_id"      validate:"omitempty,uuid"`
	Tipo            *string  `json:"tipo"         validate:"omitempty,oneof=hamaca balinesa cama_vip mesa"`
	Capacidad       *int     `json:"capacidad"    validate:"omitempty,min=1,max=20"`
	PosX            *float64 `json:"pos_x"`
	PosY            *float64 `json:"pos_y"`
	Ancho           *float64 `json:"ancho"        validate:"omitempty,gt=0"`
	Alto            *float64 `json:"alto"         validate:"omitempty,gt=0"`
	Rotacion        *float64 `json:"rotacion"`
	ValidoDesde     *string  `json:"valido_desde" validate:"omitempty,datetime=2006-01-02"`
	ValidoHasta     *string  `json:"valido_hasta" validate:"omitempty,datetime=2006-01-02"`
	Caracteristicas []string `json:"caracteristicas" validate:"omitempty,dive,min=1"`
}

// MobiliarioFilter is bound from the query string of GET /v1/mobiliario.
type MobiliarioFilter struct {
	ZonaID string `form:"zona_id" validate:"omitempty,uuid"`
	Tipo   string `form:"tipo"`
	Activo string `form:"activo"` // "true" | "false" | "" (all)
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type MobiliarioResponse struct {
	ID              string   `json:"id"`
	Numero          string   `json:"numero"`
	ZonaID          string   `json:"zona_id"`
	Zona            string   `json:"zona,omitempty"`
	Tipo            string   `json:"tipo"`
	Capacidad       int      `json:"capacidad"`
	PosX            float64  `json:"pos_x"`
	PosY            float64  `json:"pos_y"`
	Ancho           float64  `json:"ancho"`
	Alto            float64  `json:"alto"`
	Rotacion        float64  `json:"rotacion"`
	ValidoDesde     *string  `json:"valido_desde"`
	ValidoHasta     *string  `json:"valido_hasta"`
	Activo          bool     `json:"activo"`
	Caracteristicas []string `json:"caracteristicas"`
}

type SiguienteNumeroResponse struct {
	Prefijo string `json:"prefijo"`
	Numero  string `json:"numero"`
}
