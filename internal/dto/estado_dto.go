package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearEstadoRequest struct {
	Codigo               string `json:"codigo"    validate:"required,min=2,max=30,lowercase"`
	Nombre               string `json:"nombre"    validate:"required,min=2,max=50"`
	Color                string `json:"color"     validate:"omitempty,hexcolor"`
	LiberaDisponibilidad bool   `json:"libera_disponibilidad"`
	CreaIncidencia       bool   `json:"crea_incidencia"`
	Prioridad            int    `json:"prioridad" validate:"min=0,max=100"`
}

type ActualizarEstadoRequest struct {
	Nombre               *string `json:"nombre"    validate:"omitempty,min=2,max=50"`
	Color                *string `json:"color"     validate:"omitempty,hexcolor"`
	LiberaDisponibilidad *bool   `json:"libera_disponibilidad"`
	CreaIncidencia       *bool   `json:"crea_incidencia"`
	Prioridad            *int    `json:"prioridad" validate:"omitempty,min=0,max=100"`
	Activo               *bool   `json:"activo"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type EstadoResponse struct {
	ID                   string `json:"id"`
	Codigo               string `json:"codigo"`
	Nombre               string `json:"nombre"`
	Color                string `json:"color"`
	LiberaDisponibilidad bool   `json:"libera_disponibilidad"`
	CreaIncidencia       bool   `json:"crea_incidencia"`
	EsDefault            bool   `json:"es_default"`
	EsSistema            bool   `json:"es_sistema"`
	Prioridad            int    `json:"prioridad"`
	Activo               bool   `json:"activo"`
	// TransicionesValidas is empty for terminal states and nil for custom
	// (permissive) states.
	TransicionesValidas []string `json:"transiciones_validas"`
}
