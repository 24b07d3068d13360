package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

// SugerenciaFilter is bound from the query string of GET /v1/sugerencias.
type SugerenciaFilter struct {
	Fecha        string   `form:"fecha"         validate:"required,datetime=2006-01-02"`
	NumPersonas  int      `form:"num_personas,default=2" validate:"min=1,max=50"`
	NumUnidades  int      `form:"num_unidades,default=1" validate:"min=1,max=10"`
	Preferencias []string `form:"preferencias"`
	ZonaID       string   `form:"zona_id"       validate:"omitempty,uuid"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

// SugerenciaResponse is one scored candidate, sorted descending by Puntuacion.
type SugerenciaResponse struct {
	Mobiliario MobiliarioResponse `json:"mobiliario"`
	Disponible bool               `json:"disponible"`
	Puntuacion float64            `json:"puntuacion"`
	// Component scores, each 0..1 before weighting.
	Contiguidad              float64  `json:"contiguidad"`
	Coincidencia             float64  `json:"coincidencia"`
	Capacidad                float64  `json:"capacidad"`
	PreferenciasCoincidentes []string `json:"preferencias_coincidentes"`
}
