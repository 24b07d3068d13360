package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearEsperaRequest struct {
	ClienteID    string   `json:"cliente_id"   validate:"required,uuid"`
	Fecha        string   `json:"fecha"        validate:"required,datetime=2006-01-02"`
	NumPersonas  int      `json:"num_personas" validate:"required,min=1,max=50"`
	Preferencias []string `json:"preferencias" validate:"dive,min=1"`
	Notas        *string  `json:"notas"`
}

// ConvertirEsperaRequest turns a waiting entry into a reservation.
type ConvertirEsperaRequest struct {
	MobiliarioIDs []string `json:"mobiliario_ids" validate:"required,min=1,dive,uuid"`
}

// EsperaFilter is bound from the query string of GET /v1/lista-espera.
type EsperaFilter struct {
	Fecha  string `form:"fecha"  validate:"omitempty,datetime=2006-01-02"`
	Estado string `form:"estado" validate:"omitempty,oneof=en_espera convertida expirada cancelada all"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type EsperaResponse struct {
	ID           string   `json:"id"`
	ClienteID    string   `json:"cliente_id"`
	Cliente      string   `json:"cliente"`
	Fecha        string   `json:"fecha"`
	NumPersonas  int      `json:"num_personas"`
	Estado       string   `json:"estado"`
	ReservaID    *string  `json:"reserva_id"`
	Preferencias []string `json:"preferencias"`
	Notas        *string  `json:"notas"`
	CreatedAt    string   `json:"created_at"`
}
