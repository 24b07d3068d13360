package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearClienteRequest struct {
	Nombre       string   `json:"nombre"     validate:"required,min=2,max=100"`
	Apellidos    string   `json:"apellidos"  validate:"omitempty,max=150"`
	Email        *string  `json:"email"      validate:"omitempty,email"`
	Telefono     *string  `json:"telefono"   validate:"omitempty,max=30"`
	EsHuesped    bool     `json:"es_huesped"`
	Habitacion   *string  `json:"habitacion" validate:"omitempty,max=10"`
	Notas        *string  `json:"notas"`
	Preferencias []string `json:"preferencias" validate:"dive,min=1"`
}

type ActualizarClienteRequest struct {
	Nombre       *string  `json:"nombre"     validate:"omitempty,min=2,max=100"`
	Apellidos    *string  `json:"apellidos"  validate:"omitempty,max=150"`
	Email        *string  `json:"email"      validate:"omitempty,email"`
	Telefono     *string  `json:"telefono"   validate:"omitempty,max=30"`
	EsHuesped    *bool    `json:"es_huesped"`
	Habitacion   *string  `json:"habitacion" validate:"omitempty,max=10"`
	Notas        *string  `json:"notas"`
	Preferencias []string `json:"preferencias" validate:"omitempty,dive,min=1"`
}

// ClienteFilter is bound from the query string of GET /v1/clientes.
type ClienteFilter struct {
	Buscar string `form:"buscar"` // substring on nombre/apellidos/email
	Page   int    `form:"page,default=1"   validate:"min=1"`
	Limit  int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ClienteResponse struct {
	ID           string   `json:"id"`
	Nombre       string   `json:"nombre"`
	Apellidos    string   `json:"apellidos"`
	Email        *string  `json:"email"`
	Telefono     *string  `json:"telefono"`
	EsHuesped    bool     `json:"es_huesped"`
	Habitacion   *string  `json:"habitacion"`
	Notas        *string  `json:"notas"`
	Activo       bool     `json:"activo"`
	Preferencias []string `json:"preferencias"`
}

type ClienteListResponse struct {
	Data  []ClienteResponse `json:"data"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}
