// Package apierror provides standardized error response structures for the API.
// All errors returned to clients go through this package to ensure consistency
// and to prevent leaking internal details (stack traces, DB errors, etc.).
package apierror

// APIError is the canonical error envelope for all 4xx/5xx HTTP responses.
type APIError struct {
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// ValidationError wraps multiple field errors.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "Error de validacion", Fields: fields}
}

// Conflicto identifies one occupied (mobiliario, fecha) pair and who holds it,
// so the UI can explain exactly why a request was refused.
type Conflicto struct {
	MobiliarioID string `json:"mobiliario_id"`
	Numero       string `json:"numero,omitempty"`
	Fecha        string `json:"fecha"`
	ReservaID    string `json:"reserva_id,omitempty"`
	Cliente      string `json:"cliente,omitempty"`
}

// ConflictError carries structured double-booking / overlap detail.
type ConflictError struct {
	Detail     string      `json:"detail"`
	Conflictos []Conflicto `json:"conflictos,omitempty"`
}

func NewConflict(msg string, conflictos []Conflicto) *ConflictError {
	return &ConflictError{Detail: msg, Conflictos: conflictos}
}

// TransitionError is returned when a reservation state change is rejected by
// the transition matrix. TransicionesValidas lists the allowed target codes.
type TransitionError struct {
	Detail              string   `json:"detail"`
	EstadoActual        string   `json:"estado_actual"`
	EstadoSolicitado    string   `json:"estado_solicitado"`
	TransicionesValidas []string `json:"transiciones_validas"`
}

func NewTransition(msg, actual, solicitado string, validas []string) *TransitionError {
	if validas == nil {
		validas = []string{}
	}
	return &TransitionError{
		Detail:              msg,
		EstadoActual:        actual,
		EstadoSolicitado:    solicitado,
		TransicionesValidas: validas,
	}
}
