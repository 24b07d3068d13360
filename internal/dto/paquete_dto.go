package dto

import "github.com/shopspring/decimal"

// PaqueteResponse exposes the pricing-package lookup table (read-only data).
type PaqueteResponse struct {
	ID             string           `json:"id"`
	Nombre         string           `json:"nombre"`
	Descripcion    *string          `json:"descripcion"`
	TipoMobiliario string           `json:"tipo_mobiliario"`
	Precio         decimal.Decimal  `json:"precio"`
	ConsumoMinimo  *decimal.Decimal `json:"consumo_minimo"`
	Activo         bool             `json:"activo"`
}
