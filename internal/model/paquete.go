package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Paquete is a pricing package (day pass, balinese-bed package…). Consumed as
// pure lookup data; pricing policy itself lives outside this service.
type Paquete struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre         string    `gorm:"uniqueIndex;not null"`
	Descripcion    *string
	TipoMobiliario string          `gorm:"type:varchar(30);not null"`
	Precio         decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	// ConsumoMinimo applies to reservations of tipo "consumo_minimo"; nil otherwise.
	ConsumoMinimo *decimal.Decimal `gorm:"type:decimal(10,2)"`
	Activo        bool             `gorm:"not null;default:true"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (Paquete) TableName() string { return "paquetes" }
