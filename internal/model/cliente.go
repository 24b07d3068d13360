package model

import (
	"time"

	"github.com/google/uuid"
)

// Cliente stores venue customers, including hotel guests (Habitacion set).
type Cliente struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre     string    `gorm:"index;not null"`
	Apellidos  string    `gorm:"not null;default:''"`
	Email      *string   `gorm:"uniqueIndex"`
	Telefono   *string
	EsHuesped  bool    `gorm:"not null;default:false"`
	Habitacion *string `gorm:"type:varchar(10)"`
	Notas      *string
	Activo     bool `gorm:"not null;default:true"`
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Preferencias []Preferencia `gorm:"many2many:cliente_preferencias"`
}

func (Cliente) TableName() string { return "clientes" }

// NombreCompleto returns "Nombre Apellidos" for conflict messages and lists.
func (c *Cliente) NombreCompleto() string {
	if c.Apellidos == "" {
		return c.Nombre
	}
	return c.Nombre + " " + c.Apellidos
}
