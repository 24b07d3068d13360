package model

import (
	"time"

	"github.com/google/uuid"
)

// Mobiliario is a physical furniture unit on the venue map (hamaca, balinesa…).
// Position fields are in map pixels; Rotacion in degrees.
// ValidoDesde/ValidoHasta bound temporary units (e.g. summer extras); nil = permanent.
type Mobiliario struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Numero      string     `gorm:"uniqueIndex;not null"` // e.g. "Y6", "B12"
	ZonaID      uuid.UUID  `gorm:"type:uuid;index;not null"`
	Tipo        string     `gorm:"type:varchar(30);not null"` // "hamaca" | "balinesa" | "cama_vip" | "mesa"
	Capacidad   int        `gorm:"not null;default:2"`
	PosX        float64    `gorm:"not null;default:0"`
	PosY        float64    `gorm:"not null;default:0"`
	Ancho       float64    `gorm:"not null;default:40"`
	Alto        float64    `gorm:"not null;default:40"`
	Rotacion    float64    `gorm:"not null;default:0"`
	ValidoDesde *time.Time `gorm:"type:date"`
	ValidoHasta *time.Time `gorm:"type:date"`
	Activo      bool       `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Zona            *Zona            `gorm:"foreignKey:ZonaID"`
	Caracteristicas []Caracteristica `gorm:"many2many:mobiliario_caracteristicas"`
}

func (Mobiliario) TableName() string { return "mobiliario" }

// Furniture types.
const (
	TipoHamaca   = "hamaca"
	TipoBalinesa = "balinesa"
	TipoCamaVIP  = "cama_vip"
	TipoMesa     = "mesa"
)

// VigenteEn reports whether the unit is valid for the given date,
// honoring the optional temporary-validity range.
func (m *Mobiliario) VigenteEn(fecha time.Time) bool {
	if !m.Activo {
		return false
	}
	if m.ValidoDesde != nil && fecha.Before(*m.ValidoDesde) {
		return false
	}
	if m.ValidoHasta != nil && fecha.After(*m.ValidoHasta) {
		return false
	}
	return true
}

// Caracteristica is a physical feature tag of a furniture unit
// ("sombra", "vista_mar", "cerca_bar"…).
type Caracteristica struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Codigo    string    `gorm:"uniqueIndex;not null"`
	Nombre    string    `gorm:"not null"`
	CreatedAt time.Time
}

func (Caracteristica) TableName() string { return "caracteristicas" }

// Preferencia is a customer-facing preference code. CaracteristicaID maps it to
// zero-or-one furniture feature; preferences without mapping never match.
type Preferencia struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Codigo           string     `gorm:"uniqueIndex;not null"`
	Nombre           string     `gorm:"not null"`
	CaracteristicaID *uuid.UUID `gorm:"type:uuid"`
	CreatedAt        time.Time

	Caracteristica *Caracteristica `gorm:"foreignKey:CaracteristicaID"`
}

func (Preferencia) TableName() string { return "preferencias" }
