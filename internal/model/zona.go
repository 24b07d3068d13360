package model

import (
	"time"

	"github.com/google/uuid"
)

// Zona is an area of the venue map (terraza, piscina, playa…).
// Zones form a tree via PadreID; Orden controls display order in the UI.
type Zona struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre    string     `gorm:"uniqueIndex;not null"`
	PadreID   *uuid.UUID `gorm:"type:uuid;index"`
	Orden     int        `gorm:"not null;default:0"`
	Color     string     `gorm:"type:varchar(10);not null;default:'#2196F3'"`
	Activo    bool       `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Padre *Zona  `gorm:"foreignKey:PadreID"`
	Hijas []Zona `gorm:"foreignKey:PadreID"`
}

func (Zona) TableName() string { return "zonas" }
