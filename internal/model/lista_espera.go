package model

import (
	"time"

	"github.com/google/uuid"
)

// Waitlist entry states.
const (
	EsperaPendiente  = "en_espera"
	EsperaConvertida = "convertida"
	EsperaExpirada   = "expirada"
	EsperaCancelada  = "cancelada"
)

// ListaEspera is a customer waiting for availability on a full date.
// Entries expire once their date passes; expiry runs synchronously on read,
// there is no background sweeper.
type ListaEspera struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ClienteID   uuid.UUID `gorm:"type:uuid;index;not null"`
	Fecha       time.Time `gorm:"type:date;index;not null"`
	NumPersonas int       `gorm:"not null;default:1"`
	Estado      string    `gorm:"type:varchar(20);not null;default:'en_espera'"`
	// ReservaID links the reservation created when the entry converts.
	ReservaID *uuid.UUID `gorm:"type:uuid"`
	Notas     *string
	CreatedAt time.Time
	UpdatedAt time.Time

	Cliente      *Cliente      `gorm:"foreignKey:ClienteID"`
	Reserva      *Reserva      `gorm:"foreignKey:ReservaID"`
	Preferencias []Preferencia `gorm:"many2many:lista_espera_preferencias"`
}

func (ListaEspera) TableName() string { return "lista_espera" }
