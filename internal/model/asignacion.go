package model

import (
	"time"

	"github.com/google/uuid"
)

// Asignacion binds one furniture unit to one reservation for one date — the
// atomic unit of occupancy.
//
// Activa mirrors "the owning reservation is in a non-releasing state" and is
// maintained transactionally by the state machine (release on entering a
// releasing state, reactivation with conflict re-check on reopen). A partial
// unique index on (mobiliario_id, fecha) WHERE activa — see infra/database.go —
// makes double-booking impossible even under concurrent check-then-insert.
type Asignacion struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ReservaID    uuid.UUID `gorm:"type:uuid;index;not null"`
	MobiliarioID uuid.UUID `gorm:"type:uuid;index;not null"`
	Fecha        time.Time `gorm:"type:date;index;not null"`
	Activa       bool      `gorm:"not null;default:true"`
	AsignadoPor  string    `gorm:"not null;default:''"`
	CreatedAt    time.Time

	Reserva    *Reserva    `gorm:"foreignKey:ReservaID"`
	Mobiliario *Mobiliario `gorm:"foreignKey:MobiliarioID"`
}

func (Asignacion) TableName() string { return "asignaciones" }
