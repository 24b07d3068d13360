package model

import (
	"time"

	"github.com/google/uuid"
)

// Block type codes.
const (
	BloqueoMantenimiento = "mantenimiento"
	BloqueoVIP           = "vip"
	BloqueoEvento        = "evento"
)

// BloqueoMobiliario takes a furniture unit out of the bookable pool for a date
// range (maintenance, VIP hold, private event). Creation is refused while any
// non-releasing reservation occupies the unit inside the range.
type BloqueoMobiliario struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	MobiliarioID uuid.UUID `gorm:"type:uuid;index;not null"`
	FechaInicio  time.Time `gorm:"type:date;index;not null"`
	FechaFin     time.Time `gorm:"type:date;not null"`
	Tipo         string    `gorm:"type:varchar(20);not null"`
	Motivo       *string
	CreadoPor    string `gorm:"not null"`
	CreatedAt    time.Time

	Mobiliario *Mobiliario `gorm:"foreignKey:MobiliarioID"`
}

func (BloqueoMobiliario) TableName() string { return "bloqueos_mobiliario" }

// InfoTipoBloqueo is the static display metadata per block type.
type InfoTipoBloqueo struct {
	Nombre string
	Color  string
}

var tiposBloqueo = map[string]InfoTipoBloqueo{
	BloqueoMantenimiento: {Nombre: "Mantenimiento", Color: "#FF9800"},
	BloqueoVIP:           {Nombre: "Reserva VIP", Color: "#9C27B0"},
	BloqueoEvento:        {Nombre: "Evento privado", Color: "#F44336"},
}

// TipoBloqueoInfo resolves the display metadata for a block type code.
func TipoBloqueoInfo(tipo string) (InfoTipoBloqueo, bool) {
	info, ok := tiposBloqueo[tipo]
	return info, ok
}
