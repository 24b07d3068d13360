package repository

import (
	"context"
	"time"

	"purobeach/internal/dto"
	"purobeach/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReservaRepository interface {
	Create(ctx context.Context, tx *gorm.DB, res *model.Reserva) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Reserva, error)
	// FindGrupo resolves the whole multi-day group for any member id: the root
	// parent first, children ordered by fecha_inicio.
	FindGrupo(ctx context.Context, id uuid.UUID) ([]model.Reserva, error)
	List(ctx context.Context, filter dto.ReservaFilter) ([]model.Reserva, int64, error)
	Update(ctx context.Context, res *model.Reserva) error
	UpdateTx(tx *gorm.DB, res *model.Reserva) error
	UpdateEstadoTx(tx *gorm.DB, id uuid.UUID, estadoID uuid.UUID) error
	SetBloqueoMobiliario(ctx context.Context, id uuid.UUID, bloqueado bool) error

	// Historial — the accumulated state set is the Activo subset of these rows.
	CreateHistorialTx(tx *gorm.DB, h *model.HistorialEstado) error
	HistorialActivo(ctx context.Context, reservaID uuid.UUID) ([]model.HistorialEstado, error)
	HistorialActivoTx(tx *gorm.DB, reservaID uuid.UUID) ([]model.HistorialEstado, error)
	DesactivarHistorialTx(tx *gorm.DB, reservaID uuid.UUID, estadoID *uuid.UUID) error

	// SolapadasCliente finds non-releasing reservations of the customer touching
	// any of the given dates (duplicate-booking guard).
	SolapadasCliente(ctx context.Context, clienteID uuid.UUID, fechas []time.Time, liberadorIDs []uuid.UUID) ([]model.Reserva, error)

	DB() *gorm.DB
}

type reservaRepo struct{ db *gorm.DB }

func NewReservaRepository(db *gorm.DB) ReservaRepository { return &reservaRepo{db: db} }

func (r *reservaRepo) DB() *gorm.DB { return r.db }

func (r *reservaRepo) Create(ctx context.Context, tx *gorm.DB, res *model.Reserva) error {
	return tx.WithContext(ctx).Create(res).Error
}

func (r *reservaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Reserva, error) {
	var res model.Reserva
	err := r.db.WithContext(ctx).
		Preload("Cliente").Preload("Cliente.Preferencias").
		Preload("Estado").
		Preload("Hijas").Preload("Hijas.Estado").
		Preload("Asignaciones").Preload("Asignaciones.Mobiliario").
		Preload("Historial", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Preload("Historial.Estado").
		First(&res, id).Error
	return &res, err
}

func (r *reservaRepo) FindGrupo(ctx context.Context, id uuid.UUID) ([]model.Reserva, error) {
	res, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	raizID := res.ID
	if res.PadreID != nil {
		raizID = *res.PadreID
	}

	var grupo []model.Reserva
	err = r.db.WithContext(ctx).
		Preload("Cliente").Preload("Estado").
		Preload("Asignaciones").Preload("Asignaciones.Mobiliario").
		Where("id = ? OR padre_id = ?", raizID, raizID).
		Order("fecha_inicio ASC").
		Find(&grupo).Error
	return grupo, err
}

func (r *reservaRepo) List(ctx context.Context, filter dto.ReservaFilter) ([]model.Reserva, int64, error) {
	var reservas []model.Reserva
	var total int64
	offset := (filter.Page - 1) * filter.Limit

	q := r.db.WithContext(ctx).Model(&model.Reserva{})

	if filter.Fecha != "" {
		q = q.Where("fecha_inicio <= ? AND fecha_fin >= ?", filter.Fecha, filter.Fecha)
	} else {
		q = q.Where("fecha_inicio <= CURRENT_DATE AND fecha_fin >= CURRENT_DATE")
	}
	if filter.Estado != "" && filter.Estado != "all" {
		q = q.Joins("JOIN estados_reserva ON estados_reserva.id = reservas.estado_id").
			Where("estados_reserva.codigo = ?", filter.Estado)
	}
	if filter.ClienteID != "" {
		q = q.Where("reservas.cliente_id = ?", filter.ClienteID)
	}
	if filter.ZonaID != "" {
		q = q.Where(`EXISTS (
			SELECT 1 FROM asignaciones a
			JOIN mobiliario m ON m.id = a.mobiliario_id
			WHERE a.reserva_id = reservas.id AND m.zona_id = ?)`, filter.ZonaID)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Preload("Cliente").Preload("Estado").
		Preload("Asignaciones").Preload("Asignaciones.Mobiliario").
		Order("reservas.created_at DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&reservas).Error
	return reservas, total, err
}

func (r *reservaRepo) Update(ctx context.Context, res *model.Reserva) error {
	return r.db.WithContext(ctx).Save(res).Error
}

func (r *reservaRepo) UpdateTx(tx *gorm.DB, res *model.Reserva) error {
	return tx.Save(res).Error
}

func (r *reservaRepo) UpdateEstadoTx(tx *gorm.DB, id uuid.UUID, estadoID uuid.UUID) error {
	return tx.Model(&model.Reserva{}).Where("id = ?", id).Update("estado_id", estadoID).Error
}

func (r *reservaRepo) SetBloqueoMobiliario(ctx context.Context, id uuid.UUID, bloqueado bool) error {
	return r.db.WithContext(ctx).Model(&model.Reserva{}).
		Where("id = ?", id).Update("mobiliario_bloqueado", bloqueado).Error
}

func (r *reservaRepo) CreateHistorialTx(tx *gorm.DB, h *model.HistorialEstado) error {
	return tx.Create(h).Error
}

func (r *reservaRepo) HistorialActivo(ctx context.Context, reservaID uuid.UUID) ([]model.HistorialEstado, error) {
	var hs []model.HistorialEstado
	err := r.db.WithContext(ctx).Preload("Estado").
		Where("reserva_id = ? AND activo = true", reservaID).
		Order("created_at ASC").Find(&hs).Error
	return hs, err
}

func (r *reservaRepo) HistorialActivoTx(tx *gorm.DB, reservaID uuid.UUID) ([]model.HistorialEstado, error) {
	var hs []model.HistorialEstado
	err := tx.Preload("Estado").
		Where("reserva_id = ? AND activo = true", reservaID).
		Order("created_at ASC").Find(&hs).Error
	return hs, err
}

// DesactivarHistorialTx deactivates the active rows of one state, or every
// active row when estadoID is nil (full state replacement).
func (r *reservaRepo) DesactivarHistorialTx(tx *gorm.DB, reservaID uuid.UUID, estadoID *uuid.UUID) error {
	q := tx.Model(&model.HistorialEstado{}).Where("reserva_id = ? AND activo = true", reservaID)
	if estadoID != nil {
		q = q.Where("estado_id = ?", *estadoID)
	}
	return q.Update("activo", false).Error
}

// SolapadasCliente returns the customer's live reservations covering any of
// the requested dates. The match is per date, not over the [min, max] span:
// a request for two distant days must not collide with a reservation held on
// a gap day in between.
func (r *reservaRepo) SolapadasCliente(ctx context.Context, clienteID uuid.UUID, fechas []time.Time, liberadorIDs []uuid.UUID) ([]model.Reserva, error) {
	if len(fechas) == 0 {
		return nil, nil
	}
	porFecha := r.db.Where("fecha_inicio <= ? AND fecha_fin >= ?", fechas[0], fechas[0])
	for _, f := range fechas[1:] {
		porFecha = porFecha.Or("fecha_inicio <= ? AND fecha_fin >= ?", f, f)
	}
	q := r.db.WithContext(ctx).Preload("Estado").Preload("Cliente").
		Where("cliente_id = ?", clienteID).
		Where(porFecha)
	if len(liberadorIDs) > 0 {
		q = q.Where("estado_id NOT IN ?", liberadorIDs)
	}
	var reservas []model.Reserva
	err := q.Find(&reservas).Error
	return reservas, err
}
