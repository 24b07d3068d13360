package repository

import (
	"context"
	"time"

	"purobeach/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AsignacionRepository owns the occupancy join table. The canonical
// "is this furniture taken" queries join through reservas to the state table,
// excluding reservations whose state releases availability (liberadorIDs is
// resolved by the caller via EstadoRepository.IDsLiberadores).
type AsignacionRepository interface {
	CreateTx(tx *gorm.DB, a *model.Asignacion) error
	// DeleteTx removes the given pairs for one reservation/date; returns rows deleted.
	DeleteTx(tx *gorm.DB, reservaID uuid.UUID, mobiliarioIDs []uuid.UUID, fecha time.Time) (int64, error)
	FindByReserva(ctx context.Context, reservaID uuid.UUID) ([]model.Asignacion, error)
	FindByReservaFecha(ctx context.Context, reservaID uuid.UUID, fecha time.Time) ([]model.Asignacion, error)

	// OcupadasEnRango returns the assignment rows for one furniture unit inside
	// [desde, hasta] whose owning reservation is NOT in a releasing state.
	// Reserva and Reserva.Cliente come preloaded for conflict messages.
	OcupadasEnRango(ctx context.Context, mobiliarioID uuid.UUID, desde, hasta time.Time, liberadorIDs []uuid.UUID) ([]model.Asignacion, error)

	// OcupadasPorPares is the bulk variant over many units and dates.
	OcupadasPorPares(ctx context.Context, mobiliarioIDs []uuid.UUID, fechas []time.Time, liberadorIDs []uuid.UUID) ([]model.Asignacion, error)

	// ConflictosTx finds non-releasing rows held by OTHER reservations for the
	// given units/date, inside the caller's transaction (after row locks).
	ConflictosTx(tx *gorm.DB, mobiliarioIDs []uuid.UUID, fecha time.Time, excluirReserva uuid.UUID, liberadorIDs []uuid.UUID) ([]model.Asignacion, error)

	// OcupacionBruta reports, state-agnostic, which of the units have ANY
	// assignment row on fecha — the conservative check used in move mode.
	OcupacionBruta(ctx context.Context, mobiliarioIDs []uuid.UUID, fecha time.Time) (map[uuid.UUID]bool, error)

	// DesactivarPorReservaTx / ReactivarPorReservaTx flip the Activa projection
	// when the owning reservation enters/leaves a releasing state.
	DesactivarPorReservaTx(tx *gorm.DB, reservaID uuid.UUID) error
	ReactivarPorReservaTx(tx *gorm.DB, reservaID uuid.UUID) error

	// CountFuturas counts assignment rows for a unit on dates >= fecha,
	// regardless of state (guards furniture soft-delete).
	CountFuturas(ctx context.Context, mobiliarioID uuid.UUID, fecha time.Time) (int64, error)

	DB() *gorm.DB
}

type asignacionRepo struct{ db *gorm.DB }

func NewAsignacionRepository(db *gorm.DB) AsignacionRepository { return &asignacionRepo{db: db} }

func (r *asignacionRepo) DB() *gorm.DB { return r.db }

func (r *asignacionRepo) CreateTx(tx *gorm.DB, a *model.Asignacion) error {
	return tx.Create(a).Error
}

func (r *asignacionRepo) DeleteTx(tx *gorm.DB, reservaID uuid.UUID, mobiliarioIDs []uuid.UUID, fecha time.Time) (int64, error) {
	res := tx.Where("reserva_id = ? AND mobiliario_id IN ? AND fecha = ?", reservaID, mobiliarioIDs, fecha).
		Delete(&model.Asignacion{})
	return res.RowsAffected, res.Error
}

func (r *asignacionRepo) FindByReserva(ctx context.Context, reservaID uuid.UUID) ([]model.Asignacion, error) {
	var as []model.Asignacion
	err := r.db.WithContext(ctx).Preload("Mobiliario").
		Where("reserva_id = ?", reservaID).
		Order("fecha ASC").Find(&as).Error
	return as, err
}

func (r *asignacionRepo) FindByReservaFecha(ctx context.Context, reservaID uuid.UUID, fecha time.Time) ([]model.Asignacion, error) {
	var as []model.Asignacion
	err := r.db.WithContext(ctx).Preload("Mobiliario").
		Where("reserva_id = ? AND fecha = ?", reservaID, fecha).
		Find(&as).Error
	return as, err
}

// sinLiberadores keeps "NOT IN" well-formed when the state table has no
// releasing states configured (nothing is excluded).
func sinLiberadores(liberadorIDs []uuid.UUID) bool { return len(liberadorIDs) == 0 }

func (r *asignacionRepo) OcupadasEnRango(ctx context.Context, mobiliarioID uuid.UUID, desde, hasta time.Time, liberadorIDs []uuid.UUID) ([]model.Asignacion, error) {
	q := r.db.WithContext(ctx).
		Preload("Reserva").Preload("Reserva.Cliente").Preload("Reserva.Estado").Preload("Mobiliario").
		Joins("JOIN reservas ON reservas.id = asignaciones.reserva_id").
		Where("asignaciones.mobiliario_id = ? AND asignaciones.fecha BETWEEN ? AND ?", mobiliarioID, desde, hasta)
	if !sinLiberadores(liberadorIDs) {
		q = q.Where("reservas.estado_id NOT IN ?", liberadorIDs)
	}
	var as []model.Asignacion
	err := q.Find(&as).Error
	return as, err
}

func (r *asignacionRepo) OcupadasPorPares(ctx context.Context, mobiliarioIDs []uuid.UUID, fechas []time.Time, liberadorIDs []uuid.UUID) ([]model.Asignacion, error) {
	if len(mobiliarioIDs) == 0 || len(fechas) == 0 {
		return nil, nil
	}
	q := r.db.WithContext(ctx).
		Preload("Reserva").Preload("Reserva.Cliente").Preload("Reserva.Estado").Preload("Mobiliario").
		Joins("JOIN reservas ON reservas.id = asignaciones.reserva_id").
		Where("asignaciones.mobiliario_id IN ? AND asignaciones.fecha IN ?", mobiliarioIDs, fechas)
	if !sinLiberadores(liberadorIDs) {
		q = q.Where("reservas.estado_id NOT IN ?", liberadorIDs)
	}
	var as []model.Asignacion
	err := q.Find(&as).Error
	return as, err
}

func (r *asignacionRepo) ConflictosTx(tx *gorm.DB, mobiliarioIDs []uuid.UUID, fecha time.Time, excluirReserva uuid.UUID, liberadorIDs []uuid.UUID) ([]model.Asignacion, error) {
	if len(mobiliarioIDs) == 0 {
		return nil, nil
	}
	q := tx.
		Preload("Reserva").Preload("Reserva.Cliente").Preload("Mobiliario").
		Joins("JOIN reservas ON reservas.id = asignaciones.reserva_id").
		Where("asignaciones.mobiliario_id IN ? AND asignaciones.fecha = ?", mobiliarioIDs, fecha).
		Where("asignaciones.reserva_id <> ?", excluirReserva)
	if !sinLiberadores(liberadorIDs) {
		q = q.Where("reservas.estado_id NOT IN ?", liberadorIDs)
	}
	var as []model.Asignacion
	err := q.Find(&as).Error
	return as, err
}

func (r *asignacionRepo) OcupacionBruta(ctx context.Context, mobiliarioIDs []uuid.UUID, fecha time.Time) (map[uuid.UUID]bool, error) {
	ocupados := make(map[uuid.UUID]bool, len(mobiliarioIDs))
	if len(mobiliarioIDs) == 0 {
		return ocupados, nil
	}
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).Model(&model.Asignacion{}).
		Where("mobiliario_id IN ? AND fecha = ?", mobiliarioIDs, fecha).
		Distinct().Pluck("mobiliario_id", &ids).Error
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		ocupados[id] = true
	}
	return ocupados, nil
}

func (r *asignacionRepo) DesactivarPorReservaTx(tx *gorm.DB, reservaID uuid.UUID) error {
	return tx.Model(&model.Asignacion{}).
		Where("reserva_id = ?", reservaID).
		Update("activa", false).Error
}

func (r *asignacionRepo) ReactivarPorReservaTx(tx *gorm.DB, reservaID uuid.UUID) error {
	return tx.Model(&model.Asignacion{}).
		Where("reserva_id = ?", reservaID).
		Update("activa", true).Error
}

func (r *asignacionRepo) CountFuturas(ctx context.Context, mobiliarioID uuid.UUID, fecha time.Time) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Asignacion{}).
		Where("mobiliario_id = ? AND fecha >= ?", mobiliarioID, fecha).
		Count(&n).Error
	return n, err
}
