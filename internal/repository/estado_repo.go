package repository

import (
	"context"

	"purobeach/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EstadoRepository is the single source of truth for reservation states.
// Availability code derives the releasing-state set from IDsLiberadores per
// request; no name list is hardcoded anywhere else.
type EstadoRepository interface {
	Create(ctx context.Context, e *model.EstadoReserva) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.EstadoReserva, error)
	FindByCodigo(ctx context.Context, codigo string) (*model.EstadoReserva, error)
	FindDefault(ctx context.Context) (*model.EstadoReserva, error)
	List(ctx context.Context) ([]model.EstadoReserva, error)
	Update(ctx context.Context, e *model.EstadoReserva) error
	Delete(ctx context.Context, id uuid.UUID) error
	// IDsLiberadores returns ids of active states with libera_disponibilidad=true.
	IDsLiberadores(ctx context.Context) ([]uuid.UUID, error)
	CountReservas(ctx context.Context, id uuid.UUID) (int64, error)
}

type estadoRepo struct{ db *gorm.DB }

func NewEstadoRepository(db *gorm.DB) EstadoRepository { return &estadoRepo{db: db} }

func (r *estadoRepo) Create(ctx context.Context, e *model.EstadoReserva) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *estadoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.EstadoReserva, error) {
	var e model.EstadoReserva
	err := r.db.WithContext(ctx).First(&e, id).Error
	return &e, err
}

func (r *estadoRepo) FindByCodigo(ctx context.Context, codigo string) (*model.EstadoReserva, error) {
	var e model.EstadoReserva
	err := r.db.WithContext(ctx).Where("codigo = ? AND activo = true", codigo).First(&e).Error
	return &e, err
}

func (r *estadoRepo) FindDefault(ctx context.Context) (*model.EstadoReserva, error) {
	var e model.EstadoReserva
	err := r.db.WithContext(ctx).Where("es_default = true AND activo = true").First(&e).Error
	return &e, err
}

func (r *estadoRepo) List(ctx context.Context) ([]model.EstadoReserva, error) {
	var estados []model.EstadoReserva
	err := r.db.WithContext(ctx).Order("prioridad DESC, codigo ASC").Find(&estados).Error
	return estados, err
}

func (r *estadoRepo) Update(ctx context.Context, e *model.EstadoReserva) error {
	return r.db.WithContext(ctx).Save(e).Error
}

func (r *estadoRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.EstadoReserva{}, id).Error
}

func (r *estadoRepo) IDsLiberadores(ctx context.Context) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).Model(&model.EstadoReserva{}).
		Where("libera_disponibilidad = true AND activo = true").
		Pluck("id", &ids).Error
	return ids, err
}

func (r *estadoRepo) CountReservas(ctx context.Context, id uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Reserva{}).Where("estado_id = ?", id).Count(&n).Error
	return n, err
}
