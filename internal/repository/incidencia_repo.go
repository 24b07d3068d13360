package repository

import (
	"context"
	"time"

	"purobeach/internal/model"

	"gorm.io/gorm"
)

type IncidenciaRepository interface {
	Create(ctx context.Context, i *model.Incidencia) error
	Update(ctx context.Context, i *model.Incidencia) error
	// ListPendingRetries returns pending incidents whose next_retry_at has
	// passed (or was never set), oldest first, capped at limit.
	ListPendingRetries(ctx context.Context, now time.Time, limit int) ([]model.Incidencia, error)
}

type incidenciaRepo struct{ db *gorm.DB }

func NewIncidenciaRepository(db *gorm.DB) IncidenciaRepository { return &incidenciaRepo{db: db} }

func (r *incidenciaRepo) Create(ctx context.Context, i *model.Incidencia) error {
	return r.db.WithContext(ctx).Create(i).Error
}

func (r *incidenciaRepo) Update(ctx context.Context, i *model.Incidencia) error {
	return r.db.WithContext(ctx).Save(i).Error
}

func (r *incidenciaRepo) ListPendingRetries(ctx context.Context, now time.Time, limit int) ([]model.Incidencia, error) {
	var is []model.Incidencia
	err := r.db.WithContext(ctx).
		Where("estado = ?", model.IncidenciaPendiente).
		Where("next_retry_at IS NULL OR next_retry_at <= ?", now).
		Order("created_at ASC").
		Limit(limit).
		Find(&is).Error
	return is, err
}
