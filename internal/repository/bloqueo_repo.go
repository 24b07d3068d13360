package repository

import (
	"context"

	"purobeach/internal/dto"
	"purobeach/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BloqueoRepository interface {
	Create(ctx context.Context, b *model.BloqueoMobiliario) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.BloqueoMobiliario, error)
	List(ctx context.Context, filter dto.BloqueoFilter) ([]model.BloqueoMobiliario, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type bloqueoRepo struct{ db *gorm.DB }

func NewBloqueoRepository(db *gorm.DB) BloqueoRepository { return &bloqueoRepo{db: db} }

func (r *bloqueoRepo) Create(ctx context.Context, b *model.BloqueoMobiliario) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *bloqueoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.BloqueoMobiliario, error) {
	var b model.BloqueoMobiliario
	err := r.db.WithContext(ctx).Preload("Mobiliario").First(&b, id).Error
	return &b, err
}

func (r *bloqueoRepo) List(ctx context.Context, filter dto.BloqueoFilter) ([]model.BloqueoMobiliario, error) {
	q := r.db.WithContext(ctx).Preload("Mobiliario")
	if filter.MobiliarioID != "" {
		q = q.Where("mobiliario_id = ?", filter.MobiliarioID)
	}
	if filter.FechaDesde != "" {
		q = q.Where("fecha_fin >= ?", filter.FechaDesde)
	}
	if filter.FechaHasta != "" {
		q = q.Where("fecha_inicio <= ?", filter.FechaHasta)
	}
	var bloqueos []model.BloqueoMobiliario
	err := q.Order("fecha_inicio ASC").Find(&bloqueos).Error
	return bloqueos, err
}

func (r *bloqueoRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.BloqueoMobiliario{}, id).Error
}
