package repository

import (
	"context"

	"purobeach/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ZonaRepository interface {
	Create(ctx context.Context, z *model.Zona) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Zona, error)
	FindByNombre(ctx context.Context, nombre string) (*model.Zona, error)
	List(ctx context.Context) ([]model.Zona, error)
	Update(ctx context.Context, z *model.Zona) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountMobiliario(ctx context.Context, id uuid.UUID) (int64, error)
	CountHijas(ctx context.Context, id uuid.UUID) (int64, error)
}

type zonaRepo struct{ db *gorm.DB }

func NewZonaRepository(db *gorm.DB) ZonaRepository { return &zonaRepo{db: db} }

func (r *zonaRepo) Create(ctx context.Context, z *model.Zona) error {
	return r.db.WithContext(ctx).Create(z).Error
}

func (r *zonaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Zona, error) {
	var z model.Zona
	err := r.db.WithContext(ctx).First(&z, id).Error
	return &z, err
}

func (r *zonaRepo) FindByNombre(ctx context.Context, nombre string) (*model.Zona, error) {
	var z model.Zona
	err := r.db.WithContext(ctx).Where("nombre = ?", nombre).First(&z).Error
	if err != nil {
		return nil, err
	}
	return &z, nil
}

func (r *zonaRepo) List(ctx context.Context) ([]model.Zona, error) {
	var zonas []model.Zona
	err := r.db.WithContext(ctx).Order("orden ASC, nombre ASC").Find(&zonas).Error
	return zonas, err
}

func (r *zonaRepo) Update(ctx context.Context, z *model.Zona) error {
	return r.db.WithContext(ctx).Save(z).Error
}

func (r *zonaRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Zona{}, id).Error
}

func (r *zonaRepo) CountMobiliario(ctx context.Context, id uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Mobiliario{}).Where("zona_id = ?", id).Count(&n).Error
	return n, err
}

func (r *zonaRepo) CountHijas(ctx context.Context, id uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Zona{}).Where("padre_id = ?", id).Count(&n).Error
	return n, err
}
