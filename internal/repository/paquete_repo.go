package repository

import (
	"context"

	"purobeach/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PaqueteRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.Paquete, error)
	List(ctx context.Context) ([]model.Paquete, error)
}

type paqueteRepo struct{ db *gorm.DB }

func NewPaqueteRepository(db *gorm.DB) PaqueteRepository { return &paqueteRepo{db: db} }

func (r *paqueteRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Paquete, error) {
	var p model.Paquete
	err := r.db.WithContext(ctx).First(&p, id).Error
	return &p, err
}

func (r *paqueteRepo) List(ctx context.Context) ([]model.Paquete, error) {
	var paquetes []model.Paquete
	err := r.db.WithContext(ctx).Where("activo = true").Order("nombre ASC").Find(&paquetes).Error
	return paquetes, err
}
