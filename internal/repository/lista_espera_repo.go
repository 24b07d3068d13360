package repository

import (
	"context"
	"time"

	"purobeach/internal/dto"
	"purobeach/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ListaEsperaRepository interface {
	Create(ctx context.Context, e *model.ListaEspera) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.ListaEspera, error)
	List(ctx context.Context, filter dto.EsperaFilter) ([]model.ListaEspera, error)
	Update(ctx context.Context, e *model.ListaEspera) error
	UpdateTx(tx *gorm.DB, e *model.ListaEspera) error
	// ExpirarVencidas flips en_espera entries whose date already passed to
	// expirada; called synchronously before reads (no background sweeper).
	ExpirarVencidas(ctx context.Context, hoy time.Time) (int64, error)
	DB() *gorm.DB
}

type listaEsperaRepo struct{ db *gorm.DB }

func NewListaEsperaRepository(db *gorm.DB) ListaEsperaRepository { return &listaEsperaRepo{db: db} }

func (r *listaEsperaRepo) DB() *gorm.DB { return r.db }

func (r *listaEsperaRepo) Create(ctx context.Context, e *model.ListaEspera) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *listaEsperaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.ListaEspera, error) {
	var e model.ListaEspera
	err := r.db.WithContext(ctx).
		Preload("Cliente").Preload("Preferencias").
		First(&e, id).Error
	return &e, err
}

func (r *listaEsperaRepo) List(ctx context.Context, filter dto.EsperaFilter) ([]model.ListaEspera, error) {
	q := r.db.WithContext(ctx).Preload("Cliente").Preload("Preferencias")
	if filter.Fecha != "" {
		q = q.Where("fecha = ?", filter.Fecha)
	}
	if filter.Estado != "" && filter.Estado != "all" {
		q = q.Where("estado = ?", filter.Estado)
	} else if filter.Estado == "" {
		q = q.Where("estado = ?", model.EsperaPendiente)
	}
	var entradas []model.ListaEspera
	err := q.Order("created_at ASC").Find(&entradas).Error
	return entradas, err
}

func (r *listaEsperaRepo) Update(ctx context.Context, e *model.ListaEspera) error {
	return r.db.WithContext(ctx).Save(e).Error
}

func (r *listaEsperaRepo) UpdateTx(tx *gorm.DB, e *model.ListaEspera) error {
	return tx.Save(e).Error
}

func (r *listaEsperaRepo) ExpirarVencidas(ctx context.Context, hoy time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.ListaEspera{}).
		Where("estado = ? AND fecha < ?", model.EsperaPendiente, hoy).
		Update("estado", model.EsperaExpirada)
	return res.RowsAffected, res.Error
}
