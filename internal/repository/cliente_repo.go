package repository

import (
	"context"

	"purobeach/internal/dto"
	"purobeach/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ClienteRepository interface {
	Create(ctx context.Context, c *model.Cliente) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Cliente, error)
	FindByEmail(ctx context.Context, email string) (*model.Cliente, error)
	List(ctx context.Context, filter dto.ClienteFilter) ([]model.Cliente, int64, error)
	Update(ctx context.Context, c *model.Cliente) error
	ReplacePreferencias(ctx context.Context, c *model.Cliente, prefs []model.Preferencia) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

type clienteRepo struct{ db *gorm.DB }

func NewClienteRepository(db *gorm.DB) ClienteRepository { return &clienteRepo{db: db} }

func (r *clienteRepo) Create(ctx context.Context, c *model.Cliente) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *clienteRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Cliente, error) {
	var c model.Cliente
	err := r.db.WithContext(ctx).Preload("Preferencias").First(&c, id).Error
	return &c, err
}

func (r *clienteRepo) FindByEmail(ctx context.Context, email string) (*model.Cliente, error) {
	var c model.Cliente
	err := r.db.WithContext(ctx).Where("LOWER(email::text) = LOWER(?)", email).First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *clienteRepo) List(ctx context.Context, filter dto.ClienteFilter) ([]model.Cliente, int64, error) {
	var clientes []model.Cliente
	var total int64
	offset := (filter.Page - 1) * filter.Limit

	q := r.db.WithContext(ctx).Model(&model.Cliente{}).Where("activo = true")
	if filter.Buscar != "" {
		like := "%" + filter.Buscar + "%"
		q = q.Where("nombre ILIKE ? OR apellidos ILIKE ? OR email ILIKE ?", like, like, like)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Preload("Preferencias").
		Order("apellidos ASC, nombre ASC").
		Offset(offset).Limit(filter.Limit).
		Find(&clientes).Error
	return clientes, total, err
}

func (r *clienteRepo) Update(ctx context.Context, c *model.Cliente) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *clienteRepo) ReplacePreferencias(ctx context.Context, c *model.Cliente, prefs []model.Preferencia) error {
	return r.db.WithContext(ctx).Model(c).Association("Preferencias").Replace(prefs)
}

func (r *clienteRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Cliente{}).Where("id = ?", id).Update("activo", false).Error
}
