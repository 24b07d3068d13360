package repository

import (
	"context"
	"time"

	"purobeach/internal/dto"
	"purobeach/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MobiliarioRepository interface {
	Create(ctx context.Context, m *model.Mobiliario) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Mobiliario, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Mobiliario, error)
	FindByNumero(ctx context.Context, numero string) (*model.Mobiliario, error)
	List(ctx context.Context, filter dto.MobiliarioFilter) ([]model.Mobiliario, error)
	// ListActivos returns active units valid on fecha, optionally zone-filtered,
	// with Caracteristicas preloaded. Ordered by numero.
	ListActivos(ctx context.Context, fecha time.Time, zonaID *uuid.UUID) ([]model.Mobiliario, error)
	Update(ctx context.Context, m *model.Mobiliario) error
	ReplaceCaracteristicas(ctx context.Context, m *model.Mobiliario, cs []model.Caracteristica) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	// NumerosPorPrefijo returns every Numero starting with the prefix,
	// active or not, so freed numbers are not reissued.
	NumerosPorPrefijo(ctx context.Context, prefijo string) ([]string, error)
	// LockByIDsTx takes row locks (SELECT ... FOR UPDATE) on the units inside tx,
	// serializing concurrent assignment attempts on the same furniture.
	LockByIDsTx(tx *gorm.DB, ids []uuid.UUID) ([]model.Mobiliario, error)
	DB() *gorm.DB
}

type mobiliarioRepo struct{ db *gorm.DB }

func NewMobiliarioRepository(db *gorm.DB) MobiliarioRepository { return &mobiliarioRepo{db: db} }

func (r *mobiliarioRepo) DB() *gorm.DB { return r.db }

func (r *mobiliarioRepo) Create(ctx context.Context, m *model.Mobiliario) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *mobiliarioRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Mobiliario, error) {
	var m model.Mobiliario
	err := r.db.WithContext(ctx).Preload("Caracteristicas").Preload("Zona").First(&m, id).Error
	return &m, err
}

func (r *mobiliarioRepo) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Mobiliario, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var ms []model.Mobiliario
	err := r.db.WithContext(ctx).Preload("Caracteristicas").Where("id IN ?", ids).Find(&ms).Error
	return ms, err
}

func (r *mobiliarioRepo) FindByNumero(ctx context.Context, numero string) (*model.Mobiliario, error) {
	var m model.Mobiliario
	err := r.db.WithContext(ctx).Where("numero = ?", numero).First(&m).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *mobiliarioRepo) List(ctx context.Context, filter dto.MobiliarioFilter) ([]model.Mobiliario, error) {
	q := r.db.WithContext(ctx).Preload("Caracteristicas").Preload("Zona")
	if filter.ZonaID != "" {
		q = q.Where("zona_id = ?", filter.ZonaID)
	}
	if filter.Tipo != "" {
		q = q.Where("tipo = ?", filter.Tipo)
	}
	switch filter.Activo {
	case "true":
		q = q.Where("activo = true")
	case "false":
		q = q.Where("activo = false")
	}
	var ms []model.Mobiliario
	err := q.Order("numero ASC").Find(&ms).Error
	return ms, err
}

func (r *mobiliarioRepo) ListActivos(ctx context.Context, fecha time.Time, zonaID *uuid.UUID) ([]model.Mobiliario, error) {
	q := r.db.WithContext(ctx).Preload("Caracteristicas").
		Where("activo = true").
		Where("(valido_desde IS NULL OR valido_desde <= ?) AND (valido_hasta IS NULL OR valido_hasta >= ?)", fecha, fecha)
	if zonaID != nil {
		q = q.Where("zona_id = ?", *zonaID)
	}
	var ms []model.Mobiliario
	err := q.Order("numero ASC").Find(&ms).Error
	return ms, err
}

func (r *mobiliarioRepo) Update(ctx context.Context, m *model.Mobiliario) error {
	return r.db.WithContext(ctx).Save(m).Error
}

func (r *mobiliarioRepo) ReplaceCaracteristicas(ctx context.Context, m *model.Mobiliario, cs []model.Caracteristica) error {
	return r.db.WithContext(ctx).Model(m).Association("Caracteristicas").Replace(cs)
}

func (r *mobiliarioRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Mobiliario{}).Where("id = ?", id).Update("activo", false).Error
}

func (r *mobiliarioRepo) NumerosPorPrefijo(ctx context.Context, prefijo string) ([]string, error) {
	var numeros []string
	err := r.db.WithContext(ctx).Model(&model.Mobiliario{}).
		Where("numero LIKE ?", prefijo+"%").
		Pluck("numero", &numeros).Error
	return numeros, err
}

func (r *mobiliarioRepo) LockByIDsTx(tx *gorm.DB, ids []uuid.UUID) ([]model.Mobiliario, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var ms []model.Mobiliario
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id IN ?", ids).
		Order("id ASC"). // stable lock order avoids deadlocks between concurrent assigns
		Find(&ms).Error
	return ms, err
}
