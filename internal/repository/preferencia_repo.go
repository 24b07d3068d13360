package repository

import (
	"context"

	"purobeach/internal/model"

	"gorm.io/gorm"
)

// PreferenciaRepository reads the preference catalogue and its mapping to
// furniture features (external lookup data, seeded by cmd/seed).
type PreferenciaRepository interface {
	FindByCodigos(ctx context.Context, codigos []string) ([]model.Preferencia, error)
	List(ctx context.Context) ([]model.Preferencia, error)
	ListCaracteristicas(ctx context.Context) ([]model.Caracteristica, error)
	FindCaracteristicasByCodigos(ctx context.Context, codigos []string) ([]model.Caracteristica, error)
}

type preferenciaRepo struct{ db *gorm.DB }

func NewPreferenciaRepository(db *gorm.DB) PreferenciaRepository { return &preferenciaRepo{db: db} }

func (r *preferenciaRepo) FindByCodigos(ctx context.Context, codigos []string) ([]model.Preferencia, error) {
	if len(codigos) == 0 {
		return nil, nil
	}
	var prefs []model.Preferencia
	err := r.db.WithContext(ctx).Preload("Caracteristica").
		Where("codigo IN ?", codigos).Find(&prefs).Error
	return prefs, err
}

func (r *preferenciaRepo) List(ctx context.Context) ([]model.Preferencia, error) {
	var prefs []model.Preferencia
	err := r.db.WithContext(ctx).Preload("Caracteristica").Order("codigo ASC").Find(&prefs).Error
	return prefs, err
}

func (r *preferenciaRepo) ListCaracteristicas(ctx context.Context) ([]model.Caracteristica, error) {
	var cs []model.Caracteristica
	err := r.db.WithContext(ctx).Order("codigo ASC").Find(&cs).Error
	return cs, err
}

func (r *preferenciaRepo) FindCaracteristicasByCodigos(ctx context.Context, codigos []string) ([]model.Caracteristica, error) {
	if len(codigos) == 0 {
		return nil, nil
	}
	var cs []model.Caracteristica
	err := r.db.WithContext(ctx).Where("codigo IN ?", codigos).Find(&cs).Error
	return cs, err
}
