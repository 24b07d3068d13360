package service

import (
	"context"
	"errors"

	"purobeach/internal/dto"
	"purobeach/internal/model"
	"purobeach/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PaqueteService exposes the pricing-package lookup table. Packages are seed
// data; this surface is read-only.
type PaqueteService interface {
	Listar(ctx context.Context) ([]dto.PaqueteResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (dto.PaqueteResponse, error)
}

type paqueteService struct {
	repo repository.PaqueteRepository
}

func NewPaqueteService(repo repository.PaqueteRepository) PaqueteService {
	return &paqueteService{repo: repo}
}

func (s *paqueteService) Listar(ctx context.Context) ([]dto.PaqueteResponse, error) {
	paquetes, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PaqueteResponse, 0, len(paquetes))
	for i := range paquetes {
		out = append(out, mapPaquete(paquetes[i]))
	}
	return out, nil
}

func (s *paqueteService) Obtener(ctx context.Context, id uuid.UUID) (dto.PaqueteResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.PaqueteResponse{}, errors.New("paquete no encontrado")
		}
		return dto.PaqueteResponse{}, err
	}
	return mapPaquete(*p), nil
}

func mapPaquete(p model.Paquete) dto.PaqueteResponse {
	return dto.PaqueteResponse{
		ID:             p.ID.String(),
		Nombre:         p.Nombre,
		Descripcion:    p.Descripcion,
		TipoMobiliario: p.TipoMobiliario,
		Precio:         p.Precio,
		ConsumoMinimo:  p.ConsumoMinimo,
		Activo:         p.Activo,
	}
}
