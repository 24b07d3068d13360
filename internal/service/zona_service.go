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

type ZonaService interface {
	Crear(ctx context.Context, req dto.CrearZonaRequest) (dto.ZonaResponse, error)
	Listar(ctx context.Context) ([]dto.ZonaResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarZonaRequest) (dto.ZonaResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) error
}

type zonaService struct {
	repo repository.ZonaRepository
}

func NewZonaService(repo repository.ZonaRepository) ZonaService {
	return &zonaService{repo: repo}
}

func (s *zonaService) Crear(ctx context.Context, req dto.CrearZonaRequest) (dto.ZonaResponse, error) {
	if existente, err := s.repo.FindByNombre(ctx, req.Nombre); err == nil && existente != nil {
		return dto.ZonaResponse{}, errors.New("ya existe una zona con ese nombre")
	}
	z := &model.Zona{
		Nombre: req.Nombre,
		Orden:  req.Orden,
		Activo: true,
	}
	if req.Color != "" {
		z.Color = req.Color
	}
	if req.PadreID != nil {
		pid, err := uuid.Parse(*req.PadreID)
		if err != nil {
			return dto.ZonaResponse{}, err
		}
		if _, err := s.repo.FindByID(ctx, pid); err != nil {
			return dto.ZonaResponse{}, ErrZonaNoEncontrada
		}
		z.PadreID = &pid
	}
	if err := s.repo.Create(ctx, z); err != nil {
		return dto.ZonaResponse{}, err
	}
	return s.mapZona(ctx, *z), nil
}

func (s *zonaService) Listar(ctx context.Context) ([]dto.ZonaResponse, error) {
	zonas, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ZonaResponse, 0, len(zonas))
	for i := range zonas {
		out = append(out, s.mapZona(ctx, zonas[i]))
	}
	return out, nil
}

func (s *zonaService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarZonaRequest) (dto.ZonaResponse, error) {
	z, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return dto.ZonaResponse{}, ErrZonaNoEncontrada
	}
	if req.Nombre != nil {
		z.Nombre = *req.Nombre
	}
	if req.PadreID != nil {
		pid, err := uuid.Parse(*req.PadreID)
		if err != nil {
			return dto.ZonaResponse{}, err
		}
		if pid == z.ID {
			return dto.ZonaResponse{}, errors.New("una zona no puede ser su propio padre")
		}
		z.PadreID = &pid
	}
	if req.Orden != nil {
		z.Orden = *req.Orden
	}
	if req.Color != nil {
		z.Color = *req.Color
	}
	if req.Activo != nil {
		z.Activo = *req.Activo
	}
	if err := s.repo.Update(ctx, z); err != nil {
		return dto.ZonaResponse{}, err
	}
	return s.mapZona(ctx, *z), nil
}

// Eliminar refuses while the zone still owns furniture or child zones.
func (s *zonaService) Eliminar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrZonaNoEncontrada
		}
		return err
	}
	n, err := s.repo.CountMobiliario(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return errors.New("la zona tiene mobiliario asociado y no se puede eliminar")
	}
	h, err := s.repo.CountHijas(ctx, id)
	if err != nil {
		return err
	}
	if h > 0 {
		return errors.New("la zona tiene subzonas y no se puede eliminar")
	}
	return s.repo.Delete(ctx, id)
}

func (s *zonaService) mapZona(ctx context.Context, z model.Zona) dto.ZonaResponse {
	resp := dto.ZonaResponse{
		ID:     z.ID.String(),
		Nombre: z.Nombre,
		Orden:  z.Orden,
		Color:  z.Color,
		Activo: z.Activo,
	}
	if z.PadreID != nil {
		pid := z.PadreID.String()
		resp.PadreID = &pid
	}
	if n, err := s.repo.CountMobiliario(ctx, z.ID); err == nil {
		resp.Mobiliario = n
	}
	return resp
}
