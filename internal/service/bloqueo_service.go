package service

import (
	"context"
	"errors"

	"purobeach/internal/dto"
	"purobeach/internal/model"
	"purobeach/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// BloqueoService manages furniture blocks. The guard: a block is refused while
// any reservation in a non-releasing state occupies the unit inside the range;
// cancelled (or otherwise released) reservations do not stand in the way.
type BloqueoService interface {
	Crear(ctx context.Context, req dto.CrearBloqueoRequest, usuario string) (dto.BloqueoResponse, error)
	Listar(ctx context.Context, filter dto.BloqueoFilter) ([]dto.BloqueoResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) error
}

type bloqueoService struct {
	bloqueoRepo    repository.BloqueoRepository
	mobiliarioRepo repository.MobiliarioRepository
	asignacionRepo repository.AsignacionRepository
	estadoRepo     repository.EstadoRepository
}

func NewBloqueoService(
	bloqueoRepo repository.BloqueoRepository,
	mobiliarioRepo repository.MobiliarioRepository,
	asignacionRepo repository.AsignacionRepository,
	estadoRepo repository.EstadoRepository,
) BloqueoService {
	return &bloqueoService{
		bloqueoRepo:    bloqueoRepo,
		mobiliarioRepo: mobiliarioRepo,
		asignacionRepo: asignacionRepo,
		estadoRepo:     estadoRepo,
	}
}

func (s *bloqueoService) Crear(ctx context.Context, req dto.CrearBloqueoRequest, usuario string) (dto.BloqueoResponse, error) {
	mobiliarioID, err := uuid.Parse(req.MobiliarioID)
	if err != nil {
		return dto.BloqueoResponse{}, err
	}
	desde, err := parseFecha(req.FechaInicio)
	if err != nil {
		return dto.BloqueoResponse{}, err
	}
	hasta, err := parseFecha(req.FechaFin)
	if err != nil {
		return dto.BloqueoResponse{}, err
	}
	if hasta.Before(desde) {
		return dto.BloqueoResponse{}, errors.New("fecha_fin debe ser posterior o igual a fecha_inicio")
	}
	if _, ok := model.TipoBloqueoInfo(req.Tipo); !ok {
		return dto.BloqueoResponse{}, errors.New("tipo de bloqueo desconocido")
	}

	unidad, err := s.mobiliarioRepo.FindByID(ctx, mobiliarioID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.BloqueoResponse{}, ErrMobiliarioNoEncontrado
		}
		return dto.BloqueoResponse{}, err
	}

	liberadores, err := s.estadoRepo.IDsLiberadores(ctx)
	if err != nil {
		return dto.BloqueoResponse{}, err
	}
	ocupadas, err := s.asignacionRepo.OcupadasEnRango(ctx, mobiliarioID, desde, hasta, liberadores)
	if err != nil {
		return dto.BloqueoResponse{}, err
	}
	if len(ocupadas) > 0 {
		return dto.BloqueoResponse{}, &ErrConflicto{
			Detalle:    "el mobiliario tiene reservas activas en el rango solicitado",
			Conflictos: detalleConflictos(ocupadas),
		}
	}

	b := &model.BloqueoMobiliario{
		MobiliarioID: mobiliarioID,
		FechaInicio:  desde,
		FechaFin:     hasta,
		Tipo:         req.Tipo,
		Motivo:       req.Motivo,
		CreadoPor:    usuario,
	}
	if err := s.bloqueoRepo.Create(ctx, b); err != nil {
		return dto.BloqueoResponse{}, err
	}
	b.Mobiliario = unidad

	log.Info().
		Str("bloqueo_id", b.ID.String()).
		Str("mobiliario", unidad.Numero).
		Str("tipo", req.Tipo).
		Str("usuario", usuario).
		Msg("bloqueo de mobiliario creado")
	return mapBloqueo(*b), nil
}

func (s *bloqueoService) Listar(ctx context.Context, filter dto.BloqueoFilter) ([]dto.BloqueoResponse, error) {
	bloqueos, err := s.bloqueoRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.BloqueoResponse, 0, len(bloqueos))
	for i := range bloqueos {
		out = append(out, mapBloqueo(bloqueos[i]))
	}
	return out, nil
}

func (s *bloqueoService) Eliminar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.bloqueoRepo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("bloqueo no encontrado")
		}
		return err
	}
	return s.bloqueoRepo.Delete(ctx, id)
}

func mapBloqueo(b model.BloqueoMobiliario) dto.BloqueoResponse {
	resp := dto.BloqueoResponse{
		ID:           b.ID.String(),
		MobiliarioID: b.MobiliarioID.String(),
		FechaInicio:  b.FechaInicio.Format(formatoFecha),
		FechaFin:     b.FechaFin.Format(formatoFecha),
		Tipo:         b.Tipo,
		Motivo:       b.Motivo,
		CreadoPor:    b.CreadoPor,
	}
	if info, ok := model.TipoBloqueoInfo(b.Tipo); ok {
		resp.TipoNombre = info.Nombre
		resp.Color = info.Color
	}
	if b.Mobiliario != nil {
		resp.Numero = b.Mobiliario.Numero
	}
	return resp
}
