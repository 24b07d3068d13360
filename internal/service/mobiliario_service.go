package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"purobeach/internal/dto"
	"purobeach/internal/model"
	"purobeach/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MobiliarioService interface {
	Crear(ctx context.Context, req dto.CrearMobiliarioRequest) (dto.MobiliarioResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (dto.MobiliarioResponse, error)
	Listar(ctx context.Context, filter dto.MobiliarioFilter) ([]dto.MobiliarioResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarMobiliarioRequest) (dto.MobiliarioResponse, error)
	// Eliminar soft-deletes; it refuses while future assignments exist.
	Eliminar(ctx context.Context, id uuid.UUID) error
	// SiguienteNumero suggests the next free unit number for a prefix: the
	// highest numeric suffix in use plus one ("Y" with Y5 taken → "Y6").
	// Retired units keep their number, so freed numbers are never reissued.
	SiguienteNumero(ctx context.Context, prefijo string) (dto.SiguienteNumeroResponse, error)
}

type mobiliarioService struct {
	repo           repository.MobiliarioRepository
	zonaRepo       repository.ZonaRepository
	asignacionRepo repository.AsignacionRepository
	prefRepo       repository.PreferenciaRepository
}

func NewMobiliarioService(
	repo repository.MobiliarioRepository,
	zonaRepo repository.ZonaRepository,
	asignacionRepo repository.AsignacionRepository,
	prefRepo repository.PreferenciaRepository,
) MobiliarioService {
	return &mobiliarioService{
		repo:           repo,
		zonaRepo:       zonaRepo,
		asignacionRepo: asignacionRepo,
		prefRepo:       prefRepo,
	}
}

func (s *mobiliarioService) Crear(ctx context.Context, req dto.CrearMobiliarioRequest) (dto.MobiliarioResponse, error) {
	zonaID, err := uuid.Parse(req.ZonaID)
	if err != nil {
		return dto.MobiliarioResponse{}, err
	}
	if _, err := s.zonaRepo.FindByID(ctx, zonaID); err != nil {
		return dto.MobiliarioResponse{}, ErrZonaNoEncontrada
	}
	if existente, err := s.repo.FindByNumero(ctx, req.Numero); err == nil && existente != nil {
		return dto.MobiliarioResponse{}, errors.New("ya existe mobiliario con ese número")
	}

	m := &model.Mobiliario{
		Numero:    req.Numero,
		ZonaID:    zonaID,
		Tipo:      req.Tipo,
		Capacidad: req.Capacidad,
		PosX:      req.PosX,
		PosY:      req.PosY,
		Rotacion:  req.Rotacion,
		Activo:    true,
	}
	if req.Ancho > 0 {
		m.Ancho = req.Ancho
	}
	if req.Alto > 0 {
		m.Alto = req.Alto
	}
	if m.ValidoDesde, err = parseFechaOpcional(req.ValidoDesde); err != nil {
		return dto.MobiliarioResponse{}, err
	}
	if m.ValidoHasta, err = parseFechaOpcional(req.ValidoHasta); err != nil {
		return dto.MobiliarioResponse{}, err
	}
	if len(req.Caracteristicas) > 0 {
		cs, err := s.prefRepo.FindCaracteristicasByCodigos(ctx, req.Caracteristicas)
		if err != nil {
			return dto.MobiliarioResponse{}, err
		}
		m.Caracteristicas = cs
	}
	if err := s.repo.Create(ctx, m); err != nil {
		return dto.MobiliarioResponse{}, err
	}
	return mapMobiliario(*m), nil
}

func (s *mobiliarioService) Obtener(ctx context.Context, id uuid.UUID) (dto.MobiliarioResponse, error) {
	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.MobiliarioResponse{}, ErrMobiliarioNoEncontrado
		}
		return dto.MobiliarioResponse{}, err
	}
	return mapMobiliario(*m), nil
}

func (s *mobiliarioService) Listar(ctx context.Context, filter dto.MobiliarioFilter) ([]dto.MobiliarioResponse, error) {
	unidades, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MobiliarioResponse, 0, len(unidades))
	for i := range unidades {
		out = append(out, mapMobiliario(unidades[i]))
	}
	return out, nil
}

func (s *mobiliarioService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarMobiliarioRequest) (dto.MobiliarioResponse, error) {
	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.MobiliarioResponse{}, ErrMobiliarioNoEncontrado
		}
		return dto.MobiliarioResponse{}, err
	}

	if req.Numero != nil && *req.Numero != m.Numero {
		if existente, err := s.repo.FindByNumero(ctx, *req.Numero); err == nil && existente != nil {
			return dto.MobiliarioResponse{}, errors.New("ya existe mobiliario con ese número")
		}
		m.Numero = *req.Numero
	}
	if req.ZonaID != nil {
		zid, err := uuid.Parse(*req.ZonaID)
		if err != nil {
			return dto.MobiliarioResponse{}, err
		}
		if _, err := s.zonaRepo.FindByID(ctx, zid); err != nil {
			return dto.MobiliarioResponse{}, ErrZonaNoEncontrada
		}
		m.ZonaID = zid
	}
	if req.Tipo != nil {
		m.Tipo = *req.Tipo
	}
	if req.Capacidad != nil {
		m.Capacidad = *req.Capacidad
	}
	if req.PosX != nil {
		m.PosX = *req.PosX
	}
	if req.PosY != nil {
		m.PosY = *req.PosY
	}
	if req.Ancho != nil {
		m.Ancho = *req.Ancho
	}
	if req.Alto != nil {
		m.Alto = *req.Alto
	}
	if req.Rotacion != nil {
		m.Rotacion = *req.Rotacion
	}
	if req.ValidoDesde != nil {
		if m.ValidoDesde, err = parseFechaOpcional(req.ValidoDesde); err != nil {
			return dto.MobiliarioResponse{}, err
		}
	}
	if req.ValidoHasta != nil {
		if m.ValidoHasta, err = parseFechaOpcional(req.ValidoHasta); err != nil {
			return dto.MobiliarioResponse{}, err
		}
	}
	if err := s.repo.Update(ctx, m); err != nil {
		return dto.MobiliarioResponse{}, err
	}
	if req.Caracteristicas != nil {
		cs, err := s.prefRepo.FindCaracteristicasByCodigos(ctx, req.Caracteristicas)
		if err != nil {
			return dto.MobiliarioResponse{}, err
		}
		if err := s.repo.ReplaceCaracteristicas(ctx, m, cs); err != nil {
			return dto.MobiliarioResponse{}, err
		}
		m.Caracteristicas = cs
	}
	return mapMobiliario(*m), nil
}

func (s *mobiliarioService) Eliminar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMobiliarioNoEncontrado
		}
		return err
	}
	n, err := s.asignacionRepo.CountFuturas(ctx, id, hoy())
	if err != nil {
		return err
	}
	if n > 0 {
		return errors.New("el mobiliario tiene reservas futuras y no se puede eliminar")
	}
	return s.repo.SoftDelete(ctx, id)
}

func (s *mobiliarioService) SiguienteNumero(ctx context.Context, prefijo string) (dto.SiguienteNumeroResponse, error) {
	prefijo = strings.ToUpper(strings.TrimSpace(prefijo))
	if prefijo == "" {
		return dto.SiguienteNumeroResponse{}, errors.New("prefijo requerido")
	}
	numeros, err := s.repo.NumerosPorPrefijo(ctx, prefijo)
	if err != nil {
		return dto.SiguienteNumeroResponse{}, err
	}
	mayor := 0
	for _, n := range numeros {
		sufijo := strings.TrimPrefix(n, prefijo)
		v, err := strconv.Atoi(sufijo)
		if err != nil {
			continue
		}
		if v > mayor {
			mayor = v
		}
	}
	return dto.SiguienteNumeroResponse{
		Prefijo: prefijo,
		Numero:  prefijo + strconv.Itoa(mayor+1),
	}, nil
}

func parseFechaOpcional(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	f, err := parseFecha(*s)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func mapMobiliario(m model.Mobiliario) dto.MobiliarioResponse {
	resp := dto.MobiliarioResponse{
		ID:              m.ID.String(),
		Numero:          m.Numero,
		ZonaID:          m.ZonaID.String(),
		Tipo:            m.Tipo,
		Capacidad:       m.Capacidad,
		PosX:            m.PosX,
		PosY:            m.PosY,
		Ancho:           m.Ancho,
		Alto:            m.Alto,
		Rotacion:        m.Rotacion,
		Activo:          m.Activo,
		Caracteristicas: []string{},
	}
	if m.Zona != nil {
		resp.Zona = m.Zona.Nombre
	}
	if m.ValidoDesde != nil {
		v := m.ValidoDesde.Format(formatoFecha)
		resp.ValidoDesde = &v
	}
	if m.ValidoHasta != nil {
		v := m.ValidoHasta.Format(formatoFecha)
		resp.ValidoHasta = &v
	}
	for _, c := range m.Caracteristicas {
		resp.Caracteristicas = append(resp.Caracteristicas, c.Codigo)
	}
	return resp
}
