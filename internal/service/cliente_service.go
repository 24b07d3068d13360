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

type ClienteService interface {
	Crear(ctx context.Context, req dto.CrearClienteRequest) (dto.ClienteResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (dto.ClienteResponse, error)
	Listar(ctx context.Context, filter dto.ClienteFilter) (dto.ClienteListResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarClienteRequest) (dto.ClienteResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) error
}

type clienteService struct {
	repo     repository.ClienteRepository
	prefRepo repository.PreferenciaRepository
}

func NewClienteService(repo repository.ClienteRepository, prefRepo repository.PreferenciaRepository) ClienteService {
	return &clienteService{repo: repo, prefRepo: prefRepo}
}

func (s *clienteService) Crear(ctx context.Context, req dto.CrearClienteRequest) (dto.ClienteResponse, error) {
	if req.Email != nil && *req.Email != "" {
		if existente, err := s.repo.FindByEmail(ctx, *req.Email); err == nil && existente != nil {
			return dto.ClienteResponse{}, errors.New("ya existe un cliente con ese email")
		}
	}
	if req.EsHuesped && (req.Habitacion == nil || *req.Habitacion == "") {
		return dto.ClienteResponse{}, errors.New("un huésped del hotel necesita número de habitación")
	}

	c := &model.Cliente{
		Nombre:     req.Nombre,
		Apellidos:  req.Apellidos,
		Email:      req.Email,
		Telefono:   req.Telefono,
		EsHuesped:  req.EsHuesped,
		Habitacion: req.Habitacion,
		Notas:      req.Notas,
		Activo:     true,
	}
	if len(req.Preferencias) > 0 {
		prefs, err := s.prefRepo.FindByCodigos(ctx, req.Preferencias)
		if err != nil {
			return dto.ClienteResponse{}, err
		}
		c.Preferencias = prefs
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return dto.ClienteResponse{}, err
	}
	return mapCliente(*c), nil
}

func (s *clienteService) Obtener(ctx context.Context, id uuid.UUID) (dto.ClienteResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ClienteResponse{}, ErrClienteNoEncontrado
		}
		return dto.ClienteResponse{}, err
	}
	return mapCliente(*c), nil
}

func (s *clienteService) Listar(ctx context.Context, filter dto.ClienteFilter) (dto.ClienteListResponse, error) {
	clientes, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return dto.ClienteListResponse{}, err
	}
	out := dto.ClienteListResponse{
		Data:  make([]dto.ClienteResponse, 0, len(clientes)),
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}
	for i := range clientes {
		out.Data = append(out.Data, mapCliente(clientes[i]))
	}
	return out, nil
}

func (s *clienteService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarClienteRequest) (dto.ClienteResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ClienteResponse{}, ErrClienteNoEncontrado
		}
		return dto.ClienteResponse{}, err
	}

	if req.Nombre != nil {
		c.Nombre = *req.Nombre
	}
	if req.Apellidos != nil {
		c.Apellidos = *req.Apellidos
	}
	if req.Email != nil {
		c.Email = req.Email
	}
	if req.Telefono != nil {
		c.Telefono = req.Telefono
	}
	if req.EsHuesped != nil {
		c.EsHuesped = *req.EsHuesped
	}
	if req.Habitacion != nil {
		c.Habitacion = req.Habitacion
	}
	if req.Notas != nil {
		c.Notas = req.Notas
	}
	if err := s.repo.Update(ctx, c); err != nil {
		return dto.ClienteResponse{}, err
	}
	if req.Preferencias != nil {
		prefs, err := s.prefRepo.FindByCodigos(ctx, req.Preferencias)
		if err != nil {
			return dto.ClienteResponse{}, err
		}
		if err := s.repo.ReplacePreferencias(ctx, c, prefs); err != nil {
			return dto.ClienteResponse{}, err
		}
		c.Preferencias = prefs
	}
	return mapCliente(*c), nil
}

func (s *clienteService) Eliminar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrClienteNoEncontrado
		}
		return err
	}
	return s.repo.SoftDelete(ctx, id)
}

func mapCliente(c model.Cliente) dto.ClienteResponse {
	resp := dto.ClienteResponse{
		ID:           c.ID.String(),
		Nombre:       c.Nombre,
		Apellidos:    c.Apellidos,
		Email:        c.Email,
		Telefono:     c.Telefono,
		EsHuesped:    c.EsHuesped,
		Habitacion:   c.Habitacion,
		Notas:        c.Notas,
		Activo:       c.Activo,
		Preferencias: []string{},
	}
	for _, p := range c.Preferencias {
		resp.Preferencias = append(resp.Preferencias, p.Codigo)
	}
	return resp
}
