package service

import (
	"context"
	"errors"
	"time"

	"purobeach/internal/dto"
	"purobeach/internal/model"
	"purobeach/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// ListaEsperaService manages the waitlist for full dates. Expiry is
// synchronous: every list operation first sweeps entries whose date has
// passed, so callers never see a stale en_espera row.
type ListaEsperaService interface {
	Crear(ctx context.Context, req dto.CrearEsperaRequest) (dto.EsperaResponse, error)
	Listar(ctx context.Context, filter dto.EsperaFilter) ([]dto.EsperaResponse, error)
	// Convertir creates a reservation for the entry's date and furniture and
	// marks the entry convertida, linking the reservation.
	Convertir(ctx context.Context, id uuid.UUID, req dto.ConvertirEsperaRequest, usuario string) (dto.CrearReservaResponse, error)
	Cancelar(ctx context.Context, id uuid.UUID) error
}

type listaEsperaService struct {
	esperaRepo  repository.ListaEsperaRepository
	clienteRepo repository.ClienteRepository
	prefRepo    repository.PreferenciaRepository
	reservas    ReservaService
}

func NewListaEsperaService(
	esperaRepo repository.ListaEsperaRepository,
	clienteRepo repository.ClienteRepository,
	prefRepo repository.PreferenciaRepository,
	reservas ReservaService,
) ListaEsperaService {
	return &listaEsperaService{
		esperaRepo:  esperaRepo,
		clienteRepo: clienteRepo,
		prefRepo:    prefRepo,
		reservas:    reservas,
	}
}

func (s *listaEsperaService) Crear(ctx context.Context, req dto.CrearEsperaRequest) (dto.EsperaResponse, error) {
	clienteID, err := uuid.Parse(req.ClienteID)
	if err != nil {
		return dto.EsperaResponse{}, err
	}
	if _, err := s.clienteRepo.FindByID(ctx, clienteID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.EsperaResponse{}, ErrClienteNoEncontrado
		}
		return dto.EsperaResponse{}, err
	}
	fecha, err := parseFecha(req.Fecha)
	if err != nil {
		return dto.EsperaResponse{}, err
	}
	if fecha.Before(hoy()) {
		return dto.EsperaResponse{}, errors.New("no se puede entrar en lista de espera para una fecha pasada")
	}

	e := &model.ListaEspera{
		ClienteID:   clienteID,
		Fecha:       fecha,
		NumPersonas: req.NumPersonas,
		Estado:      model.EsperaPendiente,
		Notas:       req.Notas,
	}
	if len(req.Preferencias) > 0 {
		prefs, err := s.prefRepo.FindByCodigos(ctx, req.Preferencias)
		if err != nil {
			return dto.EsperaResponse{}, err
		}
		e.Preferencias = prefs
	}
	if err := s.esperaRepo.Create(ctx, e); err != nil {
		return dto.EsperaResponse{}, err
	}

	log.Info().
		Str("espera_id", e.ID.String()).
		Str("fecha", req.Fecha).
		Msg("entrada de lista de espera creada")
	return mapEspera(*e), nil
}

func (s *listaEsperaService) Listar(ctx context.Context, filter dto.EsperaFilter) ([]dto.EsperaResponse, error) {
	if n, err := s.esperaRepo.ExpirarVencidas(ctx, hoy()); err != nil {
		return nil, err
	} else if n > 0 {
		log.Info().Int64("expiradas", n).Msg("entradas de lista de espera expiradas")
	}

	entradas, err := s.esperaRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.EsperaResponse, 0, len(entradas))
	for i := range entradas {
		out = append(out, mapEspera(entradas[i]))
	}
	return out, nil
}

func (s *listaEsperaService) Convertir(ctx context.Context, id uuid.UUID, req dto.ConvertirEsperaRequest, usuario string) (dto.CrearReservaResponse, error) {
	e, err := s.esperaRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.CrearReservaResponse{}, errors.New("entrada de lista de espera no encontrada")
		}
		return dto.CrearReservaResponse{}, err
	}
	if e.Estado != model.EsperaPendiente {
		return dto.CrearReservaResponse{}, errors.New("la entrada ya no está en espera")
	}
	if e.Fecha.Before(hoy()) {
		e.Estado = model.EsperaExpirada
		_ = s.esperaRepo.Update(ctx, e)
		return dto.CrearReservaResponse{}, errors.New("la entrada ha expirado")
	}

	resp, err := s.reservas.Crear(ctx, dto.CrearReservaRequest{
		ClienteID:   e.ClienteID.String(),
		NumPersonas: e.NumPersonas,
		Dias: []dto.DiaReservaRequest{{
			Fecha:         e.Fecha.Format(formatoFecha),
			MobiliarioIDs: req.MobiliarioIDs,
		}},
		Notas: e.Notas,
	}, usuario)
	if err != nil {
		return dto.CrearReservaResponse{}, err
	}

	reservaID, err := uuid.Parse(resp.Reserva.ID)
	if err != nil {
		return dto.CrearReservaResponse{}, err
	}
	e.Estado = model.EsperaConvertida
	e.ReservaID = &reservaID
	if err := s.esperaRepo.Update(ctx, e); err != nil {
		return dto.CrearReservaResponse{}, err
	}

	log.Info().
		Str("espera_id", e.ID.String()).
		Str("reserva_id", resp.Reserva.ID).
		Str("usuario", usuario).
		Msg("lista de espera convertida en reserva")
	return resp, nil
}

func (s *listaEsperaService) Cancelar(ctx context.Context, id uuid.UUID) error {
	e, err := s.esperaRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("entrada de lista de espera no encontrada")
		}
		return err
	}
	if e.Estado != model.EsperaPendiente {
		return errors.New("la entrada ya no está en espera")
	}
	e.Estado = model.EsperaCancelada
	return s.esperaRepo.Update(ctx, e)
}

func mapEspera(e model.ListaEspera) dto.EsperaResponse {
	resp := dto.EsperaResponse{
		ID:           e.ID.String(),
		ClienteID:    e.ClienteID.String(),
		Fecha:        e.Fecha.Format(formatoFecha),
		NumPersonas:  e.NumPersonas,
		Estado:       e.Estado,
		Notas:        e.Notas,
		Preferencias: []string{},
		CreatedAt:    e.CreatedAt.Format(time.RFC3339),
	}
	if e.Cliente != nil {
		resp.Cliente = e.Cliente.NombreCompleto()
	}
	if e.ReservaID != nil {
		rid := e.ReservaID.String()
		resp.ReservaID = &rid
	}
	for _, p := range e.Preferencias {
		resp.Preferencias = append(resp.Preferencias, p.Codigo)
	}
	return resp
}
