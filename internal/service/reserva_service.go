package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"purobeach/internal/dto"
	"purobeach/internal/model"
	"purobeach/internal/repository"
	"purobeach/internal/worker"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// ReservaService is the multi-day coordinator. A group is one parent
// reservation (first date) plus one child per additional date, linked via
// padre_id; creation is all-or-nothing across every date, and cancellation of
// the parent propagates through the state machine to every child.
type ReservaService interface {
	Crear(ctx context.Context, req dto.CrearReservaRequest, usuario string) (dto.CrearReservaResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (dto.ReservaResponse, error)
	Listar(ctx context.Context, filter dto.ReservaFilter) (dto.ReservaListResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarReservaRequest, usuario string) (dto.ReservaResponse, error)
	// Cancelar transitions the reservation to cancelada. On a parent it
	// cancels the whole group in one transaction; a failed child validation
	// rolls everything back.
	Cancelar(ctx context.Context, id uuid.UUID, req dto.CancelarReservaRequest, usuario string) error
	Historial(ctx context.Context, id uuid.UUID) ([]dto.HistorialEstadoResponse, error)
}

type reservaService struct {
	reservaRepo    repository.ReservaRepository
	clienteRepo    repository.ClienteRepository
	mobiliarioRepo repository.MobiliarioRepository
	asignacionRepo repository.AsignacionRepository
	estadoRepo     repository.EstadoRepository
	estados        EstadoService
	dispatcher     *worker.Dispatcher
}

func NewReservaService(
	reservaRepo repository.ReservaRepository,
	clienteRepo repository.ClienteRepository,
	mobiliarioRepo repository.MobiliarioRepository,
	asignacionRepo repository.AsignacionRepository,
	estadoRepo repository.EstadoRepository,
	estados EstadoService,
	dispatcher *worker.Dispatcher,
) ReservaService {
	return &reservaService{
		reservaRepo:    reservaRepo,
		clienteRepo:    clienteRepo,
		mobiliarioRepo: mobiliarioRepo,
		asignacionRepo: asignacionRepo,
		estadoRepo:     estadoRepo,
		estados:        estados,
		dispatcher:     dispatcher,
	}
}

// ── Creación ─────────────────────────────────────────────────────────────────

type diaReserva struct {
	fecha         time.Time
	mobiliarioIDs []uuid.UUID
}

func (s *reservaService) Crear(ctx context.Context, req dto.CrearReservaRequest, usuario string) (dto.CrearReservaResponse, error) {
	clienteID, err := uuid.Parse(req.ClienteID)
	if err != nil {
		return dto.CrearReservaResponse{}, err
	}
	cliente, err := s.clienteRepo.FindByID(ctx, clienteID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.CrearReservaResponse{}, ErrClienteNoEncontrado
		}
		return dto.CrearReservaResponse{}, err
	}

	dias, err := parseDias(req.Dias)
	if err != nil {
		return dto.CrearReservaResponse{}, err
	}
	fechas := make([]time.Time, 0, len(dias))
	todosIDs := map[uuid.UUID]bool{}
	for _, d := range dias {
		fechas = append(fechas, d.fecha)
		for _, id := range d.mobiliarioIDs {
			todosIDs[id] = true
		}
	}

	liberadores, err := s.estadoRepo.IDsLiberadores(ctx)
	if err != nil {
		return dto.CrearReservaResponse{}, err
	}

	// Same-customer overlap guard, unless explicitly overridden.
	if !req.PermitirDuplicado {
		solapadas, err := s.reservaRepo.SolapadasCliente(ctx, cliente.ID, fechas, liberadores)
		if err != nil {
			return dto.CrearReservaResponse{}, err
		}
		if len(solapadas) > 0 {
			return dto.CrearReservaResponse{}, &ErrReservaDuplicada{
				ReservaID: solapadas[0].ID.String(),
				Fechas: solapadas[0].FechaInicio.Format(formatoFecha) + " – " +
					solapadas[0].FechaFin.Format(formatoFecha),
			}
		}
	}

	estadoDefault, err := s.estadoRepo.FindDefault(ctx)
	if err != nil {
		return dto.CrearReservaResponse{}, errors.New("no hay estado por defecto configurado")
	}

	var paqueteID *uuid.UUID
	if req.PaqueteID != nil {
		id, err := uuid.Parse(*req.PaqueteID)
		if err != nil {
			return dto.CrearReservaResponse{}, err
		}
		paqueteID = &id
	}
	tipo := req.Tipo
	if tipo == "" {
		tipo = model.ReservaNormal
	}

	var padre *model.Reserva
	var hijas []model.Reserva

	txErr := runTx(ctx, s.reservaRepo.DB(), func(tx *gorm.DB) error {
		// Lock every unit of every date up front, in stable order, then run
		// the bulk check inside the same transaction. Nothing is written
		// unless the whole group fits.
		ids := make([]uuid.UUID, 0, len(todosIDs))
		for id := range todosIDs {
			ids = append(ids, id)
		}
		unidades, err := s.mobiliarioRepo.LockByIDsTx(tx, ids)
		if err != nil {
			return err
		}
		if len(unidades) != len(ids) {
			return ErrMobiliarioNoEncontrado
		}
		vigencia := make(map[uuid.UUID]*model.Mobiliario, len(unidades))
		for i := range unidades {
			vigencia[unidades[i].ID] = &unidades[i]
		}

		for _, d := range dias {
			for _, id := range d.mobiliarioIDs {
				if u := vigencia[id]; !u.VigenteEn(d.fecha) {
					return errors.New("el mobiliario " + u.Numero + " no está vigente el " + d.fecha.Format(formatoFecha))
				}
			}
			conflictos, err := s.asignacionRepo.ConflictosTx(tx, d.mobiliarioIDs, d.fecha, uuid.Nil, liberadores)
			if err != nil {
				return err
			}
			if len(conflictos) > 0 {
				return &ErrConflicto{
					Detalle:    "mobiliario no disponible el " + d.fecha.Format(formatoFecha),
					Conflictos: detalleConflictos(conflictos),
				}
			}
		}

		crear := func(d diaReserva, padreID *uuid.UUID) (*model.Reserva, error) {
			res := &model.Reserva{
				ClienteID:   cliente.ID,
				FechaInicio: d.fecha,
				FechaFin:    d.fecha,
				NumPersonas: req.NumPersonas,
				EstadoID:    estadoDefault.ID,
				PadreID:     padreID,
				Tipo:        tipo,
				PaqueteID:   paqueteID,
				PrecioFinal: req.PrecioFinal,
				Notas:       req.Notas,
			}
			if err := s.reservaRepo.Create(ctx, tx, res); err != nil {
				return nil, err
			}
			if err := s.reservaRepo.CreateHistorialTx(tx, &model.HistorialEstado{
				ReservaID:   res.ID,
				EstadoID:    estadoDefault.ID,
				Activo:      true,
				CambiadoPor: usuario,
			}); err != nil {
				return nil, err
			}
			for _, mid := range d.mobiliarioIDs {
				if err := s.asignacionRepo.CreateTx(tx, &model.Asignacion{
					ReservaID:    res.ID,
					MobiliarioID: mid,
					Fecha:        d.fecha,
					Activa:       true,
					AsignadoPor:  usuario,
				}); err != nil {
					return nil, err
				}
			}
			return res, nil
		}

		padre, err = crear(dias[0], nil)
		if err != nil {
			return err
		}
		for _, d := range dias[1:] {
			hija, err := crear(d, &padre.ID)
			if err != nil {
				return err
			}
			hijas = append(hijas, *hija)
		}
		return nil
	})
	if txErr != nil {
		return dto.CrearReservaResponse{}, txErr
	}

	log.Info().
		Str("reserva_id", padre.ID.String()).
		Str("cliente_id", cliente.ID.String()).
		Int("dias", len(dias)).
		Str("usuario", usuario).
		Msg("reserva creada")

	if s.dispatcher != nil && cliente.Email != nil && *cliente.Email != "" {
		_ = s.dispatcher.EnqueueEmail(ctx, worker.EmailJobPayload{
			ReservaID: padre.ID.String(),
			Email:     *cliente.Email,
			Nombre:    cliente.NombreCompleto(),
		})
	}

	completo, err := s.reservaRepo.FindByID(ctx, padre.ID)
	if err != nil {
		return dto.CrearReservaResponse{}, err
	}
	resp := dto.CrearReservaResponse{Reserva: mapReserva(*completo)}
	for _, h := range hijas {
		hc, err := s.reservaRepo.FindByID(ctx, h.ID)
		if err != nil {
			return dto.CrearReservaResponse{}, err
		}
		resp.Hijas = append(resp.Hijas, mapReserva(*hc))
	}
	return resp, nil
}

func parseDias(raw []dto.DiaReservaRequest) ([]diaReserva, error) {
	dias := make([]diaReserva, 0, len(raw))
	vistas := map[string]bool{}
	for _, d := range raw {
		fecha, err := parseFecha(d.Fecha)
		if err != nil {
			return nil, err
		}
		if vistas[d.Fecha] {
			return nil, errors.New("fecha duplicada en la solicitud: " + d.Fecha)
		}
		vistas[d.Fecha] = true
		ids, err := parseUUIDs(d.MobiliarioIDs)
		if err != nil {
			return nil, err
		}
		dias = append(dias, diaReserva{fecha: fecha, mobiliarioIDs: ids})
	}
	sort.Slice(dias, func(i, j int) bool { return dias[i].fecha.Before(dias[j].fecha) })
	return dias, nil
}

// ── Lectura ──────────────────────────────────────────────────────────────────

func (s *reservaService) Obtener(ctx context.Context, id uuid.UUID) (dto.ReservaResponse, error) {
	res, err := s.reservaRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ReservaResponse{}, ErrReservaNoEncontrada
		}
		return dto.ReservaResponse{}, err
	}
	return mapReserva(*res), nil
}

func (s *reservaService) Listar(ctx context.Context, filter dto.ReservaFilter) (dto.ReservaListResponse, error) {
	reservas, total, err := s.reservaRepo.List(ctx, filter)
	if err != nil {
		return dto.ReservaListResponse{}, err
	}
	out := dto.ReservaListResponse{
		Data:  make([]dto.ReservaResponse, 0, len(reservas)),
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}
	for i := range reservas {
		out.Data = append(out.Data, mapReserva(reservas[i]))
	}
	return out, nil
}

func (s *reservaService) Historial(ctx context.Context, id uuid.UUID) ([]dto.HistorialEstadoResponse, error) {
	res, err := s.reservaRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReservaNoEncontrada
		}
		return nil, err
	}
	out := make([]dto.HistorialEstadoResponse, 0, len(res.Historial))
	for _, h := range res.Historial {
		e := dto.HistorialEstadoResponse{
			Activo:      h.Activo,
			CambiadoPor: h.CambiadoPor,
			Motivo:      h.Motivo,
			Bypass:      h.Bypass,
			CreatedAt:   h.CreatedAt.Format(time.RFC3339),
		}
		if h.Estado != nil {
			e.Estado = h.Estado.Codigo
		}
		out = append(out, e)
	}
	return out, nil
}

// ── Actualización y cancelación ──────────────────────────────────────────────

func (s *reservaService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarReservaRequest, usuario string) (dto.ReservaResponse, error) {
	res, err := s.reservaRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ReservaResponse{}, ErrReservaNoEncontrada
		}
		return dto.ReservaResponse{}, err
	}

	if req.NumPersonas != nil {
		res.NumPersonas = *req.NumPersonas
	}
	if req.PaqueteID != nil {
		pid, err := uuid.Parse(*req.PaqueteID)
		if err != nil {
			return dto.ReservaResponse{}, err
		}
		res.PaqueteID = &pid
	}
	if req.PrecioFinal != nil {
		res.PrecioFinal = req.PrecioFinal
	}
	if req.Pagado != nil {
		res.Pagado = *req.Pagado
	}
	if req.MetodoPago != nil {
		res.MetodoPago = req.MetodoPago
	}
	if req.TicketPago != nil {
		res.TicketPago = req.TicketPago
	}
	if req.Notas != nil {
		res.Notas = req.Notas
	}

	// NumPersonas and pricing are shared group context; children follow.
	txErr := runTx(ctx, s.reservaRepo.DB(), func(tx *gorm.DB) error {
		if err := s.reservaRepo.UpdateTx(tx, res); err != nil {
			return err
		}
		if req.NumPersonas == nil && req.PrecioFinal == nil && req.PaqueteID == nil {
			return nil
		}
		for i := range res.Hijas {
			h := &res.Hijas[i]
			if req.NumPersonas != nil {
				h.NumPersonas = *req.NumPersonas
			}
			if req.PrecioFinal != nil {
				h.PrecioFinal = req.PrecioFinal
			}
			if req.PaqueteID != nil {
				h.PaqueteID = res.PaqueteID
			}
			if err := s.reservaRepo.UpdateTx(tx, h); err != nil {
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		return dto.ReservaResponse{}, txErr
	}

	log.Info().Str("reserva_id", res.ID.String()).Str("usuario", usuario).Msg("reserva actualizada")
	return mapReserva(*res), nil
}

func (s *reservaService) Cancelar(ctx context.Context, id uuid.UUID, req dto.CancelarReservaRequest, usuario string) error {
	grupo, err := s.reservaRepo.FindGrupo(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrReservaNoEncontrada
		}
		return err
	}

	// Cancelling a child only affects that child; cancelling the parent (or
	// requesting via any member id resolves the parent) cancels the group.
	objetivo := grupo
	for i := range grupo {
		if grupo[i].ID == id && grupo[i].PadreID != nil {
			objetivo = grupo[i : i+1]
			break
		}
	}

	cancelada, err := s.estadoRepo.FindByCodigo(ctx, model.EstadoCancelada)
	if err != nil {
		return ErrEstadoNoEncontrado
	}

	motivo := strings.TrimSpace(req.Motivo)
	incidencias := make([]uuid.UUID, 0, len(objetivo))
	txErr := runTx(ctx, s.reservaRepo.DB(), func(tx *gorm.DB) error {
		for i := range objetivo {
			res := &objetivo[i]
			if model.EsEstadoTerminal(res.CodigoEstado()) && !req.Bypass {
				continue
			}
			inc, err := s.estados.CambiarEstadoTx(ctx, tx, res, cancelada, usuario, &motivo, req.Bypass)
			if err != nil {
				return err
			}
			if inc {
				incidencias = append(incidencias, res.ID)
			}
		}
		return nil
	})
	if txErr != nil {
		return txErr
	}

	log.Info().
		Str("reserva_id", id.String()).
		Int("canceladas", len(objetivo)).
		Str("usuario", usuario).
		Msg("reserva cancelada")

	if s.dispatcher != nil {
		for _, rid := range incidencias {
			_ = s.dispatcher.EnqueueIncidencia(ctx, worker.IncidenciaJobPayload{
				ReservaID:   rid.String(),
				Estado:      model.EstadoCancelada,
				CambiadoPor: usuario,
				Motivo:      &motivo,
			})
		}
	}
	return nil
}

// ── Mapeo ────────────────────────────────────────────────────────────────────

func mapReserva(r model.Reserva) dto.ReservaResponse {
	resp := dto.ReservaResponse{
		ID:                  r.ID.String(),
		ClienteID:           r.ClienteID.String(),
		FechaInicio:         r.FechaInicio.Format(formatoFecha),
		FechaFin:            r.FechaFin.Format(formatoFecha),
		NumPersonas:         r.NumPersonas,
		MobiliarioBloqueado: r.MobiliarioBloqueado,
		Tipo:                r.Tipo,
		PrecioFinal:         r.PrecioFinal,
		Pagado:              r.Pagado,
		MetodoPago:          r.MetodoPago,
		TicketPago:          r.TicketPago,
		Notas:               r.Notas,
		EstadosActivos:      []dto.EstadoActivoResponse{},
		Asignaciones:        []dto.AsignacionResponse{},
		CreatedAt:           r.CreatedAt.Format(time.RFC3339),
	}
	if r.Cliente != nil {
		resp.Cliente = r.Cliente.NombreCompleto()
	}
	if r.Estado != nil {
		resp.Estado = r.Estado.Codigo
		resp.EstadoNombre = r.Estado.Nombre
	}
	if r.PadreID != nil {
		pid := r.PadreID.String()
		resp.PadreID = &pid
	}
	if r.PaqueteID != nil {
		qid := r.PaqueteID.String()
		resp.PaqueteID = &qid
	}
	for _, h := range r.Hijas {
		resp.HijaIDs = append(resp.HijaIDs, h.ID.String())
	}
	for _, h := range r.Historial {
		if !h.Activo || h.Estado == nil {
			continue
		}
		resp.EstadosActivos = append(resp.EstadosActivos, dto.EstadoActivoResponse{
			Codigo:    h.Estado.Codigo,
			Nombre:    h.Estado.Nombre,
			Color:     h.Estado.Color,
			Prioridad: h.Estado.Prioridad,
		})
	}
	sort.SliceStable(resp.EstadosActivos, func(i, j int) bool {
		return resp.EstadosActivos[i].Prioridad > resp.EstadosActivos[j].Prioridad
	})
	for _, a := range r.Asignaciones {
		resp.Asignaciones = append(resp.Asignaciones, mapAsignacion(a))
	}
	return resp
}
