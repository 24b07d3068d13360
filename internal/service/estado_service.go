package service

import (
	"context"
	"errors"

	"purobeach/internal/dto"
	"purobeach/internal/model"
	"purobeach/internal/repository"
	"purobeach/internal/worker"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// EstadoService is the reservation state machine. Every state change goes
// through the transition matrix, writes a history row and recomputes the
// primary state from the accumulated active set (highest Prioridad wins).
// It also maintains the Activa occupancy projection on asignaciones and
// reports incidents for states flagged crea_incidencia.
type EstadoService interface {
	// ValidarTransicion checks desde→hasta against the matrix. bypass skips
	// validation entirely (administrative override). Empty desde (new
	// reservation) is always valid; unknown custom states are permissive.
	ValidarTransicion(desde, hasta string, bypass bool) error
	// TransicionesPermitidas returns the legal target codes for a state, nil
	// for unknown (permissive) states and an empty slice for terminal ones.
	TransicionesPermitidas(codigo string) []string

	AgregarEstado(ctx context.Context, reservaID uuid.UUID, codigo, cambiadoPor string, motivo *string, bypass bool) error
	QuitarEstado(ctx context.Context, reservaID uuid.UUID, codigo, cambiadoPor string) error
	CambiarEstado(ctx context.Context, reservaID uuid.UUID, codigo, cambiadoPor string, motivo *string, bypass bool) error
	// CambiarEstadoTx is the in-transaction variant used by the multi-day
	// coordinator to transition a whole group atomically. It reports whether
	// the new state requires an incident report (dispatched by the caller
	// after commit).
	CambiarEstadoTx(ctx context.Context, tx *gorm.DB, reserva *model.Reserva, nuevo *model.EstadoReserva, cambiadoPor string, motivo *string, bypass bool) (incidencia bool, err error)

	// Estado configuration (CRUD). Seed states (es_sistema) cannot be deleted
	// or renamed.
	Crear(ctx context.Context, req dto.CrearEstadoRequest) (dto.EstadoResponse, error)
	Listar(ctx context.Context) ([]dto.EstadoResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarEstadoRequest) (dto.EstadoResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) error
}

type estadoService struct {
	reservaRepo    repository.ReservaRepository
	estadoRepo     repository.EstadoRepository
	asignacionRepo repository.AsignacionRepository
	dispatcher     *worker.Dispatcher
}

func NewEstadoService(
	reservaRepo repository.ReservaRepository,
	estadoRepo repository.EstadoRepository,
	asignacionRepo repository.AsignacionRepository,
	dispatcher *worker.Dispatcher,
) EstadoService {
	return &estadoService{
		reservaRepo:    reservaRepo,
		estadoRepo:     estadoRepo,
		asignacionRepo: asignacionRepo,
		dispatcher:     dispatcher,
	}
}

// ── Matriz de transiciones ───────────────────────────────────────────────────

func (s *estadoService) TransicionesPermitidas(codigo string) []string {
	destinos, conocido := model.TransicionesPermitidas(codigo)
	if !conocido {
		return nil
	}
	out := make([]string, len(destinos))
	copy(out, destinos)
	return out
}

func (s *estadoService) ValidarTransicion(desde, hasta string, bypass bool) error {
	if bypass {
		return nil
	}
	if model.EsTransicionValida(desde, hasta) {
		return nil
	}
	permitidas, _ := model.TransicionesPermitidas(desde)
	return &ErrTransicionInvalida{Desde: desde, Hasta: hasta, Permitidas: permitidas}
}

// ── Mutaciones de estado ─────────────────────────────────────────────────────

// AgregarEstado appends a state to the reservation's accumulated set. The
// transition is validated against the current primary state; the new primary
// becomes the highest-priority active state. The reservation is left
// unmodified when the matrix rejects the change.
func (s *estadoService) AgregarEstado(ctx context.Context, reservaID uuid.UUID, codigo, cambiadoPor string, motivo *string, bypass bool) error {
	reserva, nuevo, err := s.cargar(ctx, reservaID, codigo)
	if err != nil {
		return err
	}
	if err := s.ValidarTransicion(reserva.CodigoEstado(), nuevo.Codigo, bypass); err != nil {
		return err
	}

	txErr := runTx(ctx, s.reservaRepo.DB(), func(tx *gorm.DB) error {
		if err := s.reservaRepo.CreateHistorialTx(tx, &model.HistorialEstado{
			ReservaID:   reserva.ID,
			EstadoID:    nuevo.ID,
			Activo:      true,
			CambiadoPor: cambiadoPor,
			Motivo:      motivo,
			Bypass:      bypass,
		}); err != nil {
			return err
		}
		primario, err := s.recalcularPrimario(ctx, tx, reserva.ID)
		if err != nil {
			return err
		}
		return s.aplicarEfectos(ctx, tx, reserva, primario)
	})
	if txErr != nil {
		return txErr
	}

	s.notificar(ctx, reserva, nuevo, cambiadoPor, motivo, bypass, nuevo.CreaIncidencia)
	return nil
}

// QuitarEstado removes a state from the accumulated set. The primary state
// recomputes to the remaining highest-priority one, or the default state when
// the set becomes empty.
func (s *estadoService) QuitarEstado(ctx context.Context, reservaID uuid.UUID, codigo, cambiadoPor string) error {
	reserva, quitado, err := s.cargar(ctx, reservaID, codigo)
	if err != nil {
		return err
	}

	return runTx(ctx, s.reservaRepo.DB(), func(tx *gorm.DB) error {
		estadoID := quitado.ID
		if err := s.reservaRepo.DesactivarHistorialTx(tx, reserva.ID, &estadoID); err != nil {
			return err
		}
		primario, err := s.recalcularPrimario(ctx, tx, reserva.ID)
		if err != nil {
			return err
		}
		log.Info().
			Str("reserva_id", reserva.ID.String()).
			Str("estado_quitado", codigo).
			Str("estado_primario", primario.Codigo).
			Str("cambiado_por", cambiadoPor).
			Msg("estado quitado")
		return s.aplicarEfectos(ctx, tx, reserva, primario)
	})
}

// CambiarEstado replaces the whole accumulated set with a single state, still
// subject to matrix validation.
func (s *estadoService) CambiarEstado(ctx context.Context, reservaID uuid.UUID, codigo, cambiadoPor string, motivo *string, bypass bool) error {
	reserva, nuevo, err := s.cargar(ctx, reservaID, codigo)
	if err != nil {
		return err
	}

	incidencia := false
	txErr := runTx(ctx, s.reservaRepo.DB(), func(tx *gorm.DB) error {
		inc, err := s.CambiarEstadoTx(ctx, tx, reserva, nuevo, cambiadoPor, motivo, bypass)
		incidencia = inc
		return err
	})
	if txErr != nil {
		return txErr
	}

	s.notificar(ctx, reserva, nuevo, cambiadoPor, motivo, bypass, incidencia)
	return nil
}

func (s *estadoService) CambiarEstadoTx(ctx context.Context, tx *gorm.DB, reserva *model.Reserva, nuevo *model.EstadoReserva, cambiadoPor string, motivo *string, bypass bool) (bool, error) {
	if err := s.ValidarTransicion(reserva.CodigoEstado(), nuevo.Codigo, bypass); err != nil {
		return false, err
	}

	if err := s.reservaRepo.DesactivarHistorialTx(tx, reserva.ID, nil); err != nil {
		return false, err
	}
	if err := s.reservaRepo.CreateHistorialTx(tx, &model.HistorialEstado{
		ReservaID:   reserva.ID,
		EstadoID:    nuevo.ID,
		Activo:      true,
		CambiadoPor: cambiadoPor,
		Motivo:      motivo,
		Bypass:      bypass,
	}); err != nil {
		return false, err
	}
	if err := s.reservaRepo.UpdateEstadoTx(tx, reserva.ID, nuevo.ID); err != nil {
		return false, err
	}
	if err := s.efectosOcupacion(ctx, tx, reserva, nuevo); err != nil {
		return false, err
	}
	reserva.EstadoID = nuevo.ID
	reserva.Estado = nuevo
	return nuevo.CreaIncidencia, nil
}

// ── Internals ────────────────────────────────────────────────────────────────

func (s *estadoService) cargar(ctx context.Context, reservaID uuid.UUID, codigo string) (*model.Reserva, *model.EstadoReserva, error) {
	reserva, err := s.reservaRepo.FindByID(ctx, reservaID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrReservaNoEncontrada
		}
		return nil, nil, err
	}
	estado, err := s.estadoRepo.FindByCodigo(ctx, codigo)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrEstadoNoEncontrado
		}
		return nil, nil, err
	}
	return reserva, estado, nil
}

// recalcularPrimario sets reservas.estado_id to the highest-priority active
// state of the accumulated set, falling back to the default state when the set
// is empty. Returns the new primary state.
func (s *estadoService) recalcularPrimario(ctx context.Context, tx *gorm.DB, reservaID uuid.UUID) (*model.EstadoReserva, error) {
	activos, err := s.reservaRepo.HistorialActivoTx(tx, reservaID)
	if err != nil {
		return nil, err
	}

	var primario *model.EstadoReserva
	for i := range activos {
		e := activos[i].Estado
		if e == nil {
			continue
		}
		if primario == nil || e.Prioridad > primario.Prioridad {
			primario = e
		}
	}
	if primario == nil {
		def, err := s.estadoRepo.FindDefault(ctx)
		if err != nil {
			return nil, errors.New("no hay estado por defecto configurado")
		}
		primario = def
	}
	if err := s.reservaRepo.UpdateEstadoTx(tx, reservaID, primario.ID); err != nil {
		return nil, err
	}
	return primario, nil
}

// aplicarEfectos synchronizes the occupancy projection with the (possibly new)
// primary state.
func (s *estadoService) aplicarEfectos(ctx context.Context, tx *gorm.DB, reserva *model.Reserva, primario *model.EstadoReserva) error {
	err := s.efectosOcupacion(ctx, tx, reserva, primario)
	if err != nil {
		return err
	}
	reserva.EstadoID = primario.ID
	reserva.Estado = primario
	return nil
}

// efectosOcupacion releases the reservation's furniture when entering a
// releasing state and reactivates it when leaving one. Reactivation re-checks
// every assignment: if the furniture was taken in the meantime the transition
// fails with conflict detail and the whole transaction rolls back.
func (s *estadoService) efectosOcupacion(ctx context.Context, tx *gorm.DB, reserva *model.Reserva, nuevo *model.EstadoReserva) error {
	if nuevo.LiberaDisponibilidad {
		return s.asignacionRepo.DesactivarPorReservaTx(tx, reserva.ID)
	}

	// Non-releasing: any inactive rows must come back, but only if free.
	liberadores, err := s.estadoRepo.IDsLiberadores(ctx)
	if err != nil {
		return err
	}
	asignaciones, err := s.asignacionRepo.FindByReserva(ctx, reserva.ID)
	if err != nil {
		return err
	}
	for _, a := range asignaciones {
		if a.Activa {
			continue
		}
		conflictos, err := s.asignacionRepo.ConflictosTx(tx, []uuid.UUID{a.MobiliarioID}, a.Fecha, reserva.ID, liberadores)
		if err != nil {
			return err
		}
		if len(conflictos) > 0 {
			return &ErrConflicto{
				Detalle:    "no se puede reabrir la reserva: el mobiliario ya está ocupado",
				Conflictos: detalleConflictos(conflictos),
			}
		}
	}
	return s.asignacionRepo.ReactivarPorReservaTx(tx, reserva.ID)
}

// notificar emits post-commit side effects: incident report and, for bypassed
// transitions, an audit record of the administrative override.
func (s *estadoService) notificar(ctx context.Context, reserva *model.Reserva, nuevo *model.EstadoReserva, cambiadoPor string, motivo *string, bypass, incidencia bool) {
	log.Info().
		Str("reserva_id", reserva.ID.String()).
		Str("estado", nuevo.Codigo).
		Str("cambiado_por", cambiadoPor).
		Bool("bypass", bypass).
		Msg("estado de reserva actualizado")

	if s.dispatcher == nil {
		return
	}
	if incidencia {
		_ = s.dispatcher.EnqueueIncidencia(ctx, worker.IncidenciaJobPayload{
			ReservaID:   reserva.ID.String(),
			Estado:      nuevo.Codigo,
			CambiadoPor: cambiadoPor,
			Motivo:      motivo,
		})
	}
	if bypass {
		_ = s.dispatcher.EnqueueAuditoria(ctx, worker.AuditoriaJobPayload{
			Accion:    "bypass_transicion",
			ReservaID: reserva.ID.String(),
			Estado:    nuevo.Codigo,
			Usuario:   cambiadoPor,
		})
	}
}

func detalleConflictos(as []model.Asignacion) []ConflictoOcupacion {
	out := make([]ConflictoOcupacion, 0, len(as))
	for _, a := range as {
		c := ConflictoOcupacion{
			MobiliarioID: a.MobiliarioID.String(),
			Fecha:        a.Fecha.Format(formatoFecha),
			ReservaID:    a.ReservaID.String(),
		}
		if a.Mobiliario != nil {
			c.Numero = a.Mobiliario.Numero
		}
		if a.Reserva != nil && a.Reserva.Cliente != nil {
			c.Cliente = a.Reserva.Cliente.NombreCompleto()
		}
		out = append(out, c)
	}
	return out
}

// ── Configuración de estados ─────────────────────────────────────────────────

func mapEstado(e model.EstadoReserva) dto.EstadoResponse {
	destinos, conocido := model.TransicionesPermitidas(e.Codigo)
	var validas []string
	if conocido {
		validas = make([]string, len(destinos))
		copy(validas, destinos)
	}
	return dto.EstadoResponse{
		ID:                   e.ID.String(),
		Codigo:               e.Codigo,
		Nombre:               e.Nombre,
		Color:                e.Color,
		LiberaDisponibilidad: e.LiberaDisponibilidad,
		CreaIncidencia:       e.CreaIncidencia,
		EsDefault:            e.EsDefault,
		EsSistema:            e.EsSistema,
		Prioridad:            e.Prioridad,
		Activo:               e.Activo,
		TransicionesValidas:  validas,
	}
}

func (s *estadoService) Crear(ctx context.Context, req dto.CrearEstadoRequest) (dto.EstadoResponse, error) {
	if existente, err := s.estadoRepo.FindByCodigo(ctx, req.Codigo); err == nil && existente != nil {
		return dto.EstadoResponse{}, errors.New("ya existe un estado con ese código")
	}
	color := req.Color
	if color == "" {
		color = "#9E9E9E"
	}
	e := &model.EstadoReserva{
		Codigo:               req.Codigo,
		Nombre:               req.Nombre,
		Color:                color,
		LiberaDisponibilidad: req.LiberaDisponibilidad,
		CreaIncidencia:       req.CreaIncidencia,
		Prioridad:            req.Prioridad,
		Activo:               true,
	}
	if err := s.estadoRepo.Create(ctx, e); err != nil {
		return dto.EstadoResponse{}, err
	}
	return mapEstado(*e), nil
}

func (s *estadoService) Listar(ctx context.Context) ([]dto.EstadoResponse, error) {
	estados, err := s.estadoRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.EstadoResponse, 0, len(estados))
	for _, e := range estados {
		out = append(out, mapEstado(e))
	}
	return out, nil
}

func (s *estadoService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarEstadoRequest) (dto.EstadoResponse, error) {
	e, err := s.estadoRepo.FindByID(ctx, id)
	if err != nil {
		return dto.EstadoResponse{}, ErrEstadoNoEncontrado
	}
	if req.Nombre != nil {
		if e.EsSistema && *req.Nombre != e.Nombre {
			return dto.EstadoResponse{}, errors.New("los estados de sistema no se pueden renombrar")
		}
		e.Nombre = *req.Nombre
	}
	if req.Color != nil {
		e.Color = *req.Color
	}
	if req.LiberaDisponibilidad != nil {
		if e.EsSistema && *req.LiberaDisponibilidad != e.LiberaDisponibilidad {
			return dto.EstadoResponse{}, errors.New("no se puede cambiar la liberación de disponibilidad de un estado de sistema")
		}
		e.LiberaDisponibilidad = *req.LiberaDisponibilidad
	}
	if req.CreaIncidencia != nil {
		e.CreaIncidencia = *req.CreaIncidencia
	}
	if req.Prioridad != nil {
		e.Prioridad = *req.Prioridad
	}
	if req.Activo != nil {
		if e.EsSistema && !*req.Activo {
			return dto.EstadoResponse{}, errors.New("los estados de sistema no se pueden desactivar")
		}
		e.Activo = *req.Activo
	}
	if err := s.estadoRepo.Update(ctx, e); err != nil {
		return dto.EstadoResponse{}, err
	}
	return mapEstado(*e), nil
}

func (s *estadoService) Eliminar(ctx context.Context, id uuid.UUID) error {
	e, err := s.estadoRepo.FindByID(ctx, id)
	if err != nil {
		return ErrEstadoNoEncontrado
	}
	if e.EsSistema {
		return errors.New("los estados de sistema no se pueden eliminar")
	}
	n, err := s.estadoRepo.CountReservas(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return errors.New("el estado tiene reservas asociadas y no se puede eliminar")
	}
	return s.estadoRepo.Delete(ctx, id)
}
