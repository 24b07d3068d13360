package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"purobeach/internal/dto"
	"purobeach/internal/model"
	"purobeach/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// AsignacionService binds furniture to reservations one date at a time. Every
// mutation runs in a transaction that locks the target units first, so two
// operators assigning the same hamaca race on the row lock instead of on the
// partial unique index.
type AsignacionService interface {
	// Asignar attaches units to the reservation for one date. Units already
	// held by the same reservation on that date are skipped (idempotent);
	// units held by another live reservation abort the whole call with
	// conflict detail.
	Asignar(ctx context.Context, reservaID uuid.UUID, req dto.AsignarMobiliarioRequest, usuario string) (dto.AsignarResponse, error)
	// Desasignar detaches units for one date. Missing rows are not an error.
	Desasignar(ctx context.Context, reservaID uuid.UUID, req dto.DesasignarMobiliarioRequest, usuario string) (dto.DesasignarResponse, error)
	// Bloquear toggles the furniture lock that shields a reservation from
	// move-mode mutations.
	Bloquear(ctx context.Context, reservaID uuid.UUID, bloqueado bool, usuario string) (dto.BloquearMobiliarioResponse, error)
	// Pool returns the move-mode bundle: the reservation, its preference
	// codes, its per-day furniture and the dates of its whole group.
	Pool(ctx context.Context, reservaID uuid.UUID, filter dto.PoolFilter) (dto.PoolReservaResponse, error)
	// Coincidencias ranks active furniture against a preference set for one
	// date. Occupancy here is state-agnostic: any assignment row counts.
	Coincidencias(ctx context.Context, filter dto.CoincidenciasFilter) ([]dto.CoincidenciaResponse, error)
}

type asignacionService struct {
	asignacionRepo  repository.AsignacionRepository
	reservaRepo     repository.ReservaRepository
	mobiliarioRepo  repository.MobiliarioRepository
	estadoRepo      repository.EstadoRepository
	preferenciaRepo repository.PreferenciaRepository
}

func NewAsignacionService(
	asignacionRepo repository.AsignacionRepository,
	reservaRepo repository.ReservaRepository,
	mobiliarioRepo repository.MobiliarioRepository,
	estadoRepo repository.EstadoRepository,
	preferenciaRepo repository.PreferenciaRepository,
) AsignacionService {
	return &asignacionService{
		asignacionRepo:  asignacionRepo,
		reservaRepo:     reservaRepo,
		mobiliarioRepo:  mobiliarioRepo,
		estadoRepo:      estadoRepo,
		preferenciaRepo: preferenciaRepo,
	}
}

func (s *asignacionService) cargarReserva(ctx context.Context, reservaID uuid.UUID) (*model.Reserva, error) {
	reserva, err := s.reservaRepo.FindByID(ctx, reservaID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReservaNoEncontrada
		}
		return nil, err
	}
	return reserva, nil
}

func (s *asignacionService) Asignar(ctx context.Context, reservaID uuid.UUID, req dto.AsignarMobiliarioRequest, usuario string) (dto.AsignarResponse, error) {
	reserva, err := s.cargarReserva(ctx, reservaID)
	if err != nil {
		return dto.AsignarResponse{}, err
	}
	if reserva.MobiliarioBloqueado {
		return dto.AsignarResponse{}, ErrMobiliarioBloqueado
	}
	fecha, err := parseFecha(req.Fecha)
	if err != nil {
		return dto.AsignarResponse{}, err
	}
	if fecha.Before(reserva.FechaInicio) || fecha.After(reserva.FechaFin) {
		return dto.AsignarResponse{}, errors.New("la fecha no pertenece al rango de la reserva")
	}
	ids, err := parseUUIDs(req.MobiliarioIDs)
	if err != nil {
		return dto.AsignarResponse{}, err
	}
	liberadores, err := s.estadoRepo.IDsLiberadores(ctx)
	if err != nil {
		return dto.AsignarResponse{}, err
	}

	asignados := []string{}
	txErr := runTx(ctx, s.asignacionRepo.DB(), func(tx *gorm.DB) error {
		unidades, err := s.mobiliarioRepo.LockByIDsTx(tx, ids)
		if err != nil {
			return err
		}
		if len(unidades) != len(ids) {
			return ErrMobiliarioNoEncontrado
		}
		for i := range unidades {
			if !unidades[i].Activo || !unidades[i].VigenteEn(fecha) {
				return errors.New("el mobiliario " + unidades[i].Numero + " no está vigente en la fecha solicitada")
			}
		}

		conflictos, err := s.asignacionRepo.ConflictosTx(tx, ids, fecha, reserva.ID, liberadores)
		if err != nil {
			return err
		}
		if len(conflictos) > 0 {
			return &ErrConflicto{
				Detalle:    "mobiliario no disponible en la fecha solicitada",
				Conflictos: detalleConflictos(conflictos),
			}
		}

		propias, err := s.asignacionRepo.FindByReservaFecha(ctx, reserva.ID, fecha)
		if err != nil {
			return err
		}
		yaAsignado := make(map[uuid.UUID]bool, len(propias))
		for _, a := range propias {
			yaAsignado[a.MobiliarioID] = true
		}

		for _, id := range ids {
			if yaAsignado[id] {
				continue
			}
			if err := s.asignacionRepo.CreateTx(tx, &model.Asignacion{
				ReservaID:    reserva.ID,
				MobiliarioID: id,
				Fecha:        fecha,
				Activa:       true,
				AsignadoPor:  usuario,
			}); err != nil {
				return err
			}
			asignados = append(asignados, id.String())
		}
		return nil
	})
	if txErr != nil {
		return dto.AsignarResponse{}, txErr
	}

	log.Info().
		Str("reserva_id", reserva.ID.String()).
		Str("fecha", req.Fecha).
		Int("asignados", len(asignados)).
		Str("usuario", usuario).
		Msg("mobiliario asignado")
	return dto.AsignarResponse{Asignados: len(asignados), MobiliarioIDs: asignados}, nil
}

func (s *asignacionService) Desasignar(ctx context.Context, reservaID uuid.UUID, req dto.DesasignarMobiliarioRequest, usuario string) (dto.DesasignarResponse, error) {
	reserva, err := s.cargarReserva(ctx, reservaID)
	if err != nil {
		return dto.DesasignarResponse{}, err
	}
	if reserva.MobiliarioBloqueado {
		return dto.DesasignarResponse{}, ErrMobiliarioBloqueado
	}
	fecha, err := parseFecha(req.Fecha)
	if err != nil {
		return dto.DesasignarResponse{}, err
	}
	ids, err := parseUUIDs(req.MobiliarioIDs)
	if err != nil {
		return dto.DesasignarResponse{}, err
	}

	var borrados int64
	txErr := runTx(ctx, s.asignacionRepo.DB(), func(tx *gorm.DB) error {
		if _, err := s.mobiliarioRepo.LockByIDsTx(tx, ids); err != nil {
			return err
		}
		n, err := s.asignacionRepo.DeleteTx(tx, reserva.ID, ids, fecha)
		if err != nil {
			return err
		}
		borrados = n
		return nil
	})
	if txErr != nil {
		return dto.DesasignarResponse{}, txErr
	}

	log.Info().
		Str("reserva_id", reserva.ID.String()).
		Str("fecha", req.Fecha).
		Int64("desasignados", borrados).
		Str("usuario", usuario).
		Msg("mobiliario desasignado")
	return dto.DesasignarResponse{Desasignados: int(borrados), MobiliarioIDs: req.MobiliarioIDs}, nil
}

func (s *asignacionService) Bloquear(ctx context.Context, reservaID uuid.UUID, bloqueado bool, usuario string) (dto.BloquearMobiliarioResponse, error) {
	reserva, err := s.cargarReserva(ctx, reservaID)
	if err != nil {
		return dto.BloquearMobiliarioResponse{}, err
	}
	if err := s.reservaRepo.SetBloqueoMobiliario(ctx, reserva.ID, bloqueado); err != nil {
		return dto.BloquearMobiliarioResponse{}, err
	}
	log.Info().
		Str("reserva_id", reserva.ID.String()).
		Bool("bloqueado", bloqueado).
		Str("usuario", usuario).
		Msg("bloqueo de mobiliario actualizado")
	return dto.BloquearMobiliarioResponse{ReservaID: reserva.ID.String(), MobiliarioBloqueado: bloqueado}, nil
}

func (s *asignacionService) Pool(ctx context.Context, reservaID uuid.UUID, filter dto.PoolFilter) (dto.PoolReservaResponse, error) {
	reserva, err := s.cargarReserva(ctx, reservaID)
	if err != nil {
		return dto.PoolReservaResponse{}, err
	}
	grupo, err := s.reservaRepo.FindGrupo(ctx, reserva.ID)
	if err != nil {
		return dto.PoolReservaResponse{}, err
	}

	fechasGrupo := make([]string, 0, len(grupo))
	for _, g := range grupo {
		fechasGrupo = append(fechasGrupo, g.FechaInicio.Format(formatoFecha))
	}
	sort.Strings(fechasGrupo)

	var preferencias []string
	if reserva.Cliente != nil {
		for _, p := range reserva.Cliente.Preferencias {
			preferencias = append(preferencias, p.Codigo)
		}
	}

	fechas := rangoFechas(reserva.FechaInicio, reserva.FechaFin)
	if filter.Fecha != "" {
		f, err := parseFecha(filter.Fecha)
		if err != nil {
			return dto.PoolReservaResponse{}, err
		}
		fechas = []time.Time{f}
	}

	dias := make([]dto.PoolDiaResponse, 0, len(fechas))
	for _, fecha := range fechas {
		asignaciones, err := s.asignacionRepo.FindByReservaFecha(ctx, reserva.ID, fecha)
		if err != nil {
			return dto.PoolReservaResponse{}, err
		}
		dia := dto.PoolDiaResponse{Fecha: fecha.Format(formatoFecha), Mobiliario: []dto.AsignacionResponse{}}
		for _, a := range asignaciones {
			dia.Mobiliario = append(dia.Mobiliario, mapAsignacion(a))
		}
		dias = append(dias, dia)
	}

	return dto.PoolReservaResponse{
		Reserva:      mapReserva(*reserva),
		Preferencias: preferencias,
		Dias:         dias,
		FechasGrupo:  fechasGrupo,
	}, nil
}

func (s *asignacionService) Coincidencias(ctx context.Context, filter dto.CoincidenciasFilter) ([]dto.CoincidenciaResponse, error) {
	fecha, err := parseFecha(filter.Fecha)
	if err != nil {
		return nil, err
	}
	var zonaID *uuid.UUID
	if filter.ZonaID != "" {
		id, err := uuid.Parse(filter.ZonaID)
		if err != nil {
			return nil, err
		}
		zonaID = &id
	}

	unidades, err := s.mobiliarioRepo.ListActivos(ctx, fecha, zonaID)
	if err != nil {
		return nil, err
	}
	ids := make([]uuid.UUID, 0, len(unidades))
	for i := range unidades {
		ids = append(ids, unidades[i].ID)
	}
	ocupadas, err := s.asignacionRepo.OcupacionBruta(ctx, ids, fecha)
	if err != nil {
		return nil, err
	}

	deseadas, err := caracteristicasDeseadas(ctx, s.preferenciaRepo, filter.Preferencias)
	if err != nil {
		return nil, err
	}

	out := make([]dto.CoincidenciaResponse, 0, len(unidades))
	for i := range unidades {
		u := &unidades[i]
		puntuacion, coincidentes := puntuarPreferencias(u, deseadas)
		out = append(out, dto.CoincidenciaResponse{
			Mobiliario:               mapMobiliario(*u),
			Disponible:               !ocupadas[u.ID],
			PuntuacionCoincidencia:   puntuacion,
			PreferenciasCoincidentes: coincidentes,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Disponible != out[j].Disponible {
			return out[i].Disponible
		}
		if out[i].PuntuacionCoincidencia != out[j].PuntuacionCoincidencia {
			return out[i].PuntuacionCoincidencia > out[j].PuntuacionCoincidencia
		}
		return out[i].Mobiliario.Numero < out[j].Mobiliario.Numero
	})
	return out, nil
}

// preferenciasDeseadas is the resolved preference request: the feature codes
// that satisfy each preference plus how many distinct preferences were asked
// for. Solicitadas keeps unknown or unmapped codes in the denominator so a
// unit never scores full marks against a request it only partially satisfies.
type preferenciasDeseadas struct {
	porCaracteristica map[string]string // feature code → preference code
	solicitadas       int
}

// caracteristicasDeseadas maps client preference codes to the furniture
// feature codes they imply. Unknown preference codes resolve to nothing but
// still count as requested.
func caracteristicasDeseadas(ctx context.Context, repo repository.PreferenciaRepository, codigos []string) (preferenciasDeseadas, error) {
	deseadas := preferenciasDeseadas{porCaracteristica: map[string]string{}}
	if len(codigos) == 0 {
		return deseadas, nil
	}
	vistos := make(map[string]bool, len(codigos))
	for _, c := range codigos {
		if !vistos[c] {
			vistos[c] = true
			deseadas.solicitadas++
		}
	}
	prefs, err := repo.FindByCodigos(ctx, codigos)
	if err != nil {
		return deseadas, err
	}
	for _, p := range prefs {
		if p.Caracteristica != nil {
			deseadas.porCaracteristica[p.Caracteristica.Codigo] = p.Codigo
		}
	}
	return deseadas, nil
}

// puntuarPreferencias scores a unit as the fraction of requested preferences
// it satisfies. An empty request scores zero, never a free-for-all 1.0.
func puntuarPreferencias(u *model.Mobiliario, deseadas preferenciasDeseadas) (float64, []string) {
	coincidentes := []string{}
	if deseadas.solicitadas == 0 {
		return 0, coincidentes
	}
	for _, c := range u.Caracteristicas {
		if pref, ok := deseadas.porCaracteristica[c.Codigo]; ok {
			coincidentes = append(coincidentes, pref)
		}
	}
	sort.Strings(coincidentes)
	return float64(len(coincidentes)) / float64(deseadas.solicitadas), coincidentes
}

func mapAsignacion(a model.Asignacion) dto.AsignacionResponse {
	r := dto.AsignacionResponse{
		MobiliarioID: a.MobiliarioID.String(),
		Fecha:        a.Fecha.Format(formatoFecha),
		Activa:       a.Activa,
	}
	if a.Mobiliario != nil {
		r.Numero = a.Mobiliario.Numero
		r.Tipo = a.Mobiliario.Tipo
	}
	return r
}
