package service

import (
	"context"
	"errors"
	"time"

	"purobeach/internal/dto"
	"purobeach/internal/model"
	"purobeach/internal/repository"

	"github.com/google/uuid"
)

// DisponibilidadService answers occupancy questions. A unit is available on a
// date when no active assignment ties it to a reservation in a non-releasing
// state; which states release is read from the estado catalog on every call so
// custom states take effect immediately.
type DisponibilidadService interface {
	// CheckBulk verifies every (mobiliario, fecha) pair of the cartesian
	// product. Empty ids or fechas yields TodoDisponible=true with an empty
	// matrix.
	CheckBulk(ctx context.Context, req dto.CheckBulkRequest) (dto.CheckBulkResponse, error)
	// Mapa builds the floor-map availability grid for a date range, optionally
	// restricted to one zone.
	Mapa(ctx context.Context, filter dto.DisponibilidadFilter) (dto.MapaDisponibilidadResponse, error)
	// Conflictos lists the reservations occupying the given units on a date.
	Conflictos(ctx context.Context, filter dto.ConflictosFilter) ([]dto.ReservaConflicto, error)

	// ParesOcupados is the internal form of CheckBulk used by the assignment
	// and reservation flows: it returns the occupied pairs with full holder
	// detail, excluding nothing.
	ParesOcupados(ctx context.Context, mobiliarioIDs []uuid.UUID, fechas []time.Time) ([]model.Asignacion, error)
}

type disponibilidadService struct {
	asignacionRepo repository.AsignacionRepository
	mobiliarioRepo repository.MobiliarioRepository
	estadoRepo     repository.EstadoRepository
}

func NewDisponibilidadService(
	asignacionRepo repository.AsignacionRepository,
	mobiliarioRepo repository.MobiliarioRepository,
	estadoRepo repository.EstadoRepository,
) DisponibilidadService {
	return &disponibilidadService{
		asignacionRepo: asignacionRepo,
		mobiliarioRepo: mobiliarioRepo,
		estadoRepo:     estadoRepo,
	}
}

func (s *disponibilidadService) ParesOcupados(ctx context.Context, mobiliarioIDs []uuid.UUID, fechas []time.Time) ([]model.Asignacion, error) {
	if len(mobiliarioIDs) == 0 || len(fechas) == 0 {
		return nil, nil
	}
	liberadores, err := s.estadoRepo.IDsLiberadores(ctx)
	if err != nil {
		return nil, err
	}
	return s.asignacionRepo.OcupadasPorPares(ctx, mobiliarioIDs, fechas, liberadores)
}

func (s *disponibilidadService) CheckBulk(ctx context.Context, req dto.CheckBulkRequest) (dto.CheckBulkResponse, error) {
	ids, err := parseUUIDs(req.MobiliarioIDs)
	if err != nil {
		return dto.CheckBulkResponse{}, err
	}
	fechas, err := parseFechas(req.Fechas)
	if err != nil {
		return dto.CheckBulkResponse{}, err
	}

	resp := dto.CheckBulkResponse{
		TodoDisponible: true,
		NoDisponibles:  []dto.ParNoDisponible{},
		Matriz:         map[string]map[string]bool{},
	}
	for _, f := range fechas {
		fila := make(map[string]bool, len(ids))
		for _, id := range ids {
			fila[id.String()] = true
		}
		resp.Matriz[f.Format(formatoFecha)] = fila
	}

	ocupadas, err := s.ParesOcupados(ctx, ids, fechas)
	if err != nil {
		return dto.CheckBulkResponse{}, err
	}
	for _, a := range ocupadas {
		fecha := a.Fecha.Format(formatoFecha)
		if fila, ok := resp.Matriz[fecha]; ok {
			fila[a.MobiliarioID.String()] = false
		}
		resp.TodoDisponible = false
		resp.NoDisponibles = append(resp.NoDisponibles, dto.ParNoDisponible{
			MobiliarioID: a.MobiliarioID.String(),
			Fecha:        fecha,
		})
	}
	return resp, nil
}

func (s *disponibilidadService) Mapa(ctx context.Context, filter dto.DisponibilidadFilter) (dto.MapaDisponibilidadResponse, error) {
	desde, err := parseFecha(filter.FechaDesde)
	if err != nil {
		return dto.MapaDisponibilidadResponse{}, err
	}
	hasta, err := parseFecha(filter.FechaHasta)
	if err != nil {
		return dto.MapaDisponibilidadResponse{}, err
	}
	if hasta.Before(desde) {
		return dto.MapaDisponibilidadResponse{}, errors.New("fecha_hasta debe ser posterior o igual a fecha_desde")
	}

	var zonaID *uuid.UUID
	if filter.ZonaID != "" {
		id, err := uuid.Parse(filter.ZonaID)
		if err != nil {
			return dto.MapaDisponibilidadResponse{}, err
		}
		zonaID = &id
	}

	fechas := rangoFechas(desde, hasta)

	// Units are listed once, at the start of the range; validity windows are
	// applied per day below so a unit retired mid-range drops out of later
	// columns instead of the whole map.
	unidades, err := s.mobiliarioRepo.ListActivos(ctx, desde, zonaID)
	if err != nil {
		return dto.MapaDisponibilidadResponse{}, err
	}

	resp := dto.MapaDisponibilidadResponse{
		Mobiliario:     make([]dto.MobiliarioResponse, 0, len(unidades)),
		Fechas:         make([]string, 0, len(fechas)),
		Disponibilidad: map[string]map[string]bool{},
		Resumen:        map[string]dto.ResumenDia{},
	}
	ids := make([]uuid.UUID, 0, len(unidades))
	for i := range unidades {
		resp.Mobiliario = append(resp.Mobiliario, mapMobiliario(unidades[i]))
		ids = append(ids, unidades[i].ID)
	}

	ocupadas, err := s.ParesOcupados(ctx, ids, fechas)
	if err != nil {
		return dto.MapaDisponibilidadResponse{}, err
	}
	ocupadaEn := make(map[string]map[uuid.UUID]bool, len(fechas))
	for _, a := range ocupadas {
		f := a.Fecha.Format(formatoFecha)
		if ocupadaEn[f] == nil {
			ocupadaEn[f] = map[uuid.UUID]bool{}
		}
		ocupadaEn[f][a.MobiliarioID] = true
	}

	for _, fecha := range fechas {
		clave := fecha.Format(formatoFecha)
		resp.Fechas = append(resp.Fechas, clave)
		fila := make(map[string]bool, len(unidades))
		resumen := dto.ResumenDia{}
		for i := range unidades {
			u := &unidades[i]
			if !u.VigenteEn(fecha) {
				continue
			}
			resumen.Total++
			if ocupadaEn[clave][u.ID] {
				fila[u.ID.String()] = false
				resumen.Ocupados++
			} else {
				fila[u.ID.String()] = true
				resumen.Disponibles++
			}
		}
		if resumen.Total > 0 {
			resumen.TasaOcupacion = float64(resumen.Ocupados) / float64(resumen.Total)
		}
		resp.Disponibilidad[clave] = fila
		resp.Resumen[clave] = resumen
	}
	return resp, nil
}

func (s *disponibilidadService) Conflictos(ctx context.Context, filter dto.ConflictosFilter) ([]dto.ReservaConflicto, error) {
	fecha, err := parseFecha(filter.Fecha)
	if err != nil {
		return nil, err
	}
	ids, err := parseUUIDs(filter.MobiliarioIDs)
	if err != nil {
		return nil, err
	}
	ocupadas, err := s.ParesOcupados(ctx, ids, []time.Time{fecha})
	if err != nil {
		return nil, err
	}

	out := make([]dto.ReservaConflicto, 0, len(ocupadas))
	for _, a := range ocupadas {
		c := dto.ReservaConflicto{
			ReservaID:    a.ReservaID.String(),
			MobiliarioID: a.MobiliarioID.String(),
			Fecha:        a.Fecha.Format(formatoFecha),
		}
		if a.Mobiliario != nil {
			c.Numero = a.Mobiliario.Numero
		}
		if a.Reserva != nil {
			if a.Reserva.Cliente != nil {
				c.Cliente = a.Reserva.Cliente.NombreCompleto()
			}
			if a.Reserva.Estado != nil {
				c.Estado = a.Reserva.Estado.Codigo
			}
		}
		out = append(out, c)
	}
	return out, nil
}

func parseUUIDs(raw []string) ([]uuid.UUID, error) {
	out := make([]uuid.UUID, 0, len(raw))
	for _, r := range raw {
		id, err := uuid.Parse(r)
		if err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, nil
}
