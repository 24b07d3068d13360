package service

import (
	"context"
	"sort"
	"time"

	"purobeach/internal/dto"
	"purobeach/internal/model"
	"purobeach/internal/repository"

	"github.com/google/uuid"
)

// Fixed scorer weights. The front-end floor map renders the combined score
// directly, so these must not drift.
const (
	pesoContiguidad  = 0.40
	pesoPreferencias = 0.35
	pesoCapacidad    = 0.25

	// toleranciaFilaPx clusters furniture into spatial rows by y-position.
	toleranciaFilaPx = 40.0
)

// limitesCapacidad are hard per-type bounds on party size per unit. Furniture
// whose type cannot seat the requested share is excluded outright.
var limitesCapacidad = map[string][2]int{
	model.TipoHamaca:   {1, 3},
	model.TipoBalinesa: {2, 8},
	model.TipoCamaVIP:  {2, 4},
	model.TipoMesa:     {2, 6},
}

// SugerenciaService ranks furniture for a date, party size and preference set:
// 40% spatial contiguity, 35% preference match, 25% capacity fit.
type SugerenciaService interface {
	Sugerir(ctx context.Context, filter dto.SugerenciaFilter) ([]dto.SugerenciaResponse, error)
}

type sugerenciaService struct {
	mobiliarioRepo  repository.MobiliarioRepository
	asignacionRepo  repository.AsignacionRepository
	estadoRepo      repository.EstadoRepository
	preferenciaRepo repository.PreferenciaRepository
}

func NewSugerenciaService(
	mobiliarioRepo repository.MobiliarioRepository,
	asignacionRepo repository.AsignacionRepository,
	estadoRepo repository.EstadoRepository,
	preferenciaRepo repository.PreferenciaRepository,
) SugerenciaService {
	return &sugerenciaService{
		mobiliarioRepo:  mobiliarioRepo,
		asignacionRepo:  asignacionRepo,
		estadoRepo:      estadoRepo,
		preferenciaRepo: preferenciaRepo,
	}
}

func (s *sugerenciaService) Sugerir(ctx context.Context, filter dto.SugerenciaFilter) ([]dto.SugerenciaResponse, error) {
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
	numUnidades := filter.NumUnidades
	if numUnidades < 1 {
		numUnidades = 1
	}
	numPersonas := filter.NumPersonas
	if numPersonas < 1 {
		numPersonas = 1
	}
	// Party size each unit has to carry when the group splits evenly.
	porUnidad := (numPersonas + numUnidades - 1) / numUnidades

	unidades, err := s.mobiliarioRepo.ListActivos(ctx, fecha, zonaID)
	if err != nil {
		return nil, err
	}

	// Hard capacity bounds filter first.
	candidatas := unidades[:0]
	for i := range unidades {
		lim, ok := limitesCapacidad[unidades[i].Tipo]
		if ok && (porUnidad < lim[0] || porUnidad > lim[1]) {
			continue
		}
		candidatas = append(candidatas, unidades[i])
	}

	ids := make([]uuid.UUID, 0, len(candidatas))
	for i := range candidatas {
		ids = append(ids, candidatas[i].ID)
	}
	liberadores, err := s.estadoRepo.IDsLiberadores(ctx)
	if err != nil {
		return nil, err
	}
	ocupadas, err := s.asignacionRepo.OcupadasPorPares(ctx, ids, []time.Time{fecha}, liberadores)
	if err != nil {
		return nil, err
	}
	ocupada := make(map[uuid.UUID]bool, len(ocupadas))
	for _, a := range ocupadas {
		ocupada[a.MobiliarioID] = true
	}

	deseadas, err := caracteristicasDeseadas(ctx, s.preferenciaRepo, filter.Preferencias)
	if err != nil {
		return nil, err
	}

	contiguidad := puntuarContiguidad(candidatas, ocupada, numUnidades)

	out := make([]dto.SugerenciaResponse, 0, len(candidatas))
	for i := range candidatas {
		u := &candidatas[i]
		coincidencia, coincidentes := puntuarPreferencias(u, deseadas)
		capacidad := puntuarCapacidad(u.Capacidad, porUnidad)
		cont := contiguidad[u.ID]
		out = append(out, dto.SugerenciaResponse{
			Mobiliario:               mapMobiliario(*u),
			Disponible:               !ocupada[u.ID],
			Puntuacion:               pesoContiguidad*cont + pesoPreferencias*coincidencia + pesoCapacidad*capacidad,
			Contiguidad:              cont,
			Coincidencia:             coincidencia,
			Capacidad:                capacidad,
			PreferenciasCoincidentes: coincidentes,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Disponible != out[j].Disponible {
			return out[i].Disponible
		}
		if out[i].Puntuacion != out[j].Puntuacion {
			return out[i].Puntuacion > out[j].Puntuacion
		}
		return out[i].Mobiliario.Numero < out[j].Mobiliario.Numero
	})
	return out, nil
}

// puntuarContiguidad scores 1 for units that belong to a run of numUnidades
// free units lying in the same spatial row with no occupied unit between them,
// 0 otherwise. Rows cluster by y-position within toleranciaFilaPx; order
// within a row follows x-position.
func puntuarContiguidad(unidades []model.Mobiliario, ocupada map[uuid.UUID]bool, numUnidades int) map[uuid.UUID]float64 {
	scores := make(map[uuid.UUID]float64, len(unidades))
	if len(unidades) == 0 {
		return scores
	}
	if numUnidades <= 1 {
		for i := range unidades {
			scores[unidades[i].ID] = 1
		}
		return scores
	}

	orden := make([]*model.Mobiliario, 0, len(unidades))
	for i := range unidades {
		orden = append(orden, &unidades[i])
	}
	sort.SliceStable(orden, func(i, j int) bool {
		if orden[i].PosY != orden[j].PosY {
			return orden[i].PosY < orden[j].PosY
		}
		return orden[i].PosX < orden[j].PosX
	})

	// Cluster into rows, then scan each row for free runs.
	var fila []*model.Mobiliario
	filaY := orden[0].PosY
	cerrar := func() {
		sort.SliceStable(fila, func(i, j int) bool { return fila[i].PosX < fila[j].PosX })
		marcarRuns(fila, ocupada, numUnidades, scores)
		fila = fila[:0]
	}
	for _, u := range orden {
		if u.PosY-filaY > toleranciaFilaPx {
			cerrar()
			filaY = u.PosY
		}
		fila = append(fila, u)
	}
	cerrar()
	return scores
}

// marcarRuns gives score 1 to every unit inside a window of n consecutive free
// units within the row. A window broken by an occupied unit does not count.
func marcarRuns(fila []*model.Mobiliario, ocupada map[uuid.UUID]bool, n int, scores map[uuid.UUID]float64) {
	run := 0
	for i, u := range fila {
		if ocupada[u.ID] {
			run = 0
			continue
		}
		run++
		if run >= n {
			for j := i - n + 1; j <= i; j++ {
				scores[fila[j].ID] = 1
			}
		}
	}
}

// puntuarCapacidad scores how close a unit's capacity is to the requested
// share, penalizing both under- and over-capacity linearly.
func puntuarCapacidad(capacidad, porUnidad int) float64 {
	if capacidad <= 0 {
		return 0
	}
	diff := capacidad - porUnidad
	if diff < 0 {
		diff = -diff
	}
	mayor := capacidad
	if porUnidad > mayor {
		mayor = porUnidad
	}
	return 1 - float64(diff)/float64(mayor)
}
