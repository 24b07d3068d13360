package tests

import (
	"context"
	"testing"

	"purobeach/internal/dto"
	"purobeach/internal/model"
	"purobeach/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCrearReservaMultiDia(t *testing.T) {
	e := nuevoEntorno()
	ctx := context.Background()
	cliente := e.nuevoCliente("Marta")
	y1 := e.nuevaUnidad("Y1", model.TipoHamaca, 2, 100, 100)
	y2 := e.nuevaUnidad("Y2", model.TipoHamaca, 2, 160, 100)

	resp, err := e.reservaSvc.Crear(ctx, dto.CrearReservaRequest{
		ClienteID:   cliente.ID.String(),
		NumPersonas: 2,
		Dias: []dto.DiaReservaRequest{
			// Orden invertido a propósito: el padre debe ser el primer día.
			{Fecha: "2026-07-11", MobiliarioIDs: []string{y2.ID.String()}},
			{Fecha: "2026-07-10", MobiliarioIDs: []string{y1.ID.String(), y2.ID.String()}},
		},
	}, "ana")
	require.NoError(t, err)

	assert.Equal(t, "2026-07-10", resp.Reserva.FechaInicio)
	assert.Equal(t, model.EstadoConfirmada, resp.Reserva.Estado)
	assert.Nil(t, resp.Reserva.PadreID)
	require.Len(t, resp.Hijas, 1)
	assert.Equal(t, "2026-07-11", resp.Hijas[0].FechaInicio)
	require.NotNil(t, resp.Hijas[0].PadreID)
	assert.Equal(t, resp.Reserva.ID, *resp.Hijas[0].PadreID)

	// Dos unidades el primer día, una el segundo.
	assert.Len(t, resp.Reserva.Asignaciones, 2)
	assert.Len(t, resp.Hijas[0].Asignaciones, 1)
	assert.Len(t, e.asigs.rows, 3)

	// Cada reserva del grupo arranca con su fila de historial activa.
	activos, _ := e.reservas.HistorialActivo(ctx, mustUUID(t, resp.Reserva.ID))
	assert.Len(t, activos, 1)
}

func TestCrearReservaConMobiliarioOcupado(t *testing.T) {
	e := nuevoEntorno()
	ctx := context.Background()
	y1 := e.nuevaUnidad("Y1", model.TipoHamaca, 2, 100, 100)
	e.nuevaReserva(e.nuevoCliente("Luis"), dia("2026-07-11"), model.EstadoConfirmada, y1)

	_, err := e.reservaSvc.Crear(ctx, dto.CrearReservaRequest{
		ClienteID:   e.nuevoCliente("Marta").ID.String(),
		NumPersonas: 2,
		Dias: []dto.DiaReservaRequest{
			{Fecha: "2026-07-10", MobiliarioIDs: []string{y1.ID.String()}},
			{Fecha: "2026-07-11", MobiliarioIDs: []string{y1.ID.String()}},
		},
	}, "ana")

	var cErr *service.ErrConflicto
	require.ErrorAs(t, err, &cErr)
	assert.Equal(t, "mobiliario no disponible el 2026-07-11", cErr.Detalle)
	require.Len(t, cErr.Conflictos, 1)
	assert.Equal(t, "Y1", cErr.Conflictos[0].Numero)
	assert.Equal(t, "Luis", cErr.Conflictos[0].Cliente)

	// Todo o nada: el día libre tampoco se escribió.
	assert.Len(t, e.reservas.reservas, 1)
	assert.Len(t, e.asigs.rows, 1)
}

func TestCrearReservaOcupadaPorCancelada(t *testing.T) {
	e := nuevoEntorno()
	ctx := context.Background()
	y1 := e.nuevaUnidad("Y1", model.TipoHamaca, 2, 100, 100)
	// Una reserva cancelada no bloquea el mobiliario.
	e.nuevaReserva(e.nuevoCliente("Luis"), dia("2026-07-10"), model.EstadoCancelada, y1)

	_, err := e.reservaSvc.Crear(ctx, dto.CrearReservaRequest{
		ClienteID:   e.nuevoCliente("Marta").ID.String(),
		NumPersonas: 2,
		Dias:        []dto.DiaReservaRequest{{Fecha: "2026-07-10", MobiliarioIDs: []string{y1.ID.String()}}},
	}, "ana")
	require.NoError(t, err)
}

func TestCrearReservaDuplicada(t *testing.T) {
	e := nuevoEntorno()
	ctx := context.Background()
	cliente := e.nuevoCliente("Marta")
	y1 := e.nuevaUnidad("Y1", model.TipoHamaca, 2, 100, 100)
	y2 := e.nuevaUnidad("Y2", model.TipoHamaca, 2, 160, 100)
	existente := e.nuevaReserva(cliente, dia("2026-07-10"), model.EstadoConfirmada, y1)

	req := dto.CrearReservaRequest{
		ClienteID:   cliente.ID.String(),
		NumPersonas: 2,
		Dias:        []dto.DiaReservaRequest{{Fecha: "2026-07-10", MobiliarioIDs: []string{y2.ID.String()}}},
	}
	_, err := e.reservaSvc.Crear(ctx, req, "ana")
	var dErr *service.ErrReservaDuplicada
	require.ErrorAs(t, err, &dErr)
	assert.Equal(t, existente.ID.String(), dErr.ReservaID)

	// La anulación explícita del guard permite la segunda reserva.
	req.PermitirDuplicado = true
	_, err = e.reservaSvc.Crear(ctx, req, "ana")
	require.NoError(t, err)
}

func TestCrearReservaNoContiguaNoEsDuplicado(t *testing.T) {
	e := nuevoEntorno()
	ctx := context.Background()
	cliente := e.nuevoCliente("Marta")
	y1 := e.nuevaUnidad("Y1", model.TipoHamaca, 2, 100, 100)
	y2 := e.nuevaUnidad("Y2", model.TipoHamaca, 2, 160, 100)
	e.nuevaReserva(cliente, dia("2026-07-05"), model.EstadoConfirmada, y1)

	// El guard de duplicados compara fecha a fecha: un grupo no contiguo
	// que rodea el día ya reservado sin incluirlo es válido.
	_, err := e.reservaSvc.Crear(ctx, dto.CrearReservaRequest{
		ClienteID:   cliente.ID.String(),
		NumPersonas: 2,
		Dias: []dto.DiaReservaRequest{
			{Fecha: "2026-07-01", MobiliarioIDs: []string{y2.ID.String()}},
			{Fecha: "2026-07-10", MobiliarioIDs: []string{y2.ID.String()}},
		},
	}, "ana")
	require.NoError(t, err)
}

func TestCrearReservaValidaciones(t *testing.T) {
	e := nuevoEntorno()
	ctx := context.Background()
	cliente := e.nuevoCliente("Marta")
	y1 := e.nuevaUnidad("Y1", model.TipoHamaca, 2, 100, 100)

	// Fecha repetida dentro de la solicitud.
	_, err := e.reservaSvc.Crear(ctx, dto.CrearReservaRequest{
		ClienteID:   cliente.ID.String(),
		NumPersonas: 2,
		Dias: []dto.DiaReservaRequest{
			{Fecha: "2026-07-10", MobiliarioIDs: []string{y1.ID.String()}},
			{Fecha: "2026-07-10", MobiliarioIDs: []string{y1.ID.String()}},
		},
	}, "ana")
	assert.ErrorContains(t, err, "fecha duplicada")

	// Mobiliario inexistente.
	_, err = e.reservaSvc.Crear(ctx, dto.CrearReservaRequest{
		ClienteID:   cliente.ID.String(),
		NumPersonas: 2,
		Dias:        []dto.DiaReservaRequest{{Fecha: "2026-07-10", MobiliarioIDs: []string{mustUUIDString()}}},
	}, "ana")
	assert.ErrorIs(t, err, service.ErrMobiliarioNoEncontrado)

	// Cliente inexistente.
	_, err = e.reservaSvc.Crear(ctx, dto.CrearReservaRequest{
		ClienteID:   mustUUIDString(),
		NumPersonas: 2,
		Dias:        []dto.DiaReservaRequest{{Fecha: "2026-07-10", MobiliarioIDs: []string{y1.ID.String()}}},
	}, "ana")
	assert.ErrorIs(t, err, service.ErrClienteNoEncontrado)
}

func TestCancelarGrupoCompleto(t *testing.T) {
	e := nuevoEntorno()
	ctx := context.Background()
	resp := crearGrupo(t, e, "2026-07-10", "2026-07-11")

	padreID := mustUUID(t, resp.Reserva.ID)
	require.NoError(t, e.reservaSvc.Cancelar(ctx, padreID, dto.CancelarReservaRequest{Motivo: "cliente avisa"}, "ana"))

	cancelada := e.estados.porCodigo(model.EstadoCancelada)
	assert.Equal(t, cancelada.ID, e.reservas.reservas[padreID].EstadoID)
	assert.Equal(t, cancelada.ID, e.reservas.reservas[mustUUID(t, resp.Hijas[0].ID)].EstadoID)
	for _, row := range e.asigs.rows {
		assert.False(t, row.Activa)
	}
}

func TestCancelarSoloLaHija(t *testing.T) {
	e := nuevoEntorno()
	ctx := context.Background()
	resp := crearGrupo(t, e, "2026-07-10", "2026-07-11")

	hijaID := mustUUID(t, resp.Hijas[0].ID)
	require.NoError(t, e.reservaSvc.Cancelar(ctx, hijaID, dto.CancelarReservaRequest{Motivo: "solo el segundo día"}, "ana"))

	cancelada := e.estados.porCodigo(model.EstadoCancelada)
	confirmada := e.estados.porCodigo(model.EstadoConfirmada)
	assert.Equal(t, cancelada.ID, e.reservas.reservas[hijaID].EstadoID)
	assert.Equal(t, confirmada.ID, e.reservas.reservas[mustUUID(t, resp.Reserva.ID)].EstadoID)
}

func TestCancelarSaltaEstadosTerminales(t *testing.T) {
	e := nuevoEntorno()
	ctx := context.Background()
	resp := crearGrupo(t, e, "2026-07-10", "2026-07-11")

	// La hija ya terminó su ciclo; sin bypass la cancelación del grupo no la toca.
	hijaID := mustUUID(t, resp.Hijas[0].ID)
	completada := e.estados.porCodigo(model.EstadoCompletada)
	e.reservas.reservas[hijaID].EstadoID = completada.ID

	padreID := mustUUID(t, resp.Reserva.ID)
	require.NoError(t, e.reservaSvc.Cancelar(ctx, padreID, dto.CancelarReservaRequest{Motivo: "cliente avisa"}, "ana"))

	cancelada := e.estados.porCodigo(model.EstadoCancelada)
	assert.Equal(t, cancelada.ID, e.reservas.reservas[padreID].EstadoID)
	assert.Equal(t, completada.ID, e.reservas.reservas[hijaID].EstadoID)
}

func TestActualizarPropagaALasHijas(t *testing.T) {
	e := nuevoEntorno()
	ctx := context.Background()
	resp := crearGrupo(t, e, "2026-07-10", "2026-07-11")

	personas := 5
	_, err := e.reservaSvc.Actualizar(ctx, mustUUID(t, resp.Reserva.ID), dto.ActualizarReservaRequest{NumPersonas: &personas}, "ana")
	require.NoError(t, err)

	assert.Equal(t, 5, e.reservas.reservas[mustUUID(t, resp.Reserva.ID)].NumPersonas)
	assert.Equal(t, 5, e.reservas.reservas[mustUUID(t, resp.Hijas[0].ID)].NumPersonas)
}

func TestActualizarSoloNotasNoTocaHijas(t *testing.T) {
	e := nuevoEntorno()
	ctx := context.Background()
	resp := crearGrupo(t, e, "2026-07-10", "2026-07-11")

	notas := "mesa cerca del bar"
	_, err := e.reservaSvc.Actualizar(ctx, mustUUID(t, resp.Reserva.ID), dto.ActualizarReservaRequest{Notas: &notas}, "ana")
	require.NoError(t, err)

	require.NotNil(t, e.reservas.reservas[mustUUID(t, resp.Reserva.ID)].Notas)
	assert.Nil(t, e.reservas.reservas[mustUUID(t, resp.Hijas[0].ID)].Notas)
}

func TestHistorialDeReserva(t *testing.T) {
	e := nuevoEntorno()
	ctx := context.Background()
	cliente := e.nuevoCliente("Marta")
	res := e.nuevaReserva(cliente, dia("2026-07-10"), model.EstadoConfirmada)
	require.NoError(t, e.estadoSvc.CambiarEstado(ctx, res.ID, model.EstadoSentada, "ana", nil, false))

	historial, err := e.reservaSvc.Historial(ctx, res.ID)
	require.NoError(t, err)
	require.Len(t, historial, 2)

	var activos int
	for _, h := range historial {
		if h.Activo {
			activos++
			assert.Equal(t, model.EstadoSentada, h.Estado)
		}
	}
	assert.Equal(t, 1, activos)
}

// ── Helpers ──────────────────────────────────────────────────────────────────

func crearGrupo(t *testing.T, e *entorno, fechas ...string) dto.CrearReservaResponse {
	t.Helper()
	cliente := e.nuevoCliente("Marta")
	y1 := e.nuevaUnidad("G1", model.TipoHamaca, 2, 100, 100)
	dias := make([]dto.DiaReservaRequest, 0, len(fechas))
	for _, f := range fechas {
		dias = append(dias, dto.DiaReservaRequest{Fecha: f, MobiliarioIDs: []string{y1.ID.String()}})
	}
	resp, err := e.reservaSvc.Crear(context.Background(), dto.CrearReservaRequest{
		ClienteID:   cliente.ID.String(),
		NumPersonas: 2,
		Dias:        dias,
	}, "ana")
	require.NoError(t, err)
	return resp
}
