package tests

import (
	"context"
	"testing"

	"purobeach/internal/dto"
	"purobeach/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckBulkSinPares(t *testing.T) {
	e := nuevoEntorno()
	ctx := context.Background()

	// Producto cartesiano vacío: todo disponible por vacuidad.
	resp, err := e.disponibilidadSvc.CheckBulk(ctx, dto.CheckBulkRequest{})
	require.NoError(t, err)
	assert.True(t, resp.TodoDisponible)
	assert.Empty(t, resp.NoDisponibles)
	assert.Empty(t, resp.Matriz)

	y1 := e.nuevaUnidad("Y1", model.TipoHamaca, 2, 100, 100)
	resp, err = e.disponibilidadSvc.CheckBulk(ctx, dto.CheckBulkRequest{
		MobiliarioIDs: []string{y1.ID.String()},
	})
	require.NoError(t, err)
	assert.True(t, resp.TodoDisponible)
}

func TestCheckBulkMatriz(t *testing.T) {
	e := nuevoEntorno()
	ctx := context.Background()
	y1 := e.nuevaUnidad("Y1", model.TipoHamaca, 2, 100, 100)
	y2 := e.nuevaUnidad("Y2", model.TipoHamaca, 2, 160, 100)
	e.nuevaReserva(e.nuevoCliente("Luis"), dia("2026-07-10"), model.EstadoConfirmada, y1)

	resp, err := e.disponibilidadSvc.CheckBulk(ctx, dto.CheckBulkRequest{
		MobiliarioIDs: []string{y1.ID.String(), y2.ID.String()},
		Fechas:        []string{"2026-07-10", "2026-07-11"},
	})
	require.NoError(t, err)

	assert.False(t, resp.TodoDisponible)
	require.Len(t, resp.NoDisponibles, 1)
	assert.Equal(t, y1.ID.String(), resp.NoDisponibles[0].MobiliarioID)
	assert.Equal(t, "2026-07-10", resp.NoDisponibles[0].Fecha)

	assert.False(t, resp.Matriz["2026-07-10"][y1.ID.String()])
	assert.True(t, resp.Matriz["2026-07-10"][y2.ID.String()])
	assert.True(t, resp.Matriz["2026-07-11"][y1.ID.String()])
	assert.True(t, resp.Matriz["2026-07-11"][y2.ID.String()])
}

func TestCheckBulkIgnoraEstadosLiberadores(t *testing.T) {
	e := nuevoEntorno()
	ctx := context.Background()
	y1 := e.nuevaUnidad("Y1", model.TipoHamaca, 2, 100, 100)
	e.nuevaReserva(e.nuevoCliente("Luis"), dia("2026-07-10"), model.EstadoNoShow, y1)

	resp, err := e.disponibilidadSvc.CheckBulk(ctx, dto.CheckBulkRequest{
		MobiliarioIDs: []string{y1.ID.String()},
		Fechas:        []string{"2026-07-10"},
	})
	require.NoError(t, err)
	assert.True(t, resp.TodoDisponible)
}

func TestMapaDisponibilidad(t *testing.T) {
	e := nuevoEntorno()
	ctx := context.Background()
	y1 := e.nuevaUnidad("Y1", model.TipoHamaca, 2, 100, 100)
	e.nuevaUnidad("Y2", model.TipoHamaca, 2, 160, 100)
	e.nuevaReserva(e.nuevoCliente("Luis"), dia("2026-07-10"), model.EstadoConfirmada, y1)

	resp, err := e.disponibilidadSvc.Mapa(ctx, dto.DisponibilidadFilter{
		FechaDesde: "2026-07-10",
		FechaHasta: "2026-07-11",
	})
	require.NoError(t, err)

	assert.Len(t, resp.Mobiliario, 2)
	assert.Equal(t, []string{"2026-07-10", "2026-07-11"}, resp.Fechas)

	assert.False(t, resp.Disponibilidad["2026-07-10"][y1.ID.String()])
	assert.True(t, resp.Disponibilidad["2026-07-11"][y1.ID.String()])

	dia1 := resp.Resumen["2026-07-10"]
	assert.Equal(t, 2, dia1.Total)
	assert.Equal(t, 1, dia1.Ocupados)
	assert.InDelta(t, 0.5, dia1.TasaOcupacion, 1e-9)

	dia2 := resp.Resumen["2026-07-11"]
	assert.Equal(t, 0, dia2.Ocupados)
	assert.InDelta(t, 0.0, dia2.TasaOcupacion, 1e-9)
}

func TestMapaRespetaVigencia(t *testing.T) {
	e := nuevoEntorno()
	ctx := context.Background()
	e.nuevaUnidad("Y1", model.TipoHamaca, 2, 100, 100)
	// Unidad temporal que se retira a mitad del rango.
	temporal := e.nuevaUnidad("T1", model.TipoHamaca, 2, 160, 100)
	hasta := dia("2026-07-10")
	temporal.ValidoHasta = &hasta

	resp, err := e.disponibilidadSvc.Mapa(ctx, dto.DisponibilidadFilter{
		FechaDesde: "2026-07-10",
		FechaHasta: "2026-07-11",
	})
	require.NoError(t, err)

	_, enDia1 := resp.Disponibilidad["2026-07-10"][temporal.ID.String()]
	_, enDia2 := resp.Disponibilidad["2026-07-11"][temporal.ID.String()]
	assert.True(t, enDia1)
	assert.False(t, enDia2)
	assert.Equal(t, 2, resp.Resumen["2026-07-10"].Total)
	assert.Equal(t, 1, resp.Resumen["2026-07-11"].Total)
}

func TestMapaRangoInvalido(t *testing.T) {
	e := nuevoEntorno()
	_, err := e.disponibilidadSvc.Mapa(context.Background(), dto.DisponibilidadFilter{
		FechaDesde: "2026-07-11",
		FechaHasta: "2026-07-10",
	})
	assert.ErrorContains(t, err, "fecha_hasta")
}

func TestConflictosConDetalle(t *testing.T) {
	e := nuevoEntorno()
	ctx := context.Background()
	fecha := dia("2026-07-10")
	y1 := e.nuevaUnidad("Y1", model.TipoHamaca, 2, 100, 100)
	ocupante := e.nuevaReserva(e.nuevoCliente("Luis"), fecha, model.EstadoConfirmada, y1)

	out, err := e.disponibilidadSvc.Conflictos(ctx, dto.ConflictosFilter{
		Fecha:         "2026-07-10",
		MobiliarioIDs: []string{y1.ID.String()},
	})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, ocupante.ID.String(), out[0].ReservaID)
	assert.Equal(t, "Y1", out[0].Numero)
	assert.Equal(t, "Luis", out[0].Cliente)
	assert.Equal(t, model.EstadoConfirmada, out[0].Estado)
}
