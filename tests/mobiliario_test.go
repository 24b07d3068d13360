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

func TestSiguienteNumero(t *testing.T) {
	e := nuevoEntorno()
	ctx := context.Background()
	e.nuevaUnidad("Y1", model.TipoHamaca, 2, 100, 100)
	e.nuevaUnidad("Y5", model.TipoHamaca, 2, 160, 100)
	e.nuevaUnidad("Y12", model.TipoHamaca, 2, 220, 100)
	// Sufijo no numérico: se ignora al calcular el siguiente.
	e.nuevaUnidad("Y7B", model.TipoHamaca, 2, 280, 100)
	// Las unidades retiradas conservan su número y siguen contando.
	retirada := e.nuevaUnidad("Y20", model.TipoHamaca, 2, 340, 100)
	retirada.Activo = false

	resp, err := e.mobiliarioSvc.SiguienteNumero(ctx, "y")
	require.NoError(t, err)
	assert.Equal(t, "Y", resp.Prefijo)
	assert.Equal(t, "Y21", resp.Numero)
}

func TestSiguienteNumeroPrefijoNuevo(t *testing.T) {
	e := nuevoEntorno()
	resp, err := e.mobiliarioSvc.SiguienteNumero(context.Background(), "B")
	require.NoError(t, err)
	assert.Equal(t, "B1", resp.Numero)

	_, err = e.mobiliarioSvc.SiguienteNumero(context.Background(), "  ")
	assert.ErrorContains(t, err, "prefijo")
}

func TestCrearMobiliario(t *testing.T) {
	e := nuevoEntorno()
	ctx := context.Background()
	e.prefs.sembrar("sombra")

	resp, err := e.mobiliarioSvc.Crear(ctx, dto.CrearMobiliarioRequest{
		Numero:          "B1",
		ZonaID:          e.zona.ID.String(),
		Tipo:            model.TipoBalinesa,
		Capacidad:       4,
		PosX:            100,
		PosY:            300,
		Caracteristicas: []string{"sombra"},
	})
	require.NoError(t, err)
	assert.True(t, resp.Activo)
	assert.Equal(t, []string{"sombra"}, resp.Caracteristicas)

	// Número duplicado.
	_, err = e.mobiliarioSvc.Crear(ctx, dto.CrearMobiliarioRequest{
		Numero:    "B1",
		ZonaID:    e.zona.ID.String(),
		Tipo:      model.TipoBalinesa,
		Capacidad: 4,
	})
	assert.ErrorContains(t, err, "ya existe")

	// Zona inexistente.
	_, err = e.mobiliarioSvc.Crear(ctx, dto.CrearMobiliarioRequest{
		Numero:    "B2",
		ZonaID:    mustUUIDString(),
		Tipo:      model.TipoBalinesa,
		Capacidad: 4,
	})
	assert.ErrorIs(t, err, service.ErrZonaNoEncontrada)
}

func TestEliminarMobiliarioConReservasFuturas(t *testing.T) {
	e := nuevoEntorno()
	ctx := context.Background()
	y1 := e.nuevaUnidad("Y1", model.TipoHamaca, 2, 100, 100)
	futuro := dia("2030-01-01")
	e.nuevaReserva(e.nuevoCliente("Marta"), futuro, model.EstadoConfirmada, y1)

	err := e.mobiliarioSvc.Eliminar(ctx, y1.ID)
	assert.ErrorContains(t, err, "reservas futuras")
	assert.True(t, e.mobiliario.unidades[y1.ID].Activo)
}

func TestEliminarMobiliarioLibre(t *testing.T) {
	e := nuevoEntorno()
	ctx := context.Background()
	y1 := e.nuevaUnidad("Y1", model.TipoHamaca, 2, 100, 100)

	require.NoError(t, e.mobiliarioSvc.Eliminar(ctx, y1.ID))
	assert.False(t, e.mobiliario.unidades[y1.ID].Activo)
}

func TestActualizarMobiliarioVigencia(t *testing.T) {
	e := nuevoEntorno()
	ctx := context.Background()
	y1 := e.nuevaUnidad("Y1", model.TipoHamaca, 2, 100, 100)

	desde := "2026-06-01"
	hasta := "2026-09-30"
	resp, err := e.mobiliarioSvc.Actualizar(ctx, y1.ID, dto.ActualizarMobiliarioRequest{
		ValidoDesde: &desde,
		ValidoHasta: &hasta,
	})
	require.NoError(t, err)
	require.NotNil(t, resp.ValidoDesde)
	assert.Equal(t, "2026-06-01", *resp.ValidoDesde)

	guardada := e.mobiliario.unidades[y1.ID]
	assert.False(t, guardada.VigenteEn(dia("2026-05-31")))
	assert.True(t, guardada.VigenteEn(dia("2026-07-15")))
	assert.False(t, guardada.VigenteEn(dia("2026-10-01")))
}
