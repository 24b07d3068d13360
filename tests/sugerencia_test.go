package tests

import (
	"context"
	"testing"

	"purobeach/internal/dto"
	"purobeach/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSugerirPonderaciones(t *testing.T) {
	e := nuevoEntorno()
	ctx := context.Background()
	e.prefs.sembrar("sombra", "vista_mar")

	// Ajuste perfecto: capacidad exacta y todas las preferencias.
	y1 := e.nuevaUnidad("Y1", model.TipoHamaca, 2, 100, 100)
	y1.Caracteristicas = []model.Caracteristica{e.prefs.caracteristica("sombra"), e.prefs.caracteristica("vista_mar")}
	// Sin preferencias y con capacidad sobrada.
	e.nuevaUnidad("Y2", model.TipoHamaca, 3, 160, 100)

	out, err := e.sugerenciaSvc.Sugerir(ctx, dto.SugerenciaFilter{
		Fecha:        "2026-07-10",
		NumPersonas:  2,
		NumUnidades:  1,
		Preferencias: []string{"sombra", "vista_mar"},
	})
	require.NoError(t, err)
	require.Len(t, out, 2)

	assert.Equal(t, "Y1", out[0].Mobiliario.Numero)
	assert.InDelta(t, 1.0, out[0].Puntuacion, 1e-9)
	assert.InDelta(t, 1.0, out[0].Contiguidad, 1e-9)
	assert.InDelta(t, 1.0, out[0].Coincidencia, 1e-9)
	assert.InDelta(t, 1.0, out[0].Capacidad, 1e-9)

	// Y2: 0.40·1 + 0.35·0 + 0.25·(1 − 1/3)
	assert.Equal(t, "Y2", out[1].Mobiliario.Numero)
	assert.InDelta(t, 0.0, out[1].Coincidencia, 1e-9)
	assert.InDelta(t, 2.0/3.0, out[1].Capacidad, 1e-9)
	assert.InDelta(t, 0.4+0.25*2.0/3.0, out[1].Puntuacion, 1e-9)
}

func TestSugerirLimitesDeCapacidad(t *testing.T) {
	e := nuevoEntorno()
	ctx := context.Background()
	e.nuevaUnidad("Y1", model.TipoHamaca, 2, 100, 100)
	e.nuevaUnidad("B1", model.TipoBalinesa, 6, 100, 300)
	e.nuevaUnidad("V1", model.TipoCamaVIP, 3, 200, 300)
	e.nuevaUnidad("M1", model.TipoMesa, 6, 300, 300)

	// 5 personas en una sola unidad: hamaca (máx 3) y cama VIP (máx 4) quedan
	// fuera del resultado, no solo penalizadas.
	out, err := e.sugerenciaSvc.Sugerir(ctx, dto.SugerenciaFilter{
		Fecha:       "2026-07-10",
		NumPersonas: 5,
		NumUnidades: 1,
	})
	require.NoError(t, err)
	require.Len(t, out, 2)
	numeros := []string{out[0].Mobiliario.Numero, out[1].Mobiliario.Numero}
	assert.ElementsMatch(t, []string{"B1", "M1"}, numeros)
}

func TestSugerirRepartoEntreUnidades(t *testing.T) {
	e := nuevoEntorno()
	ctx := context.Background()
	e.nuevaUnidad("Y1", model.TipoHamaca, 2, 100, 100)

	// 6 personas en 2 unidades → 3 por unidad: la hamaca sigue siendo válida.
	out, err := e.sugerenciaSvc.Sugerir(ctx, dto.SugerenciaFilter{
		Fecha:       "2026-07-10",
		NumPersonas: 6,
		NumUnidades: 2,
	})
	require.NoError(t, err)
	assert.Len(t, out, 1)
}

func TestSugerirContiguidad(t *testing.T) {
	e := nuevoEntorno()
	ctx := context.Background()
	e.nuevaUnidad("Y1", model.TipoHamaca, 2, 100, 100)
	y2 := e.nuevaUnidad("Y2", model.TipoHamaca, 2, 160, 100)
	// Misma fila: la tolerancia vertical admite hasta 40px de desviación.
	e.nuevaUnidad("Y3", model.TipoHamaca, 2, 220, 130)
	e.nuevaUnidad("Y4", model.TipoHamaca, 2, 280, 100)
	e.nuevaReserva(e.nuevoCliente("Luis"), dia("2026-07-10"), model.EstadoConfirmada, y2)

	out, err := e.sugerenciaSvc.Sugerir(ctx, dto.SugerenciaFilter{
		Fecha:       "2026-07-10",
		NumPersonas: 2,
		NumUnidades: 2,
	})
	require.NoError(t, err)
	require.Len(t, out, 4)

	porNumero := map[string]dto.SugerenciaResponse{}
	for _, s := range out {
		porNumero[s.Mobiliario.Numero] = s
	}

	// Y2 ocupada corta la fila: solo Y3–Y4 forman un hueco de dos unidades.
	assert.InDelta(t, 0.0, porNumero["Y1"].Contiguidad, 1e-9)
	assert.InDelta(t, 1.0, porNumero["Y3"].Contiguidad, 1e-9)
	assert.InDelta(t, 1.0, porNumero["Y4"].Contiguidad, 1e-9)
	assert.False(t, porNumero["Y2"].Disponible)

	// Orden: disponibles por puntuación, la ocupada al final.
	assert.Equal(t, "Y3", out[0].Mobiliario.Numero)
	assert.Equal(t, "Y4", out[1].Mobiliario.Numero)
	assert.Equal(t, "Y1", out[2].Mobiliario.Numero)
	assert.Equal(t, "Y2", out[3].Mobiliario.Numero)
}

func TestSugerirFilasSeparadas(t *testing.T) {
	e := nuevoEntorno()
	ctx := context.Background()
	// Adyacentes en x pero a más de 40px en y: filas distintas, sin hueco de 2.
	e.nuevaUnidad("Y1", model.TipoHamaca, 2, 100, 100)
	e.nuevaUnidad("Y2", model.TipoHamaca, 2, 160, 200)

	out, err := e.sugerenciaSvc.Sugerir(ctx, dto.SugerenciaFilter{
		Fecha:       "2026-07-10",
		NumPersonas: 2,
		NumUnidades: 2,
	})
	require.NoError(t, err)
	for _, s := range out {
		assert.InDelta(t, 0.0, s.Contiguidad, 1e-9)
	}
}
