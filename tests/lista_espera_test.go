package tests

import (
	"context"
	"testing"
	"time"

	"purobeach/internal/dto"
	"purobeach/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fechaFutura(dias int) string {
	return time.Now().UTC().AddDate(0, 0, dias).Format("2006-01-02")
}

func TestCrearEntradaDeEspera(t *testing.T) {
	e := nuevoEntorno()
	ctx := context.Background()
	e.prefs.sembrar("primera_linea")
	cliente := e.nuevoCliente("Marta")

	resp, err := e.esperaSvc.Crear(ctx, dto.CrearEsperaRequest{
		ClienteID:    cliente.ID.String(),
		Fecha:        fechaFutura(3),
		NumPersonas:  4,
		Preferencias: []string{"primera_linea"},
	})
	require.NoError(t, err)
	assert.Equal(t, model.EsperaPendiente, resp.Estado)
	assert.Equal(t, []string{"primera_linea"}, resp.Preferencias)

	// Fechas pasadas rechazadas de entrada.
	_, err = e.esperaSvc.Crear(ctx, dto.CrearEsperaRequest{
		ClienteID:   cliente.ID.String(),
		Fecha:       "2020-01-01",
		NumPersonas: 2,
	})
	assert.ErrorContains(t, err, "fecha pasada")
}

func TestListarExpiraVencidas(t *testing.T) {
	e := nuevoEntorno()
	ctx := context.Background()
	cliente := e.nuevoCliente("Marta")

	vencida := &model.ListaEspera{
		ClienteID:   cliente.ID,
		Fecha:       dia("2020-06-01"),
		NumPersonas: 2,
		Estado:      model.EsperaPendiente,
	}
	require.NoError(t, e.espera.Create(ctx, vencida))
	vigente := &model.ListaEspera{
		ClienteID:   cliente.ID,
		Fecha:       dia(fechaFutura(5)),
		NumPersonas: 2,
		Estado:      model.EsperaPendiente,
	}
	require.NoError(t, e.espera.Create(ctx, vigente))

	// El barrido de expiración corre al leer, no en segundo plano.
	out, err := e.esperaSvc.Listar(ctx, dto.EsperaFilter{})
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, model.EsperaExpirada, e.espera.entradas[vencida.ID].Estado)
	assert.Equal(t, model.EsperaPendiente, e.espera.entradas[vigente.ID].Estado)
}

func TestConvertirEsperaEnReserva(t *testing.T) {
	e := nuevoEntorno()
	ctx := context.Background()
	cliente := e.nuevoCliente("Marta")
	y1 := e.nuevaUnidad("Y1", model.TipoHamaca, 2, 100, 100)

	entrada := &model.ListaEspera{
		ClienteID:   cliente.ID,
		Fecha:       dia(fechaFutura(2)),
		NumPersonas: 2,
		Estado:      model.EsperaPendiente,
	}
	require.NoError(t, e.espera.Create(ctx, entrada))

	resp, err := e.esperaSvc.Convertir(ctx, entrada.ID, dto.ConvertirEsperaRequest{
		MobiliarioIDs: []string{y1.ID.String()},
	}, "ana")
	require.NoError(t, err)
	assert.Equal(t, model.EstadoConfirmada, resp.Reserva.Estado)

	guardada := e.espera.entradas[entrada.ID]
	assert.Equal(t, model.EsperaConvertida, guardada.Estado)
	require.NotNil(t, guardada.ReservaID)
	assert.Equal(t, resp.Reserva.ID, guardada.ReservaID.String())

	// Una entrada ya convertida no se convierte dos veces.
	_, err = e.esperaSvc.Convertir(ctx, entrada.ID, dto.ConvertirEsperaRequest{
		MobiliarioIDs: []string{y1.ID.String()},
	}, "ana")
	assert.ErrorContains(t, err, "ya no está en espera")
}

func TestConvertirConMobiliarioOcupado(t *testing.T) {
	e := nuevoEntorno()
	ctx := context.Background()
	fecha := fechaFutura(2)
	y1 := e.nuevaUnidad("Y1", model.TipoHamaca, 2, 100, 100)
	e.nuevaReserva(e.nuevoCliente("Luis"), dia(fecha), model.EstadoConfirmada, y1)

	cliente := e.nuevoCliente("Marta")
	entrada := &model.ListaEspera{
		ClienteID:   cliente.ID,
		Fecha:       dia(fecha),
		NumPersonas: 2,
		Estado:      model.EsperaPendiente,
	}
	require.NoError(t, e.espera.Create(ctx, entrada))

	_, err := e.esperaSvc.Convertir(ctx, entrada.ID, dto.ConvertirEsperaRequest{
		MobiliarioIDs: []string{y1.ID.String()},
	}, "ana")
	require.Error(t, err)
	// El fallo de la reserva no consume la entrada.
	assert.Equal(t, model.EsperaPendiente, e.espera.entradas[entrada.ID].Estado)
}

func TestCancelarEntradaDeEspera(t *testing.T) {
	e := nuevoEntorno()
	ctx := context.Background()
	cliente := e.nuevoCliente("Marta")
	entrada := &model.ListaEspera{
		ClienteID:   cliente.ID,
		Fecha:       dia(fechaFutura(2)),
		NumPersonas: 2,
		Estado:      model.EsperaPendiente,
	}
	require.NoError(t, e.espera.Create(ctx, entrada))

	require.NoError(t, e.esperaSvc.Cancelar(ctx, entrada.ID))
	assert.Equal(t, model.EsperaCancelada, e.espera.entradas[entrada.ID].Estado)

	assert.ErrorContains(t, e.esperaSvc.Cancelar(ctx, entrada.ID), "ya no está en espera")
}
