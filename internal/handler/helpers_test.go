package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"purobeach/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func respuestaDe(t *testing.T, err error) (int, map[string]any) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	writeError(c, err)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w.Code, body
}

func TestWriteErrorConflictosSon400(t *testing.T) {
	code, body := respuestaDe(t, &service.ErrConflicto{
		Detalle:    "mobiliario no disponible",
		Conflictos: []service.ConflictoOcupacion{{Numero: "Y1", Fecha: "2026-07-10", Cliente: "Ana García"}},
	})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "mobiliario no disponible", body["detail"])
	require.Len(t, body["conflictos"], 1)

	code, body = respuestaDe(t, &service.ErrTransicionInvalida{
		Desde: "completada", Hasta: "sentada",
	})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "completada", body["estado_actual"])
	assert.Equal(t, "sentada", body["estado_solicitado"])

	code, _ = respuestaDe(t, &service.ErrReservaDuplicada{Fechas: "2026-07-10 – 2026-07-10"})
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = respuestaDe(t, service.ErrMobiliarioBloqueado)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestWriteErrorNoEncontrados(t *testing.T) {
	code, _ := respuestaDe(t, service.ErrReservaNoEncontrada)
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = respuestaDe(t, gorm.ErrRecordNotFound)
	assert.Equal(t, http.StatusNotFound, code)

	code, body := respuestaDe(t, errors.New("algo salió mal"))
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "algo salió mal", body["detail"])
}
