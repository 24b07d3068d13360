package handler

import (
	"net/http"

	"purobeach/internal/dto"
	"purobeach/internal/service"

	"github.com/gin-gonic/gin"
)

type SugerenciasHandler struct {
	svc          service.SugerenciaService
	asignaciones service.AsignacionService
}

func NewSugerenciasHandler(svc service.SugerenciaService, asignaciones service.AsignacionService) *SugerenciasHandler {
	return &SugerenciasHandler{svc: svc, asignaciones: asignaciones}
}

// Sugerir godoc
// @Summary      Sugerir mobiliario
// @Description  Puntúa las unidades libres de la fecha por contigüidad, preferencias y capacidad, y las devuelve ordenadas.
// @Tags         sugerencias
// @Produce      json
// @Security     BearerAuth
// @Param        fecha         query string   true  "Fecha YYYY-MM-DD"
// @Param        num_personas  query int      false "Personas (default 2)"
// @Param        num_unidades  query int      false "Unidades deseadas (default 1)"
// @Param        preferencias  query []string false "Códigos de preferencia"
// @Param        zona_id       query string   false "UUID de zona"
// @Success      200 {array} dto.SugerenciaResponse
// @Router       /v1/sugerencias [get]
func (h *SugerenciasHandler) Sugerir(c *gin.Context) {
	var filter dto.SugerenciaFilter
	if !bindQueryAndValidate(c, &filter) {
		return
	}
	resp, err := h.svc.Sugerir(c.Request.Context(), filter)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Coincidencias godoc
// @Summary      Coincidencias de preferencias (modo mover)
// @Description  Puntúa todo el mobiliario activo contra un conjunto de preferencias. La ocupación aquí ignora el estado de la reserva.
// @Tags         sugerencias
// @Produce      json
// @Security     BearerAuth
// @Param        fecha        query string   true  "Fecha YYYY-MM-DD"
// @Param        preferencias query []string false "Códigos de preferencia"
// @Param        zona_id      query string   false "UUID de zona"
// @Success      200 {array} dto.CoincidenciaResponse
// @Router       /v1/sugerencias/coincidencias [get]
func (h *SugerenciasHandler) Coincidencias(c *gin.Context) {
	var filter dto.CoincidenciasFilter
	if !bindQueryAndValidate(c, &filter) {
		return
	}
	resp, err := h.asignaciones.Coincidencias(c.Request.Context(), filter)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
