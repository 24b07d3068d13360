package handler

import (
	"net/http"

	"purobeach/internal/dto"
	"purobeach/internal/service"

	"github.com/gin-gonic/gin"
)

type DisponibilidadHandler struct{ svc service.DisponibilidadService }

func NewDisponibilidadHandler(svc service.DisponibilidadService) *DisponibilidadHandler {
	return &DisponibilidadHandler{svc: svc}
}

// CheckBulk godoc
// @Summary      Verificar disponibilidad en bloque
// @Description  Comprueba cada par (mobiliario, fecha) del producto cartesiano. Listas vacías devuelven todo_disponible=true.
// @Tags         disponibilidad
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CheckBulkRequest true "Unidades y fechas"
// @Success      200  {object} dto.CheckBulkResponse
// @Router       /v1/disponibilidad/check-bulk [post]
func (h *DisponibilidadHandler) CheckBulk(c *gin.Context) {
	var req dto.CheckBulkRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CheckBulk(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Mapa godoc
// @Summary      Mapa de disponibilidad
// @Description  Rejilla de ocupación por día para el plano, opcionalmente limitada a una zona.
// @Tags         disponibilidad
// @Produce      json
// @Security     BearerAuth
// @Param        fecha_desde query string true  "Fecha YYYY-MM-DD"
// @Param        fecha_hasta query string true  "Fecha YYYY-MM-DD"
// @Param        zona_id     query string false "UUID de zona"
// @Success      200 {object} dto.MapaDisponibilidadResponse
// @Router       /v1/disponibilidad/mapa [get]
func (h *DisponibilidadHandler) Mapa(c *gin.Context) {
	var filter dto.DisponibilidadFilter
	if !bindQueryAndValidate(c, &filter) {
		return
	}
	resp, err := h.svc.Mapa(c.Request.Context(), filter)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Conflictos godoc
// @Summary Reservas que ocupan las unidades indicadas en una fecha
// @Tags disponibilidad
// @Produce json
// @Security BearerAuth
// @Param fecha query string true "Fecha YYYY-MM-DD"
// @Param mobiliario_ids query []string false "UUIDs de mobiliario"
// @Success 200 {array} dto.ReservaConflicto
// @Router /v1/disponibilidad/conflictos [get]
func (h *DisponibilidadHandler) Conflictos(c *gin.Context) {
	var filter dto.ConflictosFilter
	if !bindQueryAndValidate(c, &filter) {
		return
	}
	resp, err := h.svc.Conflictos(c.Request.Context(), filter)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
