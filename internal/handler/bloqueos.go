package handler

import (
	"net/http"

	"purobeach/internal/dto"
	"purobeach/internal/middleware"
	"purobeach/internal/service"

	"github.com/gin-gonic/gin"
)

type BloqueosHandler struct{ svc service.BloqueoService }

func NewBloqueosHandler(svc service.BloqueoService) *BloqueosHandler {
	return &BloqueosHandler{svc: svc}
}

// Crear godoc
// @Summary      Bloquear mobiliario por mantenimiento o evento
// @Description  Rechazado con 400 mientras haya reservas activas ocupando la unidad en el rango.
// @Tags         bloqueos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CrearBloqueoRequest true "Unidad, rango y motivo"
// @Success      201  {object} dto.BloqueoResponse
// @Failure      400  {object} apierror.ConflictError
// @Router       /v1/bloqueos [post]
func (h *BloqueosHandler) Crear(c *gin.Context) {
	var req dto.CrearBloqueoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	resp, err := h.svc.Crear(c.Request.Context(), req, claims.Username)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Listar godoc
// @Summary Listar bloqueos
// @Tags bloqueos
// @Produce json
// @Security BearerAuth
// @Param mobiliario_id query string false "UUID de la unidad"
// @Param fecha_desde query string false "Fecha YYYY-MM-DD"
// @Param fecha_hasta query string false "Fecha YYYY-MM-DD"
// @Success 200 {array} dto.BloqueoResponse
// @Router /v1/bloqueos [get]
func (h *BloqueosHandler) Listar(c *gin.Context) {
	var filter dto.BloqueoFilter
	if !bindQueryAndValidate(c, &filter) {
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), filter)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Eliminar godoc
// @Summary Levantar bloqueo
// @Tags bloqueos
// @Security BearerAuth
// @Param id path string true "UUID del bloqueo"
// @Success 204
// @Failure 404 {object} apierror.APIError
// @Router /v1/bloqueos/{id} [delete]
func (h *BloqueosHandler) Eliminar(c *gin.Context) {
	id, ok := parseUUIDParam(c)
	if !ok {
		return
	}
	if err := h.svc.Eliminar(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
