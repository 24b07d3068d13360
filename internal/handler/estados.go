package handler

import (
	"net/http"

	"purobeach/internal/dto"
	"purobeach/internal/service"

	"github.com/gin-gonic/gin"
)

// EstadosHandler exposes the reservation-state catalogue. System states can be
// reprioritized but never renamed, deactivated or deleted.
type EstadosHandler struct{ svc service.EstadoService }

func NewEstadosHandler(svc service.EstadoService) *EstadosHandler {
	return &EstadosHandler{svc: svc}
}

// Crear godoc
// @Summary Crear estado personalizado
// @Tags estados
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CrearEstadoRequest true "Definición del estado"
// @Success 201 {object} dto.EstadoResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/estados [post]
func (h *EstadosHandler) Crear(c *gin.Context) {
	var req dto.CrearEstadoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Listar godoc
// @Summary Listar estados
// @Tags estados
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.EstadoResponse
// @Router /v1/estados [get]
func (h *EstadosHandler) Listar(c *gin.Context) {
	resp, err := h.svc.Listar(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Actualizar godoc
// @Summary Actualizar estado
// @Description Sobre estados de sistema sólo se permiten cambios de prioridad, color y notificación.
// @Tags estados
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "UUID del estado"
// @Param body body dto.ActualizarEstadoRequest true "Campos a modificar"
// @Success 200 {object} dto.EstadoResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/estados/{id} [put]
func (h *EstadosHandler) Actualizar(c *gin.Context) {
	id, ok := parseUUIDParam(c)
	if !ok {
		return
	}
	var req dto.ActualizarEstadoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Actualizar(c.Request.Context(), id, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Eliminar godoc
// @Summary Eliminar estado personalizado
// @Description Rechazado para estados de sistema o con reservas que lo referencien.
// @Tags estados
// @Security BearerAuth
// @Param id path string true "UUID del estado"
// @Success 204
// @Failure 400 {object} apierror.APIError
// @Router /v1/estados/{id} [delete]
func (h *EstadosHandler) Eliminar(c *gin.Context) {
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

// Transiciones godoc
// @Summary Transiciones permitidas desde un estado
// @Tags estados
// @Produce json
// @Security BearerAuth
// @Param codigo path string true "Código de estado"
// @Success 200 {object} map[string]interface{}
// @Router /v1/estados/{codigo}/transiciones [get]
func (h *EstadosHandler) Transiciones(c *gin.Context) {
	codigo := c.Param("codigo")
	permitidas := h.svc.TransicionesPermitidas(codigo)
	c.JSON(http.StatusOK, gin.H{
		"estado":       codigo,
		"transiciones": permitidas,
	})
}
