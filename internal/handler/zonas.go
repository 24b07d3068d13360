package handler

import (
	"net/http"

	"purobeach/internal/dto"
	"purobeach/internal/service"

	"github.com/gin-gonic/gin"
)

type ZonasHandler struct{ svc service.ZonaService }

func NewZonasHandler(svc service.ZonaService) *ZonasHandler { return &ZonasHandler{svc: svc} }

// Crear godoc
// @Summary Crear zona
// @Tags zonas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CrearZonaRequest true "Datos de la zona"
// @Success 201 {object} dto.ZonaResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/zonas [post]
func (h *ZonasHandler) Crear(c *gin.Context) {
	var req dto.CrearZonaRequest
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
// @Summary Listar zonas
// @Tags zonas
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.ZonaResponse
// @Router /v1/zonas [get]
func (h *ZonasHandler) Listar(c *gin.Context) {
	resp, err := h.svc.Listar(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Actualizar godoc
// @Summary Actualizar zona
// @Tags zonas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "UUID de la zona"
// @Param body body dto.ActualizarZonaRequest true "Campos a modificar"
// @Success 200 {object} dto.ZonaResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/zonas/{id} [put]
func (h *ZonasHandler) Actualizar(c *gin.Context) {
	id, ok := parseUUIDParam(c)
	if !ok {
		return
	}
	var req dto.ActualizarZonaRequest
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
// @Summary Eliminar zona
// @Description Rechazado mientras la zona tenga mobiliario o subzonas.
// @Tags zonas
// @Security BearerAuth
// @Param id path string true "UUID de la zona"
// @Success 204
// @Failure 400 {object} apierror.APIError
// @Router /v1/zonas/{id} [delete]
func (h *ZonasHandler) Eliminar(c *gin.Context) {
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
