package handler

import (
	"net/http"

	"purobeach/internal/dto"
	"purobeach/internal/service"

	"github.com/gin-gonic/gin"
)

type ClientesHandler struct{ svc service.ClienteService }

func NewClientesHandler(svc service.ClienteService) *ClientesHandler {
	return &ClientesHandler{svc: svc}
}

// Crear godoc
// @Summary Crear cliente
// @Tags clientes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CrearClienteRequest true "Datos del cliente"
// @Success 201 {object} dto.ClienteResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/clientes [post]
func (h *ClientesHandler) Crear(c *gin.Context) {
	var req dto.CrearClienteRequest
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

// Obtener godoc
// @Summary Obtener cliente
// @Tags clientes
// @Produce json
// @Security BearerAuth
// @Param id path string true "UUID del cliente"
// @Success 200 {object} dto.ClienteResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/clientes/{id} [get]
func (h *ClientesHandler) Obtener(c *gin.Context) {
	id, ok := parseUUIDParam(c)
	if !ok {
		return
	}
	resp, err := h.svc.Obtener(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Listar godoc
// @Summary Listar clientes
// @Tags clientes
// @Produce json
// @Security BearerAuth
// @Param buscar query string false "Subcadena sobre nombre, apellidos o email"
// @Param page query int false "Página (default 1)"
// @Param limit query int false "Registros por página (default 50)"
// @Success 200 {object} dto.ClienteListResponse
// @Router /v1/clientes [get]
func (h *ClientesHandler) Listar(c *gin.Context) {
	var filter dto.ClienteFilter
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

// Actualizar godoc
// @Summary Actualizar cliente
// @Tags clientes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "UUID del cliente"
// @Param body body dto.ActualizarClienteRequest true "Campos a modificar"
// @Success 200 {object} dto.ClienteResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/clientes/{id} [put]
func (h *ClientesHandler) Actualizar(c *gin.Context) {
	id, ok := parseUUIDParam(c)
	if !ok {
		return
	}
	var req dto.ActualizarClienteRequest
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
// @Summary Eliminar cliente
// @Tags clientes
// @Security BearerAuth
// @Param id path string true "UUID del cliente"
// @Success 204
// @Failure 404 {object} apierror.APIError
// @Router /v1/clientes/{id} [delete]
func (h *ClientesHandler) Eliminar(c *gin.Context) {
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
