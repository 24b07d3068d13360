package handler

import (
	"net/http"

	"purobeach/internal/dto"
	"purobeach/internal/middleware"
	"purobeach/internal/service"

	"github.com/gin-gonic/gin"
)

type ReservasHandler struct {
	svc     service.ReservaService
	estados service.EstadoService
}

func NewReservasHandler(svc service.ReservaService, estados service.EstadoService) *ReservasHandler {
	return &ReservasHandler{svc: svc, estados: estados}
}

// Crear godoc
// @Summary      Crear reserva
// @Description  Crea una reserva con asignación de mobiliario por día. Varios días generan un grupo multi-día (padre + hijas) en una sola transacción.
// @Tags         reservas
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CrearReservaRequest true "Detalle de la reserva"
// @Success      201  {object} dto.CrearReservaResponse
// @Failure      400  {object} apierror.ConflictError
// @Router       /v1/reservas [post]
func (h *ReservasHandler) Crear(c *gin.Context) {
	var req dto.CrearReservaRequest
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

// Obtener godoc
// @Summary Obtener reserva
// @Tags reservas
// @Produce json
// @Security BearerAuth
// @Param id path string true "UUID de la reserva"
// @Success 200 {object} dto.ReservaResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/reservas/{id} [get]
func (h *ReservasHandler) Obtener(c *gin.Context) {
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
// @Summary      Listar reservas
// @Description  Lista paginada filtrada por fecha (default hoy), estado, zona y cliente.
// @Tags         reservas
// @Produce      json
// @Security     BearerAuth
// @Param        fecha      query string false "Fecha YYYY-MM-DD (default: hoy)"
// @Param        estado     query string false "Código de estado | all"
// @Param        zona_id    query string false "UUID de zona"
// @Param        cliente_id query string false "UUID de cliente"
// @Success      200 {object} dto.ReservaListResponse
// @Router       /v1/reservas [get]
func (h *ReservasHandler) Listar(c *gin.Context) {
	var filter dto.ReservaFilter
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
// @Summary      Actualizar reserva
// @Description  Modifica personas, precio o paquete. Los cambios se propagan a las reservas hijas del grupo.
// @Tags         reservas
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "UUID de la reserva"
// @Param        body body dto.ActualizarReservaRequest true "Campos a modificar"
// @Success      200  {object} dto.ReservaResponse
// @Failure      404  {object} apierror.APIError
// @Router       /v1/reservas/{id} [put]
func (h *ReservasHandler) Actualizar(c *gin.Context) {
	id, ok := parseUUIDParam(c)
	if !ok {
		return
	}
	var req dto.ActualizarReservaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	resp, err := h.svc.Actualizar(c.Request.Context(), id, req, claims.Username)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Cancelar godoc
// @Summary      Cancelar reserva
// @Description  Cancela la reserva. Sobre un padre multi-día cancela todo el grupo atómicamente; sobre una hija sólo ese día.
// @Tags         reservas
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "UUID de la reserva"
// @Param        body body dto.CancelarReservaRequest true "Motivo de cancelación"
// @Success      204
// @Failure      400  {object} apierror.TransitionError
// @Router       /v1/reservas/{id} [delete]
func (h *ReservasHandler) Cancelar(c *gin.Context) {
	id, ok := parseUUIDParam(c)
	if !ok {
		return
	}
	var req dto.CancelarReservaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	if err := h.svc.Cancelar(c.Request.Context(), id, req, claims.Username); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Historial godoc
// @Summary Historial de estados de la reserva
// @Tags reservas
// @Produce json
// @Security BearerAuth
// @Param id path string true "UUID de la reserva"
// @Success 200 {array} dto.HistorialEstadoResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/reservas/{id}/historial [get]
func (h *ReservasHandler) Historial(c *gin.Context) {
	id, ok := parseUUIDParam(c)
	if !ok {
		return
	}
	resp, err := h.svc.Historial(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ── Estado sobre la reserva ──────────────────────────────────────────────────

// AgregarEstado godoc
// @Summary      Agregar estado al conjunto acumulado
// @Description  Valida la transición contra la matriz salvo bypass (auditado). El estado primario se recalcula por prioridad.
// @Tags         reservas
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "UUID de la reserva"
// @Param        body body dto.AgregarEstadoRequest true "Estado a agregar"
// @Success      200  {object} dto.ReservaResponse
// @Failure      400  {object} apierror.TransitionError
// @Router       /v1/reservas/{id}/estados [post]
func (h *ReservasHandler) AgregarEstado(c *gin.Context) {
	id, ok := parseUUIDParam(c)
	if !ok {
		return
	}
	var req dto.AgregarEstadoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	if err := h.estados.AgregarEstado(c.Request.Context(), id, req.Estado, claims.Username, req.Motivo, req.Bypass); err != nil {
		writeError(c, err)
		return
	}
	resp, err := h.svc.Obtener(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// QuitarEstado godoc
// @Summary      Quitar estado del conjunto acumulado
// @Description  Desactiva el estado en el historial; el primario se recalcula. Si el conjunto queda vacío se restaura el estado por defecto.
// @Tags         reservas
// @Produce      json
// @Security     BearerAuth
// @Param        id     path string true "UUID de la reserva"
// @Param        codigo path string true "Código de estado"
// @Success      200  {object} dto.ReservaResponse
// @Failure      404  {object} apierror.APIError
// @Router       /v1/reservas/{id}/estados/{codigo} [delete]
func (h *ReservasHandler) QuitarEstado(c *gin.Context) {
	id, ok := parseUUIDParam(c)
	if !ok {
		return
	}
	codigo := c.Param("codigo")
	claims := middleware.GetClaims(c)
	if err := h.estados.QuitarEstado(c.Request.Context(), id, codigo, claims.Username); err != nil {
		writeError(c, err)
		return
	}
	resp, err := h.svc.Obtener(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CambiarEstado godoc
// @Summary      Reemplazar el conjunto acumulado por un solo estado
// @Tags         reservas
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "UUID de la reserva"
// @Param        body body dto.CambiarEstadoRequest true "Estado destino"
// @Success      200  {object} dto.ReservaResponse
// @Failure      400  {object} apierror.TransitionError
// @Router       /v1/reservas/{id}/estados [put]
func (h *ReservasHandler) CambiarEstado(c *gin.Context) {
	id, ok := parseUUIDParam(c)
	if !ok {
		return
	}
	var req dto.CambiarEstadoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	if err := h.estados.CambiarEstado(c.Request.Context(), id, req.Estado, claims.Username, req.Motivo, req.Bypass); err != nil {
		writeError(c, err)
		return
	}
	resp, err := h.svc.Obtener(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
