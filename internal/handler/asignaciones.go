package handler

import (
	"net/http"

	"purobeach/internal/dto"
	"purobeach/internal/middleware"
	"purobeach/internal/service"

	"github.com/gin-gonic/gin"
)

type AsignacionesHandler struct{ svc service.AsignacionService }

func NewAsignacionesHandler(svc service.AsignacionService) *AsignacionesHandler {
	return &AsignacionesHandler{svc: svc}
}

// Asignar godoc
// @Summary      Asignar mobiliario a la reserva
// @Description  Añade unidades para una fecha. Unidades ya propias se saltan (idempotente); unidades ocupadas por otra reserva abortan con detalle 400.
// @Tags         asignaciones
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "UUID de la reserva"
// @Param        body body dto.AsignarMobiliarioRequest true "Unidades y fecha"
// @Success      200  {object} dto.AsignarResponse
// @Failure      400  {object} apierror.ConflictError
// @Router       /v1/reservas/{id}/asignaciones [post]
func (h *AsignacionesHandler) Asignar(c *gin.Context) {
	id, ok := parseUUIDParam(c)
	if !ok {
		return
	}
	var req dto.AsignarMobiliarioRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	resp, err := h.svc.Asignar(c.Request.Context(), id, req, claims.Username)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Desasignar godoc
// @Summary      Quitar mobiliario de la reserva
// @Description  Retira unidades para una fecha. Unidades que la reserva no tiene no son un error.
// @Tags         asignaciones
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "UUID de la reserva"
// @Param        body body dto.DesasignarMobiliarioRequest true "Unidades y fecha"
// @Success      200  {object} dto.DesasignarResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/reservas/{id}/asignaciones [delete]
func (h *AsignacionesHandler) Desasignar(c *gin.Context) {
	id, ok := parseUUIDParam(c)
	if !ok {
		return
	}
	var req dto.DesasignarMobiliarioRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	resp, err := h.svc.Desasignar(c.Request.Context(), id, req, claims.Username)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Bloquear godoc
// @Summary      Bloquear/desbloquear el mobiliario de la reserva
// @Description  Con el bloqueo activo el modo-mover no puede tocar las asignaciones de la reserva.
// @Tags         asignaciones
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "UUID de la reserva"
// @Param        body body dto.BloquearMobiliarioRequest true "Estado del bloqueo"
// @Success      200  {object} dto.BloquearMobiliarioResponse
// @Router       /v1/reservas/{id}/bloquear-mobiliario [put]
func (h *AsignacionesHandler) Bloquear(c *gin.Context) {
	id, ok := parseUUIDParam(c)
	if !ok {
		return
	}
	var req dto.BloquearMobiliarioRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	resp, err := h.svc.Bloquear(c.Request.Context(), id, req.Bloqueado, claims.Username)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Pool godoc
// @Summary      Pool de la reserva (modo mover)
// @Description  Devuelve la reserva con sus preferencias, su mobiliario por día y las fechas de todo el grupo.
// @Tags         asignaciones
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string true  "UUID de la reserva"
// @Param        fecha query string false "Fecha YYYY-MM-DD (default: fecha_inicio)"
// @Success      200 {object} dto.PoolReservaResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/reservas/{id}/pool [get]
func (h *AsignacionesHandler) Pool(c *gin.Context) {
	id, ok := parseUUIDParam(c)
	if !ok {
		return
	}
	var filter dto.PoolFilter
	if !bindQueryAndValidate(c, &filter) {
		return
	}
	resp, err := h.svc.Pool(c.Request.Context(), id, filter)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
