package handler

import (
	"net/http"

	"purobeach/internal/dto"
	"purobeach/internal/middleware"
	"purobeach/internal/service"

	"github.com/gin-gonic/gin"
)

type ListaEsperaHandler struct{ svc service.ListaEsperaService }

func NewListaEsperaHandler(svc service.ListaEsperaService) *ListaEsperaHandler {
	return &ListaEsperaHandler{svc: svc}
}

// Crear godoc
// @Summary Apuntar cliente a la lista de espera
// @Tags lista-espera
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CrearEsperaRequest true "Cliente, fecha y preferencias"
// @Success 201 {object} dto.EsperaResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/lista-espera [post]
func (h *ListaEsperaHandler) Crear(c *gin.Context) {
	var req dto.CrearEsperaRequest
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
// @Summary      Listar lista de espera
// @Description  Las entradas de fechas pasadas se marcan expiradas antes de responder.
// @Tags         lista-espera
// @Produce      json
// @Security     BearerAuth
// @Param        fecha  query string false "Fecha YYYY-MM-DD"
// @Param        estado query string false "en_espera | convertida | expirada | cancelada | all"
// @Success      200 {array} dto.EsperaResponse
// @Router       /v1/lista-espera [get]
func (h *ListaEsperaHandler) Listar(c *gin.Context) {
	var filter dto.EsperaFilter
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

// Convertir godoc
// @Summary      Convertir entrada en reserva
// @Description  Crea la reserva para la fecha de la entrada con el mobiliario indicado y la marca convertida.
// @Tags         lista-espera
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "UUID de la entrada"
// @Param        body body dto.ConvertirEsperaRequest true "Mobiliario y detalle"
// @Success      201  {object} dto.CrearReservaResponse
// @Failure      400  {object} apierror.ConflictError
// @Router       /v1/lista-espera/{id}/convertir [post]
func (h *ListaEsperaHandler) Convertir(c *gin.Context) {
	id, ok := parseUUIDParam(c)
	if !ok {
		return
	}
	var req dto.ConvertirEsperaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	resp, err := h.svc.Convertir(c.Request.Context(), id, req, claims.Username)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Cancelar godoc
// @Summary Cancelar entrada de lista de espera
// @Tags lista-espera
// @Security BearerAuth
// @Param id path string true "UUID de la entrada"
// @Success 204
// @Failure 404 {object} apierror.APIError
// @Router /v1/lista-espera/{id} [delete]
func (h *ListaEsperaHandler) Cancelar(c *gin.Context) {
	id, ok := parseUUIDParam(c)
	if !ok {
		return
	}
	if err := h.svc.Cancelar(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
