package handler

import (
	"net/http"

	"purobeach/internal/service"

	"github.com/gin-gonic/gin"
)

type PaquetesHandler struct{ svc service.PaqueteService }

func NewPaquetesHandler(svc service.PaqueteService) *PaquetesHandler {
	return &PaquetesHandler{svc: svc}
}

// Listar godoc
// @Summary Listar paquetes de temporada
// @Tags paquetes
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.PaqueteResponse
// @Router /v1/paquetes [get]
func (h *PaquetesHandler) Listar(c *gin.Context) {
	resp, err := h.svc.Listar(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Obtener godoc
// @Summary Obtener paquete
// @Tags paquetes
// @Produce json
// @Security BearerAuth
// @Param id path string true "UUID del paquete"
// @Success 200 {object} dto.PaqueteResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/paquetes/{id} [get]
func (h *PaquetesHandler) Obtener(c *gin.Context) {
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
