package handler

import (
	"net/http"
	"strings"

	"purobeach/internal/apierror"
	"purobeach/internal/dto"
	"purobeach/internal/service"

	"github.com/gin-gonic/gin"
)

type MobiliarioHandler struct{ svc service.MobiliarioService }

func NewMobiliarioHandler(svc service.MobiliarioService) *MobiliarioHandler {
	return &MobiliarioHandler{svc: svc}
}

// Crear godoc
// @Summary Crear unidad de mobiliario
// @Tags mobiliario
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CrearMobiliarioRequest true "Datos de la unidad"
// @Success 201 {object} dto.MobiliarioResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/mobiliario [post]
func (h *MobiliarioHandler) Crear(c *gin.Context) {
	var req dto.CrearMobiliarioRequest
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
// @Summary Obtener unidad
// @Tags mobiliario
// @Produce json
// @Security BearerAuth
// @Param id path string true "UUID de la unidad"
// @Success 200 {object} dto.MobiliarioResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/mobiliario/{id} [get]
func (h *MobiliarioHandler) Obtener(c *gin.Context) {
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
// @Summary Listar mobiliario
// @Tags mobiliario
// @Produce json
// @Security BearerAuth
// @Param zona_id query string false "UUID de zona"
// @Param tipo query string false "hamaca | balinesa | cama_vip | mesa"
// @Param activo query string false "true | false"
// @Success 200 {array} dto.MobiliarioResponse
// @Router /v1/mobiliario [get]
func (h *MobiliarioHandler) Listar(c *gin.Context) {
	var filter dto.MobiliarioFilter
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
// @Summary Actualizar unidad
// @Tags mobiliario
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "UUID de la unidad"
// @Param body body dto.ActualizarMobiliarioRequest true "Campos a modificar"
// @Success 200 {object} dto.MobiliarioResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/mobiliario/{id} [put]
func (h *MobiliarioHandler) Actualizar(c *gin.Context) {
	id, ok := parseUUIDParam(c)
	if !ok {
		return
	}
	var req dto.ActualizarMobiliarioRequest
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
// @Summary Retirar unidad
// @Description Baja lógica. Rechazada mientras exista alguna asignación futura.
// @Tags mobiliario
// @Security BearerAuth
// @Param id path string true "UUID de la unidad"
// @Success 204
// @Failure 400 {object} apierror.APIError
// @Router /v1/mobiliario/{id} [delete]
func (h *MobiliarioHandler) Eliminar(c *gin.Context) {
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

// SiguienteNumero godoc
// @Summary      Siguiente número libre para un prefijo
// @Description  Sufijo numérico más alto en uso más uno; los números de unidades retiradas nunca se reutilizan.
// @Tags         mobiliario
// @Produce      json
// @Security     BearerAuth
// @Param        prefijo query string true "Prefijo de numeración (p. ej. Y)"
// @Success      200 {object} dto.SiguienteNumeroResponse
// @Router       /v1/mobiliario/siguiente-numero [get]
func (h *MobiliarioHandler) SiguienteNumero(c *gin.Context) {
	prefijo := strings.TrimSpace(c.Query("prefijo"))
	if prefijo == "" {
		c.JSON(http.StatusBadRequest, apierror.New("prefijo requerido"))
		return
	}
	resp, err := h.svc.SiguienteNumero(c.Request.Context(), prefijo)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
