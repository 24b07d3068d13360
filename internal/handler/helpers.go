package handler

import (
	"errors"
	"net/http"
	"reflect"

	"purobeach/internal/apierror"
	"purobeach/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var validate = validator.New()

func init() {
	// Register decimal.Decimal as a numeric type so that validator tags like
	// min=0, gt=0, required work without panicking ("Bad field type decimal.Decimal").
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails —
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("JSON invalido: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// bindQueryAndValidate binds query parameters and runs validator tags.
func bindQueryAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// writeError translates the typed failures raised by the service layer into
// HTTP status + JSON envelopes. Occupancy conflicts and invalid transitions
// are client errors: they come back as 400 with structured detail so the
// floor-plan UI can render the occupying reservations or the allowed target
// states. Missing aggregates become 404; everything else 400 with the raw
// Spanish message.
func writeError(c *gin.Context, err error) {
	var conflicto *service.ErrConflicto
	var transicion *service.ErrTransicionInvalida
	var duplicada *service.ErrReservaDuplicada

	switch {
	case errors.As(err, &conflicto):
		detalle := make([]apierror.Conflicto, 0, len(conflicto.Conflictos))
		for _, co := range conflicto.Conflictos {
			detalle = append(detalle, apierror.Conflicto{
				MobiliarioID: co.MobiliarioID,
				Numero:       co.Numero,
				Fecha:        co.Fecha,
				ReservaID:    co.ReservaID,
				Cliente:      co.Cliente,
			})
		}
		c.JSON(http.StatusBadRequest, apierror.NewConflict(conflicto.Detalle, detalle))

	case errors.As(err, &transicion):
		c.JSON(http.StatusBadRequest, apierror.NewTransition(
			err.Error(), transicion.Desde, transicion.Hasta, transicion.Permitidas))

	case errors.As(err, &duplicada):
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))

	case errors.Is(err, service.ErrMobiliarioBloqueado):
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))

	case errors.Is(err, service.ErrReservaNoEncontrada),
		errors.Is(err, service.ErrMobiliarioNoEncontrado),
		errors.Is(err, service.ErrClienteNoEncontrado),
		errors.Is(err, service.ErrZonaNoEncontrada),
		errors.Is(err, service.ErrEstadoNoEncontrado),
		errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))

	default:
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
	}
}

// parseUUIDParam parses the :id path parameter, writing a 400 on failure.
func parseUUIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return uuid.Nil, false
	}
	return id, true
}
