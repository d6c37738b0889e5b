package handler

import (
	"errors"
	"net/http"
	"reflect"

	"elysee/internal/apierror"
	"elysee/internal/middleware"
	"elysee/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

func init() {
	// decimal.Decimal is validated as a float so that gt=0 and required work.
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// bindAndValidate binds the JSON body and runs the validator tags.
// On false the response is already written.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("JSON invalide: "+err.Error()))
		return false
	}
	return validateStruct(c, req)
}

// bindQuery is bindAndValidate for query strings.
func bindQuery(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("paramètres invalides: "+err.Error()))
		return false
	}
	return validateStruct(c, req)
}

func validateStruct(c *gin.Context, req interface{}) bool {
	if err := validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			c.JSON(http.StatusBadRequest, apierror.New(apierror.MsgInvalide))
			return false
		}
		fields := make(map[string]string)
		for _, fe := range verrs {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

func parseID(c *gin.Context, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("identifiant invalide"))
		return uuid.Nil, false
	}
	return id, true
}

// respondError maps service errors to status codes. Store failures never
// leak their cause to the client.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrIntrouvable):
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
	case errors.Is(err, service.ErrInvalide):
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
	case errors.Is(err, service.ErrConflit):
		c.JSON(http.StatusConflict, apierror.New(err.Error()))
	case errors.Is(err, service.ErrIdentifiants), errors.Is(err, service.ErrTokenInvalide):
		c.JSON(http.StatusUnauthorized, apierror.New(err.Error()))
	case errors.Is(err, service.ErrIndisponible):
		log.Error().Err(err).Str("request_id", c.GetString(middleware.RequestIDKey)).
			Str("path", c.FullPath()).Msg("lecture impossible")
		c.JSON(http.StatusServiceUnavailable, apierror.New(apierror.MsgIndisponible))
	default:
		log.Error().Err(err).Str("request_id", c.GetString(middleware.RequestIDKey)).
			Str("path", c.FullPath()).Msg("erreur interne")
		c.JSON(http.StatusInternalServerError, apierror.New(apierror.MsgInterne))
	}
}
