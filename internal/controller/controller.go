// Package controller holds the helpers shared by the admin and user HTTP
// handlers: error rendering, parameter parsing and actor lookup.
package controller

import (
	"errors"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/lshigami/Edutrack/internal/dto"
	"github.com/lshigami/Edutrack/internal/middleware"
	"github.com/lshigami/Edutrack/internal/pagination"
	"github.com/lshigami/Edutrack/internal/policy"
	"github.com/lshigami/Edutrack/internal/service"
	"github.com/rs/zerolog/log"
)

func init() {
	// Report binding failures under the JSON field names clients send.
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return f.Name
			}
			return name
		})
	}
}

// RespondError writes the status and body for a service error.
func RespondError(c *gin.Context, err error) {
	var validationErr *service.ValidationError
	var conflictErr *service.ConflictError

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "validation failed", Details: validationErr.Fields})
	case errors.As(err, &conflictErr):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: conflictErr.Message})
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, dto.ErrorResponse{Error: service.ErrForbidden.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: err.Error()})
	default:
		log.Ctx(c.Request.Context()).Error().Err(err).
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Msg("Unhandled service error")
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error"})
	}
}

// BindJSON decodes and validates the request body. On failure the 400
// response is already written.
func BindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		log.Ctx(c.Request.Context()).Warn().Err(err).Str("path", c.FullPath()).Msg("Failed to bind request body")
		details := service.FormatValidationErrors(err)
		if len(details) == 0 {
			details = map[string]string{"body": err.Error()}
		}
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request body", Details: details})
		return false
	}
	return true
}

// ParseID reads a positive numeric path parameter.
func ParseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "invalid path parameter",
			Details: map[string]string{name: "must be a positive integer"},
		})
		return 0, false
	}
	return uint(id), true
}

// ParseOptionalID reads an optional numeric query filter.
func ParseOptionalID(c *gin.Context, name string) (*uint, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "invalid query parameter",
			Details: map[string]string{name: "must be an integer"},
		})
		return nil, false
	}
	v := uint(id)
	return &v, true
}

// ShowDeleted reads the is_deleted flag. Absent means false.
func ShowDeleted(c *gin.Context) (bool, bool) {
	raw := c.Query("is_deleted")
	if raw == "" {
		return false, true
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "invalid query parameter",
			Details: map[string]string{"is_deleted": "must be a boolean"},
		})
		return false, false
	}
	return v, true
}

func PageParams(c *gin.Context) pagination.Params {
	return pagination.ParseParams(c.Query("page"), c.Query("size"), pagination.DefaultPageSize)
}

// Actor returns the authenticated caller, answering 401 when there is none.
func Actor(c *gin.Context) (policy.Actor, bool) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "authentication credentials were not provided"})
		return policy.Actor{}, false
	}
	return actor, true
}
