package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/vsinha/production/pkg/application/services/production"
	"github.com/vsinha/production/pkg/domain/entities"
	"github.com/vsinha/production/pkg/domain/repositories"
	"github.com/vsinha/production/pkg/infrastructure/lock"
)

// Response is the envelope of every API reply
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Error codes carried in Response.Code
const (
	CodeOK            = 0
	CodeBadRequest    = 10001
	CodeNotFound      = 10002
	CodeConflict      = 10003
	CodeConfiguration = 10004
	CodeInternal      = 50001
)

// Success writes a 200 reply carrying data
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{Code: CodeOK, Message: "success", Data: data})
}

// Error writes a reply with the given status and code
func Error(c *gin.Context, status, code int, message string) {
	c.JSON(status, Response{Code: code, Message: message})
}

// BadRequest writes a 400 reply
func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, CodeBadRequest, message)
}

// BindError writes a 400 reply for a request body that failed to bind.
// Validation failures carry a field to tag map as data.
func BindError(c *gin.Context, err error) {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		BadRequest(c, err.Error())
		return
	}

	fields := make(map[string]string, len(validationErrors))
	for _, ve := range validationErrors {
		fields[ve.Field()] = ve.Tag()
	}
	c.JSON(http.StatusBadRequest, Response{Code: CodeBadRequest, Message: "validation failed", Data: fields})
}

// ServiceError maps a service error onto its status and code
func ServiceError(c *gin.Context, err error) {
	var cfgErr *entities.ConfigurationError
	switch {
	case errors.As(err, &cfgErr):
		Error(c, http.StatusUnprocessableEntity, CodeConfiguration, err.Error())
	case errors.Is(err, repositories.ErrNotFound):
		Error(c, http.StatusNotFound, CodeNotFound, err.Error())
	case errors.Is(err, production.ErrNotEditable), errors.Is(err, lock.ErrNotObtained):
		Error(c, http.StatusConflict, CodeConflict, err.Error())
	default:
		Error(c, http.StatusInternalServerError, CodeInternal, err.Error())
	}
}
