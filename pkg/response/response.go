// Package response centralizes HTTP response shapes and helpers.
// Handlers rely on it to keep controllers thin and uniform.
package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/maxviazov/swc-fantasy-api/internal/repository"
	"github.com/maxviazov/swc-fantasy-api/internal/service"
)

// ErrorPayload is the canonical error envelope returned by the API.
// Detail is always safe to show; internal causes never reach it.
type ErrorPayload struct {
	Detail      string               `json:"detail"`
	FieldErrors []service.FieldError `json:"field_errors,omitempty"`
}

// MapError converts a domain / infrastructure error into an HTTP status and payload.
func MapError(err error) (int, ErrorPayload) {
	if err == nil {
		return http.StatusOK, ErrorPayload{Detail: "ok"}
	}

	if errors.Is(err, service.ErrInvalidInput) {
		return http.StatusUnprocessableEntity, ErrorPayload{
			Detail:      "one or more fields are invalid",
			FieldErrors: service.FieldErrors(err),
		}
	}

	var nf *service.NotFoundError
	switch {
	case errors.As(err, &nf):
		return http.StatusNotFound, ErrorPayload{Detail: nf.Error()}
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound, ErrorPayload{Detail: "Not found"}
	case errors.Is(err, repository.ErrUnavailable):
		return http.StatusServiceUnavailable, ErrorPayload{Detail: http.StatusText(http.StatusServiceUnavailable)}
	default:
		return http.StatusInternalServerError, ErrorPayload{Detail: http.StatusText(http.StatusInternalServerError)}
	}
}

// WriteError writes an error response, records err on the context for the access log, and aborts.
func WriteError(c *gin.Context, err error) {
	status, payload := MapError(err)
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, payload)
}

// WriteData writes a successful JSON response.
func WriteData(c *gin.Context, status int, data any) {
	c.JSON(status, data)
}
