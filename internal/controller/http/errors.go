package http

import (
	"errors"
	"net/http"

	"homefind/internal/entity"

	"github.com/gin-gonic/gin"
)

// statusFromError maps the domain error taxonomy to HTTP status codes.
// Unrecognized errors are internal failures.
func statusFromError(err error) int {
	switch {
	case errors.Is(err, entity.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, entity.ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, entity.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, entity.ErrInvalidTransition):
		return http.StatusConflict
	case errors.Is(err, entity.ErrConcurrentModification):
		return http.StatusConflict
	case errors.Is(err, entity.ErrTimeout):
		return http.StatusGatewayTimeout
	}
	return http.StatusInternalServerError
}

func respondError(c *gin.Context, err error) {
	status := statusFromError(err)
	if status == http.StatusInternalServerError {
		c.JSON(status, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
