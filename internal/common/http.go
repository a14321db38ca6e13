package common

import (
	"errors"
	"net/http"

	"taskmanager-backend/pkg/logging"

	"github.com/gin-gonic/gin"
)

// StatusFor maps an error returned by a usecase to its HTTP status.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// RespondError writes the error body for err. Store failures are logged and
// reported without their cause.
func RespondError(c *gin.Context, log logging.Logger, err error) {
	status := StatusFor(err)
	if status == http.StatusInternalServerError {
		log.Error(c.Request.Context(), "request failed",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"error", err,
		)
		c.JSON(status, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
