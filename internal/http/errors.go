package http

import (
	"errors"

	"github.com/gin-gonic/gin"

	"family-budget-go/internal/apperrors"
)

// writeError maps the core's typed errors to stable response codes. Anything
// untyped is a 500 with a generic body; details stay in the server log.
func (s *Server) writeError(c *gin.Context, err error) {
	var validation *apperrors.ValidationError
	if errors.As(err, &validation) {
		c.JSON(400, gin.H{"error": "validation_failed", "field": validation.Field, "detail": validation.Message})
		return
	}

	var notFound *apperrors.NotFoundError
	if errors.As(err, &notFound) {
		c.JSON(404, gin.H{"error": "not_found", "detail": notFound.Error()})
		return
	}

	var conflict *apperrors.ConflictError
	if errors.As(err, &conflict) {
		c.JSON(409, gin.H{"error": "conflict", "detail": conflict.Message})
		return
	}

	s.logger.Error("request failed", "path", c.Request.URL.Path, "error", err)
	c.JSON(500, gin.H{"error": "internal_error"})
}
