package handlers

import (
	"errors"
	"net/http"

	"arenaserver/arena"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respondError maps the core failure classes onto HTTP statuses. Anything
// unclassified is a 500 with the detail kept in the logs.
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	switch {
	case errors.Is(err, arena.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, arena.ErrNotEligible):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, arena.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, arena.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, arena.ErrTransient):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error(), "retryable": true})
	default:
		logger.Error("internal error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
