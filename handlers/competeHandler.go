package handlers

import (
	"net/http"

	"arenaserver/arena"
	"arenaserver/middlewares"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CompeteHandler handles POST /arena/compete: the requester either gets
// back their open match, joins a waiting one, or starts a new one.
func CompeteHandler(c *gin.Context, db *gorm.DB, logger *zap.Logger) {
	participant, ok := middlewares.ParticipantFromRequest(c, db, logger)
	if !ok {
		return
	}

	result, err := arena.RequestMatch(db, logger, participant)
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
