package handlers

import (
	"net/http"

	"arenaserver/arena"
	"arenaserver/middlewares"
	"arenaserver/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SubmitResponseHandler handles POST /arena/matches/:matchID/response.
func SubmitResponseHandler(c *gin.Context, db *gorm.DB, logger *zap.Logger) {
	participant, ok := middlewares.ParticipantFromRequest(c, db, logger)
	if !ok {
		return
	}

	var request models.SubmitResponseRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		logger.Error("request binding error", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Request binding error"})
		return
	}

	outcome, err := arena.SubmitResponse(db, logger, participant, c.Param("matchID"), request.Response)
	if err != nil {
		respondError(c, logger, err)
		return
	}

	switch {
	case outcome.Discarded:
		c.JSON(http.StatusOK, gin.H{
			"status":  "match_discarded",
			"message": "Responses were too similar. The match was discarded.",
		})
	case outcome.MatchReady:
		c.JSON(http.StatusOK, gin.H{
			"status":     "match_ready",
			"message":    "Both responses submitted. Match is now ready for judging.",
			"matchReady": true,
		})
	default:
		c.JSON(http.StatusOK, gin.H{
			"status":     "response_submitted",
			"message":    "Response submitted. Waiting for opponent.",
			"matchReady": false,
		})
	}
}
