package middlewares

import (
	"errors"
	"net/http"
	"strings"

	"arenaserver/auth"
	"arenaserver/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ParticipantFromRequest resolves the Authorization header to the
// participant record named in the token claims. The claims' account must
// actually own the participant.
func ParticipantFromRequest(c *gin.Context, db *gorm.DB, logger *zap.Logger) (*models.Participant, bool) {
	tokenString := c.GetHeader("Authorization")
	if strings.HasPrefix(tokenString, "Bearer ") {
		tokenString = strings.TrimPrefix(tokenString, "Bearer ")
	}
	if tokenString == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing token"})
		return nil, false
	}

	claims, err := auth.ParseClaims(tokenString)
	if err != nil {
		logger.Error("failed to validate token", zap.Error(err))
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
		return nil, false
	}

	var participant models.Participant
	err = db.Where("id = ? AND account_id = ?", claims.ParticipantID, claims.AccountID).
		First(&participant).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unknown participant"})
		return nil, false
	}
	if err != nil {
		logger.Error("failed to load participant", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load participant"})
		return nil, false
	}
	return &participant, true
}
