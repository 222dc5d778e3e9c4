package handlers

import (
	"net/http"

	"arenaserver/arena"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// HealthHandler handles GET /arena/health.
func HealthHandler(c *gin.Context, db *gorm.DB, rdb *redis.Client, logger *zap.Logger) {
	health, err := arena.CheckHealth(c.Request.Context(), db, rdb)
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, health)
}
