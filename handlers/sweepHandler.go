package handlers

import (
	"errors"
	"net/http"

	"arenaserver/arena"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SweepHandler handles POST /arena/sweep: one full batch under the
// system-wide lease. A held lease is a skipped cycle, not a failure.
func SweepHandler(c *gin.Context, db *gorm.DB, rdb *redis.Client, logger *zap.Logger,
	generator arena.ResponseGenerator, evaluator arena.Evaluator) {

	outcomes, err := arena.RunSweep(c.Request.Context(), db, rdb, logger, generator, evaluator)
	if errors.Is(err, arena.ErrLockHeld) {
		c.JSON(http.StatusAccepted, gin.H{"status": "skipped", "message": "A sweep is already running."})
		return
	}
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "completed", "outcomes": outcomes})
}
