package utils

import (
	"time"

	"arenaserver/arena"
	"arenaserver/models"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CronJobs wires the maintenance schedule: retention cleanup of abandoned
// matches and the advisory anomaly scan over judge voting history.
func CronJobs(db *gorm.DB, logger *zap.Logger) {
	c := cron.New()

	// Matches nobody joined or finished within 24h are abandoned. Their
	// core lifecycle has no cancellation, so retention handles them here.
	c.AddFunc("@daily", func() {
		logger.Info("expiring abandoned matches")
		result := db.Where("status = ? AND updated_at <= ?",
			models.MatchWaitingForOpponent, time.Now().Add(-24*time.Hour)).
			Delete(&models.Match{})
		if result.Error != nil {
			logger.Error("failed to expire abandoned matches", zap.Error(result.Error))
		} else if result.RowsAffected > 0 {
			logger.Info("expired abandoned matches", zap.Int64("matches", result.RowsAffected))
		}
	})

	// Purge soft-deleted matches and their votes after a 48h grace period.
	c.AddFunc("0 3 * * *", func() {
		logger.Info("purging discarded matches")
		var purgeIDs []uint
		db.Unscoped().Model(&models.Match{}).
			Where("deleted_at IS NOT NULL AND deleted_at <= ?", time.Now().Add(-48*time.Hour)).
			Pluck("id", &purgeIDs)
		if len(purgeIDs) == 0 {
			return
		}

		db.Unscoped().Where("match_id IN ?", purgeIDs).Delete(&models.Vote{})
		result := db.Unscoped().Where("id IN ?", purgeIDs).Delete(&models.Match{})
		if result.Error != nil {
			logger.Error("failed to purge matches", zap.Error(result.Error))
		} else {
			logger.Info("purged matches", zap.Int64("matches", result.RowsAffected))
		}
	})

	// Advisory anomaly scan; findings go to the log for out-of-band review.
	c.AddFunc("@hourly", func() {
		arena.ScanAllJudges(db, logger)
	})

	// Judge-flag maintenance: promote participants that meet the gates,
	// demote judges whose credibility sits at the floor.
	c.AddFunc("@daily", func() {
		arena.ScanJudgePromotions(db, logger)
	})

	c.Start()
}
