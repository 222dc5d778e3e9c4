package arena

import (
	"time"

	"arenaserver/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Gates for earning the judge flag.
const (
	judgeMinAccountAge = 24 * time.Hour
	judgeMinMatchCount = 2
)

// JudgeEligible reports whether a participant may hold the judge flag:
// qualified, an account old enough, and enough lifetime matches. The
// credibility threshold is checked at selection time, not here.
func JudgeEligible(p *models.Participant, now time.Time) bool {
	if !p.Qualified {
		return false
	}
	if now.Sub(p.Account.CreatedAt) < judgeMinAccountAge {
		return false
	}
	return p.MatchCount >= judgeMinMatchCount
}

// PromoteToJudge sets the judge flag.
func PromoteToJudge(db *gorm.DB, logger *zap.Logger, participantID uint) error {
	logger.Info("participant promoted to judge", zap.Uint("participantID", participantID))
	return db.Model(&models.Participant{}).
		Where("id = ?", participantID).
		Update("is_judge", true).Error
}

// DemoteJudge clears the judge flag.
func DemoteJudge(db *gorm.DB, logger *zap.Logger, participantID uint) error {
	logger.Info("judge demoted", zap.Uint("participantID", participantID))
	return db.Model(&models.Participant{}).
		Where("id = ?", participantID).
		Update("is_judge", false).Error
}

// ScanJudgePromotions promotes qualified participants that have grown into
// the judge gates and demotes judges whose credibility has collapsed to the
// floor. Runs on a schedule; the scan is idempotent.
func ScanJudgePromotions(db *gorm.DB, logger *zap.Logger) {
	var candidates []models.Participant
	if err := db.Preload("Account").
		Where("qualified = ? AND is_judge = ? AND match_count >= ?",
			true, false, judgeMinMatchCount).
		Find(&candidates).Error; err != nil {
		logger.Error("judge promotion scan failed", zap.Error(err))
		return
	}
	now := time.Now()
	for i := range candidates {
		if !JudgeEligible(&candidates[i], now) {
			continue
		}
		if err := PromoteToJudge(db, logger, candidates[i].ID); err != nil {
			logger.Error("promotion failed",
				zap.Uint("participantID", candidates[i].ID), zap.Error(err))
		}
	}

	var lapsed []models.Participant
	if err := db.Where("is_judge = ? AND credibility_score <= ?",
		true, CredibilityFloor).
		Find(&lapsed).Error; err != nil {
		logger.Error("judge demotion scan failed", zap.Error(err))
		return
	}
	for i := range lapsed {
		if err := DemoteJudge(db, logger, lapsed[i].ID); err != nil {
			logger.Error("demotion failed",
				zap.Uint("participantID", lapsed[i].ID), zap.Error(err))
		}
	}
}
