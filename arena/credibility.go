package arena

import (
	"arenaserver/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Credibility constants. The floor is an absolute lower bound enforced on
// every write; the threshold is the separate, higher bar for sitting on a
// committee. A judge can be benched without being at the floor.
const (
	CredibilityFloor     = 30
	CredibilityThreshold = 50

	consensusDelta  = 1
	auditPenalty    = 10
	honeypotPenalty = 20
)

// AdjustedCredibility is the stored outcome of one adjustment: the
// increment followed by the floor clamp. adjustCredibility commits the
// same arithmetic through SQL.
func AdjustedCredibility(score, delta int) int {
	score += delta
	if score < CredibilityFloor {
		return CredibilityFloor
	}
	return score
}

// adjustCredibility applies a delta to a judge's score with an atomic
// increment, then clamps back to the floor with a conditional update. Two
// statements instead of one read-modify-write keeps concurrent finalizations
// touching the same judge safe.
func adjustCredibility(db *gorm.DB, judgeID uint, delta int) error {
	if err := db.Model(&models.Participant{}).
		Where("id = ?", judgeID).
		Update("credibility_score", gorm.Expr("credibility_score + ?", delta)).Error; err != nil {
		return err
	}
	return db.Model(&models.Participant{}).
		Where("id = ? AND credibility_score < ?", judgeID, CredibilityFloor).
		Update("credibility_score", CredibilityFloor).Error
}

// ApplyConsensusResult moves a judge's credibility by +-1 for agreeing or
// disagreeing with the committee outcome.
func ApplyConsensusResult(db *gorm.DB, judgeID uint, agreed bool) error {
	delta := consensusDelta
	if !agreed {
		delta = -consensusDelta
	}
	return adjustCredibility(db, judgeID, delta)
}

// ApplyAuditPenalty punishes a judge whose vote sided with a consensus the
// audit later contradicted. This stacks on top of the +-1 already applied
// when the match finalized.
func ApplyAuditPenalty(db *gorm.DB, judgeID uint, logger *zap.Logger) error {
	logger.Warn("audit penalty", zap.Uint("judgeID", judgeID), zap.Int("penalty", auditPenalty))
	return adjustCredibility(db, judgeID, -auditPenalty)
}

// ApplyHoneypotPenalty punishes a judge who voted for the decoy response.
func ApplyHoneypotPenalty(db *gorm.DB, judgeID uint, logger *zap.Logger) error {
	logger.Warn("honeypot penalty", zap.Uint("judgeID", judgeID), zap.Int("penalty", honeypotPenalty))
	return adjustCredibility(db, judgeID, -honeypotPenalty)
}
