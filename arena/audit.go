package arena

import (
	"context"
	"fmt"
	"math/rand"

	"arenaserver/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AuditProbability is the per-match chance of a secondary re-evaluation.
const AuditProbability = 0.1

// ShouldAudit samples the audit decision independently per match.
func ShouldAudit() bool {
	return rand.Float64() < AuditProbability
}

// AuditResult reports whether the higher-trust verdict matched the
// committee's.
type AuditResult struct {
	Agreed    bool
	VerdictID uint
}

// RunAudit re-judges an already-finalized match with the audit-grade
// evaluator, blind to the committee's outcome, and records the verdict. On
// disagreement, every judge whose vote sided with the contradicted winner
// takes the extra penalty; dissenters are left alone.
func RunAudit(ctx context.Context, db *gorm.DB, logger *zap.Logger, evaluator Evaluator, matchID uint) (*AuditResult, error) {
	var match models.Match
	if err := db.First(&match, matchID).Error; err != nil {
		return nil, err
	}
	if match.Status != models.MatchCompleted || match.WinnerID == nil {
		return nil, fmt.Errorf("%w: cannot audit an undecided match", ErrConflict)
	}
	if match.ResponseA == nil || match.ResponseB == nil || match.SideBID == nil {
		return nil, fmt.Errorf("%w: match is missing responses", ErrConflict)
	}

	// canonical positions here, not a judge's randomized view
	verdict, err := evaluator.Evaluate(ctx, TierAudit, "", *match.ResponseA, *match.ResponseB)
	if err != nil {
		return nil, fmt.Errorf("%w: audit evaluation: %v", ErrTransient, err)
	}

	verdictID := match.SideAID
	if verdict.Letter == "b" {
		verdictID = *match.SideBID
	}
	agreed := verdictID == *match.WinnerID

	if err := db.Model(&models.Match{}).
		Where("id = ?", match.ID).
		Updates(map[string]interface{}{
			"audited":          true,
			"audit_verdict_id": verdictID,
		}).Error; err != nil {
		return nil, err
	}

	if !agreed {
		var votes []models.Vote
		if err := db.Where("match_id = ?", match.ID).Find(&votes).Error; err != nil {
			return nil, err
		}
		for i := range votes {
			supported, err := SupportedParticipant(&votes[i])
			if err != nil {
				return nil, err
			}
			if supported == *match.WinnerID {
				if err := ApplyAuditPenalty(db, votes[i].JudgeID, logger); err != nil {
					return nil, err
				}
			}
		}
		logger.Warn("audit contradicted consensus",
			zap.String("matchID", match.PublicID),
			zap.Uint("consensusWinner", *match.WinnerID),
			zap.Uint("auditVerdict", verdictID),
		)
	}

	return &AuditResult{Agreed: agreed, VerdictID: verdictID}, nil
}
