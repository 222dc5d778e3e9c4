package arena

import (
	"encoding/json"
	"fmt"

	"arenaserver/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Anomaly detection thresholds over the sliding vote window. Flags are
// advisory input for out-of-band review; nothing here sanctions anyone.
const (
	anomalyWindow          = 50
	anomalyMinVotes        = 10
	sameSideVoteThreshold  = 10
	positionBiasThreshold  = 0.8
	agreementRateThreshold = 0.5
)

// Anomaly flag types.
const (
	FlagPotentialCollusion = "POTENTIAL_COLLUSION"
	FlagPositionBias       = "POSITION_BIAS"
	FlagAuditDisagreement  = "AUDIT_DISAGREEMENT"
)

// AnomalyFlag is one advisory signal about an evaluator's voting history.
type AnomalyFlag struct {
	Type    string `json:"type"`
	JudgeID uint   `json:"judgeId"`
	Details string `json:"details"`
}

// DetectAnomalies inspects a judge's most recent votes, newest first. Fewer
// than anomalyMinVotes means not enough data, no flags.
func DetectAnomalies(judgeID uint, votes []models.Vote) ([]AnomalyFlag, error) {
	var flags []AnomalyFlag
	if len(votes) < anomalyMinVotes {
		return flags, nil
	}

	// repeated support for one opposing participant
	supportCounts := make(map[uint]int)
	for _, vote := range votes {
		var la LabelAssignment
		if err := json.Unmarshal([]byte(vote.LabelAssignment), &la); err != nil {
			return nil, err
		}
		supported, err := la.MappedParticipant(vote.Letter)
		if err != nil {
			return nil, err
		}
		supportCounts[supported]++
	}
	for participantID, count := range supportCounts {
		if count > sameSideVoteThreshold {
			flags = append(flags, AnomalyFlag{
				Type:    FlagPotentialCollusion,
				JudgeID: judgeID,
				Details: fmt.Sprintf("voted for participant %d %d times in last %d votes", participantID, count, len(votes)),
			})
		}
	}

	// positional letter skew
	letterA := 0
	for _, vote := range votes {
		if vote.Letter == "a" {
			letterA++
		}
	}
	dominant := letterA
	if len(votes)-letterA > dominant {
		dominant = len(votes) - letterA
	}
	bias := float64(dominant) / float64(len(votes))
	if bias > positionBiasThreshold {
		flags = append(flags, AnomalyFlag{
			Type:    FlagPositionBias,
			JudgeID: judgeID,
			Details: fmt.Sprintf("position bias of %.1f%% detected", bias*100),
		})
	}

	// agreement rate among rated votes
	agreed, rated := 0, 0
	for _, vote := range votes {
		if vote.AgreedWithConsensus == nil {
			continue
		}
		rated++
		if *vote.AgreedWithConsensus {
			agreed++
		}
	}
	if rated >= anomalyMinVotes {
		rate := float64(agreed) / float64(rated)
		if rate < agreementRateThreshold {
			flags = append(flags, AnomalyFlag{
				Type:    FlagAuditDisagreement,
				JudgeID: judgeID,
				Details: fmt.Sprintf("consensus agreement rate of %.1f%%", rate*100),
			})
		}
	}

	return flags, nil
}

// ScanJudgeAnomalies loads the judge's recent window and runs detection.
func ScanJudgeAnomalies(db *gorm.DB, judgeID uint) ([]AnomalyFlag, error) {
	var votes []models.Vote
	if err := db.Where("judge_id = ?", judgeID).
		Order("created_at DESC").
		Limit(anomalyWindow).
		Find(&votes).Error; err != nil {
		return nil, err
	}
	return DetectAnomalies(judgeID, votes)
}

// ScanAllJudges runs the advisory scan over every active judge and logs
// whatever it finds. Driven by cron, never by a request.
func ScanAllJudges(db *gorm.DB, logger *zap.Logger) {
	var judgeIDs []uint
	if err := db.Model(&models.Participant{}).
		Where("is_judge = ?", true).
		Pluck("id", &judgeIDs).Error; err != nil {
		logger.Error("anomaly scan failed to list judges", zap.Error(err))
		return
	}

	for _, judgeID := range judgeIDs {
		flags, err := ScanJudgeAnomalies(db, judgeID)
		if err != nil {
			logger.Error("anomaly scan failed", zap.Uint("judgeID", judgeID), zap.Error(err))
			continue
		}
		for _, flag := range flags {
			logger.Warn("anomaly detected",
				zap.String("type", flag.Type),
				zap.Uint("judgeID", flag.JudgeID),
				zap.String("details", flag.Details),
			)
		}
	}
}
