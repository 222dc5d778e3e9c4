package arena

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"sort"

	"arenaserver/models"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// HoneypotProbability is the per-match chance that one side's response is
// replaced with a decoy during a sweep.
const HoneypotProbability = 0.05

// SweepOutcome summarizes one finished match of a batch.
type SweepOutcome struct {
	MatchID      string `json:"matchId"`
	WinnerID     uint   `json:"winnerId"`
	SideAID      uint   `json:"sideAId"`
	SideBID      uint   `json:"sideBId"`
	SideARating  int    `json:"sideANewRating"`
	SideBRating  int    `json:"sideBNewRating"`
	Honeypot     bool   `json:"honeypot"`
	Audited      bool   `json:"audited"`
	AuditAgreed  *bool  `json:"auditAgreed,omitempty"`
	FallbackUsed bool   `json:"fallbackUsed"`
}

// PairByRating greedily pairs participants, preferring the closest rating
// within the band, falling back to any available opponent under a different
// account. Unpairable participants sit the sweep out.
func PairByRating(participants []models.Participant) [][2]models.Participant {
	sorted := make([]models.Participant, len(participants))
	copy(sorted, participants)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Rating < sorted[j].Rating })

	used := make(map[uint]bool)
	var pairs [][2]models.Participant

	for i := range sorted {
		if used[sorted[i].ID] {
			continue
		}

		bestIdx := -1
		bestGap := RatingBand + 1
		for j := i + 1; j < len(sorted); j++ {
			if used[sorted[j].ID] || sorted[j].AccountID == sorted[i].AccountID {
				continue
			}
			gap := sorted[j].Rating - sorted[i].Rating
			if gap < 0 {
				gap = -gap
			}
			if gap <= RatingBand && gap < bestGap {
				bestIdx = j
				bestGap = gap
			}
		}
		if bestIdx == -1 {
			for j := i + 1; j < len(sorted); j++ {
				if !used[sorted[j].ID] && sorted[j].AccountID != sorted[i].AccountID {
					bestIdx = j
					break
				}
			}
		}
		if bestIdx == -1 {
			continue
		}

		pairs = append(pairs, [2]models.Participant{sorted[i], sorted[bestIdx]})
		used[sorted[i].ID] = true
		used[sorted[bestIdx].ID] = true
	}
	return pairs
}

// RunSweep pairs every qualified participant and plays a full batch under
// the system-wide lease. A failure in one match skips only that match.
func RunSweep(ctx context.Context, db *gorm.DB, rdb *redis.Client, logger *zap.Logger,
	generator ResponseGenerator, evaluator Evaluator) ([]SweepOutcome, error) {

	if err := AcquireSweepLease(ctx, rdb); err != nil {
		return nil, err
	}
	defer func() {
		if err := ReleaseSweepLease(ctx, rdb); err != nil {
			logger.Error("failed to release sweep lease", zap.Error(err))
		}
	}()

	var participants []models.Participant
	if err := db.Where("qualified = ?", true).Order("rating DESC").Find(&participants).Error; err != nil {
		return nil, err
	}
	if len(participants) < 2 {
		logger.Info("not enough qualified participants for a sweep")
		return []SweepOutcome{}, nil
	}

	pairs := PairByRating(participants)
	logger.Info("sweep started", zap.Int("pairs", len(pairs)))

	outcomes := make([]SweepOutcome, 0, len(pairs))
	for _, pair := range pairs {
		outcome, err := runSweepMatch(ctx, db, logger, generator, evaluator, pair[0], pair[1])
		if err != nil {
			// one bad match never aborts the batch
			logger.Error("sweep match skipped",
				zap.Uint("sideA", pair[0].ID),
				zap.Uint("sideB", pair[1].ID),
				zap.Error(err),
			)
			continue
		}
		if outcome != nil {
			outcomes = append(outcomes, *outcome)
		}
	}

	logger.Info("sweep complete", zap.Int("matches", len(outcomes)))
	return outcomes, nil
}

func runSweepMatch(ctx context.Context, db *gorm.DB, logger *zap.Logger,
	generator ResponseGenerator, evaluator Evaluator,
	sideA, sideB models.Participant) (*SweepOutcome, error) {

	prompt, err := DrawPrompt(db, &sideA)
	if err != nil {
		return nil, err
	}

	isHoneypot := rand.Float64() < HoneypotProbability

	var responseA, responseB string
	var honeypotRealID *uint

	if isHoneypot {
		real, err := generator.Generate(ctx, sideA.Persona, prompt.Text)
		if err != nil {
			return nil, fmt.Errorf("%w: response generation: %v", ErrTransient, err)
		}
		if rand.Intn(2) == 0 {
			responseA, responseB = real, DecoyResponse(prompt.Text)
			honeypotRealID = &sideA.ID
		} else {
			responseA, responseB = DecoyResponse(prompt.Text), real
			honeypotRealID = &sideB.ID
		}
	} else {
		responseA, err = generator.Generate(ctx, sideA.Persona, prompt.Text)
		if err != nil {
			return nil, fmt.Errorf("%w: response generation: %v", ErrTransient, err)
		}
		responseB, err = generator.Generate(ctx, sideB.Persona, prompt.Text)
		if err != nil {
			return nil, fmt.Errorf("%w: response generation: %v", ErrTransient, err)
		}
	}

	if TooSimilar(responseA, responseB) {
		logger.Warn("responses too similar, skipping sweep match",
			zap.Uint("sideA", sideA.ID), zap.Uint("sideB", sideB.ID))
		return nil, nil
	}

	match := models.Match{
		PublicID:       uuid.New().String(),
		SideAID:        sideA.ID,
		SideBID:        &sideB.ID,
		PromptID:       prompt.ID,
		ResponseA:      &responseA,
		ResponseB:      &responseB,
		Status:         models.MatchPendingJudgment,
		IsHoneypot:     isHoneypot,
		HoneypotRealID: honeypotRealID,
	}
	if err := db.Create(&match).Error; err != nil {
		return nil, err
	}

	committee, err := SelectCommittee(db, sideA.ID, sideB.ID)
	if err != nil {
		return nil, err
	}

	if committee.Fallback {
		return runFallbackConsensus(ctx, db, logger, evaluator, &match, sideA, sideB)
	}

	for _, seat := range committee.Judges {
		respA, respB := ResponsesForAssignment(&match, seat.Assignment)
		verdict, err := evaluator.Evaluate(ctx, TierCommittee, seat.Judge.Persona, respA, respB)
		if err != nil {
			return nil, fmt.Errorf("%w: committee evaluation: %v", ErrTransient, err)
		}
		payload, err := json.Marshal(seat.Assignment)
		if err != nil {
			return nil, err
		}
		vote := models.Vote{
			MatchID:         match.ID,
			JudgeID:         seat.Judge.ID,
			LabelAssignment: string(payload),
			Letter:          verdict.Letter,
			Reasoning:       verdict.Reasoning,
		}
		if err := db.Create(&vote).Error; err != nil {
			return nil, err
		}
	}

	result, err := FinalizeMatch(db, logger, match.ID)
	if err != nil {
		return nil, err
	}

	outcome := outcomeFromResult(&match, sideA, sideB, result)

	if !match.IsHoneypot && ShouldAudit() {
		audit, err := RunAudit(ctx, db, logger, evaluator, match.ID)
		if err != nil {
			logger.Error("audit failed", zap.String("matchID", match.PublicID), zap.Error(err))
		} else {
			outcome.Audited = true
			outcome.AuditAgreed = &audit.Agreed
		}
	}
	return outcome, nil
}

// runFallbackConsensus plays all three seats with the impartial automated
// evaluator. Votes stay in memory: they belong to no judge and must never
// move anyone's credibility.
func runFallbackConsensus(ctx context.Context, db *gorm.DB, logger *zap.Logger,
	evaluator Evaluator, match *models.Match, sideA, sideB models.Participant) (*SweepOutcome, error) {

	tally := make(map[uint]int)
	for i := 0; i < CommitteeSize; i++ {
		assignment := RandomAssignment(sideA.ID, sideB.ID)
		respA, respB := ResponsesForAssignment(match, assignment)
		verdict, err := evaluator.Evaluate(ctx, TierFallback, "", respA, respB)
		if err != nil {
			return nil, fmt.Errorf("%w: fallback evaluation: %v", ErrTransient, err)
		}
		supported, err := assignment.MappedParticipant(verdict.Letter)
		if err != nil {
			return nil, err
		}
		tally[supported]++
	}

	winnerID := PluralityWinner(tally)
	winner, loser := sideA, sideB
	if winnerID != sideA.ID {
		winner, loser = sideB, sideA
	}
	newWinnerRating, newLoserRating := MatchResult(
		winner.Rating, loser.Rating, winner.MatchCount, loser.MatchCount)

	tallyJSON, err := json.Marshal(tally)
	if err != nil {
		return nil, err
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		flip := tx.Model(&models.Match{}).
			Where("id = ? AND status = ?", match.ID, models.MatchPendingJudgment).
			Updates(map[string]interface{}{
				"status":          models.MatchCompleted,
				"winner_id":       winnerID,
				"consensus_votes": string(tallyJSON),
			})
		if flip.Error != nil {
			return flip.Error
		}
		if flip.RowsAffected == 0 {
			return fmt.Errorf("%w: match already finalized", ErrConflict)
		}
		if match.IsHoneypot {
			return nil
		}
		if err := tx.Model(&models.Participant{}).
			Where("id = ?", winner.ID).
			Updates(map[string]interface{}{
				"rating":      gorm.Expr("rating + ?", newWinnerRating-winner.Rating),
				"match_count": gorm.Expr("match_count + 1"),
			}).Error; err != nil {
			return err
		}
		return tx.Model(&models.Participant{}).
			Where("id = ?", loser.ID).
			Updates(map[string]interface{}{
				"rating":      gorm.Expr("rating + ?", newLoserRating-loser.Rating),
				"match_count": gorm.Expr("match_count + 1"),
			}).Error
	})
	if err != nil {
		return nil, err
	}

	result := &FinalizeResult{
		MatchPublicID:   match.PublicID,
		WinnerID:        winnerID,
		Tally:           tally,
		NewWinnerRating: newWinnerRating,
		NewLoserRating:  newLoserRating,
		RatingApplied:   !match.IsHoneypot,
	}
	if match.IsHoneypot {
		result.NewWinnerRating = winner.Rating
		result.NewLoserRating = loser.Rating
	}

	outcome := outcomeFromResult(match, sideA, sideB, result)
	outcome.FallbackUsed = true
	return outcome, nil
}

func outcomeFromResult(match *models.Match, sideA, sideB models.Participant, result *FinalizeResult) *SweepOutcome {
	outcome := &SweepOutcome{
		MatchID:  match.PublicID,
		WinnerID: result.WinnerID,
		SideAID:  sideA.ID,
		SideBID:  sideB.ID,
		Honeypot: match.IsHoneypot,
	}
	if result.WinnerID == sideA.ID {
		outcome.SideARating = result.NewWinnerRating
		outcome.SideBRating = result.NewLoserRating
	} else {
		outcome.SideARating = result.NewLoserRating
		outcome.SideBRating = result.NewWinnerRating
	}
	return outcome
}
