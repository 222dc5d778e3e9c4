package arena

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"arenaserver/models"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// FinalizeResult is returned to whichever caller completed the quorum.
type FinalizeResult struct {
	MatchPublicID   string
	WinnerID        uint
	WinnerName      string
	Tally           map[uint]int
	NewWinnerRating int
	NewLoserRating  int
	RatingApplied   bool // false for honeypot matches
}

// VoteOutcome is the reply to a single submitted vote.
type VoteOutcome struct {
	Finalized     bool
	VotesReceived int
	VotesNeeded   int
	Result        *FinalizeResult
}

// SupportedParticipant resolves the participant a stored vote backed by
// mapping its letter through the voter's own label assignment.
func SupportedParticipant(vote *models.Vote) (uint, error) {
	var la LabelAssignment
	if err := json.Unmarshal([]byte(vote.LabelAssignment), &la); err != nil {
		return 0, fmt.Errorf("vote %d has a corrupt label assignment: %w", vote.ID, err)
	}
	return la.MappedParticipant(vote.Letter)
}

// TallyVotes maps each vote's letter back through that voter's own label
// assignment and counts the supported participants. With an odd committee a
// plurality always exists.
func TallyVotes(votes []models.Vote) (map[uint]int, error) {
	tally := make(map[uint]int)
	for i := range votes {
		supported, err := SupportedParticipant(&votes[i])
		if err != nil {
			return nil, err
		}
		tally[supported]++
	}
	return tally, nil
}

// PluralityWinner picks the participant with the most mapped votes.
func PluralityWinner(tally map[uint]int) uint {
	var winner uint
	best := -1
	for participantID, count := range tally {
		if count > best {
			winner = participantID
			best = count
		}
	}
	return winner
}

// RecordVote consumes the voter's live label assignment, stores the vote,
// and finalizes the match if this vote completed the quorum. A second vote
// by the same judge, or a vote without a prior fetch, fails with ErrConflict.
func RecordVote(ctx context.Context, db *gorm.DB, rdb *redis.Client, logger *zap.Logger,
	judge *models.Participant, matchPublicID, letter, reasoning string) (*VoteOutcome, error) {

	if letter != "a" && letter != "b" {
		return nil, fmt.Errorf("%w: vote must be a or b", ErrValidation)
	}

	var match models.Match
	if err := db.Where("public_id = ?", matchPublicID).First(&match).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: match %s", ErrNotFound, matchPublicID)
		}
		return nil, err
	}
	if match.Status != models.MatchPendingJudgment {
		return nil, fmt.Errorf("%w: match is not pending judgment", ErrConflict)
	}

	assignment, err := ConsumeLabelAssignment(ctx, rdb, judge.ID, matchPublicID)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(assignment)
	if err != nil {
		return nil, err
	}
	vote := models.Vote{
		MatchID:         match.ID,
		JudgeID:         judge.ID,
		LabelAssignment: string(payload),
		Letter:          letter,
		Reasoning:       reasoning,
	}
	if err := db.Create(&vote).Error; err != nil {
		// the (match, judge) unique index turns double votes into conflicts;
		// anything else stays unclassified so callers can retry
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: already voted on this match", ErrConflict)
		}
		return nil, err
	}

	var voteCount int64
	if err := db.Model(&models.Vote{}).Where("match_id = ?", match.ID).Count(&voteCount).Error; err != nil {
		return nil, err
	}

	outcome := &VoteOutcome{VotesReceived: int(voteCount), VotesNeeded: CommitteeSize}
	if voteCount < CommitteeSize {
		return outcome, nil
	}

	result, err := FinalizeMatch(db, logger, match.ID)
	if err != nil {
		if errors.Is(err, ErrConflict) {
			// another vote raced us to the quorum and finalized first
			return outcome, nil
		}
		return nil, err
	}
	outcome.Finalized = true
	outcome.Result = result
	return outcome, nil
}

// FinalizeMatch applies the consensus outcome exactly once: the status flip,
// the rating updates, the vote agreement flags, and the credibility moves
// all commit in one transaction. The conditional PENDING->COMPLETED update
// is the guard; only the caller that wins it applies any side effect.
func FinalizeMatch(db *gorm.DB, logger *zap.Logger, matchID uint) (*FinalizeResult, error) {
	var match models.Match
	if err := db.Preload("SideA").Preload("SideB").First(&match, matchID).Error; err != nil {
		return nil, err
	}
	if match.SideBID == nil || match.ResponseA == nil || match.ResponseB == nil {
		return nil, fmt.Errorf("%w: match is not ready to finalize", ErrConflict)
	}

	var votes []models.Vote
	if err := db.Where("match_id = ?", matchID).Find(&votes).Error; err != nil {
		return nil, err
	}

	tally, err := TallyVotes(votes)
	if err != nil {
		return nil, err
	}
	winnerID := PluralityWinner(tally)

	loserID := match.SideAID
	if winnerID == match.SideAID {
		loserID = *match.SideBID
	}

	winner, loser := match.SideA, *match.SideB
	if winnerID != match.SideAID {
		winner, loser = *match.SideB, match.SideA
	}

	newWinnerRating, newLoserRating := MatchResult(
		winner.Rating, loser.Rating, winner.MatchCount, loser.MatchCount)

	tallyJSON, err := json.Marshal(tally)
	if err != nil {
		return nil, err
	}

	result := &FinalizeResult{
		MatchPublicID:   match.PublicID,
		WinnerID:        winnerID,
		WinnerName:      winner.Name,
		Tally:           tally,
		NewWinnerRating: newWinnerRating,
		NewLoserRating:  newLoserRating,
		RatingApplied:   !match.IsHoneypot,
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		flip := tx.Model(&models.Match{}).
			Where("id = ? AND status = ?", matchID, models.MatchPendingJudgment).
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

		for i := range votes {
			supported, err := SupportedParticipant(&votes[i])
			if err != nil {
				return err
			}
			agreed := supported == winnerID
			if err := tx.Model(&models.Vote{}).
				Where("id = ?", votes[i].ID).
				Update("agreed_with_consensus", agreed).Error; err != nil {
				return err
			}
			if err := ApplyConsensusResult(tx, votes[i].JudgeID, agreed); err != nil {
				return err
			}
			if match.IsHoneypot && match.HoneypotRealID != nil && supported != *match.HoneypotRealID {
				if err := ApplyHoneypotPenalty(tx, votes[i].JudgeID, logger); err != nil {
					return err
				}
			}
		}

		if match.IsHoneypot {
			// a winner is recorded for display only; ratings stay put
			result.NewWinnerRating = winner.Rating
			result.NewLoserRating = loser.Rating
			return nil
		}

		winnerDelta := newWinnerRating - winner.Rating
		loserDelta := newLoserRating - loser.Rating
		if err := tx.Model(&models.Participant{}).
			Where("id = ?", winnerID).
			Updates(map[string]interface{}{
				"rating":      gorm.Expr("rating + ?", winnerDelta),
				"match_count": gorm.Expr("match_count + 1"),
			}).Error; err != nil {
			return err
		}
		return tx.Model(&models.Participant{}).
			Where("id = ?", loserID).
			Updates(map[string]interface{}{
				"rating":      gorm.Expr("rating + ?", loserDelta),
				"match_count": gorm.Expr("match_count + 1"),
			}).Error
	})
	if err != nil {
		return nil, err
	}

	logger.Info("match finalized",
		zap.String("matchID", match.PublicID),
		zap.Uint("winnerID", winnerID),
		zap.Bool("honeypot", match.IsHoneypot),
	)
	return result, nil
}
