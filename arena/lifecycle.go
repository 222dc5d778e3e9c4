package arena

import (
	"errors"
	"fmt"

	"arenaserver/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// RatingBand is the preferred elo distance for matchmaking. Waiting matches
// outside the band are still joinable as a fallback.
const RatingBand = 200

// SubmitOutcome reports what a response submission did to the match.
type SubmitOutcome struct {
	MatchReady bool // both responses in, now pending judgment
	Discarded  bool // similarity gate fired, match thrown away
}

// RequestMatch either returns the requester's open match, joins them into a
// compatible waiting match, or creates a fresh one with a drawn prompt.
func RequestMatch(db *gorm.DB, logger *zap.Logger, requester *models.Participant) (*models.CompeteResponse, error) {
	if !requester.Qualified {
		return nil, fmt.Errorf("%w: participant is not qualified for the arena", ErrNotEligible)
	}

	// one open match per participant
	var open models.Match
	err := db.Preload("Prompt").
		Where("(side_a_id = ? OR side_b_id = ?) AND status <> ?",
			requester.ID, requester.ID, models.MatchCompleted).
		First(&open).Error
	if err == nil {
		return &models.CompeteResponse{
			Status:     "already_waiting",
			MatchID:    open.PublicID,
			PromptText: open.Prompt.Text,
		}, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	waiting, err := findWaitingMatch(db, requester)
	if err != nil {
		return nil, err
	}
	if waiting != nil {
		return joinMatch(db, logger, waiting, requester)
	}
	return createMatchAsSideA(db, logger, requester)
}

// OpenForOpponent reports whether a waiting match can take a joiner: an
// empty B slot and the creator's response already in. A match whose creator
// has not submitted yet stays queued instead of pairing someone into a
// match that may never fill.
func OpenForOpponent(m *models.Match) bool {
	return m.Status == models.MatchWaitingForOpponent &&
		m.SideBID == nil &&
		m.ResponseA != nil
}

// findWaitingMatch walks the FIFO queue of joinable waiting matches: first
// pass restricted to creators within the rating band, second pass takes the
// oldest regardless of gap. Same-account matches are never offered.
func findWaitingMatch(db *gorm.DB, requester *models.Participant) (*models.Match, error) {
	var match models.Match
	err := db.Preload("SideA").Preload("Prompt").
		Joins("JOIN participants ON participants.id = matches.side_a_id").
		Where("matches.status = ?", models.MatchWaitingForOpponent).
		Where("matches.side_b_id IS NULL AND matches.response_a IS NOT NULL").
		Where("participants.account_id <> ?", requester.AccountID).
		Where("participants.rating BETWEEN ? AND ?",
			requester.Rating-RatingBand, requester.Rating+RatingBand).
		Order("matches.created_at ASC").
		First(&match).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		err = db.Preload("SideA").Preload("Prompt").
			Joins("JOIN participants ON participants.id = matches.side_a_id").
			Where("matches.status = ?", models.MatchWaitingForOpponent).
			Where("matches.side_b_id IS NULL AND matches.response_a IS NOT NULL").
			Where("participants.account_id <> ?", requester.AccountID).
			Order("matches.created_at ASC").
			First(&match).Error
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &match, nil
}

func createMatchAsSideA(db *gorm.DB, logger *zap.Logger, requester *models.Participant) (*models.CompeteResponse, error) {
	prompt, err := DrawPrompt(db, requester)
	if err != nil {
		return nil, err
	}

	match := models.Match{
		PublicID: uuid.New().String(),
		SideAID:  requester.ID,
		PromptID: prompt.ID,
		Status:   models.MatchWaitingForOpponent,
	}
	if err := db.Create(&match).Error; err != nil {
		return nil, err
	}

	logger.Info("match created",
		zap.String("matchID", match.PublicID),
		zap.Uint("sideA", requester.ID),
	)
	return &models.CompeteResponse{
		Status:     "waiting_for_opponent",
		MatchID:    match.PublicID,
		PromptText: prompt.Text,
	}, nil
}

func joinMatch(db *gorm.DB, logger *zap.Logger, match *models.Match, joiner *models.Participant) (*models.CompeteResponse, error) {
	if match.SideA.AccountID == joiner.AccountID {
		return nil, fmt.Errorf("%w: cannot compete against your own account", ErrNotEligible)
	}
	if !OpenForOpponent(match) {
		return nil, fmt.Errorf("%w: match is not open for an opponent", ErrConflict)
	}

	// conditional fill so two joiners racing for the same slot cannot both win
	claim := db.Model(&models.Match{}).
		Where("id = ? AND side_b_id IS NULL", match.ID).
		Update("side_b_id", joiner.ID)
	if claim.Error != nil {
		return nil, claim.Error
	}
	if claim.RowsAffected == 0 {
		return nil, fmt.Errorf("%w: match was just taken by another participant", ErrConflict)
	}

	logger.Info("match joined",
		zap.String("matchID", match.PublicID),
		zap.Uint("sideB", joiner.ID),
	)
	return &models.CompeteResponse{
		Status:     "matched",
		MatchID:    match.PublicID,
		PromptText: match.Prompt.Text,
		Opponent: &models.OpponentSummary{
			Name:   match.SideA.Name,
			Rating: match.SideA.Rating,
		},
	}, nil
}

// SubmitResponse writes one side's response exactly once. The conditional
// update on the NULL column is what makes two racing submissions resolve to
// one winner and one ErrConflict. When the second response lands the match
// either moves to PENDING_JUDGMENT or, if the similarity gate fires, is
// discarded outright.
func SubmitResponse(db *gorm.DB, logger *zap.Logger, submitter *models.Participant, matchPublicID, text string) (*SubmitOutcome, error) {
	if text == "" {
		return nil, fmt.Errorf("%w: response must not be empty", ErrValidation)
	}

	var match models.Match
	if err := db.Where("public_id = ?", matchPublicID).First(&match).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: match %s", ErrNotFound, matchPublicID)
		}
		return nil, err
	}
	if match.Status == models.MatchCompleted {
		return nil, fmt.Errorf("%w: match is already completed", ErrConflict)
	}

	var column string
	switch {
	case match.SideAID == submitter.ID:
		column = "response_a"
	case match.SideBID != nil && *match.SideBID == submitter.ID:
		column = "response_b"
	default:
		return nil, fmt.Errorf("%w: not a side of this match", ErrNotEligible)
	}

	write := db.Model(&models.Match{}).
		Where("id = ? AND "+column+" IS NULL", match.ID).
		Update(column, text)
	if write.Error != nil {
		return nil, write.Error
	}
	if write.RowsAffected == 0 {
		return nil, fmt.Errorf("%w: response already submitted for this side", ErrConflict)
	}

	var updated models.Match
	if err := db.First(&updated, match.ID).Error; err != nil {
		return nil, err
	}
	if updated.ResponseA == nil || updated.ResponseB == nil {
		return &SubmitOutcome{}, nil
	}

	if TooSimilar(*updated.ResponseA, *updated.ResponseB) {
		logger.Warn("responses too similar, discarding match",
			zap.String("matchID", updated.PublicID))
		if err := db.Delete(&models.Match{}, updated.ID).Error; err != nil {
			return nil, err
		}
		return &SubmitOutcome{Discarded: true}, nil
	}

	flip := db.Model(&models.Match{}).
		Where("id = ? AND status = ? AND response_a IS NOT NULL AND response_b IS NOT NULL",
			updated.ID, models.MatchWaitingForOpponent).
		Update("status", models.MatchPendingJudgment)
	if flip.Error != nil {
		return nil, flip.Error
	}

	logger.Info("match ready for judging", zap.String("matchID", updated.PublicID))
	return &SubmitOutcome{MatchReady: true}, nil
}

// PendingMatchForJudge hands an eligible evaluator one match awaiting
// judgment that they have not voted on and do not own a side of, with
// freshly randomized positions. Returns nil when nothing qualifies.
func PendingMatchForJudge(db *gorm.DB, judge *models.Participant) (*models.Match, *LabelAssignment, error) {
	if !judge.IsJudge {
		return nil, nil, fmt.Errorf("%w: not a judge", ErrNotEligible)
	}
	if judge.CredibilityScore < CredibilityThreshold {
		return nil, nil, fmt.Errorf("%w: credibility below the judging threshold", ErrNotEligible)
	}

	var match models.Match
	err := db.Preload("Prompt").
		Joins("JOIN participants AS pa ON pa.id = matches.side_a_id").
		Joins("JOIN participants AS pb ON pb.id = matches.side_b_id").
		Where("matches.status = ?", models.MatchPendingJudgment).
		Where("pa.account_id <> ? AND pb.account_id <> ?", judge.AccountID, judge.AccountID).
		Where("NOT EXISTS (SELECT 1 FROM votes WHERE votes.match_id = matches.id AND votes.judge_id = ? AND votes.deleted_at IS NULL)", judge.ID).
		Order("matches.created_at ASC").
		First(&match).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}
	if match.SideBID == nil || match.ResponseA == nil || match.ResponseB == nil {
		return nil, nil, fmt.Errorf("%w: pending match is incomplete", ErrConflict)
	}

	assignment := RandomAssignment(match.SideAID, *match.SideBID)
	return &match, &assignment, nil
}

// ResponsesForAssignment orders the stored responses the way this judge's
// label assignment presents them.
func ResponsesForAssignment(match *models.Match, la LabelAssignment) (respA, respB string) {
	if la.A == match.SideAID {
		return *match.ResponseA, *match.ResponseB
	}
	return *match.ResponseB, *match.ResponseA
}
