package handlers

import (
	"net/http"

	"arenaserver/arena"
	"arenaserver/live"
	"arenaserver/middlewares"
	"arenaserver/models"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// PendingJudgmentHandler handles GET /judges/pending: one match awaiting
// this evaluator, with positions randomized just for them. The label
// assignment goes to Redis, never to the client.
func PendingJudgmentHandler(c *gin.Context, db *gorm.DB, rdb *redis.Client, logger *zap.Logger) {
	judge, ok := middlewares.ParticipantFromRequest(c, db, logger)
	if !ok {
		return
	}

	match, assignment, err := arena.PendingMatchForJudge(db, judge)
	if err != nil {
		respondError(c, logger, err)
		return
	}
	if match == nil {
		c.JSON(http.StatusOK, gin.H{"pending": nil, "message": "No matches awaiting your judgment."})
		return
	}

	if err := arena.StoreLabelAssignment(c.Request.Context(), rdb, judge.ID, match.PublicID, *assignment, logger); err != nil {
		respondError(c, logger, err)
		return
	}

	respA, respB := arena.ResponsesForAssignment(match, *assignment)
	c.JSON(http.StatusOK, gin.H{"pending": models.PendingJudgment{
		MatchID:    match.PublicID,
		PromptText: match.Prompt.Text,
		ResponseA:  respA,
		ResponseB:  respB,
	}})
}

// SubmitVoteHandler handles POST /judges/vote. The vote that completes the
// quorum finalizes the match; finalized matches are probabilistically
// audited and pushed to the live feed.
func SubmitVoteHandler(c *gin.Context, db *gorm.DB, rdb *redis.Client, logger *zap.Logger,
	evaluator arena.Evaluator, hub *live.Hub) {

	judge, ok := middlewares.ParticipantFromRequest(c, db, logger)
	if !ok {
		return
	}

	var request models.VoteRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		logger.Error("request binding error", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Request binding error"})
		return
	}

	outcome, err := arena.RecordVote(c.Request.Context(), db, rdb, logger,
		judge, request.MatchID, request.Letter, request.Reasoning)
	if err != nil {
		respondError(c, logger, err)
		return
	}

	if !outcome.Finalized {
		c.JSON(http.StatusOK, gin.H{
			"status":        "vote_recorded",
			"votesReceived": outcome.VotesReceived,
			"votesNeeded":   outcome.VotesNeeded,
		})
		return
	}

	result := outcome.Result
	hub.BroadcastResult(result)

	if result.RatingApplied && evaluator != nil && arena.ShouldAudit() {
		var match models.Match
		if err := db.Where("public_id = ?", result.MatchPublicID).First(&match).Error; err == nil {
			if _, err := arena.RunAudit(c.Request.Context(), db, logger, evaluator, match.ID); err != nil {
				logger.Error("audit failed", zap.String("matchID", result.MatchPublicID), zap.Error(err))
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":        "match_finalized",
		"votesReceived": outcome.VotesReceived,
		"votesNeeded":   outcome.VotesNeeded,
		"winnerId":      result.WinnerID,
		"winnerName":    result.WinnerName,
		"tally":         result.Tally,
		"ratingApplied": result.RatingApplied,
	})
}
