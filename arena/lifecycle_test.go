package arena

import (
	"testing"

	"arenaserver/models"

	"github.com/stretchr/testify/assert"
)

func TestOpenForOpponentRequiresCreatorResponse(t *testing.T) {
	text := "already submitted"
	m := models.Match{Status: models.MatchWaitingForOpponent, ResponseA: &text}
	assert.True(t, OpenForOpponent(&m))

	// the creator has not submitted yet; keep the match queued
	m.ResponseA = nil
	assert.False(t, OpenForOpponent(&m))
}

func TestOpenForOpponentRejectsFilledSlot(t *testing.T) {
	text := "already submitted"
	sideB := uint(4)
	m := models.Match{
		Status:    models.MatchWaitingForOpponent,
		ResponseA: &text,
		SideBID:   &sideB,
	}
	assert.False(t, OpenForOpponent(&m))
}

func TestOpenForOpponentRejectsWrongStatus(t *testing.T) {
	text := "already submitted"
	m := models.Match{Status: models.MatchPendingJudgment, ResponseA: &text}
	assert.False(t, OpenForOpponent(&m))
}
