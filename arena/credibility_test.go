package arena

import (
	"testing"

	"arenaserver/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdjustedCredibilityHoneypotPenalty(t *testing.T) {
	// a decoy vote costs 20 points
	assert.Equal(t, 80, AdjustedCredibility(100, -honeypotPenalty))

	// near the floor the penalty clamps instead of going below it
	assert.Equal(t, CredibilityFloor, AdjustedCredibility(45, -honeypotPenalty))
}

func TestAuditPenaltyStacksOnConsensusDelta(t *testing.T) {
	// a judge who agreed with a later-contradicted consensus: +1 at
	// finalization, then -10 when the audit lands
	score := AdjustedCredibility(100, consensusDelta)
	assert.Equal(t, 101, score)
	score = AdjustedCredibility(score, -auditPenalty)
	assert.Equal(t, 91, score)

	// a dissenting judge only carries the -1 from finalization
	assert.Equal(t, 99, AdjustedCredibility(100, -consensusDelta))
}

func TestCredibilityFloorHoldsUnderAnyPenaltySequence(t *testing.T) {
	score := 45
	for _, delta := range []int{-honeypotPenalty, -auditPenalty, -honeypotPenalty, -consensusDelta} {
		score = AdjustedCredibility(score, delta)
		assert.GreaterOrEqual(t, score, CredibilityFloor)
	}
	assert.Equal(t, CredibilityFloor, score)

	// recovery from the floor still works
	assert.Equal(t, CredibilityFloor+1, AdjustedCredibility(score, consensusDelta))
}

func TestDecoyVoteResolvesThroughAssignment(t *testing.T) {
	const decoyID, realID = 5, 6

	// two judges see the same pair under different letter mappings; both
	// picked the decoy
	fooled := []models.Vote{
		{LabelAssignment: `{"a":5,"b":6}`, Letter: "a"},
		{LabelAssignment: `{"a":6,"b":5}`, Letter: "b"},
	}
	for i := range fooled {
		supported, err := SupportedParticipant(&fooled[i])
		require.NoError(t, err)
		assert.Equal(t, uint(decoyID), supported)
		assert.NotEqual(t, uint(realID), supported)
	}

	// a judge who spotted the decoy backed the real participant
	clean := models.Vote{LabelAssignment: `{"a":5,"b":6}`, Letter: "b"}
	supported, err := SupportedParticipant(&clean)
	require.NoError(t, err)
	assert.Equal(t, uint(realID), supported)
}
