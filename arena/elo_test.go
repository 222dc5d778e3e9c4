package arena

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpectedScore(t *testing.T) {
	assert.InDelta(t, 0.5, ExpectedScore(1000, 1000), 0.0001)
	assert.InDelta(t, 0.76, ExpectedScore(1200, 1000), 0.01)
	assert.InDelta(t, 0.24, ExpectedScore(1000, 1200), 0.01)
}

func TestKFactorBoundary(t *testing.T) {
	assert.Equal(t, 32, KFactor(0))
	assert.Equal(t, 32, KFactor(29))
	assert.Equal(t, 16, KFactor(30))
	assert.Equal(t, 16, KFactor(100))
}

func TestMatchResultEqualRatings(t *testing.T) {
	// two fresh participants at 1000: winner gains 16, loser drops 16
	newWinner, newLoser := MatchResult(1000, 1000, 0, 0)
	assert.Equal(t, 1016, newWinner)
	assert.Equal(t, 984, newLoser)
}

func TestMatchResultZeroSumWithEqualK(t *testing.T) {
	cases := []struct {
		winner, loser int
	}{
		{1000, 1000},
		{1100, 900},
		{900, 1100},
		{1350, 1280},
	}
	for _, tc := range cases {
		newWinner, newLoser := MatchResult(tc.winner, tc.loser, 0, 0)
		deltaWinner := newWinner - tc.winner
		deltaLoser := newLoser - tc.loser
		assert.Zero(t, deltaWinner+deltaLoser,
			"deltas must cancel for equal K factors (%d vs %d)", tc.winner, tc.loser)
		assert.Positive(t, deltaWinner)
	}
}

func TestMatchResultMixedKFactors(t *testing.T) {
	// an established winner moves half as far as a fresh loser
	newWinner, newLoser := MatchResult(1000, 1000, 50, 0)
	assert.Equal(t, 1008, newWinner)
	assert.Equal(t, 984, newLoser)
	// non-zero-sum across unequal K is accepted behavior, not a bug
	assert.NotZero(t, (newWinner-1000)+(newLoser-1000))
}

func TestMatchResultUpsetGainsMore(t *testing.T) {
	// an underdog win moves ratings further than a favorite win
	upsetWinner, _ := MatchResult(900, 1100, 0, 0)
	favoriteWinner, _ := MatchResult(1100, 900, 0, 0)
	assert.Greater(t, upsetWinner-900, favoriteWinner-1100)
}
