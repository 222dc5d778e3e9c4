package arena

import "math"

// K factor selection: new participants move fast, established ones slowly.
const (
	KFactorNew         = 32
	KFactorEstablished = 16
	kFactorThreshold   = 30 // lifetime matches; at exactly 30 the low K applies
)

// ExpectedScore returns the probability-like expected score of a player
// rated ra against one rated rb, per the standard elo curve.
func ExpectedScore(ra, rb int) float64 {
	return 1.0 / (1.0 + math.Pow(10, float64(rb-ra)/400.0))
}

// KFactor picks the volatility constant from a participant's lifetime
// match count.
func KFactor(matchCount int) int {
	if matchCount < kFactorThreshold {
		return KFactorNew
	}
	return KFactorEstablished
}

// MatchResult computes both new ratings for a decided match. Each side's K
// factor is applied independently, so the two deltas only cancel exactly
// when the K factors match. That asymmetry is intentional and kept.
func MatchResult(winnerRating, loserRating, winnerMatches, loserMatches int) (newWinnerRating, newLoserRating int) {
	expectedWinner := ExpectedScore(winnerRating, loserRating)
	expectedLoser := 1.0 - expectedWinner

	kWinner := float64(KFactor(winnerMatches))
	kLoser := float64(KFactor(loserMatches))

	// winner scores 1, loser scores 0
	newWinnerRating = winnerRating + int(math.Round(kWinner*(1.0-expectedWinner)))
	newLoserRating = loserRating + int(math.Round(kLoser*(0.0-expectedLoser)))
	return newWinnerRating, newLoserRating
}
