package arena

import (
	"testing"

	"arenaserver/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func participant(id, accountID uint, rating int) models.Participant {
	p := models.Participant{AccountID: accountID, Rating: rating}
	p.ID = id
	return p
}

func pairIDs(pairs [][2]models.Participant) [][2]uint {
	ids := make([][2]uint, 0, len(pairs))
	for _, pair := range pairs {
		ids = append(ids, [2]uint{pair[0].ID, pair[1].ID})
	}
	return ids
}

func TestPairByRatingPrefersCloseRatings(t *testing.T) {
	pool := []models.Participant{
		participant(1, 100, 1000),
		participant(2, 200, 1010),
		participant(3, 300, 1500),
		participant(4, 400, 1490),
	}

	pairs := PairByRating(pool)
	require.Len(t, pairs, 2)
	assert.Contains(t, pairIDs(pairs), [2]uint{1, 2})
	assert.Contains(t, pairIDs(pairs), [2]uint{4, 3})
}

func TestPairByRatingNeverPairsSameAccount(t *testing.T) {
	pool := []models.Participant{
		participant(1, 100, 1000),
		participant(2, 100, 1005), // same account as 1
		participant(3, 300, 1002),
	}

	pairs := PairByRating(pool)
	require.Len(t, pairs, 1)
	for _, pair := range pairs {
		assert.NotEqual(t, pair[0].AccountID, pair[1].AccountID)
	}
}

func TestPairByRatingFallsBackOutsideBand(t *testing.T) {
	// no opponent within the band: pair anyway rather than bench both
	pool := []models.Participant{
		participant(1, 100, 800),
		participant(2, 200, 1600),
	}

	pairs := PairByRating(pool)
	require.Len(t, pairs, 1)
}

func TestPairByRatingLeavesOddOneOut(t *testing.T) {
	pool := []models.Participant{
		participant(1, 100, 1000),
		participant(2, 200, 1010),
		participant(3, 300, 1020),
	}

	pairs := PairByRating(pool)
	assert.Len(t, pairs, 1)
}

func TestPairByRatingEmptyAndSingle(t *testing.T) {
	assert.Empty(t, PairByRating(nil))
	assert.Empty(t, PairByRating([]models.Participant{participant(1, 100, 1000)}))
}
