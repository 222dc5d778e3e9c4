package arena

import (
	"testing"

	"arenaserver/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func voteFor(t *testing.T, assignment, letter string) models.Vote {
	t.Helper()
	return models.Vote{LabelAssignment: assignment, Letter: letter}
}

func TestTallyVotesMapsThroughPrivateAssignments(t *testing.T) {
	// three judges, three different label assignments, all supporting 7
	votes := []models.Vote{
		voteFor(t, `{"a":7,"b":9}`, "a"),
		voteFor(t, `{"a":9,"b":7}`, "b"),
		voteFor(t, `{"a":7,"b":9}`, "a"),
	}

	tally, err := TallyVotes(votes)
	require.NoError(t, err)
	assert.Equal(t, 3, tally[7])
	assert.Zero(t, tally[9])
	assert.Equal(t, uint(7), PluralityWinner(tally))
}

func TestTallyVotesSplitCommittee(t *testing.T) {
	votes := []models.Vote{
		voteFor(t, `{"a":7,"b":9}`, "a"),
		voteFor(t, `{"a":7,"b":9}`, "b"),
		voteFor(t, `{"a":9,"b":7}`, "a"),
	}

	tally, err := TallyVotes(votes)
	require.NoError(t, err)
	assert.Equal(t, 1, tally[7])
	assert.Equal(t, 2, tally[9])
	assert.Equal(t, uint(9), PluralityWinner(tally))
}

func TestThreeVotesNeverTie(t *testing.T) {
	letters := []string{"a", "b"}
	for _, l1 := range letters {
		for _, l2 := range letters {
			for _, l3 := range letters {
				votes := []models.Vote{
					voteFor(t, `{"a":1,"b":2}`, l1),
					voteFor(t, `{"a":1,"b":2}`, l2),
					voteFor(t, `{"a":2,"b":1}`, l3),
				}
				tally, err := TallyVotes(votes)
				require.NoError(t, err)
				assert.NotEqual(t, tally[1], tally[2],
					"odd committees cannot tie (%s %s %s)", l1, l2, l3)
			}
		}
	}
}

func TestTallyVotesRejectsBadLetter(t *testing.T) {
	votes := []models.Vote{voteFor(t, `{"a":1,"b":2}`, "c")}
	_, err := TallyVotes(votes)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestTallyVotesRejectsCorruptAssignment(t *testing.T) {
	votes := []models.Vote{voteFor(t, `not json`, "a")}
	_, err := TallyVotes(votes)
	assert.Error(t, err)
}

func TestMappedParticipant(t *testing.T) {
	la := LabelAssignment{A: 11, B: 22}

	got, err := la.MappedParticipant("a")
	require.NoError(t, err)
	assert.Equal(t, uint(11), got)

	got, err = la.MappedParticipant("b")
	require.NoError(t, err)
	assert.Equal(t, uint(22), got)

	_, err = la.MappedParticipant("x")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestRandomAssignmentCoversBothOrientations(t *testing.T) {
	seenStraight, seenFlipped := false, false
	for i := 0; i < 200 && !(seenStraight && seenFlipped); i++ {
		la := RandomAssignment(1, 2)
		if la.A == 1 {
			assert.Equal(t, uint(2), la.B)
			seenStraight = true
		} else {
			assert.Equal(t, uint(2), la.A)
			assert.Equal(t, uint(1), la.B)
			seenFlipped = true
		}
	}
	assert.True(t, seenStraight, "straight orientation never produced")
	assert.True(t, seenFlipped, "flipped orientation never produced")
}
