package arena

import (
	"fmt"
	"testing"

	"arenaserver/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boolPtr(b bool) *bool { return &b }

func flagTypes(flags []AnomalyFlag) []string {
	types := make([]string, 0, len(flags))
	for _, f := range flags {
		types = append(types, f.Type)
	}
	return types
}

func TestDetectAnomaliesNeedsEnoughData(t *testing.T) {
	votes := []models.Vote{
		{LabelAssignment: `{"a":1,"b":2}`, Letter: "a"},
	}
	flags, err := DetectAnomalies(42, votes)
	require.NoError(t, err)
	assert.Empty(t, flags)
}

func TestDetectAnomaliesFlagsCollusion(t *testing.T) {
	// 11 of 20 votes support participant 5, through varying assignments
	var votes []models.Vote
	for i := 0; i < 11; i++ {
		if i%2 == 0 {
			votes = append(votes, models.Vote{LabelAssignment: `{"a":5,"b":6}`, Letter: "a"})
		} else {
			votes = append(votes, models.Vote{LabelAssignment: `{"a":6,"b":5}`, Letter: "b"})
		}
	}
	for i := 0; i < 9; i++ {
		target := 10 + i // spread remaining support across distinct participants
		votes = append(votes, models.Vote{
			LabelAssignment: fmt.Sprintf(`{"a":%d,"b":%d}`, target, target+100),
			Letter:          "a",
		})
	}

	flags, err := DetectAnomalies(42, votes)
	require.NoError(t, err)
	assert.Contains(t, flagTypes(flags), FlagPotentialCollusion)
}

func TestDetectAnomaliesFlagsPositionBias(t *testing.T) {
	// 17 of 20 votes on letter "a" is above the 80% threshold
	var votes []models.Vote
	for i := 0; i < 17; i++ {
		votes = append(votes, models.Vote{
			LabelAssignment: fmt.Sprintf(`{"a":%d,"b":%d}`, i+1, i+200),
			Letter:          "a",
		})
	}
	for i := 0; i < 3; i++ {
		votes = append(votes, models.Vote{
			LabelAssignment: fmt.Sprintf(`{"a":%d,"b":%d}`, i+300, i+400),
			Letter:          "b",
		})
	}

	flags, err := DetectAnomalies(42, votes)
	require.NoError(t, err)
	assert.Contains(t, flagTypes(flags), FlagPositionBias)
}

func TestDetectAnomaliesFlagsLowAgreementRate(t *testing.T) {
	// 4 agreements in 12 rated votes is below the 50% bar; alternate
	// letters and targets to stay clear of the other detectors
	var votes []models.Vote
	for i := 0; i < 12; i++ {
		letter := "a"
		if i%2 == 0 {
			letter = "b"
		}
		votes = append(votes, models.Vote{
			LabelAssignment:     fmt.Sprintf(`{"a":%d,"b":%d}`, i+1, i+500),
			Letter:              letter,
			AgreedWithConsensus: boolPtr(i < 4),
		})
	}

	flags, err := DetectAnomalies(42, votes)
	require.NoError(t, err)
	assert.Contains(t, flagTypes(flags), FlagAuditDisagreement)
}

func TestDetectAnomaliesCleanHistory(t *testing.T) {
	// balanced letters, spread targets, healthy agreement: no flags
	var votes []models.Vote
	for i := 0; i < 20; i++ {
		letter := "a"
		if i%2 == 0 {
			letter = "b"
		}
		votes = append(votes, models.Vote{
			LabelAssignment:     fmt.Sprintf(`{"a":%d,"b":%d}`, i+1, i+500),
			Letter:              letter,
			AgreedWithConsensus: boolPtr(i%4 != 0),
		})
	}

	flags, err := DetectAnomalies(42, votes)
	require.NoError(t, err)
	assert.Empty(t, flags)
}
