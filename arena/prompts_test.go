package arena

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPromptHistoryRoundTrip(t *testing.T) {
	ids := splitPromptHistory("3,17,42")
	assert.Equal(t, []uint{3, 17, 42}, ids)
	assert.Equal(t, "3,17,42", joinPromptHistory(ids))
}

func TestPromptHistoryEmpty(t *testing.T) {
	assert.Nil(t, splitPromptHistory(""))
	assert.Equal(t, "", joinPromptHistory(nil))
}

func TestPromptHistorySkipsGarbage(t *testing.T) {
	assert.Equal(t, []uint{5, 9}, splitPromptHistory("5,junk,9"))
}

func TestAppendPromptHistoryCapsLength(t *testing.T) {
	history := []uint{1, 2, 3, 4, 5}
	history = appendPromptHistory(history, 6)
	assert.Equal(t, []uint{2, 3, 4, 5, 6}, history)
}
