package arena

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecoyResponseNotEmpty(t *testing.T) {
	for i := 0; i < 50; i++ {
		assert.NotEmpty(t, DecoyResponse("What makes someone truly interesting?"))
	}
}

func TestDecoyResponseTruncatesLongPrompts(t *testing.T) {
	prompt := strings.Repeat("why ", 100)
	for i := 0; i < 50; i++ {
		decoy := DecoyResponse(prompt)
		assert.NotContains(t, decoy, prompt, "the full prompt must never be echoed")
	}
}

func TestDecoyResponseIsFormulaic(t *testing.T) {
	// decoys come from a fixed template set; over enough draws the same
	// opening phrases recur
	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		decoy := DecoyResponse("prompt")
		words := strings.Fields(decoy)
		seen[words[0]] = true
	}
	assert.LessOrEqual(t, len(seen), len(decoyTemplates))
}
