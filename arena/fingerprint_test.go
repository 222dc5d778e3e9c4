package arena

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFingerprintInvariantToCaseAndPunctuation(t *testing.T) {
	a := "The quick brown fox jumps over the lazy dog."
	b := "the QUICK brown fox, jumps; over the lazy dog!!"
	assert.Equal(t, Fingerprint(a), Fingerprint(b))
}

func TestFingerprintInvariantToWordOrder(t *testing.T) {
	a := "coffee keeps me awake through long winter evenings"
	b := "evenings winter long through awake me keeps coffee"
	assert.Equal(t, Fingerprint(a), Fingerprint(b))
}

func TestFingerprintIgnoresShortWords(t *testing.T) {
	// words of length <= 2 never contribute
	a := "an ox is in the barn eating quietly"
	b := "ze ox at my the barn eating quietly"
	assert.Equal(t, Fingerprint(a), Fingerprint(b))
}

func TestFingerprintDistinguishesDifferentContent(t *testing.T) {
	a := "I spent the whole afternoon repotting my ferns"
	b := "The meeting ran long and everyone left exhausted"
	assert.NotEqual(t, Fingerprint(a), Fingerprint(b))
}

func TestTooSimilarCatchesShuffledAnagramResponses(t *testing.T) {
	// word-shuffled, differently punctuated near-copies must be caught
	responseA := "Honestly, the best part of travel is getting lost somewhere new."
	responseB := "somewhere new... getting lost -- travel is the best part; honestly!"
	assert.True(t, TooSimilar(responseA, responseB))
}

func TestTooSimilarPassesDistinctResponses(t *testing.T) {
	responseA := "I would probably just keep the money and feel guilty for weeks."
	responseB := "Handing it to the nearest shop counter feels like the only honest move."
	assert.False(t, TooSimilar(responseA, responseB))
}

func TestFingerprintLength(t *testing.T) {
	assert.Len(t, Fingerprint("whatever text goes here"), 16)
}
