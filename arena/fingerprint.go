package arena

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"
	"unicode"
)

// Fingerprint reduces a response to a short hash that survives casing,
// punctuation and word-order changes: lowercase, strip non-word runes, drop
// words of length <= 2, sort the rest. Verbatim copies and shuffled
// near-copies of the same text collide on purpose.
func Fingerprint(response string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(response) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}

	words := strings.Fields(b.String())
	kept := words[:0]
	for _, w := range words {
		if len(w) > 2 {
			kept = append(kept, w)
		}
	}
	sort.Strings(kept)

	sum := sha256.Sum256([]byte(strings.Join(kept, " ")))
	return hex.EncodeToString(sum[:])[:16]
}

// TooSimilar reports whether two responses normalize to the same
// fingerprint and the match should be discarded before judging.
func TooSimilar(responseA, responseB string) bool {
	return Fingerprint(responseA) == Fingerprint(responseB)
}
