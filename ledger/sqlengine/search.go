package sqlengine

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// SearchKey folds text for accent- and case-insensitive matching:
// "Les Misérables" and "les miserables" produce the same key.
// Everything that is not a letter or digit collapses into single spaces.
func SearchKey(parts ...string) string {
	joined := strings.Join(parts, " ")

	stripAccents := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(stripAccents, joined)
	if err != nil {
		stripped = joined
	}

	folded := cases.Fold().String(stripped)

	var b strings.Builder
	pendingSpace := false

	for _, r := range folded {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingSpace && b.Len() > 0 {
				b.WriteByte(' ')
			}
			b.WriteRune(r)
			pendingSpace = false

			continue
		}

		pendingSpace = true
	}

	return b.String()
}
