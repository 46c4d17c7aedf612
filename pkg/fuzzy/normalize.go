package fuzzy

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize folds a settlement name or a query to its match key: diacritics are
// stripped, case is folded, every rune that is not a letter or a digit becomes a
// single space. "Čierna nad Tisou" -> "cierna nad tisou".
func Normalize(s string) string {
	// transformers keep state, so they are built per call
	stripMarks := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(stripMarks, s)
	if err != nil {
		stripped = s
	}
	folded := cases.Fold().String(stripped)

	var sb strings.Builder
	sb.Grow(len(folded))
	pendingSpace := false
	for _, r := range folded {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			pendingSpace = sb.Len() > 0
			continue
		}
		if pendingSpace {
			sb.WriteByte(' ')
			pendingSpace = false
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// Tokenize returns the words of the normalized form of s.
func Tokenize(s string) []string {
	return strings.Fields(Normalize(s))
}
