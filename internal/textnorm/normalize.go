package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks decomposes text and drops combining marks, so accented
// characters collapse to their base letters ("café" -> "cafe").
// Compatibility decomposition also folds ligatures and fullwidth forms
// ("ﬁ" -> "fi") before the marks are removed.
var stripMarks = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize converts raw dialogue text into canonical matchable form:
// lowercase, diacritics stripped, punctuation and digits replaced by
// spaces, whitespace collapsed. The function is idempotent and returns
// the empty string for empty or whitespace-only input.
func Normalize(text string) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}

	lowered := strings.ToLower(text)
	if stripped, _, err := transform.String(stripMarks, lowered); err == nil {
		lowered = stripped
	}

	var b strings.Builder
	b.Grow(len(lowered))
	for _, r := range lowered {
		if unicode.IsLetter(r) {
			b.WriteRune(r)
		} else {
			b.WriteByte(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
