// Package mask redacts matched terms inside original subtitle text.
package mask

import (
	"sort"
	"unicode"
	"unicode/utf8"

	"censorr/internal/fuzzy"
)

// Apply rewrites text with every located match replaced by an equal-length
// asterisk run. Longer windows are substituted first so a phrase match is
// not partially clobbered by one of its own words. For each match the
// normalized window text is tried first and the configured term word
// second; a match that cannot be located anywhere leaves the text
// untouched. Replacement is case-insensitive and anchored at word
// boundaries, and the output always has the same character length as the
// input.
func Apply(text string, matches []fuzzy.Match) string {
	if len(matches) == 0 {
		return text
	}

	ordered := make([]fuzzy.Match, len(matches))
	copy(ordered, matches)
	sort.SliceStable(ordered, func(i, j int) bool {
		return utf8.RuneCountInString(ordered[i].WindowText) > utf8.RuneCountInString(ordered[j].WindowText)
	})

	masked := []rune(text)
	for _, match := range ordered {
		for _, pattern := range []string{match.WindowText, match.Term.Word} {
			if pattern == "" {
				continue
			}
			if maskWholeWords(masked, pattern) > 0 {
				break
			}
		}
	}
	return string(masked)
}

// Located reports whether Apply would redact anything for the match, used
// by callers that want to log unlocatable matches.
func Located(text string, match fuzzy.Match) bool {
	runes := []rune(text)
	for _, pattern := range []string{match.WindowText, match.Term.Word} {
		if pattern == "" {
			continue
		}
		if len(findWholeWords(runes, pattern)) > 0 {
			return true
		}
	}
	return false
}

// CountWholeWords returns how many whole-word, case-insensitive
// occurrences of pattern exist in text.
func CountWholeWords(text, pattern string) int {
	return len(findWholeWords([]rune(text), pattern))
}

// maskWholeWords overwrites every whole-word occurrence of pattern in
// text with asterisks, returning the number of replacements.
func maskWholeWords(text []rune, pattern string) int {
	hits := findWholeWords(text, pattern)
	width := utf8.RuneCountInString(pattern)
	for _, start := range hits {
		for i := start; i < start+width; i++ {
			text[i] = '*'
		}
	}
	return len(hits)
}

// findWholeWords returns the start offsets (in runes) of every
// non-overlapping case-insensitive occurrence of pattern that sits on
// word boundaries.
func findWholeWords(text []rune, pattern string) []int {
	pat := []rune(pattern)
	for i, r := range pat {
		pat[i] = unicode.ToLower(r)
	}
	if len(pat) == 0 || len(pat) > len(text) {
		return nil
	}

	var hits []int
	for i := 0; i+len(pat) <= len(text); {
		if !runesEqualFold(text[i:i+len(pat)], pat) || !onWordBoundary(text, i, i+len(pat)) {
			i++
			continue
		}
		hits = append(hits, i)
		i += len(pat)
	}
	return hits
}

func runesEqualFold(window, loweredPat []rune) bool {
	for i, r := range loweredPat {
		if unicode.ToLower(window[i]) != r {
			return false
		}
	}
	return true
}

func onWordBoundary(text []rune, start, end int) bool {
	if start > 0 && isWordRune(text[start-1]) {
		return false
	}
	if end < len(text) && isWordRune(text[end]) {
		return false
	}
	return true
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
