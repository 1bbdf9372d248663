package fuzzy

import (
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// similarity is a symmetric 0-100 edit-similarity percentage: the
// Levenshtein distance normalized over the longer string. Equal strings
// score exactly 100. The denominator is the longer string's rune count,
// not the combined length of an indel ratio, so a short term inside a
// much longer window scores lower; term thresholds are calibrated
// against this stricter scale.
func similarity(a, b string) float64 {
	if a == b {
		return 100
	}
	longest := utf8.RuneCountInString(a)
	if lb := utf8.RuneCountInString(b); lb > longest {
		longest = lb
	}
	if longest == 0 {
		return 100
	}
	distance := levenshtein.ComputeDistance(a, b)
	return 100 * (1 - float64(distance)/float64(longest))
}

// scoreWord scores a single normalized word against a single-word target.
//
// Exact and suffix-equivalent forms score 100. Aggressive terms of three
// or more characters additionally accept substring containment and a fixed
// set of compound particles on either side. Everything else falls through
// to edit similarity with a penalty when the opening letters disagree:
// short words that differ mainly in their first sound are usually distinct
// words, not obfuscations.
func scoreWord(query, target string, aggressive bool) float64 {
	if query == target {
		return 100
	}

	suffixes := baseSuffixes
	if aggressive {
		suffixes = aggressiveSuffixes
	}
	for _, suffix := range suffixes {
		if query == target+suffix || target == query+suffix {
			return 100
		}
	}

	if aggressive && utf8.RuneCountInString(target) >= 3 {
		if strings.Contains(query, target) {
			return 100
		}
		for _, particle := range compoundParticles {
			if query == particle+target || query == target+particle {
				return 100
			}
		}
	}

	score := similarity(query, target)
	if utf8.RuneCountInString(query) >= 3 && utf8.RuneCountInString(target) >= 3 &&
		firstRune(query) != firstRune(target) &&
		!strings.Contains(query, target) && !strings.Contains(target, query) {
		score -= 25
		if score < 0 {
			score = 0
		}
	}
	return score
}

func firstRune(s string) rune {
	r, _ := utf8.DecodeRuneInString(s)
	return r
}
