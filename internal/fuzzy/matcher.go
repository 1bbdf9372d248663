package fuzzy

import (
	"strings"

	"censorr/internal/catalog"
	"censorr/internal/textnorm"
)

// Match is one scored hit of a term against a window of normalized text.
// WindowText is the exact normalized word run that produced the score; it
// carries no offsets, the masker re-locates it in the original text.
type Match struct {
	Term       catalog.Term
	WindowText string
	Score      float64
}

// target is a term resolved for matching: normalized once at construction
// so the window loop never touches raw catalog shapes.
type target struct {
	term       catalog.Term
	normalized string
	wordCount  int
}

// Matcher finds catalog terms in free-form text.
type Matcher struct {
	targets []target
}

// NewMatcher prepares a matcher from a loaded catalog. Terms whose words
// normalize to nothing are skipped.
func NewMatcher(cat *catalog.Catalog) *Matcher {
	m := &Matcher{}
	if cat == nil {
		return m
	}
	m.targets = make([]target, 0, len(cat.Terms))
	for _, term := range cat.Terms {
		normalized := textnorm.Normalize(term.Word)
		if normalized == "" {
			continue
		}
		m.targets = append(m.targets, target{
			term:       term,
			normalized: normalized,
			wordCount:  len(strings.Fields(normalized)),
		})
	}
	return m
}

// FindMatches scores every term against every candidate window in text and
// returns all hits meeting their term's threshold. Matches come back in
// catalog order, then window position, without deduplication; a span may
// match several terms or the same term at several positions.
func (m *Matcher) FindMatches(text string) []Match {
	if len(m.targets) == 0 {
		return nil
	}

	words := strings.Fields(textnorm.Normalize(text))
	if len(words) == 0 {
		return nil
	}

	var matches []Match
	for _, tgt := range m.targets {
		for i := 0; i+tgt.wordCount <= len(words); i++ {
			window := strings.Join(words[i:i+tgt.wordCount], " ")
			if isStopword(window) {
				continue
			}
			score := scoreWindow(window, tgt)
			if score >= tgt.term.Threshold {
				matches = append(matches, Match{Term: tgt.term, WindowText: window, Score: score})
			}
		}
	}
	return matches
}

func scoreWindow(window string, tgt target) float64 {
	if tgt.wordCount == 1 {
		return scoreWord(window, tgt.normalized, tgt.term.Aggressive)
	}
	return similarity(window, tgt.normalized)
}
