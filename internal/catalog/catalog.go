package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// DefaultThreshold is the catalog-wide similarity threshold applied to
// terms that do not override it.
const DefaultThreshold = 85.0

// Term is one configured profanity with its matching parameters.
// Terms are immutable once constructed; duplicate words with different
// thresholds are kept as distinct entries.
type Term struct {
	Word       string
	Threshold  float64
	Aggressive bool
}

// Catalog is the ordered list of resolved terms.
type Catalog struct {
	Terms            []Term
	DefaultThreshold float64
}

// Len returns the number of configured terms.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.Terms)
}

// Words returns the configured words in catalog order.
func (c *Catalog) Words() []string {
	words := make([]string, 0, c.Len())
	for _, term := range c.Terms {
		words = append(words, term.Word)
	}
	return words
}

// entry mirrors the structured JSON term shape. Threshold pointers
// distinguish "absent" from zero.
type entry struct {
	Word            string   `json:"word"`
	Threshold       *float64 `json:"threshold"`
	FuzzyThreshold  *float64 `json:"fuzzy_threshold"`
	Aggressive      bool     `json:"aggressive"`
	VariantStrategy string   `json:"variant_strategy"`
}

// Load reads and parses a term file. Individual malformed entries are
// dropped silently; an empty result is not an error here (the masking
// entry point treats it as a configuration failure).
func Load(path string, defaultThreshold float64, aggressive bool) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read term catalog: %w", err)
	}
	return Parse(data, defaultThreshold, aggressive)
}

// Parse decodes catalog content. JSON input must be an array or an object
// with a "profanities" array; anything that fails JSON decoding entirely
// falls back to newline-delimited words. When aggressive is set, every
// term is resolved as aggressive regardless of its own entry, so terms
// stay immutable after construction.
func Parse(data []byte, defaultThreshold float64, aggressive bool) (*Catalog, error) {
	if defaultThreshold <= 0 {
		defaultThreshold = DefaultThreshold
	}
	cat := &Catalog{DefaultThreshold: defaultThreshold}

	trimmed := bytes.TrimSpace(data)
	if !json.Valid(trimmed) {
		cat.Terms = parseLines(data, defaultThreshold, aggressive)
		return cat, nil
	}

	var raw []json.RawMessage
	switch {
	case len(trimmed) > 0 && trimmed[0] == '[':
		if err := json.Unmarshal(trimmed, &raw); err != nil {
			return nil, fmt.Errorf("parse term catalog: %w", err)
		}
	case len(trimmed) > 0 && trimmed[0] == '{':
		var wrapper struct {
			Profanities []json.RawMessage `json:"profanities"`
		}
		if err := json.Unmarshal(trimmed, &wrapper); err != nil {
			return nil, fmt.Errorf("parse term catalog: %w", err)
		}
		if wrapper.Profanities == nil {
			return nil, fmt.Errorf("term catalog object is missing a %q array", "profanities")
		}
		raw = wrapper.Profanities
	default:
		return nil, fmt.Errorf("term catalog must be a JSON array or an object with a %q array", "profanities")
	}

	for _, item := range raw {
		if term, ok := resolveEntry(item, defaultThreshold, aggressive); ok {
			cat.Terms = append(cat.Terms, term)
		}
	}
	return cat, nil
}

func resolveEntry(item json.RawMessage, defaultThreshold float64, forceAggressive bool) (Term, bool) {
	var word string
	if err := json.Unmarshal(item, &word); err == nil {
		word = strings.TrimSpace(word)
		if word == "" {
			return Term{}, false
		}
		return Term{Word: word, Threshold: defaultThreshold, Aggressive: forceAggressive}, true
	}

	var e entry
	if err := json.Unmarshal(item, &e); err != nil {
		return Term{}, false
	}
	word = strings.TrimSpace(e.Word)
	if word == "" {
		return Term{}, false
	}

	threshold := defaultThreshold
	if e.Threshold != nil {
		threshold = *e.Threshold
	} else if e.FuzzyThreshold != nil {
		threshold = *e.FuzzyThreshold
	}

	aggressive := forceAggressive || e.Aggressive ||
		strings.EqualFold(strings.TrimSpace(e.VariantStrategy), "aggressive")
	return Term{Word: word, Threshold: threshold, Aggressive: aggressive}, true
}

func parseLines(data []byte, defaultThreshold float64, aggressive bool) []Term {
	var terms []Term
	for _, line := range strings.Split(string(data), "\n") {
		word := strings.TrimSpace(line)
		if word == "" || strings.HasPrefix(word, "#") {
			continue
		}
		terms = append(terms, Term{Word: word, Threshold: defaultThreshold, Aggressive: aggressive})
	}
	return terms
}
