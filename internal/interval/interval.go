package interval

import "sort"

// DefaultEpsilon is the gap, in seconds, below which two spans are
// treated as adjacent and merged.
const DefaultEpsilon = 0.001

// Span is a half-open time range in seconds with End >= Start.
type Span struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// Duration returns the span length in seconds.
func (s Span) Duration() float64 {
	return s.End - s.Start
}

// Merge sorts spans ascending by (start, end) and folds together any pair
// whose gap is within epsilon. The result is minimal, sorted, and pairwise
// non-overlapping beyond epsilon. The input slice is not modified.
func Merge(spans []Span, epsilon float64) []Span {
	if len(spans) == 0 {
		return nil
	}

	sorted := make([]Span, len(spans))
	copy(sorted, spans)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Start != sorted[j].Start {
			return sorted[i].Start < sorted[j].Start
		}
		return sorted[i].End < sorted[j].End
	})

	merged := make([]Span, 0, len(sorted))
	current := sorted[0]
	for _, span := range sorted[1:] {
		if span.Start <= current.End+epsilon {
			if span.End > current.End {
				current.End = span.End
			}
			continue
		}
		merged = append(merged, current)
		current = span
	}
	return append(merged, current)
}

// Gaps returns the maximal gaps within [0, total] not covered by the
// provided spans, keeping only gaps of at least minLen seconds and at most
// maxCount entries (maxCount <= 0 means unlimited). Spans are merged with
// DefaultEpsilon first, so callers may pass raw windows.
func Gaps(spans []Span, total, minLen float64, maxCount int) []Span {
	merged := Merge(spans, DefaultEpsilon)

	var gaps []Span
	cursor := 0.0
	for _, span := range merged {
		if span.Start-cursor >= minLen {
			gaps = append(gaps, Span{Start: cursor, End: span.Start})
		}
		if span.End > cursor {
			cursor = span.End
		}
	}
	if total-cursor >= minLen {
		gaps = append(gaps, Span{Start: cursor, End: total})
	}

	if maxCount > 0 && len(gaps) > maxCount {
		gaps = gaps[:maxCount]
	}
	return gaps
}
