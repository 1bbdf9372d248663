package subtitle

import (
	"sort"
	"strings"
)

// MergeEvents combines events from several tracks, dropping duplicates by
// (start, end, case-folded text) and sorting by start time. The first
// occurrence of a duplicate wins.
func MergeEvents(tracks ...[]Event) []Event {
	type key struct {
		start int64
		end   int64
		text  string
	}

	seen := make(map[key]struct{})
	var merged []Event
	for _, track := range tracks {
		for _, ev := range track {
			k := key{ev.StartMS, ev.EndMS, strings.ToLower(strings.TrimSpace(ev.Text))}
			if _, dup := seen[k]; dup {
				continue
			}
			seen[k] = struct{}{}
			merged = append(merged, ev)
		}
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].StartMS < merged[j].StartMS
	})
	return merged
}
