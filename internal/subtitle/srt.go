package subtitle

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Event is one dialogue cue. Start and End are milliseconds from the
// beginning of the media; the masking stage replaces Text only.
type Event struct {
	StartMS int64
	EndMS   int64
	Text    string
}

// ParseSRT decodes SRT content into ordered events. Cue index lines are
// optional and ignored; blocks without a valid timing line are skipped.
func ParseSRT(content string) []Event {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	blocks := strings.Split(strings.TrimSpace(content), "\n\n")

	var events []Event
	for _, block := range blocks {
		lines := strings.Split(strings.TrimSpace(block), "\n")
		timingIdx := -1
		var start, end int64
		for i, line := range lines {
			if s, e, ok := parseTimingLine(line); ok {
				timingIdx = i
				start, end = s, e
				break
			}
		}
		if timingIdx < 0 {
			continue
		}
		text := strings.Join(lines[timingIdx+1:], "\n")
		events = append(events, Event{StartMS: start, EndMS: end, Text: text})
	}
	return events
}

// LoadSRT reads and parses an SRT file.
func LoadSRT(path string) ([]Event, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read srt: %w", err)
	}
	return ParseSRT(string(data)), nil
}

// RenderSRT encodes events as SRT with sequential cue numbers.
func RenderSRT(events []Event) string {
	var b strings.Builder
	for i, ev := range events {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(strconv.Itoa(i + 1))
		b.WriteByte('\n')
		b.WriteString(formatTimestamp(ev.StartMS))
		b.WriteString(" --> ")
		b.WriteString(formatTimestamp(ev.EndMS))
		b.WriteByte('\n')
		b.WriteString(ev.Text)
		b.WriteByte('\n')
	}
	return b.String()
}

// WriteSRT renders events to a file.
func WriteSRT(path string, events []Event) error {
	if err := os.WriteFile(path, []byte(RenderSRT(events)), 0o644); err != nil {
		return fmt.Errorf("write srt: %w", err)
	}
	return nil
}

func parseTimingLine(line string) (startMS, endMS int64, ok bool) {
	if !strings.Contains(line, "-->") {
		return 0, 0, false
	}
	parts := strings.SplitN(line, "-->", 2)
	start, err := parseTimestamp(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, false
	}
	end, err := parseTimestamp(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, false
	}
	return start, end, true
}

// parseTimestamp converts "HH:MM:SS,mmm" to milliseconds. A period is
// accepted in place of the comma since some tools emit it.
func parseTimestamp(value string) (int64, error) {
	value = strings.ReplaceAll(strings.TrimSpace(value), ".", ",")
	timeParts := strings.Split(value, ",")
	if len(timeParts) != 2 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	hms := strings.Split(timeParts[0], ":")
	if len(hms) != 3 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	hours, errH := strconv.Atoi(hms[0])
	minutes, errM := strconv.Atoi(hms[1])
	seconds, errS := strconv.Atoi(hms[2])
	millis, errMS := strconv.Atoi(timeParts[1])
	if errH != nil || errM != nil || errS != nil || errMS != nil {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	return int64(hours)*3600000 + int64(minutes)*60000 + int64(seconds)*1000 + int64(millis), nil
}

func formatTimestamp(ms int64) string {
	if ms < 0 {
		ms = 0
	}
	hours := ms / 3600000
	minutes := (ms % 3600000) / 60000
	seconds := (ms % 60000) / 1000
	millis := ms % 1000
	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, seconds, millis)
}
