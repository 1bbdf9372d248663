package audio

import (
	"strconv"
	"strings"

	"censorr/internal/language"
	"censorr/internal/media/ffprobe"
)

// Selection identifies the dialogue stream chosen for muting.
type Selection struct {
	Stream ffprobe.Stream
	// Index is the container stream index, or -1 when nothing matched.
	Index int
	// Reason records why this stream won, for log output.
	Reason string
}

// Select picks the audio stream to process. Streams matching one of the
// preferred languages win; among those the default-flagged stream is
// preferred, then container order. With no language match the container's
// default audio stream is used, then the first audio stream.
func Select(streams []ffprobe.Stream, preferredLanguages []string) Selection {
	var audio []ffprobe.Stream
	for _, stream := range streams {
		if strings.EqualFold(stream.CodecType, "audio") {
			audio = append(audio, stream)
		}
	}
	if len(audio) == 0 {
		return Selection{Index: -1}
	}

	var languageMatches []ffprobe.Stream
	for _, stream := range audio {
		lang := language.ExtractFromTags(stream.Tags)
		if language.Matches(lang, preferredLanguages) {
			languageMatches = append(languageMatches, stream)
		}
	}

	pool := languageMatches
	reason := "language match"
	if len(pool) == 0 {
		pool = audio
		reason = "no language match, container fallback"
	}

	for _, stream := range pool {
		if stream.Disposition.Default == 1 {
			return Selection{Stream: stream, Index: stream.Index, Reason: reason + ", default flag"}
		}
	}
	return Selection{Stream: pool[0], Index: pool[0].Index, Reason: reason + ", first stream"}
}

// Label returns a human-readable summary of the selected stream.
func (s Selection) Label() string {
	if s.Index < 0 {
		return "none"
	}
	parts := make([]string, 0, 4)
	if lang := language.ExtractFromTags(s.Stream.Tags); lang != "" {
		parts = append(parts, lang)
	}
	if s.Stream.CodecName != "" {
		parts = append(parts, s.Stream.CodecName)
	}
	if s.Stream.Channels > 0 {
		parts = append(parts, strconv.Itoa(s.Stream.Channels)+"ch")
	}
	if title := strings.TrimSpace(s.Stream.Tag("title")); title != "" {
		parts = append(parts, title)
	}
	if len(parts) == 0 {
		return "audio"
	}
	return strings.Join(parts, " | ")
}
