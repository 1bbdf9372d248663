// Package subtitle parses, renders, merges, and extracts SRT subtitles.
//
// Events carry millisecond time bounds so match records can copy them
// verbatim. Extraction drives ffprobe/ffmpeg to pull text subtitle
// streams out of a container, filtered by language/title selectors, and
// merges the resulting tracks into a single deduplicated file.
package subtitle
