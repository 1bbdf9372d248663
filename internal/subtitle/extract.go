package subtitle

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os/exec"
	"path/filepath"
	"strings"

	"censorr/internal/language"
	"censorr/internal/media/ffprobe"
	"censorr/internal/services"
)

// Text subtitle codecs ffmpeg can convert to SRT. Image-based codecs
// carry no text to match against and are skipped.
var textCodecs = map[string]struct{}{
	"subrip":   {},
	"srt":      {},
	"ass":      {},
	"ssa":      {},
	"webvtt":   {},
	"mov_text": {},
	"text":     {},
}

var imageCodecs = map[string]struct{}{
	"hdmv_pgs_subtitle": {},
	"dvd_subtitle":      {},
	"dvb_subtitle":      {},
	"xsub":              {},
}

// Selector filters subtitle streams by metadata. A stream matches when any
// populated field matches: its language tag, a keyword in its title, or a
// keyword in any tag value.
type Selector struct {
	Languages     []string
	TitleKeywords []string
	Keywords      []string
}

func (s Selector) matches(stream ffprobe.Stream) bool {
	lang := language.ExtractFromTags(stream.Tags)
	if language.Matches(lang, s.Languages) {
		return true
	}
	title := strings.ToLower(stream.Tag("title"))
	for _, kw := range s.TitleKeywords {
		if kw = strings.ToLower(strings.TrimSpace(kw)); kw != "" && strings.Contains(title, kw) {
			return true
		}
	}
	for _, kw := range s.Keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" {
			continue
		}
		for _, value := range stream.Tags {
			if strings.Contains(strings.ToLower(value), kw) {
				return true
			}
		}
	}
	return false
}

func (s Selector) empty() bool {
	return len(s.Languages) == 0 && len(s.TitleKeywords) == 0 && len(s.Keywords) == 0
}

// ExtractOptions controls stream selection and extraction.
type ExtractOptions struct {
	// Include keeps only matching streams; when empty every text stream
	// is kept. Exclude drops matching streams afterwards.
	Include Selector
	Exclude Selector

	FFmpegCommand  string
	FFprobeCommand string
}

// Extractor pulls text subtitle streams out of a container as SRT files.
type Extractor struct {
	opts ExtractOptions
	log  *slog.Logger

	run func(ctx context.Context, name string, args ...string) ([]byte, error)
}

// NewExtractor builds an extractor. A nil logger disables logging.
func NewExtractor(opts ExtractOptions, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.Level(math.MaxInt)}))
	}
	if opts.FFmpegCommand == "" {
		opts.FFmpegCommand = "ffmpeg"
	}
	return &Extractor{
		opts: opts,
		log:  logger,
		run: func(ctx context.Context, name string, args ...string) ([]byte, error) {
			return exec.CommandContext(ctx, name, args...).CombinedOutput()
		},
	}
}

// SelectStreams applies include and exclude selectors to the container's
// subtitle streams. Image-based streams are dropped with a warning.
func (e *Extractor) SelectStreams(result ffprobe.Result) ([]ffprobe.Stream, error) {
	var selected []ffprobe.Stream
	for _, stream := range result.SubtitleStreams() {
		codec := strings.ToLower(stream.CodecName)
		if _, ok := imageCodecs[codec]; ok {
			e.log.Warn("skipping image-based subtitle stream",
				slog.Int("stream", stream.Index),
				slog.String("codec", stream.CodecName))
			continue
		}
		if _, ok := textCodecs[codec]; !ok {
			e.log.Warn("skipping subtitle stream with unsupported codec",
				slog.Int("stream", stream.Index),
				slog.String("codec", stream.CodecName))
			continue
		}
		if !e.opts.Include.empty() && !e.opts.Include.matches(stream) {
			continue
		}
		if e.opts.Exclude.matches(stream) {
			e.log.Debug("excluding subtitle stream",
				slog.Int("stream", stream.Index),
				slog.String("language", language.ExtractFromTags(stream.Tags)))
			continue
		}
		selected = append(selected, stream)
	}
	if len(selected) == 0 {
		return nil, services.Wrap(services.ErrValidation, "subtitles", "select",
			"no subtitle stream matched the configured selectors", nil)
	}
	return selected, nil
}

// Extract inspects the source, selects subtitle streams, converts each to
// SRT under outputDir, and returns the written paths in stream order.
func (e *Extractor) Extract(ctx context.Context, sourcePath, outputDir string) ([]string, error) {
	result, err := ffprobe.Inspect(ctx, e.opts.FFprobeCommand, sourcePath)
	if err != nil {
		return nil, services.Wrap(services.ErrExternalTool, "subtitles", "probe", "", err)
	}
	streams, err := e.SelectStreams(result)
	if err != nil {
		return nil, err
	}

	stem := strings.TrimSuffix(filepath.Base(sourcePath), filepath.Ext(sourcePath))
	var paths []string
	for _, stream := range streams {
		outPath := filepath.Join(outputDir, fmt.Sprintf("%s.stream%d.srt", stem, stream.Index))
		args := []string{
			"-hide_banner", "-y",
			"-i", sourcePath,
			"-map", fmt.Sprintf("0:%d", stream.Index),
			"-c:s", "srt",
			outPath,
		}
		output, err := e.run(ctx, e.opts.FFmpegCommand, args...)
		if err != nil {
			return nil, services.Wrap(services.ErrExternalTool, "subtitles", "extract",
				strings.TrimSpace(string(output)), err)
		}
		e.log.Info("extracted subtitle stream",
			slog.Int("stream", stream.Index),
			slog.String("codec", stream.CodecName),
			slog.String("path", outPath))
		paths = append(paths, outPath)
	}
	return paths, nil
}

// ExtractMerged extracts all selected streams and merges them into a
// single deduplicated SRT at outputPath.
func (e *Extractor) ExtractMerged(ctx context.Context, sourcePath, outputPath string) error {
	paths, err := e.Extract(ctx, sourcePath, filepath.Dir(outputPath))
	if err != nil {
		return err
	}
	tracks := make([][]Event, 0, len(paths))
	for _, path := range paths {
		events, err := LoadSRT(path)
		if err != nil {
			return services.Wrap(services.ErrValidation, "subtitles", "merge", "", err)
		}
		tracks = append(tracks, events)
	}
	merged := MergeEvents(tracks...)
	if err := WriteSRT(outputPath, merged); err != nil {
		return services.Wrap(services.ErrTransient, "subtitles", "merge", "", err)
	}
	e.log.Info("merged subtitle tracks",
		slog.Int("tracks", len(tracks)),
		slog.Int("events", len(merged)),
		slog.String("path", outputPath))
	return nil
}
