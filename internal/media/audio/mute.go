package audio

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"strings"

	"censorr/internal/interval"
	"censorr/internal/services"
)

// FilterExpression renders the ffmpeg volume filter that silences the
// given windows. Spans must already be merged; times are seconds.
func FilterExpression(spans []interval.Span) string {
	if len(spans) == 0 {
		return ""
	}
	terms := make([]string, 0, len(spans))
	for _, span := range spans {
		terms = append(terms, fmt.Sprintf("between(t,%.3f,%.3f)", span.Start, span.End))
	}
	return fmt.Sprintf("volume=enable='%s':volume=0", strings.Join(terms, "+"))
}

// MuteResult reports where the muted track and its window sidecar landed.
type MuteResult struct {
	OutputPath  string
	WindowsPath string
	Windows     []interval.Span
}

// Mute silences the given windows in a WAV file. Windows are merged
// before rendering so adjacent matches become one continuous span. With
// no windows the input is re-encoded unchanged so downstream stages can
// rely on the output existing.
func Mute(ctx context.Context, ffmpegCommand, inputPath, outputPath, windowsPath string, spans []interval.Span, logger *slog.Logger) (MuteResult, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.Level(math.MaxInt)}))
	}
	if ffmpegCommand == "" {
		ffmpegCommand = "ffmpeg"
	}
	merged := interval.Merge(spans, interval.DefaultEpsilon)

	args := []string{"-hide_banner", "-y", "-i", inputPath}
	if expr := FilterExpression(merged); expr != "" {
		args = append(args, "-af", expr)
	}
	args = append(args, "-acodec", "pcm_s16le", outputPath)

	output, err := runFFmpeg(ctx, ffmpegCommand, args...)
	if err != nil {
		return MuteResult{}, services.Wrap(services.ErrExternalTool, "audio-mute", "ffmpeg",
			strings.TrimSpace(string(output)), err)
	}
	if err := WriteWindows(windowsPath, merged); err != nil {
		return MuteResult{}, err
	}
	logger.Info("muted profanity windows",
		slog.Int("windows", len(merged)),
		slog.String("path", outputPath))
	return MuteResult{OutputPath: outputPath, WindowsPath: windowsPath, Windows: merged}, nil
}

// WriteWindows persists merged mute windows as a JSON sidecar so QC and
// reruns do not depend on the match report.
func WriteWindows(path string, spans []interval.Span) error {
	if spans == nil {
		spans = []interval.Span{}
	}
	data, err := json.MarshalIndent(spans, "", "  ")
	if err != nil {
		return services.Wrap(services.ErrTransient, "audio-mute", "windows", "", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return services.Wrap(services.ErrTransient, "audio-mute", "windows", "", err)
	}
	return nil
}

// LoadWindows reads a mute window sidecar written by WriteWindows.
func LoadWindows(path string) ([]interval.Span, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, services.Wrap(services.ErrValidation, "audio-qc", "windows", "", err)
	}
	var spans []interval.Span
	if err := json.Unmarshal(data, &spans); err != nil {
		return nil, services.Wrap(services.ErrValidation, "audio-qc", "windows", "", err)
	}
	return spans, nil
}
