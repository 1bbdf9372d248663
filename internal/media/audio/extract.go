package audio

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"censorr/internal/services"
)

// ExtractOptions controls the WAV working-copy decode.
type ExtractOptions struct {
	FFmpegCommand string
	// StreamIndex is the container index of the selected audio stream.
	StreamIndex int
	// SampleRate and Channels preserve the source layout when set; zero
	// leaves the decision to ffmpeg.
	SampleRate int
	Channels   int
}

// Extract decodes one audio stream to PCM WAV. Muting re-encodes the
// stream anyway, so the working copy is kept lossless and simple.
func Extract(ctx context.Context, opts ExtractOptions, sourcePath, outputPath string, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.Level(math.MaxInt)}))
	}
	ffmpeg := opts.FFmpegCommand
	if ffmpeg == "" {
		ffmpeg = "ffmpeg"
	}
	args := []string{
		"-hide_banner", "-y",
		"-i", sourcePath,
		"-map", fmt.Sprintf("0:%d", opts.StreamIndex),
		"-vn",
		"-acodec", "pcm_s16le",
	}
	if opts.SampleRate > 0 {
		args = append(args, "-ar", strconv.Itoa(opts.SampleRate))
	}
	if opts.Channels > 0 {
		args = append(args, "-ac", strconv.Itoa(opts.Channels))
	}
	args = append(args, outputPath)

	output, err := runFFmpeg(ctx, ffmpeg, args...)
	if err != nil {
		return services.Wrap(services.ErrExternalTool, "audio-extract", "ffmpeg",
			strings.TrimSpace(string(output)), err)
	}
	logger.Info("extracted audio stream",
		slog.Int("stream", opts.StreamIndex),
		slog.String("path", outputPath))
	return nil
}
