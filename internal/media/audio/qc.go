package audio

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"regexp"
	"strconv"
	"strings"

	"censorr/internal/interval"
	"censorr/internal/services"
)

// QC defaults. Control spans are short samples taken from the gaps
// between mute windows so the comparison uses the same recording.
const (
	DefaultMinDeltaDB    = 20.0
	DefaultSampleSeconds = 1.0
	DefaultMaxSamples    = 5
)

// QCOptions tunes the silence verification pass.
type QCOptions struct {
	FFmpegCommand string
	MinDeltaDB    float64
	SampleSeconds float64
	MaxSamples    int
}

func (o QCOptions) withDefaults() QCOptions {
	if o.FFmpegCommand == "" {
		o.FFmpegCommand = "ffmpeg"
	}
	if o.MinDeltaDB <= 0 {
		o.MinDeltaDB = DefaultMinDeltaDB
	}
	if o.SampleSeconds <= 0 {
		o.SampleSeconds = DefaultSampleSeconds
	}
	if o.MaxSamples <= 0 {
		o.MaxSamples = DefaultMaxSamples
	}
	return o
}

// QCReport is the persisted outcome of one verification pass.
type QCReport struct {
	Passed        bool    `json:"passed"`
	MutedMeanDB   float64 `json:"muted_mean_db"`
	ControlMeanDB float64 `json:"control_mean_db"`
	DeltaDB       float64 `json:"delta_db"`
	MinDeltaDB    float64 `json:"min_delta_db"`
	MutedSamples  int     `json:"muted_samples"`
	ControlSpans  int     `json:"control_spans"`
}

var meanVolumePattern = regexp.MustCompile(`mean_volume:\s*(-?\d+(?:\.\d+)?)\s*dB`)

// Verify measures loudness inside the muted windows and inside clean
// control spans, then requires the muted side to be at least MinDeltaDB
// quieter. duration is the track length in seconds.
func Verify(ctx context.Context, opts QCOptions, audioPath string, windows []interval.Span, duration float64, logger *slog.Logger) (QCReport, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.Level(math.MaxInt)}))
	}
	opts = opts.withDefaults()
	report := QCReport{MinDeltaDB: opts.MinDeltaDB}

	merged := interval.Merge(windows, interval.DefaultEpsilon)
	if len(merged) == 0 {
		// Nothing was muted, so there is nothing to verify.
		report.Passed = true
		return report, nil
	}

	mutedSamples := sampleSpans(merged, opts.SampleSeconds, opts.MaxSamples)
	controls := interval.Gaps(merged, duration, opts.SampleSeconds, opts.MaxSamples)
	controlSamples := sampleSpans(controls, opts.SampleSeconds, opts.MaxSamples)
	if len(controlSamples) == 0 {
		return report, services.Wrap(services.ErrValidation, "audio-qc", "controls",
			"no clean spans available for loudness comparison", nil)
	}

	mutedMean, err := meanVolumeOver(ctx, opts.FFmpegCommand, audioPath, mutedSamples)
	if err != nil {
		return report, err
	}
	controlMean, err := meanVolumeOver(ctx, opts.FFmpegCommand, audioPath, controlSamples)
	if err != nil {
		return report, err
	}

	report.MutedMeanDB = mutedMean
	report.ControlMeanDB = controlMean
	report.DeltaDB = controlMean - mutedMean
	report.MutedSamples = len(mutedSamples)
	report.ControlSpans = len(controlSamples)
	report.Passed = report.DeltaDB >= opts.MinDeltaDB

	logger.Info("audio silence verification",
		slog.Bool("passed", report.Passed),
		slog.Float64("muted_mean_db", report.MutedMeanDB),
		slog.Float64("control_mean_db", report.ControlMeanDB),
		slog.Float64("delta_db", report.DeltaDB))
	if !report.Passed {
		return report, services.Wrap(services.ErrValidation, "audio-qc", "loudness",
			fmt.Sprintf("muted windows only %.1f dB below control, need %.1f dB",
				report.DeltaDB, opts.MinDeltaDB), nil)
	}
	return report, nil
}

// WriteReport persists a QC report as JSON.
func WriteReport(path string, report QCReport) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return services.Wrap(services.ErrTransient, "audio-qc", "report", "", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return services.Wrap(services.ErrTransient, "audio-qc", "report", "", err)
	}
	return nil
}

// sampleSpans trims each span to at most sampleSeconds and caps the count
// so verification stays cheap on match-heavy tracks.
func sampleSpans(spans []interval.Span, sampleSeconds float64, maxSamples int) []interval.Span {
	var samples []interval.Span
	for _, span := range spans {
		if len(samples) >= maxSamples {
			break
		}
		end := span.End
		if span.Start+sampleSeconds < end {
			end = span.Start + sampleSeconds
		}
		if end <= span.Start {
			continue
		}
		samples = append(samples, interval.Span{Start: span.Start, End: end})
	}
	return samples
}

// meanVolumeOver averages volumedetect's mean_volume across the spans.
func meanVolumeOver(ctx context.Context, ffmpegCommand, audioPath string, spans []interval.Span) (float64, error) {
	if len(spans) == 0 {
		return 0, services.Wrap(services.ErrValidation, "audio-qc", "volumedetect", "no spans to measure", nil)
	}
	total := 0.0
	for _, span := range spans {
		mean, err := measureMeanVolume(ctx, ffmpegCommand, audioPath, span)
		if err != nil {
			return 0, err
		}
		total += mean
	}
	return total / float64(len(spans)), nil
}

func measureMeanVolume(ctx context.Context, ffmpegCommand, audioPath string, span interval.Span) (float64, error) {
	args := []string{
		"-hide_banner",
		"-ss", strconv.FormatFloat(span.Start, 'f', 3, 64),
		"-t", strconv.FormatFloat(span.Duration(), 'f', 3, 64),
		"-i", audioPath,
		"-af", "volumedetect",
		"-f", "null", "-",
	}
	output, err := runFFmpeg(ctx, ffmpegCommand, args...)
	if err != nil {
		return 0, services.Wrap(services.ErrExternalTool, "audio-qc", "volumedetect",
			strings.TrimSpace(string(output)), err)
	}
	match := meanVolumePattern.FindSubmatch(output)
	if match == nil {
		return 0, services.Wrap(services.ErrExternalTool, "audio-qc", "volumedetect",
			"mean_volume not found in ffmpeg output", nil)
	}
	return strconv.ParseFloat(string(match[1]), 64)
}
