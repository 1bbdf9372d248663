package pipeline

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"censorr/internal/catalog"
	"censorr/internal/censor"
	"censorr/internal/config"
	"censorr/internal/logging"
	"censorr/internal/media/audio"
	"censorr/internal/media/ffprobe"
	"censorr/internal/media/remux"
	"censorr/internal/report"
	"censorr/internal/services"
	"censorr/internal/subtitle"
)

// Intermediate artifact names inside the per-run working directory.
const (
	mergedSubtitlesName = "extracted_subtitles.srt"
	maskedSubtitlesName = "masked_subtitles.srt"
	matchReportName     = "profanity_matches.csv"
	workingAudioName    = "audio.wav"
	muteWindowsName     = "mute_windows.json"
	qcReportName        = "qc_report.json"
)

// Result summarizes one completed run.
type Result struct {
	RunID       string
	FinalPath   string
	SidecarPath string
	MaskedPath  string
	ReportPath  string
	Matches     int
	// NoMatches is set when the dialogue track contained no catalog
	// terms; the source needs no censoring and no output is produced.
	NoMatches bool
}

// Pipeline runs the full censoring workflow for one source file.
type Pipeline struct {
	cfg *config.Config
	log *slog.Logger
}

// New builds a Pipeline from loaded configuration.
func New(cfg *config.Config, logger *slog.Logger) (*Pipeline, error) {
	if cfg == nil {
		return nil, services.Wrap(services.ErrConfiguration, "pipeline", "new",
			"configuration is required", nil)
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Pipeline{cfg: cfg, log: logger}, nil
}

// Run processes sourcePath end to end: subtitle extraction, masking,
// subtitle QC, audio extraction, muting, audio QC, and remux. Intermediates
// land in a per-source directory under the configured output dir.
func (p *Pipeline) Run(ctx context.Context, sourcePath string) (Result, error) {
	runID := uuid.NewString()
	ctx = services.WithRunID(ctx, runID)
	log := logging.WithContext(ctx, p.log)

	if _, err := os.Stat(sourcePath); err != nil {
		return Result{}, services.Wrap(services.ErrNotFound, "pipeline", "source", "", err)
	}

	stem := strings.TrimSuffix(filepath.Base(sourcePath), filepath.Ext(sourcePath))
	workDir := filepath.Join(p.cfg.Paths.OutputDir, stem)
	if err := os.MkdirAll(workDir, 0o755); err != nil {
		return Result{}, services.Wrap(services.ErrTransient, "pipeline", "workdir", "", err)
	}

	cat, err := catalog.Load(p.cfg.Paths.CatalogPath, p.cfg.Matching.DefaultThreshold, p.cfg.Matching.Aggressive)
	if err != nil {
		return Result{}, services.Wrap(services.ErrConfiguration, "pipeline", "catalog", "", err)
	}
	masker, err := censor.New(cat, log)
	if err != nil {
		return Result{}, err
	}

	log.Info("pipeline started",
		logging.String("source", sourcePath),
		logging.Int("terms", cat.Len()))

	result := Result{
		RunID:      runID,
		MaskedPath: filepath.Join(workDir, maskedSubtitlesName),
		ReportPath: filepath.Join(workDir, matchReportName),
	}
	mergedPath := filepath.Join(workDir, mergedSubtitlesName)

	extractor := subtitle.NewExtractor(subtitle.ExtractOptions{
		Include:        subtitle.Selector{Languages: p.cfg.Subtitles.Languages},
		Exclude:        subtitle.Selector{TitleKeywords: p.cfg.Subtitles.ExcludeTitleKeywords, Keywords: p.cfg.Subtitles.ExcludeKeywords},
		FFmpegCommand:  p.cfg.Tools.FFmpeg,
		FFprobeCommand: p.cfg.Tools.FFprobe,
	}, p.log)

	err = p.stage(ctx, "subtitles", func(ctx context.Context, _ *slog.Logger) error {
		return extractor.ExtractMerged(ctx, sourcePath, mergedPath)
	})
	if err != nil {
		return Result{}, err
	}

	var summary censor.Summary
	err = p.stage(ctx, "mask", func(ctx context.Context, _ *slog.Logger) error {
		var maskErr error
		summary, maskErr = masker.MaskFile(ctx, mergedPath, result.MaskedPath, result.ReportPath)
		return maskErr
	})
	if err != nil {
		return Result{}, err
	}
	result.Matches = summary.Matches

	if summary.Matches == 0 {
		log.Info("no catalog terms found; source needs no censoring",
			logging.Int("events", summary.Events))
		result.NoMatches = true
		return result, nil
	}

	err = p.stage(ctx, "subtitle-qc", func(ctx context.Context, log *slog.Logger) error {
		return censor.VerifyFile(result.MaskedPath, cat, log)
	})
	if err != nil {
		return Result{}, err
	}

	probe, err := ffprobe.Inspect(ctx, p.cfg.Tools.FFprobe, sourcePath)
	if err != nil {
		return Result{}, services.Wrap(services.ErrExternalTool, "pipeline", "probe", "", err)
	}
	selection := audio.Select(probe.Streams, p.cfg.Audio.Languages)
	if selection.Index < 0 {
		return Result{}, services.Wrap(services.ErrValidation, "pipeline", "audio",
			"source has no audio streams", nil)
	}
	log.Info("selected audio stream",
		logging.Int("stream", selection.Index),
		logging.String("track", selection.Label()),
		logging.String("reason", selection.Reason))

	workingAudio := filepath.Join(workDir, workingAudioName)
	err = p.stage(ctx, "audio-extract", func(ctx context.Context, log *slog.Logger) error {
		return audio.Extract(ctx, audio.ExtractOptions{
			FFmpegCommand: p.cfg.Tools.FFmpeg,
			StreamIndex:   selection.Index,
			SampleRate:    selection.Stream.SampleRateHz(),
			Channels:      selection.Stream.Channels,
		}, sourcePath, workingAudio, log)
	})
	if err != nil {
		return Result{}, err
	}

	mutedAudio := filepath.Join(workDir, "muted_"+workingAudioName)
	windowsPath := filepath.Join(workDir, muteWindowsName)
	var muted audio.MuteResult
	err = p.stage(ctx, "audio-mute", func(ctx context.Context, log *slog.Logger) error {
		var muteErr error
		muted, muteErr = audio.Mute(ctx, p.cfg.Tools.FFmpeg, workingAudio, mutedAudio,
			windowsPath, report.MuteWindows(summary.Records), log)
		return muteErr
	})
	if err != nil {
		return Result{}, err
	}

	err = p.stage(ctx, "audio-qc", func(ctx context.Context, log *slog.Logger) error {
		qc, qcErr := audio.Verify(ctx, audio.QCOptions{
			FFmpegCommand: p.cfg.Tools.FFmpeg,
			MinDeltaDB:    p.cfg.Audio.MinDeltaDB,
			SampleSeconds: p.cfg.Audio.SampleSeconds,
			MaxSamples:    p.cfg.Audio.MaxSamples,
		}, mutedAudio, muted.Windows, probe.DurationSeconds(), log)
		if writeErr := audio.WriteReport(filepath.Join(workDir, qcReportName), qc); writeErr != nil && qcErr == nil {
			return writeErr
		}
		return qcErr
	})
	if err != nil {
		return Result{}, err
	}

	err = p.stage(ctx, "remux", func(ctx context.Context, log *slog.Logger) error {
		remuxed, remuxErr := remux.Remux(ctx, remux.Options{
			Mode:            remux.Mode(p.cfg.Remux.Mode),
			Naming:          remux.Naming(p.cfg.Remux.Naming),
			OutputBase:      p.cfg.Remux.OutputBase,
			SidecarLanguage: p.cfg.Remux.SidecarLanguage,
			FFmpegCommand:   p.cfg.Tools.FFmpeg,
			FFprobeCommand:  p.cfg.Tools.FFprobe,
		}, sourcePath, result.MaskedPath, muted.OutputPath, log)
		if remuxErr != nil {
			return remuxErr
		}
		result.FinalPath = remuxed.OutputPath
		result.SidecarPath = remuxed.SidecarPath
		return nil
	})
	if err != nil {
		return Result{}, err
	}

	p.cleanup(log, workDir, mergedPath, workingAudio, mutedAudio)

	log.Info("pipeline completed",
		logging.String("final", result.FinalPath),
		logging.Int("matches", result.Matches))
	return result, nil
}

// stage runs one pipeline step with stage-scoped logging.
func (p *Pipeline) stage(ctx context.Context, name string, fn func(context.Context, *slog.Logger) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	stageCtx := services.WithStage(ctx, name)
	log := logging.WithContext(stageCtx, p.log)
	start := time.Now()
	log.Info("stage started")
	if err := fn(stageCtx, log); err != nil {
		log.Error("stage failed", logging.Error(err))
		return err
	}
	log.Info("stage completed", logging.Duration("elapsed", time.Since(start)))
	return nil
}

// cleanup removes bulky intermediates, keeping the masked track, the
// match report, the mute windows, and the QC report for inspection. Only
// paths inside the working directory are touched.
func (p *Pipeline) cleanup(log *slog.Logger, workDir string, paths ...string) {
	entries, err := filepath.Glob(filepath.Join(workDir, "*.stream*.srt"))
	if err == nil {
		paths = append(paths, entries...)
	}
	for _, path := range paths {
		if path == "" {
			continue
		}
		rel, err := filepath.Rel(workDir, path)
		if err != nil || strings.HasPrefix(rel, "..") {
			continue
		}
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			log.Debug("cleanup skipped", logging.String("path", path), logging.Error(err))
		}
	}
}

// WorkDir returns the per-source working directory used by Run.
func (p *Pipeline) WorkDir(sourcePath string) string {
	stem := strings.TrimSuffix(filepath.Base(sourcePath), filepath.Ext(sourcePath))
	return filepath.Join(p.cfg.Paths.OutputDir, stem)
}
