package remux

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"censorr/internal/language"
	"censorr/internal/media/ffprobe"
	"censorr/internal/services"
)

// Mode selects how the muted track joins the output container.
type Mode string

const (
	// ModeReplace drops the original audio streams and keeps only the
	// muted track. Embedded subtitles are dropped too; the masked track
	// ships as a sidecar.
	ModeReplace Mode = "replace"
	// ModeAppend keeps everything from the source and adds the muted
	// track as an extra stream.
	ModeAppend Mode = "append"
)

// Naming selects the library layout for the output path.
type Naming string

const (
	// NamingMovie inserts an edition tag into the file name, before any
	// existing " {", " [", or " (" qualifier.
	NamingMovie Naming = "movie"
	// NamingTV expects .../<show>/<season>/<episode> and tags the show
	// directory instead, keeping season and episode names unchanged.
	NamingTV Naming = "tv"
)

const (
	editionTag = "{edition-Censorr}"
	showTag    = "[Censorr]"
)

// Options configures one remux invocation.
type Options struct {
	Mode   Mode
	Naming Naming
	// OutputBase overrides where the tagged copy lands; empty keeps it
	// next to the source (movie) or under the source library root (tv).
	OutputBase string
	// SidecarLanguage names the masked subtitle sidecar, default "eng".
	SidecarLanguage string
	FFmpegCommand   string
	FFprobeCommand  string
}

func (o Options) withDefaults() (Options, error) {
	switch o.Mode {
	case "":
		o.Mode = ModeReplace
	case ModeReplace, ModeAppend:
	default:
		return o, services.Wrap(services.ErrValidation, "remux", "options",
			fmt.Sprintf("unknown remux mode %q", o.Mode), nil)
	}
	switch o.Naming {
	case "":
		o.Naming = NamingMovie
	case NamingMovie, NamingTV:
	default:
		return o, services.Wrap(services.ErrValidation, "remux", "options",
			fmt.Sprintf("unknown naming mode %q", o.Naming), nil)
	}
	if o.SidecarLanguage == "" {
		o.SidecarLanguage = "eng"
	}
	if o.FFmpegCommand == "" {
		o.FFmpegCommand = "ffmpeg"
	}
	return o, nil
}

// Result reports where the remuxed container and its sidecar landed.
type Result struct {
	OutputPath  string
	SidecarPath string
}

// runFFmpeg is swapped out by tests.
var runFFmpeg = func(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

// Remux produces the tagged output container with muted audio and writes
// the masked subtitle next to it as <stem>.<lang>.censorr.srt.
func Remux(ctx context.Context, opts Options, videoPath, maskedSubtitlePath, mutedAudioPath string, logger *slog.Logger) (Result, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.Level(math.MaxInt)}))
	}
	opts, err := opts.withDefaults()
	if err != nil {
		return Result{}, err
	}
	for _, path := range []string{videoPath, maskedSubtitlePath, mutedAudioPath} {
		if _, err := os.Stat(path); err != nil {
			return Result{}, services.Wrap(services.ErrNotFound, "remux", "inputs", "", err)
		}
	}

	probe, err := ffprobe.Inspect(ctx, opts.FFprobeCommand, videoPath)
	if err != nil {
		return Result{}, services.Wrap(services.ErrExternalTool, "remux", "probe", "", err)
	}

	outputPath, err := OutputPath(videoPath, opts.Naming, opts.OutputBase)
	if err != nil {
		return Result{}, err
	}
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return Result{}, services.Wrap(services.ErrTransient, "remux", "mkdir", "", err)
	}

	args := buildArgs(opts.Mode, videoPath, mutedAudioPath, outputPath, probe.AudioStreamCount())
	output, err := runFFmpeg(ctx, opts.FFmpegCommand, args...)
	if err != nil {
		return Result{}, services.Wrap(services.ErrExternalTool, "remux", "ffmpeg",
			strings.TrimSpace(string(output)), err)
	}

	sidecarPath, err := writeSidecar(outputPath, maskedSubtitlePath, opts.SidecarLanguage)
	if err != nil {
		return Result{}, err
	}
	logger.Info("remuxed censored output",
		slog.String("mode", string(opts.Mode)),
		slog.String("output", outputPath),
		slog.String("sidecar", sidecarPath))
	return Result{OutputPath: outputPath, SidecarPath: sidecarPath}, nil
}

// OutputPath computes the tagged destination for a source file.
func OutputPath(videoPath string, naming Naming, outputBase string) (string, error) {
	suffix := filepath.Ext(videoPath)
	switch naming {
	case NamingMovie:
		stem := strings.TrimSuffix(filepath.Base(videoPath), suffix)
		insertAt := len(stem)
		for _, token := range []string{" {", " [", " ("} {
			if pos := strings.Index(stem, token); pos != -1 {
				insertAt = pos
				break
			}
		}
		newStem := strings.TrimSpace(strings.TrimRight(stem[:insertAt], " ") + " " + editionTag + " " + strings.TrimLeft(stem[insertAt:], " "))
		baseDir := outputBase
		if baseDir == "" {
			baseDir = filepath.Dir(videoPath)
		}
		return filepath.Join(baseDir, newStem+suffix), nil
	case NamingTV:
		seasonDir := filepath.Dir(videoPath)
		showDir := filepath.Dir(seasonDir)
		baseRoot := outputBase
		if baseRoot == "" {
			baseRoot = filepath.Dir(showDir)
		}
		showName := filepath.Base(showDir) + " " + showTag
		return filepath.Join(baseRoot, showName, filepath.Base(seasonDir), filepath.Base(videoPath)), nil
	default:
		return "", services.Wrap(services.ErrValidation, "remux", "naming",
			fmt.Sprintf("unknown naming mode %q", naming), nil)
	}
}

// buildArgs assembles the ffmpeg invocation. Streams are copied, never
// re-encoded; only the new audio track gets a title.
func buildArgs(mode Mode, videoPath, audioPath, outputPath string, sourceAudioCount int) []string {
	args := []string{"-i", videoPath, "-i", audioPath}

	newAudioIdx := 0
	if mode == ModeAppend {
		args = append(args, "-map", "0", "-map", "1:a?")
		newAudioIdx = sourceAudioCount
	} else {
		args = append(args,
			"-map", "0:v?",
			"-map", "0:d?",
			"-map", "0:t?",
			"-map_chapters", "0",
			"-map", "1:a?")
	}

	args = append(args, "-c", "copy")
	args = append(args, fmt.Sprintf("-metadata:s:a:%d", newAudioIdx), "title=Censorr")
	args = append(args, "-y", outputPath)
	return args
}

func writeSidecar(outputPath, subtitlePath, lang string) (string, error) {
	lang = language.ToISO3(lang)
	suffix := filepath.Ext(outputPath)
	stem := strings.TrimSuffix(filepath.Base(outputPath), suffix)
	sidecarPath := filepath.Join(filepath.Dir(outputPath), fmt.Sprintf("%s.%s.censorr.srt", stem, lang))

	src, err := os.Open(subtitlePath)
	if err != nil {
		return "", services.Wrap(services.ErrTransient, "remux", "sidecar", "", err)
	}
	defer src.Close()
	dst, err := os.Create(sidecarPath)
	if err != nil {
		return "", services.Wrap(services.ErrTransient, "remux", "sidecar", "", err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return "", services.Wrap(services.ErrTransient, "remux", "sidecar", "", err)
	}
	if err := dst.Close(); err != nil {
		return "", services.Wrap(services.ErrTransient, "remux", "sidecar", "", err)
	}
	return sidecarPath, nil
}
