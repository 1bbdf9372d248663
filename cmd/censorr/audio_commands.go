package main

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"censorr/internal/interval"
	"censorr/internal/media/audio"
	"censorr/internal/media/ffprobe"
	"censorr/internal/report"
	"censorr/internal/services"
)

func newAudioCommand(ctx *commandContext) *cobra.Command {
	audioCmd := &cobra.Command{
		Use:   "audio",
		Short: "Extract, mute, and verify audio tracks",
	}

	audioCmd.AddCommand(newAudioExtractCommand(ctx))
	audioCmd.AddCommand(newAudioMuteCommand(ctx))
	audioCmd.AddCommand(newAudioQCCommand(ctx))

	return audioCmd
}

func newAudioExtractCommand(ctx *commandContext) *cobra.Command {
	var outputPath string
	var streamIndex int

	cmd := &cobra.Command{
		Use:   "extract <file>",
		Short: "Extract the dialogue audio stream to WAV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.newLogger()
			if err != nil {
				return err
			}

			source := args[0]
			probe, err := ffprobe.Inspect(cmd.Context(), cfg.Tools.FFprobe, source)
			if err != nil {
				return err
			}

			opts := audio.ExtractOptions{FFmpegCommand: cfg.Tools.FFmpeg, StreamIndex: streamIndex}
			if streamIndex < 0 {
				selection := audio.Select(probe.Streams, cfg.Audio.Languages)
				if selection.Index < 0 {
					return services.Wrap(services.ErrValidation, "audio-extract", "select",
						"source has no audio streams", nil)
				}
				opts.StreamIndex = selection.Index
				opts.SampleRate = selection.Stream.SampleRateHz()
				opts.Channels = selection.Stream.Channels
				fmt.Fprintf(cmd.OutOrStdout(), "Selected stream %d (%s): %s\n",
					selection.Index, selection.Reason, selection.Label())
			}

			target := outputPath
			if target == "" {
				target = filepath.Join(filepath.Dir(source), stemOf(source)+".wav")
			}
			if err := audio.Extract(cmd.Context(), opts, source, target, logger); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote audio to %s\n", target)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "WAV destination (default <stem>.wav)")
	cmd.Flags().IntVar(&streamIndex, "stream", -1, "Container stream index (default: language-based selection)")
	return cmd
}

func newAudioMuteCommand(ctx *commandContext) *cobra.Command {
	var reportPath string
	var outputPath string
	var windowsPath string

	cmd := &cobra.Command{
		Use:   "mute <audio.wav>",
		Short: "Silence the time windows from a match report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.newLogger()
			if err != nil {
				return err
			}

			source := args[0]
			spans, err := report.ReadMuteWindows(reportPath)
			if err != nil {
				return err
			}
			if len(spans) == 0 {
				return services.Wrap(services.ErrValidation, "audio-mute", "windows",
					fmt.Sprintf("match report %s contains no mute windows", reportPath), nil)
			}

			target := outputPath
			if target == "" {
				target = filepath.Join(filepath.Dir(source), "muted_"+filepath.Base(source))
			}
			windows := windowsPath
			if windows == "" {
				windows = filepath.Join(filepath.Dir(source), stemOf(source)+".windows.json")
			}

			result, err := audio.Mute(cmd.Context(), cfg.Tools.FFmpeg, source, target, windows, spans, logger)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Muted %d windows\n", len(result.Windows))
			fmt.Fprintf(cmd.OutOrStdout(), "Output:  %s\n", result.OutputPath)
			fmt.Fprintf(cmd.OutOrStdout(), "Windows: %s\n", result.WindowsPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&reportPath, "report", "", "Match report CSV with start_ms/end_ms columns")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Muted WAV destination (default muted_<name>)")
	cmd.Flags().StringVar(&windowsPath, "windows", "", "Mute window sidecar destination (default <stem>.windows.json)")
	_ = cmd.MarkFlagRequired("report")
	return cmd
}

func newAudioQCCommand(ctx *commandContext) *cobra.Command {
	var windowsPath string
	var reportPath string

	cmd := &cobra.Command{
		Use:   "qc <muted.wav>",
		Short: "Verify muted windows are silent relative to the rest of the track",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.newLogger()
			if err != nil {
				return err
			}

			source := args[0]
			var spans []interval.Span
			switch {
			case windowsPath != "":
				spans, err = audio.LoadWindows(windowsPath)
			case reportPath != "":
				spans, err = report.ReadMuteWindows(reportPath)
			default:
				return errors.New("provide --windows or --report")
			}
			if err != nil {
				return err
			}

			probe, err := ffprobe.Inspect(cmd.Context(), cfg.Tools.FFprobe, source)
			if err != nil {
				return err
			}

			qc, err := audio.Verify(cmd.Context(), audio.QCOptions{
				FFmpegCommand: cfg.Tools.FFmpeg,
				MinDeltaDB:    cfg.Audio.MinDeltaDB,
				SampleSeconds: cfg.Audio.SampleSeconds,
				MaxSamples:    cfg.Audio.MaxSamples,
			}, source, spans, probe.DurationSeconds(), logger)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "QC passed: muted mean %.1f dB, control mean %.1f dB, delta %.1f dB\n",
				qc.MutedMeanDB, qc.ControlMeanDB, qc.DeltaDB)
			return nil
		},
	}

	cmd.Flags().StringVar(&windowsPath, "windows", "", "Mute window JSON sidecar")
	cmd.Flags().StringVar(&reportPath, "report", "", "Match report CSV fallback when no sidecar exists")
	return cmd
}
