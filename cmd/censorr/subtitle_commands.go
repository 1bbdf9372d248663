package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"censorr/internal/catalog"
	"censorr/internal/censor"
	"censorr/internal/subtitle"
)

func newSubtitlesCommand(ctx *commandContext) *cobra.Command {
	subtitlesCmd := &cobra.Command{
		Use:   "subtitles",
		Short: "Extract, mask, and verify subtitle tracks",
	}

	subtitlesCmd.AddCommand(newSubtitlesExtractCommand(ctx))
	subtitlesCmd.AddCommand(newSubtitlesMaskCommand(ctx))
	subtitlesCmd.AddCommand(newSubtitlesQCCommand(ctx))

	return subtitlesCmd
}

func stemOf(path string) string {
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}

func newSubtitlesExtractCommand(ctx *commandContext) *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "extract <file>",
		Short: "Extract matching subtitle streams into one merged SRT",
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
			target := outputPath
			if target == "" {
				target = filepath.Join(filepath.Dir(source), stemOf(source)+".merged.srt")
			}

			extractor := subtitle.NewExtractor(subtitle.ExtractOptions{
				Include: subtitle.Selector{Languages: cfg.Subtitles.Languages},
				Exclude: subtitle.Selector{
					TitleKeywords: cfg.Subtitles.ExcludeTitleKeywords,
					Keywords:      cfg.Subtitles.ExcludeKeywords,
				},
				FFmpegCommand:  cfg.Tools.FFmpeg,
				FFprobeCommand: cfg.Tools.FFprobe,
			}, logger)

			if err := extractor.ExtractMerged(cmd.Context(), source, target); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote merged subtitles to %s\n", target)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Merged SRT destination (default <stem>.merged.srt)")
	return cmd
}

func newSubtitlesMaskCommand(ctx *commandContext) *cobra.Command {
	var outputPath string
	var reportPath string

	cmd := &cobra.Command{
		Use:   "mask <subtitles.srt>",
		Short: "Mask catalog terms in an SRT file",
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
			target := outputPath
			if target == "" {
				target = filepath.Join(filepath.Dir(source), stemOf(source)+".masked.srt")
			}
			report := reportPath
			if report == "" {
				report = filepath.Join(filepath.Dir(source), stemOf(source)+".matches.csv")
			}

			cat, err := catalog.Load(cfg.Paths.CatalogPath, cfg.Matching.DefaultThreshold, cfg.Matching.Aggressive)
			if err != nil {
				return err
			}
			masker, err := censor.New(cat, logger)
			if err != nil {
				return err
			}

			summary, err := masker.MaskFile(cmd.Context(), source, target, report)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Masked %d of %d events (%d matches)\n",
				summary.MaskedEvents, summary.Events, summary.Matches)
			fmt.Fprintf(out, "Output: %s\n", target)
			if summary.Matches > 0 {
				fmt.Fprintf(out, "Report: %s\n", report)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Masked SRT destination (default <stem>.masked.srt)")
	cmd.Flags().StringVar(&reportPath, "report", "", "Match report CSV destination (default <stem>.matches.csv)")
	return cmd
}

func newSubtitlesQCCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "qc <masked.srt>",
		Short: "Verify no catalog terms survived masking",
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

			cat, err := catalog.Load(cfg.Paths.CatalogPath, cfg.Matching.DefaultThreshold, cfg.Matching.Aggressive)
			if err != nil {
				return err
			}
			if err := censor.VerifyFile(args[0], cat, logger); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Masked subtitles passed QC")
			return nil
		},
	}
}
