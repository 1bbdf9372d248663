package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"censorr/internal/media/remux"
)

func newRemuxCommand(ctx *commandContext) *cobra.Command {
	var mode string
	var naming string
	var outputBase string

	cmd := &cobra.Command{
		Use:   "remux <video> <masked.srt> <muted.wav>",
		Short: "Mux the muted audio into a tagged output container",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.newLogger()
			if err != nil {
				return err
			}

			opts := remux.Options{
				Mode:            remux.Mode(cfg.Remux.Mode),
				Naming:          remux.Naming(cfg.Remux.Naming),
				OutputBase:      cfg.Remux.OutputBase,
				SidecarLanguage: cfg.Remux.SidecarLanguage,
				FFmpegCommand:   cfg.Tools.FFmpeg,
				FFprobeCommand:  cfg.Tools.FFprobe,
			}
			if mode != "" {
				opts.Mode = remux.Mode(mode)
			}
			if naming != "" {
				opts.Naming = remux.Naming(naming)
			}
			if outputBase != "" {
				opts.OutputBase = outputBase
			}

			result, err := remux.Remux(cmd.Context(), opts, args[0], args[1], args[2], logger)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Output:  %s\n", result.OutputPath)
			fmt.Fprintf(cmd.OutOrStdout(), "Sidecar: %s\n", result.SidecarPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&mode, "mode", "", "Override remux mode (replace or append)")
	cmd.Flags().StringVar(&naming, "naming", "", "Override naming scheme (movie or tv)")
	cmd.Flags().StringVar(&outputBase, "output-base", "", "Override the output base directory")
	return cmd
}
