package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"censorr/internal/pipeline"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "run <file>",
		Short: "Censor a media file end to end",
		Long: "Extract subtitles, mask catalog terms, mute the matching audio windows,\n" +
			"verify both passes, and remux the result into a tagged output file.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.newLogger()
			if err != nil {
				return err
			}

			p, err := pipeline.New(cfg, logger)
			if err != nil {
				return err
			}
			result, err := p.Run(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if result.NoMatches {
				fmt.Fprintln(out, "No catalog terms found; file needs no censoring")
				return nil
			}
			fmt.Fprintf(out, "Censored %d matches\n", result.Matches)
			fmt.Fprintf(out, "Output:  %s\n", result.FinalPath)
			fmt.Fprintf(out, "Sidecar: %s\n", result.SidecarPath)
			fmt.Fprintf(out, "Report:  %s\n", result.ReportPath)
			return nil
		},
	}
}
