package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"censorr/internal/deps"
)

func newDepsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "deps",
		Short: "Check that required external tools are installed",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			statuses := deps.CheckBinaries(deps.Default(cfg.Tools.FFmpeg, cfg.Tools.FFprobe))
			rows := make([][]string, 0, len(statuses))
			for _, status := range statuses {
				state := "ok"
				if !status.Available {
					state = status.Detail
				}
				rows = append(rows, []string{status.Name, status.Command, state})
			}
			table := renderTable([]string{"Tool", "Command", "Status"}, rows)
			fmt.Fprintln(cmd.OutOrStdout(), table)

			if !deps.AllAvailable(statuses) {
				return errors.New("missing required external tools")
			}
			return nil
		},
	}
}
