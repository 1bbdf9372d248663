package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"censorr/internal/pipeline"
	"censorr/internal/queue"
	"censorr/internal/worker"
)

func newWorkerCommand(ctx *commandContext) *cobra.Command {
	workerCmd := &cobra.Command{
		Use:   "worker",
		Short: "Process queued items",
	}

	workerCmd.AddCommand(newWorkerRunCommand(ctx))
	return workerCmd
}

func newWorkerRunCommand(ctx *commandContext) *cobra.Command {
	var once bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the queue worker",
		Long: "Poll the queue and run the censoring pipeline for each pending item.\n" +
			"With --once the worker drains the queue and exits instead of polling.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.newLogger()
			if err != nil {
				return err
			}

			return ctx.withStore(func(store *queue.Store) error {
				p, err := pipeline.New(cfg, logger)
				if err != nil {
					return err
				}
				w, err := worker.New(cfg, store, p, logger)
				if err != nil {
					return err
				}

				runCtx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
				defer stop()

				if once {
					processed, err := w.RunAll(runCtx)
					if err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "Processed %d items\n", processed)
					return nil
				}
				return w.Run(runCtx)
			})
		},
	}

	cmd.Flags().BoolVar(&once, "once", false, "Drain the queue and exit")
	return cmd
}
