package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"shopsmith/internal/poster"
	"shopsmith/internal/runs"
)

func newPosterCommand(ctx *commandContext) *cobra.Command {
	posterCmd := &cobra.Command{
		Use:   "poster",
		Short: "Poster rendering",
	}

	posterCmd.AddCommand(newPosterRenderCommand(ctx))

	return posterCmd
}

func newPosterRenderCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "render",
		Short: "Render the configured poster PNG",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger := ctx.ensureLogger()

			return recordRun(cmd.Context(), cfg, logger, runs.KindPoster, cfg.Poster.OutputFile, uuid.NewString(), func() (string, error) {
				path, err := poster.Render(cfg, logger)
				if err != nil {
					return "", err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
				return path, nil
			})
		},
	}
}
