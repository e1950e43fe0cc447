package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"shopsmith/internal/notifications"
	"shopsmith/internal/promo"
	"shopsmith/internal/runs"
	"shopsmith/internal/services/ffmpeg"
)

func newPromoCommand(ctx *commandContext) *cobra.Command {
	promoCmd := &cobra.Command{
		Use:   "promo",
		Short: "Promo video rendering",
	}

	promoCmd.AddCommand(newPromoRenderCommand(ctx))
	promoCmd.AddCommand(newPromoTemplatesCommand(ctx))

	return promoCmd
}

func newPromoRenderCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "render <template>",
		Short: "Capture and encode one promo template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger := ctx.ensureLogger()
			notifier := notifications.NewService(cfg)

			encoder, err := ffmpeg.New(cfg.FFmpegBinary(), cfg.Promo.EncodeTimeoutSeconds)
			if err != nil {
				return err
			}

			runID := uuid.NewString()
			assembler := promo.NewAssembler(cfg, logger, encoder, notifier, promo.WithRunID(runID))

			return recordRun(cmd.Context(), cfg, logger, runs.KindPromo, args[0], runID, func() (string, error) {
				result, err := assembler.Render(cmd.Context(), args[0])
				if err != nil {
					return "", err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d frames in %s)\n",
					result.VideoPath, result.Frames, result.Elapsed.Round(timeRounding))
				return result.VideoPath, nil
			})
		},
	}
}

func newPromoTemplatesCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "templates",
		Short: "List configured promo templates and their timelines",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			names := cfg.TemplateNames()
			if len(names) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No promo templates configured.")
				return nil
			}

			rows := make([][]string, 0, len(names))
			for _, name := range names {
				template := cfg.Promo.Templates[name]
				timeline, err := promo.BuildTimeline(template.Segments, cfg.Promo.GapSeconds)
				if err != nil {
					return err
				}
				rows = append(rows, []string{
					name,
					fmt.Sprintf("%dx%d", template.Width, template.Height),
					fmt.Sprintf("%d fps", template.FrameRate),
					fmt.Sprintf("%.1fs", template.DurationSeconds),
					fmt.Sprintf("%d", promo.FrameCount(template.FrameRate, template.DurationSeconds)),
					formatTimeline(timeline),
				})
			}

			headers := []string{"Template", "Resolution", "Rate", "Duration", "Frames", "Timeline"}
			aligns := []columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignRight, alignLeft}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(headers, rows, aligns))
			return nil
		},
	}
}

func formatTimeline(entries []promo.TimelineEntry) string {
	out := ""
	for i, entry := range entries {
		if i > 0 {
			out += ", "
		}
		out += fmt.Sprintf("%s@%.1fs", entry.Name, entry.Start)
	}
	return out
}
