package main

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"shopsmith/internal/listing"
	"shopsmith/internal/logging"
	"shopsmith/internal/notifications"
	"shopsmith/internal/runs"
)

func newListingCommand(ctx *commandContext) *cobra.Command {
	listingCmd := &cobra.Command{
		Use:   "listing",
		Short: "Listing spreadsheet utilities",
	}

	listingCmd.AddCommand(newListingExportCommand(ctx))
	listingCmd.AddCommand(newListingShowCommand(ctx))

	return listingCmd
}

func newListingExportCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Export configured listings to the upload spreadsheet",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger := ctx.ensureLogger()
			notifier := notifications.NewService(cfg)

			return recordRun(cmd.Context(), cfg, logger, runs.KindExport, cfg.Listing.OutputFile, uuid.NewString(), func() (string, error) {
				result, err := listing.Export(cfg, logger)
				if err != nil {
					return "", err
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Wrote %s (%d rows", result.Path, len(result.Exported))
				if len(result.Skipped) > 0 {
					fmt.Fprintf(out, ", skipped %s", strings.Join(result.Skipped, ", "))
				}
				fmt.Fprintln(out, ")")

				if notifyErr := notifier.NotifyExportCompleted(cmd.Context(), result.Path, len(result.Exported), len(result.Skipped)); notifyErr != nil {
					logger.Warn("export notification failed", logging.Error(notifyErr))
				}
				return result.Path, nil
			})
		},
	}
}

func newListingShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <listing-id>",
		Short: "Show the packet contents for one listing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			packet, err := listing.ReadPacket(cfg.Paths.ListingsDir, args[0])
			if err != nil {
				return err
			}

			rows := [][]string{
				{"ID", packet.ID},
				{"Title", packet.Title},
				{"Price", orDash(packet.Price)},
				{"Tags", fmt.Sprintf("%d", len(packet.Tags))},
				{"Images", fmt.Sprintf("%d", len(packet.Images))},
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable([]string{"Field", "Value"}, rows, nil))
			fmt.Fprintln(out, packet.Description)
			return nil
		},
	}
}

func orDash(value string) string {
	if strings.TrimSpace(value) == "" {
		return "-"
	}
	return value
}
