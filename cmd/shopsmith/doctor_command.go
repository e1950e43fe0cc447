package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"shopsmith/internal/deps"
)

const (
	ansiReset = "\x1b[0m"
	ansiGreen = "\x1b[32m"
	ansiRed   = "\x1b[31m"
)

func newDoctorCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check external tools and credentials",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			secrets := ctx.secretsValue()

			statuses := deps.CheckBinaries([]deps.Requirement{
				{
					Name:        "FFmpeg",
					Command:     cfg.FFmpegBinary(),
					Description: "Encodes captured frames into promo videos",
				},
			})
			statuses = append(statuses, deps.CheckBrowser(cfg.Promo.BrowserBinary))

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)

			rows := make([][]string, 0, len(statuses)+3)
			missing := false
			for _, status := range statuses {
				detail := status.Detail
				if detail == "" {
					detail = status.Command
				}
				rows = append(rows, []string{status.Name, availabilityLabel(status.Available, colorize), detail})
				if !status.Available && !status.Optional {
					missing = true
				}
			}
			rows = append(rows,
				[]string{"Backend credentials", availabilityLabel(secrets.RequireBackend() == nil, colorize), "SUPABASE_URL / SUPABASE_SERVICE_ROLE_KEY"},
				[]string{"TTS credentials", availabilityLabel(secrets.RequireTTS() == nil, colorize), "ELEVENLABS_API_KEY"},
			)

			fmt.Fprintln(out, renderTable([]string{"Dependency", "Available", "Detail"}, rows, nil))
			if missing {
				return fmt.Errorf("required dependencies are missing")
			}
			return nil
		},
	}
}

func availabilityLabel(available, colorize bool) string {
	label := yesNo(available)
	if !colorize {
		return label
	}
	if available {
		return ansiGreen + label + ansiReset
	}
	return ansiRed + label + ansiReset
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
