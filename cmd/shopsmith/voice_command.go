package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"shopsmith/internal/logging"
	"shopsmith/internal/notifications"
	"shopsmith/internal/runs"
	"shopsmith/internal/services/elevenlabs"
	"shopsmith/internal/voice"
)

func newVoiceCommand(ctx *commandContext) *cobra.Command {
	voiceCmd := &cobra.Command{
		Use:   "voice",
		Short: "Voiceover synthesis",
	}

	voiceCmd.AddCommand(newVoiceSynthCommand(ctx))

	return voiceCmd
}

func newVoiceSynthCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "synth",
		Short: "Synthesize all configured utterances",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			secrets := ctx.secretsValue()
			if err := secrets.RequireTTS(); err != nil {
				return err
			}
			logger := ctx.ensureLogger()
			notifier := notifications.NewService(cfg)

			client, err := elevenlabs.New(cfg.Voice.BaseURL, secrets.TTSAPIKey, cfg.Voice.Model, cfg.Voice.TimeoutSeconds)
			if err != nil {
				return err
			}

			return recordRun(cmd.Context(), cfg, logger, runs.KindVoice, "", uuid.NewString(), func() (string, error) {
				results, err := voice.SynthesizeAll(cmd.Context(), cfg, client, logger)
				if err != nil {
					return "", err
				}

				out := cmd.OutOrStdout()
				for _, result := range results {
					fmt.Fprintf(out, "%s -> %s (%d bytes)\n", result.Name, result.Path, result.Bytes)
				}

				if notifyErr := notifier.NotifyVoiceCompleted(cmd.Context(), len(results)); notifyErr != nil {
					logger.Warn("voice notification failed", logging.Error(notifyErr))
				}
				return fmt.Sprintf("%d utterances", len(results)), nil
			})
		},
	}
}
