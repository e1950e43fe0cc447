package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"shopsmith/internal/admin"
	"shopsmith/internal/logging"
	"shopsmith/internal/services"
	"shopsmith/internal/services/supabase"
)

func newAdminCommand(ctx *commandContext) *cobra.Command {
	adminCmd := &cobra.Command{
		Use:   "admin",
		Short: "Hosted backend administration",
	}

	adminCmd.AddCommand(newAdminCreateUserCommand(ctx))
	adminCmd.AddCommand(newAdminMigrateCommand(ctx))
	adminCmd.AddCommand(newAdminSampleChatsCommand(ctx))

	return adminCmd
}

// backendClient builds the admin API client from environment credentials.
// Missing credentials fail fast with a non-zero exit.
func backendClient(ctx *commandContext) (*supabase.Client, error) {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return nil, err
	}
	secrets := ctx.secretsValue()
	if err := secrets.RequireBackend(); err != nil {
		return nil, err
	}
	return supabase.New(secrets.BackendURL, secrets.BackendServiceKey, cfg.Backend.TimeoutSeconds)
}

func newAdminCreateUserCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "create-user <email>",
		Short: "Provision a backend user account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := backendClient(ctx)
			if err != nil {
				return err
			}
			logger := ctx.ensureLogger()

			_, err = admin.ProvisionUser(cmd.Context(), client, args[0], ctx.secretsValue().SiteURL, cmd.OutOrStdout(), logger)
			if err != nil {
				// Validation problems are the caller's to fix; backend
				// failures are reported without failing the process.
				if errors.Is(err, services.ErrValidation) || errors.Is(err, services.ErrConfiguration) {
					return err
				}
				logger.Error("user provisioning failed", logging.Error(err))
				fmt.Fprintf(cmd.OutOrStdout(), "Backend error: %v\n", err)
			}
			return nil
		},
	}
}

func newAdminMigrateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the SQL migrations to the backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			client, err := backendClient(ctx)
			if err != nil {
				return err
			}

			_, err = admin.RunMigrations(cmd.Context(), client, cfg.Paths.MigrationsDir, cmd.OutOrStdout(), ctx.ensureLogger())
			return err
		},
	}
}

func newAdminSampleChatsCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "sample-chats",
		Short: "Print a sample of stored chat transcripts",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			client, err := backendClient(ctx)
			if err != nil {
				return err
			}

			sampleLimit := limit
			if sampleLimit <= 0 {
				sampleLimit = cfg.Backend.SampleLimit
			}
			_, err = admin.SampleChats(cmd.Context(), client, cfg.Backend.ChatTable, sampleLimit, cmd.OutOrStdout(), ctx.ensureLogger())
			return err
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Maximum rows to fetch (defaults to backend.sample_limit)")
	return cmd
}
