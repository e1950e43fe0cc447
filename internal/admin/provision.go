package admin

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"shopsmith/internal/logging"
	"shopsmith/internal/services"
	"shopsmith/internal/services/supabase"
)

// Backend is the slice of the hosted backend API the admin commands use.
type Backend interface {
	FindUserByEmail(ctx context.Context, email string) (*supabase.User, error)
	CreateUser(ctx context.Context, email, password string) (*supabase.User, error)
	SendPasswordReset(ctx context.Context, email, redirectTo string) error
	ExecSQL(ctx context.Context, statement string) error
	SampleRows(ctx context.Context, table string, limit int) ([]map[string]any, error)
}

// ProvisionOutcome says which path a create-user run took.
type ProvisionOutcome string

const (
	OutcomeResetSent ProvisionOutcome = "reset-sent"
	OutcomeCreated   ProvisionOutcome = "created"
	OutcomeManual    ProvisionOutcome = "manual"
)

// ProvisionUser makes sure an account exists for email. An existing user
// gets a password-reset email and nothing else; a missing user is created
// with a throwaway password and then sent the same reset email. When the
// admin creation endpoint is unavailable the equivalent manual SQL is
// printed to out instead.
func ProvisionUser(ctx context.Context, backend Backend, email, siteURL string, out io.Writer, logger *slog.Logger) (ProvisionOutcome, error) {
	if logger == nil {
		logger = logging.NewNop()
	}
	log := logging.WithComponent(logger, "admin")

	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", services.Wrap(services.ErrValidation, "admin", "create user", "email required", nil)
	}

	existing, err := backend.FindUserByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if existing != nil {
		log.Info("user already exists, sending password reset",
			logging.String("email", email),
			logging.String("user_id", existing.ID),
		)
		if err := backend.SendPasswordReset(ctx, email, siteURL); err != nil {
			return "", err
		}
		fmt.Fprintf(out, "User %s already exists; password reset email sent.\n", email)
		return OutcomeResetSent, nil
	}

	// The password is never shared: the user sets their own via the reset
	// email that follows.
	created, err := backend.CreateUser(ctx, email, uuid.NewString())
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			log.Info("admin creation endpoint unavailable, printing manual instructions",
				logging.String("email", email),
			)
			printManualInstructions(out, email)
			return OutcomeManual, nil
		}
		return "", err
	}

	log.Info("user created",
		logging.String("email", email),
		logging.String("user_id", created.ID),
	)
	if err := backend.SendPasswordReset(ctx, email, siteURL); err != nil {
		return "", err
	}
	fmt.Fprintf(out, "Created %s and sent a password reset email.\n", email)
	return OutcomeCreated, nil
}

func printManualInstructions(out io.Writer, email string) {
	fmt.Fprintf(out, "The admin user API is not available on this project.\n")
	fmt.Fprintf(out, "Create the user by hand instead:\n\n")
	fmt.Fprintf(out, "  1. Open the backend dashboard and invite %s under\n", email)
	fmt.Fprintf(out, "     Authentication > Users > Invite user, or\n")
	fmt.Fprintf(out, "  2. Run this in the SQL editor:\n\n")
	fmt.Fprintf(out, "     select auth.admin_create_user(\n")
	fmt.Fprintf(out, "       email := '%s',\n", email)
	fmt.Fprintf(out, "       email_confirm := true\n")
	fmt.Fprintf(out, "     );\n\n")
	fmt.Fprintf(out, "Then send a password reset from the dashboard.\n")
}
