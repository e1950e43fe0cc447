package admin_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"shopsmith/internal/admin"
	"shopsmith/internal/logging"
	"shopsmith/internal/services"
	"shopsmith/internal/services/supabase"
)

type fakeBackend struct {
	users        map[string]*supabase.User
	createErr    error
	resetCalls   []string
	execErr      error
	executed     []string
	sampled      []map[string]any
	sampledTable string
}

func (f *fakeBackend) FindUserByEmail(ctx context.Context, email string) (*supabase.User, error) {
	if user, ok := f.users[strings.ToLower(email)]; ok {
		return user, nil
	}
	return nil, nil
}

func (f *fakeBackend) CreateUser(ctx context.Context, email, password string) (*supabase.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	user := &supabase.User{ID: "u-new", Email: strings.ToLower(email)}
	if f.users == nil {
		f.users = map[string]*supabase.User{}
	}
	f.users[user.Email] = user
	return user, nil
}

func (f *fakeBackend) SendPasswordReset(ctx context.Context, email, redirectTo string) error {
	f.resetCalls = append(f.resetCalls, strings.ToLower(email))
	return nil
}

func (f *fakeBackend) ExecSQL(ctx context.Context, statement string) error {
	if f.execErr != nil {
		return f.execErr
	}
	f.executed = append(f.executed, statement)
	return nil
}

func (f *fakeBackend) SampleRows(ctx context.Context, table string, limit int) ([]map[string]any, error) {
	f.sampledTable = table
	if limit < len(f.sampled) {
		return f.sampled[:limit], nil
	}
	return f.sampled, nil
}

func TestProvisionUserExistingGetsReset(t *testing.T) {
	backend := &fakeBackend{
		users: map[string]*supabase.User{
			"maker@example.com": {ID: "u-1", Email: "maker@example.com"},
		},
	}
	var out bytes.Buffer

	outcome, err := admin.ProvisionUser(context.Background(), backend, "Maker@Example.com", "https://shop.example", &out, logging.NewNop())
	if err != nil {
		t.Fatalf("provision: %v", err)
	}
	if outcome != admin.OutcomeResetSent {
		t.Fatalf("expected reset-sent outcome, got %q", outcome)
	}
	if len(backend.resetCalls) != 1 || backend.resetCalls[0] != "maker@example.com" {
		t.Fatalf("unexpected reset calls %v", backend.resetCalls)
	}
	if !strings.Contains(out.String(), "already exists") {
		t.Fatalf("unexpected output %q", out.String())
	}
}

func TestProvisionUserCreatesMissingAccount(t *testing.T) {
	backend := &fakeBackend{}
	var out bytes.Buffer

	outcome, err := admin.ProvisionUser(context.Background(), backend, "new@example.com", "", &out, logging.NewNop())
	if err != nil {
		t.Fatalf("provision: %v", err)
	}
	if outcome != admin.OutcomeCreated {
		t.Fatalf("expected created outcome, got %q", outcome)
	}
	if _, ok := backend.users["new@example.com"]; !ok {
		t.Fatal("expected user created")
	}
	if len(backend.resetCalls) != 1 {
		t.Fatalf("expected one reset email, got %d", len(backend.resetCalls))
	}
}

func TestProvisionUserFallsBackToManualInstructions(t *testing.T) {
	backend := &fakeBackend{
		createErr: services.Wrap(services.ErrNotFound, "backend", "POST", "endpoint not available", nil),
	}
	var out bytes.Buffer

	outcome, err := admin.ProvisionUser(context.Background(), backend, "new@example.com", "", &out, logging.NewNop())
	if err != nil {
		t.Fatalf("provision: %v", err)
	}
	if outcome != admin.OutcomeManual {
		t.Fatalf("expected manual outcome, got %q", outcome)
	}
	if !strings.Contains(out.String(), "SQL editor") {
		t.Fatalf("expected manual instructions, got %q", out.String())
	}
	if len(backend.resetCalls) != 0 {
		t.Fatalf("expected no reset email on manual path, got %v", backend.resetCalls)
	}
}

func TestProvisionUserRequiresEmail(t *testing.T) {
	var out bytes.Buffer
	_, err := admin.ProvisionUser(context.Background(), &fakeBackend{}, "  ", "", &out, logging.NewNop())
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
