package admin_test

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"shopsmith/internal/admin"
	"shopsmith/internal/logging"
	"shopsmith/internal/services"
	"shopsmith/internal/testsupport"
)

func TestRunMigrationsAppliesLexically(t *testing.T) {
	dir := t.TempDir()
	testsupport.WriteFile(t, filepath.Join(dir, "002_chats.sql"), []byte("create table chats (id int);"))
	testsupport.WriteFile(t, filepath.Join(dir, "001_users.sql"), []byte("create table users (id int);"))
	testsupport.WriteFile(t, filepath.Join(dir, "README.md"), []byte("not sql"))

	backend := &fakeBackend{}
	var out bytes.Buffer

	result, err := admin.RunMigrations(context.Background(), backend, dir, &out, logging.NewNop())
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if result.Manual {
		t.Fatal("expected rpc path, not manual")
	}
	if len(result.Applied) != 2 || result.Applied[0] != "001_users.sql" || result.Applied[1] != "002_chats.sql" {
		t.Fatalf("unexpected applied order %v", result.Applied)
	}
	if len(backend.executed) != 2 || !strings.Contains(backend.executed[0], "users") {
		t.Fatalf("unexpected executed statements %v", backend.executed)
	}
}

func TestRunMigrationsPrintsWhenRPCUnavailable(t *testing.T) {
	dir := t.TempDir()
	testsupport.WriteFile(t, filepath.Join(dir, "001_users.sql"), []byte("create table users (id int);"))

	backend := &fakeBackend{
		execErr: services.Wrap(services.ErrNotFound, "backend", "POST", "endpoint not available", nil),
	}
	var out bytes.Buffer

	result, err := admin.RunMigrations(context.Background(), backend, dir, &out, logging.NewNop())
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if !result.Manual {
		t.Fatal("expected manual fallback")
	}
	if !strings.Contains(out.String(), "001_users.sql") || !strings.Contains(out.String(), "create table users") {
		t.Fatalf("expected statements printed, got %q", out.String())
	}
}

func TestRunMigrationsMissingDirectory(t *testing.T) {
	var out bytes.Buffer
	_, err := admin.RunMigrations(context.Background(), &fakeBackend{}, filepath.Join(t.TempDir(), "nope"), &out, logging.NewNop())
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestRunMigrationsEmptyDirectory(t *testing.T) {
	var out bytes.Buffer
	_, err := admin.RunMigrations(context.Background(), &fakeBackend{}, t.TempDir(), &out, logging.NewNop())
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}
