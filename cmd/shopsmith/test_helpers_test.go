package main

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"testing"

	"shopsmith/internal/config"
)

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	if configPath != "" {
		args = append([]string{"--config", configPath}, args...)
	}
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	var b strings.Builder
	fmt.Fprintf(&b, "[paths]\n")
	fmt.Fprintf(&b, "listings_dir = %q\n", cfg.Paths.ListingsDir)
	fmt.Fprintf(&b, "output_dir = %q\n", cfg.Paths.OutputDir)
	fmt.Fprintf(&b, "staging_dir = %q\n", cfg.Paths.StagingDir)
	fmt.Fprintf(&b, "log_dir = %q\n", cfg.Paths.LogDir)
	fmt.Fprintf(&b, "assets_dir = %q\n", cfg.Paths.AssetsDir)
	fmt.Fprintf(&b, "migrations_dir = %q\n", cfg.Paths.MigrationsDir)
	if len(cfg.Listing.IDs) > 0 {
		fmt.Fprintf(&b, "\n[listing]\nids = [")
		for i, id := range cfg.Listing.IDs {
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "%q", id)
		}
		b.WriteString("]\n")
	}
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
