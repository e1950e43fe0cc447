package main

import (
	"os"
	"path/filepath"
	"testing"

	"shopsmith/internal/testsupport"
)

func TestListingExportCommand(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithListingIDs("walnut-board"))
	testsupport.WritePacket(t, cfg.Paths.ListingsDir, "walnut-board",
		"walnut serving board", "Hand finished walnut.", []string{"walnut", "kitchen"})

	configPath := filepath.Join(testsupport.BaseDir(cfg), "config.toml")
	writeTestConfig(t, configPath, cfg)

	out, _, err := runCLI(t, []string{"listing", "export"}, configPath)
	if err != nil {
		t.Fatalf("listing export: %v", err)
	}
	requireContains(t, out, "Wrote ")
	requireContains(t, out, "1 rows")

	if _, err := os.Stat(filepath.Join(cfg.Paths.OutputDir, cfg.Listing.OutputFile)); err != nil {
		t.Fatalf("expected spreadsheet written: %v", err)
	}
}

func TestListingShowCommand(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	testsupport.WritePacket(t, cfg.Paths.ListingsDir, "cedar-tray",
		"cedar serving tray", "Aromatic cedar, food safe oil.", []string{"cedar"})

	configPath := filepath.Join(testsupport.BaseDir(cfg), "config.toml")
	writeTestConfig(t, configPath, cfg)

	out, _, err := runCLI(t, []string{"listing", "show", "cedar-tray"}, configPath)
	if err != nil {
		t.Fatalf("listing show: %v", err)
	}
	requireContains(t, out, "Cedar Serving Tray")
	requireContains(t, out, "Aromatic cedar, food safe oil.")
}

func TestListingShowUnknownID(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	configPath := filepath.Join(testsupport.BaseDir(cfg), "config.toml")
	writeTestConfig(t, configPath, cfg)

	if _, _, err := runCLI(t, []string{"listing", "show", "missing"}, configPath); err == nil {
		t.Fatal("expected error for unknown listing id")
	}
}

func TestRunsCommandListsCompletedRuns(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithListingIDs("walnut-board"))
	testsupport.WritePacket(t, cfg.Paths.ListingsDir, "walnut-board",
		"walnut serving board", "Hand finished walnut.", []string{"walnut"})

	configPath := filepath.Join(testsupport.BaseDir(cfg), "config.toml")
	writeTestConfig(t, configPath, cfg)

	if _, _, err := runCLI(t, []string{"listing", "export"}, configPath); err != nil {
		t.Fatalf("listing export: %v", err)
	}

	out, _, err := runCLI(t, []string{"runs"}, configPath)
	if err != nil {
		t.Fatalf("runs: %v", err)
	}
	requireContains(t, out, "export")
	requireContains(t, out, "completed")
}
