package runs_test

import (
	"context"
	"testing"

	"shopsmith/internal/runs"
	"shopsmith/internal/testsupport"
)

func TestStoreRecordsLifecycle(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store, err := runs.Open(cfg)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	entry, err := store.Start(ctx, "run-1", runs.KindPromo, "launch")
	if err != nil {
		t.Fatalf("start run: %v", err)
	}
	if entry.Status != runs.StatusRunning {
		t.Fatalf("expected running status, got %q", entry.Status)
	}
	if entry.Finished() {
		t.Fatal("running entry must not be finished")
	}

	if err := store.Finish(ctx, entry.ID, runs.StatusCompleted, "/output/launch.mp4"); err != nil {
		t.Fatalf("finish run: %v", err)
	}

	finished, err := store.GetByID(ctx, entry.ID)
	if err != nil {
		t.Fatalf("get run: %v", err)
	}
	if finished.Status != runs.StatusCompleted {
		t.Fatalf("expected completed, got %q", finished.Status)
	}
	if finished.Detail != "/output/launch.mp4" {
		t.Fatalf("unexpected detail %q", finished.Detail)
	}
	if finished.FinishedAt.IsZero() {
		t.Fatal("expected finished timestamp")
	}
}

func TestStoreRecentOrdersNewestFirst(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store, err := runs.Open(cfg)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	for _, kind := range []string{runs.KindExport, runs.KindVoice, runs.KindPromo} {
		if _, err := store.Start(ctx, "run-"+kind, kind, ""); err != nil {
			t.Fatalf("start %s: %v", kind, err)
		}
	}

	recent, err := store.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(recent))
	}
	if recent[0].Kind != runs.KindPromo {
		t.Fatalf("expected newest run first, got %q", recent[0].Kind)
	}
}

func TestStoreFinishRejectsUnknownRun(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store, err := runs.Open(cfg)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer store.Close()

	if err := store.Finish(context.Background(), 999, runs.StatusFailed, "gone"); err == nil {
		t.Fatal("expected an error for unknown run")
	}
	if err := store.Finish(context.Background(), 1, runs.StatusRunning, ""); err == nil {
		t.Fatal("expected an error for non-terminal status")
	}
}

func TestStoreReopensExistingDatabase(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store, err := runs.Open(cfg)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	if _, err := store.Start(context.Background(), "run-1", runs.KindPoster, ""); err != nil {
		t.Fatalf("start run: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close store: %v", err)
	}

	reopened, err := runs.Open(cfg)
	if err != nil {
		t.Fatalf("reopen store: %v", err)
	}
	defer reopened.Close()

	recent, err := reopened.Recent(context.Background(), 10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(recent) != 1 {
		t.Fatalf("expected 1 run after reopen, got %d", len(recent))
	}
}
