package main

import (
	"context"
	"log/slog"
	"time"

	"shopsmith/internal/config"
	"shopsmith/internal/logging"
	"shopsmith/internal/runs"
)

const timeRounding = 100 * time.Millisecond

// recordRun wraps one pipeline operation with run-history bookkeeping. The
// history is best effort: a broken runs database logs a warning and the
// operation still executes.
func recordRun(ctx context.Context, cfg *config.Config, logger *slog.Logger, kind, label, runID string, fn func() (string, error)) error {
	store, err := runs.Open(cfg)
	if err != nil {
		logger.Warn("run history unavailable", logging.Error(err))
		store = nil
	}

	var entry *runs.Run
	if store != nil {
		defer store.Close()
		entry, err = store.Start(ctx, runID, kind, label)
		if err != nil {
			logger.Warn("could not record run start", logging.Error(err))
			entry = nil
		}
	}

	detail, runErr := fn()

	if store != nil && entry != nil {
		status := runs.StatusCompleted
		if runErr != nil {
			status = runs.StatusFailed
			detail = runErr.Error()
		}
		// Finishing with the background context so a canceled run is still
		// recorded as failed.
		if finishErr := store.Finish(context.WithoutCancel(ctx), entry.ID, status, detail); finishErr != nil {
			logger.Warn("could not record run finish", logging.Error(finishErr))
		}
	}

	return runErr
}
