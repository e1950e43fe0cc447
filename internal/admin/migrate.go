package admin

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"shopsmith/internal/logging"
	"shopsmith/internal/services"
)

// MigrationResult summarizes one migrate run.
type MigrationResult struct {
	Applied []string
	Manual  bool
}

// RunMigrations executes every .sql file in dir, in lexical order, through
// the backend's SQL RPC. If the RPC is not installed on the project, the
// remaining statements are printed to out for manual execution and the run
// still succeeds.
func RunMigrations(ctx context.Context, backend Backend, dir string, out io.Writer, logger *slog.Logger) (*MigrationResult, error) {
	if logger == nil {
		logger = logging.NewNop()
	}
	log := logging.WithComponent(logger, "admin")

	files, err := listMigrations(dir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, services.Wrap(services.ErrNotFound, "admin", "migrate",
			fmt.Sprintf("no .sql files in %s", dir), nil)
	}

	result := &MigrationResult{}
	for i, file := range files {
		statement, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("read migration %s: %w", file, err)
		}

		if err := backend.ExecSQL(ctx, string(statement)); err != nil {
			if errors.Is(err, services.ErrNotFound) {
				log.Info("sql rpc unavailable, printing remaining migrations",
					logging.Int("remaining", len(files)-i),
				)
				printMigrations(out, files[i:])
				result.Manual = true
				return result, nil
			}
			return nil, fmt.Errorf("apply %s: %w", filepath.Base(file), err)
		}

		result.Applied = append(result.Applied, filepath.Base(file))
		log.Info("migration applied", logging.String("file", filepath.Base(file)))
	}

	fmt.Fprintf(out, "Applied %d migrations.\n", len(result.Applied))
	return result, nil
}

func listMigrations(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, services.Wrap(services.ErrConfiguration, "admin", "migrate",
				fmt.Sprintf("migrations directory %s does not exist", dir), err)
		}
		return nil, fmt.Errorf("read migrations directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(files)
	return files, nil
}

func printMigrations(out io.Writer, files []string) {
	fmt.Fprintf(out, "The exec_sql RPC is not installed on this project.\n")
	fmt.Fprintf(out, "Run these statements in the SQL editor, in order:\n")
	for _, file := range files {
		statement, err := os.ReadFile(file)
		if err != nil {
			fmt.Fprintf(out, "\n-- %s (unreadable: %v)\n", filepath.Base(file), err)
			continue
		}
		fmt.Fprintf(out, "\n-- %s\n%s\n", filepath.Base(file), strings.TrimSpace(string(statement)))
	}
}
