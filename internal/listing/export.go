package listing

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"shopsmith/internal/config"
	"shopsmith/internal/logging"
	"shopsmith/internal/services"
)

const sheetName = "Listings"

// ExportResult summarizes one export run.
type ExportResult struct {
	Path     string
	Exported []string
	Skipped  []string
}

// Export reads every configured listing packet and writes the spreadsheet.
// Listings without a packet directory are skipped with a log line; a broken
// packet (missing required file) fails the whole run; there is no
// partial-failure isolation between listings.
func Export(cfg *config.Config, logger *slog.Logger) (*ExportResult, error) {
	if logger == nil {
		logger = logging.NewNop()
	}
	log := logging.WithComponent(logger, "listing")

	if len(cfg.Listing.IDs) == 0 {
		return nil, services.Wrap(services.ErrConfiguration, "listing", "export",
			"no listing ids configured; add listing.ids to the config", nil)
	}
	if err := os.MkdirAll(cfg.Paths.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	opts := RowOptions{
		SKUPrefix:    cfg.Listing.ShopSKUPrefix,
		Quantity:     cfg.Listing.Quantity,
		Category:     cfg.Listing.Category,
		DefaultPrice: cfg.Listing.DefaultPrice,
	}

	result := &ExportResult{
		Path: filepath.Join(cfg.Paths.OutputDir, cfg.Listing.OutputFile),
	}

	rows := make([][]string, 0, len(cfg.Listing.IDs))
	for _, id := range cfg.Listing.IDs {
		packet, err := ReadPacket(cfg.Paths.ListingsDir, id)
		if err != nil {
			if errors.Is(err, services.ErrNotFound) {
				log.Info("skipping listing without packet directory", logging.String("listing", id))
				result.Skipped = append(result.Skipped, id)
				continue
			}
			return nil, err
		}
		rows = append(rows, BuildRow(packet, opts))
		result.Exported = append(result.Exported, id)
		log.Info("listing row built",
			logging.String("listing", id),
			logging.Int("images", len(packet.Images)),
			logging.Int("tags", len(packet.Tags)),
		)
	}

	if err := writeWorkbook(result.Path, rows); err != nil {
		return nil, err
	}

	log.Info("spreadsheet written",
		logging.String("path", result.Path),
		logging.Int("rows", len(result.Exported)),
		logging.Int("skipped", len(result.Skipped)),
	)
	return result, nil
}

// writeWorkbook overwrites the spreadsheet at path with a header row plus
// one row per listing.
func writeWorkbook(path string, rows [][]string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("name worksheet: %w", err)
	}
	if err := setRow(f, 1, Headers()); err != nil {
		return err
	}
	for i, row := range rows {
		if err := setRow(f, i+2, row); err != nil {
			return err
		}
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("write spreadsheet %s: %w", path, err)
	}
	return nil
}

func setRow(f *excelize.File, rowIndex int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, rowIndex)
	if err != nil {
		return fmt.Errorf("row %d: %w", rowIndex, err)
	}
	cells := make([]any, len(values))
	for i, v := range values {
		cells[i] = v
	}
	if err := f.SetSheetRow(sheetName, cell, &cells); err != nil {
		return fmt.Errorf("write row %d: %w", rowIndex, err)
	}
	return nil
}
