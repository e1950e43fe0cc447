package admin

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"shopsmith/internal/logging"
)

// SampleChats fetches the newest transcript rows from the chat table and
// prints them as a readable conversation. Rows without the expected shape
// fall back to their raw JSON so nothing is silently dropped.
func SampleChats(ctx context.Context, backend Backend, table string, limit int, out io.Writer, logger *slog.Logger) (int, error) {
	if logger == nil {
		logger = logging.NewNop()
	}
	log := logging.WithComponent(logger, "admin")

	rows, err := backend.SampleRows(ctx, table, limit)
	if err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		fmt.Fprintf(out, "No rows in %s.\n", table)
		return 0, nil
	}

	log.Info("sampled chat rows",
		logging.String("table", table),
		logging.Int("rows", len(rows)),
	)
	for _, row := range rows {
		fmt.Fprintln(out, formatChatRow(row))
	}
	return len(rows), nil
}

// formatChatRow renders one message as "[timestamp] role: content".
func formatChatRow(row map[string]any) string {
	role := stringField(row, "role", "sender", "author")
	content := stringField(row, "content", "message", "text")
	createdAt := stringField(row, "created_at")

	if role == "" && content == "" {
		raw, err := json.Marshal(row)
		if err != nil {
			return fmt.Sprintf("%v", row)
		}
		return string(raw)
	}

	var builder strings.Builder
	if createdAt != "" {
		builder.WriteString("[")
		builder.WriteString(createdAt)
		builder.WriteString("] ")
	}
	if role == "" {
		role = "unknown"
	}
	builder.WriteString(role)
	builder.WriteString(": ")
	builder.WriteString(strings.TrimSpace(content))
	return builder.String()
}

func stringField(row map[string]any, keys ...string) string {
	for _, key := range keys {
		if value, ok := row[key].(string); ok && value != "" {
			return value
		}
	}
	return ""
}
