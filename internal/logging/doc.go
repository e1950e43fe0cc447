// Package logging builds the slog loggers used across shopsmith: a compact
// console handler for interactive runs and a JSON handler for captured logs.
package logging
