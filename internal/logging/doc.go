// Package logging builds the slog loggers recap uses everywhere: a
// human-readable console handler for interactive runs, a JSON handler for
// captured output, and helpers for component loggers and context-derived
// session/stage fields.
package logging
