// Package logger provides structured logging for roar-go.
//
// It builds log/slog loggers:
//
//   - logger.go: handler construction, JSON or text output, dynamic level,
//     optional size-rotated log file (lumberjack)
//   - context.go: context propagation of the logger and connection id
//
// Components take a *slog.Logger and fall back to slog.Default().
package logger
