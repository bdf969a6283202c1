// Package logger configures the JSON slog logger used by the server and
// carries request-scoped loggers through context.Context.
package logger
