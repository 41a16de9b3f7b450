// Package logging defines the structured-logging interface used across
// FinHive, with slog and zap backends.
package logging

import "context"

// Logger is a context-aware, structured logger.
//
// The variadic args are key–value pairs, e.g.:
//
//	log.Info(ctx, "job mirrored", "collection", "accounts", "id", id)
type Logger interface {
	// Debug logs verbose diagnostics.
	Debug(ctx context.Context, msg string, args ...any)

	// Info logs an informational message.
	Info(ctx context.Context, msg string, args ...any)

	// Warn logs unusual but non-fatal conditions.
	Warn(ctx context.Context, msg string, args ...any)

	// Error logs failures.
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that always includes the given pairs.
	With(args ...any) Logger
}

// Leveler is implemented by loggers whose threshold can change while the
// program runs. Loggers returned by New implement it.
type Leveler interface {
	SetLevel(level string) error
	Level() string
}

// ModuleKey is the attribute naming the package a log line comes from.
const ModuleKey = "module"

// ForModule returns the child logger a package logs through.
func ForModule(l Logger, name string) Logger {
	return l.With(ModuleKey, name)
}
