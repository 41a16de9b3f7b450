package logging

import (
	"context"
	"errors"
	"log/slog"
	"strings"
)

// SlogLogger adapts *slog.Logger to Logger. Loggers built by New share a
// level variable with every child derived through With or ForModule, so
// SetLevel on any of them changes the threshold for all.
type SlogLogger struct {
	l     *slog.Logger
	level *slog.LevelVar
}

// NewSlogLogger wraps l as is. The level of such a logger is owned by its
// handler and cannot be changed through SetLevel.
func NewSlogLogger(l *slog.Logger) *SlogLogger {
	return &SlogLogger{l: l}
}

func newLeveledSlog(newHandler func(*slog.HandlerOptions) slog.Handler, lvl slog.Level) *SlogLogger {
	v := new(slog.LevelVar)
	v.Set(lvl)
	return &SlogLogger{l: slog.New(newHandler(&slog.HandlerOptions{Level: v})), level: v}
}

func (s *SlogLogger) Debug(ctx context.Context, msg string, args ...any) {
	s.l.DebugContext(ctx, msg, args...)
}

func (s *SlogLogger) Info(ctx context.Context, msg string, args ...any) {
	s.l.InfoContext(ctx, msg, args...)
}

func (s *SlogLogger) Warn(ctx context.Context, msg string, args ...any) {
	s.l.WarnContext(ctx, msg, args...)
}

func (s *SlogLogger) Error(ctx context.Context, msg string, args ...any) {
	s.l.ErrorContext(ctx, msg, args...)
}

func (s *SlogLogger) With(args ...any) Logger {
	return &SlogLogger{l: s.l.With(args...), level: s.level}
}

// SetLevel parses level ("debug", "info", "warn", "error") and applies it.
func (s *SlogLogger) SetLevel(level string) error {
	if s.level == nil {
		return errors.New("log level is fixed by its handler")
	}
	lvl, err := parseSlogLevel(level)
	if err != nil {
		return err
	}
	s.level.Set(lvl)
	return nil
}

// Level reports the current threshold in lower case, or "" when it is
// fixed by the handler.
func (s *SlogLogger) Level() string {
	if s.level == nil {
		return ""
	}
	return strings.ToLower(s.level.Level().String())
}
