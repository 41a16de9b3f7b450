package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func newTestLogger(t *testing.T) (*SlogLogger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	h := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	return NewSlogLogger(slog.New(h)), &buf
}

func TestSlogLogger_Levels(t *testing.T) {
	log, buf := newTestLogger(t)
	ctx := context.Background()

	log.Debug(ctx, "load", "key", "accounts")
	log.Info(ctx, "saved", "n", 2)
	log.Warn(ctx, "malformed", "key", "receipts")
	log.Error(ctx, "mirror", "attempt", 3)

	out := buf.String()

	tests := []struct {
		level string
		msg   string
		attr  string
	}{
		{"DEBUG", "load", "key=accounts"},
		{"INFO", "saved", "n=2"},
		{"WARN", "malformed", "key=receipts"},
		{"ERROR", "mirror", "attempt=3"},
	}

	for _, tc := range tests {
		if !strings.Contains(out, "level="+tc.level) {
			t.Fatalf("expected level=%s in output:\n%s", tc.level, out)
		}
		if !strings.Contains(out, "msg="+tc.msg) {
			t.Fatalf("expected msg=%s in output:\n%s", tc.msg, out)
		}
		if !strings.Contains(out, tc.attr) {
			t.Fatalf("expected %s in output:\n%s", tc.attr, out)
		}
	}
}

func TestSlogLogger_With(t *testing.T) {
	log, buf := newTestLogger(t)

	log.With("module", "outbox", "user", "u1").Info(context.Background(), "tick", "due", 0)

	out := buf.String()
	for _, s := range []string{"level=INFO", "msg=tick", "module=outbox", "user=u1", "due=0"} {
		if !strings.Contains(out, s) {
			t.Fatalf("expected %q in output, got:\n%s", s, out)
		}
	}
}

func TestSlogLogger_FixedLevel(t *testing.T) {
	log, _ := newTestLogger(t)

	if err := log.SetLevel("error"); err == nil {
		t.Fatal("expected an error for a handler-owned level")
	}
	if got := log.Level(); got != "" {
		t.Fatalf("expected no level, got %q", got)
	}
}
