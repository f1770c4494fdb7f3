package logging

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestHelpersIgnoreNilLogger(t *testing.T) {
	Debug(nil, "debug")
	Info(nil, "info")
	Warn(nil, "warn")
	Error(nil, "error", errors.New("boom"))
}

func TestHelpersWriteLevelAndFields(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	Debug(logger, "cache hit", FieldPath, "score/2024-01-10")
	Warn(logger, "day skipped", FieldDate, "2024-01-10")
	Error(logger, "write failed", errors.New("disk full"), FieldTeam, "TOR")

	out := buf.String()
	for _, want := range []string{
		"level=DEBUG", "path=score/2024-01-10",
		"level=WARN", "date=2024-01-10",
		"level=ERROR", "team=TOR", `error="disk full"`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestErrorWithoutErrOmitsField(t *testing.T) {
	var buf bytes.Buffer
	Error(slog.New(slog.NewTextHandler(&buf, nil)), "no cause", nil)
	if strings.Contains(buf.String(), "error=") {
		t.Fatalf("expected no error field, got %s", buf.String())
	}
}
