package logging

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestFileLoggerFormat(t *testing.T) {
	var buf bytes.Buffer
	l := NewFileLogger(&buf)
	l.now = func() time.Time { return time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC) }

	l.Infof("engine", "quality %s -> %s", "high", "low")
	l.Errorf("font", "parse failed: %v", "bad magic")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if lines[0] != "2024-03-01T12:00:00Z [INFO] engine: quality high -> low" {
		t.Errorf("unexpected info line: %q", lines[0])
	}
	if lines[1] != "2024-03-01T12:00:00Z [ERROR] font: parse failed: bad magic" {
		t.Errorf("unexpected error line: %q", lines[1])
	}
}

func TestOrNoop(t *testing.T) {
	if _, ok := OrNoop(nil).(NoopLogger); !ok {
		t.Error("nil logger should become NoopLogger")
	}
	var buf bytes.Buffer
	l := NewFileLogger(&buf)
	if _, ok := OrNoop(l).(FileLogger); !ok {
		t.Error("non-nil logger should be returned as is")
	}
}
