package mask

import (
	"bytes"
	"log/slog"
	"testing"
)

func TestDefaultLoggerIsSilent(t *testing.T) {
	l := Logger()
	if l == nil {
		t.Fatal("Logger() returned nil")
	}
	if l.Enabled(nil, slog.LevelError) {
		t.Error("default logger is enabled; want silent nop logger")
	}
}

func TestSetLogger(t *testing.T) {
	defer SetLogger(nil)

	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	Logger().Info("hello")
	if buf.Len() == 0 {
		t.Error("configured logger produced no output")
	}

	// nil restores the silent default.
	SetLogger(nil)
	if Logger().Enabled(nil, slog.LevelError) {
		t.Error("SetLogger(nil) did not restore the nop logger")
	}
}

func TestWarnOnMalformedShapeDoesNotPanic(t *testing.T) {
	defer SetLogger(nil)
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))

	cs := NewChunkStore(64)
	if _, ok := applyShape(cs, Shape{Points: []Point{Pt(0, 0)}}); ok {
		t.Fatal("malformed shape applied")
	}
	if !bytes.Contains(buf.Bytes(), []byte("fewer than 3 points")) {
		t.Error("no warning logged for malformed shape")
	}
}
