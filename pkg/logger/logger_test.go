package logger

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestLoggerInit(t *testing.T) {
	if err := Init(); err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}
	if Get() == nil {
		t.Fatal("logger is nil after initialization")
	}
}

func TestLoggerWriter(t *testing.T) {
	var buf bytes.Buffer
	if err := InitWithWriter(&buf); err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}

	ctx := context.Background()
	Get().Info(ctx, "catalog loaded", String("file", "catalog.yaml"), Int("entries", 42))

	out := buf.String()
	if !strings.Contains(out, "catalog loaded") {
		t.Errorf("message missing from output: %q", out)
	}
	if !strings.Contains(out, "entries=42") {
		t.Errorf("field missing from output: %q", out)
	}
}

func TestLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	if err := InitWithWriter(&buf); err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}

	ctx := context.Background()
	if err := SetLevelString("warn"); err != nil {
		t.Fatalf("failed to set level: %v", err)
	}
	Get().Info(ctx, "suppressed")
	Get().Warn(ctx, "visible")

	out := buf.String()
	if strings.Contains(out, "suppressed") {
		t.Errorf("info message should be suppressed at warn level: %q", out)
	}
	if !strings.Contains(out, "visible") {
		t.Errorf("warn message should pass at warn level: %q", out)
	}

	if err := SetLevelString("bogus"); err == nil {
		t.Error("expected error for unknown level")
	}
	_ = SetLevelString("info")
}

func TestLoggerNamed(t *testing.T) {
	if err := Init(); err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}
	namedLogger := Named("advisor")
	if namedLogger == nil {
		t.Fatal("named logger is nil")
	}
	namedLogger.Info(context.Background(), "test message")
}
