package logger

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestFromZapFlattensMapFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := FromZap(zap.New(core))

	l.Info("request done", map[string]any{
		"status": 200,
		"err":    errors.New("boom"),
	})

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	ctx := entries[0].ContextMap()
	if ctx["status"] != int64(200) {
		t.Fatalf("expected status field, got %#v", ctx)
	}
	if ctx["err"] != "boom" {
		t.Fatalf("expected err field, got %#v", ctx)
	}
}

func TestFromZapWrapsScalarPayload(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	FromZap(zap.New(core)).Warn("odd", "value")

	ctx := logs.All()[0].ContextMap()
	if ctx["obj"] != "value" {
		t.Fatalf("expected obj field, got %#v", ctx)
	}
}

func TestWriterLoggerLevels(t *testing.T) {
	t.Setenv(EnvLevel, "")

	var buf bytes.Buffer
	quiet := NewWriterLogger(&buf, false)
	quiet.Debug("hidden", nil)
	quiet.Info("hidden too", nil)
	if buf.Len() != 0 {
		t.Fatalf("expected debug/info to be filtered, got %q", buf.String())
	}
	quiet.Warn("shown", nil)
	if !strings.Contains(buf.String(), "shown") {
		t.Fatalf("expected warn output, got %q", buf.String())
	}

	buf.Reset()
	NewWriterLogger(&buf, true).Debug("verbose line", map[string]any{"k": "v"})
	if !strings.Contains(buf.String(), "verbose line") {
		t.Fatalf("expected debug output when verbose, got %q", buf.String())
	}
}

func TestWriterLoggerEnvLevel(t *testing.T) {
	t.Setenv(EnvLevel, "info")

	var buf bytes.Buffer
	NewWriterLogger(&buf, false).Info("from env", nil)
	if !strings.Contains(buf.String(), "from env") {
		t.Fatalf("expected info output with env level, got %q", buf.String())
	}
}

func TestHelpersAreNilSafe(t *testing.T) {
	Debug(true, nil, "x", nil)
	Warn(nil, "x", nil)
	Error(nil, "x", nil)

	core, logs := observer.New(zapcore.DebugLevel)
	l := FromZap(zap.New(core))
	Debug(false, l, "skipped", nil)
	Debug(true, l, "turn 3", nil)
	if logs.Len() != 1 || logs.All()[0].Message != "turn 3" {
		t.Fatalf("unexpected entries: %#v", logs.All())
	}
}
