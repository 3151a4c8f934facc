package logger

import (
	"context"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		" INFO ":  zapcore.InfoLevel,
		"warn":    zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"":        zapcore.WarnLevel,
		"verbose": zapcore.WarnLevel,
	}
	for in, want := range cases {
		if got := parseLevel(in); got != want {
			t.Fatalf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestFrom_FallsBackToGlobal(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	Set(zap.New(core))
	t.Cleanup(func() { Set(nil) })

	From(context.Background()).Info("global")
	if logs.Len() != 1 {
		t.Fatalf("expected 1 log entry on the global logger, got %d", logs.Len())
	}
}

func TestFrom_UsesContextLogger(t *testing.T) {
	globalCore, globalLogs := observer.New(zapcore.DebugLevel)
	Set(zap.New(globalCore))
	t.Cleanup(func() { Set(nil) })

	scopedCore, scopedLogs := observer.New(zapcore.DebugLevel)
	ctx := ToContext(context.Background(), zap.New(scopedCore))

	From(ctx).Info("scoped", Component("test"))
	if globalLogs.Len() != 0 {
		t.Fatalf("global logger should be untouched, got %d entries", globalLogs.Len())
	}
	entries := scopedLogs.All()
	if len(entries) != 1 || entries[0].ContextMap()["component"] != "test" {
		t.Fatalf("unexpected scoped entries: %+v", entries)
	}
}

func TestL_DefaultsWhenUninitialised(t *testing.T) {
	Set(nil)
	if L() == nil {
		t.Fatal("L() must never return nil")
	}
}

func TestEmail_IsMasked(t *testing.T) {
	f := Email("to", "someone@example.com")
	if f.String != "s…@e….com" {
		t.Fatalf("unexpected masked email: %q", f.String)
	}
}
