package internallogger

import (
	"testing"

	"github.com/joeydtaylor/tensilerig/pkg/internal/types"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLog_WritesFields(t *testing.T) {
	logger := NewLogger()
	core, obs := observer.New(zapcore.DebugLevel)

	logger.mu.Lock()
	logger.logger = zap.New(core)
	logger.mu.Unlock()

	logger.Log(types.InfoLevel, "msg", "a", "b", "c", 3, "orphan")

	entries := obs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	fields := entries[0].Context
	if len(fields) != 2 {
		t.Fatalf("expected 2 fields, got %d", len(fields))
	}

	if fields[0].Key != "a" || fields[1].Key != "c" {
		t.Fatalf("unexpected field keys: %v, %v", fields[0].Key, fields[1].Key)
	}
}

func TestLog_FlattensDomainValues(t *testing.T) {
	logger := NewLogger()
	core, obs := observer.New(zapcore.DebugLevel)

	logger.mu.Lock()
	logger.logger = zap.New(core)
	logger.mu.Unlock()

	meta := types.ComponentMetadata{ID: "w1", Type: "WIRE"}
	session := &types.Session{ID: "s1", Number: 3, Points: make([]types.ProcessedPoint, 5)}
	logger.Log(types.WarnLevel, "msg", "component", meta, "session", session, "state", types.StateStopped)

	entries := obs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	ctx := entries[0].ContextMap()
	component, ok := ctx["component"].(map[string]string)
	if !ok || component["type"] != "WIRE" || component["id"] != "w1" {
		t.Fatalf("unexpected component field: %#v", ctx["component"])
	}
	s, ok := ctx["session"].(map[string]interface{})
	if !ok || s["id"] != "s1" || s["points"] != 5 {
		t.Fatalf("unexpected session field: %#v", ctx["session"])
	}
	if ctx["state"] != "stopped" {
		t.Fatalf("unexpected state field: %#v", ctx["state"])
	}
}

func TestLog_IgnoresNonStringKeys(t *testing.T) {
	logger := NewLogger()
	core, obs := observer.New(zapcore.DebugLevel)

	logger.mu.Lock()
	logger.logger = zap.New(core)
	logger.mu.Unlock()

	logger.Log(types.InfoLevel, "msg", 123, "skip", "k", "v")

	entries := obs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	fields := entries[0].Context
	if len(fields) != 1 {
		t.Fatalf("expected 1 field, got %d", len(fields))
	}
	if fields[0].Key != "k" {
		t.Fatalf("expected field key 'k', got %q", fields[0].Key)
	}
}

func TestLog_RespectsCoreLevel(t *testing.T) {
	logger := NewLogger()
	core, obs := observer.New(zapcore.WarnLevel)

	logger.mu.Lock()
	logger.logger = zap.New(core)
	logger.mu.Unlock()

	logger.Log(types.InfoLevel, "info")
	logger.Log(types.WarnLevel, "warn")

	entries := obs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].Entry.Level != zapcore.WarnLevel {
		t.Fatalf("expected warn entry, got %v", entries[0].Entry.Level)
	}
}

func TestLog_NilLoggerNoPanic(t *testing.T) {
	logger := NewLogger()
	logger.mu.Lock()
	logger.logger = nil
	logger.mu.Unlock()

	logger.Log(types.InfoLevel, "msg")
}

func TestFlush_NilLogger(t *testing.T) {
	logger := NewLogger()
	logger.mu.Lock()
	logger.logger = nil
	logger.mu.Unlock()

	if err := logger.Flush(); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
}

func TestConvertLevel_Defaults(t *testing.T) {
	if got := ConvertLevel(types.LogLevel(99)); got != zapcore.InfoLevel {
		t.Fatalf("expected default zapcore.InfoLevel, got %v", got)
	}
	if got := convertZapLevel(zapcore.Level(99)); got != types.InfoLevel {
		t.Fatalf("expected default types.InfoLevel, got %v", got)
	}
}

func TestParseLogLevel(t *testing.T) {
	cases := map[string]types.LogLevel{
		"debug":  types.DebugLevel,
		"info":   types.InfoLevel,
		"warn":   types.WarnLevel,
		"error":  types.ErrorLevel,
		"dpanic": types.DPanicLevel,
		"panic":  types.PanicLevel,
		"fatal":  types.FatalLevel,
		"WARN":   types.WarnLevel,
		" Debug": types.DebugLevel,
		"bogus":  types.InfoLevel,
	}

	for input, expect := range cases {
		if got := parseLogLevel(input); got != expect {
			t.Fatalf("parseLogLevel(%q) = %v, expected %v", input, got, expect)
		}
	}
}

func TestLog_RendersAnalysisOutcomes(t *testing.T) {
	logger := NewLogger()
	core, obs := observer.New(zapcore.DebugLevel)

	logger.mu.Lock()
	logger.logger = zap.New(core)
	logger.mu.Unlock()

	result := &types.AnalysisResult{
		Status: types.AnalysisComplete,
		Outcomes: map[types.Region]types.RegionOutcome{
			types.RegionElastic: types.OutcomeDetected,
			types.RegionYield:   types.OutcomeDetected,
		},
	}
	logger.Info("analyzed", "analysis", result)

	entries := obs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	got, ok := entries[0].ContextMap()["analysis"].(map[string]string)
	if !ok {
		t.Fatalf("unexpected analysis field: %#v", entries[0].ContextMap()["analysis"])
	}
	if got["status"] != "complete" || got["elastic"] != "detected" || got["fracture"] != "not_detected" {
		t.Fatalf("unexpected analysis rendering: %v", got)
	}
}

func TestFieldsFromMap_SortedAndDomainAware(t *testing.T) {
	fields := fieldsFromMap(map[string]interface{}{
		"state": types.StateAnalyzed,
		"":      "dropped",
		"alpha": 1,
	})
	if len(fields) != 2 {
		t.Fatalf("expected 2 fields, got %d", len(fields))
	}
	if fields[0].Key != "alpha" || fields[1].Key != "state" {
		t.Fatalf("unexpected order: %s, %s", fields[0].Key, fields[1].Key)
	}
	if fields[1].String != "analyzed" {
		t.Fatalf("expected state rendered as string, got %#v", fields[1])
	}
}

func TestOpenSink_Stderr(t *testing.T) {
	ws, closeFn, err := openSink(types.SinkConfig{Type: string(types.StderrSink)})
	if err != nil {
		t.Fatalf("openSink(stderr) error: %v", err)
	}
	if ws == nil || closeFn != nil {
		t.Fatalf("expected a shared writer with no close func")
	}
}

func TestListSinks_Sorted(t *testing.T) {
	logger := NewLogger()
	for _, id := range []string{"zeta", "alpha"} {
		if err := logger.AddSink(id, types.SinkConfig{Type: string(types.StderrSink)}); err != nil {
			t.Fatalf("AddSink(%s) error: %v", id, err)
		}
	}
	sinks, _ := logger.ListSinks()
	if len(sinks) != 2 || sinks[0] != "alpha" || sinks[1] != "zeta" {
		t.Fatalf("unexpected sink order: %v", sinks)
	}
}
