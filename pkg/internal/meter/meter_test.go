package meter

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/joeydtaylor/tensilerig/pkg/internal/types"
)

type stubLogger struct {
	level       types.LogLevel
	infoCount   int32
	debugCount  int32
	warnCount   int32
	errorCount  int32
	panicCount  int32
	lastMessage string
}

func (s *stubLogger) GetLevel() types.LogLevel {
	return s.level
}

func (s *stubLogger) SetLevel(level types.LogLevel) {
	s.level = level
}

func (s *stubLogger) Debug(msg string, _ ...interface{}) {
	atomic.AddInt32(&s.debugCount, 1)
	s.lastMessage = msg
}

func (s *stubLogger) Info(msg string, _ ...interface{}) {
	atomic.AddInt32(&s.infoCount, 1)
	s.lastMessage = msg
}

func (s *stubLogger) Warn(msg string, _ ...interface{}) {
	atomic.AddInt32(&s.warnCount, 1)
	s.lastMessage = msg
}

func (s *stubLogger) Error(msg string, _ ...interface{}) {
	atomic.AddInt32(&s.errorCount, 1)
	s.lastMessage = msg
}

func (s *stubLogger) DPanic(msg string, _ ...interface{}) {
	atomic.AddInt32(&s.panicCount, 1)
	s.lastMessage = msg
}

func (s *stubLogger) Panic(msg string, _ ...interface{}) {
	atomic.AddInt32(&s.panicCount, 1)
	s.lastMessage = msg
}

func (s *stubLogger) Fatal(msg string, _ ...interface{}) {
	atomic.AddInt32(&s.panicCount, 1)
	s.lastMessage = msg
}

func (s *stubLogger) Flush() error { return nil }

func (s *stubLogger) AddSink(string, types.SinkConfig) error { return nil }

func (s *stubLogger) RemoveSink(string) error { return nil }

func (s *stubLogger) ListSinks() ([]string, error) { return nil, nil }

func TestMetricCounts(t *testing.T) {
	m := NewMeter().(*Meter)

	m.SetMetricCount(types.MetricPointsProcessedCount, 2)
	m.IncrementCount(types.MetricPointsProcessedCount)
	m.DecrementCount(types.MetricPointsProcessedCount)
	m.AddCount(types.MetricPointsProcessedCount, 10)

	if got := m.GetMetricCount(types.MetricPointsProcessedCount); got != 12 {
		t.Fatalf("expected count 12, got %d", got)
	}

	m.ResetMetrics()
	if got := m.GetMetricCount(types.MetricPointsProcessedCount); got != 0 {
		t.Fatalf("expected count reset to 0, got %d", got)
	}
}

func TestDecrementStopsAtZero(t *testing.T) {
	m := NewMeter().(*Meter)

	m.DecrementCount(types.MetricComponentRunningCount)
	if got := m.GetMetricCount(types.MetricComponentRunningCount); got != 0 {
		t.Fatalf("expected count to stay at 0, got %d", got)
	}
}

func TestUnknownMetricIsRegisteredOnWrite(t *testing.T) {
	m := NewMeter().(*Meter)

	if got := m.GetMetricCount("custom_metric"); got != 0 {
		t.Fatalf("expected unknown metric to read 0, got %d", got)
	}
	m.IncrementCount("custom_metric")
	if got := m.GetMetricCount("custom_metric"); got != 1 {
		t.Fatalf("expected custom metric 1, got %d", got)
	}

	names := m.GetMetricNames()
	if names[len(names)-1] != "custom_metric" {
		t.Fatalf("expected custom metric to be appended, got %v", names)
	}
}

func TestConcurrentIncrements(t *testing.T) {
	m := NewMeter().(*Meter)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				m.IncrementCount(types.MetricSamplesAcquiredCount)
			}
		}()
	}
	wg.Wait()

	if got := m.GetMetricCount(types.MetricSamplesAcquiredCount); got != 8000 {
		t.Fatalf("expected 8000, got %d", got)
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	m := NewMeter(WithInitialMetricCount(types.MetricAnalysisCount, 3)).(*Meter)
	m.SetMetricPercentage(types.MetricCurrentCpuPercentage, 42.5)

	snap := m.Snapshot()
	if snap.Counts[types.MetricAnalysisCount] != 3 {
		t.Fatalf("expected analysis count 3, got %d", snap.Counts[types.MetricAnalysisCount])
	}
	if snap.Percentages[types.MetricCurrentCpuPercentage] != 42.5 {
		t.Fatalf("expected cpu 42.5, got %.2f", snap.Percentages[types.MetricCurrentCpuPercentage])
	}

	m.IncrementCount(types.MetricAnalysisCount)
	if snap.Counts[types.MetricAnalysisCount] != 3 {
		t.Fatal("expected snapshot to be unaffected by later writes")
	}
}

func TestComponentMetadata(t *testing.T) {
	m := NewMeter(WithComponentMetadata("rig", "meter-1")).(*Meter)

	meta := m.GetComponentMetadata()
	if meta.Name != "rig" || meta.ID != "meter-1" || meta.Type != "METER" {
		t.Fatalf("unexpected metadata: %+v", meta)
	}
}

func TestNotifyLoggers(t *testing.T) {
	log := &stubLogger{level: types.InfoLevel}
	m := NewMeter(WithLogger(log)).(*Meter)

	m.NotifyLoggers(types.InfoLevel, "hello")
	if atomic.LoadInt32(&log.infoCount) != 1 {
		t.Fatalf("expected info log")
	}
	if log.lastMessage != "hello" {
		t.Fatalf("unexpected log message: %q", log.lastMessage)
	}

	m.NotifyLoggers(types.DebugLevel, "debug")
	if atomic.LoadInt32(&log.debugCount) != 0 {
		t.Fatalf("expected debug log to be skipped")
	}
}

func TestMonitorExitsOnCancel(t *testing.T) {
	m := NewMeter().(*Meter)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan struct{})
	go func() {
		m.Monitor(ctx, 10*time.Millisecond)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("monitor did not exit after cancel")
	}
}

func TestMetricNamesAreCopied(t *testing.T) {
	m := NewMeter().(*Meter)
	first := m.GetMetricNames()
	if len(first) == 0 {
		t.Fatal("expected metric names")
	}

	first[0] = "mutated"
	second := m.GetMetricNames()
	if second[0] == "mutated" {
		t.Fatal("expected GetMetricNames to return a copy")
	}
}
