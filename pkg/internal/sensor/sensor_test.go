package sensor_test

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/joeydtaylor/tensilerig/pkg/internal/meter"
	"github.com/joeydtaylor/tensilerig/pkg/internal/sensor"
	"github.com/joeydtaylor/tensilerig/pkg/internal/types"
)

func TestSensorCallbacks(t *testing.T) {
	var startCount, pointCount, errorCount, stopCount int64
	var lastOverrun uint64

	s := sensor.NewSensor(
		sensor.WithOnStartFunc(func(c types.ComponentMetadata) { atomic.AddInt64(&startCount, 1) }),
		sensor.WithOnPointFunc(func(c types.ComponentMetadata, p types.ProcessedPoint) { atomic.AddInt64(&pointCount, 1) }),
		sensor.WithOnOverrunFunc(func(c types.ComponentMetadata, total uint64) { atomic.StoreUint64(&lastOverrun, total) }),
		sensor.WithOnErrorFunc(func(c types.ComponentMetadata, kind types.ErrorKind, err error) { atomic.AddInt64(&errorCount, 1) }),
		sensor.WithOnStopFunc(func(c types.ComponentMetadata) { atomic.AddInt64(&stopCount, 1) }),
	)

	meta := types.ComponentMetadata{ID: "w1", Type: "WIRE"}
	s.InvokeOnStart(meta)
	for i := 0; i < 5; i++ {
		s.InvokeOnPoint(meta, types.ProcessedPoint{Timestamp: float64(i)})
	}
	s.InvokeOnOverrun(meta, 7)
	s.InvokeOnError(meta, types.ErrorKindProcessing, errors.New("boom"))
	s.InvokeOnStop(meta)

	if atomic.LoadInt64(&startCount) != 1 {
		t.Fatalf("expected start once, got %d", startCount)
	}
	if atomic.LoadInt64(&pointCount) != 5 {
		t.Fatalf("expected 5 points, got %d", pointCount)
	}
	if atomic.LoadUint64(&lastOverrun) != 7 {
		t.Fatalf("expected overrun total 7, got %d", lastOverrun)
	}
	if atomic.LoadInt64(&errorCount) != 1 {
		t.Fatalf("expected one error, got %d", errorCount)
	}
	if atomic.LoadInt64(&stopCount) != 1 {
		t.Fatalf("expected stop once, got %d", stopCount)
	}
}

func TestSensorSessionCallbacks(t *testing.T) {
	var batches, analyzed int64
	var from, to types.SessionState
	s := sensor.NewSensor(
		sensor.WithOnBatchFunc(func(c types.ComponentMetadata, b types.SampleBatch) { atomic.AddInt64(&batches, int64(len(b.Samples))) }),
		sensor.WithOnAnalyzedFunc(func(c types.ComponentMetadata, r types.AnalysisResult) { atomic.AddInt64(&analyzed, 1) }),
		sensor.WithOnStateChangeFunc(func(c types.ComponentMetadata, f, n types.SessionState) { from, to = f, n }),
	)

	meta := types.ComponentMetadata{ID: "o1", Type: "ORCHESTRATOR"}
	s.InvokeOnBatch(meta, types.SampleBatch{Sequence: 1, Samples: make([]types.Sample, 3)})
	s.InvokeOnAnalyzed(meta, types.AnalysisResult{Status: types.AnalysisComplete})
	s.InvokeOnStateChange(meta, types.StateStopped, types.StateAnalyzed)

	if atomic.LoadInt64(&batches) != 3 {
		t.Fatalf("expected 3 batch samples, got %d", batches)
	}
	if atomic.LoadInt64(&analyzed) != 1 {
		t.Fatalf("expected analyzed once, got %d", analyzed)
	}
	if from != types.StateStopped || to != types.StateAnalyzed {
		t.Fatalf("unexpected transition %s -> %s", from, to)
	}
}

func TestCallbacksMayRegisterMoreCallbacks(t *testing.T) {
	s := sensor.NewSensor()

	var inner int64
	s.RegisterOnPersisted(func(c types.ComponentMetadata, id string) {
		s.RegisterOnPersisted(func(c types.ComponentMetadata, id string) { atomic.AddInt64(&inner, 1) })
	})

	s.InvokeOnPersisted(types.ComponentMetadata{}, "a")
	if atomic.LoadInt64(&inner) != 0 {
		t.Fatalf("callback registered during invoke must not run in the same invoke")
	}
	s.InvokeOnPersisted(types.ComponentMetadata{}, "b")
	if atomic.LoadInt64(&inner) != 1 {
		t.Fatalf("expected inner callback once, got %d", inner)
	}
}

func TestSensorDrivesMeter(t *testing.T) {
	m := meter.NewMeter()
	s := sensor.NewSensor(sensor.WithMeter(m))

	gen := types.ComponentMetadata{Type: "GENERATOR"}
	wire := types.ComponentMetadata{Type: "WIRE"}
	s.InvokeOnStart(gen)
	s.InvokeOnStart(wire)
	s.InvokeOnBatch(gen, types.SampleBatch{Sequence: 1, Samples: make([]types.Sample, 50)})
	s.InvokeOnBatch(gen, types.SampleBatch{Sequence: 2, Samples: make([]types.Sample, 50)})
	s.InvokeOnPoint(wire, types.ProcessedPoint{})
	s.InvokeOnOverrun(gen, 3)
	s.InvokeOnOverrun(gen, 4)
	s.InvokeOnError(wire, types.ErrorKindStorage, errors.New("disk"))
	s.InvokeOnStateChange(types.ComponentMetadata{}, types.StateIdle, types.StateRunning)
	s.InvokeOnStateChange(types.ComponentMetadata{}, types.StateRunning, types.StateStopped)
	s.InvokeOnAnalyzed(types.ComponentMetadata{}, types.AnalysisResult{})
	s.InvokeOnPersisted(types.ComponentMetadata{}, "id")
	s.InvokeOnStop(gen)

	checks := map[string]uint64{
		types.MetricComponentRunningCount: 1,
		types.MetricGeneratorRunningCount: 0,
		types.MetricWireRunningCount:      1,
		types.MetricBatchesAcquiredCount:  2,
		types.MetricSamplesAcquiredCount:  100,
		types.MetricPointsProcessedCount:  1,
		types.MetricBatchesDroppedCount:   4,
		types.MetricTotalErrorCount:       1,
		types.MetricStorageErrorCount:     1,
		types.MetricStateTransitionCount:  2,
		types.MetricSessionsStartedCount:  1,
		types.MetricSessionsStoppedCount:  1,
		types.MetricAnalysisCount:         1,
		types.MetricPersistCount:          1,
	}
	for name, want := range checks {
		if got := m.GetMetricCount(name); got != want {
			t.Fatalf("%s: expected %d, got %d", name, want, got)
		}
	}
}

func TestGetMetersReturnsCopy(t *testing.T) {
	s := sensor.NewSensor(sensor.WithMeter(meter.NewMeter(), nil))

	meters := s.GetMeters()
	if len(meters) != 1 {
		t.Fatalf("expected nil meter to be skipped, got %d meters", len(meters))
	}
	meters[0] = nil
	if s.GetMeters()[0] == nil {
		t.Fatal("expected GetMeters to return a copy")
	}
}

func TestConcurrentInvoke(t *testing.T) {
	var count int64
	s := sensor.NewSensor(sensor.WithOnPointFunc(func(c types.ComponentMetadata, p types.ProcessedPoint) {
		atomic.AddInt64(&count, 1)
	}))

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 250; j++ {
				s.InvokeOnPoint(types.ComponentMetadata{}, types.ProcessedPoint{})
			}
		}()
	}
	wg.Wait()

	if atomic.LoadInt64(&count) != 1000 {
		t.Fatalf("expected 1000 invocations, got %d", count)
	}
}

func TestSetComponentMetadata(t *testing.T) {
	s := sensor.NewSensor()
	s.SetComponentMetadata("console", "sensor-1")

	meta := s.GetComponentMetadata()
	if meta.Name != "console" || meta.ID != "sensor-1" || meta.Type != "SENSOR" {
		t.Fatalf("unexpected metadata: %+v", meta)
	}
}
