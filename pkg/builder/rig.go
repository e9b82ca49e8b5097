package builder

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/joeydtaylor/tensilerig/pkg/internal/analyzer"
	"github.com/joeydtaylor/tensilerig/pkg/internal/calibrator"
	"github.com/joeydtaylor/tensilerig/pkg/internal/mechanics"
	"github.com/joeydtaylor/tensilerig/pkg/internal/meter"
	"github.com/joeydtaylor/tensilerig/pkg/internal/orchestrator"
	"github.com/joeydtaylor/tensilerig/pkg/internal/plug"
	"github.com/joeydtaylor/tensilerig/pkg/internal/sensor"
	"github.com/joeydtaylor/tensilerig/pkg/internal/types"
)

// Rig is a fully wired acquisition and analysis stack.
type Rig struct {
	Settings     *Settings
	Logger       types.Logger
	Meter        types.Meter
	Sensor       types.Sensor
	Store        types.SessionStore
	Orchestrator *orchestrator.Orchestrator

	source    types.SampleSource
	store     types.SessionStore
	ownsStore bool
	noStore   bool
	sensors   []types.Sensor
	configs   *ConfigManager

	mu      sync.Mutex
	pending *Settings
}

// RigOption customises NewRig.
type RigOption func(*Rig)

// RigWithLogger replaces the logger built from log settings.
func RigWithLogger(l types.Logger) RigOption {
	return func(r *Rig) {
		r.Logger = l
	}
}

// RigWithSource replaces the synthetic source with real hardware or a replay.
func RigWithSource(src types.SampleSource) RigOption {
	return func(r *Rig) {
		r.source = src
	}
}

// RigWithStore replaces the store named by storage.driver. The caller keeps
// ownership; Close does not close it.
func RigWithStore(store types.SessionStore) RigOption {
	return func(r *Rig) {
		r.store = store
	}
}

// RigWithoutStore runs without persistence regardless of storage.driver.
func RigWithoutStore() RigOption {
	return func(r *Rig) {
		r.noStore = true
	}
}

// RigWithSensor connects additional sensors to the orchestrator.
func RigWithSensor(s ...types.Sensor) RigOption {
	return func(r *Rig) {
		r.sensors = append(r.sensors, s...)
	}
}

// RigWithConfigManager applies settings the manager reloads to the next session.
// Storage and log settings stay as the rig was built.
func RigWithConfigManager(m *ConfigManager) RigOption {
	return func(r *Rig) {
		r.configs = m
	}
}

// NewRig validates settings and builds every component from them.
func NewRig(ctx context.Context, settings *Settings, options ...RigOption) (*Rig, error) {
	if settings == nil {
		settings = DefaultConfig()
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	r := &Rig{Settings: settings}
	for _, opt := range options {
		opt(r)
	}

	if r.Logger == nil {
		logger, err := NewLoggerFromSettings(settings.Log)
		if err != nil {
			return nil, err
		}
		r.Logger = logger
	}

	r.Meter = meter.NewMeter(meter.WithLogger(r.Logger))
	r.Sensor = sensor.NewSensor(sensor.WithLogger(r.Logger), sensor.WithMeter(r.Meter))

	switch {
	case r.noStore:
	case r.store != nil:
		r.Store = r.store
	default:
		store, err := OpenStore(ctx, settings.Storage, r.Logger)
		if err != nil {
			return nil, fmt.Errorf("open store: %w", err)
		}
		r.Store = store
		r.ownsStore = store != nil
	}

	next := 1
	if r.Store != nil {
		n, err := nextSessionNumber(ctx, r.Store)
		if err != nil {
			_ = r.closeStore()
			return nil, err
		}
		next = n
	}
	o, err := r.buildOrchestrator(settings, next)
	if err != nil {
		_ = r.closeStore()
		return nil, err
	}
	r.Orchestrator = o

	if r.configs != nil {
		r.configs.RegisterOnChange(func(s *Settings) {
			if err := r.Reconfigure(s); err != nil {
				r.Logger.Warn("reloaded settings rejected",
					"event", "Reconfigure",
					"result", "FAILURE",
					"error", err,
				)
			}
		})
	}
	return r, nil
}

// buildOrchestrator wires calibration, processing, acquisition and analysis from
// settings around the rig's store, sensors and logger.
func (r *Rig) buildOrchestrator(settings *Settings, firstNumber int) (*orchestrator.Orchestrator, error) {
	cal, err := calibrator.New(settings.Calibration)
	if err != nil {
		return nil, err
	}
	engine, err := mechanics.New(settings.Specimen, settings.Processing.RollingWindowPoints)
	if err != nil {
		return nil, err
	}

	acq := settings.Acquisition
	source := r.source
	if source == nil {
		syn := settings.Synthetic
		src, err := plug.NewSyntheticSource(cal, settings.Specimen,
			plug.WithSampleRate(acq.SampleRateHz),
			plug.WithBatchSize(acq.BatchSize),
			plug.WithProfile(syn.Profile),
			plug.WithNoise(syn.NoiseStd, syn.Seed),
			plug.WithHum(syn.HumHz, syn.HumVolts),
			plug.WithLogger(r.Logger),
		)
		if err != nil {
			return nil, err
		}
		source = src
	}

	an := settings.Analysis
	a := analyzer.New(
		analyzer.WithMinPoints(an.MinAnalysisPoints),
		analyzer.WithR2Threshold(an.ElasticR2Threshold),
		analyzer.WithElasticMinPoints(an.ElasticMinPoints),
		analyzer.WithElasticOriginTolerance(an.ElasticOriginTolerance),
		analyzer.WithYieldOffset(an.YieldOffsetStrain),
		analyzer.WithFractureDropFraction(an.FractureDropFraction),
		analyzer.WithFractureWindow(an.FractureWindowPoints),
		analyzer.WithSampleRate(acq.SampleRateHz),
		analyzer.WithLogger(r.Logger),
	)

	opts := []types.Option[*orchestrator.Orchestrator]{
		orchestrator.WithAnalyzer(a),
		orchestrator.WithBufferCapacity(acq.BufferCapacityBatches),
		orchestrator.WithPollInterval(acq.PollInterval),
		orchestrator.WithProcessInterval(acq.ProcessInterval),
		orchestrator.WithSampleRate(acq.SampleRateHz),
		orchestrator.WithFirstSessionNumber(firstNumber),
		orchestrator.WithSensor(append([]types.Sensor{r.Sensor}, r.sensors...)...),
		orchestrator.WithLogger(r.Logger),
	}
	if r.Store != nil {
		opts = append(opts, orchestrator.WithStore(r.Store))
	}
	return orchestrator.New(source, cal, engine, opts...)
}

// Reconfigure validates settings and stages them for the next Start. A session
// already open keeps the settings it started with.
func (r *Rig) Reconfigure(settings *Settings) error {
	if settings == nil {
		return types.NewConfigurationError("settings", "nil settings")
	}
	if err := settings.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	r.pending = settings
	r.mu.Unlock()
	return nil
}

// Start opens a session, first rebuilding the pipeline from any settings staged
// by Reconfigure. Specimen geometry, material and sample rate are filled in from
// the settings; meta adds or overrides entries such as the operator.
func (r *Rig) Start(ctx context.Context, meta map[string]string) error {
	if err := r.applyPending(); err != nil {
		return err
	}
	return r.Orchestrator.Start(ctx, meta)
}

func (r *Rig) applyPending() error {
	if r.Orchestrator.State() != types.StateIdle {
		return nil
	}
	r.mu.Lock()
	pending := r.pending
	r.pending = nil
	r.mu.Unlock()
	if pending == nil {
		return nil
	}

	// Storage and logging belong to the rig, not the session.
	applied := *pending
	applied.Storage = r.Settings.Storage
	applied.Log = r.Settings.Log

	o, err := r.buildOrchestrator(&applied, r.Orchestrator.NextSessionNumber())
	if err != nil {
		return err
	}
	r.Orchestrator = o
	r.Settings = &applied

	r.Logger.Info("settings applied",
		"component", o.GetComponentMetadata(),
		"event", "Reconfigure",
		"result", "SUCCESS",
		"material", applied.Specimen.Material,
	)
	return nil
}

func (r *Rig) Stop() error { return r.Orchestrator.Stop() }

func (r *Rig) Analyze() (AnalysisResult, error) { return r.Orchestrator.Analyze() }

func (r *Rig) Persist(ctx context.Context) error { return r.Orchestrator.Persist(ctx) }

func (r *Rig) Discard() { r.Orchestrator.Discard() }

func (r *Rig) State() SessionState { return r.Orchestrator.State() }

// Session returns a snapshot of the current session, or nil when idle.
func (r *Rig) Session() *Session { return r.Orchestrator.Session() }

// Sessions lists stored sessions.
func (r *Rig) Sessions(ctx context.Context) ([]SessionSummary, error) {
	if r.Store == nil {
		return nil, errNoStore
	}
	return r.Store.ListSessions(ctx)
}

// LoadSession reads a stored session by id.
func (r *Rig) LoadSession(ctx context.Context, id string) (*Session, error) {
	if r.Store == nil {
		return nil, errNoStore
	}
	return r.Store.LoadSession(ctx, id)
}

// Close discards any live session, closes a store the rig opened itself and
// flushes the logger.
func (r *Rig) Close() error {
	if r.Orchestrator != nil {
		r.Orchestrator.Discard()
	}
	err := r.closeStore()
	if r.Logger != nil {
		_ = r.Logger.Flush()
	}
	return err
}

func (r *Rig) closeStore() error {
	if !r.ownsStore || r.Store == nil {
		return nil
	}
	r.ownsStore = false
	return r.Store.Close()
}

var errNoStore = fmt.Errorf("%w: storage.driver is none", types.ErrConfiguration)

// IsConfigurationError reports whether err came from invalid settings.
func IsConfigurationError(err error) bool {
	var ce *types.ConfigurationError
	return errors.As(err, &ce) || errors.Is(err, types.ErrConfiguration)
}

// nextSessionNumber continues after the highest number already in the store, so a new
// rig never reuses a stored session number.
func nextSessionNumber(ctx context.Context, store types.SessionStore) (int, error) {
	stored, err := store.ListSessions(ctx)
	if err != nil {
		return 0, fmt.Errorf("list stored sessions: %w", err)
	}
	next := 1
	for _, sum := range stored {
		if sum.Number >= next {
			next = sum.Number + 1
		}
	}
	return next, nil
}
