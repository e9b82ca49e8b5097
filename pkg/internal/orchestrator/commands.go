package orchestrator

import (
	"context"
	"errors"
	"strconv"

	"github.com/joeydtaylor/tensilerig/pkg/internal/session"
	"github.com/joeydtaylor/tensilerig/pkg/internal/types"
	"github.com/joeydtaylor/tensilerig/pkg/internal/utils"
)

// Start opens a new session and starts acquisition and processing.
// Idle -> Running.
func (o *Orchestrator) Start(ctx context.Context, meta map[string]string) error {
	o.cmdLock.Lock()
	defer o.cmdLock.Unlock()

	if state := o.State(); state != types.StateIdle {
		return o.reject("start", state)
	}
	if ctx == nil {
		ctx = context.Background()
	}

	number := o.nextNumber
	rec := session.NewRecorder(utils.NewSessionID(), number, o.now(), o.sessionMetadata(meta))

	o.buffer.Clear()
	if r, ok := o.source.(interface{ Reset() }); ok {
		r.Reset()
	}

	o.wire.ConnectRecorder(rec)
	if err := o.wire.Start(ctx); err != nil {
		return o.fail(startErrorKind(err), "start", err)
	}
	if err := o.generator.Start(ctx); err != nil {
		_ = o.wire.Stop()
		return o.fail(startErrorKind(err), "start", err)
	}

	o.nextNumber++
	o.transition(types.StateRunning, rec)

	o.NotifyLoggers(types.InfoLevel, "session started",
		"component", o.GetComponentMetadata(),
		"event", "Start",
		"result", "SUCCESS",
		"session_id", rec.ID(),
		"session", utils.SessionGroupName(number),
	)
	return nil
}

// Stop halts acquisition, lets the wire drain everything already buffered and
// closes the session. Running -> Stopped.
func (o *Orchestrator) Stop() error {
	o.cmdLock.Lock()
	defer o.cmdLock.Unlock()

	if state := o.State(); state != types.StateRunning {
		return o.reject("stop", state)
	}

	_ = o.generator.Stop()
	_ = o.wire.Stop()

	o.stateLock.RLock()
	rec := o.recorder
	o.stateLock.RUnlock()

	overruns := o.buffer.Overruns()
	rec.Close(o.now(), overruns)
	o.transition(types.StateStopped, rec)

	o.NotifyLoggers(types.InfoLevel, "session stopped",
		"component", o.GetComponentMetadata(),
		"event", "Stop",
		"result", "SUCCESS",
		"session_id", rec.ID(),
		"points", rec.Len(),
		"overruns", overruns,
	)
	return nil
}

// Analyze runs the region analyzer over the closed session and attaches the
// result. Stopped -> Analyzed.
func (o *Orchestrator) Analyze() (types.AnalysisResult, error) {
	o.cmdLock.Lock()
	defer o.cmdLock.Unlock()

	if state := o.State(); state != types.StateStopped {
		return types.AnalysisResult{}, o.reject("analyze", state)
	}

	o.stateLock.RLock()
	rec := o.recorder
	o.stateLock.RUnlock()

	result := o.analyzer.Analyze(rec.Points())
	if err := rec.Annotate(result); err != nil {
		return types.AnalysisResult{}, o.fail(types.ErrorKindProcessing, "analyze", err)
	}
	o.transition(types.StateAnalyzed, rec)
	o.notifyAnalyzed(result)

	o.NotifyLoggers(types.InfoLevel, "session analyzed",
		"component", o.GetComponentMetadata(),
		"event", "Analyze",
		"result", "SUCCESS",
		"session_id", rec.ID(),
		"status", string(result.Status),
	)
	return result, nil
}

// Persist hands the closed session to the store and discards it from memory.
// Stopped or Analyzed -> Idle. On a storage failure the session is kept so the
// command can be retried.
func (o *Orchestrator) Persist(ctx context.Context) error {
	o.cmdLock.Lock()
	defer o.cmdLock.Unlock()

	state := o.State()
	if state != types.StateStopped && state != types.StateAnalyzed {
		return o.reject("persist", state)
	}
	if o.store == nil {
		return o.fail(types.ErrorKindConfiguration, "persist",
			types.NewConfigurationError("storage.driver", "no session store configured"))
	}
	if ctx == nil {
		ctx = context.Background()
	}

	o.stateLock.RLock()
	rec := o.recorder
	o.stateLock.RUnlock()

	snapshot := rec.Snapshot()
	if err := o.store.SaveSession(ctx, snapshot); err != nil {
		return o.fail(types.ErrorKindStorage, "persist", err)
	}

	o.transition(types.StateIdle, nil)
	o.notifyPersisted(snapshot.ID)

	o.NotifyLoggers(types.InfoLevel, "session persisted",
		"component", o.GetComponentMetadata(),
		"event", "Persist",
		"result", "SUCCESS",
		"session_id", snapshot.ID,
		"points", len(snapshot.Points),
	)
	return nil
}

// Discard abandons the current session from any state without persisting it.
func (o *Orchestrator) Discard() {
	o.cmdLock.Lock()
	defer o.cmdLock.Unlock()

	state := o.State()
	if state == types.StateIdle {
		return
	}
	if state == types.StateRunning {
		_ = o.generator.Stop()
		_ = o.wire.Stop()
	}
	o.buffer.Clear()
	o.transition(types.StateIdle, nil)

	o.NotifyLoggers(types.InfoLevel, "session discarded",
		"component", o.GetComponentMetadata(),
		"event", "Discard",
		"result", "SUCCESS",
		"from", state,
	)
}

// transition must be called with cmdLock held.
func (o *Orchestrator) transition(to types.SessionState, rec *session.Recorder) {
	o.stateLock.Lock()
	from := o.state
	o.state = to
	o.recorder = rec
	o.stateLock.Unlock()

	o.notifyStateChange(from, to)
}

func (o *Orchestrator) reject(command string, state types.SessionState) error {
	err := &types.InvalidStateError{Command: command, State: state}
	o.NotifyLoggers(types.WarnLevel, "command rejected",
		"component", o.GetComponentMetadata(),
		"event", "Command",
		"result", "REJECTED",
		"command", command,
		"state", state,
	)
	return err
}

func (o *Orchestrator) fail(kind types.ErrorKind, command string, err error) error {
	o.notifyError(kind, err)
	level := types.ErrorLevel
	var cfgErr *types.ConfigurationError
	if errors.As(err, &cfgErr) {
		level = types.WarnLevel
	}
	o.NotifyLoggers(level, "command failed",
		"component", o.GetComponentMetadata(),
		"event", "Command",
		"result", "FAILURE",
		"command", command,
		"kind", kind,
		"error", err,
	)
	return err
}

func startErrorKind(err error) types.ErrorKind {
	if errors.Is(err, types.ErrConfiguration) {
		return types.ErrorKindConfiguration
	}
	return types.ErrorKindAcquisition
}

// sessionMetadata copies meta and fills in the specimen and rig defaults the
// caller did not override.
func (o *Orchestrator) sessionMetadata(meta map[string]string) map[string]string {
	md := make(map[string]string, len(meta)+4)
	for k, v := range meta {
		md[k] = v
	}
	g := o.engine.Geometry()
	setDefault(md, types.MetaCrossSectionAreaMM2, strconv.FormatFloat(g.CrossSectionAreaMM2, 'g', -1, 64))
	setDefault(md, types.MetaGaugeLengthMM, strconv.FormatFloat(g.GaugeLengthMM, 'g', -1, 64))
	if g.Material != "" {
		setDefault(md, types.MetaMaterial, g.Material)
	}
	if o.sampleRate > 0 {
		setDefault(md, types.MetaSampleRateHz, strconv.FormatFloat(o.sampleRate, 'g', -1, 64))
	}
	return md
}

func setDefault(md map[string]string, key, value string) {
	if _, ok := md[key]; !ok {
		md[key] = value
	}
}
