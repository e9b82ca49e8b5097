// Package builder is the public entry point to tensilerig. It re-exports the
// domain types and assembles a complete rig (source, orchestrator, analyzer,
// store, sensor, meter and logger) from validated settings.
package builder

import (
	"github.com/joeydtaylor/tensilerig/pkg/internal/config"
	"github.com/joeydtaylor/tensilerig/pkg/internal/plug"
	"github.com/joeydtaylor/tensilerig/pkg/internal/types"
)

type (
	ComponentMetadata  = types.ComponentMetadata
	Sample             = types.Sample
	SampleSource       = types.SampleSource
	ProcessedPoint     = types.ProcessedPoint
	CalibrationParams  = types.CalibrationParams
	ChannelCalibration = types.ChannelCalibration
	SpecimenGeometry   = types.SpecimenGeometry
	Session            = types.Session
	SessionSummary     = types.SessionSummary
	SessionState       = types.SessionState
	SessionStore       = types.SessionStore
	AnalysisResult     = types.AnalysisResult
	AnalysisStatus     = types.AnalysisStatus
	Region             = types.Region
	RegionOutcome      = types.RegionOutcome
	SignalDiagnostics  = types.SignalDiagnostics
	ErrorKind          = types.ErrorKind
	Logger             = types.Logger
	Meter              = types.Meter
	Sensor             = types.Sensor
	Settings           = config.Settings
	Profile            = plug.Profile
)

const (
	StateIdle     = types.StateIdle
	StateRunning  = types.StateRunning
	StateStopped  = types.StateStopped
	StateAnalyzed = types.StateAnalyzed
)

const (
	RegionElastic  = types.RegionElastic
	RegionYield    = types.RegionYield
	RegionUltimate = types.RegionUltimate
	RegionFracture = types.RegionFracture
	RegionPlastic  = types.RegionPlastic

	AnalysisComplete         = types.AnalysisComplete
	AnalysisInsufficientData = types.AnalysisInsufficientData
)

// Regions lists every region in detection order.
var Regions = types.Regions

// Metadata keys recognised by Rig.Start.
const (
	MetaMaterial            = types.MetaMaterial
	MetaCrossSectionAreaMM2 = types.MetaCrossSectionAreaMM2
	MetaGaugeLengthMM       = types.MetaGaugeLengthMM
	MetaSampleRateHz        = types.MetaSampleRateHz
	MetaOperator            = types.MetaOperator
	MetaSpecimenID          = types.MetaSpecimenID
)

var (
	ErrConfiguration   = types.ErrConfiguration
	ErrInvalidState    = types.ErrInvalidState
	ErrSessionExists   = types.ErrSessionExists
	ErrSessionNotFound = types.ErrSessionNotFound
)
