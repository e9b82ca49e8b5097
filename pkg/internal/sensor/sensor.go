package sensor

import (
	"sync"

	"github.com/joeydtaylor/tensilerig/pkg/internal/types"
	"github.com/joeydtaylor/tensilerig/pkg/internal/utils"
)

// Sensor provides callback hooks for acquisition, processing and session events.
type Sensor struct {
	componentMetadata types.ComponentMetadata
	metadataLock      sync.Mutex

	OnStart       []func(types.ComponentMetadata)
	OnStop        []func(types.ComponentMetadata)
	OnBatch       []func(types.ComponentMetadata, types.SampleBatch)
	OnPoint       []func(types.ComponentMetadata, types.ProcessedPoint)
	OnOverrun     []func(types.ComponentMetadata, uint64)
	OnAnalyzed    []func(types.ComponentMetadata, types.AnalysisResult)
	OnError       []func(types.ComponentMetadata, types.ErrorKind, error)
	OnPersisted   []func(types.ComponentMetadata, string)
	OnStateChange []func(types.ComponentMetadata, types.SessionState, types.SessionState)

	callbackLock sync.Mutex
	loggers      []types.Logger
	loggersLock  sync.Mutex
	meters       []types.Meter
	metersLock   sync.Mutex
}

// NewSensor constructs a Sensor with optional configuration.
func NewSensor(options ...types.Option[types.Sensor]) types.Sensor {
	s := &Sensor{
		componentMetadata: types.ComponentMetadata{
			ID:   utils.GenerateUniqueHash(),
			Type: "SENSOR",
		},
	}

	for _, opt := range s.decorateCallbacks(options...) {
		if opt == nil {
			continue
		}
		opt(s)
	}

	return s
}
